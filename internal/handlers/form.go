package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/waltwissle/Photo-Shoot-Registration/internal/registration"
	"github.com/waltwissle/Photo-Shoot-Registration/internal/session"
)

type FormHandler struct {
	store *session.Store
	log   *zap.SugaredLogger
}

func NewFormHandler(store *session.Store, log *zap.SugaredLogger) *FormHandler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &FormHandler{store: store, log: log}
}

type FormPath struct {
	ID string `path:"id" doc:"Form session ID"`
}

type EmailPath struct {
	FormPath
	Index int `path:"index" minimum:"0" doc:"Position of the additional email slot"`
}

type SummaryView struct {
	SubmittedAt        string   `json:"submittedAt"`
	FullName           string   `json:"fullName"`
	Email              string   `json:"email"`
	ShootCategory      string   `json:"shootCategory" doc:"Human-readable category"`
	PhotoCode          string   `json:"photoCode"`
	AdditionalEmails   []string `json:"additionalEmails"`
	PhoneNumber        string   `json:"phoneNumber"`
	Notes              string   `json:"notes"`
	SocialMediaConsent bool     `json:"socialMediaConsent"`
}

type FormView struct {
	ID                 string            `json:"id"`
	State              string            `json:"state" enum:"editing,submitting,submitted"`
	FullName           string            `json:"fullName"`
	Email              string            `json:"email"`
	ShootCategory      string            `json:"shootCategory"`
	AdditionalEmails   []string          `json:"additionalEmails"`
	PhoneNumber        string            `json:"phoneNumber"`
	Notes              string            `json:"notes"`
	SocialMediaConsent bool              `json:"socialMediaConsent"`
	PhotoCode          string            `json:"photoCode,omitempty"`
	Errors             map[string]string `json:"errors,omitempty" doc:"Field errors from the last submit attempt"`
	Notice             string            `json:"notice,omitempty" doc:"Alert from the last failed submission"`
	Summary            *SummaryView      `json:"summary,omitempty"`
}

type FormResponse struct {
	Body FormView
}

func newFormResponse(id uuid.UUID, form *registration.Form) *FormResponse {
	s := form.Snapshot()
	view := FormView{
		ID:                 id.String(),
		State:              s.State.String(),
		FullName:           s.Draft.FullName,
		Email:              s.Draft.Email,
		ShootCategory:      string(s.Draft.ShootCategory),
		AdditionalEmails:   s.Draft.AdditionalEmails,
		PhoneNumber:        s.Draft.PhoneNumber,
		Notes:              s.Draft.Notes,
		SocialMediaConsent: s.Draft.SocialMediaConsent,
		PhotoCode:          s.PhotoCode,
		Errors:             s.Errors,
		Notice:             s.Notice,
	}
	if view.AdditionalEmails == nil {
		view.AdditionalEmails = []string{}
	}
	if sum := s.Summary; sum != nil {
		view.Summary = &SummaryView{
			SubmittedAt:        sum.SubmittedAt.Format(registration.TimestampLayout),
			FullName:           sum.FullName,
			Email:              sum.Email,
			ShootCategory:      sum.ShootCategory.Label(),
			PhotoCode:          sum.PhotoCode,
			AdditionalEmails:   sum.AdditionalEmails,
			PhoneNumber:        sum.PhoneNumber,
			Notes:              sum.Notes,
			SocialMediaConsent: sum.SocialMediaConsent,
		}
		if view.Summary.AdditionalEmails == nil {
			view.Summary.AdditionalEmails = []string{}
		}
	}
	return &FormResponse{Body: view}
}

func (h *FormHandler) lookup(rawID string) (uuid.UUID, *registration.Form, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, nil, huma.Error404NotFound("Form not found")
	}
	form, ok := h.store.Get(id)
	if !ok {
		return uuid.Nil, nil, huma.Error404NotFound("Form not found")
	}
	return id, form, nil
}

// editError maps state and index errors from the form to HTTP errors.
func editError(err error) error {
	switch {
	case errors.Is(err, registration.ErrNotEditable):
		return huma.Error409Conflict("Form is not editable while submitting or after submission")
	case errors.Is(err, registration.ErrEmailIndex):
		return huma.Error404NotFound(err.Error())
	default:
		return huma.Error500InternalServerError("Failed to update form: " + err.Error())
	}
}

func (h *FormHandler) HandleCreate(ctx context.Context, input *struct{}) (*FormResponse, error) {
	id, form, err := h.store.Create()
	if err != nil {
		h.log.Warnw("form session not created", "err", err)
		return nil, huma.Error503ServiceUnavailable("Too many open forms, try again later")
	}
	h.log.Debugw("form session created", "session", id)
	return newFormResponse(id, form), nil
}

func (h *FormHandler) HandleGet(ctx context.Context, input *FormPath) (*FormResponse, error) {
	id, form, err := h.lookup(input.ID)
	if err != nil {
		return nil, err
	}
	return newFormResponse(id, form), nil
}

type UpdateFormRequest struct {
	FormPath
	Body struct {
		FullName           *string `json:"fullName,omitempty" doc:"Full name"`
		Email              *string `json:"email,omitempty" doc:"Primary email"`
		ShootCategory      *string `json:"shootCategory,omitempty" doc:"individual, group, or empty to unset"`
		PhoneNumber        *string `json:"phoneNumber,omitempty" doc:"Optional phone number"`
		Notes              *string `json:"notes,omitempty" doc:"Optional notes"`
		SocialMediaConsent *bool   `json:"socialMediaConsent,omitempty" doc:"Consent to appear on social media"`
	}
}

func (h *FormHandler) HandleUpdate(ctx context.Context, input *UpdateFormRequest) (*FormResponse, error) {
	id, form, err := h.lookup(input.ID)
	if err != nil {
		return nil, err
	}

	var category *registration.Category
	if input.Body.ShootCategory != nil {
		c, err := registration.ParseCategory(*input.Body.ShootCategory)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity(err.Error(), &huma.ErrorDetail{
				Location: "body.shootCategory",
				Message:  "must be individual, group, or empty",
				Value:    *input.Body.ShootCategory,
			})
		}
		category = &c
	}

	b := input.Body
	var edits []func() error
	if b.FullName != nil {
		edits = append(edits, func() error { return form.SetFullName(*b.FullName) })
	}
	if b.Email != nil {
		edits = append(edits, func() error { return form.SetEmail(*b.Email) })
	}
	if category != nil {
		edits = append(edits, func() error { return form.SetCategory(*category) })
	}
	if b.PhoneNumber != nil {
		edits = append(edits, func() error { return form.SetPhoneNumber(*b.PhoneNumber) })
	}
	if b.Notes != nil {
		edits = append(edits, func() error { return form.SetNotes(*b.Notes) })
	}
	if b.SocialMediaConsent != nil {
		edits = append(edits, func() error { return form.SetSocialMediaConsent(*b.SocialMediaConsent) })
	}

	for _, edit := range edits {
		if err := edit(); err != nil {
			return nil, editError(err)
		}
	}
	return newFormResponse(id, form), nil
}

func (h *FormHandler) HandleAddEmail(ctx context.Context, input *FormPath) (*FormResponse, error) {
	id, form, err := h.lookup(input.ID)
	if err != nil {
		return nil, err
	}
	if err := form.AddEmail(); err != nil {
		return nil, editError(err)
	}
	return newFormResponse(id, form), nil
}

type UpdateEmailRequest struct {
	EmailPath
	Body struct {
		Value string `json:"value" doc:"Additional email address, may be empty"`
	}
}

func (h *FormHandler) HandleUpdateEmail(ctx context.Context, input *UpdateEmailRequest) (*FormResponse, error) {
	id, form, err := h.lookup(input.ID)
	if err != nil {
		return nil, err
	}
	if err := form.UpdateEmail(input.Index, input.Body.Value); err != nil {
		return nil, editError(err)
	}
	return newFormResponse(id, form), nil
}

func (h *FormHandler) HandleRemoveEmail(ctx context.Context, input *EmailPath) (*FormResponse, error) {
	id, form, err := h.lookup(input.ID)
	if err != nil {
		return nil, err
	}
	if err := form.RemoveEmail(input.Index); err != nil {
		return nil, editError(err)
	}
	return newFormResponse(id, form), nil
}

func (h *FormHandler) HandleSubmit(ctx context.Context, input *FormPath) (*FormResponse, error) {
	id, form, err := h.lookup(input.ID)
	if err != nil {
		return nil, err
	}

	err = form.Submit(ctx)

	var verr *registration.ValidationError
	var serr *registration.SubmitError
	switch {
	case err == nil:
		return newFormResponse(id, form), nil
	case errors.As(err, &verr):
		details := make([]error, 0, len(verr.Errors))
		for _, field := range verr.Errors.Fields() {
			details = append(details, &huma.ErrorDetail{
				Location: field,
				Message:  verr.Errors[field],
			})
		}
		return nil, huma.Error422UnprocessableEntity("Registration is invalid", details...)
	case errors.As(err, &serr):
		if serr.Timeout() {
			return nil, huma.Error504GatewayTimeout(registration.FailureNotice)
		}
		return nil, huma.Error502BadGateway(registration.FailureNotice)
	case errors.Is(err, registration.ErrSubmitInProgress), errors.Is(err, registration.ErrAlreadySubmitted):
		return nil, huma.Error409Conflict(err.Error())
	default:
		return nil, huma.Error500InternalServerError("Failed to process registration: " + err.Error())
	}
}

func (h *FormHandler) HandleReset(ctx context.Context, input *FormPath) (*FormResponse, error) {
	id, form, err := h.lookup(input.ID)
	if err != nil {
		return nil, err
	}
	if err := form.Reset(); err != nil {
		return nil, huma.Error409Conflict("Only a submitted form can be reset")
	}
	return newFormResponse(id, form), nil
}
