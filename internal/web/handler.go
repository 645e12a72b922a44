// Package web serves the server-rendered registration page.
package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/waltwissle/Photo-Shoot-Registration/internal/registration"
	"github.com/waltwissle/Photo-Shoot-Registration/internal/session"
)

//go:embed templates/*.html
var templates embed.FS

const (
	defaultQRSize = 256
	minQRSize     = 128
	maxQRSize     = 1024
)

type categoryOption struct {
	Value string
	Label string
}

var categories = []categoryOption{
	{Value: string(registration.CategoryIndividual), Label: registration.CategoryIndividual.Label()},
	{Value: string(registration.CategoryGroup), Label: registration.CategoryGroup.Label()},
}

type pageData struct {
	State      string
	Draft      registration.Draft
	Category   string
	PhotoCode  string
	Errors     registration.ValidationErrors
	Notice     string
	Summary    *registration.Submission
	Categories []categoryOption
	Busy       bool
	ShowQR     bool
}

// pageInput is what the registration page posts back.
type pageInput struct {
	Action             string   `form:"action"`
	Remove             string   `form:"remove"`
	FullName           string   `form:"fullName"`
	Email              string   `form:"email"`
	ShootCategory      string   `form:"shootCategory"`
	AdditionalEmails   []string `form:"additionalEmail"`
	PhoneNumber        string   `form:"phoneNumber"`
	Notes              string   `form:"notes"`
	SocialMediaConsent bool     `form:"socialMediaConsent"`
}

type Handler struct {
	store   *session.Store
	cookies *session.CookieSigner
	formURL string
	log     *zap.SugaredLogger
	tmpl    *template.Template
}

func NewHandler(store *session.Store, cookies *session.CookieSigner, formURL string, log *zap.SugaredLogger) *Handler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	funcs := template.FuncMap{"emailField": registration.AdditionalEmailField}
	return &Handler{
		store:   store,
		cookies: cookies,
		formURL: formURL,
		log:     log,
		tmpl:    template.Must(template.New("web").Funcs(funcs).ParseFS(templates, "templates/*.html")),
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(session.Middleware(h.store, h.cookies))
		r.Get("/", h.Render)
		r.Post("/", h.Post)
		r.Post("/reset", h.Reset)
	})
	r.Get("/qr.png", h.QRCode)
}

func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	_, form, _ := session.FromContext(r.Context())
	h.render(w, form, http.StatusOK)
}

func (h *Handler) Post(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	var in pageInput
	if err := decodeForm(r.PostForm, &in); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	id, form, _ := session.FromContext(r.Context())
	if form.State() == registration.StateEditing {
		if err := apply(form, in); err != nil && !errors.Is(err, registration.ErrNotEditable) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
	}

	switch {
	case in.Remove != "":
		i, err := strconv.Atoi(in.Remove)
		if err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		if err := form.RemoveEmail(i); err != nil && !errors.Is(err, registration.ErrNotEditable) {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
	case in.Action == "add-email":
		if err := form.AddEmail(); err != nil && !errors.Is(err, registration.ErrNotEditable) {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
	case in.Action == "submit":
		err := form.Submit(r.Context())
		if err == nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		h.log.Infow("registration not submitted", "session", id, "err", err)
		h.render(w, form, submitStatus(err))
		return
	}

	h.render(w, form, http.StatusOK)
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	_, form, _ := session.FromContext(r.Context())
	if err := form.Reset(); err != nil {
		h.log.Debugw("reset ignored", "err", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) QRCode(w http.ResponseWriter, r *http.Request) {
	if h.formURL == "" {
		http.NotFound(w, r)
		return
	}

	size := defaultQRSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < minQRSize || n > maxQRSize {
			http.Error(w, "size must be between 128 and 1024", http.StatusBadRequest)
			return
		}
		size = n
	}

	png, err := qrcode.Encode(h.formURL, qrcode.Medium, size)
	if err != nil {
		h.log.Errorw("could not encode QR code", "err", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(png)
}

func (h *Handler) render(w http.ResponseWriter, form *registration.Form, status int) {
	s := form.Snapshot()
	// The failure alert is shown once.
	if s.Notice != "" {
		form.DismissNotice()
	}

	data := pageData{
		State:      s.State.String(),
		Draft:      s.Draft,
		Category:   string(s.Draft.ShootCategory),
		PhotoCode:  s.PhotoCode,
		Errors:     s.Errors,
		Notice:     s.Notice,
		Summary:    s.Summary,
		Categories: categories,
		Busy:       s.State == registration.StateSubmitting,
		ShowQR:     h.formURL != "",
	}

	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "main", data); err != nil {
		h.log.Errorw("render error", "err", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func apply(form *registration.Form, in pageInput) error {
	category, err := registration.ParseCategory(in.ShootCategory)
	if err != nil {
		return err
	}
	for _, edit := range []func() error{
		func() error { return form.SetFullName(in.FullName) },
		func() error { return form.SetEmail(in.Email) },
		func() error { return form.SetCategory(category) },
		func() error { return form.SetAdditionalEmails(in.AdditionalEmails) },
		func() error { return form.SetPhoneNumber(in.PhoneNumber) },
		func() error { return form.SetNotes(in.Notes) },
		func() error { return form.SetSocialMediaConsent(in.SocialMediaConsent) },
	} {
		if err := edit(); err != nil {
			return err
		}
	}
	return nil
}

func submitStatus(err error) int {
	var verr *registration.ValidationError
	var serr *registration.SubmitError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &serr) && serr.Timeout():
		return http.StatusGatewayTimeout
	case errors.As(err, &serr):
		return http.StatusBadGateway
	default:
		return http.StatusConflict
	}
}
