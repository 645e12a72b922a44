package registration

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/waltwissle/Photo-Shoot-Registration/internal/metrics"
)

var tracer = otel.GetTracerProvider().Tracer("github.com/waltwissle/Photo-Shoot-Registration/internal/registration")

// FailureNotice is the alert raised when the spreadsheet submission fails.
const FailureNotice = "There was an error submitting your form. Please try again."

var (
	ErrNotEditable      = errors.New("form is not editable")
	ErrSubmitInProgress = errors.New("submission already in progress")
	ErrAlreadySubmitted = errors.New("form already submitted")
	ErrNotSubmitted     = errors.New("form has not been submitted")
)

type State int

const (
	StateEditing State = iota
	StateSubmitting
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Submitter delivers a payload to the spreadsheet endpoint.
type Submitter interface {
	Submit(ctx context.Context, payload Payload) error
}

// Recorder appends a successful submission to a local log.
type Recorder interface {
	Record(ctx context.Context, s Submission) error
}

type Notifier interface {
	NotifyRegistration(s Submission) error
}

// SubmitError wraps a transport failure. The draft is left untouched.
type SubmitError struct {
	Err error
}

func (e *SubmitError) Error() string { return "submit registration: " + e.Err.Error() }

func (e *SubmitError) Unwrap() error { return e.Err }

// Timeout reports whether the request ran out of time.
func (e *SubmitError) Timeout() bool { return errors.Is(e.Err, context.DeadlineExceeded) }

type Options struct {
	Submitter Submitter
	// Recorder and Notifier are optional and best effort.
	Recorder Recorder
	Notifier Notifier
	// Alert is called once per failed submission with FailureNotice.
	Alert   func(message string)
	Logger  *zap.SugaredLogger
	Now     func() time.Time
	NewCode func(Category) string
}

// Form holds the state of one registration session: the draft, the photo
// code, the last validation result and the submission workflow state.
type Form struct {
	opts Options

	mu      sync.Mutex
	state   State
	draft   Draft
	code    string
	errors  ValidationErrors
	notice  string
	summary *Submission
}

func NewForm(opts Options) *Form {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewCode == nil {
		opts.NewCode = GenerateCode
	}
	return &Form{opts: opts, draft: NewDraft()}
}

// Snapshot is a consistent copy of the form state.
type Snapshot struct {
	State     State
	Draft     Draft
	PhotoCode string
	Errors    ValidationErrors
	Notice    string
	Summary   *Submission
}

func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := Snapshot{
		State:     f.state,
		Draft:     f.draft.clone(),
		PhotoCode: f.code,
		Errors:    f.errors.clone(),
		Notice:    f.notice,
	}
	if f.summary != nil {
		sum := *f.summary
		sum.AdditionalEmails = append([]string(nil), f.summary.AdditionalEmails...)
		s.Summary = &sum
	}
	return s
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Form) PhotoCode() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.code
}

func (f *Form) edit(fn func(d *Draft) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateEditing {
		return ErrNotEditable
	}
	return fn(&f.draft)
}

func (f *Form) SetFullName(v string) error {
	return f.edit(func(d *Draft) error { d.FullName = v; return nil })
}

func (f *Form) SetEmail(v string) error {
	return f.edit(func(d *Draft) error { d.Email = v; return nil })
}

func (f *Form) SetPhoneNumber(v string) error {
	return f.edit(func(d *Draft) error { d.PhoneNumber = v; return nil })
}

func (f *Form) SetNotes(v string) error {
	return f.edit(func(d *Draft) error { d.Notes = v; return nil })
}

func (f *Form) SetSocialMediaConsent(v bool) error {
	return f.edit(func(d *Draft) error { d.SocialMediaConsent = v; return nil })
}

// SetCategory changes the shoot category. Every change to a non-empty
// category issues a fresh photo code; clearing the category drops it.
func (f *Form) SetCategory(c Category) error {
	return f.edit(func(d *Draft) error {
		if d.ShootCategory == c {
			return nil
		}
		d.ShootCategory = c
		if c == CategoryUnset {
			f.code = ""
		} else {
			f.code = f.opts.NewCode(c)
		}
		return nil
	})
}

func (f *Form) AddEmail() error {
	return f.edit(func(d *Draft) error { d.AddEmail(); return nil })
}

func (f *Form) UpdateEmail(i int, v string) error {
	return f.edit(func(d *Draft) error { return d.UpdateEmail(i, v) })
}

func (f *Form) RemoveEmail(i int) error {
	return f.edit(func(d *Draft) error { return d.RemoveEmail(i) })
}

// SetAdditionalEmails replaces every contact slot at once, as a posted HTML
// form does. An empty list still leaves one empty slot.
func (f *Form) SetAdditionalEmails(values []string) error {
	return f.edit(func(d *Draft) error {
		d.AdditionalEmails = append([]string(nil), values...)
		if len(d.AdditionalEmails) == 0 {
			d.AdditionalEmails = []string{""}
		}
		return nil
	})
}

// Submit validates the draft and, when valid, posts it exactly once. On
// failure the form returns to editing with the draft intact and the failure
// notice set.
func (f *Form) Submit(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "registration.Submit")
	defer span.End()

	f.mu.Lock()
	switch f.state {
	case StateSubmitting:
		f.mu.Unlock()
		return ErrSubmitInProgress
	case StateSubmitted:
		f.mu.Unlock()
		return ErrAlreadySubmitted
	}

	f.notice = ""
	f.errors = Validate(f.draft)
	if len(f.errors) > 0 {
		verr := &ValidationError{Errors: f.errors.clone()}
		f.mu.Unlock()
		metrics.ValidationFailures.Inc()
		span.SetStatus(codes.Error, "validation failed")
		return verr
	}

	f.state = StateSubmitting
	sub := newSubmission(f.draft, f.code, f.opts.Now())
	f.mu.Unlock()

	span.SetAttributes(
		attribute.String("registration.category", string(sub.ShootCategory)),
		attribute.String("registration.photo_code", sub.PhotoCode),
	)

	// Once started the POST only ends by completing or by the submitter's own
	// timeout. A client that goes away must not turn a delivered row into a
	// failure the user then retries.
	start := time.Now()
	err := f.opts.Submitter.Submit(context.WithoutCancel(ctx), BuildPayload(sub))
	metrics.SubmitDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		serr := &SubmitError{Err: err}
		outcome := metrics.OutcomeFailure
		if serr.Timeout() {
			outcome = metrics.OutcomeTimeout
		}
		metrics.Submissions.WithLabelValues(outcome).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "submission failed")
		f.opts.Logger.Errorw("registration submission failed", "photo_code", sub.PhotoCode, "timeout", serr.Timeout(), "err", err)

		f.mu.Lock()
		f.state = StateEditing
		f.notice = FailureNotice
		f.mu.Unlock()

		if f.opts.Alert != nil {
			f.opts.Alert(FailureNotice)
		}
		return serr
	}

	metrics.Submissions.WithLabelValues(metrics.OutcomeSuccess).Inc()
	f.mu.Lock()
	f.state = StateSubmitted
	f.summary = &sub
	f.mu.Unlock()

	f.opts.Logger.Infow("registration submitted", "photo_code", sub.PhotoCode, "category", sub.ShootCategory)
	f.afterSubmit(context.WithoutCancel(ctx), sub)
	return nil
}

// afterSubmit runs the best-effort side effects. Their failures are logged
// and never change the outcome of the submission.
func (f *Form) afterSubmit(ctx context.Context, sub Submission) {
	if f.opts.Recorder != nil {
		if err := f.opts.Recorder.Record(ctx, sub); err != nil {
			metrics.SideEffectFailures.WithLabelValues(metrics.SinkLog).Inc()
			f.opts.Logger.Warnw("could not record submission locally", "photo_code", sub.PhotoCode, "err", err)
		}
	}
	if f.opts.Notifier != nil {
		if err := f.opts.Notifier.NotifyRegistration(sub); err != nil {
			metrics.SideEffectFailures.WithLabelValues(metrics.SinkNotifier).Inc()
			f.opts.Logger.Warnw("could not send registration notification", "photo_code", sub.PhotoCode, "err", err)
		}
	}
}

// DismissNotice clears the failure alert once it has been shown.
func (f *Form) DismissNotice() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notice = ""
}

// Reset starts a new registration after a successful one.
func (f *Form) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateSubmitted {
		return ErrNotSubmitted
	}
	f.state = StateEditing
	f.draft = NewDraft()
	f.code = ""
	f.errors = nil
	f.notice = ""
	f.summary = nil
	return nil
}
