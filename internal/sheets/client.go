// Package sheets posts registrations to the spreadsheet web app endpoint.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/waltwissle/Photo-Shoot-Registration/internal/registration"
)

var tracer = otel.GetTracerProvider().Tracer("github.com/waltwissle/Photo-Shoot-Registration/internal/sheets")

type Mode string

const (
	// ModeChecked inspects the status and decodes the JSON body.
	ModeChecked Mode = "checked"
	// ModeOpaque treats any completed round trip as success.
	ModeOpaque Mode = "opaque"
)

const (
	DefaultTimeout = 20 * time.Second
	maxBodyBytes   = 1 << 20
)

var (
	ErrTimeout           = errors.New("sheets: request timed out")
	ErrTransport         = errors.New("sheets: transport failure")
	ErrStatus            = errors.New("sheets: unexpected status")
	ErrMalformedResponse = errors.New("sheets: malformed response")
	ErrRejected          = errors.New("sheets: submission rejected")
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(s)); m {
	case ModeChecked, ModeOpaque:
		return m, nil
	case "":
		return ModeChecked, nil
	default:
		return "", fmt.Errorf("unknown submit mode %q", s)
	}
}

type Config struct {
	Endpoint   string
	Mode       Mode
	Timeout    time.Duration
	HTTPClient *http.Client
}

type Client struct {
	endpoint string
	mode     Mode
	timeout  time.Duration
	http     *http.Client
}

func NewClient(cfg Config) *Client {
	c := &Client{
		endpoint: cfg.Endpoint,
		mode:     cfg.Mode,
		timeout:  cfg.Timeout,
		http:     cfg.HTTPClient,
	}
	if c.mode == "" {
		c.mode = ModeChecked
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	return c
}

// response is the body shape returned by the spreadsheet script.
type response struct {
	Result  string `json:"result"`
	Status  string `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Submit performs one multipart POST of p. It never retries.
func (c *Client) Submit(ctx context.Context, p registration.Payload) error {
	ctx, span := tracer.Start(ctx, "sheets.Submit",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("sheets.mode", string(c.mode))),
	)
	defer span.End()

	err := c.submit(ctx, p)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (c *Client) submit(ctx context.Context, p registration.Payload) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, contentType, err := encode(p)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return classify(ctx, err)
	}
	defer resp.Body.Close()

	if c.mode == ModeOpaque {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return classify(ctx, err)
	}
	return decode(raw)
}

func encode(p registration.Payload) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range p {
		if err := w.WriteField(f.Key, f.Value); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func decode(raw []byte) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("%w: expected a JSON object", ErrMalformedResponse)
	}
	var r response
	if err := json.Unmarshal(trimmed, &r); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if strings.EqualFold(r.Result, "error") || strings.EqualFold(r.Status, "error") {
		reason := r.Error
		if reason == "" {
			reason = r.Message
		}
		return fmt.Errorf("%w: %s", ErrRejected, reason)
	}
	return nil
}

// classify separates deadline expiry from other network failures.
func classify(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, context.DeadlineExceeded)
	}
	return fmt.Errorf("%w: %w", ErrTransport, err)
}
