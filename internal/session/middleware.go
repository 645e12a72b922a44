package session

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/waltwissle/Photo-Shoot-Registration/internal/registration"
)

type contextKey string

const formKey contextKey = "form_session"

type current struct {
	id   uuid.UUID
	form *registration.Form
}

// Middleware attaches the caller's form session to the request context. A
// missing, forged or expired cookie, or one naming an evicted session, starts
// a new session on the first unsafe request; GET and HEAD get an unstored
// blank form so crawlers do not fill the store. The cookie is reissued on
// every request that has a session so its expiry tracks the idle TTL.
func Middleware(store *Store, cookies *CookieSigner) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := cookies.FromRequest(r)
			form, ok := store.Get(id)
			if err != nil || !ok {
				if r.Method == http.MethodGet || r.Method == http.MethodHead {
					ctx := context.WithValue(r.Context(), formKey, current{id: uuid.Nil, form: store.Blank()})
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
				id, form, err = store.Create()
				if err != nil {
					http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
					return
				}
			}

			if err := cookies.SetCookie(w, id); err != nil {
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), formKey, current{id: id, form: form})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext returns the session attached by Middleware.
func FromContext(ctx context.Context) (uuid.UUID, *registration.Form, bool) {
	c, ok := ctx.Value(formKey).(current)
	return c.id, c.form, ok
}
