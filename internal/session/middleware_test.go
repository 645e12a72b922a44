package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waltwissle/Photo-Shoot-Registration/internal/registration"
)

func TestMiddleware(t *testing.T) {
	store := NewStore(time.Hour, func() *registration.Form {
		return registration.NewForm(registration.Options{})
	})
	cookies := NewCookieSigner([]byte("test-secret"), time.Hour)

	var seen uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, form, ok := FromContext(r.Context())
		require.True(t, ok)
		require.NotNil(t, form)
		seen = id
		w.WriteHeader(http.StatusOK)
	})
	handler := Middleware(store, cookies)(next)

	serve := func(c *http.Cookie) *http.Cookie {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		if c != nil {
			req.AddCookie(c)
		}
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
		for _, got := range rr.Result().Cookies() {
			if got.Name == CookieName {
				return got
			}
		}
		t.Fatal("expected a session cookie")
		return nil
	}

	t.Run("NewSession", func(t *testing.T) {
		c := serve(nil)
		assert.Equal(t, 1, store.Len())
		assert.True(t, c.HttpOnly)

		id, err := cookies.ParseToken(c.Value)
		require.NoError(t, err)
		assert.Equal(t, seen, id)
	})

	t.Run("ExistingSession", func(t *testing.T) {
		c := serve(nil)
		first := seen
		before := store.Len()

		serve(c)
		assert.Equal(t, first, seen)
		assert.Equal(t, before, store.Len())
	})

	t.Run("ForgedCookie", func(t *testing.T) {
		other := NewCookieSigner([]byte("other-secret"), time.Hour)
		token, err := other.GenerateToken(uuid.New())
		require.NoError(t, err)

		c := serve(&http.Cookie{Name: CookieName, Value: token})
		assert.NotEqual(t, token, c.Value)
	})

	t.Run("EvictedSession", func(t *testing.T) {
		c := serve(nil)
		evicted := seen
		store.Delete(evicted)

		serve(c)
		assert.NotEqual(t, evicted, seen)
	})

	t.Run("GetWithoutSession", func(t *testing.T) {
		before := store.Len()
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, uuid.Nil, seen)
		assert.Empty(t, rr.Result().Cookies())
		assert.Equal(t, before, store.Len())
	})

	t.Run("GetWithSession", func(t *testing.T) {
		c := serve(nil)
		created := seen

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(c)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, created, seen)
		assert.NotEmpty(t, rr.Result().Cookies())
	})

	t.Run("NoSession", func(t *testing.T) {
		_, _, ok := FromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
		assert.False(t, ok)
	})
}

func TestMiddleware_StoreFull(t *testing.T) {
	store := NewStore(time.Hour, func() *registration.Form {
		return registration.NewForm(registration.Options{})
	}, WithMaxSessions(1))
	cookies := NewCookieSigner([]byte("test-secret"), time.Hour)
	handler := Middleware(store, cookies)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	_, _, err := store.Create()
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, 1, store.Len())

	// Viewing the page still works.
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
