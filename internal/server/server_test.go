package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	srv := New(":8080", http.NotFoundHandler(), 20*time.Second)

	assert.Equal(t, ":8080", srv.Addr)
	assert.Equal(t, 35*time.Second, srv.WriteTimeout)
	assert.Equal(t, 10*time.Second, srv.ReadTimeout)
	assert.Equal(t, 60*time.Second, srv.IdleTimeout)
}
