package api

import (
	"context"
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/commander-api/internal/domain"
)

func requestWithParam(name, value string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(name, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestGetPathID(t *testing.T) {
	id, err := getPathID(requestWithParam("id", "42"), "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "abc", "1.5", "99999999999999999999"} {
		_, err := getPathID(requestWithParam("id", raw), "id")
		assert.ErrorIs(t, err, domain.ErrInvalidID, "value %q", raw)
	}
}

func TestResourceURL(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "http://localhost:8080/api/commands", nil)
	assert.Equal(t, "http://localhost:8080/api/commands/3", resourceURL(req, "/api/commands/3"))

	req.Header.Set("X-Forwarded-Proto", "https")
	assert.Equal(t, "https://localhost:8080/api/commands/3", resourceURL(req, "/api/commands/3"))

	req.Header.Set("X-Forwarded-Proto", "gopher")
	assert.Equal(t, "http://localhost:8080/x", resourceURL(req, "/x"))

	req.TLS = &tls.ConnectionState{}
	assert.Equal(t, "https://localhost:8080/x", resourceURL(req, "/x"))
}
