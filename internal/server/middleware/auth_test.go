package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/hemicycle/pkg/logging"
)

func TestAuth(t *testing.T) {
	cfg := DefaultAuthConfig()
	cfg.Enabled = true
	cfg.APIKey = "secret"

	tests := []struct {
		name   string
		path   string
		header map[string]string
		want   int
	}{
		{name: "public path", path: "/health", want: http.StatusOK},
		{name: "missing key", path: "/api/v1/members", want: http.StatusUnauthorized},
		{name: "wrong key", path: "/api/v1/members", header: map[string]string{"X-API-Key": "nope"}, want: http.StatusUnauthorized},
		{name: "api key header", path: "/api/v1/members", header: map[string]string{"X-API-Key": "secret"}, want: http.StatusOK},
		{name: "bearer", path: "/api/v1/members", header: map[string]string{"Authorization": "Bearer secret"}, want: http.StatusOK},
		{name: "raw authorization", path: "/api/v1/members", header: map[string]string{"Authorization": "secret"}, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Auth(cfg, logging.NewNopLogger())(okHandler())
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusUnauthorized {
				assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
			}
		})
	}
}

func TestAuth_Disabled(t *testing.T) {
	h := Auth(DefaultAuthConfig(), logging.NewNopLogger())(okHandler())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/members", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_EmptyConfiguredKeyRejects(t *testing.T) {
	cfg := DefaultAuthConfig()
	cfg.Enabled = true

	h := Auth(cfg, logging.NewNopLogger())(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/members", nil)
	req.Header.Set("Authorization", "")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
