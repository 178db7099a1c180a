package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

func TestHealthcheckHandler(t *testing.T) {
	tests := []struct {
		name         string
		dependencies []Pinger
		wantStatus   int
		wantBody     string
	}{
		{
			name:       "Sem dependências",
			wantStatus: http.StatusOK,
			wantBody:   "ok",
		},
		{
			name:         "Banco disponível",
			dependencies: []Pinger{pingerFunc(func(ctx context.Context) error { return nil })},
			wantStatus:   http.StatusOK,
			wantBody:     "ok",
		},
		{
			name:         "Banco indisponível",
			dependencies: []Pinger{pingerFunc(func(ctx context.Context) error { return errors.New("connection refused") })},
			wantStatus:   http.StatusServiceUnavailable,
			wantBody:     "unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			HealthcheckHandler(tt.dependencies...).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body["status"])
			assert.NotEmpty(t, body["time"])
		})
	}
}
