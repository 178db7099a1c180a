package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-pulse-api/internal/config"
	"github.com/vfg2006/sales-pulse-api/internal/domain"
	"github.com/vfg2006/sales-pulse-api/internal/usecases/uploading/mocks"
	"github.com/vfg2006/sales-pulse-api/pkg/log"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.Server{Host: "localhost", Port: "0", AllowedOrigins: []string{"http://localhost:3000"}},
		Upload:    config.Upload{Dir: "uploads", MaxSizeMB: 1},
		Forecast:  config.Forecast{HorizonDays: 30},
		Analytics: config.Analytics{RateLimitRPS: 0.0001, Burst: 1},
	}
}

func TestServer_Routes(t *testing.T) {
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUploader := mocks.NewMockUploader(ctrl)
	server, err := New(testConfig(), mockUploader, nil, nil)
	require.NoError(t, err)
	h := server.Handler()

	t.Run("Healthcheck com ID de correlação", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(log.CorrelationIDHeader))
	})

	t.Run("Métricas expostas", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "sales_pulse_http_requests_total")
	})

	t.Run("Rota inexistente", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/desconhecida", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Cron sem serviço de retenção aceita apenas all", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/cron/upload-retention/run", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Análise limitada por taxa", func(t *testing.T) {
		mockUploader.EXPECT().
			GetAnalytics(gomock.Any(), int64(1)).
			Return(&domain.AnalyticsResponse{
				Summary:         &domain.AnalysisSummary{TopProducts: domain.RankedValues{}, CategoricalBreakdowns: domain.NewBreakdowns()},
				Forecast:        domain.NewForecastFailure("No valid data rows after cleaning", domain.ConfidenceNone),
				Recommendations: []string{},
			}, nil)

		first := httptest.NewRecorder()
		h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/v1/uploads/1/analytics", nil))
		second := httptest.NewRecorder()
		h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/v1/uploads/1/analytics", nil))

		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, http.StatusTooManyRequests, second.Code)
	})

	t.Run("Preflight CORS", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/v1/uploads", strings.NewReader(""))
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
