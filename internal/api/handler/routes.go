package handler

import (
	"net/http"

	"github.com/vfg2006/sales-pulse-api/internal/api/handler/router"
	"github.com/vfg2006/sales-pulse-api/internal/config"
	"github.com/vfg2006/sales-pulse-api/internal/usecases/uploading"
	"github.com/vfg2006/sales-pulse-api/pkg/metrics"
	"github.com/vfg2006/sales-pulse-api/pkg/middleware"
)

func Healthcheck(dependencies ...Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(dependencies...),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metrics.Handler(),
		},
	}
}

func Uploads(service uploading.Uploader, uploadCfg config.Upload, analyticsLimiter *middleware.RateLimiter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/uploads",
			Method:  http.MethodPost,
			Handler: CreateUpload(service, uploadCfg.MaxSizeBytes()),
		},
		{
			Path:    "/v1/uploads",
			Method:  http.MethodGet,
			Handler: ListUploads(service),
		},
		{
			Path:    "/v1/uploads/:id",
			Method:  http.MethodGet,
			Handler: GetUpload(service),
		},
		{
			Path:    "/v1/uploads/:id/columns",
			Method:  http.MethodGet,
			Handler: GetUploadColumns(service),
		},
		{
			Path:    "/v1/uploads/:id/mapping",
			Method:  http.MethodPost,
			Handler: SaveUploadMapping(service),
		},
		{
			Path:        "/v1/uploads/:id/analytics",
			Method:      http.MethodGet,
			Handler:     GetUploadAnalytics(service),
			Middlewares: []func(http.Handler) http.Handler{analyticsLimiter.Handler},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
