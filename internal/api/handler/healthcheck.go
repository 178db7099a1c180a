package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Pinger verifica uma dependência externa, como o banco de dados
type Pinger interface {
	Ping(ctx context.Context) error
}

const healthcheckTimeout = 2 * time.Second

func HealthcheckHandler(dependencies ...Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthcheckTimeout)
		defer cancel()

		status := http.StatusOK
		response := map[string]any{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		}

		for _, dependency := range dependencies {
			if err := dependency.Ping(ctx); err != nil {
				logrus.WithError(err).Warn("healthcheck: dependência indisponível")
				status = http.StatusServiceUnavailable
				response["status"] = "unavailable"
				break
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logrus.WithError(err).Warn("error responding to healthcheck")
		}
	})
}
