package middleware

import (
	"net/http"
	"strconv"

	"github.com/vfg2006/sales-pulse-api/pkg/apiErrors"
	"github.com/vfg2006/sales-pulse-api/pkg/log"
	"github.com/vfg2006/sales-pulse-api/pkg/metrics"
	"golang.org/x/time/rate"
)

const retryAfterSeconds = 1

// RateLimiter limita a vazão de uma rota com um token bucket compartilhado
type RateLimiter struct {
	limiter *rate.Limiter
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Handler recusa com 429 quando não há token disponível
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.limiter.Allow() {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
			}).Warn("Limite de requisições excedido")
			metrics.IncRateLimited()

			w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
			apiErrors.WriteError(w, apiErrors.ErrTooManyRequests, "Limite de requisições excedido, tente novamente em instantes", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
