package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Logger logs incoming HTTP requests.
func Logger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.RequestURI()).
				Str("duration", time.Since(start).String()).
				Msg("request")
		})
	}
}
