package urllog

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// CustomLoggerMiddleware логирует каждый входящий запрос вместе с
// request id из chi middleware.RequestID
func CustomLoggerMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Info("request received",
				slog.String("method", r.Method),
				slog.String("url", r.URL.String()),
				slog.String("requestID", middleware.GetReqID(r.Context())),
			)
			next.ServeHTTP(w, r)
		})
	}
}
