package logging

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// RequestLogger registra una línea por request. El nivel depende del status:
// 5xx error, 4xx warn, resto info.
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			start := time.Now()
			wrapped := middleware.NewWrapResponseWriter(writer, request.ProtoMajor)

			next.ServeHTTP(wrapped, request)

			status := wrapped.Status()
			if status == 0 {
				status = http.StatusOK
			}

			fields := []zap.Field{
				zap.String("method", request.Method),
				zap.String("path", request.URL.Path),
				zap.Int("status", status),
				zap.Duration("latency", time.Since(start)),
				zap.String("client_ip", request.RemoteAddr),
				zap.Int("bytes", wrapped.BytesWritten()),
			}

			entry := FromContext(request.Context(), logger)
			switch {
			case status >= http.StatusInternalServerError:
				entry.Error("http_request", fields...)
			case status >= http.StatusBadRequest:
				entry.Warn("http_request", fields...)
			default:
				entry.Info("http_request", fields...)
			}
		})
	}
}
