package middlewares

import (
	"context"
	"net/http"
	"time"

	"github.com/botpanel/botpanel/internal/models"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Logger attaches a request scoped zap logger to the context and logs the outcome of each request.
func Logger(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		}
		if requestID := middleware.GetReqID(r.Context()); requestID != "" {
			fields = append(fields, zap.String("request_id", requestID))
		}
		if spanContext := trace.SpanFromContext(r.Context()).SpanContext(); spanContext.HasTraceID() {
			fields = append(fields, zap.String("trace_id", spanContext.TraceID().String()))
		}

		logger := zap.L().With(fields...)
		ctx := context.WithValue(r.Context(), models.LoggerKey{}, logger)

		defer func() {
			logger.Info("Request completed",
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		}()

		next.ServeHTTP(ww, r.WithContext(ctx))
	}
	return http.HandlerFunc(fn)
}

// GetLogger returns the request logger, falling back to the global logger.
func GetLogger(r *http.Request) *zap.Logger {
	if logger, ok := r.Context().Value(models.LoggerKey{}).(*zap.Logger); ok {
		return logger
	}
	return zap.L()
}
