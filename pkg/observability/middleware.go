package observability

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// httpStatusServerError is the threshold for HTTP server errors.
const httpStatusServerError = 500

const (
	statusOK       = "ok"
	statusRejected = "rejected"
)

// HTTPMiddleware returns router middleware that opens a server span per
// request, records RED metrics and logs the completed request.
// Span names use route-template format ("GET /api/charts/{chart}") once the
// router has matched, falling back to the raw path. red and logger may be nil.
func HTTPMiddleware(tracer trace.Tracer, red *REDMetrics, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, hr *http.Request) {
			start := time.Now()

			// Extract W3C traceparent/tracestate/baggage from incoming headers.
			parentCtx := otel.GetTextMapPropagator().Extract(hr.Context(), propagation.HeaderCarrier(hr.Header))

			ctx, span := tracer.Start(parentCtx, hr.Method+" "+hr.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					semconv.HTTPRequestMethodKey.String(hr.Method),
					attribute.String("http.target", hr.URL.Path),
				),
			)
			defer span.End()

			var done func()
			if red != nil {
				done = red.TrackInflight(ctx, hr.Method)
			}

			ww := middleware.NewWrapResponseWriter(rw, hr.ProtoMajor)
			next.ServeHTTP(ww, hr.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			route := routePattern(hr)
			if route != "" {
				span.SetName(hr.Method + " " + route)
				span.SetAttributes(semconv.HTTPRoute(route))
			} else {
				route = hr.URL.Path
			}

			span.SetAttributes(semconv.HTTPResponseStatusCode(status))

			if status >= httpStatusServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}

			elapsed := time.Since(start)

			if red != nil {
				done()
				red.RecordRequest(ctx, hr.Method+" "+route, requestStatus(status), elapsed)
			}

			if logger != nil {
				logger.InfoContext(ctx, "http request",
					"method", hr.Method,
					"path", hr.URL.Path,
					"route", route,
					"status", status,
					"bytes", ww.BytesWritten(),
					"duration", elapsed)
			}
		})
	}
}

// routePattern returns the chi route template matched for hr, if any.
// The routing context is shared with the router, so it is complete once the
// handler chain has returned.
func routePattern(hr *http.Request) string {
	rctx := chi.RouteContext(hr.Context())
	if rctx == nil {
		return ""
	}

	return rctx.RoutePattern()
}

func requestStatus(code int) string {
	switch {
	case code >= httpStatusServerError:
		return statusError
	case code >= http.StatusBadRequest:
		return statusRejected
	default:
		return statusOK
	}
}
