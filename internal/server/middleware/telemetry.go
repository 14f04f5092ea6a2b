package middleware

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "portfolio/backend/internal/server"

var routeKey = contextKey{"route"}

// routeSlot lets Route report the matched pattern back to Telemetry.
type routeSlot struct{ pattern string }

// Telemetry starts a server span per request and records request count and
// duration. Spans are named by method until Route names the matched pattern;
// raw paths never become span names or metric attributes. It uses the global providers, so it records nothing until
// otel.Providers.SetGlobal has run. skipPaths are not instrumented.
func Telemetry(skipPaths ...string) func(http.Handler) http.Handler {
	skip := make(map[string]bool, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = true
	}
	tracer := otel.Tracer(instrumentationName)
	meter := otel.Meter(instrumentationName)
	requests, _ := meter.Int64Counter("http.server.requests",
		metric.WithDescription("HTTP requests served"))
	duration, _ := meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("HTTP request duration"), metric.WithUnit("s"))
	propagator := propagation.TraceContext{}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skip[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}
			start := time.Now()
			ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			slot := &routeSlot{}
			ctx = context.WithValue(ctx, routeKey, slot)
			ctx, span := tracer.Start(ctx, r.Method,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String(string(semconv.HTTPRequestMethodKey), r.Method),
					semconv.URLPath(r.URL.Path),
				))
			defer span.End()

			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r.WithContext(ctx))

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			span.SetAttributes(semconv.HTTPResponseStatusCode(status))
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}
			kvs := []attribute.KeyValue{
				attribute.String(string(semconv.HTTPRequestMethodKey), r.Method),
				semconv.HTTPResponseStatusCode(status),
			}
			if slot.pattern != "" {
				kvs = append(kvs, semconv.HTTPRoute(slot.pattern))
			}
			attrs := metric.WithAttributes(kvs...)
			requests.Add(ctx, 1, attrs)
			duration.Record(ctx, time.Since(start).Seconds(), attrs)
		})
	}
}

// Route tags the request with the router pattern it matched: the active span is
// renamed to "METHOD pattern" and carries http.route, as do the request metrics.
func Route(pattern string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if slot, ok := r.Context().Value(routeKey).(*routeSlot); ok {
			slot.pattern = pattern
		}
		span := trace.SpanFromContext(r.Context())
		span.SetName(r.Method + " " + pattern)
		span.SetAttributes(semconv.HTTPRoute(pattern))
		next.ServeHTTP(w, r)
	})
}
