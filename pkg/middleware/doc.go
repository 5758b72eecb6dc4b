// Package middleware provides HTTP observability middleware for coursebook:
// Prometheus request metrics and OpenTelemetry server spans.
//
// Both are plain func(http.Handler) http.Handler values and mount on a chi
// router after routing, so metrics and span names use the route pattern
// ("/api/courses/{id}") rather than the raw path:
//
//	m := middleware.NewMetrics(middleware.WithNamespace("coursebook"))
//	r := chi.NewRouter()
//	r.Use(middleware.Tracing(), m.Middleware)
package middleware
