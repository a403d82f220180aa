// Package middleware provides observability middleware for the router:
// Prometheus metrics and OpenTelemetry tracing around navigation events.
package middleware
