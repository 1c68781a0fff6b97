// Package observability provides logging, Prometheus metrics, health
// probes, OpenTelemetry setup and graceful shutdown for the plugin service.
//
// The service logger is logrus; components receive it by injection rather
// than reading a global. Metrics live in an explicit registry so tests can
// create isolated instances. OpenTelemetry is off by default and exports
// over OTLP gRPC when enabled.
package observability
