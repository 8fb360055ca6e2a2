// Package instrumentation wires OpenTelemetry metrics and tracing for the
// server mode.
//
// Configuration comes from environment variables so deployments can switch
// exporters without code changes. Metrics default to a Prometheus exporter
// scraped from a dedicated endpoint; tracing is off unless an exporter is
// chosen explicitly.
//
// The Metrics recorder is safe to use before initialization: a zero-value
// recorder drops every measurement, which keeps call sites free of nil
// checks in CLI mode where no provider is started.
package instrumentation
