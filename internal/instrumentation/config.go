package instrumentation

import (
	"fmt"
	"os"
	"strconv"
)

// Exporter names accepted by the configuration.
const (
	ExporterPrometheus = "prometheus"
	ExporterOTLP       = "otlp"
	ExporterStdout     = "stdout"
	ExporterNone       = "none"
)

// Status label values for recorded operations.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Config controls how telemetry is exported.
type Config struct {
	// ServiceName identifies the service in exported telemetry
	// (default: draftpatch).
	ServiceName string

	// ServiceVersion is stamped onto the telemetry resource.
	ServiceVersion string

	// ServiceInstanceID distinguishes instances; falls back to the
	// hostname when empty.
	ServiceInstanceID string

	// Enabled turns all instrumentation on or off
	// (INSTRUMENTATION_ENABLED, default true).
	Enabled bool

	// MetricsExporter is one of prometheus, otlp, stdout
	// (METRICS_EXPORTER, default prometheus).
	MetricsExporter string

	// TracingExporter is one of otlp, stdout, none
	// (TRACING_EXPORTER, default none).
	TracingExporter string

	// OTLPEndpoint is the collector host:port, without a scheme.
	OTLPEndpoint string

	// OTLPInsecure disables TLS toward the collector. Local use only.
	OTLPInsecure bool

	// TraceSamplingRate is the trace sampling ratio in [0, 1]
	// (OTEL_TRACES_SAMPLER_ARG, default 0.1).
	TraceSamplingRate float64

	// PrometheusEndpoint is the metrics scrape path (default /metrics).
	PrometheusEndpoint string

	// DetailedLabels adds high-cardinality labels such as the account.
	// Keep disabled outside of debugging.
	DetailedLabels bool
}

// DefaultConfig builds a Config from the environment.
func DefaultConfig() Config {
	return Config{
		ServiceName:        envOr("OTEL_SERVICE_NAME", "draftpatch"),
		ServiceVersion:     "unknown",
		ServiceInstanceID:  envOr("OTEL_SERVICE_INSTANCE_ID", ""),
		Enabled:            envBoolOr("INSTRUMENTATION_ENABLED", true),
		MetricsExporter:    envOr("METRICS_EXPORTER", ExporterPrometheus),
		TracingExporter:    envOr("TRACING_EXPORTER", ExporterNone),
		OTLPEndpoint:       envOr("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPInsecure:       envBoolOr("OTEL_EXPORTER_OTLP_INSECURE", false),
		TraceSamplingRate:  envFloatOr("OTEL_TRACES_SAMPLER_ARG", 0.1),
		PrometheusEndpoint: envOr("PROMETHEUS_ENDPOINT", "/metrics"),
		DetailedLabels:     envBoolOr("METRICS_DETAILED_LABELS", false),
	}
}

// Validate rejects unknown exporters and out-of-range sampling rates.
func (c *Config) Validate() error {
	if c.TraceSamplingRate < 0 || c.TraceSamplingRate > 1 {
		return fmt.Errorf("trace sampling rate must be between 0.0 and 1.0, got %f", c.TraceSamplingRate)
	}

	switch c.MetricsExporter {
	case "", ExporterPrometheus, ExporterStdout:
	case ExporterOTLP:
		if c.OTLPEndpoint == "" {
			return fmt.Errorf("OTLP endpoint is required when using the OTLP metrics exporter")
		}
	default:
		return fmt.Errorf("invalid metrics exporter %q, must be one of: prometheus, otlp, stdout", c.MetricsExporter)
	}

	switch c.TracingExporter {
	case "", ExporterNone, ExporterStdout:
	case ExporterOTLP:
		if c.OTLPEndpoint == "" {
			return fmt.Errorf("OTLP endpoint is required when using the OTLP tracing exporter")
		}
	default:
		return fmt.Errorf("invalid tracing exporter %q, must be one of: otlp, stdout, none", c.TracingExporter)
	}

	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
