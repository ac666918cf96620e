// Package observe provides telemetry for the research pipeline: OpenTelemetry
// tracing and metrics, structured JSON logging, and a stage instrumentation
// wrapper. Core packages stay telemetry-free and expose hooks; this package
// supplies the recorders that plug into them.
package observe
