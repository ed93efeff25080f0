// Package tracing provides a thin wrapper around OpenTelemetry tracing so
// that the rest of the code-base can create spans through a stable local API
// without importing the upstream packages directly.
package tracing
