// Package otel bridges authgate counters into an OpenTelemetry meter as
// observable counters: values are pulled from a snapshot at collection time,
// so the hot path keeps its lock-free atomic increments and pays nothing for
// the export.
package otel
