// Package prometheus renders authgate counters in Prometheus text
// exposition format, without depending on a Prometheus client library: the
// counter model here is simple enough that the format is written directly.
package prometheus
