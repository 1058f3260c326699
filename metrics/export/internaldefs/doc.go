// Package internaldefs holds the shared counter name table for the metric
// exporters. It exists so the Prometheus and OTel exporters agree on names
// without either importing the other.
package internaldefs
