// Package tracing is a thin OpenTelemetry wrapper. The kitchen records one
// span per public operation and one per cooking attempt.
package tracing
