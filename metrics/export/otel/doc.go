// Package otel publishes tokenauth engine metrics through OpenTelemetry
// asynchronous instruments registered on a caller-supplied meter.
package otel
