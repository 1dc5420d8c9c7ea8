// Package prometheus renders tokenauth engine counters and the validate latency
// histogram in Prometheus text exposition format.
//
// Counters are named tokenauth_*_total. Nothing is registered globally; mount
// [Exporter.Handler] wherever the scrape endpoint should live.
package prometheus
