// Package metrics records build counters and durations.
//
// Components receive a Recorder and default to NoopRecorder, so no call site
// needs a nil check. When a metrics file is configured the CLI swaps in a
// PrometheusRecorder on a private registry and dumps it in the Prometheus text
// format once the run is over.
package metrics
