// Package metrics records per-run tag resolution metrics.
//
// Components receive a Recorder and default to NoopRecorder, so nothing is
// collected unless asked for. With --metrics-file the CLI swaps in a
// PrometheusRecorder and writes its registry in the node-exporter textfile
// format once the run is complete, which suits avtag's cron usage better
// than a scrape endpoint.
package metrics
