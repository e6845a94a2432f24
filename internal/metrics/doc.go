// Package metrics provides build and watch-loop observability for pagewright.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so call sites never nil-check:
//
//	builder := site.NewBuilder(layout).WithRecorder(metrics.NoopRecorder{})
//
// The watch command swaps in a PrometheusRecorder and exposes it through
// HTTPHandler when metrics.address is configured.
package metrics
