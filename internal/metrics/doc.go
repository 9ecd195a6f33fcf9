// Package metrics provides the observability hooks for sitelinks builds.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no call site needs a nil check:
//
//	type Builder struct {
//	    recorder metrics.Recorder
//	}
//
//	b := &Builder{recorder: metrics.NoopRecorder{}}
//
// To collect metrics, inject a PrometheusRecorder. There is no HTTP listener;
// WriteTextfile dumps the registry in the text exposition format for the
// node_exporter textfile collector:
//
//	reg := prom.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	// ... run builds with rec ...
//	err := metrics.WriteTextfile("/var/lib/node_exporter/sitelinks.prom", reg)
package metrics
