// Package metrics records sitecfg operational metrics behind a Recorder
// interface.
//
// Components default to NoopRecorder so they never need nil checks. The watch
// command swaps in a PrometheusRecorder and serves it through HTTPHandler:
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	gen := generator.New(site, generator.WithRecorder(rec))
//	mux.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics
