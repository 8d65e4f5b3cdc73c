// Package observe provides elmen.Observer implementations backed by
// Prometheus and OpenTelemetry.
//
// # Prometheus Metrics
//
// Metrics counts builders and their chained calls:
//   - elmen_builders_total: Builders finalized by status
//   - elmen_ops_total: Chained calls by operation and status
//   - elmen_errors_total: Recorded errors by operation and kind
//   - elmen_open_builders: Builders created but not finalized
//   - elmen_build_duration_seconds: Time from creation to Done
//
//	reg := prometheus.NewRegistry()
//	m := observe.NewMetrics(observe.WithRegistry(reg))
//	el, err := elmen.New(doc, "div", elmen.WithObserver(m)).Done()
//
// WriteText dumps a registry in the Prometheus text format.
//
// # OpenTelemetry Tracing
//
// Tracing starts one span per builder. Every chained call adds a span
// event; recorded errors are attached with RecordError and set the span
// status.
//
//	t := observe.NewTracing(observe.WithTracerName("my-app"))
//	elmen.New(doc, "div", elmen.WithObserver(t), elmen.WithContext(ctx))
//
// Combine both with elmen.Observers(m, t).
package observe
