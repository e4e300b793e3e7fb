// Package metrics instruments expression evaluation with Prometheus
// counters, grounded on the promauto-based recorder pattern the
// evaluator's teacher stack uses elsewhere in the retrieved corpus
// (holomush's policy and command packages).
package metrics

import (
	"github.com/knakk/sparqleval"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder counts top-level Evaluate calls and their outcomes. A nil
// *Recorder is a valid, no-op value: every method checks its receiver
// first, so a host with no Prometheus registry can pass nil to
// eval.New without special-casing it.
type Recorder struct {
	evaluationsTotal prometheus.Counter
	errorsTotal      *prometheus.CounterVec
}

// NewRecorder registers the evaluator's metrics against reg and returns
// a Recorder backed by them. Pass prometheus.DefaultRegisterer to use
// the global registry, or a dedicated prometheus.Registry in tests.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		evaluationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "sparqleval_evaluations_total",
			Help: "Total number of top-level expression evaluations.",
		}),
		errorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sparqleval_errors_total",
			Help: "Total number of evaluation errors, labeled by taxonomy kind.",
		}, []string{"kind"}),
	}
}

// RecordEvaluation increments the evaluations counter, and if err is
// non-nil, the per-Kind error counter. Errors that did not come from
// this module's taxonomy (e.g. a raw error from a user hook) are
// labeled "unknown" rather than dropped.
func (r *Recorder) RecordEvaluation(err error) {
	if r == nil {
		return
	}
	r.evaluationsTotal.Inc()
	if err == nil {
		return
	}
	kind, ok := sparqleval.KindOf(err)
	if !ok {
		r.errorsTotal.WithLabelValues("unknown").Inc()
		return
	}
	r.errorsTotal.WithLabelValues(string(kind)).Inc()
}
