// Package metrics provides sink implementations for the core metrics
// surface, backed by Prometheus.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/JackCapstaff/rehearsal-schedule/core/metrics"
)

// PromSink records planning and edit events in Prometheus metrics.
type PromSink struct {
	runs      prometheus.Counter
	deficits  prometheus.Counter
	overflows prometheus.Counter
	edits     *prometheus.CounterVec
	duration  prometheus.Histogram
}

// NewPromSink registers planning metrics on the default Prometheus
// registerer. The HTTP server exposing them is started separately using
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "planning_runs_total",
		Help: "Total number of planning pipeline runs",
	})
	deficits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "allocation_deficits_total",
		Help: "Works whose required minutes could not be fully allocated",
	})
	overflows := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "capacity_overflows_total",
		Help: "Rehearsals whose assembled items exceeded the usable minutes",
	})
	edits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "edit_operations_total",
		Help: "Interactive edit operations by action and outcome",
	}, []string{"action", "accepted"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "planning_duration_seconds",
		Help:    "Wall time of one planning pipeline run",
		Buckets: prometheus.DefBuckets,
	})

	if err := reg.Register(runs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runs = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(deficits); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			deficits = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(overflows); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			overflows = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(edits); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			edits = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}

	return &PromSink{runs: runs, deficits: deficits, overflows: overflows, edits: edits, duration: duration}, nil
}

// RecordPipelineRun increments the run counters and observes the duration.
func (s *PromSink) RecordPipelineRun(ev coremetrics.PipelineEvent) error {
	s.runs.Inc()
	s.deficits.Add(float64(ev.Deficits))
	s.overflows.Add(float64(ev.Overflows))
	s.duration.Observe(ev.Duration.Seconds())
	return nil
}

// RecordEdit increments the edit counter for the action and outcome.
func (s *PromSink) RecordEdit(ev coremetrics.EditEvent) error {
	s.edits.WithLabelValues(ev.Action, strconv.FormatBool(ev.Accepted)).Inc()
	return nil
}
