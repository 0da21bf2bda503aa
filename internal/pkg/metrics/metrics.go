// Package metrics exposes prometheus collectors for background jobs and notification delivery.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fulfillment"

// Metrics records job runs and notification outcomes. A nil *Metrics is a valid no-op.
type Metrics struct {
	jobDuration   *prometheus.HistogramVec
	jobSuccess    *prometheus.CounterVec
	jobFailure    *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

// New registers the collectors on reg. A nil reg yields a Metrics that records nothing.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}

	m := &Metrics{
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_duration_seconds",
			Help:      "Duration of scheduled jobs in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"job"}),
		jobSuccess: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_success_total",
			Help:      "Successful scheduled job runs.",
		}, []string{"job"}),
		jobFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_failure_total",
			Help:      "Failed scheduled job runs.",
		}, []string{"job"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notification delivery attempts by recipient kind and outcome.",
		}, []string{"recipient", "outcome"}),
	}
	reg.MustRegister(m.jobDuration, m.jobSuccess, m.jobFailure, m.notifications)
	return m
}

func (m *Metrics) ObserveDuration(job string, d time.Duration) {
	if m == nil || m.jobDuration == nil {
		return
	}
	m.jobDuration.WithLabelValues(normalizeLabel(job)).Observe(d.Seconds())
}

func (m *Metrics) IncSuccess(job string) {
	if m == nil || m.jobSuccess == nil {
		return
	}
	m.jobSuccess.WithLabelValues(normalizeLabel(job)).Inc()
}

func (m *Metrics) IncFailure(job string) {
	if m == nil || m.jobFailure == nil {
		return
	}
	m.jobFailure.WithLabelValues(normalizeLabel(job)).Inc()
}

// ObserveNotification counts one delivery attempt (outcome is sent, retry or failed).
func (m *Metrics) ObserveNotification(recipient, outcome string) {
	if m == nil || m.notifications == nil {
		return
	}
	m.notifications.WithLabelValues(normalizeLabel(recipient), normalizeLabel(outcome)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
