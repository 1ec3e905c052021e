// Package observability registers the Prometheus collectors exported on /metrics.
package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	signupCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "roster",
		Name:      "signups_total",
		Help:      "Signup attempts grouped by outcome.",
	}, []string{"outcome"})

	unregisterCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "roster",
		Name:      "unregistrations_total",
		Help:      "Unregister attempts grouped by outcome.",
	}, []string{"outcome"})

	rosterGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "signup_service",
		Subsystem: "roster",
		Name:      "participants",
		Help:      "Current number of participants per activity.",
	}, []string{"activity"})

	publishFailureCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "events",
		Name:      "publish_failures_total",
		Help:      "Roster events that could not be written to Kafka, labeled by topic.",
	}, []string{"topic"})
)

func init() {
	prometheus.MustRegister(signupCounter, unregisterCounter, rosterGauge, publishFailureCounter)
}

// RecordSignup counts a signup attempt.
func RecordSignup(outcome string) {
	signupCounter.WithLabelValues(outcome).Inc()
}

// RecordUnregistration counts an unregister attempt.
func RecordUnregistration(outcome string) {
	unregisterCounter.WithLabelValues(outcome).Inc()
}

// RecordRosterSize sets the participant gauge for an activity.
func RecordRosterSize(activity string, size int) {
	rosterGauge.WithLabelValues(activity).Set(float64(size))
}

// RecordPublishFailure counts an event that failed delivery.
func RecordPublishFailure(topic string) {
	publishFailureCounter.WithLabelValues(topic).Inc()
}

// Signups exposes the signup counter for an outcome; intended for tests.
func Signups(outcome string) prometheus.Counter {
	return signupCounter.WithLabelValues(outcome)
}

// Unregistrations exposes the unregister counter for an outcome; intended for tests.
func Unregistrations(outcome string) prometheus.Counter {
	return unregisterCounter.WithLabelValues(outcome)
}

// RosterSize exposes the participant gauge for an activity; intended for tests.
func RosterSize(activity string) prometheus.Gauge {
	return rosterGauge.WithLabelValues(activity)
}

// PublishFailures exposes the publish failure counter for a topic; intended for tests.
func PublishFailures(topic string) prometheus.Counter {
	return publishFailureCounter.WithLabelValues(topic)
}
