// Package metrics owns the Prometheus registry and every metric the API
// exports. Metrics are package-level so that handlers and services can record
// without threading a collector through constructors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "feedback"

// Registry is the registry served on /metrics.
var Registry = prometheus.NewRegistry()

// RegistrationsTotal counts registration attempts.
// Label result: success|conflict|error
var RegistrationsTotal = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of user registration attempts by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label result: success|invalid_credentials|error
var LoginsTotal = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts by result.",
	},
	[]string{"result"},
)

// PasswordRehashesTotal counts legacy hashes upgraded to Argon2id at login.
var PasswordRehashesTotal = promauto.With(Registry).NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_rehashes_total",
		Help:      "Total number of stored password hashes upgraded on login.",
	},
)

// EventsCreatedTotal counts created events.
var EventsCreatedTotal = promauto.With(Registry).NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_created_total",
		Help:      "Total number of events created.",
	},
)

// EventJoinsTotal counts join attempts.
// Label result: success|invalid_code|inactive|already_joined|error
var EventJoinsTotal = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_joins_total",
		Help:      "Total number of attempts to join an event by access code.",
	},
	[]string{"result"},
)

// FeedbackSubmittedTotal counts submitted feedback by rating.
var FeedbackSubmittedTotal = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feedback_submitted_total",
		Help:      "Total number of feedback entries submitted, labelled by rating.",
	},
	[]string{"rating"},
)

// QuestionsTotal counts question activity.
// Label action: asked|upvote|markAsAnswered
var QuestionsTotal = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "questions_total",
		Help:      "Total number of questions asked and question actions applied.",
	},
	[]string{"action"},
)

// Init registers the runtime collectors. Call once at startup.
func Init() {
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}
