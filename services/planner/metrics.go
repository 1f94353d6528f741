package planner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "planner_sessions_started_total",
		Help: "Planner sessions created.",
	})

	searchOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_searches_total",
		Help: "Flight and hotel searches by outcome (applied, failed, stale, invalid).",
	}, []string{"category", "outcome"})

	submissionOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_submissions_total",
		Help: "Itinerary submissions by outcome (confirmed, failed, rejected).",
	}, []string{"outcome"})
)
