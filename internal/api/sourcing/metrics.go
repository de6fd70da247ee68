package sourcing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tierFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sourcing_tier_failures_total",
		Help: "Candidate source failures by tier and category.",
	}, []string{"tier", "category"})

	tierFallthroughs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sourcing_tier_fallthroughs_total",
		Help: "Tiers that returned no candidates and were skipped.",
	}, []string{"tier", "category"})
)
