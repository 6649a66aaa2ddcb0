package integrator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	stageHatTau  = "hat_tau"
	stageUpdateQ = "update_q"
)

var (
	fixedPointIterations = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rhmc_fixed_point_iterations",
		Help:    "Number of fixed-point iterations per implicit half-step",
		Buckets: prometheus.LinearBuckets(1, 1, 10),
	}, []string{"stage"})

	fixedPointNotConverged = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rhmc_fixed_point_not_converged_total",
		Help: "Total number of fixed-point solves that hit the iteration limit",
	}, []string{"stage"})
)
