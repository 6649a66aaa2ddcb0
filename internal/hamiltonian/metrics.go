package hamiltonian

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	gradientEvaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rhmc_hamiltonian_gradient_evaluations_total",
		Help: "Total number of potential gradient evaluations",
	}, []string{"hamiltonian"})

	gradientFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rhmc_hamiltonian_gradient_failures_total",
		Help: "Total number of potential gradient evaluations that failed or were not finite",
	}, []string{"hamiltonian"})

	metricFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rhmc_hamiltonian_metric_not_positive_definite_total",
		Help: "Total number of metric evaluations that were not positive definite",
	})
)
