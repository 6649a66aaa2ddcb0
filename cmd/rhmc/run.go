package main

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/KaiKogure/stan/internal/callbacks"
	"github.com/KaiKogure/stan/internal/config"
	"github.com/KaiKogure/stan/internal/hamiltonian"
	"github.com/KaiKogure/stan/internal/integrator"
	"github.com/KaiKogure/stan/internal/model"
	"github.com/KaiKogure/stan/internal/parallel"
)

// result summarizes a trajectory.
type result struct {
	Chain       int
	Steps       int
	H0, H       float64
	MaxAbsError float64
	Q           []float64
}

// system is a Hamiltonian that can also report its energy.
type system[Z integrator.Point] interface {
	integrator.Hamiltonian[Z]
	H(z Z) float64
}

func buildModel(cfg config.Config) model.MetricModel {
	if cfg.Model == config.ModelNormal {
		return model.StdNormal{N: cfg.Dim}
	}
	return model.Funnel{N: cfg.Dim}
}

func newIntegrator[Z integrator.Point](cfg config.Config) integrator.Integrator[Z] {
	if cfg.Integrator == config.IntegratorExplicit {
		return integrator.NewExplicit[Z]()
	}
	return integrator.NewImplicit[Z](integrator.ImplicitConfig{
		MaxNumFixedPoint:    cfg.MaxNumFixedPoint,
		FixedPointThreshold: cfg.FixedPointThreshold,
	})
}

// runChains simulates cfg.Chains independent trajectories concurrently.
// Every chain owns its Hamiltonian and therefore its tape.
func runChains(ctx context.Context, cfg config.Config, logger zerolog.Logger) ([]result, error) {
	workers := parallel.DefaultConfig()
	if cfg.Workers > 0 {
		workers.NumWorkers = cfg.Workers
	}

	results := make([]result, cfg.Chains)
	err := parallel.For(ctx, cfg.Chains, func(ctx context.Context, i int) error {
		res, err := run(ctx, cfg, cfg.Seed+uint64(i), logger.With().Int("chain", i).Logger())
		if err != nil {
			return fmt.Errorf("chain %d: %w", i, err)
		}
		res.Chain = i
		results[i] = res
		return nil
	}, workers)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// run draws an initial momentum and integrates cfg.NumSteps steps.
func run(ctx context.Context, cfg config.Config, seed uint64, logger zerolog.Logger) (result, error) {
	m := buildModel(cfg)
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	info := callbacks.NewLogWriter(logger, zerolog.DebugLevel)
	errw := callbacks.NewLogWriter(logger, zerolog.WarnLevel)

	if cfg.Metric == config.MetricRiemannian {
		h := hamiltonian.NewRiemannian(m)
		z := h.NewPoint()
		copy(z.Q, cfg.Init)
		h.Init(z, info, errw)
		if err := h.SampleP(z, src); err != nil {
			return result{}, fmt.Errorf("initial momentum: %w", err)
		}
		return simulate(ctx, cfg, newIntegrator[*hamiltonian.RiemannianPoint](cfg), h, z, info, errw, logger)
	}

	h, err := hamiltonian.NewDiagEuclidean(m, nil)
	if err != nil {
		return result{}, err
	}
	z := h.NewPoint()
	copy(z.Q, cfg.Init)
	h.Init(z, info, errw)
	h.SampleP(z, src)
	return simulate(ctx, cfg, newIntegrator[*hamiltonian.PSPoint](cfg), h, z, info, errw, logger)
}

func simulate[Z integrator.Point](ctx context.Context, cfg config.Config, in integrator.Integrator[Z], h system[Z], z Z,
	info, errw callbacks.Writer, logger zerolog.Logger) (result, error) {
	res := result{H0: h.H(z)}
	if math.IsNaN(res.H0) || math.IsInf(res.H0, 0) {
		return res, fmt.Errorf("initial energy is %v", res.H0)
	}

	for i := 0; i < cfg.NumSteps; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		in.Evolve(z, h, cfg.StepSize, info, errw)
		res.Steps++

		energy := h.H(z)
		delta := energy - res.H0
		res.MaxAbsError = math.Max(res.MaxAbsError, math.Abs(delta))
		logger.Debug().Int("step", res.Steps).Float64("h", energy).Float64("error", delta).Msg("Step")

		if math.IsNaN(energy) || math.IsInf(energy, 0) {
			res.H = energy
			return res, fmt.Errorf("trajectory diverged at step %d", res.Steps)
		}
	}

	res.H = h.H(z)
	res.Q = append([]float64(nil), z.Position()...)
	return res, nil
}
