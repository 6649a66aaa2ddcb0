// Command rhmc simulates a Hamiltonian trajectory with the explicit or the
// implicit leapfrog and reports the energy error along the way.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/KaiKogure/stan/internal/config"
)

func main() {
	var (
		configPath  = flag.String("config", "", "YAML run configuration")
		modelName   = flag.String("model", "", "model: normal or funnel")
		dim         = flag.Int("dim", 0, "number of position coordinates")
		integ       = flag.String("integrator", "", "integrator: explicit or implicit")
		metric      = flag.String("metric", "", "metric: diag or riemannian")
		stepSize    = flag.Float64("step-size", 0, "leapfrog step size")
		numSteps    = flag.Int("steps", 0, "number of leapfrog steps")
		seed        = flag.Uint64("seed", 0, "momentum seed")
		chains      = flag.Int("chains", 0, "number of independent trajectories")
		workers     = flag.Int("workers", 0, "concurrent trajectories, 0 for one per CPU")
		logLevel    = flag.String("log-level", "info", "log level: debug, info, warn, error")
		metricsAddr = flag.String("metrics-addr", "", "serve prometheus metrics on this address until interrupted")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	cfg := config.Default()
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
	}

	// Flags override the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "model":
			cfg.Model = *modelName
		case "dim":
			cfg.Dim = *dim
		case "integrator":
			cfg.Integrator = *integ
		case "metric":
			cfg.Metric = *metric
		case "step-size":
			cfg.StepSize = *stepSize
		case "steps":
			cfg.NumSteps = *numSteps
		case "seed":
			cfg.Seed = *seed
		case "chains":
			cfg.Chains = *chains
		case "workers":
			cfg.Workers = *workers
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var srv *http.Server
	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv = &http.Server{Addr: *metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			log.Info().Str("addr", *metricsAddr).Msg("Serving metrics")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("Metrics server failed")
			}
		}()
	}

	results, err := runChains(ctx, cfg, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Trajectory failed")
	}
	for _, res := range results {
		log.Info().
			Int("chain", res.Chain).
			Int("steps", res.Steps).
			Float64("h0", res.H0).
			Float64("h", res.H).
			Float64("max_abs_error", res.MaxAbsError).
			Floats64("q", res.Q).
			Msg("Trajectory finished")
	}

	if srv != nil {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Metrics server shutdown failed")
		}
	}
}
