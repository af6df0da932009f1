package sweeper

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/infrastructure/metrics"
	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/usecase"
)

// SweepRunner executes one penalty-accrual sweep.
type SweepRunner interface {
	RunSweep(ctx context.Context, asOf time.Time) (*usecase.SweepReport, error)
}

// Sweeper triggers the penalty-accrual sweep on a fixed schedule. Operators
// can also trigger a sweep over HTTP; both paths call the same runner.
type Sweeper struct {
	runner   SweepRunner
	logger   zerolog.Logger
	metrics  *metrics.Metrics
	interval time.Duration
}

// Config for Sweeper.
type Config struct {
	Runner   SweepRunner
	Logger   zerolog.Logger
	Metrics  *metrics.Metrics
	Interval time.Duration
}

// New creates a new Sweeper.
func New(cfg Config) *Sweeper {
	if cfg.Interval == 0 {
		cfg.Interval = 24 * time.Hour
	}

	return &Sweeper{
		runner:   cfg.Runner,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		interval: cfg.Interval,
	}
}

// Start runs the sweep loop until the context is cancelled. A sweep runs
// immediately on start so a restarted service does not wait a full interval.
func (s *Sweeper) Start(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("penalty sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("penalty sweeper shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Sweeper) runOnce(ctx context.Context) {
	start := time.Now()

	report, err := s.runner.RunSweep(ctx, time.Now().UTC())
	if err != nil {
		s.logger.Error().Err(err).Msg("penalty sweep failed")
		return
	}

	if s.metrics != nil {
		s.metrics.SweepsRun.Inc()
		s.metrics.SweepDuration.Observe(time.Since(start).Seconds())
		s.metrics.SweepInstallmentsSeen.Add(float64(report.Processed))
		s.metrics.SweepInstallmentsDirty.Add(float64(report.Updated))
		s.metrics.SweepFailures.Add(float64(len(report.Failures)))
	}

	s.logger.Info().
		Int("processed", report.Processed).
		Int("updated", report.Updated).
		Int("failed", len(report.Failures)).
		Str("rule_id", report.RuleID).
		Dur("took", time.Since(start)).
		Msg("penalty sweep completed")
}
