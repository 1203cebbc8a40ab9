package batch

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of targets processed at once when no
// WithConcurrency option is given.
const DefaultConcurrency = 4

// Job processes one target. index is the target's position in the slice
// passed to Process.
type Job func(ctx context.Context, index int, target string) error

// Processor runs a Job for every target.
type Processor struct {
	// concurrency is the maximum number of jobs running at once.
	concurrency int

	logger *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithConcurrency sets the maximum number of concurrent jobs.
// Non-positive values are ignored.
func WithConcurrency(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithLogger sets the logger used for batch-level messages.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// NewProcessor creates a Processor.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// Concurrency returns the configured concurrency limit.
func (p *Processor) Concurrency() int {
	return p.concurrency
}

// Process runs job for every target and returns the per-target errors in
// target order; a nil entry means the job succeeded. Targets not yet started
// when ctx ends are not run and get ctx.Err().
func (p *Processor) Process(ctx context.Context, targets []string, job Job) []error {
	p.logger.Info("starting batch",
		"targets", len(targets),
		"concurrency", p.concurrency,
	)
	start := time.Now()

	errs := make([]error, len(targets))

	var g errgroup.Group
	g.SetLimit(p.concurrency)

	for i, target := range targets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}

			p.logger.Debug("processing target",
				"target", target,
				"index", i+1,
				"total", len(targets),
			)

			// Job errors stay per target; the group never sees them.
			if err := job(ctx, i, target); err != nil {
				p.logger.Warn("target failed", "target", target, "error", err)
				errs[i] = err
			}
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // jobs never return errors to the group

	p.logger.Info("batch finished",
		"targets", len(targets),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	return errs
}
