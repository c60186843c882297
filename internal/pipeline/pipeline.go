package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/jsrank/internal/model"
)

// Step is one stage of a run. Each step reads what earlier steps stored in
// the report and adds its own results.
type Step interface {
	// Do runs the step. Problems with individual pages are recorded in the
	// report; an error means the step itself could not complete.
	Do(ctx context.Context, report *model.Report) error

	// Name identifies the step in logs and in Report.PerformedSteps.
	Name() string
}

// Pipeline runs its steps in order against one report.
type Pipeline struct {
	steps           []Step
	logger          *slog.Logger
	continueOnError bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSteps appends steps in the order they will run.
func WithSteps(steps ...Step) Option {
	return func(p *Pipeline) {
		p.steps = append(p.steps, steps...)
	}
}

// WithLogger sets the logger. Nil keeps slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError keeps running later steps after one fails.
// Cancellation always stops the run.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a Pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Execute runs the steps in order. A run whose context ends is marked
// TimedOut and stops before the next step.
//
// The first step error is returned unless the pipeline continues on
// error, in which case errors only end up in the report.
func (p *Pipeline) Execute(ctx context.Context, report *model.Report) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("pipeline cancelled", "step", step.Name(), "reason", err)
			report.TimedOut = true
			return err
		}

		err := p.run(ctx, step, report)
		report.PerformedSteps = append(report.PerformedSteps, step.Name())
		if err == nil {
			continue
		}

		report.SetError(err)
		if ctx.Err() != nil {
			report.TimedOut = true
			return err
		}
		if !p.continueOnError {
			return err
		}
	}
	return nil
}

// run executes a single step and logs its outcome and duration.
func (p *Pipeline) run(ctx context.Context, step Step, report *model.Report) error {
	logger := p.logger.With("step", step.Name(), "query", report.Query)
	logger.Info("executing step")

	start := time.Now()
	err := step.Do(ctx, report)
	elapsed := time.Since(start).Round(time.Millisecond)

	if err != nil {
		logger.Error("step failed", "elapsed", elapsed, "error", err)
		return err
	}
	logger.Debug("step completed", "elapsed", elapsed)
	return nil
}
