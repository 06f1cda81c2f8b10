package pipeline

import (
	"context"
	"fmt"

	"paperscout/internal/arxiv"

	"go.uber.org/zap"
)

// Filter represents a single filtering step applied to fetched papers.
type Filter interface {
	Name() string
	IsEnabled() bool
	Apply(ctx context.Context, papers *arxiv.Papers) (*arxiv.Papers, Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

type Pipeline struct {
	steps  []Filter
	logger *zap.Logger
}

func New(steps []Filter, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		steps:  steps,
		logger: logger,
	}
}

// Run executes the supplied filters sequentially and returns the papers that
// survived every enabled step.
func (p *Pipeline) Run(ctx context.Context, papers *arxiv.Papers) (*arxiv.Papers, error) {
	for _, step := range p.steps {
		if !step.IsEnabled() {
			if p.logger != nil {
				p.logger.Debug("filter disabled", zap.String("name", step.Name()))
			}
			continue
		}

		next, info, err := step.Apply(ctx, papers)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		if p.logger != nil {
			p.logger.Info("filter step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		papers = next
	}

	return papers, nil
}
