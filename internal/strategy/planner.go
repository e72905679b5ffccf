package strategy

import (
	"context"
	"log/slog"

	"TrendEngine/internal/domain"
	"TrendEngine/internal/ports"
)

const defaultAttempts = 2

// Planner asks each generator in turn for a playbook and falls back to the
// template when none produces a valid one.
type Planner struct {
	generators []ports.StrategyGenerator
	solutions  map[string][]string
	attempts   int
	logger     *slog.Logger
}

var _ ports.StrategyPlanner = (*Planner)(nil)

// NewPlanner wires generators in priority order. With no generators every
// plan is templated.
func NewPlanner(generators []ports.StrategyGenerator, solutions map[string][]string, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Planner{
		generators: generators,
		solutions:  solutions,
		attempts:   defaultAttempts,
		logger:     logger,
	}
}

// Plan returns the playbook and the name of the source that produced it.
func (p *Planner) Plan(ctx context.Context, brief domain.Brief) (*domain.Playbook, string) {
	if len(p.generators) > 0 {
		prompt := BuildPrompt(brief, p.solutions)
		for _, gen := range p.generators {
			if pb := p.generate(ctx, gen, prompt); pb != nil {
				return pb, gen.Name()
			}
		}
	}
	p.logger.Info("using template strategy", "theme", brief.Analysis.Theme)
	return TemplatePlaybook(brief, p.solutions), domain.StrategySourceTemplate
}

func (p *Planner) generate(ctx context.Context, gen ports.StrategyGenerator, prompt string) *domain.Playbook {
	for attempt := 1; attempt <= p.attempts; attempt++ {
		if ctx.Err() != nil {
			return nil
		}
		raw, err := gen.Generate(ctx, SystemPrompt, prompt)
		if err != nil {
			p.logger.Warn("strategy generation failed", "generator", gen.Name(), "attempt", attempt, "error", err)
			continue
		}
		pb, err := ParsePlaybook(raw)
		if err != nil {
			p.logger.Warn("strategy output rejected", "generator", gen.Name(), "attempt", attempt, "error", err)
			continue
		}
		p.logger.Info("strategy generated", "generator", gen.Name(), "attempt", attempt)
		return pb
	}
	return nil
}
