package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"TrendEngine/internal/analysis"
	"TrendEngine/internal/domain"
	"TrendEngine/internal/ports"
)

// PipelineDeps wires all driven adapters into the weekly pipeline.
type PipelineDeps struct {
	Source         ports.SnapshotSource
	Repository     ports.SnapshotRepository
	Planner        ports.StrategyPlanner
	Renderer       ports.Renderer
	Notifier       ports.Notifier
	Registry       *analysis.Registry
	EngagementTopN int
	// Preview receives the rendered brief when a run is previewed.
	Preview io.Writer
	Logger  *slog.Logger
}

// Pipeline implements the weekly collect, analyze, plan and deliver workflow.
type Pipeline struct {
	source     ports.SnapshotSource
	repository ports.SnapshotRepository
	planner    ports.StrategyPlanner
	renderer   ports.Renderer
	notifier   ports.Notifier
	registry   *analysis.Registry
	topN       int
	preview    io.Writer
	logger     *slog.Logger
}

// RunOptions tweak a single pipeline execution.
type RunOptions struct {
	// Preview writes the brief to the preview writer instead of delivering it.
	Preview bool
	// SkipStrategy leaves the content plan out of the brief.
	SkipStrategy bool
	// SkipDelivery renders and stores the brief without sending it.
	SkipDelivery bool
}

// RunResult is what one execution produced.
type RunResult struct {
	Brief     domain.Brief
	Text      string
	Record    domain.BriefRecord
	Delivered bool
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	registry := deps.Registry
	if registry == nil {
		registry = analysis.DefaultRegistry()
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	preview := deps.Preview
	if preview == nil {
		preview = io.Discard
	}
	return &Pipeline{
		source:     deps.Source,
		repository: deps.Repository,
		planner:    deps.Planner,
		renderer:   deps.Renderer,
		notifier:   deps.Notifier,
		registry:   registry,
		topN:       deps.EngagementTopN,
		preview:    preview,
		logger:     logger,
	}
}

// ProcessWeek collects the week ending on day, diffs it against the last
// stored snapshot, stores the new one and delivers the rendered brief.
// A source failure only leaves its section absent; storage and delivery
// failures abort the run.
func (p *Pipeline) ProcessWeek(ctx context.Context, day time.Time, opts RunOptions) (RunResult, error) {
	if p.source == nil {
		return RunResult{}, errors.New("pipeline has no snapshot source")
	}
	date := day.Format(time.DateOnly)

	prior, number, err := p.loadPrior(ctx, date)
	if err != nil {
		return RunResult{}, err
	}

	current, err := p.source.FetchWeekly(ctx, day)
	if err != nil {
		return RunResult{}, fmt.Errorf("fetch weekly: %w", err)
	}

	var priorSnapshot *domain.Snapshot
	priorTheme := ""
	if prior != nil {
		priorSnapshot = &prior.Snapshot
		priorTheme = prior.Theme
	}

	prepared := analysis.Prepare(current, priorSnapshot)
	brief := analysis.Analyze(p.registry, analysis.Input{
		Current:    prepared,
		Prior:      priorSnapshot,
		PriorTheme: priorTheme,
		Day:        day,
		TopN:       p.topN,
	})
	brief.BriefNumber = number
	p.logger.Info("analysis complete",
		"date", date,
		"theme", brief.Analysis.Theme,
		"groups", len(brief.Analysis.GroupRankings),
		"engagement", len(brief.Engagement),
		"first_run", brief.Emerging.IsFirstRun,
	)

	if !opts.SkipStrategy && p.planner != nil {
		brief.Strategy, brief.StrategySource = p.planner.Plan(ctx, brief)
		p.logger.Info("strategy ready", "source", brief.StrategySource)
	}

	result := RunResult{Brief: brief}
	if p.renderer != nil {
		result.Text, err = p.renderer.Render(brief)
		if err != nil {
			return result, fmt.Errorf("render brief: %w", err)
		}
	}

	record := domain.BriefRecord{
		Date:           date,
		BriefNumber:    number,
		Theme:          brief.Analysis.Theme,
		StrategySource: brief.StrategySource,
		Summary:        brief.Emerging.Summary,
		Snapshot:       prepared,
		CreatedAt:      time.Now().UTC(),
	}
	if p.repository != nil {
		if err := p.repository.Save(ctx, record); err != nil {
			return result, fmt.Errorf("save snapshot: %w", err)
		}
		p.logger.Info("snapshot stored", "date", date, "brief_number", number)
	}
	result.Record = record

	switch {
	case opts.Preview:
		if _, err := io.WriteString(p.preview, result.Text); err != nil {
			return result, fmt.Errorf("write preview: %w", err)
		}
	case opts.SkipDelivery || p.notifier == nil:
		p.logger.Info("delivery skipped", "date", date)
	default:
		if err := p.notifier.PublishBrief(ctx, result.Text); err != nil {
			return result, fmt.Errorf("publish brief: %w", err)
		}
		result.Delivered = true
		p.logger.Info("brief delivered", "date", date)
	}

	return result, nil
}

// loadPrior returns the newest snapshot stored before date and the number
// of the brief being produced. A rerun on a stored date replaces that
// snapshot and keeps its number.
func (p *Pipeline) loadPrior(ctx context.Context, date string) (*domain.BriefRecord, int, error) {
	if p.repository == nil {
		return nil, 1, nil
	}

	records, err := p.repository.List(ctx, 0)
	if err != nil {
		return nil, 0, fmt.Errorf("load prior snapshot: %w", err)
	}

	number := len(records) + 1
	var prior *domain.BriefRecord
	for i := range records {
		switch {
		case records[i].Date == date:
			number = records[i].BriefNumber
		case records[i].Date < date && prior == nil:
			prior = &records[i]
		}
	}
	if prior == nil {
		p.logger.Info("no prior snapshot, treating as first run", "date", date)
	}
	return prior, number, nil
}
