package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"TrendEngine/internal/analysis"
	"TrendEngine/internal/collector"
	"TrendEngine/internal/config"
	"TrendEngine/internal/domain"
	"TrendEngine/internal/infrastructure/collectors"
	"TrendEngine/internal/infrastructure/llm"
	"TrendEngine/internal/infrastructure/scheduler"
	"TrendEngine/internal/infrastructure/source"
	"TrendEngine/internal/infrastructure/storage"
	"TrendEngine/internal/infrastructure/telegram"
	"TrendEngine/internal/logging"
	"TrendEngine/internal/ports"
	"TrendEngine/internal/rendering"
	"TrendEngine/internal/server"
	"TrendEngine/internal/strategy"
	"TrendEngine/internal/usecase"
)

const shutdownTimeout = 15 * time.Second

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg        config.Config
	logger     *slog.Logger
	registry   *analysis.Registry
	collectors *collector.Registry
	fetcher    *collectors.Fetcher

	db   *sql.DB
	repo *storage.SnapshotRepository
}

// RunOptions select what a single pipeline run does.
type RunOptions struct {
	usecase.RunOptions
	// SkipSources names sources or collectors left out of this run.
	SkipSources []string
	// Output receives the brief in preview mode.
	Output io.Writer
}

// New builds the application. Storage is opened lazily by the commands
// that need it.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	fetcher := collectors.NewFetcher(nil, collectors.FetcherOptions{
		UserAgent:      cfg.Collectors.UserAgent,
		Timeout:        cfg.Collectors.Timeout,
		RequestsPerSec: cfg.Collectors.RequestsPerSec,
		Burst:          cfg.Collectors.Burst,
		CacheSize:      cfg.Collectors.CacheSize,
		CacheTTL:       cfg.Collectors.CacheTTL,
	})
	registry := collector.NewRegistry()
	collectors.Register(registry, fetcher, logging.Component(baseLogger, "collector"))

	return &Application{
		cfg:        cfg,
		logger:     baseLogger,
		registry:   analysis.DefaultRegistry(),
		collectors: registry,
		fetcher:    fetcher,
	}
}

// Close releases the storage connection, if one was opened.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db, a.repo = nil, nil
	return err
}

func (a *Application) storage(ctx context.Context) (*storage.SnapshotRepository, error) {
	if a.repo != nil {
		return a.repo, nil
	}

	db, dialect, err := storage.Open(ctx, a.cfg.Storage.Driver, a.cfg.Storage.DSN)
	if err != nil {
		return nil, err
	}
	repo := storage.NewSnapshotRepository(db, dialect)
	if err := repo.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	a.db, a.repo = db, repo
	a.logger.Debug("storage ready", "driver", dialect.Driver)
	return repo, nil
}

func (a *Application) pipeline(ctx context.Context, opts RunOptions) (*usecase.Pipeline, error) {
	repo, err := a.storage(ctx)
	if err != nil {
		return nil, err
	}

	skip := make(map[string]bool, len(opts.SkipSources))
	for _, name := range opts.SkipSources {
		skip[name] = true
	}
	src := source.NewCollectorSource(a.collectors, a.cfg.Sources, source.Options{Skip: skip, Reset: a.fetcher.Purge},
		logging.Component(a.logger, "source"))

	var notifier ports.Notifier
	if tg := telegram.NewNotifier(a.cfg.Notifications.Telegram); tg.Configured() {
		notifier = tg
	} else if !opts.Preview && !opts.SkipDelivery {
		a.logger.Warn("telegram is not configured, briefs will not be delivered")
	}

	return usecase.NewPipeline(usecase.PipelineDeps{
		Source:         src,
		Repository:     repo,
		Planner:        a.planner(),
		Renderer:       rendering.NewMarkdown(),
		Notifier:       notifier,
		Registry:       a.registry,
		EngagementTopN: a.cfg.Analysis.EngagementTopN,
		Preview:        opts.Output,
		Logger:         logging.Component(a.logger, "pipeline"),
	}), nil
}

func (a *Application) planner() *strategy.Planner {
	return strategy.NewPlanner(
		Generators(a.cfg.Strategy),
		analysis.TopicSolutions,
		logging.Component(a.logger, "strategy"),
	)
}

// Generators picks the strategy generators for the configured provider, in
// the order they are tried. An empty result means template-only.
func Generators(cfg config.StrategyConfig) []ports.StrategyGenerator {
	anthropicReady := cfg.AnthropicAPIKey != ""
	openAIReady := cfg.OpenAI.APIKey != "" && cfg.OpenAI.Endpoint != ""

	var gens []ports.StrategyGenerator
	switch cfg.Provider {
	case config.ProviderTemplate:
	case config.ProviderAnthropic:
		if anthropicReady {
			gens = append(gens, llm.NewAnthropicGenerator(cfg))
		}
	case config.ProviderOpenAI:
		if openAIReady {
			gens = append(gens, llm.NewOpenAIGenerator(cfg))
		}
	default:
		if anthropicReady {
			gens = append(gens, llm.NewAnthropicGenerator(cfg))
		}
		if openAIReady {
			gens = append(gens, llm.NewOpenAIGenerator(cfg))
		}
	}
	return gens
}

// Run performs a single pipeline execution for day.
func (a *Application) Run(ctx context.Context, day time.Time, opts RunOptions) (usecase.RunResult, error) {
	p, err := a.pipeline(ctx, opts)
	if err != nil {
		return usecase.RunResult{}, err
	}
	return p.ProcessWeek(ctx, day.In(a.cfg.Scheduler.Location()), opts.RunOptions)
}

// Schedule runs the pipeline on the configured cron expression until ctx
// is cancelled.
func (a *Application) Schedule(ctx context.Context) error {
	if err := scheduler.Validate(a.cfg.Scheduler.CronExpression); err != nil {
		return err
	}

	p, err := a.pipeline(ctx, RunOptions{})
	if err != nil {
		return err
	}

	driver := scheduler.NewCronScheduler(a.cfg.Scheduler.CronExpression, a.cfg.Scheduler.Location(),
		logging.Component(a.logger, "scheduler"))
	sched := usecase.NewScheduler(driver, p, usecase.RunOptions{}, logging.Component(a.logger, "scheduler"))
	if err := sched.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return sched.Stop(stopCtx)
}

// Serve exposes the HTTP API until ctx is cancelled.
func (a *Application) Serve(ctx context.Context) error {
	repo, err := a.storage(ctx)
	if err != nil {
		return err
	}

	srv := server.NewServer(a.cfg.Server, repo, a.registry, a.cfg.Analysis.EngagementTopN,
		logging.Component(a.logger, "server"))

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", "addr", a.cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// AnalyzeInput is an offline analysis request read from files.
type AnalyzeInput struct {
	Current      domain.Snapshot
	Prior        *domain.Snapshot
	PriorTheme   string
	Day          time.Time
	WithStrategy bool
}

// Analyze runs the analysis core over snapshots supplied by the caller,
// without collecting or storing anything, and renders the brief.
func (a *Application) Analyze(ctx context.Context, in AnalyzeInput) (domain.Brief, string, error) {
	brief := analysis.Analyze(a.registry, analysis.Input{
		Current:    analysis.Prepare(in.Current, in.Prior),
		Prior:      in.Prior,
		PriorTheme: in.PriorTheme,
		Day:        in.Day,
		TopN:       a.cfg.Analysis.EngagementTopN,
	})
	if in.WithStrategy {
		brief.Strategy, brief.StrategySource = a.planner().Plan(ctx, brief)
	}

	text, err := rendering.NewMarkdown().Render(brief)
	if err != nil {
		return brief, "", err
	}
	return brief, text, nil
}
