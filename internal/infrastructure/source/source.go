package source

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"TrendEngine/internal/collector"
	"TrendEngine/internal/config"
	"TrendEngine/internal/domain"
	"TrendEngine/internal/ports"
)

const defaultParallelism = 4

// Options switch sources off for one run without touching the config.
type Options struct {
	Skip        map[string]bool
	Parallelism int
	// Reset runs before every fetch, typically clearing collector caches.
	Reset func()
}

// CollectorSource implements SnapshotSource via registered collectors.
type CollectorSource struct {
	registry *collector.Registry
	sources  []config.SourceConfig
	opts     Options
	logger   *slog.Logger
}

var _ ports.SnapshotSource = (*CollectorSource)(nil)

// NewCollectorSource wires the collector registry with config-defined sources.
func NewCollectorSource(reg *collector.Registry, sources []config.SourceConfig, opts Options, log *slog.Logger) *CollectorSource {
	if opts.Parallelism <= 0 {
		opts.Parallelism = defaultParallelism
	}
	return &CollectorSource{
		registry: reg,
		sources:  sources,
		opts:     opts,
		logger:   log,
	}
}

// FetchWeekly runs every enabled source concurrently and merges their
// sections in config order. A failing source is logged and left absent;
// only cancellation aborts the whole fetch.
func (s *CollectorSource) FetchWeekly(ctx context.Context, day time.Time) (domain.Snapshot, error) {
	if s.registry == nil {
		return domain.Snapshot{}, fmt.Errorf("collector registry is not configured")
	}

	s.debug("fetch weekly", "sources", len(s.sources), "day", day.Format(time.DateOnly))
	if s.opts.Reset != nil {
		s.opts.Reset()
	}

	parts := make([]*domain.Snapshot, len(s.sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Parallelism)

	for i, src := range s.sources {
		if !src.IsEnabled() || s.opts.Skip[src.Name] || s.opts.Skip[src.Collector] {
			s.debug("source skipped", "source", src.Name)
			continue
		}
		strategy, err := s.registry.Resolve(src.Collector)
		if err != nil {
			s.warn("source misconfigured", "source", src.Name, "error", err)
			continue
		}

		g.Go(func() error {
			started := time.Now()
			snap, err := strategy.Collect(gctx, collector.Request{
				Day:        day,
				SourceName: src.Name,
				Targets:    src.Targets,
				Options:    src.Options,
			})
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				s.warn("source failed, section left absent", "source", src.Name, "error", err)
				return nil
			}
			s.debug("source done", "source", src.Name, "elapsed", time.Since(started).Round(time.Millisecond))
			parts[i] = &snap
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Snapshot{}, fmt.Errorf("collect snapshot: %w", err)
	}

	var merged domain.Snapshot
	collected := 0
	for _, part := range parts {
		if part == nil {
			continue
		}
		merged = merged.Merge(*part)
		collected++
	}
	s.debug("collector source done", "collected", collected)
	return merged, nil
}

func (s *CollectorSource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *CollectorSource) warn(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
