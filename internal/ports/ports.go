package ports

import (
	"context"
	"errors"
	"time"

	"TrendEngine/internal/domain"
)

// SnapshotSource collects one week of signals from every configured source.
// Failed sources are left absent in the returned snapshot.
type SnapshotSource interface {
	FetchWeekly(ctx context.Context, day time.Time) (domain.Snapshot, error)
}

// ErrNoSnapshot is returned by repositories when no stored snapshot
// matches the lookup.
var ErrNoSnapshot = errors.New("no stored snapshot")

// SnapshotRepository persists weekly snapshots so the next run can diff
// against them.
type SnapshotRepository interface {
	Save(ctx context.Context, record domain.BriefRecord) error
	Latest(ctx context.Context) (domain.BriefRecord, error)
	ByDate(ctx context.Context, date string) (domain.BriefRecord, error)
	List(ctx context.Context, limit int) ([]domain.BriefRecord, error)
	Count(ctx context.Context) (int, error)
}

// StrategyGenerator turns a system and user prompt into raw model output.
type StrategyGenerator interface {
	Name() string
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// StrategyPlanner produces the weekly playbook for a brief and reports
// which source produced it.
type StrategyPlanner interface {
	Plan(ctx context.Context, brief domain.Brief) (*domain.Playbook, string)
}

// Renderer formats a finished brief for delivery.
type Renderer interface {
	Render(brief domain.Brief) (string, error)
}

// Notifier streams finished briefs to Telegram or other channels.
type Notifier interface {
	PublishBrief(ctx context.Context, text string) error
}

// Scheduler controls when pipelines execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
