package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"TrendEngine/internal/domain"
	"TrendEngine/internal/ports"
)

// ErrNoSnapshot is returned when no stored snapshot matches the lookup.
var ErrNoSnapshot = ports.ErrNoSnapshot

const snapshotTable = "brief_snapshots"

const schema = `CREATE TABLE IF NOT EXISTS brief_snapshots (
	id              TEXT PRIMARY KEY,
	run_date        TEXT NOT NULL UNIQUE,
	brief_number    INTEGER NOT NULL,
	theme           TEXT NOT NULL,
	strategy_source TEXT NOT NULL DEFAULT '',
	summary         TEXT NOT NULL DEFAULT '',
	snapshot        TEXT NOT NULL,
	created_at      TEXT NOT NULL
)`

var snapshotColumns = []string{
	"id", "run_date", "brief_number", "theme", "strategy_source", "summary", "snapshot", "created_at",
}

// SnapshotRepository persists weekly snapshots into Postgres or SQLite.
type SnapshotRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
	now     func() time.Time
}

var _ ports.SnapshotRepository = (*SnapshotRepository)(nil)

// NewSnapshotRepository wires a sql.DB implementation.
func NewSnapshotRepository(db *sql.DB, dialect Dialect) *SnapshotRepository {
	return &SnapshotRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(dialect.Placeholder),
		now:     time.Now,
	}
}

// Migrate creates the snapshot table when it does not exist.
func (r *SnapshotRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate %s: %w", snapshotTable, err)
	}
	return nil
}

// Save upserts the record keyed by its run date.
func (r *SnapshotRepository) Save(ctx context.Context, record domain.BriefRecord) error {
	if record.Date == "" {
		return fmt.Errorf("save snapshot: date is required")
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = r.now()
	}

	payload, err := json.Marshal(record.Snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	query, args, err := r.builder.Insert(snapshotTable).
		Columns(snapshotColumns...).
		Values(
			record.ID,
			record.Date,
			record.BriefNumber,
			record.Theme,
			record.StrategySource,
			record.Summary,
			string(payload),
			record.CreatedAt.UTC().Format(time.RFC3339Nano),
		).
		Suffix(`ON CONFLICT (run_date) DO UPDATE
			SET brief_number = EXCLUDED.brief_number,
			    theme = EXCLUDED.theme,
			    strategy_source = EXCLUDED.strategy_source,
			    summary = EXCLUDED.summary,
			    snapshot = EXCLUDED.snapshot,
			    created_at = EXCLUDED.created_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

// Latest returns the most recent snapshot or ErrNoSnapshot.
func (r *SnapshotRepository) Latest(ctx context.Context) (domain.BriefRecord, error) {
	records, err := r.query(ctx, r.selectSnapshots().Limit(1))
	if err != nil {
		return domain.BriefRecord{}, err
	}
	if len(records) == 0 {
		return domain.BriefRecord{}, ErrNoSnapshot
	}
	return records[0], nil
}

// ByDate returns the snapshot stored for date (YYYY-MM-DD).
func (r *SnapshotRepository) ByDate(ctx context.Context, date string) (domain.BriefRecord, error) {
	records, err := r.query(ctx, r.selectSnapshots().Where(sq.Eq{"run_date": date}))
	if err != nil {
		return domain.BriefRecord{}, err
	}
	if len(records) == 0 {
		return domain.BriefRecord{}, ErrNoSnapshot
	}
	return records[0], nil
}

// List returns up to limit snapshots, newest first. A non-positive limit
// returns all of them.
func (r *SnapshotRepository) List(ctx context.Context, limit int) ([]domain.BriefRecord, error) {
	builder := r.selectSnapshots()
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	return r.query(ctx, builder)
}

// Count returns the number of stored snapshots.
func (r *SnapshotRepository) Count(ctx context.Context) (int, error) {
	query, args, err := r.builder.Select("COUNT(*)").From(snapshotTable).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count snapshots: %w", err)
	}
	return n, nil
}

func (r *SnapshotRepository) selectSnapshots() sq.SelectBuilder {
	return r.builder.Select(snapshotColumns...).
		From(snapshotTable).
		OrderBy("run_date DESC", "created_at DESC")
}

func (r *SnapshotRepository) query(ctx context.Context, builder sq.SelectBuilder) ([]domain.BriefRecord, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}

	var records []domain.BriefRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		records = append(records, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return records, nil
}

func scanRecord(rows *sql.Rows) (domain.BriefRecord, error) {
	var (
		record    domain.BriefRecord
		payload   string
		createdAt string
	)
	if err := rows.Scan(
		&record.ID,
		&record.Date,
		&record.BriefNumber,
		&record.Theme,
		&record.StrategySource,
		&record.Summary,
		&payload,
		&createdAt,
	); err != nil {
		return domain.BriefRecord{}, fmt.Errorf("scan snapshot: %w", err)
	}

	if err := json.Unmarshal([]byte(payload), &record.Snapshot); err != nil {
		return domain.BriefRecord{}, fmt.Errorf("decode snapshot %s: %w", record.Date, err)
	}
	if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		record.CreatedAt = ts
	}
	return record, nil
}
