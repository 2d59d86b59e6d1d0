package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Lookup is one recorded weather lookup. Exactly one of the weather fields
// (TemperatureF, ConditionCode) or the error fields is populated.
type Lookup struct {
	ID            uuid.UUID       `db:"id"`
	City          string          `db:"city"`
	TemperatureF  sql.NullFloat64 `db:"temperature_f"`
	Description   string          `db:"description"`
	Emoji         string          `db:"emoji"`
	ConditionCode sql.NullInt32   `db:"condition_code"`
	ErrorKind     string          `db:"error_kind"`
	ErrorMessage  string          `db:"error_message"`
	CreatedAt     time.Time       `db:"created_at"`
}

// Failed reports whether the lookup ended in an error.
func (l Lookup) Failed() bool { return l.ErrorKind != "" }

// LookupRepository stores the lookup history.
type LookupRepository interface {
	Migrate(ctx context.Context) error
	Record(ctx context.Context, l Lookup) (uuid.UUID, error)
	Recent(ctx context.Context, limit int) ([]Lookup, error)
}

// MaxRecent caps how many rows Recent returns.
const MaxRecent = 100

var schema = []string{`
CREATE TABLE IF NOT EXISTS lookups (
    id             UUID PRIMARY KEY,
    city           TEXT NOT NULL,
    temperature_f  DOUBLE PRECISION,
    description    TEXT NOT NULL DEFAULT '',
    emoji          TEXT NOT NULL DEFAULT '',
    condition_code INTEGER,
    error_kind     TEXT NOT NULL DEFAULT '',
    error_message  TEXT NOT NULL DEFAULT '',
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	`CREATE INDEX IF NOT EXISTS lookups_created_at_idx ON lookups (created_at DESC);`,
}

type pgRepo struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewLookupRepository(db *sqlx.DB, logger *zap.Logger) LookupRepository {
	return &pgRepo{db: db, logger: logger}
}

func (r *pgRepo) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			r.logger.Error("failed to migrate lookups table", zap.Error(err))
			return fmt.Errorf("migrate lookups: %w", err)
		}
	}
	return nil
}

func (r *pgRepo) Record(ctx context.Context, l Lookup) (uuid.UUID, error) {
	const q = `
        INSERT INTO lookups (id, city, temperature_f, description, emoji, condition_code, error_kind, error_message, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, q,
		l.ID, l.City, l.TemperatureF, l.Description, l.Emoji,
		l.ConditionCode, l.ErrorKind, l.ErrorMessage, l.CreatedAt,
	)
	if err != nil {
		r.logger.Error("failed to record lookup",
			zap.String("city", l.City),
			zap.Error(err),
		)
		return uuid.Nil, err
	}

	r.logger.Debug("lookup recorded",
		zap.String("id", l.ID.String()),
		zap.String("city", l.City),
		zap.Bool("failed", l.Failed()),
	)
	return l.ID, nil
}

func (r *pgRepo) Recent(ctx context.Context, limit int) ([]Lookup, error) {
	const q = `
        SELECT id, city, temperature_f, description, emoji, condition_code, error_kind, error_message, created_at
        FROM lookups
        ORDER BY created_at DESC
        LIMIT $1;
    `
	if limit <= 0 || limit > MaxRecent {
		limit = MaxRecent
	}

	var out []Lookup
	if err := r.db.SelectContext(ctx, &out, q, limit); err != nil {
		r.logger.Error("failed to fetch recent lookups", zap.Int("limit", limit), zap.Error(err))
		return nil, err
	}
	r.logger.Debug("fetched recent lookups", zap.Int("limit", limit), zap.Int("count", len(out)))
	return out, nil
}
