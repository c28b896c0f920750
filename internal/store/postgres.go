package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/savedlist-cli/internal/db"
	"github.com/sells-group/savedlist-cli/internal/model"
	"github.com/sells-group/savedlist-cli/internal/resilience"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool       db.Pool
	upsertStmt string
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(4)
	minConns := int32(1)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := ping(ctx, pool, pingRetry); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return newPostgresWithPool(pool)
}

// pingRetry covers a database that is still starting when the CLI opens it.
var pingRetry = func() resilience.RetryConfig {
	cfg := resilience.FromAttempts(2, 500*time.Millisecond)
	cfg.OnRetry = resilience.RetryLogger("store", "postgres ping")
	return cfg
}()

func ping(ctx context.Context, pool db.Pool, cfg resilience.RetryConfig) error {
	return resilience.Do(ctx, cfg, pool.Ping)
}

func newPostgresWithPool(pool db.Pool) (*PostgresStore, error) {
	upsert, err := db.UpsertSQL(extractionUpsert, db.Dollar)
	if err != nil {
		return nil, err
	}
	return &PostgresStore{pool: pool, upsertStmt: upsert}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS extractions (
	id          TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	source      TEXT NOT NULL,
	payload     TEXT NOT NULL,
	list        JSONB,
	place_count INTEGER NOT NULL DEFAULT 0,
	status      TEXT NOT NULL,
	error       TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_extractions_status ON extractions(status);
CREATE INDEX IF NOT EXISTS idx_extractions_source ON extractions(source);
CREATE INDEX IF NOT EXISTS idx_extractions_created_at ON extractions(created_at DESC);
`

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveExtraction(ctx context.Context, e model.Extraction) (*model.Extraction, error) {
	e, listJSON, err := prepare(e)
	if err != nil {
		return nil, err
	}

	var list any
	if listJSON != nil {
		list = listJSON
	}

	_, err = s.pool.Exec(ctx, s.upsertStmt,
		e.ID, e.Source, e.Payload, list, e.PlaceCount, string(e.Status), e.Error, e.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: save extraction %s", e.ID)
	}
	return &e, nil
}

func (s *PostgresStore) GetExtraction(ctx context.Context, id string) (*model.Extraction, error) {
	var e model.Extraction
	var list []byte

	err := s.pool.QueryRow(ctx,
		`SELECT id, source, payload, list, place_count, status, error, created_at FROM extractions WHERE id = $1`,
		id,
	).Scan(&e.ID, &e.Source, &e.Payload, &list, &e.PlaceCount, &e.Status, &e.Error, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "postgres: get extraction %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get extraction %s", id)
	}

	if e.List, err = decodeList(list); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *PostgresStore) ListExtractions(ctx context.Context, filter ListFilter) ([]model.Extraction, error) {
	query := `SELECT id, source, place_count, status, error, created_at FROM extractions WHERE true`
	args := []any{}
	argIdx := 1

	if filter.Status != "" {
		query += fmt.Sprintf(` AND status = $%d`, argIdx)
		args = append(args, string(filter.Status))
		argIdx++
	}
	if filter.Source != "" {
		query += fmt.Sprintf(` AND source = $%d`, argIdx)
		args = append(args, filter.Source)
		argIdx++
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, id LIMIT $%d`, argIdx)
	args = append(args, listLimit(filter))
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list extractions")
	}
	defer rows.Close()

	var out []model.Extraction
	for rows.Next() {
		e, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list extractions iterate")
}
