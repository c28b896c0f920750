package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/savedlist-cli/internal/db"
	"github.com/sells-group/savedlist-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db         *sql.DB
	upsertStmt string
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}

	upsert, err := db.UpsertSQL(extractionUpsert, db.Question)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &SQLiteStore{db: conn, upsertStmt: upsert}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS extractions (
	id          TEXT PRIMARY KEY,
	source      TEXT NOT NULL,
	payload     TEXT NOT NULL,
	list        TEXT,
	place_count INTEGER NOT NULL DEFAULT 0,
	status      TEXT NOT NULL,
	error       TEXT NOT NULL DEFAULT '',
	created_at  DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_extractions_status ON extractions(status);
CREATE INDEX IF NOT EXISTS idx_extractions_source ON extractions(source);
CREATE INDEX IF NOT EXISTS idx_extractions_created_at ON extractions(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveExtraction(ctx context.Context, e model.Extraction) (*model.Extraction, error) {
	e, listJSON, err := prepare(e)
	if err != nil {
		return nil, err
	}

	var list sql.NullString
	if listJSON != nil {
		list = sql.NullString{String: string(listJSON), Valid: true}
	}

	_, err = s.db.ExecContext(ctx, s.upsertStmt,
		e.ID, e.Source, e.Payload, list, e.PlaceCount, string(e.Status), e.Error, e.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: save extraction %s", e.ID)
	}
	return &e, nil
}

func (s *SQLiteStore) GetExtraction(ctx context.Context, id string) (*model.Extraction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, payload, list, place_count, status, error, created_at FROM extractions WHERE id = ?`,
		id,
	)

	var e model.Extraction
	var list sql.NullString
	err := row.Scan(&e.ID, &e.Source, &e.Payload, &list, &e.PlaceCount, &e.Status, &e.Error, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "sqlite: get extraction %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get extraction %s", id)
	}

	if list.Valid {
		if e.List, err = decodeList([]byte(list.String)); err != nil {
			return nil, err
		}
	}
	return &e, nil
}

func (s *SQLiteStore) ListExtractions(ctx context.Context, filter ListFilter) ([]model.Extraction, error) {
	query := `SELECT id, source, place_count, status, error, created_at FROM extractions WHERE 1=1`
	var args []any

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	if filter.Source != "" {
		query += ` AND source = ?`
		args = append(args, filter.Source)
	}
	query += ` ORDER BY created_at DESC, id LIMIT ?`
	args = append(args, listLimit(filter))

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list extractions")
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
	return out, eris.Wrap(rows.Err(), "sqlite: list extractions iterate")
}

type scannable interface {
	Scan(dest ...any) error
}

// scanSummary reads the columns selected by ListExtractions.
func scanSummary(row scannable) (*model.Extraction, error) {
	var e model.Extraction
	if err := row.Scan(&e.ID, &e.Source, &e.PlaceCount, &e.Status, &e.Error, &e.CreatedAt); err != nil {
		return nil, eris.Wrap(err, "store: scan extraction")
	}
	return &e, nil
}
