package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS records (
	id                 TEXT PRIMARY KEY,
	kind               TEXT NOT NULL,
	area_wkb           BLOB,
	area_km2           REAL NOT NULL,
	time_horizon_years INTEGER NOT NULL,
	overall_risk_score REAL NOT NULL,
	result             TEXT NOT NULL,
	created_at         DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_records_kind ON records(kind);
CREATE INDEX IF NOT EXISTS idx_records_risk ON records(overall_risk_score);
CREATE INDEX IF NOT EXISTS idx_records_created_at ON records(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Save(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO records (id, kind, area_wkb, area_km2, time_horizon_years, overall_risk_score, result, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, string(rec.Kind), rec.AreaWKB, rec.AreaKm2, rec.TimeHorizonYears,
		rec.OverallRiskScore, string(rec.Result), rec.CreatedAt,
	)
	return eris.Wrap(err, "sqlite: insert record")
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, kind, area_wkb, area_km2, time_horizon_years, overall_risk_score, result, created_at
		 FROM records WHERE id = ?`, id)
	return scanRecord(row, id)
}

func (s *SQLiteStore) List(ctx context.Context, filter Filter) ([]Record, error) {
	query := `SELECT id, kind, area_wkb, area_km2, time_horizon_years, overall_risk_score, result, created_at FROM records`
	var conditions []string
	var args []any

	if filter.Kind != "" {
		conditions = append(conditions, "kind = ?")
		args = append(args, string(filter.Kind))
	}
	if filter.MinRiskScore > 0 {
		conditions = append(conditions, "overall_risk_score >= ?")
		args = append(args, filter.MinRiskScore)
	}
	for i, c := range conditions {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list records")
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var kind, result string
		if err := rows.Scan(&rec.ID, &kind, &rec.AreaWKB, &rec.AreaKm2,
			&rec.TimeHorizonYears, &rec.OverallRiskScore, &result, &rec.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan record")
		}
		rec.Kind = Kind(kind)
		rec.Result = []byte(result)
		records = append(records, rec)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: iterate records")
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete record %s", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Wrapf(ErrNotFound, "%s", id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRecord(row scannable, id string) (*Record, error) {
	var rec Record
	var kind, result string

	err := row.Scan(&rec.ID, &kind, &rec.AreaWKB, &rec.AreaKm2,
		&rec.TimeHorizonYears, &rec.OverallRiskScore, &result, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.Wrapf(ErrNotFound, "%s", id)
	}
	if err != nil {
		return nil, eris.Wrap(err, "scan record")
	}
	rec.Kind = Kind(kind)
	rec.Result = []byte(result)
	return &rec, nil
}
