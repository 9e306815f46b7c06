package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/dmitrymomot/cgmportal/pkg/dexa"
	"github.com/dmitrymomot/cgmportal/pkg/pg"
)

// DB is the part of *pgxpool.Pool the store needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// PostgresStore is a Store backed by PostgreSQL.
type PostgresStore struct {
	db DB
}

// NewPostgresStore wraps a pool. The schema must already be migrated.
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const insertUpload = `
INSERT INTO uploads (id, session_id, filename, storage_path, url, size, mime_type, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func (s *PostgresStore) CreateUpload(ctx context.Context, u Upload) error {
	if err := validateUpload(u); err != nil {
		return err
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(ctx, insertUpload,
		u.ID, u.SessionID, u.Filename, u.StoragePath, u.URL, u.Size, u.MIMEType, u.CreatedAt,
	)
	if pg.IsDuplicateKeyError(err) {
		return ErrDuplicateID
	}
	return err
}

const selectUploads = `
SELECT id::text, session_id, filename, storage_path, url, size, mime_type, created_at
FROM uploads
WHERE session_id = $1
ORDER BY created_at DESC
LIMIT $2`

func (s *PostgresStore) ListUploads(ctx context.Context, sessionID string, limit int) ([]Upload, error) {
	var lim *int
	if limit > 0 {
		lim = &limit
	}

	rows, err := s.db.Query(ctx, selectUploads, sessionID, lim)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanUpload)
}

func (s *PostgresStore) LatestUpload(ctx context.Context, sessionID string) (Upload, error) {
	rows, err := s.db.Query(ctx, selectUploads, sessionID, 1)
	if err != nil {
		return Upload{}, err
	}
	u, err := pgx.CollectExactlyOneRow(rows, scanUpload)
	if pg.IsNotFoundError(err) {
		return Upload{}, ErrNotFound
	}
	return u, err
}

func scanUpload(row pgx.CollectableRow) (Upload, error) {
	var u Upload
	err := row.Scan(&u.ID, &u.SessionID, &u.Filename, &u.StoragePath, &u.URL, &u.Size, &u.MIMEType, &u.CreatedAt)
	return u, err
}

const upsertLabs = `
INSERT INTO dexa_labs (session_id, scan_date, body_fat_pct, lean_mass_kg, visceral_fat_g, bone_t_score, hba1c_pct, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now())
ON CONFLICT (session_id) DO UPDATE SET
    scan_date      = EXCLUDED.scan_date,
    body_fat_pct   = EXCLUDED.body_fat_pct,
    lean_mass_kg   = EXCLUDED.lean_mass_kg,
    visceral_fat_g = EXCLUDED.visceral_fat_g,
    bone_t_score   = EXCLUDED.bone_t_score,
    hba1c_pct      = EXCLUDED.hba1c_pct,
    updated_at     = now()`

func (s *PostgresStore) SaveLabs(ctx context.Context, sessionID string, in dexa.Inputs) error {
	if sessionID == "" {
		return ErrInvalidInput
	}
	scanDate := pgtype.Date{Time: in.ScanDate, Valid: !in.ScanDate.IsZero()}
	_, err := s.db.Exec(ctx, upsertLabs,
		sessionID, scanDate, in.BodyFatPct, in.LeanMassKg, in.VisceralFatG, in.BoneTScore, in.HbA1cPct,
	)
	return err
}

const selectLabs = `
SELECT scan_date, body_fat_pct, lean_mass_kg, visceral_fat_g, bone_t_score, hba1c_pct
FROM dexa_labs
WHERE session_id = $1`

func (s *PostgresStore) GetLabs(ctx context.Context, sessionID string) (dexa.Inputs, error) {
	var (
		in       dexa.Inputs
		scanDate pgtype.Date
	)
	err := s.db.QueryRow(ctx, selectLabs, sessionID).Scan(
		&scanDate, &in.BodyFatPct, &in.LeanMassKg, &in.VisceralFatG, &in.BoneTScore, &in.HbA1cPct,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return dexa.Inputs{}, ErrNotFound
	}
	if err != nil {
		return dexa.Inputs{}, err
	}
	if scanDate.Valid {
		in.ScanDate = scanDate.Time
	}
	return in, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
