package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fayda/internal/identity/metrics"
	"fayda/internal/identity/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS fayda_registry (
	fayda_id      CHAR(16) PRIMARY KEY,
	full_name     TEXT NOT NULL,
	region        TEXT NOT NULL DEFAULT '',
	birth_year    INTEGER NOT NULL DEFAULT 0,
	registered_at TIMESTAMPTZ NOT NULL
)`

// PostgresStore persists registry records in PostgreSQL.
// This store is pure I/O; name matching belongs in the service.
type PostgresStore struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// NewPostgres constructs a PostgreSQL-backed registry store.
func NewPostgres(db *sql.DB, metrics *metrics.Metrics) *PostgresStore {
	return &PostgresStore{db: db, metrics: metrics}
}

// Migrate creates the registry table when it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate fayda registry: %w", err)
	}
	return nil
}

func (s *PostgresStore) Find(ctx context.Context, faydaID string) (*models.RegistryRecord, error) {
	defer s.observe("find", time.Now())
	query := `
		SELECT fayda_id, full_name, region, birth_year, registered_at
		FROM fayda_registry
		WHERE fayda_id = $1
	`
	record, err := scanRecord(s.db.QueryRowContext(ctx, query, faydaID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find registry record: %w", err)
	}
	return record, nil
}

// Register inserts record unless the ID already exists. A conflicting insert
// returns no row, in which case the winner's record is read back.
func (s *PostgresStore) Register(ctx context.Context, record *models.RegistryRecord) (*models.RegistryRecord, bool, error) {
	if record == nil {
		return nil, false, errRecordRequired
	}
	start := time.Now()
	query := `
		INSERT INTO fayda_registry (fayda_id, full_name, region, birth_year, registered_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (fayda_id) DO NOTHING
		RETURNING fayda_id, full_name, region, birth_year, registered_at
	`
	stored, err := scanRecord(s.db.QueryRowContext(ctx, query,
		record.FaydaID,
		record.FullName,
		record.Region,
		record.BirthYear,
		record.RegisteredAt,
	))
	s.observe("register", start)
	if err == nil {
		return stored, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("register registry record: %w", err)
	}

	existing, err := s.Find(ctx, record.FaydaID)
	if err != nil {
		return nil, false, fmt.Errorf("read conflicting registry record: %w", err)
	}
	return existing, false, nil
}

func (s *PostgresStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM fayda_registry`); err != nil {
		return fmt.Errorf("reset registry: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Backend() string {
	return BackendPostgres
}

func (s *PostgresStore) observe(op string, start time.Time) {
	s.metrics.ObserveStoreLatency(BackendPostgres, op, time.Since(start))
}

type recordRow interface {
	Scan(dest ...any) error
}

func scanRecord(row recordRow) (*models.RegistryRecord, error) {
	var record models.RegistryRecord
	if err := row.Scan(&record.FaydaID, &record.FullName, &record.Region, &record.BirthYear, &record.RegisteredAt); err != nil {
		return nil, err
	}
	return &record, nil
}
