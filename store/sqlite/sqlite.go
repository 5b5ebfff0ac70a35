/*
Package sqlite provides a SQLite-backed implementation of generic.Store.

PURPOSE:
  Persists the user-editable inputs of each dossier: the dossier document
  and the payments received. Everything derived from them (schedule,
  interest, allocation) is recomputed on read and never stored.

KEY TABLES:
  dossiers: One row per dossier, the factory document as JSON
  payments: Payments received, one row each, amounts as decimal TEXT

INDEXES:
  - idx_payments_dossier_date: Payments of a dossier in received-date order

CONCURRENCY:
  Uses sync.RWMutex for thread-safety: one writer, many readers.

WAL MODE:
  File databases are opened with WAL (Write-Ahead Logging) so readers don't
  block the writer. In-memory databases are limited to one connection, as
  each connection would otherwise see its own empty database.

USAGE:
  store, err := sqlite.New("./albion.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  err = store.AppendPayment(ctx, dossierID, payment)

SEE ALSO:
  - generic/store.go: Interface definitions
  - generic/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
)

// Store implements generic.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ generic.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	dsn := dbPath + "?_foreign_keys=on"
	memory := dbPath == ":memory:"
	if !memory {
		dsn += "&_journal_mode=WAL"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if memory {
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS dossiers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		mode TEXT NOT NULL,
		document TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_dossiers_name
		ON dossiers(name);

	-- Payment IDs are unique within a dossier only
	CREATE TABLE IF NOT EXISTS payments (
		id TEXT NOT NULL,
		dossier_id TEXT NOT NULL REFERENCES dossiers(id) ON DELETE CASCADE,
		received_date TEXT NOT NULL,
		amount TEXT NOT NULL,
		reference TEXT,
		created_at TEXT NOT NULL,
		PRIMARY KEY (dossier_id, id)
	);

	-- Hot path: a dossier's payments in received-date order
	CREATE INDEX IF NOT EXISTS idx_payments_dossier_date
		ON payments(dossier_id, received_date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// DOSSIER STORE
// =============================================================================

// SaveDossier inserts or replaces a dossier document, keeping its creation time.
func (s *Store) SaveDossier(ctx context.Context, rec generic.DossierRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	created := rec.CreatedAt
	if created.IsZero() {
		created = now
	}

	query := `
		INSERT INTO dossiers (id, name, mode, document, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			mode = excluded.mode,
			document = excluded.document,
			updated_at = excluded.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		rec.ID,
		rec.Name,
		rec.Mode,
		rec.Document,
		created.Format(time.RFC3339Nano),
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save dossier: %w", err)
	}
	return nil
}

func (s *Store) GetDossier(ctx context.Context, id generic.DossierID) (*generic.DossierRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, mode, document, created_at, updated_at FROM dossiers WHERE id = ?`, id)
	rec, err := scanDossier(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, generic.ErrDossierNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) ListDossiers(ctx context.Context) ([]generic.DossierRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, mode, document, created_at, updated_at FROM dossiers ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query dossiers: %w", err)
	}
	defer rows.Close()

	var result []generic.DossierRecord
	for rows.Next() {
		rec, err := scanDossier(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// DeleteDossier removes a dossier; its payments go with it (ON DELETE CASCADE).
func (s *Store) DeleteDossier(ctx context.Context, id generic.DossierID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM dossiers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete dossier: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return generic.ErrDossierNotFound
	}
	return nil
}

// =============================================================================
// PAYMENT STORE
// =============================================================================

func (s *Store) AppendPayment(ctx context.Context, dossierID generic.DossierID, p generic.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dossierExists(ctx, dossierID) {
		return generic.ErrDossierNotFound
	}

	query := `
		INSERT INTO payments (id, dossier_id, received_date, amount, reference, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		p.ID,
		dossierID,
		p.ReceivedDate.String(),
		p.Amount.Value.String(),
		nullString(p.Reference),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return generic.ErrDuplicatePayment
		}
		return fmt.Errorf("failed to append payment: %w", err)
	}
	return nil
}

func (s *Store) DeletePayment(ctx context.Context, dossierID generic.DossierID, paymentID generic.PaymentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM payments WHERE dossier_id = ? AND id = ?`, dossierID, paymentID)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return generic.ErrPaymentNotFound
	}
	return nil
}

// Payments returns a dossier's payments by received date, then insertion order.
func (s *Store) Payments(ctx context.Context, dossierID generic.DossierID) ([]generic.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.dossierExists(ctx, dossierID) {
		return nil, generic.ErrDossierNotFound
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, received_date, amount, reference
		FROM payments
		WHERE dossier_id = ?
		ORDER BY received_date ASC, rowid ASC
	`, dossierID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	result := []generic.Payment{}
	for rows.Next() {
		var (
			id, date, amount string
			reference        sql.NullString
		)
		if err := rows.Scan(&id, &date, &amount, &reference); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		received, err := generic.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("payment %s: %w", id, err)
		}
		value, err := generic.ParseAmount(amount)
		if err != nil {
			return nil, fmt.Errorf("payment %s: %w", id, err)
		}
		result = append(result, generic.Payment{
			ID:           generic.PaymentID(id),
			ReceivedDate: received,
			Amount:       value,
			Reference:    reference.String,
		})
	}
	return result, rows.Err()
}

// Reset clears all data (for testing and demo reloads).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM payments; DELETE FROM dossiers;`)
	return err
}

// =============================================================================
// HELPERS
// =============================================================================

type scanner interface {
	Scan(dest ...any) error
}

func scanDossier(row scanner) (generic.DossierRecord, error) {
	var (
		rec              generic.DossierRecord
		id               string
		created, updated string
	)
	if err := row.Scan(&id, &rec.Name, &rec.Mode, &rec.Document, &created, &updated); err != nil {
		return generic.DossierRecord{}, err
	}
	rec.ID = generic.DossierID(id)
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
	return rec, nil
}

func (s *Store) dossierExists(ctx context.Context, id generic.DossierID) bool {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM dossiers WHERE id = ?`, id).Scan(&count)
	return err == nil && count > 0
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func isUniqueConstraintError(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "PRIMARY KEY"))
}
