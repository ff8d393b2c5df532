package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/repository"

	"github.com/lib/pq"
)

//go:embed schema.sql
var schemaSQL string

const (
	uniqueViolation = "23505"
	// Raised when an id is not a well-formed uuid.
	invalidTextRepresentation = "22P02"
)

type Store struct {
	db *sql.DB
	repository.AccountRepository
	repository.ProfileRepository
	repository.EquipmentRepository
	repository.BookingRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                  db,
		AccountRepository:   NewAccountRepository(db),
		ProfileRepository:   NewProfileRepository(db),
		EquipmentRepository: NewEquipmentRepository(db),
		BookingRepository:   NewBookingRepository(db),
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// ApplySchema creates the tables and indexes when they do not exist yet.
func ApplySchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// notFound maps a missing row, or an id that cannot name any row, to
// domain.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == invalidTextRepresentation {
		return domain.ErrNotFound
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func count(ctx context.Context, db *sql.DB, query string, args ...any) (int64, error) {
	var n int64
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
