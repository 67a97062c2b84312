package repository_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/counterfoil/teller/pkg/repository"
)

var (
	errCaseNotFound  = errors.New("case not found")
	errCaseDuplicate = errors.New("duplicate case")
)

func TestMapErrorNil(t *testing.T) {
	got := repository.MapError(nil, errCaseNotFound, errCaseDuplicate)
	if got != nil {
		t.Errorf("MapError(nil) = %v, want nil", got)
	}
}

func TestMapErrorNotFound(t *testing.T) {
	got := repository.MapError(sql.ErrNoRows, errCaseNotFound, errCaseDuplicate)
	if !errors.Is(got, errCaseNotFound) {
		t.Errorf("MapError(ErrNoRows) = %v, want %v", got, errCaseNotFound)
	}
}

func TestMapErrorWrappedNotFound(t *testing.T) {
	wrapped := fmt.Errorf("query case: %w", sql.ErrNoRows)
	got := repository.MapError(wrapped, errCaseNotFound, errCaseDuplicate)
	if !errors.Is(got, errCaseNotFound) {
		t.Errorf("MapError(wrapped ErrNoRows) = %v, want %v", got, errCaseNotFound)
	}
}

func TestMapErrorDuplicate(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505"}
	got := repository.MapError(pgErr, errCaseNotFound, errCaseDuplicate)
	if !errors.Is(got, errCaseDuplicate) {
		t.Errorf("MapError(PgError 23505) = %v, want %v", got, errCaseDuplicate)
	}
}

func TestMapErrorPassthrough(t *testing.T) {
	original := errors.New("connection reset")
	got := repository.MapError(original, errCaseNotFound, errCaseDuplicate)
	if got != original {
		t.Errorf("MapError(other) = %v, want %v", got, original)
	}
}

func TestMapErrorPgNonDuplicate(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503"}
	got := repository.MapError(pgErr, errCaseNotFound, errCaseDuplicate)
	if got != pgErr {
		t.Errorf("MapError(PgError 23503) should pass through, got %v", got)
	}
}
