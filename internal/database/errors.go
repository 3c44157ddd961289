package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// ErrNotFound is returned when a lookup by id matches no row.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert or update hits a unique constraint.
var ErrDuplicate = errors.New("record already exists")

// DependentFreightsError blocks deleting a driver or route that freights
// still reference. The message is shown to the operator as is.
type DependentFreightsError struct {
	Entity string // "driver" or "route"
	Name   string
	Count  int
}

func (e *DependentFreightsError) Error() string {
	if e.Entity == "driver" {
		return fmt.Sprintf("Não é possível excluir o motorista \"%s\" pois existem %d frete(s) associado(s).", e.Name, e.Count)
	}
	return fmt.Sprintf("Não é possível excluir esta rota pois existem %d frete(s) associado(s).", e.Count)
}

// notFound maps sql.ErrNoRows to ErrNotFound and wraps everything else.
func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}

// writeErr maps unique violations to ErrDuplicate.
func writeErr(err error, op string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicate
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// affected returns ErrNotFound when a write touched no row.
func affected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
