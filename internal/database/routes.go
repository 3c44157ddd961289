package database

import (
	"fmt"
	"time"

	"logmed-backend/internal/models"

	"github.com/jmoiron/sqlx"
)

const routeColumns = `id, origin, destination, value, cities, status, created_at, updated_at`

func ListRoutes(db *sqlx.DB) ([]models.Route, error) {
	routes := []models.Route{}
	if err := db.Select(&routes, `SELECT `+routeColumns+` FROM routes ORDER BY id ASC`); err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}
	return routes, nil
}

func CountActiveRoutes(db *sqlx.DB) (int, error) {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM routes WHERE status = $1`, models.RouteStatusActive); err != nil {
		return 0, fmt.Errorf("failed to count routes: %w", err)
	}
	return n, nil
}

func GetRoute(db sqlx.Queryer, id string) (*models.Route, error) {
	var r models.Route
	if err := sqlx.Get(db, &r, `SELECT `+routeColumns+` FROM routes WHERE id = $1`, id); err != nil {
		return nil, notFound(err, "route")
	}
	return &r, nil
}

// CreateRoute inserts a route under its code. The destination is derived from
// the city list.
func CreateRoute(db *sqlx.DB, r *models.Route) error {
	now := time.Now().Unix()
	r.CreatedAt, r.UpdatedAt = now, now
	if r.Status == "" {
		r.Status = models.RouteStatusActive
	}
	r.DeriveDestination()

	_, err := db.NamedExec(`
		INSERT INTO routes (id, origin, destination, value, cities, status, created_at, updated_at)
		VALUES (:id, :origin, :destination, :value, :cities, :status, :created_at, :updated_at)
	`, r)
	if err != nil {
		return writeErr(err, "create route")
	}
	return nil
}

// UpdateRoute rewrites the route stored under previousID. The code itself may
// change; freights follow through ON UPDATE CASCADE.
func UpdateRoute(db *sqlx.DB, previousID string, r *models.Route) error {
	r.UpdatedAt = time.Now().Unix()
	r.DeriveDestination()

	res, err := db.Exec(`
		UPDATE routes
		SET id = $1, origin = $2, destination = $3, value = $4, cities = $5, status = $6, updated_at = $7
		WHERE id = $8
	`, r.ID, r.Origin, r.Destination, r.Value, r.Cities, r.Status, r.UpdatedAt, previousID)
	if err != nil {
		return writeErr(err, "update route")
	}
	return affected(res, "update route")
}

// DeleteRoute removes a route that no freight references.
func DeleteRoute(db *sqlx.DB, id string) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	r, err := GetRoute(tx, id)
	if err != nil {
		return err
	}

	var count int
	if err := tx.Get(&count, `SELECT COUNT(*) FROM freights WHERE route_id = $1`, id); err != nil {
		return fmt.Errorf("failed to count route freights: %w", err)
	}
	if count > 0 {
		return &DependentFreightsError{Entity: "route", Name: r.ID, Count: count}
	}

	if _, err := tx.Exec(`DELETE FROM routes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete route: %w", err)
	}
	return tx.Commit()
}

// UpsertRoute inserts the route or replaces the one with the same code.
func UpsertRoute(db *sqlx.DB, r models.Route) (inserted bool, err error) {
	now := time.Now().Unix()
	if r.Status == "" {
		r.Status = models.RouteStatusActive
	}
	r.DeriveDestination()
	err = db.Get(&inserted, `
		INSERT INTO routes (id, origin, destination, value, cities, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (id) DO UPDATE
		SET origin = EXCLUDED.origin, destination = EXCLUDED.destination, value = EXCLUDED.value,
		    cities = EXCLUDED.cities, updated_at = EXCLUDED.updated_at
		RETURNING (xmax = 0)
	`, r.ID, r.Origin, r.Destination, r.Value, r.Cities, r.Status, now)
	if err != nil {
		return false, fmt.Errorf("failed to upsert route %q: %w", r.ID, err)
	}
	return inserted, nil
}
