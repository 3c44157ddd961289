package database

import (
	"fmt"
	"time"

	"logmed-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const cityColumns = `id, name, state, region, type, value, created_at, updated_at`

func ListCities(db *sqlx.DB) ([]models.City, error) {
	cities := []models.City{}
	if err := db.Select(&cities, `SELECT `+cityColumns+` FROM cities ORDER BY name ASC`); err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	return cities, nil
}

func CreateCity(db *sqlx.DB, c *models.City) error {
	now := time.Now().Unix()
	c.ID = uuid.New().String()
	c.CreatedAt, c.UpdatedAt = now, now
	if c.Type == "" {
		c.Type = models.CityTypeFixed
	}

	_, err := db.NamedExec(`
		INSERT INTO cities (id, name, state, region, type, value, created_at, updated_at)
		VALUES (:id, :name, :state, :region, :type, :value, :created_at, :updated_at)
	`, c)
	if err != nil {
		return writeErr(err, "create city")
	}
	return nil
}

func UpdateCity(db *sqlx.DB, c *models.City) error {
	c.UpdatedAt = time.Now().Unix()
	res, err := db.NamedExec(`
		UPDATE cities
		SET name = :name, state = :state, region = :region, type = :type, value = :value,
		    updated_at = :updated_at
		WHERE id = :id
	`, c)
	if err != nil {
		return writeErr(err, "update city")
	}
	return affected(res, "update city")
}

// DeleteCity removes a catalog entry. Freights keep their own snapshot of it.
func DeleteCity(db *sqlx.DB, id string) error {
	res, err := db.Exec(`DELETE FROM cities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete city: %w", err)
	}
	return affected(res, "delete city")
}

// UpsertCityByName inserts the city or updates the value of the one with the
// same name.
func UpsertCityByName(db *sqlx.DB, c models.City) (inserted bool, err error) {
	now := time.Now().Unix()
	if c.Type == "" {
		c.Type = models.CityTypeFixed
	}
	err = db.Get(&inserted, `
		INSERT INTO cities (id, name, state, region, type, value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (name) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
		RETURNING (xmax = 0)
	`, uuid.New().String(), c.Name, c.State, c.Region, c.Type, c.Value, now)
	if err != nil {
		return false, fmt.Errorf("failed to upsert city %q: %w", c.Name, err)
	}
	return inserted, nil
}
