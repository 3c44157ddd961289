package database

import (
	"fmt"
	"time"

	"logmed-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const vehicleColumns = `id, plate, model, brand, type, year, status, image_url, avg_consumption,
	cost_per_km, current_km, maintenance_note, driver_id, created_at, updated_at`

func ListVehicles(db *sqlx.DB) ([]models.Vehicle, error) {
	vehicles := []models.Vehicle{}
	if err := db.Select(&vehicles, `SELECT `+vehicleColumns+` FROM fleet ORDER BY plate ASC`); err != nil {
		return nil, fmt.Errorf("failed to list fleet: %w", err)
	}
	return vehicles, nil
}

func GetVehicle(db *sqlx.DB, id string) (*models.Vehicle, error) {
	var v models.Vehicle
	if err := db.Get(&v, `SELECT `+vehicleColumns+` FROM fleet WHERE id = $1`, id); err != nil {
		return nil, notFound(err, "vehicle")
	}
	return &v, nil
}

func CreateVehicle(db *sqlx.DB, v *models.Vehicle) error {
	now := time.Now().Unix()
	v.ID = uuid.New().String()
	v.CreatedAt, v.UpdatedAt = now, now
	if v.Status == "" {
		v.Status = models.VehicleStatusActive
	}

	_, err := db.NamedExec(`
		INSERT INTO fleet (id, plate, model, brand, type, year, status, image_url, avg_consumption,
		                   cost_per_km, current_km, maintenance_note, driver_id, created_at, updated_at)
		VALUES (:id, :plate, :model, :brand, :type, :year, :status, :image_url, :avg_consumption,
		        :cost_per_km, :current_km, :maintenance_note, :driver_id, :created_at, :updated_at)
	`, v)
	if err != nil {
		return writeErr(err, "create vehicle")
	}
	return nil
}

func UpdateVehicle(db *sqlx.DB, v *models.Vehicle) error {
	v.UpdatedAt = time.Now().Unix()
	res, err := db.NamedExec(`
		UPDATE fleet
		SET plate = :plate, model = :model, brand = :brand, type = :type, year = :year,
		    status = :status, image_url = :image_url, avg_consumption = :avg_consumption,
		    cost_per_km = :cost_per_km, current_km = :current_km,
		    maintenance_note = :maintenance_note, driver_id = :driver_id, updated_at = :updated_at
		WHERE id = :id
	`, v)
	if err != nil {
		return writeErr(err, "update vehicle")
	}
	return affected(res, "update vehicle")
}

func DeleteVehicle(db *sqlx.DB, id string) error {
	res, err := db.Exec(`DELETE FROM fleet WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	return affected(res, "delete vehicle")
}
