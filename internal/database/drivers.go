package database

import (
	"fmt"
	"time"

	"logmed-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const driverColumns = `id, name, plate, cnpj_cpf, valor_km, valor_ponto, photo_url, status,
	monthly_routes, revenue, created_at, updated_at`

// ListDrivers returns drivers ordered by name, optionally filtered by status.
func ListDrivers(db *sqlx.DB, status string) ([]models.Driver, error) {
	drivers := []models.Driver{}
	query := `SELECT ` + driverColumns + ` FROM drivers`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY name ASC`

	if err := db.Select(&drivers, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	return drivers, nil
}

func GetDriver(db sqlx.Queryer, id string) (*models.Driver, error) {
	var d models.Driver
	if err := sqlx.Get(db, &d, `SELECT `+driverColumns+` FROM drivers WHERE id = $1`, id); err != nil {
		return nil, notFound(err, "driver")
	}
	return &d, nil
}

func CreateDriver(db *sqlx.DB, d *models.Driver) error {
	now := time.Now().Unix()
	d.ID = uuid.New().String()
	d.CreatedAt, d.UpdatedAt = now, now
	if d.Status == "" {
		d.Status = models.DriverStatusActive
	}

	_, err := db.NamedExec(`
		INSERT INTO drivers (id, name, plate, cnpj_cpf, valor_km, valor_ponto, photo_url, status,
		                     monthly_routes, revenue, created_at, updated_at)
		VALUES (:id, :name, :plate, :cnpj_cpf, :valor_km, :valor_ponto, :photo_url, :status,
		        :monthly_routes, :revenue, :created_at, :updated_at)
	`, d)
	if err != nil {
		return writeErr(err, "create driver")
	}
	return nil
}

func UpdateDriver(db *sqlx.DB, d *models.Driver) error {
	d.UpdatedAt = time.Now().Unix()
	res, err := db.NamedExec(`
		UPDATE drivers
		SET name = :name, plate = :plate, cnpj_cpf = :cnpj_cpf, valor_km = :valor_km,
		    valor_ponto = :valor_ponto, photo_url = :photo_url, status = :status,
		    updated_at = :updated_at
		WHERE id = :id
	`, d)
	if err != nil {
		return writeErr(err, "update driver")
	}
	return affected(res, "update driver")
}

// DeleteDriver removes a driver that no freight references. When freights
// exist it returns a *DependentFreightsError and deletes nothing.
func DeleteDriver(db *sqlx.DB, id string) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	d, err := GetDriver(tx, id)
	if err != nil {
		return err
	}

	var count int
	if err := tx.Get(&count, `SELECT COUNT(*) FROM freights WHERE driver_id = $1`, id); err != nil {
		return fmt.Errorf("failed to count driver freights: %w", err)
	}
	if count > 0 {
		return &DependentFreightsError{Entity: "driver", Name: d.Name, Count: count}
	}

	if _, err := tx.Exec(`DELETE FROM drivers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete driver: %w", err)
	}
	return tx.Commit()
}

// UpsertDriverByName inserts the driver or refreshes the document and plate
// of the one with the same name. Rates and status of existing drivers are kept.
func UpsertDriverByName(db *sqlx.DB, d models.Driver) (inserted bool, err error) {
	now := time.Now().Unix()
	if d.Status == "" {
		d.Status = models.DriverStatusActive
	}
	err = db.Get(&inserted, `
		INSERT INTO drivers (id, name, plate, cnpj_cpf, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (name) DO UPDATE
		SET plate = EXCLUDED.plate, cnpj_cpf = EXCLUDED.cnpj_cpf, updated_at = EXCLUDED.updated_at
		RETURNING (xmax = 0)
	`, uuid.New().String(), d.Name, d.Plate, d.CnpjCpf, d.Status, now)
	if err != nil {
		return false, fmt.Errorf("failed to upsert driver %q: %w", d.Name, err)
	}
	return inserted, nil
}
