package database

import (
	"fmt"
	"time"

	"logmed-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const closureDetailSelect = `
	SELECT c.id, c.driver_id, c.period_start, c.period_end, c.total_value, c.status,
	       c.created_at, c.updated_at, COALESCE(d.name, '') AS driver_name
	FROM closures c
	LEFT JOIN drivers d ON d.id = c.driver_id`

// ListClosures returns closures newest period first, optionally for one driver.
func ListClosures(db *sqlx.DB, driverID string) ([]models.ClosureDetail, error) {
	closures := []models.ClosureDetail{}
	query := closureDetailSelect
	args := []interface{}{}
	if driverID != "" {
		query += ` WHERE c.driver_id = $1`
		args = append(args, driverID)
	}
	query += ` ORDER BY c.period_end DESC, c.created_at DESC`

	if err := db.Select(&closures, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list closures: %w", err)
	}
	return closures, nil
}

func GetClosure(db *sqlx.DB, id string) (*models.ClosureDetail, error) {
	var c models.ClosureDetail
	if err := db.Get(&c, closureDetailSelect+` WHERE c.id = $1`, id); err != nil {
		return nil, notFound(err, "closure")
	}
	return &c, nil
}

// CreateClosure stores a closure with its total already frozen.
func CreateClosure(db *sqlx.DB, c *models.Closure) error {
	now := time.Now().Unix()
	c.ID = uuid.New().String()
	c.CreatedAt, c.UpdatedAt = now, now
	if c.Status == "" {
		c.Status = models.ClosureStatusOpen
	}

	_, err := db.NamedExec(`
		INSERT INTO closures (id, driver_id, period_start, period_end, total_value, status,
		                      created_at, updated_at)
		VALUES (:id, :driver_id, :period_start, :period_end, :total_value, :status,
		        :created_at, :updated_at)
	`, c)
	if err != nil {
		return writeErr(err, "create closure")
	}
	return nil
}

func UpdateClosureStatus(db *sqlx.DB, id string, status models.ClosureStatus) error {
	res, err := db.Exec(`UPDATE closures SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("failed to update closure status: %w", err)
	}
	return affected(res, "update closure status")
}

func DeleteClosure(db *sqlx.DB, id string) error {
	res, err := db.Exec(`DELETE FROM closures WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete closure: %w", err)
	}
	return affected(res, "delete closure")
}
