package database

import (
	"fmt"
	"strings"
	"time"

	"logmed-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const freightDetailSelect = `
	SELECT f.id, f.driver_id, f.route_id, f.manifesto, f.origin, f.destination,
	       f.km_inicial, f.km_final, f.horario_saida, f.horario_chegada, f.total_pontos,
	       f.tolls, f.additional_cities, f.value, f.status, f.freight_date,
	       f.created_at, f.updated_at,
	       COALESCE(d.name, '') AS driver_name
	FROM freights f
	LEFT JOIN drivers d ON d.id = f.driver_id`

// freightListQuery builds the listing query for a filter. Date bounds are
// inclusive; results are newest first.
func freightListQuery(filter models.FreightFilter) (string, []interface{}) {
	var (
		where []string
		args  []interface{}
	)
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if filter.DriverID != "" {
		add("f.driver_id = $%d", filter.DriverID)
	}
	if filter.Status != "" {
		add("f.status = $%d", filter.Status)
	}
	if !filter.From.IsZero() {
		add("f.freight_date >= $%d", filter.From)
	}
	if !filter.To.IsZero() {
		add("f.freight_date <= $%d", filter.To)
	}

	query := freightDetailSelect
	if len(where) > 0 {
		query += "\n\tWHERE " + strings.Join(where, " AND ")
	}
	query += "\n\tORDER BY f.freight_date DESC NULLS LAST, f.created_at DESC"
	return query, args
}

func ListFreights(db *sqlx.DB, filter models.FreightFilter) ([]models.FreightDetail, error) {
	freights := []models.FreightDetail{}
	query, args := freightListQuery(filter)
	if err := db.Select(&freights, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list freights: %w", err)
	}
	return freights, nil
}

func GetFreight(db *sqlx.DB, id string) (*models.FreightDetail, error) {
	var f models.FreightDetail
	if err := db.Get(&f, freightDetailSelect+` WHERE f.id = $1`, id); err != nil {
		return nil, notFound(err, "freight")
	}
	return &f, nil
}

// CreateFreight stores a freight whose value has already been computed.
func CreateFreight(db *sqlx.DB, f *models.Freight) error {
	now := time.Now().Unix()
	f.ID = uuid.New().String()
	f.CreatedAt, f.UpdatedAt = now, now
	if f.Status == "" {
		f.Status = models.FreightStatusPending
	}
	if f.AdditionalCities == nil {
		f.AdditionalCities = models.CityCharges{}
	}

	_, err := db.NamedExec(`
		INSERT INTO freights (id, driver_id, route_id, manifesto, origin, destination,
		                      km_inicial, km_final, horario_saida, horario_chegada, total_pontos,
		                      tolls, additional_cities, value, status, freight_date,
		                      created_at, updated_at)
		VALUES (:id, :driver_id, :route_id, :manifesto, :origin, :destination,
		        :km_inicial, :km_final, :horario_saida, :horario_chegada, :total_pontos,
		        :tolls, :additional_cities, :value, :status, :freight_date,
		        :created_at, :updated_at)
	`, f)
	if err != nil {
		return writeErr(err, "create freight")
	}
	return nil
}

func UpdateFreight(db *sqlx.DB, f *models.Freight) error {
	f.UpdatedAt = time.Now().Unix()
	if f.AdditionalCities == nil {
		f.AdditionalCities = models.CityCharges{}
	}

	res, err := db.NamedExec(`
		UPDATE freights
		SET driver_id = :driver_id, route_id = :route_id, manifesto = :manifesto,
		    origin = :origin, destination = :destination, km_inicial = :km_inicial,
		    km_final = :km_final, horario_saida = :horario_saida,
		    horario_chegada = :horario_chegada, total_pontos = :total_pontos, tolls = :tolls,
		    additional_cities = :additional_cities, value = :value, status = :status,
		    freight_date = :freight_date, updated_at = :updated_at
		WHERE id = :id
	`, f)
	if err != nil {
		return writeErr(err, "update freight")
	}
	return affected(res, "update freight")
}

func UpdateFreightStatus(db *sqlx.DB, id string, status models.FreightStatus) error {
	res, err := db.Exec(`UPDATE freights SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("failed to update freight status: %w", err)
	}
	return affected(res, "update freight status")
}

func DeleteFreight(db *sqlx.DB, id string) error {
	res, err := db.Exec(`DELETE FROM freights WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete freight: %w", err)
	}
	return affected(res, "delete freight")
}
