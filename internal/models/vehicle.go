package models

type VehicleStatus string

const (
	VehicleStatusActive      VehicleStatus = "active"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
	VehicleStatusAttention   VehicleStatus = "attention"
)

// Vehicle is a fleet asset
type Vehicle struct {
	ID              string        `json:"id" db:"id"`
	Plate           string        `json:"plate" db:"plate"`
	Model           string        `json:"model" db:"model"`
	Brand           string        `json:"brand" db:"brand"`
	Type            string        `json:"type" db:"type"`
	Year            *int          `json:"year,omitempty" db:"year"`
	Status          VehicleStatus `json:"status" db:"status"`
	ImageURL        *string       `json:"image_url,omitempty" db:"image_url"`
	AvgConsumption  float64       `json:"avg_consumption" db:"avg_consumption"`
	CostPerKm       float64       `json:"cost_per_km" db:"cost_per_km"`
	CurrentKm       float64       `json:"current_km" db:"current_km"`
	MaintenanceNote *string       `json:"maintenance_note,omitempty" db:"maintenance_note"`
	DriverID        *string       `json:"driver_id,omitempty" db:"driver_id"`
	CreatedAt       int64         `json:"created_at" db:"created_at"`
	UpdatedAt       int64         `json:"updated_at" db:"updated_at"`
}

type VehicleRequest struct {
	Plate           string        `json:"plate"`
	Model           string        `json:"model"`
	Brand           string        `json:"brand"`
	Type            string        `json:"type"`
	Year            *int          `json:"year,omitempty"`
	Status          VehicleStatus `json:"status"`
	ImageURL        *string       `json:"image_url,omitempty"`
	AvgConsumption  Amount        `json:"avg_consumption"`
	CostPerKm       Amount        `json:"cost_per_km"`
	CurrentKm       Amount        `json:"current_km"`
	MaintenanceNote *string       `json:"maintenance_note,omitempty"`
	DriverID        *string       `json:"driver_id,omitempty"`
}
