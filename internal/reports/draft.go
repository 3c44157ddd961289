package reports

import (
	"time"

	"logmed-backend/internal/models"
)

// Kind identifies which report a draft came from
type Kind string

const (
	KindMain   Kind = "Principal"
	KindDriver Kind = "Motorista"
)

// State tracks a draft through review
type State string

const (
	// StateUnmatched drafts come from a single report.
	StateUnmatched State = "unmatched"
	// StateMerged drafts combine a main report entry with a driver report.
	StateMerged State = "merged"
)

// Draft is a candidate freight extracted from uploaded reports. Drafts live
// only in memory until an operator reviews and submits them.
type Draft struct {
	ID               string      `json:"id"`
	Kind             Kind        `json:"type"`
	State            State       `json:"state"`
	Manifesto        string      `json:"manifesto"`
	FreightDate      models.Date `json:"freight_date"`
	DriverID         string      `json:"driver_id"`
	DriverName       string      `json:"driver_name"`
	Origin           string      `json:"origin"`
	Destination      string      `json:"destination"`
	VisitedCities    []string    `json:"visited_cities"`
	TotalPontos      int         `json:"total_pontos"`
	AdditionalCities []string    `json:"additional_cities"`
	RouteID          string      `json:"route_id"`
	HasDriverData    bool        `json:"has_driver_data"`
	FileName         string      `json:"file_name,omitempty"`
	ImportedAt       time.Time   `json:"imported_at"`
}

// overlayDriverData copies the route-side fields of a driver report draft.
func (d *Draft) overlayDriverData(src Draft) {
	d.Origin = src.Origin
	d.Destination = src.Destination
	d.VisitedCities = src.VisitedCities
	d.TotalPontos = src.TotalPontos
	d.AdditionalCities = src.AdditionalCities
	d.RouteID = src.RouteID
	d.FileName = src.FileName
	d.HasDriverData = true
	d.State = StateMerged
}
