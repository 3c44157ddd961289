package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

const RouteStatusActive = "Ativo"

// RouteCity is one stop of a route's ordered city list
type RouteCity struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// RouteCities is stored as a JSONB array, in visiting order.
type RouteCities []RouteCity

func (c RouteCities) Value() (driver.Value, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c)
}

func (c *RouteCities) Scan(src interface{}) error {
	return scanJSON(src, c)
}

// Route is a predefined itinerary identified by a user-chosen code (e.g. "R-101")
type Route struct {
	ID          string      `json:"id" db:"id"`
	Origin      string      `json:"origin" db:"origin"`
	Destination string      `json:"destination" db:"destination"`
	Value       float64     `json:"value" db:"value"`
	Cities      RouteCities `json:"cities" db:"cities"`
	Status      string      `json:"status" db:"status"`
	CreatedAt   int64       `json:"created_at" db:"created_at"`
	UpdatedAt   int64       `json:"updated_at" db:"updated_at"`
}

// DeriveDestination sets the destination to the last listed city, or clears
// it when the list is empty.
func (r *Route) DeriveDestination() {
	r.Destination = ""
	if n := len(r.Cities); n > 0 {
		r.Destination = r.Cities[n-1].Name
	}
}

// CityNames returns the lower-cased, trimmed names of every city the route
// covers: origin, destination and the listed stops.
func (r *Route) CityNames() map[string]bool {
	names := map[string]bool{}
	add := func(s string) {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			names[s] = true
		}
	}
	add(r.Origin)
	add(r.Destination)
	for _, c := range r.Cities {
		add(c.Name)
	}
	return names
}

// RouteRequest is the request body for POST /api/routes and PATCH /api/routes/:id
type RouteRequest struct {
	ID     string      `json:"id"`
	Origin string      `json:"origin"`
	Value  Amount      `json:"value"`
	Cities RouteCities `json:"cities"`
	Status string      `json:"status"`
}
