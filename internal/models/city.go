package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// CityType is how a city surcharge is priced
type CityType string

const (
	CityTypeFixed CityType = "fixed"
	CityTypePerKm CityType = "per_km"
)

func (t CityType) Valid() bool {
	return t == CityTypeFixed || t == CityTypePerKm
}

// City is an entry of the city-surcharge catalog
type City struct {
	ID        string   `json:"id" db:"id"`
	Name      string   `json:"name" db:"name"`
	State     string   `json:"state" db:"state"`
	Region    string   `json:"region" db:"region"`
	Type      CityType `json:"type" db:"type"`
	Value     float64  `json:"value" db:"value"`
	CreatedAt int64    `json:"created_at" db:"created_at"`
	UpdatedAt int64    `json:"updated_at" db:"updated_at"`
}

// CityRequest is the request body for POST /api/cities and PATCH /api/cities/:id
type CityRequest struct {
	Name   string   `json:"name"`
	State  string   `json:"state"`
	Region string   `json:"region"`
	Type   CityType `json:"type"`
	Value  Amount   `json:"value"`
}

// CityCharge is a snapshot of a catalog city attached to a freight.
// The value is copied at selection time and never follows later catalog edits.
type CityCharge struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ChargeFor snapshots a catalog city.
func ChargeFor(c City) CityCharge {
	return CityCharge{ID: c.ID, Name: c.Name, Value: c.Value}
}

// CityCharges is stored as a JSONB array.
type CityCharges []CityCharge

func (c CityCharges) Value() (driver.Value, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c)
}

func (c *CityCharges) Scan(src interface{}) error {
	return scanJSON(src, c)
}

// Total sums the snapshot values.
func (c CityCharges) Total() float64 {
	var sum float64
	for _, city := range c {
		sum += city.Value
	}
	return sum
}

func scanJSON(src interface{}, dest interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	}
	return fmt.Errorf("cannot scan %T into %T", src, dest)
}
