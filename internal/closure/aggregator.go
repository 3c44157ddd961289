// Package closure settles a driver's freights over a date period.
package closure

import (
	"errors"

	"logmed-backend/internal/models"

	"github.com/shopspring/decimal"
)

var ErrInvalidPeriod = errors.New("period end must not be before period start")

// Period is an inclusive range of calendar days
type Period struct {
	Start models.Date
	End   models.Date
}

func (p Period) Validate() error {
	if p.Start.IsZero() || p.End.IsZero() {
		return errors.New("period start and end are required")
	}
	if p.End.Before(p.Start) {
		return ErrInvalidPeriod
	}
	return nil
}

// Contains reports whether d falls within the period, both ends included.
func (p Period) Contains(d models.Date) bool {
	return !d.Before(p.Start) && !d.After(p.End)
}

// Summary is the aggregate of a driver's freights in a period.
// TotalValue is the amount payable; KmValue and PointsValue are informational
// only since each freight value already includes its km and point terms.
type Summary struct {
	FreightCount      int     `json:"freight_count"`
	TotalKm           float64 `json:"total_km"`
	TotalPoints       int     `json:"total_points"`
	TotalFreightValue float64 `json:"total_freight_value"`
	KmValue           float64 `json:"km_value"`
	PointsValue       float64 `json:"points_value"`
	TotalValue        float64 `json:"total_value"`
}

// Aggregate sums the stored values of freights. Callers pass the freights
// already filtered to the driver and period; see Filter.
func Aggregate(driver models.Driver, freights []models.Freight) Summary {
	km := decimal.Zero
	values := decimal.Zero
	points := 0
	for _, f := range freights {
		km = km.Add(decimal.NewFromFloat(f.KmDriven()))
		points += f.TotalPontos
		values = values.Add(decimal.NewFromFloat(f.Value))
	}

	total := values.Round(2).InexactFloat64()
	return Summary{
		FreightCount:      len(freights),
		TotalKm:           km.InexactFloat64(),
		TotalPoints:       points,
		TotalFreightValue: total,
		KmValue:           km.Mul(decimal.NewFromFloat(driver.ValorKm)).Round(2).InexactFloat64(),
		PointsValue:       decimal.NewFromInt(int64(points)).Mul(decimal.NewFromFloat(driver.ValorPonto)).Round(2).InexactFloat64(),
		TotalValue:        total,
	}
}

// Filter keeps the freights of driverID whose date falls in the period.
func Filter(freights []models.Freight, driverID string, p Period) []models.Freight {
	var out []models.Freight
	for _, f := range freights {
		if f.DriverID == driverID && p.Contains(f.FreightDate) {
			out = append(out, f)
		}
	}
	return out
}

// Overview is the header of the closures screen
type Overview struct {
	TotalOpen      float64     `json:"total_open"`
	TotalPaid      float64     `json:"total_paid"`
	PendingDrivers int         `json:"pending_drivers"`
	LastPeriodEnd  models.Date `json:"last_period_end"`
}

// Summarize totals open and paid closures and counts drivers with an open one.
func Summarize(closures []models.Closure) Overview {
	open, paid := decimal.Zero, decimal.Zero
	pending := map[string]bool{}
	var last models.Date

	for _, c := range closures {
		v := decimal.NewFromFloat(c.TotalValue)
		switch c.Status {
		case models.ClosureStatusOpen:
			open = open.Add(v)
			pending[c.DriverID] = true
		case models.ClosureStatusClosed:
			paid = paid.Add(v)
		}
		if c.PeriodEnd.After(last) {
			last = c.PeriodEnd
		}
	}

	return Overview{
		TotalOpen:      open.Round(2).InexactFloat64(),
		TotalPaid:      paid.Round(2).InexactFloat64(),
		PendingDrivers: len(pending),
		LastPeriodEnd:  last,
	}
}
