// Package pricing computes freight values from route, driver rates, odometer
// readings, delivery points, tolls and additional city surcharges.
package pricing

import (
	"logmed-backend/internal/models"

	"github.com/shopspring/decimal"
)

// Input holds every term of a freight value. Missing terms are zero.
type Input struct {
	RouteValue  float64
	ValorKm     float64
	ValorPonto  float64
	KmInicial   float64
	KmFinal     float64
	TotalPontos int
	Tolls       float64
	CityValues  []float64
}

// Breakdown is the itemized result, each term rounded to cents.
type Breakdown struct {
	RouteValue  float64 `json:"route_value"`
	KmDriven    float64 `json:"km_driven"`
	KmValue     float64 `json:"km_value"`
	PointsValue float64 `json:"points_value"`
	Tolls       float64 `json:"tolls"`
	CitiesValue float64 `json:"cities_value"`
	Total       float64 `json:"total"`
}

// Calculate applies
//
//	route + max(0, km_final-km_inicial)*valor_km + pontos*valor_ponto + tolls + Σcities
//
// Negative terms are treated as zero, so the result is never negative.
func Calculate(in Input) Breakdown {
	route := nonNegative(in.RouteValue)
	kmDriven := nonNegative(in.KmFinal - in.KmInicial)
	kmValue := kmDriven.Mul(nonNegative(in.ValorKm))
	pointsValue := nonNegative(float64(in.TotalPontos)).Mul(nonNegative(in.ValorPonto))
	tolls := nonNegative(in.Tolls)

	cities := decimal.Zero
	for _, v := range in.CityValues {
		cities = cities.Add(nonNegative(v))
	}

	total := route.Add(kmValue).Add(pointsValue).Add(tolls).Add(cities)

	return Breakdown{
		RouteValue:  cents(route),
		KmDriven:    kmDriven.InexactFloat64(),
		KmValue:     cents(kmValue),
		PointsValue: cents(pointsValue),
		Tolls:       cents(tolls),
		CitiesValue: cents(cities),
		Total:       cents(total),
	}
}

// FreightInput is the part of a freight form the calculator reads.
type FreightInput struct {
	KmInicial        float64
	KmFinal          float64
	TotalPontos      int
	Tolls            float64
	AdditionalCities []models.CityCharge
}

// InputFromRequest extracts calculator inputs from a freight request body.
func InputFromRequest(req models.FreightRequest) FreightInput {
	in := FreightInput{
		KmInicial:   req.KmInicial.Float(),
		KmFinal:     req.KmFinal.Float(),
		TotalPontos: req.TotalPontos.Int(),
		Tolls:       req.Tolls.Float(),
	}
	for _, c := range req.AdditionalCities {
		in.AdditionalCities = append(in.AdditionalCities, models.CityCharge{ID: c.ID, Name: c.Name, Value: c.Value.Float()})
	}
	return in
}

// Normalize zeroes negative points, tolls and city values the way Calculate
// does, so a freight stored from the result reproduces its own total.
// Odometer readings are kept; the km difference is clamped by the formula.
func (f FreightInput) Normalize() FreightInput {
	out := f
	if out.TotalPontos < 0 {
		out.TotalPontos = 0
	}
	if out.Tolls < 0 {
		out.Tolls = 0
	}
	out.AdditionalCities = make([]models.CityCharge, 0, len(f.AdditionalCities))
	for _, c := range f.AdditionalCities {
		if c.Value < 0 {
			c.Value = 0
		}
		out.AdditionalCities = append(out.AdditionalCities, c)
	}
	return out
}

// ForFreight resolves rates and route value from the selected records.
// A nil driver contributes no km or point value; a nil route contributes no route value.
func ForFreight(driver *models.Driver, route *models.Route, f FreightInput) Breakdown {
	in := Input{
		KmInicial:   f.KmInicial,
		KmFinal:     f.KmFinal,
		TotalPontos: f.TotalPontos,
		Tolls:       f.Tolls,
	}
	if driver != nil {
		in.ValorKm = driver.ValorKm
		in.ValorPonto = driver.ValorPonto
	}
	if route != nil {
		in.RouteValue = route.Value
	}
	for _, c := range f.AdditionalCities {
		in.CityValues = append(in.CityValues, c.Value)
	}
	return Calculate(in)
}

func nonNegative(v float64) decimal.Decimal {
	d := decimal.NewFromFloat(v)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func cents(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
