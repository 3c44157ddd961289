package reports

import (
	"time"

	"logmed-backend/internal/matching"
	"logmed-backend/internal/models"
)

// FreightForm is a draft turned into freight form values for review.
// Odometer readings, times and tolls are left for the operator.
type FreightForm struct {
	DraftID          string               `json:"draft_id"`
	DriverID         string               `json:"driver_id"`
	RouteID          string               `json:"route_id"`
	Manifesto        string               `json:"manifesto"`
	Origin           string               `json:"origin"`
	Destination      string               `json:"destination"`
	FreightDate      models.Date          `json:"freight_date"`
	TotalPontos      int                  `json:"total_pontos"`
	VisitedCities    []string             `json:"visited_cities"`
	AdditionalCities []models.CityCharge  `json:"additional_cities"`
	Status           models.FreightStatus `json:"status"`
}

// Prefill resolves a draft against the current route and city catalogs.
// The route is the draft's own when it still exists, otherwise the one
// whose endpoints equal the draft's. Visited cities found in the catalog
// become additional cities unless the route already covers them or they are
// the trip's endpoints; their values are snapshotted from the catalog.
func Prefill(d Draft, routes []models.Route, cities []models.City, m matching.Matcher) FreightForm {
	form := FreightForm{
		DraftID:          d.ID,
		DriverID:         d.DriverID,
		Manifesto:        d.Manifesto,
		Origin:           d.Origin,
		Destination:      d.Destination,
		FreightDate:      d.FreightDate,
		TotalPontos:      d.TotalPontos,
		VisitedCities:    d.VisitedCities,
		AdditionalCities: []models.CityCharge{},
		Status:           models.FreightStatusPending,
	}
	if n := len(d.VisitedCities); n > 0 {
		if form.Origin == "" {
			form.Origin = d.VisitedCities[0]
		}
		if form.Destination == "" {
			form.Destination = d.VisitedCities[n-1]
		}
	}
	if form.FreightDate.IsZero() {
		form.FreightDate = models.NewDate(time.Now())
	}

	route := findRoute(routes, d.RouteID)
	if route == nil {
		route = FindRouteByEndpoints(routes, form.Origin, form.Destination)
	}

	excluded := map[string]bool{}
	exclude := func(name string) {
		if n := matching.NormalizeCityName(name); n != "" {
			excluded[n] = true
		}
	}
	exclude(form.Origin)
	exclude(form.Destination)
	if route != nil {
		form.RouteID = route.ID
		exclude(route.Origin)
		exclude(route.Destination)
		for _, c := range route.Cities {
			exclude(c.Name)
		}
	}

	selected := map[string]bool{}
	for _, visited := range d.VisitedCities {
		city := resolveCity(cities, visited, m)
		if city == nil || selected[city.ID] || excluded[matching.NormalizeCityName(city.Name)] {
			continue
		}
		selected[city.ID] = true
	}
	for _, c := range cities {
		if selected[c.ID] {
			form.AdditionalCities = append(form.AdditionalCities, models.ChargeFor(c))
		}
	}
	return form
}

// resolveCity prefers an exact catalog match and falls back to the fuzzy matcher.
func resolveCity(cities []models.City, name string, m matching.Matcher) *models.City {
	for i := range cities {
		if matching.SameCity(cities[i].Name, name) {
			return &cities[i]
		}
	}
	if m == nil {
		return nil
	}
	for i := range cities {
		if m.Match(cities[i].Name, name) {
			return &cities[i]
		}
	}
	return nil
}

func findRoute(routes []models.Route, id string) *models.Route {
	if id == "" {
		return nil
	}
	for i := range routes {
		if routes[i].ID == id {
			return &routes[i]
		}
	}
	return nil
}
