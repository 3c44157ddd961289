package reports

import (
	"strings"
	"time"

	"logmed-backend/internal/matching"
	"logmed-backend/internal/models"

	"github.com/google/uuid"
)

// FindDriver returns the first driver whose name matches name, or nil.
func FindDriver(m matching.Matcher, drivers []models.Driver, name string) *models.Driver {
	for i := range drivers {
		if m.Match(drivers[i].Name, name) {
			return &drivers[i]
		}
	}
	return nil
}

// FindRouteByEndpoints returns the route whose origin and destination equal
// the given ones, ignoring case and surrounding space.
func FindRouteByEndpoints(routes []models.Route, origin, destination string) *models.Route {
	o, d := lowerTrim(origin), lowerTrim(destination)
	if o == "" || d == "" {
		return nil
	}
	for i := range routes {
		if lowerTrim(routes[i].Origin) == o && lowerTrim(routes[i].Destination) == d {
			return &routes[i]
		}
	}
	return nil
}

// ExtractMain builds one draft per manifest number of the main report. When
// a manifest spans several rows the first one wins.
func ExtractMain(rows []Row, drivers []models.Driver, m matching.Matcher) []Draft {
	now := time.Now()
	seen := map[string]bool{}
	var drafts []Draft

	for _, row := range rows {
		manifesto := row.Get(ColManifest)
		if manifesto == "" || seen[manifesto] {
			continue
		}
		seen[manifesto] = true

		name := row.Get(ColDriver)
		draft := Draft{
			ID:            uuid.New().String(),
			Kind:          KindMain,
			State:         StateUnmatched,
			Manifesto:     manifesto,
			DriverName:    name,
			VisitedCities: []string{},
			ImportedAt:    now,
		}
		if d, ok := ParseReportDate(row.Get(ColDate)); ok {
			draft.FreightDate = d
		}
		if driver := FindDriver(m, drivers, name); driver != nil {
			draft.DriverID = driver.ID
		}
		drafts = append(drafts, draft)
	}
	return drafts
}

// ExtractDriver summarizes a driver's route report: the ordered distinct
// cities, the number of distinct delivery addresses, and the cities outside
// the matched route.
func ExtractDriver(rows []Row, fileName string, drivers []models.Driver, routes []models.Route, m matching.Matcher) (Draft, error) {
	if len(rows) == 0 {
		return Draft{}, ErrEmptySheet
	}

	var cities []string
	seenCity := map[string]bool{}
	addresses := map[string]bool{}
	name := ""

	for _, row := range rows {
		if city := row.Get(ColCity); city != "" && !seenCity[city] {
			seenCity[city] = true
			cities = append(cities, city)
		}
		if addr := lowerTrim(row[ColAddress]); addr != "" {
			addresses[addr] = true
		}
		if name == "" {
			name = row.Get(ColDriver, ColName, ColNameUpper)
		}
	}
	if name == "" {
		name = fileStem(fileName)
	}

	draft := Draft{
		ID:               uuid.New().String(),
		Kind:             KindDriver,
		State:            StateUnmatched,
		DriverName:       name,
		VisitedCities:    cities,
		TotalPontos:      len(addresses),
		AdditionalCities: []string{},
		FileName:         fileName,
		ImportedAt:       time.Now(),
	}
	if draft.VisitedCities == nil {
		draft.VisitedCities = []string{}
	}
	if len(cities) > 0 {
		draft.Origin = cities[0]
		draft.Destination = cities[len(cities)-1]
	}

	excluded := map[string]bool{
		lowerTrim(draft.Origin):      true,
		lowerTrim(draft.Destination): true,
	}
	if route := FindRouteByEndpoints(routes, draft.Origin, draft.Destination); route != nil {
		draft.RouteID = route.ID
		for _, c := range route.Cities {
			excluded[lowerTrim(c.Name)] = true
		}
	}
	for _, city := range cities {
		if !excluded[lowerTrim(city)] {
			draft.AdditionalCities = append(draft.AdditionalCities, city)
		}
	}

	if driver := FindDriver(m, drivers, name); driver != nil {
		draft.DriverID = driver.ID
	}
	return draft, nil
}

func lowerTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
