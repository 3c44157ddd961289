package legacy

import (
	"fmt"
	"strconv"
	"strings"

	"logmed-backend/internal/models"

	"github.com/xuri/excelize/v2"
)

// ReadRoutes reads one route per row. Rows without a code or without any
// city are skipped. Origin is the first city and destination the last.
func ReadRoutes(f *excelize.File, l RouteSheet) ([]models.Route, error) {
	rows, err := f.GetRows(l.Sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", l.Sheet, err)
	}

	var routes []models.Route
	for i, row := range rows {
		if i < l.HeaderRows {
			continue
		}
		code := strings.TrimSuffix(cell(row, l.CodeColumn), ".0")
		if code == "" || strings.EqualFold(code, "nan") {
			continue
		}

		var cities models.RouteCities
		for col := l.FirstCityColumn; col <= l.LastCityColumn; col++ {
			if name := strings.ToUpper(cell(row, col)); name != "" {
				cities = append(cities, models.RouteCity{Name: name})
			}
		}
		if len(cities) == 0 {
			continue
		}

		route := models.Route{
			ID:     code,
			Origin: cities[0].Name,
			Value:  models.ParseAmount(cell(row, l.ValueColumn)),
			Cities: cities,
			Status: models.RouteStatusActive,
		}
		route.DeriveDestination()
		routes = append(routes, route)
	}
	return routes, nil
}

// ReadCities reads the surcharge table. Rows whose value is not a number are
// skipped and repeated names keep the last value.
func ReadCities(f *excelize.File, l CitySheet) ([]models.City, error) {
	records, err := headedRows(f, l.Sheet)
	if err != nil {
		return nil, err
	}

	index := map[string]int{}
	var cities []models.City
	for _, rec := range records {
		name := strings.TrimSpace(rec[l.NameColumn])
		raw := strings.Replace(strings.TrimSpace(rec[l.ValueColumn]), ",", ".", 1)
		if name == "" || raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}

		city := models.City{
			Name:   name,
			State:  l.State,
			Region: l.Region,
			Type:   models.CityTypeFixed,
			Value:  value,
		}
		if i, ok := index[name]; ok {
			cities[i] = city
			continue
		}
		index[name] = len(cities)
		cities = append(cities, city)
	}
	return cities, nil
}

// ReadDrivers reads the driver registry. Names and plates are upper-cased and
// the document number keeps digits only.
func ReadDrivers(f *excelize.File, l DriverSheet) ([]models.Driver, error) {
	records, err := headedRows(f, l.Sheet)
	if err != nil {
		return nil, err
	}

	var drivers []models.Driver
	for _, rec := range records {
		name := strings.ToUpper(strings.TrimSpace(rec[l.NameColumn]))
		if name == "" {
			continue
		}
		drivers = append(drivers, models.Driver{
			Name:    name,
			CnpjCpf: CleanDocument(rec[l.DocumentColumn]),
			Plate:   strings.ToUpper(strings.TrimSpace(rec[l.PlateColumn])),
			Status:  models.DriverStatusActive,
		})
	}
	return drivers, nil
}

// CleanDocument strips CNPJ/CPF punctuation.
func CleanDocument(s string) string {
	return strings.TrimSpace(strings.NewReplacer(".", "", "-", "", "/", "").Replace(s))
}

func headedRows(f *excelize.File, sheet string) ([]map[string]string, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := rows[0]
	var out []map[string]string
	for _, row := range rows[1:] {
		rec := map[string]string{}
		for i, v := range row {
			if i < len(headers) {
				rec[strings.TrimSpace(headers[i])] = v
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

func cell(row []string, column int) string {
	if column < 1 || column > len(row) {
		return ""
	}
	return strings.TrimSpace(row[column-1])
}
