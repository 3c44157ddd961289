// Package legacy reads the reference data kept in the spreadsheets used before
// the back-office existed: the route table, the city surcharge table and the
// driver registry.
package legacy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Layout describes where the data lives in the legacy workbooks
type Layout struct {
	Routes  RouteSheet  `yaml:"routes"`
	Cities  CitySheet   `yaml:"cities"`
	Drivers DriverSheet `yaml:"drivers"`
}

// RouteSheet columns are 1-based positions; the sheet has no usable header.
type RouteSheet struct {
	Sheet           string `yaml:"sheet"`
	HeaderRows      int    `yaml:"header_rows"`
	CodeColumn      int    `yaml:"code_column"`
	ValueColumn     int    `yaml:"value_column"`
	FirstCityColumn int    `yaml:"first_city_column"`
	LastCityColumn  int    `yaml:"last_city_column"`
}

// CitySheet columns are header names.
type CitySheet struct {
	Sheet       string `yaml:"sheet"`
	NameColumn  string `yaml:"name_column"`
	ValueColumn string `yaml:"value_column"`
	State       string `yaml:"state"`
	Region      string `yaml:"region"`
}

type DriverSheet struct {
	Sheet          string `yaml:"sheet"`
	NameColumn     string `yaml:"name_column"`
	DocumentColumn string `yaml:"document_column"`
	PlateColumn    string `yaml:"plate_column"`
}

// DefaultLayout matches the workbooks the operation used up to now.
func DefaultLayout() Layout {
	return Layout{
		Routes: RouteSheet{
			Sheet:           "CIDADES DA ROTA",
			HeaderRows:      2,
			CodeColumn:      2,
			ValueColumn:     3,
			FirstCityColumn: 4,
			LastCityColumn:  11,
		},
		Cities: CitySheet{
			Sheet:       "ACRÉSCIMOS",
			NameColumn:  "CIDADES",
			ValueColumn: "VALOR ADICIONAL R$",
			State:       "SP",
			Region:      "Geral",
		},
		Drivers: DriverSheet{
			Sheet:          "CADASTRO",
			NameColumn:     "NOME",
			DocumentColumn: "CNPJ",
			PlateColumn:    "PLACA",
		},
	}
}

// LoadLayout reads a YAML layout file on top of the defaults. An empty path
// returns the defaults.
func LoadLayout(path string) (Layout, error) {
	layout := DefaultLayout()
	if path == "" {
		return layout, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return layout, fmt.Errorf("failed to read layout file: %w", err)
	}
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return layout, fmt.Errorf("failed to parse layout file: %w", err)
	}
	if err := layout.validate(); err != nil {
		return layout, err
	}
	return layout, nil
}

func (l Layout) validate() error {
	r := l.Routes
	if r.CodeColumn < 1 || r.ValueColumn < 1 || r.FirstCityColumn < 1 {
		return fmt.Errorf("route columns must be 1-based positions")
	}
	if r.LastCityColumn < r.FirstCityColumn {
		return fmt.Errorf("last_city_column must not be before first_city_column")
	}
	return nil
}
