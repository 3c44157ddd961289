package legacy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func legacyWorkbook(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })

	sheets := map[string][][]interface{}{
		"CIDADES DA ROTA": {
			{"", "", "", "PLANILHA DE ROTAS"},
			{"", "ROTA", "VALOR FIXO", "CIDADE 1", "CIDADE 2", "CIDADE 3"},
			{"", 101.0, 180, "Ribeirão Preto", " cravinhos ", "Serrana"},
			{"", "", 90, "Batatais"},
			{"", "102", 95.5},
			{"", "103", "", "Jardinópolis"},
		},
		"ACRÉSCIMOS": {
			{"CIDADES", "VALOR ADICIONAL R$"},
			{"Cravinhos", 15},
			{"Serrana", "20,5"},
			{"Brodowski", "consultar"},
			{"Cravinhos", 18},
		},
		"CADASTRO": {
			{"NOME", "CNPJ", "PLACA"},
			{" joão silva ", "12.345.678/0001-99", "abc1d23"},
			{"", "00.000.000/0000-00", "XYZ"},
		},
	}

	for name, rows := range sheets {
		if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("NewSheet: %v", err)
		}
		for i, row := range rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				t.Fatalf("SetSheetRow: %v", err)
			}
		}
	}
	return f
}

func TestReadRoutes(t *testing.T) {
	routes, err := ReadRoutes(legacyWorkbook(t), DefaultLayout().Routes)
	if err != nil {
		t.Fatalf("ReadRoutes failed: %v", err)
	}
	if len(routes) != 2 {
		t.Fatalf("expected 2 routes, got %d: %+v", len(routes), routes)
	}

	r := routes[0]
	if r.ID != "101" {
		t.Errorf("expected float code trimmed to 101, got %q", r.ID)
	}
	if r.Origin != "RIBEIRÃO PRETO" || r.Destination != "SERRANA" || r.Value != 180 {
		t.Errorf("unexpected route %+v", r)
	}
	if len(r.Cities) != 3 || r.Cities[1].Name != "CRAVINHOS" {
		t.Errorf("unexpected cities %+v", r.Cities)
	}
	if routes[1].ID != "103" || routes[1].Value != 0 || routes[1].Destination != "JARDINÓPOLIS" {
		t.Errorf("unexpected single-city route %+v", routes[1])
	}
}

func TestReadCities(t *testing.T) {
	cities, err := ReadCities(legacyWorkbook(t), DefaultLayout().Cities)
	if err != nil {
		t.Fatalf("ReadCities failed: %v", err)
	}
	if len(cities) != 2 {
		t.Fatalf("expected 2 cities, got %+v", cities)
	}
	if cities[0].Name != "Cravinhos" || cities[0].Value != 18 {
		t.Errorf("expected repeated name to keep last value, got %+v", cities[0])
	}
	if cities[1].Value != 20.5 || cities[1].State != "SP" || cities[1].Type != "fixed" {
		t.Errorf("unexpected city %+v", cities[1])
	}
}

func TestReadDrivers(t *testing.T) {
	drivers, err := ReadDrivers(legacyWorkbook(t), DefaultLayout().Drivers)
	if err != nil {
		t.Fatalf("ReadDrivers failed: %v", err)
	}
	if len(drivers) != 1 {
		t.Fatalf("expected 1 driver, got %+v", drivers)
	}
	d := drivers[0]
	if d.Name != "JOÃO SILVA" || d.CnpjCpf != "12345678000199" || d.Plate != "ABC1D23" {
		t.Errorf("unexpected driver %+v", d)
	}
}

func TestLoadLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	content := "routes:\n  sheet: ROTAS\n  last_city_column: 8\ncities:\n  state: MG\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write layout: %v", err)
	}

	l, err := LoadLayout(path)
	if err != nil {
		t.Fatalf("LoadLayout failed: %v", err)
	}
	if l.Routes.Sheet != "ROTAS" || l.Routes.LastCityColumn != 8 || l.Routes.CodeColumn != 2 {
		t.Errorf("expected overrides on top of defaults, got %+v", l.Routes)
	}
	if l.Cities.State != "MG" || l.Cities.Sheet != "ACRÉSCIMOS" {
		t.Errorf("unexpected cities layout %+v", l.Cities)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(bad, []byte("routes:\n  first_city_column: 9\n  last_city_column: 3\n"), 0o644)
	if _, err := LoadLayout(bad); err == nil {
		t.Error("expected validation error")
	}
}
