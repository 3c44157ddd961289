package reports

import (
	"bytes"
	"testing"
	"time"

	"logmed-backend/internal/matching"
	"logmed-backend/internal/models"

	"github.com/xuri/excelize/v2"
)

var testDrivers = []models.Driver{
	{ID: "d-joao", Name: "João Silva"},
	{ID: "d-maria", Name: "Maria das Graças"},
}

var testRoutes = []models.Route{
	{
		ID:          "R-101",
		Origin:      "Ribeirão Preto",
		Destination: "Sertãozinho",
		Value:       20,
		Cities:      models.RouteCities{{Name: "Cravinhos"}, {Name: "Sertãozinho"}},
	},
}

func workbook(t *testing.T, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf
}

func TestParseReportDate(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"45352", "2024-03-01", true},
		{"45352.75", "2024-03-01", true},
		{"1/3/2024", "2024-03-01", true},
		{"15/12/2023", "2023-12-15", true},
		{"2024-03-01", "2024-03-01", true},
		{"31/02/2024", "", false},
		{"NaN", "", false},
		{"Inf", "", false},
		{"-Inf", "", false},
		{"1e300", "", false},
		{"-5", "", false},
		{"2958465", "9999-12-31", true},
		{"2958466", "", false},
		{"sem data", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseReportDate(tt.raw)
		if ok != tt.ok {
			t.Errorf("ParseReportDate(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			continue
		}
		if ok && got.String() != tt.want {
			t.Errorf("ParseReportDate(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestReadRowsFromWorkbook(t *testing.T) {
	buf := workbook(t,
		[]interface{}{"Número", "Motorista", "Data"},
		[]interface{}{"M-001", "João Silva", 45352},
		[]interface{}{"", "", ""},
		[]interface{}{"M-002", "Maria", "02/03/2024"},
	)

	rows, err := ReadRows(buf)
	if err != nil {
		t.Fatalf("ReadRows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 data rows, got %d", len(rows))
	}
	if rows[0][ColManifest] != "M-001" || rows[0][ColDate] != "45352" {
		t.Errorf("unexpected first row: %v", rows[0])
	}
}

func TestReadRowsRejectsGarbage(t *testing.T) {
	if _, err := ReadRows(bytes.NewBufferString("not a workbook")); err == nil {
		t.Fatal("expected error for non-xlsx input")
	}
}

func TestExtractMainGroupsByManifest(t *testing.T) {
	rows := []Row{
		{ColManifest: "M-001", ColDriver: "JOAO SILVA", ColDate: "45352"},
		{ColManifest: "M-001", ColDriver: "Outro", ColDate: "45353"},
		{ColManifest: "M-002", ColDriver: "Desconhecido", ColDate: "x"},
		{ColManifest: "", ColDriver: "Maria"},
	}

	drafts := ExtractMain(rows, testDrivers, matching.NewNameMatcher())
	if len(drafts) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(drafts))
	}
	first := drafts[0]
	if first.Kind != KindMain || first.DriverID != "d-joao" || first.DriverName != "JOAO SILVA" {
		t.Errorf("unexpected first draft: %+v", first)
	}
	if first.FreightDate.String() != "2024-03-01" {
		t.Errorf("expected first row to win, got date %s", first.FreightDate)
	}
	if drafts[1].DriverID != "" || !drafts[1].FreightDate.IsZero() {
		t.Errorf("expected unmatched driver and no date, got %+v", drafts[1])
	}
}

func TestExtractDriver(t *testing.T) {
	rows := []Row{
		{ColCity: "Ribeirão Preto", ColAddress: "Rua A, 10", ColName: "Rota João"},
		{ColCity: "Cravinhos", ColAddress: "rua a, 10 "},
		{ColCity: "Serrana", ColAddress: "Rua B, 20"},
		{ColCity: "Cravinhos", ColAddress: "Rua C, 30"},
		{ColCity: "Sertãozinho", ColAddress: ""},
	}

	d, err := ExtractDriver(rows, "joao.xlsx", testDrivers, testRoutes, matching.NewNameMatcher())
	if err != nil {
		t.Fatalf("ExtractDriver failed: %v", err)
	}
	if d.Origin != "Ribeirão Preto" || d.Destination != "Sertãozinho" {
		t.Errorf("unexpected endpoints %q -> %q", d.Origin, d.Destination)
	}
	if d.TotalPontos != 3 {
		t.Errorf("expected 3 distinct addresses, got %d", d.TotalPontos)
	}
	if len(d.VisitedCities) != 4 {
		t.Errorf("expected 4 distinct cities, got %v", d.VisitedCities)
	}
	if d.RouteID != "R-101" {
		t.Errorf("expected route R-101, got %q", d.RouteID)
	}
	if len(d.AdditionalCities) != 1 || d.AdditionalCities[0] != "Serrana" {
		t.Errorf("expected Serrana as the only additional city, got %v", d.AdditionalCities)
	}
	if d.DriverID != "d-joao" {
		t.Errorf("expected driver d-joao, got %q", d.DriverID)
	}
}

func TestExtractDriverFallsBackToFileName(t *testing.T) {
	rows := []Row{{ColCity: "Serrana", ColAddress: "Rua X"}}

	d, err := ExtractDriver(rows, "uploads/Maria Graças.xlsx", testDrivers, nil, matching.NewNameMatcher())
	if err != nil {
		t.Fatalf("ExtractDriver failed: %v", err)
	}
	if d.DriverName != "Maria Graças" {
		t.Errorf("expected name from file, got %q", d.DriverName)
	}
	if d.DriverID != "d-maria" {
		t.Errorf("expected driver d-maria, got %q", d.DriverID)
	}
}

func TestExtractDriverEmpty(t *testing.T) {
	if _, err := ExtractDriver(nil, "vazio.xlsx", nil, nil, matching.NewNameMatcher()); err != ErrEmptySheet {
		t.Fatalf("expected ErrEmptySheet, got %v", err)
	}
}

func TestMergeMainThenDriver(t *testing.T) {
	m := matching.NewNameMatcher()
	main := ExtractMain([]Row{{ColManifest: "M-001", ColDriver: "João Silva", ColDate: "45352"}}, testDrivers, m)

	driverRows := []Row{
		{ColCity: "A", ColAddress: "1", ColDriver: "JOAO SILVA"},
		{ColCity: "B", ColAddress: "2"},
		{ColCity: "C", ColAddress: "3"},
	}
	driverDraft, err := ExtractDriver(driverRows, "joao.xlsx", testDrivers, nil, m)
	if err != nil {
		t.Fatalf("ExtractDriver failed: %v", err)
	}

	list := Merge(nil, main, m)
	list = Merge(list, []Draft{driverDraft}, m)

	if len(list) != 1 {
		t.Fatalf("expected a single merged draft, got %d", len(list))
	}
	got := list[0]
	if got.Manifesto != "M-001" || got.Origin != "A" || got.Destination != "C" || got.TotalPontos != 3 {
		t.Errorf("unexpected merged draft: %+v", got)
	}
	if !got.HasDriverData || got.State != StateMerged || got.Kind != KindMain {
		t.Errorf("expected merged main draft with driver data, got %+v", got)
	}
}

func TestMergeManifestWithRepeatedCities(t *testing.T) {
	m := matching.NewNameMatcher()
	drivers := []models.Driver{{ID: "d-carlos", Name: "Carlos Silva"}}
	main := ExtractMain([]Row{{ColManifest: "M-001", ColDriver: "Carlos Silva"}}, drivers, m)

	driverRows := []Row{
		{ColCity: "Ribeirão Preto", ColAddress: "Av. Brasil, 100", ColDriver: "CARLOS SILVA"},
		{ColCity: "Franca", ColAddress: "Rua Major Claudiano, 5", ColDriver: "CARLOS SILVA"},
		{ColCity: "Franca", ColAddress: "  RUA MAJOR CLAUDIANO, 5", ColDriver: "CARLOS SILVA"},
	}
	driverDraft, err := ExtractDriver(driverRows, "carlos.xlsx", drivers, nil, m)
	if err != nil {
		t.Fatalf("ExtractDriver failed: %v", err)
	}
	if driverDraft.TotalPontos != 2 {
		t.Errorf("expected addresses differing only in case and spacing to count once, got %d", driverDraft.TotalPontos)
	}

	list := Merge(nil, main, m)
	list = Merge(list, []Draft{driverDraft}, m)
	if len(list) != 1 {
		t.Fatalf("expected a single merged draft, got %d", len(list))
	}
	got := list[0]
	if got.Manifesto != "M-001" || got.Origin != "Ribeirão Preto" || got.Destination != "Franca" {
		t.Errorf("unexpected merged draft: %+v", got)
	}
	if len(got.VisitedCities) != 2 || got.VisitedCities[0] != "Ribeirão Preto" || got.VisitedCities[1] != "Franca" {
		t.Errorf("expected cities [Ribeirão Preto Franca], got %v", got.VisitedCities)
	}
	if got.State != StateMerged || !got.HasDriverData {
		t.Errorf("expected merged state with driver data, got %+v", got)
	}
}

func TestMergeDriverThenMain(t *testing.T) {
	m := matching.NewNameMatcher()
	driverDraft := Draft{ID: "drv", Kind: KindDriver, DriverName: "Rota João", Origin: "A", Destination: "C", TotalPontos: 5, FileName: "joao.xlsx"}
	mainDraft := Draft{ID: "main", Kind: KindMain, DriverName: "João Silva", Manifesto: "M-9", DriverID: "d-joao"}

	list := Merge([]Draft{driverDraft}, []Draft{mainDraft}, m)
	if len(list) != 1 {
		t.Fatalf("expected 1 draft, got %d", len(list))
	}
	got := list[0]
	if got.ID != "drv" || got.Kind != KindMain || got.Manifesto != "M-9" || got.DriverID != "d-joao" {
		t.Errorf("expected main fields on the existing entry, got %+v", got)
	}
	if got.TotalPontos != 5 || got.FileName != "joao.xlsx" || !got.HasDriverData {
		t.Errorf("expected driver fields kept, got %+v", got)
	}
}

func TestMergeSkipsDuplicateManifest(t *testing.T) {
	m := matching.NewNameMatcher()
	existing := []Draft{{ID: "1", Kind: KindMain, Manifesto: "M-1", DriverName: "Carlos"}}
	incoming := []Draft{
		{ID: "2", Kind: KindMain, Manifesto: "M-1", DriverName: "Carlos"},
		{ID: "3", Kind: KindMain, Manifesto: "M-2", DriverName: "Pedro"},
	}

	list := Merge(existing, incoming, m)
	if len(list) != 2 || list[0].ID != "3" || list[1].ID != "1" {
		t.Fatalf("expected new draft prepended and duplicate dropped, got %+v", list)
	}
	if len(existing) != 1 {
		t.Fatal("input list must not be modified")
	}
}

func TestMergeUnmatchedDriverIsStandalone(t *testing.T) {
	m := matching.NewNameMatcher()
	existing := []Draft{{ID: "1", Kind: KindMain, Manifesto: "M-1", DriverName: "Carlos"}}
	list := Merge(existing, []Draft{{ID: "2", Kind: KindDriver, DriverName: "Ana"}}, m)

	if len(list) != 2 || list[0].ID != "2" || list[0].HasDriverData {
		t.Fatalf("expected unmatched driver draft prepended, got %+v", list)
	}
}

func TestExtractBatchKeepsGoodFiles(t *testing.T) {
	good := workbook(t,
		[]interface{}{"Número", "Motorista", "Data"},
		[]interface{}{"M-1", "João Silva", "01/03/2024"},
	)
	uploads := []Upload{
		{Name: "quebrado.xlsx", Reader: bytes.NewBufferString("garbage")},
		{Name: "principal.xlsx", Reader: good},
	}

	drafts, results := ExtractBatch(KindMain, uploads, Catalog{Drivers: testDrivers}, matching.NewNameMatcher())
	if len(drafts) != 1 {
		t.Fatalf("expected 1 draft from the good file, got %d", len(drafts))
	}
	if len(results) != 2 || results[0].Error == "" || results[1].Drafts != 1 {
		t.Errorf("unexpected results: %+v", results)
	}
}

func TestStore(t *testing.T) {
	s := NewStore(matching.NewNameMatcher())
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.Apply("op-1", []Draft{{ID: "a", Kind: KindMain, Manifesto: "M-1", DriverName: "Carlos"}})
	s.Apply("op-2", []Draft{{ID: "b", Kind: KindMain, Manifesto: "M-2", DriverName: "Pedro"}})

	if got := s.List("op-1"); len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("lists must be per owner, got %+v", got)
	}
	if _, err := s.Get("op-1", "b"); err != ErrDraftNotFound {
		t.Errorf("expected ErrDraftNotFound across owners, got %v", err)
	}
	if err := s.Remove("op-1", "a"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := s.Remove("op-1", "a"); err != ErrDraftNotFound {
		t.Errorf("expected second remove to fail, got %v", err)
	}

	now = now.Add(13 * time.Hour)
	s.Apply("op-1", []Draft{{ID: "c", Kind: KindMain, Manifesto: "M-3", DriverName: "Carlos"}})

	if dropped := s.PurgeIdle(12 * time.Hour); dropped != 1 {
		t.Errorf("expected 1 idle draft dropped, got %d", dropped)
	}
	if len(s.List("op-2")) != 0 || len(s.List("op-1")) != 1 {
		t.Error("expected only the idle list to be purged")
	}
}

func TestPrefill(t *testing.T) {
	cities := []models.City{
		{ID: "c1", Name: "Cravinhos", Value: 12},
		{ID: "c2", Name: "Serrana/SP", Value: 15},
		{ID: "c3", Name: "Jardinópolis", Value: 18},
		{ID: "c4", Name: "Sertãozinho", Value: 9},
	}
	d := Draft{
		ID:            "draft-1",
		DriverID:      "d-joao",
		Manifesto:     "M-001",
		FreightDate:   models.NewDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
		Origin:        "Ribeirão Preto",
		Destination:   "Sertãozinho",
		VisitedCities: []string{"Ribeirão Preto", "Cravinhos", "SERRANA", "Jardinopolis", "Sertãozinho"},
		TotalPontos:   4,
	}

	form := Prefill(d, testRoutes, cities, matching.NewCityMatcher())

	if form.RouteID != "R-101" {
		t.Errorf("expected route matched by endpoints, got %q", form.RouteID)
	}
	if len(form.AdditionalCities) != 2 {
		t.Fatalf("expected 2 additional cities, got %+v", form.AdditionalCities)
	}
	if form.AdditionalCities[0].ID != "c2" || form.AdditionalCities[0].Value != 15 {
		t.Errorf("unexpected first city %+v", form.AdditionalCities[0])
	}
	if form.AdditionalCities[1].ID != "c3" {
		t.Errorf("unexpected second city %+v", form.AdditionalCities[1])
	}
	if form.DraftID != "draft-1" || form.TotalPontos != 4 || form.Status != models.FreightStatusPending {
		t.Errorf("unexpected form %+v", form)
	}
}
