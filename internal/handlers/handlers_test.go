package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"logmed-backend/internal/database"
	"logmed-backend/internal/models"
)

type publishedEvent struct {
	profileID string
	eventType string
}

type fakePublisher struct {
	events []publishedEvent
}

func (p *fakePublisher) Publish(eventType string, data interface{}) {
	p.events = append(p.events, publishedEvent{eventType: eventType})
}

func (p *fakePublisher) PublishToProfile(profileID, eventType string, data interface{}) {
	p.events = append(p.events, publishedEvent{profileID: profileID, eventType: eventType})
}

func date(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func TestRespondStoreError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			name:   "blocked driver delete",
			err:    &database.DependentFreightsError{Entity: "driver", Name: "João", Count: 3},
			status: http.StatusConflict,
			body:   `existem 3 frete(s) associado(s)`,
		},
		{
			name:   "wrapped blocked route delete",
			err:    fmt.Errorf("delete: %w", &database.DependentFreightsError{Entity: "route", Count: 1}),
			status: http.StatusConflict,
			body:   `esta rota`,
		},
		{name: "not found", err: database.ErrNotFound, status: http.StatusNotFound, body: "Motorista"},
		{name: "duplicate", err: database.ErrDuplicate, status: http.StatusConflict, body: "já cadastrado"},
		{name: "other", err: errors.New("connection reset"), status: http.StatusInternalServerError, body: "Erro interno"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondStoreError(rec, tt.err, "Motorista")

			if rec.Code != tt.status {
				t.Errorf("expected %d, got %d", tt.status, rec.Code)
			}
			var body map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if msg, _ := body["error"].(string); !strings.Contains(msg, tt.body) {
				t.Errorf("expected error containing %q, got %q", tt.body, msg)
			}
		})
	}
}

func TestAssembleFreightWorkedExample(t *testing.T) {
	driver := &models.Driver{ID: "d1", Name: "João", ValorKm: 1, ValorPonto: 5}
	route := &models.Route{ID: "R-101", Origin: "Ribeirão Preto", Destination: "Sertãozinho", Value: 20}
	req := models.FreightRequest{
		DriverID:         "d1",
		RouteID:          "R-101",
		Manifesto:        " M-001 ",
		KmInicial:        100,
		KmFinal:          150,
		TotalPontos:      3,
		Tolls:            10,
		AdditionalCities: []models.CityChargeRequest{{ID: "c1", Name: "Serrana", Value: 15}, {Name: "  "}},
		FreightDate:      date(t, "2024-03-01"),
		HorarioSaida:     "08:00",
	}

	f, breakdown, problem := assembleFreight(req, driver, route)
	if problem != "" {
		t.Fatalf("unexpected problem %q", problem)
	}
	if f.Value != 110 || breakdown.Total != 110 {
		t.Errorf("expected value 110.00, got %v (breakdown %+v)", f.Value, breakdown)
	}
	if f.DriverID != "d1" || f.RouteID == nil || *f.RouteID != "R-101" {
		t.Errorf("unexpected references: driver %q route %v", f.DriverID, f.RouteID)
	}
	if f.Origin != "Ribeirão Preto" || f.Destination != "Sertãozinho" {
		t.Errorf("expected endpoints from the route, got %q → %q", f.Origin, f.Destination)
	}
	if f.Manifesto != "M-001" || f.Status != models.FreightStatusPending {
		t.Errorf("unexpected manifesto/status %q/%q", f.Manifesto, f.Status)
	}
	if len(f.AdditionalCities) != 1 {
		t.Errorf("expected blank cities to be dropped, got %+v", f.AdditionalCities)
	}
	if f.HorarioSaida == nil || *f.HorarioSaida != "08:00" || f.HorarioChegada != nil {
		t.Errorf("unexpected times %v / %v", f.HorarioSaida, f.HorarioChegada)
	}
}

func TestAssembleFreightStoresCoercedTerms(t *testing.T) {
	driver := &models.Driver{ID: "d1", ValorKm: 1, ValorPonto: 5}
	req := models.FreightRequest{
		KmInicial:        0,
		KmFinal:          50,
		TotalPontos:      -3,
		Tolls:            -10,
		AdditionalCities: []models.CityChargeRequest{{ID: "c1", Name: "Serrana", Value: -4}, {ID: "c2", Name: "Cravinhos", Value: 7}},
		FreightDate:      date(t, "2024-03-01"),
	}

	f, _, problem := assembleFreight(req, driver, nil)
	if problem != "" {
		t.Fatalf("unexpected problem %q", problem)
	}
	if f.Tolls != 0 || f.TotalPontos != 0 || f.AdditionalCities[0].Value != 0 {
		t.Errorf("expected negative terms to be stored as zero, got tolls %v points %d cities %+v", f.Tolls, f.TotalPontos, f.AdditionalCities)
	}

	km := f.KmFinal - f.KmInicial
	if km < 0 {
		km = 0
	}
	fromStored := km*driver.ValorKm + float64(f.TotalPontos)*driver.ValorPonto + f.Tolls + f.AdditionalCities.Total()
	if f.Value != 57 || fromStored != f.Value {
		t.Errorf("stored value %v does not match its own terms (%v)", f.Value, fromStored)
	}
}

func TestAssembleFreightProblems(t *testing.T) {
	driver := &models.Driver{ID: "d1", ValorKm: 2}
	base := models.FreightRequest{KmInicial: 10, KmFinal: 20, FreightDate: date(t, "2024-03-01")}

	if _, b, problem := assembleFreight(base, nil, nil); problem == "" || b.Total != 0 {
		t.Errorf("expected missing driver to be reported with a zero quote, got %q / %v", problem, b.Total)
	}

	noDate := base
	noDate.FreightDate = models.Date{}
	if _, _, problem := assembleFreight(noDate, driver, nil); problem == "" {
		t.Error("expected missing date to be reported")
	}

	badStatus := base
	badStatus.Status = "Lost"
	if _, _, problem := assembleFreight(badStatus, driver, nil); problem == "" {
		t.Error("expected invalid status to be reported")
	}

	f, _, problem := assembleFreight(base, driver, nil)
	if problem != "" || f.Value != 20 || f.RouteID != nil {
		t.Errorf("expected 20.00 without route, got %v (%q)", f.Value, problem)
	}
}

func TestClosurePeriod(t *testing.T) {
	req := models.ClosureRequest{DriverID: "d1", PeriodStart: date(t, "2024-03-01"), PeriodEnd: date(t, "2024-03-31")}
	if _, problem := closurePeriod(req); problem != "" {
		t.Errorf("unexpected problem %q", problem)
	}

	reversed := req
	reversed.PeriodStart, reversed.PeriodEnd = req.PeriodEnd, req.PeriodStart
	if _, problem := closurePeriod(reversed); !strings.Contains(problem, "data final") {
		t.Errorf("expected reversed period message, got %q", problem)
	}

	noDriver := req
	noDriver.DriverID = ""
	if _, problem := closurePeriod(noDriver); problem == "" {
		t.Error("expected missing driver to be reported")
	}
}

func TestRequestValidation(t *testing.T) {
	if _, problem := driverFromRequest(models.DriverRequest{Name: " "}); problem == "" {
		t.Error("expected blank driver name to be rejected")
	}
	d, problem := driverFromRequest(models.DriverRequest{Name: "Ana", Plate: "abc1d23", ValorKm: 1.5})
	if problem != "" || d.Plate != "ABC1D23" || d.ValorKm != 1.5 {
		t.Errorf("unexpected driver %+v (%q)", d, problem)
	}

	r, problem := routeFromRequest(models.RouteRequest{ID: "R-1", Cities: models.RouteCities{{Name: "Cravinhos"}, {Name: ""}}})
	if problem != "" || len(r.Cities) != 1 {
		t.Errorf("expected blank route cities to be dropped, got %+v (%q)", r.Cities, problem)
	}
	if _, problem := routeFromRequest(models.RouteRequest{}); problem == "" {
		t.Error("expected route code to be required")
	}

	c, problem := cityFromRequest(models.CityRequest{Name: "Serrana", State: "sp"})
	if problem != "" || c.Type != models.CityTypeFixed || c.State != "SP" {
		t.Errorf("unexpected city %+v (%q)", c, problem)
	}
	if _, problem := cityFromRequest(models.CityRequest{Name: "Serrana", Type: "weird"}); problem == "" {
		t.Error("expected unknown city type to be rejected")
	}

	if _, problem := transactionFromRequest(models.TransactionRequest{Description: "Diesel", Type: "Outro"}); problem == "" {
		t.Error("expected unknown transaction type to be rejected")
	}
	tx, problem := transactionFromRequest(models.TransactionRequest{Description: "Diesel", Type: models.TransactionExpense, Amount: 300})
	if problem != "" || tx.Status != models.TransactionPending {
		t.Errorf("unexpected transaction %+v (%q)", tx, problem)
	}

	blank := " "
	task, problem := taskFromRequest(models.TaskRequest{Title: "Conferir notas", ResponsibleID: &blank})
	if problem != "" || task.ResponsibleID != nil || task.Priority != models.TaskPriorityMedium {
		t.Errorf("unexpected task %+v (%q)", task, problem)
	}

	if _, problem := eventFromRequest(models.CalendarEventRequest{Title: "Revisão"}); problem == "" {
		t.Error("expected event date to be required")
	}
}

func TestReassigned(t *testing.T) {
	a, b := "p1", "p2"
	cases := []struct {
		before, after *string
		want          bool
	}{
		{nil, nil, false},
		{nil, &a, true},
		{&a, &a, false},
		{&a, &b, true},
		{&a, nil, false},
	}
	for _, c := range cases {
		if got := reassigned(c.before, c.after); got != c.want {
			t.Errorf("reassigned(%v, %v) = %v, want %v", c.before, c.after, got, c.want)
		}
	}
}

func TestDateRange(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/financial?from=2024-03-01&to=2024-03-31", nil)
	from, to, ok := dateRange(r)
	if !ok || from.String() != "2024-03-01" || to.String() != "2024-03-31" {
		t.Errorf("unexpected range %v..%v (%v)", from, to, ok)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/financial?from=01/03/2024", nil)
	if _, _, ok := dateRange(r); ok {
		t.Error("expected non-ISO date to be rejected")
	}

	r = httptest.NewRequest(http.MethodGet, "/api/freights?driver_id=d1&status=Pending", nil)
	filter, err := freightFilter(r)
	if err != nil || filter.DriverID != "d1" || filter.Status != "Pending" || !filter.From.IsZero() {
		t.Errorf("unexpected filter %+v (%v)", filter, err)
	}
}
