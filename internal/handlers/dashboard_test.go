package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"logmed-backend/internal/dashboard"
	"logmed-backend/internal/models"
	"logmed-backend/internal/services"
)

type fakeDashboardSource struct {
	drivers  []models.Driver
	freights []models.FreightDetail
	active   int
	err      error
	filter   models.FreightFilter
}

func (s *fakeDashboardSource) Drivers() ([]models.Driver, error) { return s.drivers, s.err }

func (s *fakeDashboardSource) Freights(filter models.FreightFilter) ([]models.FreightDetail, error) {
	s.filter = filter
	return s.freights, s.err
}

func (s *fakeDashboardSource) ActiveRoutes() (int, error) { return s.active, s.err }

type recordingAdvisor struct {
	summary string
}

func (a *recordingAdvisor) Analyze(_ context.Context, summary string) string {
	a.summary = summary
	return "Operação estável."
}

func dashboardFixture(t *testing.T) *fakeDashboardSource {
	return &fakeDashboardSource{
		drivers: []models.Driver{
			{ID: "d1", Name: "Ana", Status: models.DriverStatusActive},
			{ID: "d2", Name: "Bruno", Status: models.DriverStatusInRoute},
		},
		freights: []models.FreightDetail{
			{Freight: models.Freight{Value: 100, FreightDate: date(t, "2024-03-10"), Status: models.FreightStatusDelivered}, DriverName: "Ana"},
			{Freight: models.Freight{Value: 50, FreightDate: date(t, "2024-02-10"), Status: models.FreightStatusPending}, DriverName: "Bruno"},
		},
		active: 2,
	}
}

func fixedNow() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }

func TestDashboardMetrics(t *testing.T) {
	src := dashboardFixture(t)
	h := &DashboardHandler{Source: src, Advisor: services.DisabledAdvisor{}, Now: fixedNow}

	rec := httptest.NewRecorder()
	h.Metrics(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var m dashboard.Metrics
	decode(t, rec, &m)
	if m.TotalDrivers != 2 || m.MonthlyRevenue != 100 || m.LastMonthRevenue != 50 || m.ActiveRoutes != 2 {
		t.Errorf("unexpected metrics %+v", m)
	}
	if src.filter.From.String() != "2023-10-01" {
		t.Errorf("expected six months of history, got from %s", src.filter.From)
	}
}

func TestDashboardAISummary(t *testing.T) {
	advisor := &recordingAdvisor{}
	h := &DashboardHandler{Source: dashboardFixture(t), Advisor: advisor, Now: fixedNow}

	rec := httptest.NewRecorder()
	h.AISummary(rec, httptest.NewRequest(http.MethodPost, "/api/dashboard/ai-summary", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp AISummaryResponse
	decode(t, rec, &resp)
	if resp.Analysis != "Operação estável." {
		t.Errorf("unexpected analysis %q", resp.Analysis)
	}
	if resp.Summary == "" || advisor.summary != resp.Summary || !strings.Contains(resp.Summary, "2 motoristas") {
		t.Errorf("expected the advisor to receive the operational summary, got %q", advisor.summary)
	}
}

func TestDashboardAISummaryWithoutAdvisor(t *testing.T) {
	h := &DashboardHandler{Source: dashboardFixture(t), Advisor: services.DisabledAdvisor{}, Now: fixedNow}

	rec := httptest.NewRecorder()
	h.AISummary(rec, httptest.NewRequest(http.MethodPost, "/api/dashboard/ai-summary", nil))

	var resp AISummaryResponse
	decode(t, rec, &resp)
	if rec.Code != http.StatusOK || resp.Analysis != services.AdvisorUnavailable {
		t.Errorf("expected fallback message with 200, got %d %q", rec.Code, resp.Analysis)
	}
}

func TestDashboardSourceError(t *testing.T) {
	h := &DashboardHandler{Source: &fakeDashboardSource{err: errors.New("db down")}, Advisor: services.DisabledAdvisor{}}

	rec := httptest.NewRecorder()
	h.Metrics(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}
