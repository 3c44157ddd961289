package handlers

import (
	"log"
	"net/http"
	"time"

	"logmed-backend/internal/dashboard"
	"logmed-backend/internal/database"
	"logmed-backend/internal/models"
	"logmed-backend/internal/services"
	"logmed-backend/pkg/utils"
)

// DashboardSource loads what the dashboard indicators are computed from.
type DashboardSource interface {
	Drivers() ([]models.Driver, error)
	Freights(filter models.FreightFilter) ([]models.FreightDetail, error)
	ActiveRoutes() (int, error)
}

func (c DBCatalog) Freights(filter models.FreightFilter) ([]models.FreightDetail, error) {
	return database.ListFreights(c.DB, filter)
}

func (c DBCatalog) ActiveRoutes() (int, error) { return database.CountActiveRoutes(c.DB) }

type DashboardHandler struct {
	Source  DashboardSource
	Advisor services.Advisor
	Now     func() time.Time
}

type AISummaryResponse struct {
	Summary  string `json:"summary"`
	Analysis string `json:"analysis"`
}

func (h *DashboardHandler) metrics() (dashboard.Metrics, error) {
	now := time.Now()
	if h.Now != nil {
		now = h.Now()
	}

	drivers, err := h.Source.Drivers()
	if err != nil {
		return dashboard.Metrics{}, err
	}
	freights, err := h.Source.Freights(models.FreightFilter{From: dashboard.HistoryStart(now)})
	if err != nil {
		return dashboard.Metrics{}, err
	}
	active, err := h.Source.ActiveRoutes()
	if err != nil {
		return dashboard.Metrics{}, err
	}

	return dashboard.Compute(dashboard.Input{
		Drivers:      drivers,
		Freights:     freights,
		ActiveRoutes: active,
		Now:          now,
	}), nil
}

// Metrics returns every dashboard indicator.
func (h *DashboardHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	m, err := h.metrics()
	if err != nil {
		respondStoreError(w, err, "Dashboard")
		return
	}
	utils.RespondJSON(w, http.StatusOK, m)
}

// AISummary asks the advisor to comment on the current indicators. The
// advisor never fails the request; it answers with a fixed message instead.
func (h *DashboardHandler) AISummary(w http.ResponseWriter, r *http.Request) {
	m, err := h.metrics()
	if err != nil {
		respondStoreError(w, err, "Dashboard")
		return
	}

	summary := dashboard.Summary(m)
	log.Println("🤖 Requesting operational analysis")
	analysis := h.Advisor.Analyze(r.Context(), summary)

	utils.RespondJSON(w, http.StatusOK, AISummaryResponse{Summary: summary, Analysis: analysis})
}
