package handlers

import (
	"log"
	"net/http"
	"strings"

	"logmed-backend/internal/database"
	"logmed-backend/internal/models"
	"logmed-backend/internal/websocket"
	"logmed-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

// GetDrivers lists drivers by name, optionally filtered by ?status=
func GetDrivers(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		drivers, err := database.ListDrivers(db, r.URL.Query().Get("status"))
		if err != nil {
			respondStoreError(w, err, "Motoristas")
			return
		}
		utils.RespondJSON(w, http.StatusOK, drivers)
	}
}

func GetDriver(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driver, err := database.GetDriver(db, chi.URLParam(r, "id"))
		if err != nil {
			respondStoreError(w, err, "Motorista")
			return
		}
		utils.RespondJSON(w, http.StatusOK, driver)
	}
}

func driverFromRequest(req models.DriverRequest) (models.Driver, string) {
	d := models.Driver{
		Name:       strings.TrimSpace(req.Name),
		Plate:      strings.ToUpper(strings.TrimSpace(req.Plate)),
		CnpjCpf:    strings.TrimSpace(req.CnpjCpf),
		ValorKm:    req.ValorKm.Float(),
		ValorPonto: req.ValorPonto.Float(),
		PhotoURL:   req.PhotoURL,
		Status:     req.Status,
	}
	if d.Name == "" {
		return d, "O nome do motorista é obrigatório"
	}
	switch d.Status {
	case "", models.DriverStatusActive, models.DriverStatusInRoute:
	default:
		return d, "Status must be 'active' or 'in_route'"
	}
	return d, ""
}

func CreateDriver(db *sqlx.DB, pub websocket.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.DriverRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		driver, problem := driverFromRequest(req)
		if problem != "" {
			utils.RespondError(w, http.StatusBadRequest, problem)
			return
		}

		if err := database.CreateDriver(db, &driver); err != nil {
			respondStoreError(w, err, "Motorista")
			return
		}

		log.Printf("✅ Driver created: %s (%s)", driver.Name, driver.ID)
		pub.Publish(websocket.EventCatalogUpdated, map[string]string{"collection": "drivers", "id": driver.ID})
		utils.RespondJSON(w, http.StatusCreated, driver)
	}
}

// UpdateDriver replaces a driver's data. Existing freights keep the value
// computed with the old rates.
func UpdateDriver(db *sqlx.DB, pub websocket.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req models.DriverRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		existing, err := database.GetDriver(db, id)
		if err != nil {
			respondStoreError(w, err, "Motorista")
			return
		}

		driver, problem := driverFromRequest(req)
		if problem != "" {
			utils.RespondError(w, http.StatusBadRequest, problem)
			return
		}
		driver.ID = existing.ID
		driver.MonthlyRoutes = existing.MonthlyRoutes
		driver.Revenue = existing.Revenue
		driver.CreatedAt = existing.CreatedAt
		if driver.Status == "" {
			driver.Status = existing.Status
		}

		if err := database.UpdateDriver(db, &driver); err != nil {
			respondStoreError(w, err, "Motorista")
			return
		}

		pub.Publish(websocket.EventCatalogUpdated, map[string]string{"collection": "drivers", "id": driver.ID})
		utils.RespondJSON(w, http.StatusOK, driver)
	}
}

// DeleteDriver refuses with 409 while freights reference the driver.
func DeleteDriver(db *sqlx.DB, pub websocket.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if err := database.DeleteDriver(db, id); err != nil {
			respondStoreError(w, err, "Motorista")
			return
		}

		log.Printf("🗑️  Driver deleted: %s", id)
		pub.Publish(websocket.EventCatalogUpdated, map[string]string{"collection": "drivers", "id": id})
		utils.RespondMessage(w, http.StatusOK, "Motorista excluído")
	}
}
