package handlers

import (
	"net/http"
	"strings"

	"logmed-backend/internal/database"
	"logmed-backend/internal/models"
	"logmed-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

func GetVehicles(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vehicles, err := database.ListVehicles(db)
		if err != nil {
			respondStoreError(w, err, "Veículos")
			return
		}
		utils.RespondJSON(w, http.StatusOK, vehicles)
	}
}

func GetVehicle(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vehicle, err := database.GetVehicle(db, chi.URLParam(r, "id"))
		if err != nil {
			respondStoreError(w, err, "Veículo")
			return
		}
		utils.RespondJSON(w, http.StatusOK, vehicle)
	}
}

func vehicleFromRequest(req models.VehicleRequest) (models.Vehicle, string) {
	v := models.Vehicle{
		Plate:           strings.ToUpper(strings.TrimSpace(req.Plate)),
		Model:           strings.TrimSpace(req.Model),
		Brand:           strings.TrimSpace(req.Brand),
		Type:            strings.TrimSpace(req.Type),
		Year:            req.Year,
		Status:          req.Status,
		ImageURL:        req.ImageURL,
		AvgConsumption:  req.AvgConsumption.Float(),
		CostPerKm:       req.CostPerKm.Float(),
		CurrentKm:       req.CurrentKm.Float(),
		MaintenanceNote: req.MaintenanceNote,
		DriverID:        req.DriverID,
	}
	if v.DriverID != nil && strings.TrimSpace(*v.DriverID) == "" {
		v.DriverID = nil
	}
	if v.Status == "" {
		v.Status = models.VehicleStatusActive
	}
	if v.Plate == "" {
		return v, "A placa do veículo é obrigatória"
	}
	switch v.Status {
	case models.VehicleStatusActive, models.VehicleStatusMaintenance, models.VehicleStatusAttention:
	default:
		return v, "Status must be 'active', 'maintenance' or 'attention'"
	}
	return v, ""
}

func CreateVehicle(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.VehicleRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		vehicle, problem := vehicleFromRequest(req)
		if problem != "" {
			utils.RespondError(w, http.StatusBadRequest, problem)
			return
		}

		if err := database.CreateVehicle(db, &vehicle); err != nil {
			respondStoreError(w, err, "Veículo")
			return
		}
		utils.RespondJSON(w, http.StatusCreated, vehicle)
	}
}

func UpdateVehicle(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.VehicleRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		vehicle, problem := vehicleFromRequest(req)
		if problem != "" {
			utils.RespondError(w, http.StatusBadRequest, problem)
			return
		}
		vehicle.ID = chi.URLParam(r, "id")

		if err := database.UpdateVehicle(db, &vehicle); err != nil {
			respondStoreError(w, err, "Veículo")
			return
		}
		utils.RespondJSON(w, http.StatusOK, vehicle)
	}
}

func DeleteVehicle(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := database.DeleteVehicle(db, chi.URLParam(r, "id")); err != nil {
			respondStoreError(w, err, "Veículo")
			return
		}
		utils.RespondMessage(w, http.StatusOK, "Veículo excluído")
	}
}
