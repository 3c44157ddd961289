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

// GetCities returns the surcharge catalog ordered by name
func GetCities(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cities, err := database.ListCities(db)
		if err != nil {
			respondStoreError(w, err, "Cidades")
			return
		}
		utils.RespondJSON(w, http.StatusOK, cities)
	}
}

func cityFromRequest(req models.CityRequest) (models.City, string) {
	c := models.City{
		Name:   strings.TrimSpace(req.Name),
		State:  strings.ToUpper(strings.TrimSpace(req.State)),
		Region: strings.TrimSpace(req.Region),
		Type:   req.Type,
		Value:  req.Value.Float(),
	}
	if c.Type == "" {
		c.Type = models.CityTypeFixed
	}
	if c.Name == "" {
		return c, "O nome da cidade é obrigatório"
	}
	if !c.Type.Valid() {
		return c, "Type must be 'fixed' or 'per_km'"
	}
	return c, ""
}

func CreateCity(db *sqlx.DB, pub websocket.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CityRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		city, problem := cityFromRequest(req)
		if problem != "" {
			utils.RespondError(w, http.StatusBadRequest, problem)
			return
		}

		if err := database.CreateCity(db, &city); err != nil {
			respondStoreError(w, err, "Cidade")
			return
		}

		log.Printf("✅ City created: %s (%s)", city.Name, city.ID)
		pub.Publish(websocket.EventCatalogUpdated, map[string]string{"collection": "cities", "id": city.ID})
		utils.RespondJSON(w, http.StatusCreated, city)
	}
}

// UpdateCity edits a catalog entry. Freights keep the value they snapshotted.
func UpdateCity(db *sqlx.DB, pub websocket.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CityRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		city, problem := cityFromRequest(req)
		if problem != "" {
			utils.RespondError(w, http.StatusBadRequest, problem)
			return
		}
		city.ID = chi.URLParam(r, "id")

		if err := database.UpdateCity(db, &city); err != nil {
			respondStoreError(w, err, "Cidade")
			return
		}

		pub.Publish(websocket.EventCatalogUpdated, map[string]string{"collection": "cities", "id": city.ID})
		utils.RespondJSON(w, http.StatusOK, city)
	}
}

func DeleteCity(db *sqlx.DB, pub websocket.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := database.DeleteCity(db, id); err != nil {
			respondStoreError(w, err, "Cidade")
			return
		}

		pub.Publish(websocket.EventCatalogUpdated, map[string]string{"collection": "cities", "id": id})
		utils.RespondMessage(w, http.StatusOK, "Cidade excluída")
	}
}
