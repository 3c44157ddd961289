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

// GetRoutes returns every route ordered by code
func GetRoutes(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		routes, err := database.ListRoutes(db)
		if err != nil {
			respondStoreError(w, err, "Rotas")
			return
		}
		utils.RespondJSON(w, http.StatusOK, routes)
	}
}

func GetRoute(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		route, err := database.GetRoute(db, chi.URLParam(r, "id"))
		if err != nil {
			respondStoreError(w, err, "Rota")
			return
		}
		utils.RespondJSON(w, http.StatusOK, route)
	}
}

func routeFromRequest(req models.RouteRequest) (models.Route, string) {
	route := models.Route{
		ID:     strings.TrimSpace(req.ID),
		Origin: strings.TrimSpace(req.Origin),
		Value:  req.Value.Float(),
		Status: strings.TrimSpace(req.Status),
		Cities: models.RouteCities{},
	}
	for _, c := range req.Cities {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			continue
		}
		route.Cities = append(route.Cities, models.RouteCity{Name: name, Value: c.Value})
	}
	if route.ID == "" {
		return route, "O código da rota é obrigatório"
	}
	return route, ""
}

func CreateRoute(db *sqlx.DB, pub websocket.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RouteRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		route, problem := routeFromRequest(req)
		if problem != "" {
			utils.RespondError(w, http.StatusBadRequest, problem)
			return
		}

		if err := database.CreateRoute(db, &route); err != nil {
			respondStoreError(w, err, "Rota")
			return
		}

		log.Printf("✅ Route created: %s (%s → %s)", route.ID, route.Origin, route.Destination)
		pub.Publish(websocket.EventCatalogUpdated, map[string]string{"collection": "routes", "id": route.ID})
		utils.RespondJSON(w, http.StatusCreated, route)
	}
}

// UpdateRoute rewrites a route. A different code in the body renames it.
func UpdateRoute(db *sqlx.DB, pub websocket.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		previousID := chi.URLParam(r, "id")

		var req models.RouteRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if strings.TrimSpace(req.ID) == "" {
			req.ID = previousID
		}

		existing, err := database.GetRoute(db, previousID)
		if err != nil {
			respondStoreError(w, err, "Rota")
			return
		}

		route, problem := routeFromRequest(req)
		if problem != "" {
			utils.RespondError(w, http.StatusBadRequest, problem)
			return
		}
		route.CreatedAt = existing.CreatedAt
		if route.Status == "" {
			route.Status = existing.Status
		}

		if err := database.UpdateRoute(db, previousID, &route); err != nil {
			respondStoreError(w, err, "Rota")
			return
		}

		pub.Publish(websocket.EventCatalogUpdated, map[string]string{"collection": "routes", "id": route.ID})
		utils.RespondJSON(w, http.StatusOK, route)
	}
}

// DeleteRoute refuses with 409 while freights reference the route.
func DeleteRoute(db *sqlx.DB, pub websocket.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if err := database.DeleteRoute(db, id); err != nil {
			respondStoreError(w, err, "Rota")
			return
		}

		log.Printf("🗑️  Route deleted: %s", id)
		pub.Publish(websocket.EventCatalogUpdated, map[string]string{"collection": "routes", "id": id})
		utils.RespondMessage(w, http.StatusOK, "Rota excluída")
	}
}
