package handlers

import (
	"net/http"
	"strings"

	"logmed-backend/internal/database"
	"logmed-backend/internal/models"
	"logmed-backend/internal/websocket"
	"logmed-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

const defaultEventColor = "#3b82f6"

func GetCalendarEvents(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, to, ok := dateRange(r)
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Datas devem estar no formato aaaa-mm-dd")
			return
		}

		events, err := database.ListCalendarEvents(db, from, to)
		if err != nil {
			respondStoreError(w, err, "Eventos")
			return
		}
		utils.RespondJSON(w, http.StatusOK, events)
	}
}

func eventFromRequest(req models.CalendarEventRequest) (models.CalendarEvent, string) {
	e := models.CalendarEvent{
		Title:       strings.TrimSpace(req.Title),
		Date:        req.Date,
		Color:       strings.TrimSpace(req.Color),
		Description: req.Description,
	}
	if e.Color == "" {
		e.Color = defaultEventColor
	}
	if e.Title == "" {
		return e, "O título do evento é obrigatório"
	}
	if e.Date.IsZero() {
		return e, "A data do evento é obrigatória"
	}
	return e, ""
}

func CreateCalendarEvent(db *sqlx.DB, pub websocket.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CalendarEventRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		event, problem := eventFromRequest(req)
		if problem != "" {
			utils.RespondError(w, http.StatusBadRequest, problem)
			return
		}

		if err := database.CreateCalendarEvent(db, &event); err != nil {
			respondStoreError(w, err, "Evento")
			return
		}

		pub.Publish(websocket.EventCalendarUpdated, event)
		utils.RespondJSON(w, http.StatusCreated, event)
	}
}

func UpdateCalendarEvent(db *sqlx.DB, pub websocket.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CalendarEventRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		event, problem := eventFromRequest(req)
		if problem != "" {
			utils.RespondError(w, http.StatusBadRequest, problem)
			return
		}
		event.ID = chi.URLParam(r, "id")

		if err := database.UpdateCalendarEvent(db, &event); err != nil {
			respondStoreError(w, err, "Evento")
			return
		}

		pub.Publish(websocket.EventCalendarUpdated, event)
		utils.RespondJSON(w, http.StatusOK, event)
	}
}

func DeleteCalendarEvent(db *sqlx.DB, pub websocket.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := database.DeleteCalendarEvent(db, id); err != nil {
			respondStoreError(w, err, "Evento")
			return
		}

		pub.Publish(websocket.EventCalendarUpdated, map[string]string{"id": id})
		utils.RespondMessage(w, http.StatusOK, "Evento excluído")
	}
}
