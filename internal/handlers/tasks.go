package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"logmed-backend/internal/database"
	"logmed-backend/internal/models"
	"logmed-backend/internal/services"
	"logmed-backend/internal/websocket"
	"logmed-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

const pushTimeout = 10 * time.Second

func GetTasks(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tasks, err := database.ListTasks(db)
		if err != nil {
			respondStoreError(w, err, "Tarefas")
			return
		}
		utils.RespondJSON(w, http.StatusOK, tasks)
	}
}

func taskFromRequest(req models.TaskRequest) (models.Task, string) {
	t := models.Task{
		Title:         strings.TrimSpace(req.Title),
		Description:   strings.TrimSpace(req.Description),
		Category:      strings.TrimSpace(req.Category),
		Priority:      req.Priority,
		Status:        req.Status,
		ResponsibleID: req.ResponsibleID,
		DueTime:       req.DueTime,
	}
	if t.ResponsibleID != nil {
		t.ResponsibleID = optionalString(*t.ResponsibleID)
	}
	if t.DueTime != nil {
		t.DueTime = optionalString(*t.DueTime)
	}
	if t.Priority == "" {
		t.Priority = models.TaskPriorityMedium
	}
	if t.Status == "" {
		t.Status = models.TaskStatusPending
	}

	switch {
	case t.Title == "":
		return t, "O título da tarefa é obrigatório"
	case t.Priority != models.TaskPriorityLow && t.Priority != models.TaskPriorityMedium && t.Priority != models.TaskPriorityHigh:
		return t, "Priority must be 'low', 'medium' or 'high'"
	case !t.Status.Valid():
		return t, "Status must be 'pending', 'doing' or 'done'"
	}
	return t, ""
}

// notifyAssignment pushes the task to the responsible profile's latest
// device and to its open dashboards. Push failures are only logged.
func notifyAssignment(db *sqlx.DB, notifier services.Notifier, pub websocket.Publisher, task *models.Task) {
	if task.ResponsibleID == nil {
		return
	}
	profileID := *task.ResponsibleID
	pub.PublishToProfile(profileID, websocket.EventTaskAssigned, task)

	if notifier == nil {
		return
	}
	token, err := database.LatestFCMToken(db, profileID)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			log.Printf("❌ FCM token lookup failed: %v", err)
		}
		return
	}

	go func(t models.Task) {
		ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
		defer cancel()
		if err := notifier.NotifyTaskAssigned(ctx, token.Token, &t); err != nil {
			log.Printf("❌ Push for task %s failed: %v", t.ID, err)
			return
		}
		log.Printf("📲 Push sent for task %s", t.ID)
	}(*task)
}

// CreateTask stores a task and notifies its responsible profile.
func CreateTask(db *sqlx.DB, notifier services.Notifier, pub websocket.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.TaskRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		task, problem := taskFromRequest(req)
		if problem != "" {
			utils.RespondError(w, http.StatusBadRequest, problem)
			return
		}

		if err := database.CreateTask(db, &task); err != nil {
			respondStoreError(w, err, "Tarefa")
			return
		}

		log.Printf("✅ Task created: %s", task.Title)
		notifyAssignment(db, notifier, pub, &task)
		utils.RespondJSON(w, http.StatusCreated, task)
	}
}

// UpdateTask rewrites a task. Reassigning it notifies the new responsible.
func UpdateTask(db *sqlx.DB, notifier services.Notifier, pub websocket.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req models.TaskRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		existing, err := database.GetTask(db, id)
		if err != nil {
			respondStoreError(w, err, "Tarefa")
			return
		}

		task, problem := taskFromRequest(req)
		if problem != "" {
			utils.RespondError(w, http.StatusBadRequest, problem)
			return
		}
		task.ID = existing.ID
		task.CreatedAt = existing.CreatedAt

		if err := database.UpdateTask(db, &task); err != nil {
			respondStoreError(w, err, "Tarefa")
			return
		}

		if reassigned(existing.ResponsibleID, task.ResponsibleID) {
			notifyAssignment(db, notifier, pub, &task)
		}
		utils.RespondJSON(w, http.StatusOK, task)
	}
}

func reassigned(before, after *string) bool {
	if after == nil {
		return false
	}
	return before == nil || *before != *after
}

type UpdateTaskStatusRequest struct {
	Status models.TaskStatus `json:"status"`
}

func UpdateTaskStatus(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateTaskStatusRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if !req.Status.Valid() {
			utils.RespondError(w, http.StatusBadRequest, "Status must be 'pending', 'doing' or 'done'")
			return
		}

		if err := database.UpdateTaskStatus(db, chi.URLParam(r, "id"), req.Status); err != nil {
			respondStoreError(w, err, "Tarefa")
			return
		}
		utils.RespondMessage(w, http.StatusOK, "Status atualizado")
	}
}

func DeleteTask(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := database.DeleteTask(db, chi.URLParam(r, "id")); err != nil {
			respondStoreError(w, err, "Tarefa")
			return
		}
		utils.RespondMessage(w, http.StatusOK, "Tarefa excluída")
	}
}
