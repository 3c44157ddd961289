package database

import (
	"fmt"
	"time"

	"logmed-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const taskDetailSelect = `
	SELECT t.id, t.title, t.description, t.category, t.priority, t.status, t.responsible_id,
	       t.due_time, t.created_at, t.updated_at,
	       p.name AS responsible_name, p.avatar_url AS responsible_avatar
	FROM tasks t
	LEFT JOIN profiles p ON p.id = t.responsible_id`

func ListTasks(db *sqlx.DB) ([]models.TaskDetail, error) {
	tasks := []models.TaskDetail{}
	if err := db.Select(&tasks, taskDetailSelect+` ORDER BY t.created_at DESC`); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func GetTask(db *sqlx.DB, id string) (*models.TaskDetail, error) {
	var t models.TaskDetail
	if err := db.Get(&t, taskDetailSelect+` WHERE t.id = $1`, id); err != nil {
		return nil, notFound(err, "task")
	}
	return &t, nil
}

func CreateTask(db *sqlx.DB, t *models.Task) error {
	now := time.Now().Unix()
	t.ID = uuid.New().String()
	t.CreatedAt, t.UpdatedAt = now, now
	if t.Status == "" {
		t.Status = models.TaskStatusPending
	}
	if t.Priority == "" {
		t.Priority = models.TaskPriorityMedium
	}

	_, err := db.NamedExec(`
		INSERT INTO tasks (id, title, description, category, priority, status, responsible_id,
		                   due_time, created_at, updated_at)
		VALUES (:id, :title, :description, :category, :priority, :status, :responsible_id,
		        :due_time, :created_at, :updated_at)
	`, t)
	if err != nil {
		return writeErr(err, "create task")
	}
	return nil
}

func UpdateTask(db *sqlx.DB, t *models.Task) error {
	t.UpdatedAt = time.Now().Unix()
	res, err := db.NamedExec(`
		UPDATE tasks
		SET title = :title, description = :description, category = :category,
		    priority = :priority, status = :status, responsible_id = :responsible_id,
		    due_time = :due_time, updated_at = :updated_at
		WHERE id = :id
	`, t)
	if err != nil {
		return writeErr(err, "update task")
	}
	return affected(res, "update task")
}

func UpdateTaskStatus(db *sqlx.DB, id string, status models.TaskStatus) error {
	res, err := db.Exec(`UPDATE tasks SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}
	return affected(res, "update task status")
}

func DeleteTask(db *sqlx.DB, id string) error {
	res, err := db.Exec(`DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return affected(res, "delete task")
}

const calendarColumns = `id, title, date, color, description, created_at, updated_at`

// ListCalendarEvents returns events between from and to (inclusive, either
// may be zero) in date order.
func ListCalendarEvents(db *sqlx.DB, from, to models.Date) ([]models.CalendarEvent, error) {
	events := []models.CalendarEvent{}
	query := `SELECT ` + calendarColumns + ` FROM calendar_events WHERE TRUE`
	args := []interface{}{}
	if !from.IsZero() {
		args = append(args, from)
		query += fmt.Sprintf(` AND date >= $%d`, len(args))
	}
	if !to.IsZero() {
		args = append(args, to)
		query += fmt.Sprintf(` AND date <= $%d`, len(args))
	}
	query += ` ORDER BY date ASC, created_at ASC`

	if err := db.Select(&events, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}
	return events, nil
}

func CreateCalendarEvent(db *sqlx.DB, e *models.CalendarEvent) error {
	now := time.Now().Unix()
	e.ID = uuid.New().String()
	e.CreatedAt, e.UpdatedAt = now, now

	_, err := db.NamedExec(`
		INSERT INTO calendar_events (id, title, date, color, description, created_at, updated_at)
		VALUES (:id, :title, :date, :color, :description, :created_at, :updated_at)
	`, e)
	if err != nil {
		return writeErr(err, "create calendar event")
	}
	return nil
}

func UpdateCalendarEvent(db *sqlx.DB, e *models.CalendarEvent) error {
	e.UpdatedAt = time.Now().Unix()
	res, err := db.NamedExec(`
		UPDATE calendar_events
		SET title = :title, date = :date, color = :color, description = :description,
		    updated_at = :updated_at
		WHERE id = :id
	`, e)
	if err != nil {
		return writeErr(err, "update calendar event")
	}
	return affected(res, "update calendar event")
}

func DeleteCalendarEvent(db *sqlx.DB, id string) error {
	res, err := db.Exec(`DELETE FROM calendar_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete calendar event: %w", err)
	}
	return affected(res, "delete calendar event")
}
