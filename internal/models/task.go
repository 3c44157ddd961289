package models

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

type TaskStatus string

const (
	TaskStatusPending TaskStatus = "pending"
	TaskStatusDoing   TaskStatus = "doing"
	TaskStatusDone    TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusDoing, TaskStatusDone:
		return true
	}
	return false
}

// Task is an internal to-do item assigned to a back-office profile
type Task struct {
	ID            string       `json:"id" db:"id"`
	Title         string       `json:"title" db:"title"`
	Description   string       `json:"description" db:"description"`
	Category      string       `json:"category" db:"category"`
	Priority      TaskPriority `json:"priority" db:"priority"`
	Status        TaskStatus   `json:"status" db:"status"`
	ResponsibleID *string      `json:"responsible_id" db:"responsible_id"`
	DueTime       *string      `json:"due_time" db:"due_time"`
	CreatedAt     int64        `json:"created_at" db:"created_at"`
	UpdatedAt     int64        `json:"updated_at" db:"updated_at"`
}

// TaskDetail joins the responsible profile's name and avatar
type TaskDetail struct {
	Task
	ResponsibleName   *string `json:"responsible_name" db:"responsible_name"`
	ResponsibleAvatar *string `json:"responsible_avatar" db:"responsible_avatar"`
}

type TaskRequest struct {
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Category      string       `json:"category"`
	Priority      TaskPriority `json:"priority"`
	Status        TaskStatus   `json:"status"`
	ResponsibleID *string      `json:"responsible_id"`
	DueTime       *string      `json:"due_time"`
}

// CalendarEvent is an entry of the shared operations calendar
type CalendarEvent struct {
	ID          string  `json:"id" db:"id"`
	Title       string  `json:"title" db:"title"`
	Date        Date    `json:"date" db:"date"`
	Color       string  `json:"color" db:"color"`
	Description *string `json:"description" db:"description"`
	CreatedAt   int64   `json:"created_at" db:"created_at"`
	UpdatedAt   int64   `json:"updated_at" db:"updated_at"`
}

type CalendarEventRequest struct {
	Title       string  `json:"title"`
	Date        Date    `json:"date"`
	Color       string  `json:"color"`
	Description *string `json:"description"`
}
