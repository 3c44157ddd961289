package models

// ClosureStatus is the payment state of a closure
type ClosureStatus string

const (
	ClosureStatusOpen   ClosureStatus = "Aberto"
	ClosureStatusClosed ClosureStatus = "Fechado"
)

func (s ClosureStatus) Valid() bool {
	return s == ClosureStatusOpen || s == ClosureStatusClosed
}

// Closure is the settlement of a driver's freights over a period.
// TotalValue is frozen at creation time.
type Closure struct {
	ID          string        `json:"id" db:"id"`
	DriverID    string        `json:"driver_id" db:"driver_id"`
	PeriodStart Date          `json:"period_start" db:"period_start"`
	PeriodEnd   Date          `json:"period_end" db:"period_end"`
	TotalValue  float64       `json:"total_value" db:"total_value"`
	Status      ClosureStatus `json:"status" db:"status"`
	CreatedAt   int64         `json:"created_at" db:"created_at"`
	UpdatedAt   int64         `json:"updated_at" db:"updated_at"`
}

// ClosureDetail joins the driver name for listings
type ClosureDetail struct {
	Closure
	DriverName string `json:"driver_name" db:"driver_name"`
}

// ClosureRequest is the request body for closure preview and creation
type ClosureRequest struct {
	DriverID    string        `json:"driver_id"`
	PeriodStart Date          `json:"period_start"`
	PeriodEnd   Date          `json:"period_end"`
	Status      ClosureStatus `json:"status"`
}

type UpdateClosureStatusRequest struct {
	Status ClosureStatus `json:"status"`
}
