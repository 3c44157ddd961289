package models

// DriverStatus represents the availability of a driver
type DriverStatus string

const (
	DriverStatusActive  DriverStatus = "active"
	DriverStatusInRoute DriverStatus = "in_route"
)

// Driver is a contractor paid per kilometer and per delivery point.
// Rates are read when a freight is calculated; stored freights keep their own value.
type Driver struct {
	ID            string       `json:"id" db:"id"`
	Name          string       `json:"name" db:"name"`
	Plate         string       `json:"plate" db:"plate"`
	CnpjCpf       string       `json:"cnpj_cpf" db:"cnpj_cpf"`
	ValorKm       float64      `json:"valor_km" db:"valor_km"`
	ValorPonto    float64      `json:"valor_ponto" db:"valor_ponto"`
	PhotoURL      *string      `json:"photo_url,omitempty" db:"photo_url"`
	Status        DriverStatus `json:"status" db:"status"`
	MonthlyRoutes int          `json:"monthly_routes" db:"monthly_routes"`
	Revenue       float64      `json:"revenue" db:"revenue"`
	CreatedAt     int64        `json:"created_at" db:"created_at"`
	UpdatedAt     int64        `json:"updated_at" db:"updated_at"`
}

// DriverRequest is the request body for POST /api/drivers and PATCH /api/drivers/:id
type DriverRequest struct {
	Name       string       `json:"name"`
	Plate      string       `json:"plate"`
	CnpjCpf    string       `json:"cnpj_cpf"`
	ValorKm    Amount       `json:"valor_km"`
	ValorPonto Amount       `json:"valor_ponto"`
	PhotoURL   *string      `json:"photo_url,omitempty"`
	Status     DriverStatus `json:"status"`
}
