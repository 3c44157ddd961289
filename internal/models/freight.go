package models

// FreightStatus represents where a freight is in its delivery lifecycle
type FreightStatus string

const (
	FreightStatusPending   FreightStatus = "Pending"
	FreightStatusInTransit FreightStatus = "In Transit"
	FreightStatusDelivered FreightStatus = "Delivered"
)

func (s FreightStatus) Valid() bool {
	switch s {
	case FreightStatusPending, FreightStatusInTransit, FreightStatusDelivered:
		return true
	}
	return false
}

// Freight is one delivery run by a driver. Value is a snapshot computed when
// the freight was submitted; later rate or catalog changes do not touch it.
type Freight struct {
	ID               string        `json:"id" db:"id"`
	DriverID         string        `json:"driver_id" db:"driver_id"`
	RouteID          *string       `json:"route_id" db:"route_id"`
	Manifesto        string        `json:"manifesto" db:"manifesto"`
	Origin           string        `json:"origin" db:"origin"`
	Destination      string        `json:"destination" db:"destination"`
	KmInicial        float64       `json:"km_inicial" db:"km_inicial"`
	KmFinal          float64       `json:"km_final" db:"km_final"`
	HorarioSaida     *string       `json:"horario_saida" db:"horario_saida"`
	HorarioChegada   *string       `json:"horario_chegada" db:"horario_chegada"`
	TotalPontos      int           `json:"total_pontos" db:"total_pontos"`
	Tolls            float64       `json:"tolls" db:"tolls"`
	AdditionalCities CityCharges   `json:"additional_cities" db:"additional_cities"`
	Value            float64       `json:"value" db:"value"`
	Status           FreightStatus `json:"status" db:"status"`
	FreightDate      Date          `json:"freight_date" db:"freight_date"`
	CreatedAt        int64         `json:"created_at" db:"created_at"`
	UpdatedAt        int64         `json:"updated_at" db:"updated_at"`
}

// KmDriven is km_final - km_inicial, without clamping.
func (f Freight) KmDriven() float64 {
	return f.KmFinal - f.KmInicial
}

// FreightDetail is a freight joined with its driver name and route code for listings
type FreightDetail struct {
	Freight
	DriverName string `json:"driver_name" db:"driver_name"`
}

// FreightRequest is the request body for creating, updating and quoting freights.
// DraftID, when set on create, removes the originating import draft.
type FreightRequest struct {
	DriverID         string        `json:"driver_id"`
	RouteID          string        `json:"route_id"`
	Manifesto        string        `json:"manifesto"`
	Origin           string        `json:"origin"`
	Destination      string        `json:"destination"`
	KmInicial        Amount        `json:"km_inicial"`
	KmFinal          Amount        `json:"km_final"`
	HorarioSaida     string        `json:"horario_saida"`
	HorarioChegada   string        `json:"horario_chegada"`
	TotalPontos      Count         `json:"total_pontos"`
	Tolls            Amount        `json:"tolls"`
	AdditionalCities []CityChargeRequest `json:"additional_cities"`
	Status           FreightStatus `json:"status"`
	FreightDate      Date          `json:"freight_date"`
	DraftID          string        `json:"draft_id,omitempty"`
}

// CityChargeRequest is an additional city as the freight form sends it.
// The value decodes as leniently as the other numeric fields.
type CityChargeRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value Amount `json:"value"`
}

type UpdateFreightStatusRequest struct {
	Status FreightStatus `json:"status"`
}

// FreightFilter narrows freight listings; empty fields are ignored
type FreightFilter struct {
	DriverID string
	Status   string
	From     Date
	To       Date
}
