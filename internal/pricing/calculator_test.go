package pricing

import (
	"encoding/json"
	"testing"

	"logmed-backend/internal/models"
)

func TestCalculateWorkedExample(t *testing.T) {
	driver := &models.Driver{ValorKm: 1, ValorPonto: 5}
	route := &models.Route{ID: "R-1", Value: 20}

	got := ForFreight(driver, route, FreightInput{
		KmInicial:        100,
		KmFinal:          150,
		TotalPontos:      3,
		Tolls:            10,
		AdditionalCities: []models.CityCharge{{ID: "c1", Name: "Cravinhos", Value: 15}},
	})

	if got.Total != 110 {
		t.Fatalf("expected total 110.00, got %.2f", got.Total)
	}
	if got.KmValue != 50 || got.PointsValue != 15 || got.CitiesValue != 15 {
		t.Errorf("unexpected breakdown: %+v", got)
	}
}

func TestCalculateClampsReversedOdometer(t *testing.T) {
	got := Calculate(Input{ValorKm: 2, KmInicial: 500, KmFinal: 400, RouteValue: 30})
	if got.KmDriven != 0 {
		t.Errorf("expected km driven 0, got %v", got.KmDriven)
	}
	if got.Total != 30 {
		t.Errorf("expected total 30, got %v", got.Total)
	}
}

func TestCalculateFormula(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want float64
	}{
		{"empty", Input{}, 0},
		{"route only", Input{RouteValue: 45.5}, 45.5},
		{"km only", Input{ValorKm: 1.25, KmInicial: 10, KmFinal: 30}, 25},
		{"points only", Input{ValorPonto: 3.5, TotalPontos: 4}, 14},
		{"cities summed", Input{CityValues: []float64{10, 7.25, 2.75}}, 20},
		{"negative toll ignored", Input{RouteValue: 10, Tolls: -5}, 10},
		{"negative rate ignored", Input{ValorKm: -1, KmFinal: 10, RouteValue: 1}, 1},
		{"rounded to cents", Input{ValorKm: 0.333, KmFinal: 10}, 3.33},
		{"all terms", Input{RouteValue: 100, ValorKm: 0.9, KmInicial: 1000, KmFinal: 1100, ValorPonto: 2, TotalPontos: 12, Tolls: 8.4, CityValues: []float64{12}}, 234.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.in)
			if got.Total != tt.want {
				t.Errorf("expected %.2f, got %.2f", tt.want, got.Total)
			}
			if got.Total < 0 {
				t.Errorf("total must never be negative, got %.2f", got.Total)
			}
		})
	}
}

func TestForFreightWithoutRecords(t *testing.T) {
	got := ForFreight(nil, nil, FreightInput{KmInicial: 0, KmFinal: 80, TotalPontos: 5, Tolls: 12})
	if got.Total != 12 {
		t.Fatalf("expected only tolls to count without driver and route, got %.2f", got.Total)
	}
}

func TestInputFromRequestCoercesGarbage(t *testing.T) {
	body := `{"km_inicial":"abc","km_final":"150,5","total_pontos":"3","tolls":null,
		"additional_cities":[{"id":"c1","name":"Serrana","value":"15"},{"name":"Cravinhos","value":"n/d"}]}`

	var req models.FreightRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	in := InputFromRequest(req)
	if in.KmInicial != 0 {
		t.Errorf("expected unparsable km_inicial to be 0, got %v", in.KmInicial)
	}
	if in.KmFinal != 150.5 {
		t.Errorf("expected 150.5, got %v", in.KmFinal)
	}
	if in.TotalPontos != 3 || in.Tolls != 0 {
		t.Errorf("unexpected input: %+v", in)
	}
	if len(in.AdditionalCities) != 2 || in.AdditionalCities[0].Value != 15 || in.AdditionalCities[1].Value != 0 {
		t.Errorf("expected city values 15 and 0, got %+v", in.AdditionalCities)
	}
}

func TestNormalizeZeroesNegativeTerms(t *testing.T) {
	raw := FreightInput{
		KmInicial:        200,
		KmFinal:          150,
		TotalPontos:      -3,
		Tolls:            -10,
		AdditionalCities: []models.CityCharge{{ID: "c1", Value: -4}, {ID: "c2", Value: 6}},
	}

	n := raw.Normalize()
	if n.TotalPontos != 0 || n.Tolls != 0 {
		t.Errorf("expected points and tolls to be zeroed, got %+v", n)
	}
	if n.AdditionalCities[0].Value != 0 || n.AdditionalCities[1].Value != 6 {
		t.Errorf("unexpected city values %+v", n.AdditionalCities)
	}
	if n.KmInicial != 200 || n.KmFinal != 150 {
		t.Errorf("expected odometer readings to be kept, got %v → %v", n.KmInicial, n.KmFinal)
	}
	if raw.AdditionalCities[0].Value != -4 {
		t.Error("Normalize must not modify its receiver's cities")
	}
	if ForFreight(nil, nil, raw).Total != ForFreight(nil, nil, n).Total {
		t.Error("expected the same total before and after normalizing")
	}
}
