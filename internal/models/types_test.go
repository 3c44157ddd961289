package models

import (
	"encoding/json"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"12.5", 12.5},
		{"12,5", 12.5},
		{" 80 ", 80},
		{"150km", 150},
		{"-3", -3},
		{"abc", 0},
		{"", 0},
		{".", 0},
		{"1.234,56", 1.234},
	}
	for _, tt := range tests {
		if got := ParseAmount(tt.in); got != tt.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAmountAndCountDecode(t *testing.T) {
	var body struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
		C Count  `json:"c"`
		D Count  `json:"d"`
		E Amount `json:"e"`
	}
	if err := json.Unmarshal([]byte(`{"a":"7,25","b":3.5,"c":"4.9","d":{"x":1},"e":true}`), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.A != 7.25 || body.B != 3.5 || body.C != 4 || body.D != 0 || body.E != 0 {
		t.Errorf("unexpected values: %+v", body)
	}
}

func TestFreightRequestCityValues(t *testing.T) {
	var req FreightRequest
	body := `{"additional_cities":[{"id":"c1","name":"Serrana","value":"15"},{"name":"Jardinópolis","value":"12,5"},{"name":"Brodowski"}]}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(req.AdditionalCities) != 3 {
		t.Fatalf("expected 3 cities, got %d", len(req.AdditionalCities))
	}
	if req.AdditionalCities[0].Value != 15 || req.AdditionalCities[1].Value != 12.5 || req.AdditionalCities[2].Value != 0 {
		t.Errorf("unexpected city values: %+v", req.AdditionalCities)
	}
}

func TestDateJSON(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2024-03-01T10:00:00Z"`), &d); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if string(out) != `"2024-03-01"` {
		t.Errorf("unexpected encoding %s", out)
	}

	var empty Date
	if err := json.Unmarshal([]byte(`""`), &empty); err != nil || !empty.IsZero() {
		t.Errorf("expected empty string to decode to zero date, got %v (%v)", empty, err)
	}
	if err := json.Unmarshal([]byte(`"01/03/2024"`), &empty); err == nil {
		t.Error("expected error for non ISO date")
	}
}

func TestRouteDeriveDestination(t *testing.T) {
	r := Route{Cities: RouteCities{{Name: "Cravinhos"}, {Name: "Serrana"}}}
	r.DeriveDestination()
	if r.Destination != "Serrana" {
		t.Errorf("expected last city as destination, got %q", r.Destination)
	}

	r.Cities = nil
	r.DeriveDestination()
	if r.Destination != "" {
		t.Errorf("expected empty destination, got %q", r.Destination)
	}
}
