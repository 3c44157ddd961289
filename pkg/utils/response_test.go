package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, http.StatusConflict, "boom")

	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["success"] != false || body["error"] != "boom" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestRespondFile(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondFile(rec, "application/pdf", "fretes_2024-03-01.pdf", []byte("%PDF"))

	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="fretes_2024-03-01.pdf"` {
		t.Errorf("unexpected disposition %q", got)
	}
	if rec.Header().Get("Content-Length") != "4" || rec.Body.String() != "%PDF" {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst struct{ Name string }
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"Name":"x"}`))
	if err := DecodeJSON(r, &dst); err != nil || dst.Name != "x" {
		t.Errorf("decode failed: %v %+v", err, dst)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	if err := DecodeJSON(r, &dst); err == nil {
		t.Error("expected error for malformed body")
	}
}
