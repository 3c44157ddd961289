package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"logmed-backend/internal/database"
	"logmed-backend/internal/models"
	"logmed-backend/pkg/utils"
)

// respondStoreError maps database errors to HTTP statuses. what names the
// record in user-facing messages ("Motorista", "Rota", ...).
func respondStoreError(w http.ResponseWriter, err error, what string) {
	var dependent *database.DependentFreightsError
	switch {
	case errors.As(err, &dependent):
		log.Printf("⚠️  Delete blocked: %v", err)
		utils.RespondError(w, http.StatusConflict, dependent.Error())
	case errors.Is(err, database.ErrNotFound):
		utils.RespondError(w, http.StatusNotFound, what+" não encontrado(a)")
	case errors.Is(err, database.ErrDuplicate):
		utils.RespondError(w, http.StatusConflict, what+" já cadastrado(a)")
	default:
		log.Printf("❌ %s: %v", what, err)
		utils.RespondError(w, http.StatusInternalServerError, "Erro interno ao processar a solicitação")
	}
}

// dateParam reads an optional yyyy-mm-dd query parameter.
func dateParam(r *http.Request, name string) (models.Date, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return models.Date{}, nil
	}
	return models.ParseDate(raw)
}

// optionalString returns nil for blank input.
func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
