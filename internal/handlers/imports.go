package handlers

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"

	"logmed-backend/internal/database"
	"logmed-backend/internal/matching"
	"logmed-backend/internal/middleware"
	"logmed-backend/internal/models"
	"logmed-backend/internal/reports"
	"logmed-backend/internal/websocket"
	"logmed-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

const maxUploadMemory = 32 << 20

// CatalogSource loads the reference data imports are resolved against.
type CatalogSource interface {
	Drivers() ([]models.Driver, error)
	Routes() ([]models.Route, error)
	Cities() ([]models.City, error)
}

// DBCatalog reads the catalog from Postgres.
type DBCatalog struct {
	DB *sqlx.DB
}

func (c DBCatalog) Drivers() ([]models.Driver, error) { return database.ListDrivers(c.DB, "") }
func (c DBCatalog) Routes() ([]models.Route, error)   { return database.ListRoutes(c.DB) }
func (c DBCatalog) Cities() ([]models.City, error)    { return database.ListCities(c.DB) }

// ImportHandler serves the report-import workflow: uploaded spreadsheets
// become drafts in the caller's list until they are submitted as freights
// or discarded.
type ImportHandler struct {
	Drafts  *reports.Store
	Catalog CatalogSource
	Cities  matching.Matcher
	Events  websocket.Publisher
}

type ImportResponse struct {
	Drafts []reports.Draft      `json:"drafts"`
	Files  []reports.FileResult `json:"files"`
}

func importKind(raw string) (reports.Kind, bool) {
	switch raw {
	case "main":
		return reports.KindMain, true
	case "driver":
		return reports.KindDriver, true
	}
	return "", false
}

func (h *ImportHandler) owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.GetSessionFromContext(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	return claims.ProfileID, true
}

func (h *ImportHandler) changed(owner string, drafts []reports.Draft) {
	h.Events.PublishToProfile(owner, websocket.EventDraftsUpdated, drafts)
}

// Upload parses a batch of spreadsheets posted as multipart "files", with
// ?kind=main or ?kind=driver. Files that fail are reported per file; the
// rest are merged into the list.
func (h *ImportHandler) Upload(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	kind, ok := importKind(r.URL.Query().Get("kind"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Tipo de relatório deve ser 'main' ou 'driver'")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Envie as planilhas como multipart/form-data")
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "Nenhum arquivo enviado")
		return
	}

	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Printf("📥 IMPORT: %d %s report(s)", len(headers), kind)

	drivers, err := h.Catalog.Drivers()
	if err != nil {
		respondStoreError(w, err, "Motoristas")
		return
	}
	routes, err := h.Catalog.Routes()
	if err != nil {
		respondStoreError(w, err, "Rotas")
		return
	}

	uploads, closeAll, err := openUploads(headers)
	defer closeAll()
	if err != nil {
		log.Printf("❌ Failed to open upload: %v", err)
		utils.RespondError(w, http.StatusBadRequest, "Não foi possível ler os arquivos enviados")
		return
	}

	extracted, results := reports.ExtractBatch(kind, uploads, reports.Catalog{Drivers: drivers, Routes: routes}, h.Drafts.Matcher())
	list := h.Drafts.Apply(owner, extracted)

	log.Printf("✅ Import done: %d draft(s) extracted, %d in list", len(extracted), len(list))
	h.changed(owner, list)
	utils.RespondJSON(w, http.StatusOK, ImportResponse{Drafts: list, Files: results})
}

func openUploads(headers []*multipart.FileHeader) ([]reports.Upload, func(), error) {
	var files []multipart.File
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}

	uploads := make([]reports.Upload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, closeAll, err
		}
		files = append(files, f)
		uploads = append(uploads, reports.Upload{Name: fh.Filename, Reader: f})
	}
	return uploads, closeAll, nil
}

// List returns the caller's drafts, most recent first.
func (h *ImportHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	utils.RespondJSON(w, http.StatusOK, h.Drafts.List(owner))
}

// Prefill resolves one draft into a freight form for review.
func (h *ImportHandler) Prefill(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	draft, err := h.Drafts.Get(owner, chi.URLParam(r, "id"))
	if errors.Is(err, reports.ErrDraftNotFound) {
		utils.RespondError(w, http.StatusNotFound, "Rascunho não encontrado")
		return
	}

	routes, err := h.Catalog.Routes()
	if err != nil {
		respondStoreError(w, err, "Rotas")
		return
	}
	cities, err := h.Catalog.Cities()
	if err != nil {
		respondStoreError(w, err, "Cidades")
		return
	}

	utils.RespondJSON(w, http.StatusOK, reports.Prefill(draft, routes, cities, h.Cities))
}

// Remove discards one draft.
func (h *ImportHandler) Remove(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	if err := h.Drafts.Remove(owner, chi.URLParam(r, "id")); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Rascunho não encontrado")
		return
	}

	list := h.Drafts.List(owner)
	h.changed(owner, list)
	utils.RespondJSON(w, http.StatusOK, list)
}

// Clear empties the caller's list.
func (h *ImportHandler) Clear(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	h.Drafts.Clear(owner)
	h.changed(owner, []reports.Draft{})
	utils.RespondMessage(w, http.StatusOK, "Rascunhos descartados")
}
