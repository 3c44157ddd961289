package handlers

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"logmed-backend/internal/database"
	"logmed-backend/internal/export"
	"logmed-backend/internal/middleware"
	"logmed-backend/internal/models"
	"logmed-backend/internal/pricing"
	"logmed-backend/internal/reports"
	"logmed-backend/internal/websocket"
	"logmed-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// freightFilter reads ?driver_id=&status=&from=&to=
func freightFilter(r *http.Request) (models.FreightFilter, error) {
	q := r.URL.Query()
	filter := models.FreightFilter{
		DriverID: q.Get("driver_id"),
		Status:   q.Get("status"),
	}
	var err error
	if filter.From, err = dateParam(r, "from"); err != nil {
		return filter, err
	}
	if filter.To, err = dateParam(r, "to"); err != nil {
		return filter, err
	}
	return filter, nil
}

// GetFreights lists freights, newest first, with the driver name joined
func GetFreights(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := freightFilter(r)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Datas devem estar no formato aaaa-mm-dd")
			return
		}

		freights, err := database.ListFreights(db, filter)
		if err != nil {
			respondStoreError(w, err, "Fretes")
			return
		}
		utils.RespondJSON(w, http.StatusOK, freights)
	}
}

func GetFreight(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		freight, err := database.GetFreight(db, chi.URLParam(r, "id"))
		if err != nil {
			respondStoreError(w, err, "Frete")
			return
		}
		utils.RespondJSON(w, http.StatusOK, freight)
	}
}

// selection loads the driver and route a freight form points at. Unknown ids
// come back as a problem for the caller, not as an error.
func selection(db *sqlx.DB, req models.FreightRequest) (driver *models.Driver, route *models.Route, problem string, err error) {
	if req.DriverID != "" {
		driver, err = database.GetDriver(db, req.DriverID)
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil, "Motorista não encontrado", nil
		}
		if err != nil {
			return nil, nil, "", err
		}
	}
	if routeID := strings.TrimSpace(req.RouteID); routeID != "" {
		route, err = database.GetRoute(db, routeID)
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil, "Rota não encontrada", nil
		}
		if err != nil {
			return nil, nil, "", err
		}
	}
	return driver, route, "", nil
}

// assembleFreight builds the record to store from the form and the selected
// records. The value is always recomputed; the client's figure is ignored.
func assembleFreight(req models.FreightRequest, driver *models.Driver, route *models.Route) (models.Freight, pricing.Breakdown, string) {
	input := pricing.InputFromRequest(req)
	cities := models.CityCharges{}
	for _, c := range input.AdditionalCities {
		if strings.TrimSpace(c.Name) == "" {
			continue
		}
		c.Name = strings.TrimSpace(c.Name)
		cities = append(cities, c)
	}
	input.AdditionalCities = cities
	input = input.Normalize()

	f := models.Freight{
		Manifesto:        strings.TrimSpace(req.Manifesto),
		Origin:           strings.TrimSpace(req.Origin),
		Destination:      strings.TrimSpace(req.Destination),
		KmInicial:        input.KmInicial,
		KmFinal:          input.KmFinal,
		HorarioSaida:     optionalString(req.HorarioSaida),
		HorarioChegada:   optionalString(req.HorarioChegada),
		TotalPontos:      input.TotalPontos,
		Tolls:            input.Tolls,
		AdditionalCities: models.CityCharges(input.AdditionalCities),
		Status:           req.Status,
		FreightDate:      req.FreightDate,
	}
	if f.Status == "" {
		f.Status = models.FreightStatusPending
	}
	if route != nil {
		f.RouteID = &route.ID
		if f.Origin == "" {
			f.Origin = route.Origin
		}
		if f.Destination == "" {
			f.Destination = route.Destination
		}
	}

	breakdown := pricing.ForFreight(driver, route, input)
	f.Value = breakdown.Total

	switch {
	case driver == nil:
		return f, breakdown, "Selecione um motorista"
	case f.FreightDate.IsZero():
		return f, breakdown, "A data do frete é obrigatória"
	case !f.Status.Valid():
		return f, breakdown, "Status must be 'Pending', 'In Transit' or 'Delivered'"
	}
	f.DriverID = driver.ID
	return f, breakdown, ""
}

type QuoteResponse struct {
	Breakdown pricing.Breakdown `json:"breakdown"`
	Value     float64           `json:"value"`
}

// QuoteFreight computes the value for the current form without storing
// anything. Missing driver or route contribute zero.
func QuoteFreight(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.FreightRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		driver, route, problem, err := selection(db, req)
		if err != nil {
			respondStoreError(w, err, "Frete")
			return
		}
		if problem != "" {
			utils.RespondError(w, http.StatusBadRequest, problem)
			return
		}

		_, breakdown, _ := assembleFreight(req, driver, route)
		utils.RespondJSON(w, http.StatusOK, QuoteResponse{Breakdown: breakdown, Value: breakdown.Total})
	}
}

// CreateFreight stores a freight with a server-computed value. When the form
// came from an import draft, the draft leaves the caller's list.
func CreateFreight(db *sqlx.DB, drafts *reports.Store, pub websocket.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("📥 REQUEST: POST /api/freights")

		var req models.FreightRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		driver, route, problem, err := selection(db, req)
		if err != nil {
			respondStoreError(w, err, "Frete")
			return
		}
		if problem != "" {
			utils.RespondError(w, http.StatusBadRequest, problem)
			return
		}

		freight, breakdown, problem := assembleFreight(req, driver, route)
		if problem != "" {
			utils.RespondError(w, http.StatusBadRequest, problem)
			return
		}

		if err := database.CreateFreight(db, &freight); err != nil {
			respondStoreError(w, err, "Frete")
			return
		}

		log.Printf("   🚚 Driver: %s", driver.Name)
		log.Printf("   💰 Value: %s (route %.2f, km %.2f, points %.2f, tolls %.2f, cities %.2f)",
			export.BRL(breakdown.Total), breakdown.RouteValue, breakdown.KmValue,
			breakdown.PointsValue, breakdown.Tolls, breakdown.CitiesValue)
		log.Printf("✅ Freight created: %s", freight.ID)

		if req.DraftID != "" {
			if claims, ok := middleware.GetSessionFromContext(r); ok {
				if err := drafts.Remove(claims.ProfileID, req.DraftID); err != nil {
					log.Printf("⚠️  Draft %s not removed: %v", req.DraftID, err)
				} else {
					pub.PublishToProfile(claims.ProfileID, websocket.EventDraftsUpdated, drafts.List(claims.ProfileID))
				}
			}
		}

		detail := models.FreightDetail{Freight: freight, DriverName: driver.Name}
		pub.Publish(websocket.EventFreightCreated, detail)
		utils.RespondJSON(w, http.StatusCreated, detail)
	}
}

// UpdateFreight rewrites a freight and recomputes its value with the
// driver's current rates.
func UpdateFreight(db *sqlx.DB, pub websocket.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req models.FreightRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		existing, err := database.GetFreight(db, id)
		if err != nil {
			respondStoreError(w, err, "Frete")
			return
		}

		driver, route, problem, err := selection(db, req)
		if err != nil {
			respondStoreError(w, err, "Frete")
			return
		}
		if problem != "" {
			utils.RespondError(w, http.StatusBadRequest, problem)
			return
		}

		freight, _, problem := assembleFreight(req, driver, route)
		if problem != "" {
			utils.RespondError(w, http.StatusBadRequest, problem)
			return
		}
		freight.ID = existing.ID
		freight.CreatedAt = existing.CreatedAt

		if err := database.UpdateFreight(db, &freight); err != nil {
			respondStoreError(w, err, "Frete")
			return
		}

		detail := models.FreightDetail{Freight: freight, DriverName: driver.Name}
		pub.Publish(websocket.EventFreightUpdated, detail)
		utils.RespondJSON(w, http.StatusOK, detail)
	}
}

func UpdateFreightStatus(db *sqlx.DB, pub websocket.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req models.UpdateFreightStatusRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if !req.Status.Valid() {
			utils.RespondError(w, http.StatusBadRequest, "Status must be 'Pending', 'In Transit' or 'Delivered'")
			return
		}

		if err := database.UpdateFreightStatus(db, id, req.Status); err != nil {
			respondStoreError(w, err, "Frete")
			return
		}

		pub.Publish(websocket.EventFreightUpdated, map[string]interface{}{"id": id, "status": req.Status})
		utils.RespondMessage(w, http.StatusOK, "Status atualizado")
	}
}

// DeleteFreight removes a freight. Closures keep their frozen totals.
func DeleteFreight(db *sqlx.DB, pub websocket.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := database.DeleteFreight(db, id); err != nil {
			respondStoreError(w, err, "Frete")
			return
		}

		log.Printf("🗑️  Freight deleted: %s", id)
		pub.Publish(websocket.EventFreightDeleted, map[string]string{"id": id})
		utils.RespondMessage(w, http.StatusOK, "Frete excluído")
	}
}

// ExportFreightsPDF renders the filtered freight list as a landscape report.
func ExportFreightsPDF(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := freightFilter(r)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Datas devem estar no formato aaaa-mm-dd")
			return
		}
		freights, err := database.ListFreights(db, filter)
		if err != nil {
			respondStoreError(w, err, "Fretes")
			return
		}

		now := time.Now()
		var buf bytes.Buffer
		if err := export.WriteFreightList(&buf, freights, now); err != nil {
			log.Printf("❌ Freight list PDF failed: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Falha ao gerar o PDF")
			return
		}
		utils.RespondFile(w, contentTypePDF, export.FreightListFileName(now), buf.Bytes())
	}
}

// ExportFreightsXLSX writes the filtered freight list as a workbook.
func ExportFreightsXLSX(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := freightFilter(r)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Datas devem estar no formato aaaa-mm-dd")
			return
		}
		freights, err := database.ListFreights(db, filter)
		if err != nil {
			respondStoreError(w, err, "Fretes")
			return
		}

		var buf bytes.Buffer
		if err := export.WriteFreightWorkbook(&buf, freights); err != nil {
			log.Printf("❌ Freight workbook failed: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Falha ao gerar a planilha")
			return
		}
		utils.RespondFile(w, contentTypeXLSX, export.FreightWorkbookFileName(time.Now()), buf.Bytes())
	}
}
