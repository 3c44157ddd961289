package handlers

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"time"

	"logmed-backend/internal/closure"
	"logmed-backend/internal/database"
	"logmed-backend/internal/export"
	"logmed-backend/internal/models"
	"logmed-backend/internal/websocket"
	"logmed-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

// ClosureStatement is a closure period with the freights it covers
type ClosureStatement struct {
	Closure  *models.ClosureDetail `json:"closure,omitempty"`
	Driver   *models.Driver        `json:"driver"`
	Freights []models.Freight      `json:"freights"`
	Summary  closure.Summary       `json:"summary"`
}

type ClosureListResponse struct {
	Closures []models.ClosureDetail `json:"closures"`
	Overview closure.Overview       `json:"overview"`
}

// statement loads the driver and the freights dated within the period.
func statement(db *sqlx.DB, driverID string, period closure.Period) (*ClosureStatement, error) {
	driver, err := database.GetDriver(db, driverID)
	if err != nil {
		return nil, err
	}

	details, err := database.ListFreights(db, models.FreightFilter{
		DriverID: driverID,
		From:     period.Start,
		To:       period.End,
	})
	if err != nil {
		return nil, err
	}

	freights := make([]models.Freight, 0, len(details))
	for _, d := range details {
		freights = append(freights, d.Freight)
	}
	freights = closure.Filter(freights, driverID, period)
	if freights == nil {
		freights = []models.Freight{}
	}

	return &ClosureStatement{
		Driver:   driver,
		Freights: freights,
		Summary:  closure.Aggregate(*driver, freights),
	}, nil
}

func closurePeriod(req models.ClosureRequest) (closure.Period, string) {
	if req.DriverID == "" {
		return closure.Period{}, "Selecione um motorista"
	}
	p := closure.Period{Start: req.PeriodStart, End: req.PeriodEnd}
	if err := p.Validate(); err != nil {
		if errors.Is(err, closure.ErrInvalidPeriod) {
			return p, "A data final deve ser igual ou posterior à data inicial"
		}
		return p, "Informe o início e o fim do período"
	}
	return p, ""
}

// PreviewClosure aggregates a driver's freights for a period without storing anything.
func PreviewClosure(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ClosureRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		period, problem := closurePeriod(req)
		if problem != "" {
			utils.RespondError(w, http.StatusBadRequest, problem)
			return
		}

		st, err := statement(db, req.DriverID, period)
		if err != nil {
			respondStoreError(w, err, "Motorista")
			return
		}
		utils.RespondJSON(w, http.StatusOK, st)
	}
}

// CreateClosure freezes the sum of the period's freight values. Later freight
// edits do not change the stored total.
func CreateClosure(db *sqlx.DB, pub websocket.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("📥 REQUEST: POST /api/closures")

		var req models.ClosureRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		period, problem := closurePeriod(req)
		if problem != "" {
			utils.RespondError(w, http.StatusBadRequest, problem)
			return
		}
		status := req.Status
		if status == "" {
			status = models.ClosureStatusOpen
		}
		if !status.Valid() {
			utils.RespondError(w, http.StatusBadRequest, "Status must be 'Aberto' or 'Fechado'")
			return
		}

		st, err := statement(db, req.DriverID, period)
		if err != nil {
			respondStoreError(w, err, "Motorista")
			return
		}

		c := &models.Closure{
			DriverID:    req.DriverID,
			PeriodStart: period.Start,
			PeriodEnd:   period.End,
			TotalValue:  st.Summary.TotalValue,
			Status:      status,
		}
		if err := database.CreateClosure(db, c); err != nil {
			respondStoreError(w, err, "Fechamento")
			return
		}

		log.Printf("   👤 Driver: %s", st.Driver.Name)
		log.Printf("   📅 Period: %s → %s (%d freights)", period.Start, period.End, st.Summary.FreightCount)
		log.Printf("✅ Closure created: %s, total %s", c.ID, export.BRL(c.TotalValue))

		st.Closure = &models.ClosureDetail{Closure: *c, DriverName: st.Driver.Name}
		pub.Publish(websocket.EventClosureCreated, st.Closure)
		utils.RespondJSON(w, http.StatusCreated, st)
	}
}

// GetClosures lists closures (optionally ?driver_id=) with open/paid totals.
func GetClosures(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		closures, err := database.ListClosures(db, r.URL.Query().Get("driver_id"))
		if err != nil {
			respondStoreError(w, err, "Fechamentos")
			return
		}

		plain := make([]models.Closure, 0, len(closures))
		for _, c := range closures {
			plain = append(plain, c.Closure)
		}
		if closures == nil {
			closures = []models.ClosureDetail{}
		}
		utils.RespondJSON(w, http.StatusOK, ClosureListResponse{
			Closures: closures,
			Overview: closure.Summarize(plain),
		})
	}
}

// GetClosure returns the closure with the freights currently in its period.
func GetClosure(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := database.GetClosure(db, chi.URLParam(r, "id"))
		if err != nil {
			respondStoreError(w, err, "Fechamento")
			return
		}

		st, err := statement(db, c.DriverID, closure.Period{Start: c.PeriodStart, End: c.PeriodEnd})
		if err != nil {
			respondStoreError(w, err, "Motorista")
			return
		}
		st.Closure = c
		utils.RespondJSON(w, http.StatusOK, st)
	}
}

func UpdateClosureStatus(db *sqlx.DB, pub websocket.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req models.UpdateClosureStatusRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if !req.Status.Valid() {
			utils.RespondError(w, http.StatusBadRequest, "Status must be 'Aberto' or 'Fechado'")
			return
		}

		if err := database.UpdateClosureStatus(db, id, req.Status); err != nil {
			respondStoreError(w, err, "Fechamento")
			return
		}

		pub.Publish(websocket.EventClosureUpdated, map[string]interface{}{"id": id, "status": req.Status})
		utils.RespondMessage(w, http.StatusOK, "Status atualizado")
	}
}

func DeleteClosure(db *sqlx.DB, pub websocket.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := database.DeleteClosure(db, id); err != nil {
			respondStoreError(w, err, "Fechamento")
			return
		}

		pub.Publish(websocket.EventClosureDeleted, map[string]string{"id": id})
		utils.RespondMessage(w, http.StatusOK, "Fechamento excluído")
	}
}

// ClosurePaymentSlip renders the payment request PDF. The printed total is
// the closure's frozen value.
func ClosurePaymentSlip(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := database.GetClosure(db, chi.URLParam(r, "id"))
		if err != nil {
			respondStoreError(w, err, "Fechamento")
			return
		}

		period := closure.Period{Start: c.PeriodStart, End: c.PeriodEnd}
		st, err := statement(db, c.DriverID, period)
		if err != nil {
			respondStoreError(w, err, "Motorista")
			return
		}
		st.Summary.TotalValue = c.TotalValue

		var buf bytes.Buffer
		err = export.WritePaymentSlip(&buf, export.Slip{
			Driver:   *st.Driver,
			Period:   period,
			Freights: st.Freights,
			Summary:  st.Summary,
			IssuedAt: time.Now(),
		})
		if err != nil {
			log.Printf("❌ Payment slip failed: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Falha ao gerar o PDF")
			return
		}
		utils.RespondFile(w, contentTypePDF, export.SlipFileName(st.Driver.Name, c.PeriodEnd), buf.Bytes())
	}
}
