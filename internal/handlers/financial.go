package handlers

import (
	"net/http"
	"strings"

	"logmed-backend/internal/database"
	"logmed-backend/internal/finance"
	"logmed-backend/internal/models"
	"logmed-backend/internal/websocket"
	"logmed-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

// dateRange reads ?from=&to=, both optional
func dateRange(r *http.Request) (models.Date, models.Date, bool) {
	from, err := dateParam(r, "from")
	if err != nil {
		return from, models.Date{}, false
	}
	to, err := dateParam(r, "to")
	if err != nil {
		return from, to, false
	}
	return from, to, true
}

func GetTransactions(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, to, ok := dateRange(r)
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Datas devem estar no formato aaaa-mm-dd")
			return
		}

		txs, err := database.ListTransactions(db, from, to)
		if err != nil {
			respondStoreError(w, err, "Transações")
			return
		}
		utils.RespondJSON(w, http.StatusOK, txs)
	}
}

// GetFinancialSummary totals revenue, expenses and the per-day chart for the range.
func GetFinancialSummary(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, to, ok := dateRange(r)
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Datas devem estar no formato aaaa-mm-dd")
			return
		}

		txs, err := database.ListTransactions(db, from, to)
		if err != nil {
			respondStoreError(w, err, "Transações")
			return
		}
		utils.RespondJSON(w, http.StatusOK, finance.Summarize(txs))
	}
}

func transactionFromRequest(req models.TransactionRequest) (models.FinancialTransaction, string) {
	tx := models.FinancialTransaction{
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount.Float(),
		Type:        req.Type,
		Category:    strings.TrimSpace(req.Category),
		Date:        req.Date,
		Status:      req.Status,
	}
	if tx.Status == "" {
		tx.Status = models.TransactionPending
	}
	switch {
	case tx.Description == "":
		return tx, "A descrição é obrigatória"
	case tx.Type != models.TransactionRevenue && tx.Type != models.TransactionExpense:
		return tx, "Type must be 'Receita' or 'Despesa'"
	case tx.Status != models.TransactionPending && tx.Status != models.TransactionPaid:
		return tx, "Status must be 'Pendente' or 'Pago'"
	case tx.Amount < 0:
		return tx, "O valor não pode ser negativo"
	}
	return tx, ""
}

func CreateTransaction(db *sqlx.DB, pub websocket.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.TransactionRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		tx, problem := transactionFromRequest(req)
		if problem != "" {
			utils.RespondError(w, http.StatusBadRequest, problem)
			return
		}

		if err := database.CreateTransaction(db, &tx); err != nil {
			respondStoreError(w, err, "Transação")
			return
		}

		pub.Publish(websocket.EventFinanceUpdated, tx)
		utils.RespondJSON(w, http.StatusCreated, tx)
	}
}

type UpdateTransactionStatusRequest struct {
	Status models.TransactionStatus `json:"status"`
}

func UpdateTransactionStatus(db *sqlx.DB, pub websocket.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req UpdateTransactionStatusRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Status != models.TransactionPending && req.Status != models.TransactionPaid {
			utils.RespondError(w, http.StatusBadRequest, "Status must be 'Pendente' or 'Pago'")
			return
		}

		if err := database.UpdateTransactionStatus(db, id, req.Status); err != nil {
			respondStoreError(w, err, "Transação")
			return
		}

		pub.Publish(websocket.EventFinanceUpdated, map[string]interface{}{"id": id, "status": req.Status})
		utils.RespondMessage(w, http.StatusOK, "Status atualizado")
	}
}

func DeleteTransaction(db *sqlx.DB, pub websocket.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := database.DeleteTransaction(db, id); err != nil {
			respondStoreError(w, err, "Transação")
			return
		}

		pub.Publish(websocket.EventFinanceUpdated, map[string]string{"id": id})
		utils.RespondMessage(w, http.StatusOK, "Transação excluída")
	}
}
