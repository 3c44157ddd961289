package database

import (
	"fmt"
	"time"

	"logmed-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const transactionColumns = `id, description, amount, type, category, date, status, created_at, updated_at`

// ListTransactions returns entries between from and to (inclusive, either may
// be zero), newest first.
func ListTransactions(db *sqlx.DB, from, to models.Date) ([]models.FinancialTransaction, error) {
	txs := []models.FinancialTransaction{}
	query := `SELECT ` + transactionColumns + ` FROM financial_transactions WHERE TRUE`
	args := []interface{}{}
	if !from.IsZero() {
		args = append(args, from)
		query += fmt.Sprintf(` AND date >= $%d`, len(args))
	}
	if !to.IsZero() {
		args = append(args, to)
		query += fmt.Sprintf(` AND date <= $%d`, len(args))
	}
	query += ` ORDER BY date DESC NULLS LAST, created_at DESC`

	if err := db.Select(&txs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

func CreateTransaction(db *sqlx.DB, tx *models.FinancialTransaction) error {
	now := time.Now().Unix()
	tx.ID = uuid.New().String()
	tx.CreatedAt, tx.UpdatedAt = now, now
	if tx.Status == "" {
		tx.Status = models.TransactionPending
	}

	_, err := db.NamedExec(`
		INSERT INTO financial_transactions (id, description, amount, type, category, date, status,
		                                    created_at, updated_at)
		VALUES (:id, :description, :amount, :type, :category, :date, :status,
		        :created_at, :updated_at)
	`, tx)
	if err != nil {
		return writeErr(err, "create transaction")
	}
	return nil
}

func UpdateTransactionStatus(db *sqlx.DB, id string, status models.TransactionStatus) error {
	res, err := db.Exec(`UPDATE financial_transactions SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("failed to update transaction status: %w", err)
	}
	return affected(res, "update transaction status")
}

func DeleteTransaction(db *sqlx.DB, id string) error {
	res, err := db.Exec(`DELETE FROM financial_transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return affected(res, "delete transaction")
}
