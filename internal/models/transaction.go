package models

type TransactionType string

const (
	TransactionRevenue TransactionType = "Receita"
	TransactionExpense TransactionType = "Despesa"
)

type TransactionStatus string

const (
	TransactionPending TransactionStatus = "Pendente"
	TransactionPaid    TransactionStatus = "Pago"
)

// Categories with dedicated totals on the financial summary
const (
	CategoryFreight     = "Frete"
	CategoryFuel        = "Combustível"
	CategoryMaintenance = "Manutenção"
)

// FinancialTransaction is a revenue or expense entry
type FinancialTransaction struct {
	ID          string            `json:"id" db:"id"`
	Description string            `json:"description" db:"description"`
	Amount      float64           `json:"amount" db:"amount"`
	Type        TransactionType   `json:"type" db:"type"`
	Category    string            `json:"category" db:"category"`
	Date        Date              `json:"date" db:"date"`
	Status      TransactionStatus `json:"status" db:"status"`
	CreatedAt   int64             `json:"created_at" db:"created_at"`
	UpdatedAt   int64             `json:"updated_at" db:"updated_at"`
}

type TransactionRequest struct {
	Description string            `json:"description"`
	Amount      Amount            `json:"amount"`
	Type        TransactionType   `json:"type"`
	Category    string            `json:"category"`
	Date        Date              `json:"date"`
	Status      TransactionStatus `json:"status"`
}
