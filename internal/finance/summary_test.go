package finance

import (
	"testing"

	"logmed-backend/internal/models"
)

func date(s string) models.Date {
	d, _ := models.ParseDate(s)
	return d
}

func TestSummarize(t *testing.T) {
	txs := []models.FinancialTransaction{
		{Amount: 1500, Type: models.TransactionRevenue, Category: models.CategoryFreight, Date: date("2024-03-02")},
		{Amount: 300.4, Type: models.TransactionExpense, Category: models.CategoryFuel, Date: date("2024-03-01")},
		{Amount: 200.1, Type: models.TransactionExpense, Category: models.CategoryMaintenance, Date: date("2024-03-02")},
		{Amount: 99.5, Type: models.TransactionExpense, Category: models.CategoryFuel, Date: date("2024-03-01")},
	}

	s := Summarize(txs)

	if s.TotalRevenue != 1500 || s.TotalExpenses != 600 || s.NetProfit != 900 {
		t.Errorf("unexpected totals %+v", s)
	}
	if s.FuelExpenses != 399.9 || s.MaintenanceExpenses != 200.1 {
		t.Errorf("unexpected category totals %+v", s)
	}
	if len(s.Chart) != 2 {
		t.Fatalf("expected 2 chart days, got %+v", s.Chart)
	}
	if s.Chart[0].Label != "01/03" || s.Chart[0].Expenses != 399.9 || s.Chart[0].Revenue != 0 {
		t.Errorf("unexpected first day %+v", s.Chart[0])
	}
	if s.Chart[1].Revenue != 1500 || s.Chart[1].Expenses != 200.1 {
		t.Errorf("unexpected second day %+v", s.Chart[1])
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.NetProfit != 0 || len(s.Chart) != 0 {
		t.Errorf("expected empty summary, got %+v", s)
	}
}
