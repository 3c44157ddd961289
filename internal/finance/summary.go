// Package finance aggregates revenue and expense transactions.
package finance

import (
	"sort"

	"logmed-backend/internal/models"

	"github.com/shopspring/decimal"
)

// DayPoint is one bar of the revenue/expense chart
type DayPoint struct {
	Date     models.Date `json:"date"`
	Label    string      `json:"name"`
	Revenue  float64     `json:"receita"`
	Expenses float64     `json:"despesa"`
}

type Summary struct {
	TotalRevenue        float64    `json:"total_revenue"`
	TotalExpenses       float64    `json:"total_expenses"`
	NetProfit           float64    `json:"net_profit"`
	FuelExpenses        float64    `json:"fuel_expenses"`
	MaintenanceExpenses float64    `json:"maintenance_expenses"`
	Chart               []DayPoint `json:"chart"`
}

// Summarize totals the transactions and groups them per day, oldest first.
func Summarize(txs []models.FinancialTransaction) Summary {
	revenue, expenses := decimal.Zero, decimal.Zero
	fuel, maintenance := decimal.Zero, decimal.Zero

	type dayTotals struct{ revenue, expenses decimal.Decimal }
	days := map[string]*dayTotals{}
	dates := map[string]models.Date{}

	for _, tx := range txs {
		amount := decimal.NewFromFloat(tx.Amount)
		key := tx.Date.String()
		dt, ok := days[key]
		if !ok {
			dt = &dayTotals{}
			days[key] = dt
			dates[key] = tx.Date
		}

		switch tx.Type {
		case models.TransactionRevenue:
			revenue = revenue.Add(amount)
			dt.revenue = dt.revenue.Add(amount)
		case models.TransactionExpense:
			expenses = expenses.Add(amount)
			dt.expenses = dt.expenses.Add(amount)
		}

		switch tx.Category {
		case models.CategoryFuel:
			fuel = fuel.Add(amount)
		case models.CategoryMaintenance:
			maintenance = maintenance.Add(amount)
		}
	}

	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	chart := make([]DayPoint, 0, len(keys))
	for _, k := range keys {
		d := dates[k]
		label := "-"
		if !d.IsZero() {
			label = d.Format("02/01")
		}
		chart = append(chart, DayPoint{
			Date:     d,
			Label:    label,
			Revenue:  days[k].revenue.Round(2).InexactFloat64(),
			Expenses: days[k].expenses.Round(2).InexactFloat64(),
		})
	}

	return Summary{
		TotalRevenue:        revenue.Round(2).InexactFloat64(),
		TotalExpenses:       expenses.Round(2).InexactFloat64(),
		NetProfit:           revenue.Sub(expenses).Round(2).InexactFloat64(),
		FuelExpenses:        fuel.Round(2).InexactFloat64(),
		MaintenanceExpenses: maintenance.Round(2).InexactFloat64(),
		Chart:               chart,
	}
}
