// Package export renders freights and closures as PDF and XLSX documents.
package export

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"logmed-backend/internal/models"

	"github.com/shopspring/decimal"
)

// BRL formats v as Brazilian currency, e.g. "R$ 1.234,56".
func BRL(v float64) string {
	return "R$ " + brNumber(v)
}

func brNumber(v float64) string {
	s := decimal.NewFromFloat(v).StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac := s[:len(s)-3], s[len(s)-2:]
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := b.String() + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}

// BRDate formats a date as dd/mm/yyyy, or "-" when empty.
func BRDate(d models.Date) string {
	if d.IsZero() {
		return "-"
	}
	return d.Format("02/01/2006")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func formatKm(v float64) string {
	return decimal.NewFromFloat(v).String()
}

// SlipFileName is the download name of a closure payment slip.
func SlipFileName(driverName string, periodEnd models.Date) string {
	return fmt.Sprintf("Ficha_Pagamento_%s_%s.pdf", driverName, periodEnd.String())
}
