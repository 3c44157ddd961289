package reports

import (
	"math"
	"strconv"
	"strings"
	"time"

	"logmed-backend/internal/models"
)

const (
	// serialEpochOffset is the spreadsheet serial number of 1970-01-01.
	serialEpochOffset = 25569
	// maxSerial is 9999-12-31, the last date a spreadsheet can hold.
	maxSerial = 2958465
)

var fallbackDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01-02-06",
	"2 Jan 2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseReportDate reads the "Data" cell of the main report. It accepts a
// spreadsheet serial number, a dd/mm/yyyy string, or a handful of common
// layouts. The boolean is false when nothing could be parsed or a serial
// falls outside 1900-01-01..9999-12-31.
func ParseReportDate(raw string) (models.Date, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.Date{}, false
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		if math.IsNaN(serial) || math.IsInf(serial, 0) || serial <= 0 || serial > maxSerial {
			return models.Date{}, false
		}
		secs := math.Floor((serial - serialEpochOffset) * 86400)
		return models.NewDate(time.Unix(int64(secs), 0).UTC()), true
	}

	if parts := strings.Split(raw, "/"); len(parts) == 3 {
		day, month, year := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), strings.TrimSpace(parts[2])
		if len(year) == 2 {
			year = "20" + year
		}
		d, err := models.ParseDate(year + "-" + pad2(month) + "-" + pad2(day))
		if err != nil {
			return models.Date{}, false
		}
		return d, true
	}

	for _, layout := range fallbackDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return models.NewDate(t), true
		}
	}
	return models.Date{}, false
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
