package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"logmed-backend/internal/models"

	"github.com/go-pdf/fpdf"
)

var (
	freightListHeaders = []string{"Motorista", "Rota", "Manifesto", "Data", "Origem", "Destino", "KM I", "KM F", "Pts", "Pedág", "Valor"}
	freightListWidths  = []float64{30, 20, 25, 20, 25, 25, 15, 15, 12, 20, 25}
)

const (
	listFirstRowY = 45.0
	listRowStep   = 7.0
	listMaxY      = 190.0
	listResumeY   = 20.0
)

// FreightListFileName is the download name of the freight report.
func FreightListFileName(now time.Time) string {
	return fmt.Sprintf("fretes_%s.pdf", now.Format("2006-01-02"))
}

// WriteFreightList renders the landscape freight report.
func WriteFreightList(w io.Writer, freights []models.FreightDetail, generatedAt time.Time) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(14, 20, tr("Relatório de Fretes"))

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.Text(14, 27, "Gerado em: "+generatedAt.Format("02/01/2006"))

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetFillColor(37, 99, 235)
	pdf.Rect(10, 32, 277, 8, "F")
	pdf.SetTextColor(255, 255, 255)
	x := 12.0
	for i, h := range freightListHeaders {
		pdf.Text(x, 37, tr(h))
		x += freightListWidths[i]
	}

	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(200, 200, 200)
	y := listFirstRowY
	for _, f := range freights {
		if y > listMaxY {
			pdf.AddPage()
			y = listResumeY
		}

		x = 12.0
		for i, cell := range freightListRow(f) {
			pdf.Text(x, y, tr(cell))
			x += freightListWidths[i]
		}
		y += listRowStep
		pdf.Line(10, y-2, 287, y-2)
	}

	return pdf.Output(w)
}

func freightListRow(f models.FreightDetail) []string {
	route := "-"
	if f.RouteID != nil && *f.RouteID != "" {
		route = *f.RouteID
	}
	return []string{
		truncate(orDash(f.DriverName), 15),
		truncate(route, 10),
		truncate(orDash(f.Manifesto), 12),
		BRDate(f.FreightDate),
		truncate(f.Origin, 12),
		truncate(f.Destination, 12),
		formatKm(f.KmInicial),
		formatKm(f.KmFinal),
		strconv.Itoa(f.TotalPontos),
		fmt.Sprintf("R$%.0f", f.Tolls),
		fmt.Sprintf("R$%.2f", f.Value),
	}
}
