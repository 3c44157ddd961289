package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"logmed-backend/internal/closure"
	"logmed-backend/internal/models"

	"github.com/go-pdf/fpdf"
)

// Slip is everything printed on a closure payment slip
type Slip struct {
	Driver   models.Driver
	Period   closure.Period
	Freights []models.Freight
	Summary  closure.Summary
	IssuedAt time.Time
}

var slipColumns = []struct {
	title string
	width float64
	align string
}{
	{"DATA", 22, "L"},
	{"MANIFESTO", 30, "L"},
	{"ORIGEM/DESTINO", 78, "L"},
	{"KM", 18, "R"},
	{"PONTOS", 16, "R"},
	{"VALOR", 26, "R"},
}

// WritePaymentSlip renders the portrait A4 payment request for a closure.
func WritePaymentSlip(w io.Writer, s Slip) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(120, 8, "LOGMED RP", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(60, 8, tr("DATA DE EMISSÃO"), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(120, 5, tr("SOLICITAÇÃO DE PAGAMENTO DE TRANSPORTES"), "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(60, 5, s.IssuedAt.Format("02/01/2006"), "", 1, "R", false, 0, "")
	pdf.SetLineWidth(0.6)
	pdf.Line(15, pdf.GetY()+2, 195, pdf.GetY()+2)
	pdf.SetLineWidth(0.2)
	pdf.Ln(8)

	// Driver info
	field := func(label, value string, ln int) {
		x, y := pdf.GetXY()
		pdf.SetFont("Helvetica", "B", 7)
		pdf.SetTextColor(100, 116, 139)
		pdf.CellFormat(85, 4, tr(label), "", 2, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(85, 6, tr(value), "B", 0, "L", false, 0, "")
		if ln == 0 {
			pdf.SetXY(x+95, y)
		} else {
			pdf.SetXY(15, y+14)
		}
	}
	field("FAVORECIDO (MOTORISTA)", s.Driver.Name, 0)
	field("CNPJ / CPF", orDash(s.Driver.CnpjCpf), 1)
	field("PLACA DO VEÍCULO", orDash(s.Driver.Plate), 0)
	field("PERÍODO DE REFERÊNCIA", BRDate(s.Period.Start)+" até "+BRDate(s.Period.End), 1)
	pdf.Ln(4)

	// Freights
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(241, 245, 249)
	for _, c := range slipColumns {
		pdf.CellFormat(c.width, 7, c.title, "TB", 0, c.align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, f := range s.Freights {
		date := "-"
		if !f.FreightDate.IsZero() {
			date = f.FreightDate.Format("02/01/06")
		}
		cells := []string{
			date,
			orDash(f.Manifesto),
			truncate(f.Origin+" / "+f.Destination, 48),
			formatKm(f.KmDriven()),
			strconv.Itoa(f.TotalPontos),
			BRL(f.Value),
		}
		for i, c := range slipColumns {
			pdf.CellFormat(c.width, 6, tr(cells[i]), "B", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(8)

	// Totals
	top := pdf.GetY()
	line := func(label, value string) {
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(100, 116, 139)
		pdf.CellFormat(60, 6, tr(label), "B", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(30, 6, value, "B", 1, "R", false, 0, "")
	}
	line(fmt.Sprintf("Total KM (%s km x %s)", formatKm(s.Summary.TotalKm), BRL(s.Driver.ValorKm)), BRL(s.Summary.KmValue))
	line(fmt.Sprintf("Total Pontos (%d pts x %s)", s.Summary.TotalPoints, BRL(s.Driver.ValorPonto)), BRL(s.Summary.PointsValue))
	line("Total Consolidado", BRL(s.Summary.TotalFreightValue))

	pdf.SetFillColor(15, 23, 42)
	pdf.Rect(115, top, 80, 20, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetXY(115, top+3)
	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(76, 4, "VALOR TOTAL A PAGAR", "", 2, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(76, 10, BRL(s.Summary.TotalValue), "", 0, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	// Signatures
	sigY := top + 50
	pdf.Line(20, sigY, 95, sigY)
	pdf.Line(115, sigY, 190, sigY)
	pdf.SetFont("Helvetica", "B", 7)
	pdf.SetXY(20, sigY+2)
	pdf.CellFormat(75, 4, "ASSINATURA DO FAVORECIDO", "", 0, "C", false, 0, "")
	pdf.SetXY(115, sigY+2)
	pdf.CellFormat(75, 4, tr("LOGMED RP - APROVAÇÃO"), "", 0, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(148, 163, 184)
	pdf.SetXY(20, sigY+6)
	pdf.CellFormat(75, 4, tr(s.Driver.Name), "", 0, "C", false, 0, "")
	pdf.SetXY(115, sigY+6)
	pdf.CellFormat(75, 4, tr("Responsável Financeiro"), "", 0, "C", false, 0, "")

	pdf.SetXY(15, sigY+20)
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(203, 213, 225)
	pdf.CellFormat(180, 4, "DOCUMENTO GERADO ELETRONICAMENTE VIA LOGMED FLEET MANAGEMENT SYSTEM", "", 0, "C", false, 0, "")

	return pdf.Output(w)
}
