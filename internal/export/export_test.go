package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"logmed-backend/internal/closure"
	"logmed-backend/internal/models"

	"github.com/xuri/excelize/v2"
)

func sampleFreights(n int) []models.FreightDetail {
	route := "R-101"
	out := make([]models.FreightDetail, n)
	for i := range out {
		out[i] = models.FreightDetail{
			Freight: models.Freight{
				RouteID:     &route,
				Manifesto:   "MANIFESTO-0001-LONGO",
				Origin:      "Ribeirão Preto",
				Destination: "Sertãozinho",
				KmInicial:   100,
				KmFinal:     150,
				TotalPontos: 3,
				Tolls:       10,
				Value:       110,
				Status:      models.FreightStatusDelivered,
				FreightDate: models.NewDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
			},
			DriverName: "João da Silva Sauro",
		}
	}
	return out
}

func TestBRL(t *testing.T) {
	tests := map[float64]string{
		0:          "R$ 0,00",
		110:        "R$ 110,00",
		1234.5:     "R$ 1.234,50",
		1234567.89: "R$ 1.234.567,89",
		-50.1:      "R$ -50,10",
	}
	for in, want := range tests {
		if got := BRL(in); got != want {
			t.Errorf("BRL(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFreightListRowTruncates(t *testing.T) {
	row := freightListRow(sampleFreights(1)[0])
	if row[0] != "João da Silva S" {
		t.Errorf("expected driver truncated to 15 chars, got %q", row[0])
	}
	if row[2] != "MANIFESTO-00" {
		t.Errorf("expected manifest truncated to 12 chars, got %q", row[2])
	}
	if row[3] != "01/03/2024" || row[9] != "R$10" || row[10] != "R$110.00" {
		t.Errorf("unexpected row %v", row)
	}
}

func TestWriteFreightListPaginates(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFreightList(&buf, sampleFreights(40), time.Now()); err != nil {
		t.Fatalf("WriteFreightList failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("expected PDF output")
	}
}

func TestWritePaymentSlip(t *testing.T) {
	driver := models.Driver{Name: "João Silva", CnpjCpf: "12345678000199", Plate: "ABC1D23", ValorKm: 1, ValorPonto: 5}
	freights := []models.Freight{sampleFreights(1)[0].Freight}

	var buf bytes.Buffer
	err := WritePaymentSlip(&buf, Slip{
		Driver:   driver,
		Period:   closure.Period{Start: freights[0].FreightDate, End: freights[0].FreightDate},
		Freights: freights,
		Summary:  closure.Aggregate(driver, freights),
		IssuedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("WritePaymentSlip failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected PDF output")
	}
}

func TestSlipFileName(t *testing.T) {
	end := models.NewDate(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	if got := SlipFileName("João", end); got != "Ficha_Pagamento_João_2024-03-15.pdf" {
		t.Errorf("unexpected file name %q", got)
	}
}

func TestWriteFreightWorkbook(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFreightWorkbook(&buf, sampleFreights(2)); err != nil {
		t.Fatalf("WriteFreightWorkbook failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("output is not a workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(freightSheet)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if !strings.EqualFold(rows[0][0], "Motorista") || rows[1][2] != "MANIFESTO-0001-LONGO" {
		t.Errorf("unexpected content %v", rows[:2])
	}
}
