package export

import (
	"fmt"
	"io"
	"time"

	"logmed-backend/internal/models"

	"github.com/xuri/excelize/v2"
)

const freightSheet = "Fretes"

var freightWorkbookHeaders = []string{
	"Motorista", "Rota", "Manifesto", "Data", "Origem", "Destino",
	"KM Inicial", "KM Final", "Pontos", "Pedágios", "Cidades Adicionais", "Valor", "Status",
}

// FreightWorkbookFileName is the download name of the freight spreadsheet.
func FreightWorkbookFileName(now time.Time) string {
	return fmt.Sprintf("fretes_%s.xlsx", now.Format("2006-01-02"))
}

// WriteFreightWorkbook writes the freight listing as an .xlsx workbook.
func WriteFreightWorkbook(w io.Writer, freights []models.FreightDetail) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(freightSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for i, header := range freightWorkbookHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(freightSheet, cell, header)
	}

	for i, fr := range freights {
		route := ""
		if fr.RouteID != nil {
			route = *fr.RouteID
		}
		row := []interface{}{
			fr.DriverName,
			route,
			fr.Manifesto,
			fr.FreightDate.String(),
			fr.Origin,
			fr.Destination,
			fr.KmInicial,
			fr.KmFinal,
			fr.TotalPontos,
			fr.Tolls,
			fr.AdditionalCities.Total(),
			fr.Value,
			string(fr.Status),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(freightSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	_, err = f.WriteTo(w)
	return err
}
