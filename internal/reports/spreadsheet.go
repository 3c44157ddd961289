// Package reports turns the operational spreadsheets (the main manifest report
// and the per-driver route reports) into draft freight records, merges drafts
// that describe the same trip, and keeps the draft list of each operator.
package reports

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Column names of the spreadsheet contract
const (
	ColManifest  = "Número"
	ColDriver    = "Motorista"
	ColDate      = "Data"
	ColCity      = "Cidade"
	ColAddress   = "Endereco"
	ColName      = "Nome"
	ColNameUpper = "NOME"
)

var ErrEmptySheet = errors.New("a planilha não possui linhas de dados")

// Row maps a header to the raw cell text of one data row.
type Row map[string]string

// Get returns the trimmed value of the first non-empty column among names.
func (r Row) Get(names ...string) string {
	for _, n := range names {
		if v := strings.TrimSpace(r[n]); v != "" {
			return v
		}
	}
	return ""
}

// ReadRows parses the first sheet of an .xlsx workbook. The first row holds
// the headers; every following non-blank row becomes a Row. Cells are read
// raw so date columns come back as spreadsheet serial numbers.
func ReadRows(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("workbook has no sheets")
	}

	matrix, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rowsFromMatrix(matrix), nil
}

func rowsFromMatrix(matrix [][]string) []Row {
	if len(matrix) == 0 {
		return nil
	}

	headers := make([]string, len(matrix[0]))
	for i, h := range matrix[0] {
		headers[i] = strings.TrimSpace(h)
	}

	var rows []Row
	for _, cells := range matrix[1:] {
		row := Row{}
		blank := true
		for i, cell := range cells {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			row[headers[i]] = cell
			if strings.TrimSpace(cell) != "" {
				blank = false
			}
		}
		if !blank {
			rows = append(rows, row)
		}
	}
	return rows
}

// fileStem strips the directory and extension from an uploaded file name.
func fileStem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
