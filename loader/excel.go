package loader

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/poiesic/docsift/core"
	"github.com/xuri/excelize/v2"
)

// excelLoader emits one unit per data row across every sheet. The first row
// of each sheet supplies the column headers; rows with no non-empty cell
// are skipped.
type excelLoader struct{}

func (l *excelLoader) Load(path string) ([]core.Unit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	wb, err := excelize.OpenReader(f)
	if err != nil {
		return nil, fmt.Errorf("parsing workbook: %w", err)
	}
	defer wb.Close()

	var units []core.Unit
	for _, sheet := range wb.GetSheetList() {
		rows, err := wb.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
		}
		units = append(units, rowUnits(rows, core.Metadata{
			core.MetaSheet:        sheet,
			core.MetaDocumentType: "spreadsheet",
		})...)
	}
	return units, nil
}

// csvLoader treats a CSV file as a single-sheet workbook.
type csvLoader struct{}

func (l *csvLoader) Load(path string) ([]core.Unit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}

	return rowUnits(rows, core.Metadata{core.MetaDocumentType: "csv"}), nil
}

// rowUnits converts a header row plus data rows into per-row table units.
// Row numbers are 1-based over data rows.
func rowUnits(rows [][]string, base core.Metadata) []core.Unit {
	if len(rows) < 2 {
		return nil
	}

	headers := rows[0]
	var units []core.Unit
	for i, row := range rows[1:] {
		content := serializeRecord(headers, row)
		if content == "" {
			continue
		}
		meta := base.Clone()
		meta[core.MetaIsTable] = true
		meta[core.MetaRow] = i + 1
		units = append(units, core.NewUnit(content, meta))
	}
	return units
}
