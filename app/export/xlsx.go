// Package export renders notes as spreadsheets.
package export

import (
	"fmt"

	"github.com/mytheresa/inventory-notes/models"
	"github.com/xuri/excelize/v2"
)

// ContentType is the media type of the rendered workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HeaderRows is the number of rows written before the first line:
// three summary rows, a blank row and the column titles.
const HeaderRows = 5

type Renderer interface {
	Render(note *models.Note) ([]byte, error)
}

// XLSXRenderer writes a note as a single sheet workbook.
type XLSXRenderer struct{}

// SheetName is the title of the sheet holding note, e.g. "Inbound Note".
func SheetName(note *models.Note) string {
	return note.Kind.Title() + " Note"
}

func (XLSXRenderer) Render(note *models.Note) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(note)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, err
	}

	rows := [][]any{
		{"Note ID", note.NoteID},
		{"Total Products", note.TotalQuantity.InexactFloat64()},
		{"Total Price", note.TotalPrice.InexactFloat64()},
		nil,
		{"Product Name", "Quantity", "Unit Price", "Total Price"},
	}
	for _, line := range note.Products {
		rows = append(rows, []any{
			line.Name,
			line.Quantity.InexactFloat64(),
			line.UnitPrice.InexactFloat64(),
			line.Quantity.Mul(line.UnitPrice).InexactFloat64(),
		})
	}

	for i, row := range rows {
		if row == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
