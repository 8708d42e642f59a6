package export

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"

	"recipekit/internal/domain"
)

// SheetName is the worksheet holding the shopping list.
const SheetName = "Shopping List"

// WriteXLSX writes the scaled ingredients as a single-sheet workbook.
func WriteXLSX(out io.Writer, recipeName string, items []domain.ScaledIngredient) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return errors.Wrap(err, "renaming sheet")
	}
	if err := f.SetDocProps(&excelize.DocProperties{Title: recipeName}); err != nil {
		return errors.Wrap(err, "setting document properties")
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return errors.Wrap(err, "writing header")
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "creating header style")
	}
	lastCol, err := excelize.ColumnNumberToName(len(Columns))
	if err != nil {
		return errors.Wrap(err, "resolving last column")
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", bold); err != nil {
		return errors.Wrap(err, "styling header")
	}

	for i, item := range items {
		cells := Row(item)
		row := make([]interface{}, len(cells))
		for j, c := range cells {
			row[j] = c
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "resolving row cell")
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return errors.Wrapf(err, "writing row %d", i+2)
		}
	}
	if err := f.SetColWidth(SheetName, "A", "A", 28); err != nil {
		return errors.Wrap(err, "sizing columns")
	}
	if err := f.SetColWidth(SheetName, "G", "G", 40); err != nil {
		return errors.Wrap(err, "sizing columns")
	}

	if _, err := f.WriteTo(out); err != nil {
		return errors.Wrap(err, "writing workbook")
	}
	return nil
}
