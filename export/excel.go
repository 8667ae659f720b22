package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"curtainpro-backend/draft"
)

// excel column headers in sheet order.
var excelHeaders = []string{
	"#", "Window", "Stitch Type", "Width (inches)", "Height (inches)",
	"Lining", "Quantity", "Track (ft)", "SQFT", "Panels",
}

// RenderXLSX produces the workshop spreadsheet: one row per window entry and
// a totals row using the draft summation rule. Inapplicable derived fields
// are left as empty cells.
func RenderXLSX(customer draft.CustomerRef, entries []draft.Entry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Order"
	f.SetSheetName("Sheet1", sheet)

	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"Customer", customer.Name, "Phone", customer.Phone}); err != nil {
		return nil, fmt.Errorf("failed to write customer row: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A3", headerRow()); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, e := range entries {
		row := []interface{}{
			i + 1,
			e.WindowName,
			string(e.Stitch),
			e.WidthIn,
			e.HeightIn,
			string(e.Lining),
			e.Quantity,
			optionalCell(e.TrackFeet),
			optionalCell(e.SQFT),
			optionalIntCell(e.Panels),
		}
		cell, _ := excelize.CoordinatesToCellName(1, 4+i)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write entry row %d: %w", i, err)
		}
	}

	totals := draft.SumEntries(entries)
	totalsRow := []interface{}{
		"", "Totals", "", "", "", "",
		totals.Quantity, totals.TrackFeet, totals.SQFT, totals.Panels,
	}
	cell, _ := excelize.CoordinatesToCellName(1, 5+len(entries))
	if err := f.SetSheetRow(sheet, cell, &totalsRow); err != nil {
		return nil, fmt.Errorf("failed to write totals row: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}

func headerRow() *[]interface{} {
	row := make([]interface{}, len(excelHeaders))
	for i, h := range excelHeaders {
		row[i] = h
	}
	return &row
}

func optionalCell(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func optionalIntCell(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
