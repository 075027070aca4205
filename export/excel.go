package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const SheetName = "Aging Report"

// ExcelRenderer writes a single-sheet workbook: a merged heading row, a
// merged subtitle row, the column header, the rows and a totals row.
type ExcelRenderer struct{}

func (ExcelRenderer) Render(_ context.Context, r Report) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	ncols := len(r.Columns)
	if ncols == 0 {
		ncols = 1
	}
	lastCol, err := excelize.ColumnNumberToName(ncols)
	if err != nil {
		return nil, err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Italic: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, err
	}
	numFmt := "#,##0.00"
	amountStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return nil, err
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, CustomNumFmt: &numFmt})
	if err != nil {
		return nil, err
	}

	for row, text := range []string{r.Heading(), r.Subtitle()} {
		style := titleStyle
		if row == 1 {
			style = subtitleStyle
		}
		first := fmt.Sprintf("A%d", row+1)
		if err := f.SetCellValue(SheetName, first, text); err != nil {
			return nil, err
		}
		if ncols > 1 {
			if err := f.MergeCell(SheetName, first, fmt.Sprintf("%s%d", lastCol, row+1)); err != nil {
				return nil, err
			}
		}
		if err := f.SetCellStyle(SheetName, first, first, style); err != nil {
			return nil, err
		}
	}

	const headerRow = 3
	for i, c := range r.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		if err := f.SetCellValue(SheetName, cell, c.Label); err != nil {
			return nil, err
		}
		name, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(SheetName, name, name, 16)
	}
	if len(r.Columns) > 0 {
		end, _ := excelize.CoordinatesToCellName(len(r.Columns), headerRow)
		if err := f.SetCellStyle(SheetName, "A3", end, headerStyle); err != nil {
			return nil, err
		}
	}

	for i, row := range r.Rows {
		line := headerRow + 1 + i
		for j, c := range r.Columns {
			cell, _ := excelize.CoordinatesToCellName(j+1, line)
			if c.Numeric() {
				if err := f.SetCellFloat(SheetName, cell, c.Amount(row), 2, 64); err != nil {
					return nil, err
				}
				if err := f.SetCellStyle(SheetName, cell, cell, amountStyle); err != nil {
					return nil, err
				}
				continue
			}
			if err := f.SetCellValue(SheetName, cell, c.Text(row)); err != nil {
				return nil, err
			}
		}
	}

	totalLine := headerRow + 1 + len(r.Rows)
	for j, c := range r.Columns {
		cell, _ := excelize.CoordinatesToCellName(j+1, totalLine)
		if j == 0 && !c.Numeric() {
			if err := f.SetCellValue(SheetName, cell, "Total"); err != nil {
				return nil, err
			}
		}
		if !c.Numeric() {
			continue
		}
		if err := f.SetCellFloat(SheetName, cell, r.Totals[c.Key], 2, 64); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(SheetName, cell, cell, totalStyle); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
