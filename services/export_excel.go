package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateExcel creates a quote workbook from the given ExportData and
// returns the file contents as a byte slice.
func GenerateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Sheet names are capped at 31 chars and may not contain []:*?/\.
	sheetName := sanitizeSheetName(data.Business.Name)
	if sheetName == "" {
		sheetName = "Quote"
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D"}
	lastCol := columns[len(columns)-1]

	widths := []float64{6, 16, 44, 16}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	// Column header style: bold, white text, charcoal background, centered.
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	sectionStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 10},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#F0F0F0"}, Pattern: 1},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create section style: %w", err)
	}

	rowStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create row style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Header Rows (1-3) ───────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(data.Title))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
		return nil, fmt.Errorf("merge business: %w", err)
	}
	f.SetCellValue(sheetName, "A2", sanitizeExcelCell(fmt.Sprintf("%s · %s · %s", data.Business.City, data.Business.Phone, data.Business.Email)))
	f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)

	if err := f.MergeCell(sheetName, "A3", lastCol+"3"); err != nil {
		return nil, fmt.Errorf("merge date: %w", err)
	}
	f.SetCellValue(sheetName, "A3", fmt.Sprintf("Reference: %s    Date: %s", data.ReferenceNumber, data.CreatedDate))
	f.SetCellStyle(sheetName, "A3", lastCol+"3", subtitleStyle)

	// ── Lead block (rows 5-10) ──────────────────────────────────────────

	zip := data.Lead.PostalCode
	if data.LocalArea {
		zip += LocalZIPMarker
	}
	leadRows := [][2]string{
		{"Name", data.Lead.Name},
		{"Email", data.Lead.Email},
		{"Phone", data.Lead.Phone},
		{"Preferred Date", data.Lead.PreferredDate},
		{"ZIP", zip},
	}
	row := 5
	for _, lr := range leadRows {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "B"+rowStr, lr[0])
		f.SetCellValue(sheetName, "C"+rowStr, sanitizeExcelCell(lr[1]))
		row++
	}

	// ── Column Headers ──────────────────────────────────────────────────

	row++
	headerRow := fmt.Sprintf("%d", row)
	headers := []string{"#", "Category", "Item", "Amount"}
	for i, h := range headers {
		f.SetCellValue(sheetName, columns[i]+headerRow, h)
	}
	f.SetCellStyle(sheetName, "A"+headerRow, lastCol+headerRow, headerStyle)
	row++

	// ── Data Rows ───────────────────────────────────────────────────────

	section := ""
	for _, r := range data.Rows {
		if r.Section != section {
			section = r.Section
			rowStr := fmt.Sprintf("%d", row)
			if err := f.MergeCell(sheetName, "A"+rowStr, lastCol+rowStr); err != nil {
				return nil, fmt.Errorf("merge section: %w", err)
			}
			f.SetCellValue(sheetName, "A"+rowStr, section)
			f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, sectionStyle)
			row++
		}

		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+rowStr, r.Index)
		f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(r.Description))
		f.SetCellValue(sheetName, "C"+rowStr, sanitizeExcelCell(r.Item))
		f.SetCellValue(sheetName, "D"+rowStr, FormatUSD(r.Amount))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, rowStyle)
		row++
	}

	// ── Summary Rows ────────────────────────────────────────────────────

	row++
	b := data.Breakdown
	summary := [][2]string{
		{"Parts:", FormatUSD(b.Parts)},
		{"Extras:", FormatUSD(b.Extras)},
		{"Labor:", FormatUSD(b.Labor)},
		{"Subtotal:", FormatUSD(b.Subtotal)},
		{fmt.Sprintf("Sales Tax (%s):", b.TaxRate.Percent()), FormatUSD(b.Tax)},
		{"Total:", FormatUSD(b.Total)},
	}
	for _, s := range summary {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "C"+rowStr, s[0])
		f.SetCellStyle(sheetName, "C"+rowStr, "C"+rowStr, summaryLabelStyle)
		f.SetCellValue(sheetName, "D"+rowStr, s[1])
		f.SetCellStyle(sheetName, "D"+rowStr, "D"+rowStr, summaryValueStyle)
		row++
	}

	if data.Lead.Notes != "" {
		row++
		rowStr := fmt.Sprintf("%d", row)
		if err := f.MergeCell(sheetName, "A"+rowStr, lastCol+rowStr); err != nil {
			return nil, fmt.Errorf("merge notes: %w", err)
		}
		f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell("Notes: "+data.Lead.Notes))
	}

	// ── Write to buffer ─────────────────────────────────────────────────

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// sanitizeSheetName drops characters Excel forbids in sheet names and caps
// the length at 31 runes.
func sanitizeSheetName(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			continue
		}
		out = append(out, r)
		if len(out) == 31 {
			break
		}
	}
	return string(out)
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
