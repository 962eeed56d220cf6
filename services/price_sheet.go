package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExtraCategory is the Category column value that marks an add-on row.
const ExtraCategory = "extra"

// priceSheetHeaders is the column layout shared by import and export.
var priceSheetHeaders = []string{"Category", "ID", "Label", "Price"}

// RowError represents a single field-level error on one row.
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// PriceSheet is the result of parsing an uploaded price list.
type PriceSheet struct {
	FileName  string                     `json:"fileName"`
	TotalRows int                        `json:"totalRows"`
	ValidRows int                        `json:"validRows"`
	ErrorRows int                        `json:"errorRows"`
	Errors    []RowError                 `json:"errors"`
	Tiers     map[Category][]CatalogItem `json:"tiers"`
	Extras    []ExtraItem                `json:"extras"`
}

// Catalog builds a catalog from the parsed rows. A sheet with row errors is
// refused as a whole.
func (p *PriceSheet) Catalog(labor Labor, rate TaxRate) (*Catalog, error) {
	if len(p.Errors) > 0 {
		return nil, fmt.Errorf("price sheet %s: %d row(s) with errors, first: row %d %s: %s",
			p.FileName, p.ErrorRows, p.Errors[0].Row, p.Errors[0].Field, p.Errors[0].Message)
	}
	return NewCatalog(p.Tiers, p.Extras, labor, rate)
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the first sheet.
func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return rows[0], rows[1:], nil
}

// mapHeaders returns the column index of each expected header, matched
// case-insensitively, and the names of any expected headers that are missing.
func mapHeaders(headers []string) (map[string]int, []string) {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		norm = strings.TrimSpace(strings.TrimSuffix(norm, " *"))
		if _, dup := index[norm]; !dup {
			index[norm] = i
		}
	}

	cols := make(map[string]int, len(priceSheetHeaders))
	var missing []string
	for _, want := range priceSheetHeaders {
		i, ok := index[strings.ToLower(want)]
		if !ok {
			missing = append(missing, want)
			continue
		}
		cols[want] = i
	}
	return cols, missing
}

// ParsePriceSheet parses and validates an uploaded price list. File-level
// problems (format, missing columns) are returned as an error; row-level
// problems are collected in PriceSheet.Errors so they can all be reported.
func ParsePriceSheet(file io.Reader, fileName string) (*PriceSheet, error) {
	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseExcel(file)
	default:
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	cols, missing := mapHeaders(headers)
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing column(s): %s", strings.Join(missing, ", "))
	}

	result := &PriceSheet{
		FileName: fileName,
		Tiers:    make(map[Category][]CatalogItem, len(Categories)),
	}

	seen := make(map[string]int)
	cell := func(row []string, name string) string {
		i := cols[name]
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row

		category := strings.ToLower(cell(row, "Category"))
		id := cell(row, "ID")
		label := cell(row, "Label")
		priceText := cell(row, "Price")

		if category == "" && id == "" && label == "" && priceText == "" {
			continue
		}
		result.TotalRows++

		var rowErrors []RowError
		addErr := func(field, msg string) {
			rowErrors = append(rowErrors, RowError{Row: rowNum, Field: field, Message: msg})
		}

		cat, isCategory := ParseCategory(category)
		if category != ExtraCategory && !isCategory {
			addErr("Category", fmt.Sprintf("unknown category %q", category))
		}
		if id == "" {
			addErr("ID", "ID is required")
		} else if first, dup := seen[category+"/"+id]; dup {
			addErr("ID", fmt.Sprintf("duplicate of row %d", first))
		} else {
			seen[category+"/"+id] = rowNum
		}
		if label == "" {
			addErr("Label", "Label is required")
		}
		price, err := parseSheetPrice(priceText)
		if err != nil {
			addErr("Price", err.Error())
		}

		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			result.ErrorRows++
			continue
		}

		if category == ExtraCategory {
			result.Extras = append(result.Extras, ExtraItem{ID: id, Label: label, Price: price})
		} else {
			result.Tiers[cat] = append(result.Tiers[cat], CatalogItem{ID: id, Label: label, Price: price})
		}
	}

	result.ValidRows = result.TotalRows - result.ErrorRows
	return result, nil
}

// parseSheetPrice accepts "$1,234.50" style values as well as bare numbers.
func parseSheetPrice(s string) (Cents, error) {
	if s == "" {
		return 0, fmt.Errorf("Price is required")
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	c, err := ParseCents(s)
	if err != nil {
		return 0, fmt.Errorf("Price must be a dollar amount with at most two decimals")
	}
	if c < 0 {
		return 0, fmt.Errorf("Price must not be negative")
	}
	return c, nil
}

// GeneratePriceSheet writes the catalog as an xlsx price list that
// ParsePriceSheet reads back unchanged.
func GeneratePriceSheet(cat *Catalog) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Prices"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	columns := []string{"A", "B", "C", "D"}
	widths := []float64{12, 14, 44, 12}
	for i, h := range priceSheetHeaders {
		f.SetCellValue(sheet, columns[i]+"1", h)
		f.SetColWidth(sheet, columns[i], columns[i], widths[i])
	}
	f.SetCellStyle(sheet, "A1", "D1", headerStyle)

	row := 2
	write := func(category, id, label string, price Cents) {
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "A"+r, category)
		f.SetCellValue(sheet, "B"+r, sanitizeExcelCell(id))
		f.SetCellValue(sheet, "C"+r, sanitizeExcelCell(label))
		f.SetCellValue(sheet, "D"+r, price.String())
		row++
	}

	for _, c := range Categories {
		for _, it := range cat.Items(c) {
			write(string(c), it.ID, it.Label, it.Price)
		}
	}
	for _, x := range cat.Extras() {
		write(ExtraCategory, x.ID, x.Label, x.Price)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write price sheet: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateErrorReport creates a downloadable .xlsx file from row errors.
func GenerateErrorReport(errors []RowError) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Errors"
	defaultSheet := f.GetSheetName(0)
	f.SetSheetName(defaultSheet, sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DC2626"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})

	f.SetCellValue(sheet, "A1", "Row #")
	f.SetCellValue(sheet, "B1", "Field")
	f.SetCellValue(sheet, "C1", "Error")
	f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 22)
	f.SetColWidth(sheet, "C", "C", 55)

	for i, e := range errors {
		row := fmt.Sprintf("%d", i+2)
		f.SetCellValue(sheet, "A"+row, e.Row)
		f.SetCellValue(sheet, "B"+row, e.Field)
		f.SetCellValue(sheet, "C"+row, sanitizeExcelCell(e.Message))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write error report: %w", err)
	}
	return buf.Bytes(), nil
}
