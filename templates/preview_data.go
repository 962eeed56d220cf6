// Package templates holds the templ components for the HTML quote preview.
package templates

import (
	"fmt"
	"maps"
	"slices"

	"pcquote/services"
)

// QuotePreviewData is everything the preview renders. Document rows and
// totals come from services.BuildExportData so the page, the PDF and the
// workbook always agree.
type QuotePreviewData struct {
	Document   services.ExportData
	Territory  services.TerritoryStatus
	LeadErrors map[string]string
	Presets    []services.PresetSummary
	Preset     string
	Text       string
}

type leadRow struct {
	Label string
	Value string
	Local bool
	Error string
}

// leadRows lists the contact fields in display order with their error, if any.
func leadRows(data QuotePreviewData) []leadRow {
	lead := data.Document.Lead
	errs := data.LeadErrors
	return []leadRow{
		{Label: "Name", Value: lead.Name, Error: errs["name"]},
		{Label: "Email", Value: lead.Email, Error: errs["email"]},
		{Label: "Phone", Value: lead.Phone, Error: errs["phone"]},
		{Label: "Preferred Date", Value: lead.PreferredDate, Error: errs["date"]},
		{Label: "ZIP", Value: lead.PostalCode, Local: data.Document.LocalArea, Error: errs["zip"]},
	}
}

// otherLeadErrors returns the messages for fields without a row of their
// own, e.g. notes, sorted by field name.
func otherLeadErrors(errs map[string]string) []string {
	var out []string
	for _, k := range slices.Sorted(maps.Keys(errs)) {
		switch k {
		case "name", "email", "phone", "date", "zip":
		default:
			out = append(out, errs[k])
		}
	}
	return out
}

type lineGroup struct {
	Section string
	Rows    []services.ExportRow
}

// lineGroups splits the document rows into consecutive runs of one section.
func lineGroups(rows []services.ExportRow) []lineGroup {
	var groups []lineGroup
	for _, r := range rows {
		if n := len(groups); n == 0 || groups[n-1].Section != r.Section {
			groups = append(groups, lineGroup{Section: r.Section})
		}
		groups[len(groups)-1].Rows = append(groups[len(groups)-1].Rows, r)
	}
	return groups
}

type totalLine struct {
	Label  string
	Amount string
}

// totalLines lists the summary rows above the grand total.
func totalLines(b services.PriceBreakdown) []totalLine {
	return []totalLine{
		{"Parts", services.FormatUSD(b.Parts)},
		{"Extras", services.FormatUSD(b.Extras)},
		{"Labor", services.FormatUSD(b.Labor)},
		{"Estimate (pre-tax)", services.FormatUSD(b.Subtotal)},
		{fmt.Sprintf("Tax (%s)", b.TaxRate.Percent()), services.FormatUSD(b.Tax)},
	}
}
