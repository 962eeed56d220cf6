package services

import (
	"strconv"
	"strings"
)

// ExportRow is a single priced line in a quote document.
type ExportRow struct {
	Section     string // "Parts", "Extras" or "Labor"
	Index       string // "1", "2" ... within the section
	Description string // category label for parts, blank otherwise
	Item        string
	Amount      Cents
}

// ExportData holds everything a quote document needs, already resolved to
// labels so the generators never touch the catalog.
type ExportData struct {
	Title           string
	ReferenceNumber string
	Business        Business
	CreatedDate     string
	Lead            Lead
	LocalArea       bool
	Rows            []ExportRow
	Breakdown       PriceBreakdown
}

// BuildExportData resolves a record against the shop into document rows:
// one per category, one per selected extra, then the two labor fees.
func BuildExportData(s *Shop, r QuoteRecord) (ExportData, error) {
	ref, err := QuoteNumber(r)
	if err != nil {
		return ExportData{}, err
	}
	lead := r.Lead.Sanitized()

	var rows []ExportRow
	for i, c := range Categories {
		id := r.Configuration.Selection[c]
		row := ExportRow{Section: "Parts", Index: strconv.Itoa(i + 1), Description: c.Label(), Item: id}
		if it, err := s.Catalog.Item(c, id); err == nil {
			row.Item = it.Label
			row.Amount = it.Price
		}
		rows = append(rows, row)
	}

	n := 0
	for _, x := range s.Catalog.Extras() {
		if !r.Configuration.HasExtra(x.ID) {
			continue
		}
		n++
		rows = append(rows, ExportRow{Section: "Extras", Index: strconv.Itoa(n), Item: x.Label, Amount: x.Price})
	}

	rows = append(rows,
		ExportRow{Section: "Labor", Index: "1", Item: "Assembly, testing & optimization", Amount: s.Catalog.BaseLaborFee()},
		ExportRow{Section: "Labor", Index: "2", Item: "OS install & tuning", Amount: s.Catalog.OSTuningFee()},
	)

	return ExportData{
		Title:           s.MailSubject(r),
		ReferenceNumber: ref,
		Business:        s.Business,
		CreatedDate:     r.When.Format("02 Jan 2006"),
		Lead:            lead,
		LocalArea:       s.Territory.IsInTerritory(lead.PostalCode),
		Rows:            rows,
		Breakdown:       r.Breakdown,
	}, nil
}

// SanitizeFilename removes characters that are unsafe for filenames.
func SanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	s = strings.ReplaceAll(s, "\"", "")
	return SanitizeField(s, 64)
}
