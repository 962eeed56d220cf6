package services

import (
	"strings"
	"time"
)

// QuoteRecord is the immutable snapshot handed to mail and download exports.
type QuoteRecord struct {
	Company       string
	When          time.Time
	Lead          Lead
	Configuration Configuration
	Breakdown     PriceBreakdown
}

// ToRecord assembles a QuoteRecord. A zero now means the system clock.
// The time is kept in UTC without its monotonic reading, and the
// configuration is copied so later edits by the caller do not leak in.
func (s *Shop) ToRecord(lead Lead, cfg Configuration, breakdown PriceBreakdown, now time.Time) QuoteRecord {
	if now.IsZero() {
		now = time.Now()
	}
	snap := cfg.Clone()
	if snap.Selection == nil {
		snap.Selection = map[Category]string{}
	}
	if snap.Extras == nil {
		snap.Extras = []string{}
	}
	return QuoteRecord{
		Company:       s.Business.Name,
		When:          now.UTC().Round(0),
		Lead:          lead,
		Configuration: snap,
		Breakdown:     breakdown,
	}
}

// MailSubject returns "<business> Build Request — <name>", falling back to
// "New Lead" when the sanitized name is empty.
func (s *Shop) MailSubject(r QuoteRecord) string {
	name := SanitizeField(r.Lead.Name, MaxNameLen)
	if name == "" {
		name = "New Lead"
	}
	return SanitizeField(s.Business.Name, MaxNameLen) + " Build Request — " + name
}

// ToDisplayText renders the line-oriented summary used as a mail body.
// The line order is fixed: contact fields, the configuration, extras, the
// totals and finally the notes. Lead text is sanitized first.
func (s *Shop) ToDisplayText(r QuoteRecord) string {
	lead := r.Lead.Sanitized()

	zip := lead.PostalCode
	if s.Territory.IsInTerritory(zip) {
		zip += LocalZIPMarker
	}

	lines := []string{
		"Name: " + lead.Name,
		"Email: " + lead.Email,
		"Phone: " + lead.Phone,
		"Preferred Date: " + lead.PreferredDate,
		"ZIP: " + zip,
		"",
		"Configuration:",
	}
	for _, c := range Categories {
		lines = append(lines, c.Label()+": "+s.itemLabel(c, r.Configuration.Selection[c]))
	}
	lines = append(lines,
		"Extras: "+s.extrasText(r.Configuration),
		"",
		"Estimate (pre-tax): "+FormatPlainUSD(r.Breakdown.Subtotal),
		"Tax: "+FormatPlainUSD(r.Breakdown.Tax),
		"Total: "+FormatPlainUSD(r.Breakdown.Total),
		"",
		"Notes: "+lead.Notes,
	)
	return strings.Join(lines, "\n")
}

// itemLabel falls back to the raw id for records priced against an older catalog.
func (s *Shop) itemLabel(c Category, id string) string {
	it, err := s.Catalog.Item(c, id)
	if err != nil {
		return SanitizeField(id, MaxNameLen)
	}
	return it.Label
}

// extrasText joins the selected extras' labels in catalog order, or "None".
func (s *Shop) extrasText(cfg Configuration) string {
	var labels []string
	for _, x := range s.Catalog.Extras() {
		if cfg.HasExtra(x.ID) {
			labels = append(labels, x.Label)
		}
	}
	if len(labels) == 0 {
		return "None"
	}
	return strings.Join(labels, ", ")
}
