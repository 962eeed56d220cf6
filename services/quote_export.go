package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

// quoteDocument is the downloaded request file. Its top-level keys are a
// compatibility contract with existing consumers; do not rename them.
type quoteDocument struct {
	Company    string              `json:"company"`
	When       string              `json:"when"`
	Lead       Lead                `json:"lead"`
	Selections map[Category]string `json:"selections"`
	Extras     []string            `json:"extras"`
	Totals     *PriceBreakdown     `json:"totals"`
}

// ToStructuredExport serializes the full record as indented JSON.
func ToStructuredExport(r QuoteRecord) ([]byte, error) {
	doc := quoteDocument{
		Company:    r.Company,
		When:       r.When.UTC().Format(time.RFC3339Nano),
		Lead:       r.Lead,
		Selections: r.Configuration.Selection,
		Extras:     r.Configuration.Extras,
		Totals:     &r.Breakdown,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, &SerializationError{Op: "encode", Err: err}
	}
	return buf.Bytes(), nil
}

// ParseStructuredExport is the inverse of ToStructuredExport. Unknown keys,
// trailing data, a missing timestamp or totals, and totals that do not add
// up are all rejected so a damaged file is never taken as a valid quote.
func ParseStructuredExport(data []byte) (QuoteRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc quoteDocument
	if err := dec.Decode(&doc); err != nil {
		return QuoteRecord{}, &SerializationError{Op: "decode", Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return QuoteRecord{}, &SerializationError{Op: "decode", Err: fmt.Errorf("unexpected data after document")}
	}

	if doc.When == "" {
		return QuoteRecord{}, &SerializationError{Op: "decode", Err: fmt.Errorf("missing \"when\"")}
	}
	when, err := time.Parse(time.RFC3339Nano, doc.When)
	if err != nil {
		return QuoteRecord{}, &SerializationError{Op: "decode", Err: fmt.Errorf("invalid \"when\": %w", err)}
	}
	if doc.Totals == nil {
		return QuoteRecord{}, &SerializationError{Op: "decode", Err: fmt.Errorf("missing \"totals\"")}
	}
	if !doc.Totals.Consistent() {
		return QuoteRecord{}, &SerializationError{Op: "decode", Err: fmt.Errorf("totals do not add up")}
	}

	return QuoteRecord{
		Company: doc.Company,
		When:    when.UTC(),
		Lead:    doc.Lead,
		Configuration: Configuration{
			Selection: doc.Selections,
			Extras:    doc.Extras,
		},
		Breakdown: *doc.Totals,
	}, nil
}

// ExportFilename returns the download name for a record in the given extension,
// e.g. "UtahPCs-build-request.json".
func ExportFilename(r QuoteRecord, ext string) string {
	name := SanitizeFilename(r.Company)
	if name == "" {
		name = "quote"
	}
	return name + "-build-request." + ext
}
