package services

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

func assertSameRecord(t *testing.T, got, want QuoteRecord) {
	t.Helper()
	if !got.When.Equal(want.When) {
		t.Errorf("When = %v, want %v", got.When, want.When)
	}
	got.When, want.When = time.Time{}, time.Time{}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("record mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestStructuredExport_RoundTrip(t *testing.T) {
	s := DefaultShop()

	tests := []struct {
		name string
		lead Lead
		cfg  func() Configuration
	}{
		{"sample", sampleLead(), DefaultConfiguration},
		{"empty lead", Lead{}, DefaultConfiguration},
		{
			"newlines and unicode",
			Lead{Name: "Zoë \"Z\" O'Brien", Email: "zoe@example.com", Notes: "line1\nline2\r\n\ttabbed <b>&</b> 日本語 🎮"},
			DefaultConfiguration,
		},
		{
			"max length fields",
			Lead{
				Name:  strings.Repeat("N", MaxNameLen),
				Email: strings.Repeat("e", MaxEmailLen),
				Phone: strings.Repeat("5", MaxPhoneLen),
				Notes: strings.Repeat("ñ", MaxNotesLen),
			},
			DefaultConfiguration,
		},
		{
			"preset with extras",
			sampleLead(),
			func() Configuration {
				c, _ := s.Presets.Resolve("creator4k")
				return c
			},
		},
		{
			"no extras",
			sampleLead(),
			func() Configuration {
				c := DefaultConfiguration()
				c.Extras = nil
				return c
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := s.Quote(tt.lead, tt.cfg(), fixedNow.Add(123456789*time.Nanosecond))
			if err != nil {
				t.Fatalf("Quote() error = %v", err)
			}

			data, err := ToStructuredExport(rec)
			if err != nil {
				t.Fatalf("ToStructuredExport() error = %v", err)
			}
			back, err := ParseStructuredExport(data)
			if err != nil {
				t.Fatalf("ParseStructuredExport() error = %v", err)
			}
			assertSameRecord(t, back, rec)
		})
	}
}

func TestStructuredExport_Shape(t *testing.T) {
	s := DefaultShop()
	data, err := ToStructuredExport(sampleRecord(t, s))
	if err != nil {
		t.Fatalf("ToStructuredExport() error = %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	for _, key := range []string{"company", "when", "lead", "selections", "extras", "totals"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("missing top-level key %q", key)
		}
	}
	if len(doc) != 6 {
		t.Errorf("got %d top-level keys, want 6", len(doc))
	}
	if string(doc["when"]) != `"2025-03-14T17:30:00Z"` {
		t.Errorf("when = %s", doc["when"])
	}
	if !strings.Contains(string(doc["totals"]), `"total": 980.53`) {
		t.Errorf("totals = %s", doc["totals"])
	}
	if !strings.Contains(string(doc["lead"]), `"zip": "84101"`) {
		t.Errorf("lead = %s", doc["lead"])
	}
}

func TestParseStructuredExport_Rejects(t *testing.T) {
	s := DefaultShop()
	good, err := ToStructuredExport(sampleRecord(t, s))
	if err != nil {
		t.Fatalf("ToStructuredExport() error = %v", err)
	}

	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"not json", "hello"},
		{"truncated", string(good[:len(good)/2])},
		{"array", "[]"},
		{"trailing data", string(good) + `{"x":1}`},
		{"unknown key", strings.Replace(string(good), `"company"`, `"extra": 1, "company"`, 1)},
		{"missing when", strings.Replace(string(good), `"when": "2025-03-14T17:30:00Z",`, "", 1)},
		{"bad when", strings.Replace(string(good), `2025-03-14T17:30:00Z`, `yesterday`, 1)},
		{"missing totals", `{"company":"UtahPCs","when":"2025-03-14T17:30:00Z","lead":{},"selections":{},"extras":[]}`},
		{"tampered total", strings.Replace(string(good), `"total": 980.53`, `"total": 1.00`, 1)},
		{"float cents", strings.Replace(string(good), `"total": 980.53`, `"total": 980.531`, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStructuredExport([]byte(tt.input))
			var serr *SerializationError
			if !errors.As(err, &serr) {
				t.Fatalf("ParseStructuredExport() error = %v, want *SerializationError", err)
			}
		})
	}
}

func TestExportFilename(t *testing.T) {
	r := QuoteRecord{Company: "Utah PCs: West"}
	if got := ExportFilename(r, "json"); got != "Utah-PCs--West-build-request.json" {
		t.Errorf("ExportFilename() = %q", got)
	}
	if got := ExportFilename(QuoteRecord{}, "pdf"); got != "quote-build-request.pdf" {
		t.Errorf("ExportFilename(empty) = %q", got)
	}
}
