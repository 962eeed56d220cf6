package services

import (
	"bytes"
	"testing"
	"time"
)

// bytesReader wraps a byte slice in a bytes.Reader for use with excelize.OpenReader.
func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

var fixedNow = time.Date(2025, 3, 14, 17, 30, 0, 0, time.UTC)

func sampleLead() Lead {
	return Lead{
		Name:          "Jane Doe",
		Email:         "jane@example.com",
		Phone:         "(801) 555-0100",
		PreferredDate: "2025-04-01",
		PostalCode:    "84101",
		Notes:         "Quiet build please",
	}
}

// sampleRecord prices the default configuration for sampleLead at fixedNow.
func sampleRecord(t *testing.T, s *Shop) QuoteRecord {
	t.Helper()
	r, err := s.Quote(sampleLead(), DefaultConfiguration(), fixedNow)
	if err != nil {
		t.Fatalf("Quote() error = %v", err)
	}
	return r
}

func mustExportData(t *testing.T, s *Shop, r QuoteRecord) ExportData {
	t.Helper()
	data, err := BuildExportData(s, r)
	if err != nil {
		t.Fatalf("BuildExportData() error = %v", err)
	}
	return data
}
