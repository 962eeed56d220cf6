package services

import (
	"strings"
	"testing"
)

func TestGeneratePDF_Quote(t *testing.T) {
	s := DefaultShop()
	data := mustExportData(t, s, sampleRecord(t, s))

	result, err := GeneratePDF(data)
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GeneratePDF() returned empty bytes")
	}
	// PDF files start with %PDF
	if len(result) > 4 && string(result[:5]) != "%PDF-" {
		t.Errorf("result does not start with PDF header, got %q", string(result[:5]))
	}
}

func TestGeneratePDF_EmptyRows(t *testing.T) {
	data := ExportData{
		Title:       "Empty Quote",
		CreatedDate: "15 Jan 2025",
		Rows:        []ExportRow{},
	}

	result, err := GeneratePDF(data)
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GeneratePDF() returned empty bytes")
	}
}

func TestGeneratePDF_LongNotes(t *testing.T) {
	s := DefaultShop()
	r := sampleRecord(t, s)
	r.Lead.Notes = strings.Repeat("Please use white fans. ", 200)

	result, err := GeneratePDF(mustExportData(t, s, r))
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if string(result[:5]) != "%PDF-" {
		t.Errorf("result does not start with PDF header")
	}
}
