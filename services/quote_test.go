package services

import (
	"strings"
	"testing"
	"time"
)

func TestToDisplayText_Layout(t *testing.T) {
	s := DefaultShop()
	got := s.ToDisplayText(sampleRecord(t, s))

	want := strings.Join([]string{
		"Name: Jane Doe",
		"Email: jane@example.com",
		"Phone: (801) 555-0100",
		"Preferred Date: 2025-04-01",
		"ZIP: 84101 (UT local)",
		"",
		"Configuration:",
		"CPU: Ryzen 5 / Core i5",
		"GPU: Integrated / None",
		"RAM: 16GB DDR5",
		"Storage: 1TB NVMe SSD",
		"Case: Airflow Mid Tower",
		"PSU: 650W 80+ Gold",
		"Extras: Windows install & license",
		"",
		"Estimate (pre-tax): $910.00",
		"Tax: $70.53",
		"Total: $980.53",
		"",
		"Notes: Quiet build please",
	}, "\n")
	if got != want {
		t.Errorf("ToDisplayText() =\n%s\nwant\n%s", got, want)
	}
}

func TestToDisplayText_ExtrasAndZip(t *testing.T) {
	s := DefaultShop()

	cfg := DefaultConfiguration()
	cfg.Extras = []string{"delivery", "rgb"}
	lead := sampleLead()
	lead.PostalCode = "90210"

	r, err := s.Quote(lead, cfg, fixedNow)
	if err != nil {
		t.Fatalf("Quote() error = %v", err)
	}
	text := s.ToDisplayText(r)

	if !strings.Contains(text, "\nExtras: RGB fans / strips, Local delivery & setup\n") {
		t.Errorf("extras not listed in catalog order:\n%s", text)
	}
	if !strings.Contains(text, "\nZIP: 90210\n") {
		t.Errorf("out-of-territory ZIP should not be marked local:\n%s", text)
	}

	cfg.Extras = nil
	r, _ = s.Quote(lead, cfg, fixedNow)
	if !strings.Contains(s.ToDisplayText(r), "\nExtras: None\n") {
		t.Error("no extras should render as None")
	}
}

func TestToDisplayText_SanitizesLead(t *testing.T) {
	s := DefaultShop()
	lead := sampleLead()
	lead.Name = "Eve\r\nBcc: victim@example.com"
	lead.Notes = "line one\nline two\n" + strings.Repeat("z", 3000)

	r, err := s.Quote(lead, DefaultConfiguration(), fixedNow)
	if err != nil {
		t.Fatalf("Quote() error = %v", err)
	}
	text := s.ToDisplayText(r)
	lines := strings.Split(text, "\n")

	if len(lines) != 20 {
		t.Fatalf("display text has %d lines, want 20:\n%s", len(lines), text)
	}
	if lines[0] != "Name: Eve  Bcc: victim@example.com" {
		t.Errorf("name line = %q", lines[0])
	}
	notes := strings.TrimPrefix(lines[19], "Notes: ")
	if n := len([]rune(notes)); n != MaxNotesLen {
		t.Errorf("notes length = %d, want %d", n, MaxNotesLen)
	}
}

func TestMailSubject(t *testing.T) {
	s := DefaultShop()
	r := sampleRecord(t, s)

	if got := s.MailSubject(r); got != "UtahPCs Build Request — Jane Doe" {
		t.Errorf("MailSubject() = %q", got)
	}

	r.Lead.Name = "  \n "
	if got := s.MailSubject(r); got != "UtahPCs Build Request — New Lead" {
		t.Errorf("MailSubject(blank name) = %q", got)
	}

	r.Lead.Name = "Mallory\r\nBcc: x@example.com"
	if got := s.MailSubject(r); strings.ContainsAny(got, "\r\n") {
		t.Errorf("MailSubject() kept a line break: %q", got)
	}
}

func TestToRecord_Snapshot(t *testing.T) {
	s := DefaultShop()
	cfg := DefaultConfiguration()
	b, _ := s.Breakdown(cfg)

	local := time.Date(2025, 3, 14, 10, 30, 0, 0, time.FixedZone("MST", -7*3600))
	r := s.ToRecord(sampleLead(), cfg, b, local)

	cfg.Selection[CategoryCPU] = "r9"
	cfg.Extras[0] = "rush"
	if r.Configuration.Selection[CategoryCPU] != "r5" || r.Configuration.Extras[0] != "os" {
		t.Error("record shares memory with the caller's configuration")
	}
	if r.Company != "UtahPCs" {
		t.Errorf("Company = %q", r.Company)
	}
	if !r.When.Equal(local) || r.When.Location() != time.UTC {
		t.Errorf("When = %v, want %v in UTC", r.When, local)
	}

	before := time.Now()
	r = s.ToRecord(Lead{}, Configuration{}, b, time.Time{})
	if r.When.Before(before.Add(-time.Second)) {
		t.Errorf("zero now should use the clock, got %v", r.When)
	}
	if r.Configuration.Selection == nil || r.Configuration.Extras == nil {
		t.Error("empty configuration should snapshot as empty, not nil")
	}
}

func TestShopQuote_InvalidConfiguration(t *testing.T) {
	s := DefaultShop()
	cfg := DefaultConfiguration()
	cfg.Selection[CategoryCase] = "cardboard"
	if _, err := s.Quote(sampleLead(), cfg, fixedNow); err == nil {
		t.Error("Quote() accepted an unknown case")
	}
}

func TestToDisplayText_UnknownItemFallsBackToID(t *testing.T) {
	s := DefaultShop()
	r := sampleRecord(t, s)
	r.Configuration.Selection[CategoryGPU] = "retired-gpu"
	if !strings.Contains(s.ToDisplayText(r), "\nGPU: retired-gpu\n") {
		t.Error("unknown item id not shown verbatim")
	}
}
