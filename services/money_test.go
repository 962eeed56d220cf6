package services

import (
	"encoding/json"
	"testing"
)

func TestCentsString(t *testing.T) {
	tests := []struct {
		name  string
		input Cents
		want  string
	}{
		{"zero", 0, "0.00"},
		{"one cent", 1, "0.01"},
		{"whole dollars", 20000, "200.00"},
		{"total", 98053, "980.53"},
		{"negative", -150, "-1.50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.input.String(); got != tt.want {
				t.Errorf("Cents(%d).String() = %q, want %q", int64(tt.input), got, tt.want)
			}
		})
	}
}

func TestParseCents(t *testing.T) {
	tests := []struct {
		input   string
		want    Cents
		wantErr bool
	}{
		{"200", 20000, false},
		{"70.53", 7053, false},
		{"1.5", 150, false},
		{"-1.5", -150, false},
		{" 45.00 ", 4500, false},
		{"0.001", 0, true},
		{"", 0, true},
		{"1.", 0, true},
		{".5", 0, true},
		{"1e3", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCents(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCents(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCents(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestCentsJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Total Cents `json:"total"`
	}{98053})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(b) != `{"total":980.53}` {
		t.Errorf("Marshal() = %s", b)
	}

	var back struct {
		Total Cents `json:"total"`
	}
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back.Total != 98053 {
		t.Errorf("Unmarshal() total = %d, want 98053", back.Total)
	}
}

func TestCentsFromDollars(t *testing.T) {
	if got := CentsFromDollars(0.1 + 0.2); got != 30 {
		t.Errorf("CentsFromDollars(0.1+0.2) = %d, want 30", got)
	}
	if got := Cents(12345).Dollars(); got != 123.45 {
		t.Errorf("Dollars() = %v, want 123.45", got)
	}
}

func TestTaxRateApply(t *testing.T) {
	rate := TaxRate(77500)
	tests := []struct {
		name   string
		amount Cents
		want   Cents
	}{
		{"worked example", 91000, 7053},
		{"zero amount", 0, 0},
		{"half cent rounds up", 200, 16}, // 15.5
		{"above half rounds up", 100, 8}, // 7.75
		{"below half rounds down", 3, 0}, // 0.2325
		{"negative rounds away from zero", -200, -16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rate.Apply(tt.amount); got != tt.want {
				t.Errorf("Apply(%d) = %d, want %d", tt.amount, got, tt.want)
			}
		})
	}

	if got := TaxRate(0).Apply(91000); got != 0 {
		t.Errorf("zero rate Apply() = %d, want 0", got)
	}
}

func TestParseTaxRate(t *testing.T) {
	tests := []struct {
		input   string
		want    TaxRate
		wantErr bool
	}{
		{"0.0775", 77500, false},
		{"0", 0, false},
		{"0.1", 100000, false},
		{"1", 1000000, false},
		{"0.0000001", 0, true},
		{"-0.05", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTaxRate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTaxRate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTaxRate(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestTaxRateFormatting(t *testing.T) {
	r := TaxRateFromFraction(0.0775)
	if r != 77500 {
		t.Fatalf("TaxRateFromFraction(0.0775) = %d", r)
	}
	if got := r.String(); got != "0.0775" {
		t.Errorf("String() = %q, want 0.0775", got)
	}
	if got := r.Percent(); got != "7.75%" {
		t.Errorf("Percent() = %q, want 7.75%%", got)
	}
	if got := TaxRate(0).String(); got != "0" {
		t.Errorf("zero String() = %q, want 0", got)
	}

	b, _ := json.Marshal(r)
	var back TaxRate
	if err := json.Unmarshal(b, &back); err != nil || back != r {
		t.Errorf("JSON round trip = %d, %v", back, err)
	}
}
