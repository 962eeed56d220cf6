package handlers

import (
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"pcquote/services"
	"pcquote/testhelpers"
)

func TestHandleBreakdown(t *testing.T) {
	shop := testhelpers.NewTestShop(t)

	e, rec := testhelpers.NewJSONRequestEvent(t, http.MethodPost, "/api/quote/breakdown", defaultBody())
	if err := HandleBreakdown(shop)(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	testhelpers.AssertStatus(t, rec, http.StatusOK)

	var got breakdownResponse
	testhelpers.DecodeJSON(t, rec, &got)
	b := got.Breakdown
	if b.Parts != 51500 || b.Extras != 15000 || b.Labor != 24500 {
		t.Errorf("parts/extras/labor = %d/%d/%d", b.Parts, b.Extras, b.Labor)
	}
	if b.Subtotal != 91000 || b.Tax != 7053 || b.Total != 98053 {
		t.Errorf("subtotal/tax/total = %d/%d/%d, want 91000/7053/98053", b.Subtotal, b.Tax, b.Total)
	}
	if got.Formatted.Total != "$980.53" || got.Formatted.TaxRate != "7.75%" {
		t.Errorf("formatted = %+v", got.Formatted)
	}
}

func TestHandleBreakdown_PresetWithOverrides(t *testing.T) {
	shop := testhelpers.NewTestShop(t)

	body := map[string]any{
		"preset":     "office",
		"selections": map[string]string{"gpu": "4060"},
	}
	e, rec := testhelpers.NewJSONRequestEvent(t, http.MethodPost, "/api/quote/breakdown", body)
	if err := HandleBreakdown(shop)(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	testhelpers.AssertStatus(t, rec, http.StatusOK)

	var got breakdownResponse
	testhelpers.DecodeJSON(t, rec, &got)
	if got.Configuration.Selection[services.CategoryGPU] != "4060" {
		t.Errorf("gpu = %q, want override", got.Configuration.Selection[services.CategoryGPU])
	}
	if len(got.Configuration.Extras) != 1 || got.Configuration.Extras[0] != "os" {
		t.Errorf("extras = %v, want preset extras kept", got.Configuration.Extras)
	}
	// The reset build plus the GPU upgrade.
	if got.Breakdown.Subtotal != 91000+32000 {
		t.Errorf("subtotal = %d", got.Breakdown.Subtotal)
	}
}

func TestHandleBreakdown_PartialSelectionsUseResetBuild(t *testing.T) {
	shop := testhelpers.NewTestShop(t)

	body := map[string]any{"selections": map[string]string{"gpu": "4060"}}
	e, rec := testhelpers.NewJSONRequestEvent(t, http.MethodPost, "/api/quote/breakdown", body)
	if err := HandleBreakdown(shop)(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	testhelpers.AssertStatus(t, rec, http.StatusOK)

	var got breakdownResponse
	testhelpers.DecodeJSON(t, rec, &got)
	if got.Configuration.Selection[services.CategoryCPU] != "r5" {
		t.Errorf("cpu = %q, want reset build r5", got.Configuration.Selection[services.CategoryCPU])
	}
	if len(got.Configuration.Extras) != 1 || got.Configuration.Extras[0] != "os" {
		t.Errorf("extras = %v, want reset build extras", got.Configuration.Extras)
	}
	if got.Breakdown.Subtotal != 91000+32000 {
		t.Errorf("subtotal = %d", got.Breakdown.Subtotal)
	}
}

func TestHandleBreakdown_Errors(t *testing.T) {
	shop := testhelpers.NewTestShop(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantReason string
	}{
		{"missing selection", `{"selections":{"cpu":""}}`, http.StatusUnprocessableEntity, "missing selection"},
		{"unknown item", `{"preset":"office","selections":{"gpu":"5090"}}`, http.StatusUnprocessableEntity, "unknown item"},
		{"unknown extra", `{"preset":"office","extras":["neon"]}`, http.StatusUnprocessableEntity, "unknown extra"},
		{"unknown preset", `{"preset":"ultra"}`, http.StatusNotFound, ""},
		{"unknown field", `{"preset":"office","discount":10}`, http.StatusBadRequest, ""},
		{"trailing data", `{"preset":"office"} {}`, http.StatusBadRequest, ""},
		{"trailing brace", `{"preset":"office"} }`, http.StatusBadRequest, ""},
		{"trailing bracket", `{"preset":"office"}]`, http.StatusBadRequest, ""},
		{"not json", `preset=office`, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, rec := testhelpers.NewRequestEvent(http.MethodPost, "/api/quote/breakdown", strings.NewReader(tt.body))
			e.Request.Header.Set("Content-Type", "application/json")

			HandleBreakdown(shop)(e)
			testhelpers.AssertStatus(t, rec, tt.wantStatus)

			var body errorResponse
			testhelpers.DecodeJSON(t, rec, &body)
			if body.Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", body.Reason, tt.wantReason)
			}
		})
	}
}

func TestReadQuoteRequest_Form(t *testing.T) {
	form := url.Values{
		"preset": {"gaming1440"},
		"gpu":    {"4090"},
		"extras": {"rgb", " ", "wifi"},
		"name":   {"Jane Doe"},
		"zip":    {"84101"},
	}
	e, _ := testhelpers.NewRequestEvent(http.MethodPost, "/quote/preview", strings.NewReader(form.Encode()))
	e.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	req, err := readQuoteRequest(e)
	if err != nil {
		t.Fatalf("readQuoteRequest() error = %v", err)
	}
	if req.Preset != "gaming1440" || req.Lead.Name != "Jane Doe" || req.Lead.PostalCode != "84101" {
		t.Errorf("request = %+v", req)
	}
	if len(req.Selections) != 1 || req.Selections[services.CategoryGPU] != "4090" {
		t.Errorf("selections = %v", req.Selections)
	}
	if strings.Join(req.Extras, ",") != "rgb,wifi" {
		t.Errorf("extras = %v", req.Extras)
	}
}

func TestQuoteRequest_Configuration(t *testing.T) {
	shop := testhelpers.NewTestShop(t)

	t.Run("no preset starts from the reset build", func(t *testing.T) {
		q := quoteRequest{Selections: map[services.Category]string{services.CategoryCPU: "r7"}}
		cfg, err := q.configuration(shop)
		if err != nil {
			t.Fatalf("configuration() error = %v", err)
		}
		want := services.DefaultConfiguration()
		want.Selection[services.CategoryCPU] = "r7"
		if !reflect.DeepEqual(cfg, want) {
			t.Errorf("cfg = %+v, want %+v", cfg, want)
		}
	})

	t.Run("empty extras clear the preset extras", func(t *testing.T) {
		q := quoteRequest{Preset: "creator4k", Extras: []string{}}
		cfg, err := q.configuration(shop)
		if err != nil {
			t.Fatalf("configuration() error = %v", err)
		}
		if len(cfg.Extras) != 0 {
			t.Errorf("extras = %v, want none", cfg.Extras)
		}
	})

	t.Run("preset is not modified", func(t *testing.T) {
		q := quoteRequest{Preset: "office", Selections: map[services.Category]string{services.CategoryRAM: "64"}}
		if _, err := q.configuration(shop); err != nil {
			t.Fatalf("configuration() error = %v", err)
		}
		again, _ := shop.Presets.Resolve("office")
		if again.Selection[services.CategoryRAM] != "16" {
			t.Errorf("preset ram = %q after override, want 16", again.Selection[services.CategoryRAM])
		}
	})
}
