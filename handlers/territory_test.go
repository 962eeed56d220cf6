package handlers

import (
	"net/http"
	"strings"
	"testing"

	"pcquote/services"
	"pcquote/testhelpers"
)

func TestHandleTerritory(t *testing.T) {
	shop := testhelpers.NewTestShop(t)

	tests := []struct {
		name    string
		target  string
		code    string
		want    bool
		wantMsg string
	}{
		{"prefix match", "/api/territory/84101", "84101", true, "Local service area"},
		{"neighbouring prefix", "/api/territory/83401", "83401", false, "Service limited"},
		{"outside", "/api/territory/90210", "90210", false, "Service limited to local ZIP codes (84xxx)."},
		{"malformed", "/api/territory/84-101", "84-101", false, "Service limited"},
		{"normalized", "/api/territory/84-101?normalize=1", "84-101", true, "Local service area"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, rec := testhelpers.NewRequestEvent(http.MethodGet, tt.target, nil)
			e.Request.SetPathValue("code", tt.code)

			if err := HandleTerritory(shop)(e); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			testhelpers.AssertStatus(t, rec, http.StatusOK)

			var got services.TerritoryStatus
			testhelpers.DecodeJSON(t, rec, &got)
			if got.InTerritory != tt.want {
				t.Errorf("inTerritory = %v, want %v", got.InTerritory, tt.want)
			}
			if !strings.HasPrefix(got.Message, tt.wantMsg) {
				t.Errorf("message = %q, want prefix %q", got.Message, tt.wantMsg)
			}
		})
	}
}

func TestHandleLeadCheck(t *testing.T) {
	shop := testhelpers.NewTestShop(t)

	t.Run("valid lead", func(t *testing.T) {
		e, rec := testhelpers.NewJSONRequestEvent(t, http.MethodPost, "/api/lead/validate",
			map[string]any{"lead": testhelpers.SampleLead()})

		if err := HandleLeadCheck(shop)(e); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		var got leadCheckResponse
		testhelpers.DecodeJSON(t, rec, &got)
		if !got.Valid || len(got.Errors) != 0 {
			t.Errorf("got %+v, want valid", got)
		}
		if !got.Territory.InTerritory {
			t.Error("expected sample ZIP to be local")
		}
	})

	t.Run("invalid lead is still 200", func(t *testing.T) {
		e, rec := testhelpers.NewJSONRequestEvent(t, http.MethodPost, "/api/lead/validate",
			map[string]any{"lead": map[string]string{"email": "not-an-email", "zip": "123"}})

		if err := HandleLeadCheck(shop)(e); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		testhelpers.AssertStatus(t, rec, http.StatusOK)

		var got leadCheckResponse
		testhelpers.DecodeJSON(t, rec, &got)
		if got.Valid {
			t.Fatal("expected invalid lead")
		}
		for _, field := range []string{"name", "email", "zip"} {
			if _, ok := got.Errors[field]; !ok {
				t.Errorf("expected error for %q, got %v", field, got.Errors)
			}
		}
	})
}
