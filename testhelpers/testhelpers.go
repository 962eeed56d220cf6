// Package testhelpers provides fixtures and assertions shared by the package tests.
package testhelpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase/core"

	"pcquote/services"
)

// NewTestShop returns the shop built from the built-in catalog, presets and
// territory. It fails the test if the built-in data does not self-check.
func NewTestShop(t *testing.T) *services.Shop {
	t.Helper()

	shop, err := services.NewShop(services.DefaultBusiness, services.DefaultCatalog(),
		services.DefaultPresets(), services.DefaultTerritory())
	if err != nil {
		t.Fatalf("failed to build test shop: %v", err)
	}
	return shop
}

// SampleLead returns a valid, in-territory lead.
func SampleLead() services.Lead {
	return services.Lead{
		Name:          "Jane Doe",
		Email:         "jane@example.com",
		Phone:         "(801) 555-0100",
		PreferredDate: "2025-04-01",
		PostalCode:    "84101",
		Notes:         "Quiet build please",
	}
}

// NewRequestEvent creates a RequestEvent backed by an httptest recorder.
func NewRequestEvent(method, target string, body io.Reader) (*core.RequestEvent, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, body)
	rec := httptest.NewRecorder()
	e := &core.RequestEvent{}
	e.Request = req
	e.Response = rec
	return e, rec
}

// NewJSONRequestEvent marshals v as the request body with a JSON content type.
func NewJSONRequestEvent(t *testing.T, method, target string, v any) (*core.RequestEvent, *httptest.ResponseRecorder) {
	t.Helper()

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	e, rec := NewRequestEvent(method, target, bytes.NewReader(data))
	e.Request.Header.Set("Content-Type", "application/json")
	return e, rec
}

// DecodeJSON decodes the recorded response body into v.
func DecodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()

	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("response is not valid JSON: %v\nbody: %s", err, truncate(rec.Body.String(), 500))
	}
}

// AssertStatus checks the recorded status code.
func AssertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()

	if rec.Code != want {
		t.Errorf("expected status %d (%s), got %d\nbody: %s",
			want, http.StatusText(want), rec.Code, truncate(rec.Body.String(), 500))
	}
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
