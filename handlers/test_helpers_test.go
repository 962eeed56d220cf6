package handlers

import (
	"testing"
	"time"

	"pcquote/services"
	"pcquote/testhelpers"
)

var fixedNow = time.Date(2025, 3, 14, 17, 30, 0, 0, time.UTC)

// useFixedClock pins the quote timestamp for the duration of the test.
func useFixedClock(t *testing.T) {
	t.Helper()
	prev := clock
	clock = func() time.Time { return fixedNow }
	t.Cleanup(func() { clock = prev })
}

// defaultBody is the JSON body for the reset build and the sample lead.
func defaultBody() map[string]any {
	cfg := services.DefaultConfiguration()
	return map[string]any{
		"selections": cfg.Selection,
		"extras":     cfg.Extras,
		"lead":       testhelpers.SampleLead(),
	}
}
