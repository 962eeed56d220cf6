package handlers

import (
	"encoding/json"

	"github.com/pocketbase/pocketbase/core"
	log "github.com/sirupsen/logrus"
)

// SetToast sets the HX-Trigger response header so the quote page shows a
// toast. An existing HX-Trigger JSON object is kept and the toast merged in;
// a non-JSON value is replaced.
func SetToast(e *core.RequestEvent, toastType string, message string) {
	trigger := map[string]any{}
	if existing := e.Response.Header().Get("HX-Trigger"); existing != "" {
		if err := json.Unmarshal([]byte(existing), &trigger); err != nil {
			log.WithError(err).Warn("toast: existing HX-Trigger is not valid JSON, overwriting")
			trigger = map[string]any{}
		}
	}
	trigger["showToast"] = map[string]string{
		"message": message,
		"type":    toastType,
	}

	data, err := json.Marshal(trigger)
	if err != nil {
		log.WithError(err).Warn("toast: failed to marshal HX-Trigger JSON")
		return
	}
	e.Response.Header().Set("HX-Trigger", string(data))
}

// ErrorToast sets an error toast and prevents HTMX from swapping the error text into the DOM.
// It sets HX-Reswap: none so the response body is ignored by HTMX, while the HX-Trigger
// header still fires the toast event.
func ErrorToast(e *core.RequestEvent, statusCode int, message string) error {
	SetToast(e, "error", message)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.String(statusCode, message)
}

// isHTMX reports whether the request was issued by the HTMX quote page.
func isHTMX(e *core.RequestEvent) bool {
	return e.Request != nil && e.Request.Header.Get("HX-Request") == "true"
}
