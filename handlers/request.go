package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"pcquote/services"
)

// maxBodyBytes caps JSON request bodies. A full quote with the longest notes
// is well under 16 KiB.
const maxBodyBytes = 64 << 10

// quoteRequest is the body shared by the breakdown, export and preview
// endpoints. The starting point is the named preset, or the reset build when
// Preset is empty. Selections override single categories and a non-nil
// Extras replaces the starting extras.
type quoteRequest struct {
	Preset     string                       `json:"preset"`
	Selections map[services.Category]string `json:"selections"`
	Extras     []string                     `json:"extras"`
	Lead       services.Lead                `json:"lead"`
}

// configuration resolves the request into a Configuration. It does not
// validate item ids; pricing does that.
func (q quoteRequest) configuration(shop *services.Shop) (services.Configuration, error) {
	cfg := services.DefaultConfiguration()
	if q.Preset != "" {
		resolved, err := shop.Presets.Resolve(q.Preset)
		if err != nil {
			return services.Configuration{}, err
		}
		cfg = resolved
	}
	for c, id := range q.Selections {
		cfg.Selection[c] = id
	}
	if q.Extras != nil {
		cfg.Extras = append([]string{}, q.Extras...)
	}
	return cfg, nil
}

// readQuoteRequest decodes a JSON body, or falls back to form and query
// values for HTMX forms and plain GET links.
func readQuoteRequest(e *core.RequestEvent) (quoteRequest, error) {
	mediaType, _, _ := mime.ParseMediaType(e.Request.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		return decodeQuoteJSON(e.Request.Body)
	}
	return quoteRequestFromForm(e)
}

func decodeQuoteJSON(body io.Reader) (quoteRequest, error) {
	raw, err := io.ReadAll(io.LimitReader(body, maxBodyBytes+1))
	if err != nil {
		return quoteRequest{}, badRequest("failed to read request body", err)
	}
	if len(raw) > maxBodyBytes {
		return quoteRequest{}, badRequest("request body too large", nil)
	}

	var q quoteRequest
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&q); err != nil {
		return quoteRequest{}, badRequest("invalid JSON body", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return quoteRequest{}, badRequest("invalid JSON body", fmt.Errorf("trailing data"))
	}
	return q, nil
}

// quoteRequestFromForm reads "preset", one field per category name, repeated
// "extras" values and the lead fields under their JSON names.
func quoteRequestFromForm(e *core.RequestEvent) (quoteRequest, error) {
	if err := e.Request.ParseForm(); err != nil {
		return quoteRequest{}, badRequest("invalid form data", err)
	}
	form := e.Request.Form

	q := quoteRequest{
		Preset:     strings.TrimSpace(form.Get("preset")),
		Selections: map[services.Category]string{},
		Lead: services.Lead{
			Name:          form.Get("name"),
			Email:         form.Get("email"),
			Phone:         form.Get("phone"),
			PreferredDate: form.Get("date"),
			PostalCode:    form.Get("zip"),
			Notes:         form.Get("notes"),
		},
	}
	for _, c := range services.Categories {
		if id := strings.TrimSpace(form.Get(string(c))); id != "" {
			q.Selections[c] = id
		}
	}
	if extras, ok := form["extras"]; ok {
		q.Extras = []string{}
		for _, x := range extras {
			if x = strings.TrimSpace(x); x != "" {
				q.Extras = append(q.Extras, x)
			}
		}
	}
	return q, nil
}
