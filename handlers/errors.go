package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase/core"
	log "github.com/sirupsen/logrus"

	"pcquote/services"
)

// errorResponse is the JSON body sent for a failed API call.
type errorResponse struct {
	Error    string `json:"error"`
	Category string `json:"category,omitempty"`
	ID       string `json:"id,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// badRequestError marks a request body or parameter the handler could not use.
type badRequestError struct {
	msg string
	err error
}

func (e *badRequestError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

func (e *badRequestError) Unwrap() error { return e.err }

func badRequest(msg string, err error) error {
	return &badRequestError{msg: msg, err: err}
}

// statusFor maps service errors onto HTTP statuses.
func statusFor(err error) int {
	var invalid *services.InvalidConfigurationError
	var unknownPreset *services.UnknownPresetError
	var unknownItem *services.UnknownItemError
	var serialization *services.SerializationError
	var bad *badRequestError
	switch {
	case errors.As(err, &invalid):
		return http.StatusUnprocessableEntity
	case errors.As(err, &unknownPreset), errors.As(err, &unknownItem):
		return http.StatusNotFound
	case errors.As(err, &serialization), errors.As(err, &bad):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err with the matching status. HTMX callers get a toast,
// API callers a JSON body. Internal errors are logged and their text hidden.
func respondError(e *core.RequestEvent, err error) error {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.WithFields(log.Fields{
			"method": e.Request.Method,
			"path":   e.Request.URL.Path,
		}).WithError(err).Error("request failed")
		msg = "Something went wrong, please try again"
	}

	if isHTMX(e) {
		return ErrorToast(e, status, msg)
	}

	body := errorResponse{Error: msg}
	var invalid *services.InvalidConfigurationError
	if errors.As(err, &invalid) {
		body.Category = string(invalid.Category)
		body.ID = invalid.ID
		body.Reason = invalid.Reason
	}
	var unknownPreset *services.UnknownPresetError
	if errors.As(err, &unknownPreset) {
		body.ID = unknownPreset.ID
	}
	return e.JSON(status, body)
}
