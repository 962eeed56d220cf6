package handlers

import (
	"time"

	"github.com/pocketbase/pocketbase/core"
	log "github.com/sirupsen/logrus"
)

// RequestLogger logs one line per request with method, path, status and
// duration. Failed requests are logged at warn level.
func RequestLogger() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		start := time.Now()
		err := e.Next()

		status := e.Status()
		if err != nil && status == 0 {
			status = statusFor(err)
		}
		entry := log.WithFields(log.Fields{
			"method":   e.Request.Method,
			"path":     e.Request.URL.Path,
			"status":   status,
			"duration": time.Since(start).Round(time.Microsecond).String(),
		})
		if err != nil {
			entry = entry.WithError(err)
		}
		if err != nil || status >= 400 {
			entry.Warn("request")
		} else {
			entry.Info("request")
		}
		return err
	}
}
