package utils

import (
	"log"
	"strings"
)

// LogEvent prints one structured line per domain event, keyed by module
// and action. Keep messages to key=value summaries; never log payment
// payloads or guest contact details.
func LogEvent(requestID, module, action, message string) {
	if requestID == "" {
		requestID = "-"
	}
	log.Printf("[%s] action=%s request_id=%s msg=%s",
		strings.ToUpper(module), action, requestID, message)
}
