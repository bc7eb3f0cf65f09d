package utils

import (
	"log"
	"strings"
)

// LogEvent prints standardized log line with module/action/request_id.
// Avoid logging message bodies or full phone numbers; use MaskIdentity.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, message)
}

// MaskIdentity keeps the channel prefix and the last four characters.
// "whatsapp:+919876543210" -> "whatsapp:***3210".
func MaskIdentity(identity string) string {
	identity = strings.TrimSpace(identity)
	prefix := ""
	if i := strings.LastIndex(identity, ":"); i >= 0 {
		prefix, identity = identity[:i+1], identity[i+1:]
	}
	if len(identity) <= 4 {
		return prefix + identity
	}
	return prefix + "***" + identity[len(identity)-4:]
}
