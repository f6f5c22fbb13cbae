package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notification severities map straight onto the toast classes the pages use.
const (
	SeverityInfo    = "info"
	SeveritySuccess = "success"
	SeverityWarning = "warning"
	SeverityDanger  = "danger"
)

// Notification is a transient UI toast. Persistent is set only for the
// connection-lost notification shown after live-update reconnection is
// exhausted; everything else auto-dismisses.
type Notification struct {
	ID         string    `json:"id"`
	Message    string    `json:"message"`
	Type       string    `json:"type"`
	Persistent bool      `json:"persistent,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewNotification(message, severity string) Notification {
	return Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Type:      severity,
		Timestamp: time.Now(),
	}
}
