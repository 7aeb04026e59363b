package domain

import "time"

// PlayAudit records a granted play for the audit trail. RequestID ties the
// entry to the X-Request-Id of the HTTP call that claimed the play.
type PlayAudit struct {
	ParticipantID string
	PhoneNumber   string
	PlayedAt      time.Time
	RequestID     string
}
