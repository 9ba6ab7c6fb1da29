package domain

import "time"

// AuditEntry records one administrative mutation. The log is append-only and
// read back newest first.
type AuditEntry struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}
