package domain

import "time"

// PrincipalKind distinguishes who holds a session.
type PrincipalKind string

const (
	PrincipalNone  PrincipalKind = "none"
	PrincipalVoter PrincipalKind = "voter"
	PrincipalAdmin PrincipalKind = "admin"
)

// Session models an authenticated principal. Voter sessions carry the voter
// id; admin sessions do not reference a voter record.
type Session struct {
	ID         string        `json:"id"`
	Kind       PrincipalKind `json:"kind"`
	VoterID    string        `json:"voterId,omitempty"`
	Email      string        `json:"email"`
	DeviceName string        `json:"deviceName,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
	ExpiresAt  time.Time     `json:"expiresAt"`
}

// Expired reports whether the session has outlived its TTL.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Principal is what Restore hands back to the transport layer: the session
// kind plus the voter record when the principal is a voter.
type Principal struct {
	Kind  PrincipalKind `json:"kind"`
	Voter *Voter        `json:"voter,omitempty"`
}
