package model

import "time"

// Principal is the authenticated identity decoded from a verified bearer
// token. Identity management is external; this service only carries the
// claims through the request.
type Principal struct {
	ID        string
	Email     string
	Name      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// DisplayName returns the name to show next to a review: the name claim
// when present, otherwise the email.
func (p Principal) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Email
}
