package models

import "time"

// RevokedToken is a session token id invalidated before its natural expiry.
type RevokedToken struct {
	JTI       string
	ExpiresAt time.Time
}
