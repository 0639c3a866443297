// Package models holds the server's persistent domain types.
package models

import "time"

// User is an account record. PasswordHash is a bcrypt digest and must never
// leave the server.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfilePatch is a partial profile update; nil fields are left untouched.
type ProfilePatch struct {
	Name  *string
	Email *string
}

// IsEmpty reports whether the patch changes no field.
func (p ProfilePatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil
}
