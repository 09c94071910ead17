// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// User represents a registered account. The email address is the login key
// and must be unique — the UNIQUE constraint on email_address in the DB
// enforces that one address maps to exactly one account.
//
// WHY `json:"-"` ON Password?
// Password holds the bcrypt hash, never the plaintext. The `json:"-"` tag
// tells encoding/json to skip the field entirely, so no response can leak
// the hash even if a handler serializes the whole struct by accident.
// Defence at the type level beats remembering to strip it in every handler.
type User struct {
	ID           string    `json:"id"           db:"id"`
	FirstName    string    `json:"firstName"    db:"first_name"`
	LastName     string    `json:"lastName"     db:"last_name"`
	EmailAddress string    `json:"emailAddress" db:"email_address"` // Login key, unique
	Password     string    `json:"-"            db:"password"`      // bcrypt hash, never serialized
	CreatedAt    time.Time `json:"createdAt"    db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt"    db:"updated_at"`
}

// PublicUser is the projection of a User that is safe to return to clients:
// identity fields only, no credential material and no timestamps.
type PublicUser struct {
	ID           string `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
}

// Public returns the client-safe projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		EmailAddress: u.EmailAddress,
	}
}
