package model

import "time"

// Course represents a course created by a user.
//
// Every course belongs to exactly one user — UserID is a foreign key to
// users.id and identifies the owner. Only the owner may update or delete
// the course; that rule lives in the service layer, not here.
//
// The User field is an optional owner projection, populated by read
// queries that join the owner row. Write paths leave it nil, and
// `omitempty` keeps it out of the JSON when unset.
type Course struct {
	ID              string      `json:"id"              db:"id"`
	UserID          string      `json:"userId"          db:"user_id"` // Owner
	Title           string      `json:"title"           db:"title"`
	Description     string      `json:"description"     db:"description"`
	EstimatedTime   string      `json:"estimatedTime"   db:"estimated_time"`
	MaterialsNeeded string      `json:"materialsNeeded" db:"materials_needed"`
	CreatedAt       time.Time   `json:"createdAt"       db:"created_at"`
	UpdatedAt       time.Time   `json:"updatedAt"       db:"updated_at"`
	User            *PublicUser `json:"user,omitempty"  db:"-"` // Owner projection (reads only)
}
