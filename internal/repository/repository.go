// Package repository defines the data-access interfaces consumed by the
// service layer.
//
// The interfaces live here (not next to the SQLite implementation) so
// that services depend on this package only — swapping SQLite for
// Postgres means writing a new implementation, not touching a service.
// The store is always an injected dependency, never a package-level
// singleton.
package repository

import (
	"context"

	"github.com/sakif/course-api/internal/model"
)

type UserRepository interface {
	// Create inserts a new user, assigning ID and timestamps in place.
	// A duplicate email address surfaces as a validation error.
	Create(ctx context.Context, user *model.User) error
	// GetByID returns apperror.ErrNotFound if no user exists.
	GetByID(ctx context.Context, id string) (*model.User, error)
	// GetByEmail matches the email address exactly as stored
	// (case-sensitive). Returns apperror.ErrNotFound on no match.
	GetByEmail(ctx context.Context, emailAddress string) (*model.User, error)
}

type CourseRepository interface {
	// Create inserts a new course, assigning ID and timestamps in place.
	Create(ctx context.Context, course *model.Course) error
	// GetByID returns the course with its owner's public fields joined in.
	GetByID(ctx context.Context, id string) (*model.Course, error)
	// List returns all courses, each with its owner's public fields.
	List(ctx context.Context) ([]model.Course, error)

	// UpdateOwned applies the update only if the course is currently
	// owned by ownerID, in a single conditional statement. Returns false
	// if no row matched — the caller disambiguates "doesn't exist" from
	// "not the owner" via Exists. This closes the check-then-act race:
	// the ownership check and the write are one atomic operation.
	UpdateOwned(ctx context.Context, course *model.Course, ownerID string) (bool, error)
	// DeleteOwned removes the course only if owned by ownerID.
	// Same single-statement contract as UpdateOwned.
	DeleteOwned(ctx context.Context, id, ownerID string) (bool, error)
	// Exists reports whether a course with the given ID exists.
	Exists(ctx context.Context, id string) (bool, error)
}
