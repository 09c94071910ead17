package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/course-api/internal/apperror"
	"github.com/sakif/course-api/internal/model"
	"github.com/sakif/course-api/internal/repository"
)

// compile-time check that *UserRepo implements repository.UserRepository
var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo provides user persistence on a SQLite connection.
type UserRepo struct {
	conn *sql.DB
}

// Create inserts a new user row.
//
// The caller supplies the bcrypt hash in user.Password — this layer never
// sees a plaintext password. ID and timestamps are assigned here and
// written back through the pointer, like the Upsert pattern we use for
// every insert: the repository owns ID generation.
//
// A UNIQUE violation on email_address comes back as a validation error
// (400 at the HTTP boundary), not as a raw driver error.
func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	now := time.Now()
	user.ID = xid.New().String()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO users (id, first_name, last_name, email_address, password, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.FirstName,
		user.LastName,
		user.EmailAddress,
		user.Password,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		// modernc.org/sqlite doesn't export typed constraint errors, so
		// we match on the stable SQLite message text.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperror.ValidationFailed("emailAddress", "email address already in use")
		}
		return fmt.Errorf("sqlite: inserting user (email=%s): %w", user.EmailAddress, err)
	}

	return nil
}

// GetByID retrieves a user by their internal ID.
// Returns apperror.ErrNotFound if no user exists with that ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getWhere(ctx, "id = ?", id, id)
}

// GetByEmail retrieves a user by their email address (the login key).
//
// The match is exact and case-sensitive — the address is compared as
// stored, which is what the authentication contract requires.
// Returns apperror.ErrNotFound on no match.
func (r *UserRepo) GetByEmail(ctx context.Context, emailAddress string) (*model.User, error) {
	return r.getWhere(ctx, "email_address = ?", emailAddress, emailAddress)
}

// getWhere runs the shared SELECT with a single-column predicate.
// notFoundKey is only used to build the NotFound message.
func (r *UserRepo) getWhere(ctx context.Context, where string, arg any, notFoundKey string) (*model.User, error) {
	var u model.User

	err := r.conn.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email_address, password, created_at, updated_at
		 FROM users WHERE `+where,
		arg,
	).Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.EmailAddress,
		&u.Password,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", notFoundKey)
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", notFoundKey, err)
	}

	return &u, nil
}
