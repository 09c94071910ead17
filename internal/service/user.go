// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes to the database
//
// Handlers only know about HTTP (status codes, headers, JSON). Services
// only know about business rules (credentials, ownership). Neither knows
// about SQL. Services receive repository INTERFACES, not concrete types —
// tests pass hand-written mocks, and swapping the storage backend is a
// one-line change in the composition root.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/course-api/internal/auth"
	"github.com/sakif/course-api/internal/model"
	"github.com/sakif/course-api/internal/repository"
)

// UserService handles registration and credential verification.
type UserService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewUserService creates a UserService with all dependencies injected.
func NewUserService(users repository.UserRepository, passwords *auth.PasswordService, logger *slog.Logger) *UserService {
	return &UserService{
		users:     users,
		passwords: passwords,
		logger:    logger,
	}
}

// Register creates a new account. The plaintext password is hashed here —
// it never reaches the repository, and the repository's stored hash never
// leaves this layer in any response shape.
//
// Required-field checks (password present, email well-formed) already
// happened at the handler's input struct; this layer only owns the rules
// that every caller needs regardless of transport: hashing, and mapping
// a duplicate email address to a validation failure (which the repository
// reports from its UNIQUE constraint).
func (s *UserService) Register(ctx context.Context, user *model.User, plaintextPassword string) error {
	hash, err := s.passwords.Hash(plaintextPassword)
	if err != nil {
		return fmt.Errorf("service/user: hashing password: %w", err)
	}
	user.Password = hash

	if err := s.users.Create(ctx, user); err != nil {
		return fmt.Errorf("service/user: creating user (email=%s): %w", user.EmailAddress, err)
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("emailAddress", user.EmailAddress),
	)

	return nil
}

// Authenticate resolves an email/password pair to a user record.
//
// This is the auth.Authenticator implementation consumed by the Basic
// auth middleware. The error explains WHY authentication failed (unknown
// user, wrong password, malformed stored hash) — the middleware logs that
// reason and always shows the client the same uniform 401.
func (s *UserService) Authenticate(ctx context.Context, emailAddress, password string) (*model.User, error) {
	user, err := s.users.GetByEmail(ctx, emailAddress)
	if err != nil {
		return nil, fmt.Errorf("service/user: user not found for username %q: %w", emailAddress, err)
	}

	// A verify failure — including a malformed stored hash — is an
	// authentication failure, never a server fault.
	if err := s.passwords.Verify(user.Password, password); err != nil {
		return nil, fmt.Errorf("service/user: authentication failure for username %q: %w", emailAddress, err)
	}

	return user, nil
}

// GetByID returns the user for the given internal ID.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/user: fetching user %s: %w", id, err)
	}
	return user, nil
}
