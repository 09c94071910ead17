package sqlite

import (
	"context"
	"testing"

	"github.com/sakif/course-api/internal/model"
)

// newTestDB creates an in-memory SQLite database for testing.
// ":memory:" gives every test its own fresh database — no files on disk,
// no cleanup needed, and tests can't interfere with each other.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

// createTestUser is a test helper that creates a user and fails the test if it errors.
// The password column stores a hash in production; tests just need a stable string.
func createTestUser(t *testing.T, u *UserRepo, firstName, emailAddress string) *model.User {
	t.Helper()
	user := &model.User{
		FirstName:    firstName,
		LastName:     "Smith",
		EmailAddress: emailAddress,
		Password:     "$2a$04$fakehashforrepositorytestsonly",
	}
	if err := u.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// createTestCourse creates a course owned by ownerID and fails the test on error.
func createTestCourse(t *testing.T, c *CourseRepo, ownerID, title string) *model.Course {
	t.Helper()
	course := &model.Course{
		UserID:      ownerID,
		Title:       title,
		Description: "A course used in tests",
	}
	if err := c.Create(context.Background(), course); err != nil {
		t.Fatalf("failed to create test course: %v", err)
	}
	return course
}
