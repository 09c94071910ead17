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

// compile-time check that *CourseRepo implements repository.CourseRepository
var _ repository.CourseRepository = (*CourseRepo)(nil)

// CourseRepo provides course persistence on a SQLite connection.
type CourseRepo struct {
	conn *sql.DB
}

// courseColumns lists the joined SELECT used by both GetByID and List,
// written once so the Scan order can't drift between the two.
const courseColumns = `
	c.id, c.user_id, c.title, c.description, c.estimated_time, c.materials_needed,
	c.created_at, c.updated_at,
	u.id, u.first_name, u.last_name, u.email_address`

// Create inserts a new course row. ID and timestamps are assigned here
// and written back through the pointer.
//
// course.UserID must reference an existing user — the foreign key
// enforces it, and a violation surfaces as a validation error on the
// userId field rather than a raw driver error.
func (r *CourseRepo) Create(ctx context.Context, course *model.Course) error {
	now := time.Now()
	course.ID = xid.New().String()
	course.CreatedAt = now
	course.UpdatedAt = now

	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO courses (id, user_id, title, description, estimated_time, materials_needed, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		course.ID,
		course.UserID,
		course.Title,
		course.Description,
		course.EstimatedTime,
		course.MaterialsNeeded,
		course.CreatedAt,
		course.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return apperror.ValidationFailed("userId", "userId does not reference an existing user")
		}
		return fmt.Errorf("sqlite: inserting course (title=%s): %w", course.Title, err)
	}

	return nil
}

// GetByID retrieves one course with its owner's public fields joined in.
// Returns apperror.ErrNotFound if no course exists with that ID —
// an explicit absent result, never a fault for the caller to recover from.
func (r *CourseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	row := r.conn.QueryRowContext(ctx,
		`SELECT `+courseColumns+`
		 FROM courses c
		 JOIN users u ON u.id = c.user_id
		 WHERE c.id = ?`,
		id,
	)

	course, err := scanCourse(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("course", id)
		}
		return nil, fmt.Errorf("sqlite: getting course %s: %w", id, err)
	}

	return course, nil
}

// List returns all courses, each with its owner's public fields.
//
// The owner's password column is simply never selected — exclusion at
// the query level, so there is nothing to strip later.
func (r *CourseRepo) List(ctx context.Context) ([]model.Course, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT `+courseColumns+`
		 FROM courses c
		 JOIN users u ON u.id = c.user_id
		 ORDER BY c.created_at, c.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing courses: %w", err)
	}
	// ALWAYS close rows — otherwise the connection leaks back to the pool
	// in a busy state.
	defer rows.Close()

	// Initialize to an empty slice (not nil) so the JSON encoding is
	// always [] rather than null when there are no courses.
	courses := []model.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning course row: %w", err)
		}
		courses = append(courses, *course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating course rows: %w", err)
	}

	return courses, nil
}

// UpdateOwned applies the update in a single conditional statement:
//
//	UPDATE courses SET ... WHERE id = ? AND user_id = ?
//
// The ownership check and the write are one atomic operation — there is
// no window between "fetch, compare owner" and "apply" for a concurrent
// request to slip through. The affected-row count tells the caller
// whether anything matched; it does NOT say why nothing matched
// (missing row vs wrong owner), which is why the interface also has
// Exists.
//
// Note the SET includes user_id: the payload may reassign the course to
// a different owner, and the WHERE clause checks the CURRENT owner.
func (r *CourseRepo) UpdateOwned(ctx context.Context, course *model.Course, ownerID string) (bool, error) {
	course.UpdatedAt = time.Now()

	res, err := r.conn.ExecContext(ctx,
		`UPDATE courses
		 SET user_id = ?, title = ?, description = ?, estimated_time = ?, materials_needed = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		course.UserID,
		course.Title,
		course.Description,
		course.EstimatedTime,
		course.MaterialsNeeded,
		course.UpdatedAt,
		course.ID,
		ownerID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return false, apperror.ValidationFailed("userId", "userId does not reference an existing user")
		}
		return false, fmt.Errorf("sqlite: updating course %s: %w", course.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite: reading affected rows for course %s: %w", course.ID, err)
	}

	return n > 0, nil
}

// DeleteOwned removes the course in a single conditional statement.
// Same atomic contract as UpdateOwned.
func (r *CourseRepo) DeleteOwned(ctx context.Context, id, ownerID string) (bool, error) {
	res, err := r.conn.ExecContext(ctx,
		`DELETE FROM courses WHERE id = ? AND user_id = ?`,
		id, ownerID,
	)
	if err != nil {
		return false, fmt.Errorf("sqlite: deleting course %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite: reading affected rows for course %s: %w", id, err)
	}

	return n > 0, nil
}

// Exists reports whether a course with the given ID exists.
// Used to disambiguate a zero-row UpdateOwned/DeleteOwned result into
// "not found" (404) vs "not the owner" (403).
func (r *CourseRepo) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := r.conn.QueryRowContext(ctx,
		`SELECT 1 FROM courses WHERE id = ?`, id,
	).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("sqlite: checking course %s: %w", id, err)
	}
	return true, nil
}

// scanner covers both *sql.Row and *sql.Rows so scanCourse works for
// single-row and multi-row queries.
type scanner interface {
	Scan(dest ...any) error
}

func scanCourse(s scanner) (*model.Course, error) {
	var c model.Course
	var owner model.PublicUser

	err := s.Scan(
		&c.ID,
		&c.UserID,
		&c.Title,
		&c.Description,
		&c.EstimatedTime,
		&c.MaterialsNeeded,
		&c.CreatedAt,
		&c.UpdatedAt,
		&owner.ID,
		&owner.FirstName,
		&owner.LastName,
		&owner.EmailAddress,
	)
	if err != nil {
		return nil, err
	}

	c.User = &owner
	return &c, nil
}
