package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/course-api/internal/apperror"
	"github.com/sakif/course-api/internal/model"
	"github.com/sakif/course-api/internal/repository"
)

// notOwnerMessage is the exact body text clients receive on an ownership
// failure. Tooling on the other side string-matches it, so it is a
// constant rather than an inline literal in two places.
const notOwnerMessage = "User does not own course."

// CourseService handles business logic for courses, including the
// ownership rule: only the user who owns a course may update or delete it.
type CourseService struct {
	courses repository.CourseRepository
	logger  *slog.Logger
}

// NewCourseService creates a CourseService with all dependencies injected.
func NewCourseService(courses repository.CourseRepository, logger *slog.Logger) *CourseService {
	return &CourseService{
		courses: courses,
		logger:  logger,
	}
}

// List returns all courses, each with its owner's public fields.
func (s *CourseService) List(ctx context.Context) ([]model.Course, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		s.logger.Error("failed to list courses", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	return courses, nil
}

// GetByID retrieves a course by its ID, owner included.
// Returns apperror.ErrNotFound if the course doesn't exist.
func (s *CourseService) GetByID(ctx context.Context, id string) (*model.Course, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "course ID is required")
	}

	// NotFound is a normal outcome here, already a proper apperror —
	// let it propagate without logging it as a failure.
	return s.courses.GetByID(ctx, id)
}

// Create validates and saves a new course.
//
// course.UserID is resolved by the handler: the authenticated user by
// default, or the payload's userId when supplied — that override is
// accepted as-is (matching the API's observed contract). A bogus
// override is still caught by the repository's foreign key and comes
// back as a validation failure.
func (s *CourseService) Create(ctx context.Context, course *model.Course) error {
	if err := validateCourseFields(course); err != nil {
		return err
	}

	if err := s.courses.Create(ctx, course); err != nil {
		return fmt.Errorf("creating course: %w", err)
	}

	s.logger.Info("course created",
		slog.String("id", course.ID),
		slog.String("ownerID", course.UserID),
		slog.String("title", course.Title),
	)

	return nil
}

// Update applies new field values to the course with the given ID,
// provided actorID currently owns it.
//
// OWNERSHIP WITHOUT A RACE:
// We do NOT fetch-compare-write. The repository issues one conditional
// UPDATE (WHERE id AND user_id), so a concurrent transfer or delete can't
// slip between a check and the write. Only when nothing matched do we
// look the course up — purely to decide whether to report 404 or 403.
func (s *CourseService) Update(ctx context.Context, actorID, id string, course *model.Course) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "course ID is required")
	}
	if err := validateCourseFields(course); err != nil {
		return err
	}

	course.ID = id
	updated, err := s.courses.UpdateOwned(ctx, course, actorID)
	if err != nil {
		s.logger.Error("failed to update course",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("updating course: %w", err)
	}
	if !updated {
		return s.ownershipFailure(ctx, actorID, id)
	}

	s.logger.Info("course updated",
		slog.String("id", id),
		slog.String("actorID", actorID),
	)
	return nil
}

// Delete removes the course with the given ID, provided actorID owns it.
// Same atomic conditional contract as Update.
func (s *CourseService) Delete(ctx context.Context, actorID, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "course ID is required")
	}

	deleted, err := s.courses.DeleteOwned(ctx, id, actorID)
	if err != nil {
		s.logger.Error("failed to delete course",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("deleting course: %w", err)
	}
	if !deleted {
		return s.ownershipFailure(ctx, actorID, id)
	}

	s.logger.Info("course deleted",
		slog.String("id", id),
		slog.String("actorID", actorID),
	)
	return nil
}

// ownershipFailure turns a zero-row conditional mutation into the right
// client error: the course either doesn't exist (404) or belongs to
// someone else (403).
func (s *CourseService) ownershipFailure(ctx context.Context, actorID, id string) error {
	exists, err := s.courses.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("checking course %s: %w", id, err)
	}
	if !exists {
		return apperror.NotFound("course", id)
	}

	s.logger.Warn("ownership check failed",
		slog.String("courseID", id),
		slog.String("actorID", actorID),
	)
	return apperror.Forbidden(notOwnerMessage)
}

// validateCourseFields enforces the rules every write path shares:
// title and description must be non-empty.
func validateCourseFields(course *model.Course) error {
	if strings.TrimSpace(course.Title) == "" {
		return apperror.ValidationFailed("title", `"title" is required`)
	}
	if strings.TrimSpace(course.Description) == "" {
		return apperror.ValidationFailed("description", `"description" is required`)
	}
	return nil
}
