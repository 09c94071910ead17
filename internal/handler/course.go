package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/sakif/course-api/internal/auth"
	"github.com/sakif/course-api/internal/model"
	"github.com/sakif/course-api/internal/service"
)

// CourseHandler manages CRUD operations for courses.
type CourseHandler struct {
	courses  *service.CourseService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewCourseHandler creates a CourseHandler with its dependencies injected.
func NewCourseHandler(courses *service.CourseService, validate *validator.Validate, logger *slog.Logger) *CourseHandler {
	return &CourseHandler{
		courses:  courses,
		validate: validate,
		logger:   logger,
	}
}

// courseInput enumerates exactly the fields a course write accepts.
// estimatedTime and materialsNeeded are optional and default to the
// empty string. userId, when supplied, overrides the default owner
// (the authenticated user) — both on create and on update, where it
// reassigns the course.
type courseInput struct {
	Title           string `json:"title" validate:"required"`
	Description     string `json:"description" validate:"required"`
	EstimatedTime   string `json:"estimatedTime"`
	MaterialsNeeded string `json:"materialsNeeded"`
	UserID          string `json:"userId"`
}

// decodeCourse parses and validates a course payload. Returns false if a
// response has already been written.
func (h *CourseHandler) decodeCourse(w http.ResponseWriter, r *http.Request) (courseInput, bool) {
	var in courseInput

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		h.logger.Warn("invalid course JSON", slog.String("error", err.Error()))
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return in, false
	}

	if err := h.validate.Struct(in); err != nil {
		writeMessage(w, http.StatusBadRequest, validationMessage(err))
		return in, false
	}

	return in, true
}

// currentUser pulls the authenticated identity out of the context.
// Returns false (after responding) if it's missing — which only happens
// if a mutation route was wired without RequireAuth.
func (h *CourseHandler) currentUser(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.logger.Error("course mutation reached without authenticated user",
			slog.String("path", r.URL.Path),
		)
		writeMessage(w, http.StatusUnauthorized, "Access Denied")
		return nil, false
	}
	return user, true
}

// HandleList returns all courses, each with its owner's public fields.
//
// HTTP: GET /api/courses
func (h *CourseHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courses.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, courses)
}

// HandleGetByID returns one course with its owner's public fields.
//
// HTTP: GET /api/courses/{id}
//
// A missing course is 404 with a descriptive message — an explicit
// absent result from the store, never an unhandled fault.
func (h *CourseHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	course, err := h.courses.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, course)
}

// HandleCreate creates a new course.
//
// HTTP: POST /api/courses (Basic auth required)
//
// The owner defaults to the authenticated user; a userId in the payload
// overrides it. On success: 201, Location: /api/courses/{id}, empty body.
func (h *CourseHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	in, ok := h.decodeCourse(w, r)
	if !ok {
		return
	}

	ownerID := user.ID
	if in.UserID != "" {
		ownerID = in.UserID
	}

	course := &model.Course{
		UserID:          ownerID,
		Title:           in.Title,
		Description:     in.Description,
		EstimatedTime:   in.EstimatedTime,
		MaterialsNeeded: in.MaterialsNeeded,
	}
	if err := h.courses.Create(r.Context(), course); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Location", "/api/courses/"+course.ID)
	w.WriteHeader(http.StatusCreated)
}

// HandleUpdate replaces a course's fields, owner-gated.
//
// HTTP: PUT /api/courses/{id} (Basic auth required, owner only)
//
// 204 on success; 403 if the authenticated user doesn't own the course;
// 404 if it doesn't exist. A userId in the payload reassigns the course;
// when absent the owner stays the authenticated user.
func (h *CourseHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	in, ok := h.decodeCourse(w, r)
	if !ok {
		return
	}

	ownerID := user.ID
	if in.UserID != "" {
		ownerID = in.UserID
	}

	course := &model.Course{
		UserID:          ownerID,
		Title:           in.Title,
		Description:     in.Description,
		EstimatedTime:   in.EstimatedTime,
		MaterialsNeeded: in.MaterialsNeeded,
	}
	if err := h.courses.Update(r.Context(), user.ID, chi.URLParam(r, "id"), course); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete removes a course, owner-gated.
//
// HTTP: DELETE /api/courses/{id} (Basic auth required, owner only)
//
// 204 on success; 403/404 mirror HandleUpdate. Deleting the same course
// twice yields 404 on the second call.
func (h *CourseHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	if err := h.courses.Delete(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
