package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sakif/course-api/internal/auth"
	"github.com/sakif/course-api/internal/model"
	"github.com/sakif/course-api/internal/service"
)

// UserHandler manages the user endpoints: registration and the
// current-identity lookup.
type UserHandler struct {
	users    *service.UserService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewUserHandler creates a UserHandler. All dependencies are injected;
// the handler has no knowledge of how they're constructed.
func NewUserHandler(users *service.UserService, validate *validator.Validate, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		users:    users,
		validate: validate,
		logger:   logger,
	}
}

// createUserInput enumerates exactly the fields a registration accepts.
//
// Password is deliberately NOT tagged `required` — its absence has a
// dedicated response ("Bad password!") checked before the other rules,
// so the generic validator message never shadows it. firstName and
// lastName are optional and default to the empty string.
type createUserInput struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress" validate:"required,email"`
	Password     string `json:"password"`
}

// HandleGetCurrent returns the authenticated user's own identity fields.
//
// HTTP: GET /api/users (Basic auth required)
//
// RESPONSE: {"id":"...","firstName":"Joe","lastName":"Smith","emailAddress":"joe@x.com"}
// The password hash is never part of any response shape.
func (h *UserHandler) HandleGetCurrent(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		// Only reachable if the route is registered without RequireAuth —
		// a wiring bug, but the client still gets the uniform denial.
		h.logger.Error("identity endpoint reached without authenticated user")
		writeMessage(w, http.StatusUnauthorized, "Access Denied")
		return
	}

	writeJSON(w, http.StatusOK, user.Public())
}

// HandleCreate registers a new user.
//
// HTTP: POST /api/users (no auth — this is how accounts come to exist)
// REQUEST BODY: {"firstName":"Joe","lastName":"Smith","emailAddress":"joe@x.com","password":"secret"}
//
// On success: 201, Location: /, empty body.
// A missing password is rejected with its own message before any other
// validation or persistence is attempted.
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in createUserInput

	dec := json.NewDecoder(r.Body)
	// Reject fields the endpoint doesn't enumerate, rather than
	// silently dropping them.
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		h.logger.Warn("invalid user JSON", slog.String("error", err.Error()))
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if in.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Bad password!")
		return
	}

	if err := h.validate.Struct(in); err != nil {
		writeMessage(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	user := &model.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		EmailAddress: in.EmailAddress,
	}
	if err := h.users.Register(r.Context(), user, in.Password); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Location", "/")
	w.WriteHeader(http.StatusCreated)
}
