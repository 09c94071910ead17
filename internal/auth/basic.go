package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sakif/course-api/internal/model"
)

// contextKey is an unexported type used for context keys in this package.
//
// WHY A CUSTOM TYPE FOR CONTEXT KEYS?
// context.WithValue uses any as the key type. If you use a plain string like
// context.WithValue(ctx, "user", u), ANY package that knows the string "user"
// can read or shadow your value. Using a package-private type prevents collisions:
// only THIS package can create a key of type contextKey, so only this package
// can read or write the authenticated user in the context.
type contextKey string

const userKey contextKey = "currentUser"

// Authenticator resolves a username/password pair to a user record.
// The user service implements this; the middleware only needs this one
// method, so we accept the small interface rather than the whole service.
type Authenticator interface {
	Authenticate(ctx context.Context, emailAddress, password string) (*model.User, error)
}

// RequireAuth is a middleware that enforces HTTP Basic authentication.
//
// It extracts the base64-encoded username:password pair from the
// Authorization header (the username is the account's email address),
// resolves and verifies the account, and stores the resolved user in the
// request context for handlers to read via UserFromContext.
//
// EVERY failure branch — missing header, unknown user, wrong password,
// even a malformed stored hash — produces the exact same response:
//
//	401 {"message":"Access Denied"}
//
// The internal reason is logged server-side only. A uniform response
// means an attacker can't probe which email addresses exist by comparing
// error messages.
//
// MIDDLEWARE PATTERN IN GO:
// A middleware is a function that takes an http.Handler and returns a new
// http.Handler that "wraps" the original. Chi applies middlewares in a
// chain: req → M1 → M2 → Handler → M2 → M1 → resp
func RequireAuth(authenticator Authenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// r.BasicAuth handles the base64 decoding and the
			// "Basic " prefix check for us.
			username, password, ok := r.BasicAuth()
			if !ok {
				logger.Warn("auth header not found",
					slog.String("path", r.URL.Path),
				)
				denyAccess(w)
				return
			}

			user, err := authenticator.Authenticate(r.Context(), username, password)
			if err != nil {
				// The reason (unknown user vs bad password) stays in the
				// log — the client always sees the same 401 body.
				logger.Warn("authentication failed",
					slog.String("username", username),
					slog.String("reason", err.Error()),
				)
				denyAccess(w)
				return
			}

			logger.Info("authentication successful",
				slog.String("userID", user.ID),
				slog.String("username", user.EmailAddress),
			)

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext retrieves the authenticated user from the request context.
//
// Returns (nil, false) if the request did not pass through RequireAuth.
//
// Usage in handlers:
//
//	user, ok := auth.UserFromContext(r.Context())
//	if !ok {
//	    // route was registered without RequireAuth — a wiring bug
//	}
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok && user != nil
}

// denyAccess writes the uniform 401 response. The body is fixed — the
// same bytes for every failure cause.
func denyAccess(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"message":"Access Denied"}` + "\n"))
}
