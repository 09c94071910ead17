package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sakif/course-api/internal/model"
)

// doJSON runs one request against the test router, optionally with
// Basic credentials (pass email, password as the trailing args).
func doJSON(t *testing.T, router http.Handler, method, path, body string, creds ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if len(creds) == 2 {
		req.SetBasicAuth(creds[0], creds[1])
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// registerUser creates an account through the API and returns its ID
// (read back via the identity endpoint).
func registerUser(t *testing.T, router http.Handler, email, password string) string {
	t.Helper()
	rr := doJSON(t, router, http.MethodPost, "/api/users",
		`{"firstName":"Joe","lastName":"Smith","emailAddress":"`+email+`","password":"`+password+`"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("failed to register %s: status %d body %s", email, rr.Code, rr.Body.String())
	}

	rr = doJSON(t, router, http.MethodGet, "/api/users", "", email, password)
	if rr.Code != http.StatusOK {
		t.Fatalf("failed to fetch identity for %s: status %d", email, rr.Code)
	}
	var pub model.PublicUser
	if err := json.NewDecoder(rr.Body).Decode(&pub); err != nil {
		t.Fatalf("decoding identity: %v", err)
	}
	return pub.ID
}

// createCourse creates a course through the API and returns its ID
// (parsed from the Location header).
func createCourse(t *testing.T, router http.Handler, body, email, password string) string {
	t.Helper()
	rr := doJSON(t, router, http.MethodPost, "/api/courses", body, email, password)
	if rr.Code != http.StatusCreated {
		t.Fatalf("failed to create course: status %d body %s", rr.Code, rr.Body.String())
	}
	loc := rr.Header().Get("Location")
	return strings.TrimPrefix(loc, "/api/courses/")
}

func TestCourseCreate(t *testing.T) {
	router := newTestRouter(t)
	ownerID := registerUser(t, router, "joe@x.com", "secret")

	rr := doJSON(t, router, http.MethodPost, "/api/courses",
		`{"title":"Intro","description":"Basics"}`, "joe@x.com", "secret")

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Empty(t, rr.Body.String(), "201 must carry no body")

	loc := rr.Header().Get("Location")
	assert.True(t, strings.HasPrefix(loc, "/api/courses/"), "Location = %q", loc)

	// The owner defaults to the creator
	id := strings.TrimPrefix(loc, "/api/courses/")
	var course model.Course
	get := doJSON(t, router, http.MethodGet, "/api/courses/"+id, "")
	assert.Equal(t, http.StatusOK, get.Code)
	assert.NoError(t, json.NewDecoder(get.Body).Decode(&course))
	assert.Equal(t, ownerID, course.UserID)
}

func TestCourseCreate_Unauthenticated(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "joe@x.com", "secret")

	rr := doJSON(t, router, http.MethodPost, "/api/courses",
		`{"title":"Intro","description":"Basics"}`)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"message":"Access Denied"}`, rr.Body.String())
}

func TestCourseCreate_MissingTitle(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "joe@x.com", "secret")

	rr := doJSON(t, router, http.MethodPost, "/api/courses",
		`{"description":"Basics"}`, "joe@x.com", "secret")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"message":"\"title\" is required"}`, rr.Body.String())
}

func TestCourseCreate_OwnerOverride(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "joe@x.com", "secret")
	sallyID := registerUser(t, router, "sally@x.com", "hunter2")

	// Joe creates a course but assigns it to Sally — accepted as-is.
	id := createCourse(t, router,
		`{"title":"Gifted","description":"For Sally","userId":"`+sallyID+`"}`,
		"joe@x.com", "secret")

	var course model.Course
	get := doJSON(t, router, http.MethodGet, "/api/courses/"+id, "")
	assert.NoError(t, json.NewDecoder(get.Body).Decode(&course))
	assert.Equal(t, sallyID, course.UserID)
}

func TestCourseRoundTrip(t *testing.T) {
	router := newTestRouter(t)
	ownerID := registerUser(t, router, "joe@x.com", "secret")

	id := createCourse(t, router,
		`{"title":"Intro","description":"Basics","estimatedTime":"4 hours","materialsNeeded":"A laptop"}`,
		"joe@x.com", "secret")

	rr := doJSON(t, router, http.MethodGet, "/api/courses/"+id, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var course model.Course
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&course))
	assert.Equal(t, id, course.ID)
	assert.Equal(t, "Intro", course.Title)
	assert.Equal(t, "Basics", course.Description)
	assert.Equal(t, "4 hours", course.EstimatedTime)
	assert.Equal(t, "A laptop", course.MaterialsNeeded)
	assert.Equal(t, ownerID, course.UserID)
}

func TestCourseGetByID_NotFound(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodGet, "/api/courses/nonexistent-id", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)

	var body map[string]string
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Contains(t, body["message"], "not found")
}

func TestCourseList_IncludesOwnerWithoutPassword(t *testing.T) {
	router := newTestRouter(t)
	ownerID := registerUser(t, router, "joe@x.com", "secret")
	createCourse(t, router, `{"title":"Intro","description":"Basics"}`, "joe@x.com", "secret")

	rr := doJSON(t, router, http.MethodGet, "/api/courses", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	raw := rr.Body.String()
	// The owner's public fields are present; no password in any shape
	assert.Contains(t, raw, `"emailAddress":"joe@x.com"`)
	assert.NotContains(t, raw, "password")
	assert.NotContains(t, raw, "$2a$")

	var courses []model.Course
	assert.NoError(t, json.Unmarshal([]byte(raw), &courses))
	assert.Len(t, courses, 1)
	if assert.NotNil(t, courses[0].User) {
		assert.Equal(t, ownerID, courses[0].User.ID)
	}
}

func TestCourseList_Empty(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodGet, "/api/courses", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestCourseUpdate_Owner(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "joe@x.com", "secret")
	id := createCourse(t, router, `{"title":"Before","description":"Old"}`, "joe@x.com", "secret")

	rr := doJSON(t, router, http.MethodPut, "/api/courses/"+id,
		`{"title":"After","description":"New"}`, "joe@x.com", "secret")

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())

	var course model.Course
	get := doJSON(t, router, http.MethodGet, "/api/courses/"+id, "")
	assert.NoError(t, json.NewDecoder(get.Body).Decode(&course))
	assert.Equal(t, "After", course.Title)
	assert.Equal(t, "New", course.Description)
}

func TestCourseUpdate_NotOwner(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "joe@x.com", "secret")
	registerUser(t, router, "sally@x.com", "hunter2")
	id := createCourse(t, router, `{"title":"Joes","description":"Keep out"}`, "joe@x.com", "secret")

	rr := doJSON(t, router, http.MethodPut, "/api/courses/"+id,
		`{"title":"Sallys now","description":"Taken"}`, "sally@x.com", "hunter2")

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"message":"User does not own course."}`, rr.Body.String())

	// The course is left unmodified
	var course model.Course
	get := doJSON(t, router, http.MethodGet, "/api/courses/"+id, "")
	assert.NoError(t, json.NewDecoder(get.Body).Decode(&course))
	assert.Equal(t, "Joes", course.Title)
}

func TestCourseUpdate_NotFound(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "joe@x.com", "secret")

	rr := doJSON(t, router, http.MethodPut, "/api/courses/nonexistent-id",
		`{"title":"T","description":"D"}`, "joe@x.com", "secret")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCourseDelete_TwiceYieldsNotFound(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "joe@x.com", "secret")
	id := createCourse(t, router, `{"title":"Doomed","description":"Going away"}`, "joe@x.com", "secret")

	first := doJSON(t, router, http.MethodDelete, "/api/courses/"+id, "", "joe@x.com", "secret")
	assert.Equal(t, http.StatusNoContent, first.Code)

	second := doJSON(t, router, http.MethodDelete, "/api/courses/"+id, "", "joe@x.com", "secret")
	assert.Equal(t, http.StatusNotFound, second.Code)
}

func TestCourseDelete_NotOwner(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "joe@x.com", "secret")
	registerUser(t, router, "sally@x.com", "hunter2")
	id := createCourse(t, router, `{"title":"Joes","description":"His"}`, "joe@x.com", "secret")

	rr := doJSON(t, router, http.MethodDelete, "/api/courses/"+id, "", "sally@x.com", "hunter2")

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"message":"User does not own course."}`, rr.Body.String())

	get := doJSON(t, router, http.MethodGet, "/api/courses/"+id, "")
	assert.Equal(t, http.StatusOK, get.Code, "course must survive a non-owner delete")
}

func TestCourse_UnknownFieldRejected(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "joe@x.com", "secret")

	rr := doJSON(t, router, http.MethodPost, "/api/courses",
		`{"title":"Intro","description":"Basics","sneaky":"field"}`, "joe@x.com", "secret")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
