package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohamed-Kaizen/teached/internal/app/models"
	"github.com/Mohamed-Kaizen/teached/internal/pkg/apperrors"
	"github.com/Mohamed-Kaizen/teached/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeIdentityStore struct {
	users    map[int64]*models.User
	teachers map[int64]*models.Teacher
	students map[int64]*models.Student
}

func newFakeIdentityStore() *fakeIdentityStore {
	return &fakeIdentityStore{
		users:    make(map[int64]*models.User),
		teachers: make(map[int64]*models.Teacher),
		students: make(map[int64]*models.Student),
	}
}

func (f *fakeIdentityStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	return user, nil
}

func (f *fakeIdentityStore) GetTeacherByUserID(ctx context.Context, userID int64) (*models.Teacher, error) {
	teacher, ok := f.teachers[userID]
	if !ok {
		return nil, apperrors.ErrNotTeacher
	}
	return teacher, nil
}

func (f *fakeIdentityStore) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	student, ok := f.students[userID]
	if !ok {
		return nil, apperrors.ErrNotStudent
	}
	return student, nil
}

type fakeCourseResolver struct {
	courses map[string]*models.Course
}

func (f *fakeCourseResolver) GetPublished(ctx context.Context, slug string) (*models.Course, error) {
	course, ok := f.courses[slug]
	if !ok {
		return nil, apperrors.NewNotFoundError("Course not found")
	}
	return course, nil
}

type middlewareFixture struct {
	middleware *AuthMiddleware
	jwtService *auth.JWTService
	store      *fakeIdentityStore
	resolver   *fakeCourseResolver
}

func newMiddlewareFixture() *middlewareFixture {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "teached.test",
	})
	store := newFakeIdentityStore()
	resolver := &fakeCourseResolver{courses: make(map[string]*models.Course)}
	return &middlewareFixture{
		middleware: NewAuthMiddleware(jwtService, store, resolver),
		jwtService: jwtService,
		store:      store,
		resolver:   resolver,
	}
}

func (f *middlewareFixture) addUser(id int64, username string, active bool) *models.User {
	user := &models.User{ID: id, Username: username, IsActive: active}
	f.store.users[id] = user
	return user
}

func (f *middlewareFixture) tokenFor(user *models.User) string {
	token, err := f.jwtService.Issue(user.ID, user.Username)
	if err != nil {
		panic(err)
	}
	return "Bearer " + token
}

func performRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestIdentifyAnonymousPassesThrough(t *testing.T) {
	fixture := newMiddlewareFixture()
	router := gin.New()
	router.GET("/probe", fixture.middleware.Identify(), func(c *gin.Context) {
		assert.Nil(t, CurrentUser(c))
		c.Status(http.StatusOK)
	})

	recorder := performRequest(router, "")
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestIdentifyResolvesUser(t *testing.T) {
	fixture := newMiddlewareFixture()
	user := fixture.addUser(1, "gopher", true)

	router := gin.New()
	router.GET("/probe", fixture.middleware.Identify(), func(c *gin.Context) {
		current := CurrentUser(c)
		require.NotNil(t, current)
		assert.Equal(t, "gopher", current.Username)
		c.Status(http.StatusOK)
	})

	recorder := performRequest(router, fixture.tokenFor(user))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestIdentifyRejectsMalformedHeader(t *testing.T) {
	fixture := newMiddlewareFixture()
	router := gin.New()
	router.GET("/probe", fixture.middleware.Identify(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	recorder := performRequest(router, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestIdentifyRejectsInvalidToken(t *testing.T) {
	fixture := newMiddlewareFixture()
	router := gin.New()
	router.GET("/probe", fixture.middleware.Identify(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	recorder := performRequest(router, "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestIdentifyRejectsDeletedUser(t *testing.T) {
	fixture := newMiddlewareFixture()
	user := fixture.addUser(1, "gopher", true)
	header := fixture.tokenFor(user)
	delete(fixture.store.users, 1)

	router := gin.New()
	router.GET("/probe", fixture.middleware.Identify(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	recorder := performRequest(router, header)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestLoginRequiredRejectsAnonymous(t *testing.T) {
	fixture := newMiddlewareFixture()
	router := gin.New()
	router.GET("/probe", fixture.middleware.Identify(), fixture.middleware.LoginRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	recorder := performRequest(router, "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestActiveRequiredRejectsInactiveUser(t *testing.T) {
	fixture := newMiddlewareFixture()
	user := fixture.addUser(1, "gopher", false)

	router := gin.New()
	router.GET("/probe", fixture.middleware.Identify(), fixture.middleware.ActiveRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	recorder := performRequest(router, fixture.tokenFor(user))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Inactive user")
}

func TestTeacherRequiredRejectsNonTeacher(t *testing.T) {
	fixture := newMiddlewareFixture()
	user := fixture.addUser(1, "gopher", true)

	router := gin.New()
	router.GET("/probe", fixture.middleware.Identify(), fixture.middleware.TeacherRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	recorder := performRequest(router, fixture.tokenFor(user))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "You are not a teacher")
}

func TestStudentRequiredStoresProfile(t *testing.T) {
	fixture := newMiddlewareFixture()
	user := fixture.addUser(1, "gopher", true)
	fixture.store.students[1] = &models.Student{ID: 7, UserID: 1}

	router := gin.New()
	router.GET("/probe", fixture.middleware.Identify(), fixture.middleware.StudentRequired(), func(c *gin.Context) {
		student := CurrentStudent(c)
		require.NotNil(t, student)
		assert.Equal(t, int64(7), student.ID)
		c.Status(http.StatusOK)
	})

	recorder := performRequest(router, fixture.tokenFor(user))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func performManageRequest(router *gin.Engine, slug, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/courses/"+slug+"/manage", nil)
	req.Header.Set("Authorization", authHeader)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestCourseOwnerRequired(t *testing.T) {
	fixture := newMiddlewareFixture()
	owner := fixture.addUser(1, "jane", true)
	other := fixture.addUser(2, "john", true)
	fixture.store.teachers[1] = &models.Teacher{ID: 3, UserID: 1}
	fixture.store.teachers[2] = &models.Teacher{ID: 4, UserID: 2}
	teacherID := int64(3)
	fixture.resolver.courses["learn-go-abc123"] = &models.Course{ID: 1, Slug: "learn-go-abc123", TeacherID: &teacherID}

	router := gin.New()
	router.GET("/courses/:slug/manage",
		fixture.middleware.Identify(),
		fixture.middleware.TeacherRequired(),
		fixture.middleware.CourseOwnerRequired(),
		func(c *gin.Context) {
			require.NotNil(t, CurrentCourse(c))
			c.Status(http.StatusOK)
		})

	recorder := performManageRequest(router, "learn-go-abc123", fixture.tokenFor(owner))
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = performManageRequest(router, "learn-go-abc123", fixture.tokenFor(other))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "You don't have permission to access.")

	recorder = performManageRequest(router, "no-such-course", fixture.tokenFor(owner))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Course not found")
}
