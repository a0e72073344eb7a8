package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mohamed-Kaizen/teached/internal/app/models"
	"github.com/Mohamed-Kaizen/teached/internal/app/models/dto"
	"github.com/Mohamed-Kaizen/teached/internal/pkg/auth"
)

// Context keys for the resolved identity
const (
	contextUserKey    = "currentUser"
	contextTeacherKey = "currentTeacher"
	contextStudentKey = "currentStudent"
	contextCourseKey  = "currentCourse"
)

// IdentityStore resolves users and role profiles for the auth pipeline
type IdentityStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetTeacherByUserID(ctx context.Context, userID int64) (*models.Teacher, error)
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
}

// CourseResolver resolves catalog-visible courses for the ownership guard
type CourseResolver interface {
	GetPublished(ctx context.Context, slug string) (*models.Course, error)
}

// AuthMiddleware resolves the caller's identity and enforces access policy
type AuthMiddleware struct {
	jwtService *auth.JWTService
	users      IdentityStore
	courses    CourseResolver
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, users IdentityStore, courses CourseResolver) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		users:      users,
		courses:    courses,
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, message)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

func abortConflict(c *gin.Context, message string) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceConflict, message)
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}

// Identify resolves the caller from the Authorization header. A missing
// header passes through as anonymous; a header that is present but does
// not resolve to a live user never does.
func (m *AuthMiddleware) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			abortUnauthorized(c, "Invalid authorization header")
			return
		}

		claims, err := m.jwtService.Verify(tokenString)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		user, err := m.users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// LoginRequired rejects anonymous callers
func (m *AuthMiddleware) LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			abortUnauthorized(c, "Authentication required")
			return
		}
		c.Next()
	}
}

// ActiveRequired rejects deactivated accounts
func (m *AuthMiddleware) ActiveRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			abortUnauthorized(c, "Authentication required")
			return
		}
		if !user.IsActive {
			abortConflict(c, "Inactive user")
			return
		}
		c.Next()
	}
}

// TeacherRequired resolves the caller's teacher profile and stores it
// in the context.
func (m *AuthMiddleware) TeacherRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			abortUnauthorized(c, "Authentication required")
			return
		}

		teacher, err := m.users.GetTeacherByUserID(c.Request.Context(), user.ID)
		if err != nil {
			abortConflict(c, "You are not a teacher")
			return
		}

		c.Set(contextTeacherKey, teacher)
		c.Next()
	}
}

// StudentRequired resolves the caller's student profile and stores it
// in the context.
func (m *AuthMiddleware) StudentRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			abortUnauthorized(c, "Authentication required")
			return
		}

		student, err := m.users.GetStudentByUserID(c.Request.Context(), user.ID)
		if err != nil {
			abortConflict(c, "You are not a student")
			return
		}

		c.Set(contextStudentKey, student)
		c.Next()
	}
}

// CourseOwnerRequired resolves the course named by the slug parameter
// and rejects teachers who do not own it. Runs after TeacherRequired.
func (m *AuthMiddleware) CourseOwnerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		teacher := CurrentTeacher(c)
		if teacher == nil {
			abortUnauthorized(c, "Authentication required")
			return
		}

		course, err := m.courses.GetPublished(c.Request.Context(), c.Param("slug"))
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Course not found")
			c.AbortWithStatusJSON(http.StatusNotFound, dto.NewErrorResponse(errorDetail))
			return
		}

		if course.TeacherID == nil || *course.TeacherID != teacher.ID {
			abortUnauthorized(c, "You don't have permission to access.")
			return
		}

		c.Set(contextCourseKey, course)
		c.Next()
	}
}

// CurrentUser returns the identified user, nil for anonymous callers
func CurrentUser(c *gin.Context) *models.User {
	if value, exists := c.Get(contextUserKey); exists {
		if user, ok := value.(*models.User); ok {
			return user
		}
	}
	return nil
}

// CurrentTeacher returns the teacher profile stored by TeacherRequired
func CurrentTeacher(c *gin.Context) *models.Teacher {
	if value, exists := c.Get(contextTeacherKey); exists {
		if teacher, ok := value.(*models.Teacher); ok {
			return teacher
		}
	}
	return nil
}

// CurrentStudent returns the student profile stored by StudentRequired
func CurrentStudent(c *gin.Context) *models.Student {
	if value, exists := c.Get(contextStudentKey); exists {
		if student, ok := value.(*models.Student); ok {
			return student
		}
	}
	return nil
}

// CurrentCourse returns the course stored by CourseOwnerRequired
func CurrentCourse(c *gin.Context) *models.Course {
	if value, exists := c.Get(contextCourseKey); exists {
		if course, ok := value.(*models.Course); ok {
			return course
		}
	}
	return nil
}
