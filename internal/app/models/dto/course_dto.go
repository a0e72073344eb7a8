package dto

import (
	"strconv"
	"time"

	"github.com/Mohamed-Kaizen/teached/internal/app/models"
	"github.com/Mohamed-Kaizen/teached/internal/pkg/apperrors"
)

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	Title        string   `json:"title" binding:"required,min=1,max=100"`
	Overview     string   `json:"overview" binding:"required"`
	Categories   []string `json:"categories" binding:"required"`
	Languages    []string `json:"languages" binding:"required"`
	Requirements []string `json:"requirements" binding:"required"`
	Level        string   `json:"level" binding:"required,oneof=beginner intermediate expert all"`
	Price        float64  `json:"price"`
	Discount     *float64 `json:"discount,omitempty"`
}

// CreateCourseResponse carries the generated slug back to the caller
type CreateCourseResponse struct {
	Slug string `json:"slug"`
}

// CourseFilter holds the optional catalog narrowing parameters. All
// matches are exact, including the title search.
type CourseFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Language string `form:"language"`
	Level    string `form:"level"`
	Price    string `form:"price"`
	Discount string `form:"discount"`
}

// Validate rejects non-numeric price and discount values before they
// reach a numeric column comparison.
func (f CourseFilter) Validate() error {
	if f.Price != "" {
		if _, err := strconv.ParseFloat(f.Price, 64); err != nil {
			return apperrors.NewValidationError("price must be a number")
		}
	}
	if f.Discount != "" {
		if _, err := strconv.ParseFloat(f.Discount, 64); err != nil {
			return apperrors.NewValidationError("discount must be a number")
		}
	}
	return nil
}

// TeacherInfo identifies a course author by username only
type TeacherInfo struct {
	Username string `json:"username"`
}

// CourseSummary represents one catalog listing entry
type CourseSummary struct {
	Title      string       `json:"title"`
	Cover      *string      `json:"cover,omitempty"`
	Level      string       `json:"level"`
	Price      float64      `json:"price"`
	Discount   float64      `json:"discount"`
	Slug       string       `json:"slug"`
	Teacher    *TeacherInfo `json:"teacher,omitempty"`
	Categories []string     `json:"categories"`
	Languages  []string     `json:"languages"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// CourseListResponse represents a paginated catalog page
type CourseListResponse struct {
	Courses    []CourseSummary `json:"courses"`
	Pagination PaginationInfo  `json:"pagination"`
}

// SectionSummary represents a section inside a course detail payload
type SectionSummary struct {
	Title     string `json:"title"`
	Objective string `json:"objective"`
	Order     int    `json:"order"`
	Slug      string `json:"slug"`
}

// CourseDetailResponse represents the full course page, including the
// fields computed against the caller's identity.
type CourseDetailResponse struct {
	Title           string          `json:"title"`
	Overview        string          `json:"overview"`
	Level           string          `json:"level"`
	Cover           *string         `json:"cover,omitempty"`
	Video           *string         `json:"video,omitempty"`
	Price           float64         `json:"price"`
	Discount        float64         `json:"discount"`
	Enrollments     int             `json:"enrollments"`
	Reviews         int             `json:"reviews"`
	Rate            float64         `json:"rate"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	IsAuthenticated bool            `json:"isAuthenticated"`
	HasEnroll       bool            `json:"hasEnroll"`
	IsOwner         bool            `json:"isOwner"`
	Teacher         *TeacherInfo    `json:"teacher,omitempty"`
	Categories      []string        `json:"categories"`
	Languages       []string        `json:"languages"`
	Requirements    []string        `json:"requirements"`
	Sections        []SectionSummary `json:"sections"`
}

// UpdateCourseSettingsRequest toggles course visibility flags and
// pricing. Nil fields are left untouched.
type UpdateCourseSettingsRequest struct {
	IsDraft  *bool    `json:"isDraft,omitempty"`
	IsActive *bool    `json:"isActive,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Discount *float64 `json:"discount,omitempty"`
}

// CreateReviewRequest represents review creation data
type CreateReviewRequest struct {
	Review string `json:"review" binding:"required"`
	Rate   int    `json:"rate" binding:"required,gte=1,lte=5"`
}

// ReviewResponse represents one review in the public review list
type ReviewResponse struct {
	Review string      `json:"review"`
	Rate   int         `json:"rate"`
	User   ReviewAuthor `json:"user"`
}

// ReviewAuthor identifies a reviewer. Username is empty when the
// account has been deleted.
type ReviewAuthor struct {
	Username string `json:"username"`
}

// CreateSectionRequest represents section creation data
type CreateSectionRequest struct {
	Title     string `json:"title" binding:"required,min=1,max=100"`
	Objective string `json:"objective" binding:"required"`
	Order     int    `json:"order"`
}

// SectionResponse represents a created section
type SectionResponse struct {
	Title     string `json:"title"`
	Objective string `json:"objective"`
	Order     int    `json:"order"`
	Slug      string `json:"slug"`
}

// CreateLectureRequest represents lecture creation data
type CreateLectureRequest struct {
	Title string  `json:"title" binding:"required,min=1,max=100"`
	Text  *string `json:"text,omitempty"`
	Order int     `json:"order"`
}

// LectureResponse represents a created lecture
type LectureResponse struct {
	Title string  `json:"title"`
	Text  *string `json:"text,omitempty"`
	Video *string `json:"video,omitempty"`
	Order int     `json:"order"`
	Slug  string  `json:"slug"`
}

// CreateAssignmentRequest represents assignment creation data
type CreateAssignmentRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"required"`
}

// AssignmentResponse represents a created assignment
type AssignmentResponse struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	File        *string `json:"file,omitempty"`
	Slug        string  `json:"slug"`
}

// CreateAnnouncementRequest represents announcement creation data
type CreateAnnouncementRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"required"`
}

// BookmarkedCourse represents one saved course in the bookmark list
type BookmarkedCourse struct {
	Title string  `json:"title"`
	Cover *string `json:"cover,omitempty"`
	Slug  string  `json:"slug"`
}

// EnrolledCourse represents one course in the student classroom
type EnrolledCourse struct {
	Title      string    `json:"title"`
	Cover      *string   `json:"cover,omitempty"`
	Level      string    `json:"level"`
	Slug       string    `json:"slug"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

// CoverUploadResponse carries the stored cover URL
type CoverUploadResponse struct {
	Cover string `json:"cover"`
}

// FromCourseSummary builds a listing entry from a course and its
// preloaded associations.
func FromCourseSummary(course *models.Course, teacherUsername string, categories, languages []string) CourseSummary {
	summary := CourseSummary{
		Title:      course.Title,
		Cover:      course.Cover,
		Level:      string(course.Level),
		Price:      course.Price,
		Discount:   course.Discount,
		Slug:       course.Slug,
		Categories: categories,
		Languages:  languages,
		CreatedAt:  course.CreatedAt,
	}
	if teacherUsername != "" {
		summary.Teacher = &TeacherInfo{Username: teacherUsername}
	}
	return summary
}
