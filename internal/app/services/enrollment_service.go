package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Mohamed-Kaizen/teached/internal/app/models"
	"github.com/Mohamed-Kaizen/teached/internal/app/models/dto"
	"github.com/Mohamed-Kaizen/teached/internal/pkg/apperrors"
)

// EngagementStore is the persistence surface for enrollments, reviews
// and bookmarks.
type EngagementStore interface {
	HasEnrollment(ctx context.Context, studentID, courseID int64) (bool, error)
	HasReview(ctx context.Context, studentID, courseID int64) (bool, error)
	HasBookmark(ctx context.Context, studentID, courseID int64) (bool, error)
	CreateEnrollment(ctx context.Context, studentID, courseID int64) error
	CreateReview(ctx context.Context, review *models.Review) error
	CreateBookmark(ctx context.Context, studentID, courseID int64) error
	CountEnrollments(ctx context.Context, courseID int64) (int, error)
	RatingStats(ctx context.Context, courseID int64) (count int, sum int, err error)
	ListReviews(ctx context.Context, courseID int64) ([]dto.ReviewResponse, error)
	ListBookmarks(ctx context.Context, studentID int64) ([]dto.BookmarkedCourse, error)
	ListEnrolledCourses(ctx context.Context, studentID int64) ([]dto.EnrolledCourse, error)
}

// CourseResolver resolves catalog-visible courses by slug
type CourseResolver interface {
	GetPublished(ctx context.Context, slug string) (*models.Course, error)
}

// EnrollmentService handles the student engagement state machines
type EnrollmentService struct {
	courses    CourseResolver
	engagement EngagementStore
	payment    PaymentGateway
	logger     zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	courses CourseResolver,
	engagement EngagementStore,
	payment PaymentGateway,
	logger zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		courses:    courses,
		engagement: engagement,
		payment:    payment,
		logger:     logger,
	}
}

// Enroll adds the student to a published course, charging them first
// when the course has a price. Enrolling twice is a conflict whether it
// is caught by the pre-check or by the unique constraint underneath.
func (s *EnrollmentService) Enroll(ctx context.Context, slug string, student *models.Student) (string, error) {
	course, err := s.courses.GetPublished(ctx, slug)
	if err != nil {
		return "", err
	}

	enrolled, err := s.engagement.HasEnrollment(ctx, student.ID, course.ID)
	if err != nil {
		return "", err
	}
	if enrolled {
		return "", apperrors.NewCustomError(apperrors.ErrAlreadyEnrolled,
			fmt.Sprintf("You already enrolled to %s", course.Title))
	}

	if course.Price > 0 {
		reference := fmt.Sprintf("course:%d:student:%d", course.ID, student.ID)
		authorizationID, err := s.payment.Authorize(ctx, course.Price-course.Discount, reference)
		if err != nil {
			return "", apperrors.NewCustomError(apperrors.ErrPaymentFailed, "Payment could not be processed")
		}
		if err := s.payment.Capture(ctx, authorizationID); err != nil {
			return "", apperrors.NewCustomError(apperrors.ErrPaymentFailed, "Payment could not be processed")
		}
	}

	if err := s.engagement.CreateEnrollment(ctx, student.ID, course.ID); err != nil {
		return "", err
	}

	s.logger.Info().Str("slug", slug).Int64("studentId", student.ID).Msg("Student enrolled")
	return fmt.Sprintf("Yea! you have enrolled to %s, go and enjoy the course now :)", course.Title), nil
}

// Review records the student's rating of a course they are enrolled in
func (s *EnrollmentService) Review(ctx context.Context, slug string, student *models.Student, req dto.CreateReviewRequest) (string, error) {
	course, err := s.courses.GetPublished(ctx, slug)
	if err != nil {
		return "", err
	}

	enrolled, err := s.engagement.HasEnrollment(ctx, student.ID, course.ID)
	if err != nil {
		return "", err
	}
	if !enrolled {
		return "", apperrors.NewCustomError(apperrors.ErrEnrollmentRequired,
			"You need to enroll to the course first")
	}

	reviewed, err := s.engagement.HasReview(ctx, student.ID, course.ID)
	if err != nil {
		return "", err
	}
	if reviewed {
		return "", apperrors.NewCustomError(apperrors.ErrAlreadyReviewed,
			"You already review this course")
	}

	review := &models.Review{
		StudentID: &student.ID,
		CourseID:  course.ID,
		Review:    req.Review,
		Rate:      req.Rate,
	}
	if err := s.engagement.CreateReview(ctx, review); err != nil {
		return "", err
	}

	return "review has been created.", nil
}

// Bookmark saves a published course for the student
func (s *EnrollmentService) Bookmark(ctx context.Context, slug string, student *models.Student) (string, error) {
	course, err := s.courses.GetPublished(ctx, slug)
	if err != nil {
		return "", err
	}

	bookmarked, err := s.engagement.HasBookmark(ctx, student.ID, course.ID)
	if err != nil {
		return "", err
	}
	if bookmarked {
		return "", apperrors.NewCustomError(apperrors.ErrAlreadyBookmarked,
			fmt.Sprintf("You already bookmark %s", course.Title))
	}

	if err := s.engagement.CreateBookmark(ctx, student.ID, course.ID); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s has been bookmarked :)", course.Title), nil
}

// Reviews returns the public review list of a published course
func (s *EnrollmentService) Reviews(ctx context.Context, slug string) ([]dto.ReviewResponse, error) {
	course, err := s.courses.GetPublished(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.engagement.ListReviews(ctx, course.ID)
}

// Bookmarks returns the student's saved courses
func (s *EnrollmentService) Bookmarks(ctx context.Context, student *models.Student) ([]dto.BookmarkedCourse, error) {
	return s.engagement.ListBookmarks(ctx, student.ID)
}

// Classroom returns the student's enrolled courses
func (s *EnrollmentService) Classroom(ctx context.Context, student *models.Student) ([]dto.EnrolledCourse, error) {
	return s.engagement.ListEnrolledCourses(ctx, student.ID)
}
