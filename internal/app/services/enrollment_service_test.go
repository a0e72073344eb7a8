package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohamed-Kaizen/teached/internal/app/models"
	"github.com/Mohamed-Kaizen/teached/internal/app/models/dto"
	"github.com/Mohamed-Kaizen/teached/internal/pkg/apperrors"
)

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

type pair struct{ studentID, courseID int64 }

type fakeEngagementStore struct {
	enrollments map[pair]bool
	reviews     map[pair]bool
	bookmarks   map[pair]bool
	ratingCount int
	ratingSum   int
}

func newFakeEngagementStore() *fakeEngagementStore {
	return &fakeEngagementStore{
		enrollments: make(map[pair]bool),
		reviews:     make(map[pair]bool),
		bookmarks:   make(map[pair]bool),
	}
}

func (f *fakeEngagementStore) HasEnrollment(ctx context.Context, studentID, courseID int64) (bool, error) {
	return f.enrollments[pair{studentID, courseID}], nil
}

func (f *fakeEngagementStore) HasReview(ctx context.Context, studentID, courseID int64) (bool, error) {
	return f.reviews[pair{studentID, courseID}], nil
}

func (f *fakeEngagementStore) HasBookmark(ctx context.Context, studentID, courseID int64) (bool, error) {
	return f.bookmarks[pair{studentID, courseID}], nil
}

func (f *fakeEngagementStore) CreateEnrollment(ctx context.Context, studentID, courseID int64) error {
	key := pair{studentID, courseID}
	if f.enrollments[key] {
		return apperrors.ErrAlreadyEnrolled
	}
	f.enrollments[key] = true
	return nil
}

func (f *fakeEngagementStore) CreateReview(ctx context.Context, review *models.Review) error {
	key := pair{*review.StudentID, review.CourseID}
	if f.reviews[key] {
		return apperrors.ErrAlreadyReviewed
	}
	f.reviews[key] = true
	return nil
}

func (f *fakeEngagementStore) CreateBookmark(ctx context.Context, studentID, courseID int64) error {
	key := pair{studentID, courseID}
	if f.bookmarks[key] {
		return apperrors.ErrAlreadyBookmarked
	}
	f.bookmarks[key] = true
	return nil
}

func (f *fakeEngagementStore) CountEnrollments(ctx context.Context, courseID int64) (int, error) {
	count := 0
	for key := range f.enrollments {
		if key.courseID == courseID {
			count++
		}
	}
	return count, nil
}

func (f *fakeEngagementStore) RatingStats(ctx context.Context, courseID int64) (int, int, error) {
	return f.ratingCount, f.ratingSum, nil
}

func (f *fakeEngagementStore) ListReviews(ctx context.Context, courseID int64) ([]dto.ReviewResponse, error) {
	return nil, nil
}

func (f *fakeEngagementStore) ListBookmarks(ctx context.Context, studentID int64) ([]dto.BookmarkedCourse, error) {
	return nil, nil
}

func (f *fakeEngagementStore) ListEnrolledCourses(ctx context.Context, studentID int64) ([]dto.EnrolledCourse, error) {
	return nil, nil
}

type fakePaymentGateway struct {
	authorizedAmount float64
	captured         bool
	authorizeErr     error
}

func (f *fakePaymentGateway) Authorize(ctx context.Context, amount float64, reference string) (string, error) {
	if f.authorizeErr != nil {
		return "", f.authorizeErr
	}
	f.authorizedAmount = amount
	return "auth-1", nil
}

func (f *fakePaymentGateway) Capture(ctx context.Context, authorizationID string) error {
	f.captured = true
	return nil
}

func freeCourse() *models.Course {
	return &models.Course{ID: 1, Title: "Learn Go", Slug: "learn-go-abc123"}
}

func paidCourse() *models.Course {
	return &models.Course{ID: 2, Title: "Advanced Go", Slug: "advanced-go-xyz789", Price: 50, Discount: 10}
}

func newTestEnrollmentService(engagement *fakeEngagementStore, payment *fakePaymentGateway) *EnrollmentService {
	resolver := &fakeCourseResolver{courses: map[string]*models.Course{
		"learn-go-abc123":    freeCourse(),
		"advanced-go-xyz789": paidCourse(),
	}}
	return NewEnrollmentService(resolver, engagement, payment, zerolog.Nop())
}

func TestEnrollFreeCourse(t *testing.T) {
	engagement := newFakeEngagementStore()
	payment := &fakePaymentGateway{}
	service := newTestEnrollmentService(engagement, payment)
	student := &models.Student{ID: 7}

	message, err := service.Enroll(context.Background(), "learn-go-abc123", student)
	require.NoError(t, err)

	assert.Contains(t, message, "Learn Go")
	assert.True(t, engagement.enrollments[pair{7, 1}])
	assert.Zero(t, payment.authorizedAmount)
	assert.False(t, payment.captured)
}

func TestEnrollPaidCourseChargesDiscountedPrice(t *testing.T) {
	engagement := newFakeEngagementStore()
	payment := &fakePaymentGateway{}
	service := newTestEnrollmentService(engagement, payment)
	student := &models.Student{ID: 7}

	_, err := service.Enroll(context.Background(), "advanced-go-xyz789", student)
	require.NoError(t, err)

	assert.Equal(t, 40.0, payment.authorizedAmount)
	assert.True(t, payment.captured)
	assert.True(t, engagement.enrollments[pair{7, 2}])
}

func TestEnrollPaymentFailureBlocksEnrollment(t *testing.T) {
	engagement := newFakeEngagementStore()
	payment := &fakePaymentGateway{authorizeErr: errors.New("card declined")}
	service := newTestEnrollmentService(engagement, payment)
	student := &models.Student{ID: 7}

	_, err := service.Enroll(context.Background(), "advanced-go-xyz789", student)

	assert.ErrorIs(t, err, apperrors.ErrPaymentFailed)
	assert.False(t, engagement.enrollments[pair{7, 2}])
}

func TestEnrollTwiceIsConflict(t *testing.T) {
	engagement := newFakeEngagementStore()
	service := newTestEnrollmentService(engagement, &fakePaymentGateway{})
	student := &models.Student{ID: 7}

	_, err := service.Enroll(context.Background(), "learn-go-abc123", student)
	require.NoError(t, err)

	_, err = service.Enroll(context.Background(), "learn-go-abc123", student)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
	assert.Contains(t, err.Error(), "Learn Go")
}

func TestEnrollUnknownCourse(t *testing.T) {
	service := newTestEnrollmentService(newFakeEngagementStore(), &fakePaymentGateway{})
	student := &models.Student{ID: 7}

	_, err := service.Enroll(context.Background(), "no-such-course", student)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestReviewRequiresEnrollment(t *testing.T) {
	engagement := newFakeEngagementStore()
	service := newTestEnrollmentService(engagement, &fakePaymentGateway{})
	student := &models.Student{ID: 7}
	req := dto.CreateReviewRequest{Review: "great course", Rate: 5}

	_, err := service.Review(context.Background(), "learn-go-abc123", student, req)
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentRequired)

	_, err = service.Enroll(context.Background(), "learn-go-abc123", student)
	require.NoError(t, err)

	message, err := service.Review(context.Background(), "learn-go-abc123", student, req)
	require.NoError(t, err)
	assert.Equal(t, "review has been created.", message)
}

func TestReviewTwiceIsConflict(t *testing.T) {
	engagement := newFakeEngagementStore()
	service := newTestEnrollmentService(engagement, &fakePaymentGateway{})
	student := &models.Student{ID: 7}
	req := dto.CreateReviewRequest{Review: "great course", Rate: 5}

	_, err := service.Enroll(context.Background(), "learn-go-abc123", student)
	require.NoError(t, err)
	_, err = service.Review(context.Background(), "learn-go-abc123", student, req)
	require.NoError(t, err)

	_, err = service.Review(context.Background(), "learn-go-abc123", student, req)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyReviewed)
}

func TestBookmarkTwiceIsConflict(t *testing.T) {
	engagement := newFakeEngagementStore()
	service := newTestEnrollmentService(engagement, &fakePaymentGateway{})
	student := &models.Student{ID: 7}

	message, err := service.Bookmark(context.Background(), "learn-go-abc123", student)
	require.NoError(t, err)
	assert.Contains(t, message, "Learn Go")

	_, err = service.Bookmark(context.Background(), "learn-go-abc123", student)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyBookmarked)
}
