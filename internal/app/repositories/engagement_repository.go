package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mohamed-Kaizen/teached/internal/app/models"
	"github.com/Mohamed-Kaizen/teached/internal/app/models/dto"
	"github.com/Mohamed-Kaizen/teached/internal/pkg/apperrors"
	"github.com/Mohamed-Kaizen/teached/internal/pkg/dberrors"
)

// EngagementRepository handles enrollments, reviews and bookmarks
type EngagementRepository struct {
	db *pgxpool.Pool
}

// NewEngagementRepository creates a new EngagementRepository
func NewEngagementRepository(db *pgxpool.Pool) *EngagementRepository {
	return &EngagementRepository{db: db}
}

func (r *EngagementRepository) exists(ctx context.Context, table string, studentID, courseID int64) (bool, error) {
	query := squirrel.Select("1").
		From(table).
		Where("student_id = ?", studentID).
		Where("course_id = ?", courseID).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return true, nil
}

// HasEnrollment reports whether the student is enrolled in the course
func (r *EngagementRepository) HasEnrollment(ctx context.Context, studentID, courseID int64) (bool, error) {
	return r.exists(ctx, "enrollments", studentID, courseID)
}

// HasReview reports whether the student has reviewed the course
func (r *EngagementRepository) HasReview(ctx context.Context, studentID, courseID int64) (bool, error) {
	return r.exists(ctx, "reviews", studentID, courseID)
}

// HasBookmark reports whether the student has bookmarked the course
func (r *EngagementRepository) HasBookmark(ctx context.Context, studentID, courseID int64) (bool, error) {
	return r.exists(ctx, "bookmarks", studentID, courseID)
}

// CreateEnrollment inserts an enrollment row. A concurrent duplicate
// surfaces as ErrAlreadyEnrolled via the unique constraint.
func (r *EngagementRepository) CreateEnrollment(ctx context.Context, studentID, courseID int64) error {
	return r.createLink(ctx, "enrollments", studentID, courseID, apperrors.ErrAlreadyEnrolled)
}

// CreateBookmark inserts a bookmark row. A concurrent duplicate
// surfaces as ErrAlreadyBookmarked via the unique constraint.
func (r *EngagementRepository) CreateBookmark(ctx context.Context, studentID, courseID int64) error {
	return r.createLink(ctx, "bookmarks", studentID, courseID, apperrors.ErrAlreadyBookmarked)
}

func (r *EngagementRepository) createLink(ctx context.Context, table string, studentID, courseID int64, conflictErr error) error {
	query := squirrel.Insert(table).
		Columns("student_id", "course_id").
		Values(studentID, courseID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return conflictErr
		}
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// CreateReview inserts a review row. A concurrent duplicate surfaces as
// ErrAlreadyReviewed via the unique constraint.
func (r *EngagementRepository) CreateReview(ctx context.Context, review *models.Review) error {
	query := squirrel.Insert("reviews").
		Columns("student_id", "course_id", "review", "rate").
		Values(review.StudentID, review.CourseID, review.Review, review.Rate).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyReviewed
		}
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// CountEnrollments returns the number of students enrolled in a course
func (r *EngagementRepository) CountEnrollments(ctx context.Context, courseID int64) (int, error) {
	return r.count(ctx, "enrollments", courseID)
}

func (r *EngagementRepository) count(ctx context.Context, table string, courseID int64) (int, error) {
	query := squirrel.Select("COUNT(*)").
		From(table).
		Where("course_id = ?", courseID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var n int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return n, nil
}

// RatingStats returns the review count and rate sum for a course, both
// zero when the course has no reviews.
func (r *EngagementRepository) RatingStats(ctx context.Context, courseID int64) (count int, sum int, err error) {
	query := squirrel.Select("COUNT(*)", "COALESCE(SUM(rate), 0)").
		From("reviews").
		Where("course_id = ?", courseID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&count, &sum)
	if err != nil {
		return 0, 0, fmt.Errorf("error executing query: %w", err)
	}

	return count, sum, nil
}

// ListReviews returns the public review list for a course. Reviews from
// deleted accounts keep an empty username.
func (r *EngagementRepository) ListReviews(ctx context.Context, courseID int64) ([]dto.ReviewResponse, error) {
	query := squirrel.Select("rv.review", "rv.rate", "COALESCE(u.username, '')").
		From("reviews rv").
		LeftJoin("students s ON s.id = rv.student_id").
		LeftJoin("users u ON u.id = s.user_id").
		Where("rv.course_id = ?", courseID).
		OrderBy("rv.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	reviews := []dto.ReviewResponse{}
	for rows.Next() {
		var review dto.ReviewResponse
		if err := rows.Scan(&review.Review, &review.Rate, &review.User.Username); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return reviews, nil
}

// ListBookmarks returns the student's saved courses, newest first
func (r *EngagementRepository) ListBookmarks(ctx context.Context, studentID int64) ([]dto.BookmarkedCourse, error) {
	query := squirrel.Select("c.title", "c.cover", "c.slug").
		From("bookmarks b").
		Join("courses c ON c.id = b.course_id").
		Where("b.student_id = ?", studentID).
		OrderBy("b.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	bookmarks := []dto.BookmarkedCourse{}
	for rows.Next() {
		var bookmark dto.BookmarkedCourse
		if err := rows.Scan(&bookmark.Title, &bookmark.Cover, &bookmark.Slug); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		bookmarks = append(bookmarks, bookmark)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return bookmarks, nil
}

// ListEnrolledCourses returns the student's classroom, newest first
func (r *EngagementRepository) ListEnrolledCourses(ctx context.Context, studentID int64) ([]dto.EnrolledCourse, error) {
	query := squirrel.Select("c.title", "c.cover", "c.level", "c.slug", "e.created_at").
		From("enrollments e").
		Join("courses c ON c.id = e.course_id").
		Where("e.student_id = ?", studentID).
		OrderBy("e.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	courses := []dto.EnrolledCourse{}
	for rows.Next() {
		var course dto.EnrolledCourse
		if err := rows.Scan(&course.Title, &course.Cover, &course.Level, &course.Slug, &course.EnrolledAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, nil
}
