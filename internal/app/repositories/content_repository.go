package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mohamed-Kaizen/teached/internal/app/models"
	"github.com/Mohamed-Kaizen/teached/internal/pkg/apperrors"
)

// ContentRepository handles sections, lectures, assignments and announcements
type ContentRepository struct {
	db *pgxpool.Pool
}

// NewContentRepository creates a new ContentRepository
func NewContentRepository(db *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{db: db}
}

// CreateSection inserts a section. The (course_id, title) unique
// constraint makes repeated creation return ErrAlreadyCreated, so the
// insert itself is the idempotency check.
func (r *ContentRepository) CreateSection(ctx context.Context, section *models.Section) error {
	query := squirrel.Insert("sections").
		Columns("course_id", "title", "objective", "sort_order", "slug").
		Values(section.CourseID, section.Title, section.Objective, section.Order, section.Slug).
		Suffix("ON CONFLICT (course_id, title) DO NOTHING RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&section.ID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.ErrAlreadyCreated
		}
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// GetSectionBySlug retrieves a section scoped to its course
func (r *ContentRepository) GetSectionBySlug(ctx context.Context, courseID int64, slug string) (*models.Section, error) {
	query := squirrel.Select("id", "course_id", "title", "objective", "sort_order", "slug", "created_at", "updated_at").
		From("sections").
		Where("course_id = ?", courseID).
		Where("slug = ?", slug).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var section models.Section
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&section.ID,
		&section.CourseID,
		&section.Title,
		&section.Objective,
		&section.Order,
		&section.Slug,
		&section.CreatedAt,
		&section.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &section, nil
}

// ListSections returns a course's sections in display order
func (r *ContentRepository) ListSections(ctx context.Context, courseID int64) ([]models.Section, error) {
	query := squirrel.Select("id", "course_id", "title", "objective", "sort_order", "slug", "created_at", "updated_at").
		From("sections").
		Where("course_id = ?", courseID).
		OrderBy("sort_order", "id").
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

	sections := []models.Section{}
	for rows.Next() {
		var section models.Section
		err := rows.Scan(
			&section.ID,
			&section.CourseID,
			&section.Title,
			&section.Objective,
			&section.Order,
			&section.Slug,
			&section.CreatedAt,
			&section.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		sections = append(sections, section)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return sections, nil
}

// CreateLecture inserts a lecture, ErrAlreadyCreated on a duplicate
// (section_id, title) pair.
func (r *ContentRepository) CreateLecture(ctx context.Context, lecture *models.Lecture) error {
	query := squirrel.Insert("lectures").
		Columns("section_id", "title", "text", "sort_order", "slug").
		Values(lecture.SectionID, lecture.Title, lecture.Text, lecture.Order, lecture.Slug).
		Suffix("ON CONFLICT (section_id, title) DO NOTHING RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&lecture.ID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.ErrAlreadyCreated
		}
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// CreateAssignment inserts an assignment, ErrAlreadyCreated on a
// duplicate (section_id, title) pair.
func (r *ContentRepository) CreateAssignment(ctx context.Context, assignment *models.Assignment) error {
	query := squirrel.Insert("assignments").
		Columns("section_id", "title", "description", "slug").
		Values(assignment.SectionID, assignment.Title, assignment.Description, assignment.Slug).
		Suffix("ON CONFLICT (section_id, title) DO NOTHING RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&assignment.ID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.ErrAlreadyCreated
		}
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// CreateAnnouncement inserts a course announcement
func (r *ContentRepository) CreateAnnouncement(ctx context.Context, announcement *models.Announcement) error {
	query := squirrel.Insert("announcements").
		Columns("course_id", "teacher_id", "title", "description").
		Values(announcement.CourseID, announcement.TeacherID, announcement.Title, announcement.Description).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&announcement.ID)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}
