package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mohamed-Kaizen/teached/internal/app/models"
	"github.com/Mohamed-Kaizen/teached/internal/app/models/dto"
	"github.com/Mohamed-Kaizen/teached/internal/db"
	"github.com/Mohamed-Kaizen/teached/internal/pkg/apperrors"
)

var courseColumns = []string{
	"c.id", "c.title", "c.overview", "c.cover", "c.video", "c.level", "c.teacher_id",
	"c.price", "c.discount", "c.is_draft", "c.is_active", "c.slug", "c.created_at", "c.updated_at",
}

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

// CreateWithTaxonomy inserts a course together with its category and
// language links and requirement rows, all in one transaction, so a
// failed lookup insert leaves no half-built course behind. Returns the
// new course id.
func (r *CourseRepository) CreateWithTaxonomy(ctx context.Context, course *models.Course, categories, languages, requirements []string) (int64, error) {
	var courseID int64
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		id, err := createCourse(ctx, tx, course)
		if err != nil {
			return err
		}

		for _, name := range categories {
			categoryID, err := getOrCreateLookup(ctx, tx, "categories", name)
			if err != nil {
				return err
			}
			if err := attachLookup(ctx, tx, "course_categories", "category_id", id, categoryID); err != nil {
				return err
			}
		}

		for _, name := range languages {
			languageID, err := getOrCreateLookup(ctx, tx, "languages", name)
			if err != nil {
				return err
			}
			if err := attachLookup(ctx, tx, "course_languages", "language_id", id, languageID); err != nil {
				return err
			}
		}

		for _, name := range requirements {
			if err := insertRequirement(ctx, tx, id, name); err != nil {
				return err
			}
		}

		courseID = id
		return nil
	})
	if err != nil {
		return 0, err
	}

	return courseID, nil
}

func createCourse(ctx context.Context, q db.Querier, course *models.Course) (int64, error) {
	query := squirrel.Insert("courses").
		Columns("title", "overview", "level", "teacher_id", "price", "discount", "is_draft", "is_active", "slug").
		Values(course.Title, course.Overview, course.Level, course.TeacherID, course.Price, course.Discount, course.IsDraft, course.IsActive, course.Slug).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = q.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// publishedPredicate narrows any course query to catalog-visible rows.
// TODO: flip is_draft to FALSE once the publish endpoint lands.
func publishedPredicate(query squirrel.SelectBuilder) squirrel.SelectBuilder {
	return query.Where("c.is_draft = TRUE").Where("c.is_active = TRUE")
}

func scanCourse(row pgx.Row, course *models.Course, extra ...interface{}) error {
	dest := []interface{}{
		&course.ID,
		&course.Title,
		&course.Overview,
		&course.Cover,
		&course.Video,
		&course.Level,
		&course.TeacherID,
		&course.Price,
		&course.Discount,
		&course.IsDraft,
		&course.IsActive,
		&course.Slug,
		&course.CreatedAt,
		&course.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

// CourseWithTeacher pairs a course row with its author's username,
// empty when the teacher account is gone.
type CourseWithTeacher struct {
	Course          models.Course
	TeacherUsername string
}

// ListPublished retrieves catalog-visible courses matching the filter,
// with pagination. All filter matches are exact.
func (r *CourseRepository) ListPublished(ctx context.Context, filter dto.CourseFilter, offset, limit int) ([]CourseWithTeacher, int64, error) {
	query := squirrel.Select(courseColumns...).
		Column("COALESCE(u.username, '')").
		From("courses c").
		LeftJoin("teachers t ON t.id = c.teacher_id").
		LeftJoin("users u ON u.id = t.user_id").
		OrderBy("c.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	query = publishedPredicate(query)

	if filter.Search != "" {
		query = query.Where("c.title = ?", filter.Search)
	}
	if filter.Category != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM course_categories cc JOIN categories cat ON cat.id = cc.category_id WHERE cc.course_id = c.id AND cat.name = ?)",
			filter.Category,
		)
	}
	if filter.Language != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM course_languages cl JOIN languages lang ON lang.id = cl.language_id WHERE cl.course_id = c.id AND lang.name = ?)",
			filter.Language,
		)
	}
	if filter.Level != "" {
		query = query.Where("c.level = ?", filter.Level)
	}
	if filter.Price != "" {
		query = query.Where("c.price = ?", filter.Price)
	}
	if filter.Discount != "" {
		query = query.Where("c.discount = ?", filter.Discount)
	}

	query = query.Column("COUNT(*) OVER()").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var courses []CourseWithTeacher
	var total int64

	for rows.Next() {
		var entry CourseWithTeacher
		err := scanCourse(rows, &entry.Course, &entry.TeacherUsername, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		courses = append(courses, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, total, nil
}

// GetPublishedBySlug retrieves one catalog-visible course with its
// author's username, or ErrResourceNotFound.
func (r *CourseRepository) GetPublishedBySlug(ctx context.Context, slug string) (*CourseWithTeacher, error) {
	query := squirrel.Select(courseColumns...).
		Column("COALESCE(u.username, '')").
		From("courses c").
		LeftJoin("teachers t ON t.id = c.teacher_id").
		LeftJoin("users u ON u.id = t.user_id").
		Where("c.slug = ?", slug).
		PlaceholderFormat(squirrel.Dollar)

	query = publishedPredicate(query)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var entry CourseWithTeacher
	err = scanCourse(r.db.QueryRow(ctx, sql, args...), &entry.Course, &entry.TeacherUsername)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &entry, nil
}

// UpdateSettings applies the visibility and pricing changes present in
// the request. Nil fields are left untouched.
func (r *CourseRepository) UpdateSettings(ctx context.Context, courseID int64, settings dto.UpdateCourseSettingsRequest) error {
	query := squirrel.Update("courses").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", courseID).
		PlaceholderFormat(squirrel.Dollar)

	if settings.IsDraft != nil {
		query = query.Set("is_draft", *settings.IsDraft)
	}
	if settings.IsActive != nil {
		query = query.Set("is_active", *settings.IsActive)
	}
	if settings.Price != nil {
		query = query.Set("price", *settings.Price)
	}
	if settings.Discount != nil {
		query = query.Set("discount", *settings.Discount)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}

// UpdateCover stores the uploaded cover URL on a course
func (r *CourseRepository) UpdateCover(ctx context.Context, courseID int64, coverURL string) error {
	query := squirrel.Update("courses").
		Set("cover", coverURL).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", courseID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}
