package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mohamed-Kaizen/teached/internal/db"
)

// TaxonomyRepository handles categories, languages and requirements
type TaxonomyRepository struct {
	db *pgxpool.Pool
}

// NewTaxonomyRepository creates a new TaxonomyRepository
func NewTaxonomyRepository(db *pgxpool.Pool) *TaxonomyRepository {
	return &TaxonomyRepository{db: db}
}

// GetOrCreateCategory resolves a category name to its id, creating the
// row when missing. The upsert makes concurrent creation converge on
// one row.
func (r *TaxonomyRepository) GetOrCreateCategory(ctx context.Context, name string) (int64, error) {
	return getOrCreateLookup(ctx, r.db, "categories", name)
}

// GetOrCreateLanguage resolves a language name to its id, creating the
// row when missing.
func (r *TaxonomyRepository) GetOrCreateLanguage(ctx context.Context, name string) (int64, error) {
	return getOrCreateLookup(ctx, r.db, "languages", name)
}

func getOrCreateLookup(ctx context.Context, q db.Querier, table, name string) (int64, error) {
	// DO UPDATE instead of DO NOTHING so RETURNING always yields a row.
	sql := fmt.Sprintf(
		"INSERT INTO %s (name) VALUES ($1) ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id",
		table,
	)

	var id int64
	err := q.QueryRow(ctx, sql, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

func attachLookup(ctx context.Context, q db.Querier, table, column string, courseID, valueID int64) error {
	sql := fmt.Sprintf(
		"INSERT INTO %s (course_id, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		table, column,
	)

	_, err := q.Exec(ctx, sql, courseID, valueID)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

func insertRequirement(ctx context.Context, q db.Querier, courseID int64, name string) error {
	query := squirrel.Insert("requirements").
		Columns("course_id", "name").
		Values(courseID, name).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	_, err = q.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// CategoryNames lists the category names attached to a course
func (r *TaxonomyRepository) CategoryNames(ctx context.Context, courseID int64) ([]string, error) {
	return r.lookupNames(ctx,
		squirrel.Select("cat.name").
			From("course_categories cc").
			Join("categories cat ON cat.id = cc.category_id").
			Where("cc.course_id = ?", courseID).
			OrderBy("cat.name"),
	)
}

// LanguageNames lists the language names attached to a course
func (r *TaxonomyRepository) LanguageNames(ctx context.Context, courseID int64) ([]string, error) {
	return r.lookupNames(ctx,
		squirrel.Select("lang.name").
			From("course_languages cl").
			Join("languages lang ON lang.id = cl.language_id").
			Where("cl.course_id = ?", courseID).
			OrderBy("lang.name"),
	)
}

// RequirementNames lists the prerequisite lines of a course
func (r *TaxonomyRepository) RequirementNames(ctx context.Context, courseID int64) ([]string, error) {
	return r.lookupNames(ctx,
		squirrel.Select("name").
			From("requirements").
			Where("course_id = ?", courseID).
			OrderBy("id"),
	)
}

func (r *TaxonomyRepository) lookupNames(ctx context.Context, query squirrel.SelectBuilder) ([]string, error) {
	sql, args, err := query.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return scanNames(rows)
}

func scanNames(rows pgx.Rows) ([]string, error) {
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return names, nil
}
