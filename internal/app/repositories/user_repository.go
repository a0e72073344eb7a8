package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mohamed-Kaizen/teached/internal/app/models"
	"github.com/Mohamed-Kaizen/teached/internal/db"
	"github.com/Mohamed-Kaizen/teached/internal/pkg/apperrors"
	"github.com/Mohamed-Kaizen/teached/internal/pkg/dberrors"
)

var userColumns = []string{
	"id", "username", "email", "password", "full_name", "bio", "phone_number",
	"is_superuser", "is_active", "last_login", "joined_at",
}

// UserRepository handles database operations for users and their role profiles
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password,
		&user.FullName,
		&user.Bio,
		&user.PhoneNumber,
		&user.IsSuperuser,
		&user.IsActive,
		&user.LastLoginAt,
		&user.JoinedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateWithProfile inserts the user and its role profile in one
// transaction, so a failed profile insert leaves no orphaned user row.
// Duplicate username or email surfaces as the matching conflict
// sentinel.
func (r *UserRepository) CreateWithProfile(ctx context.Context, user *models.User, role models.Role) (int64, error) {
	var userID int64
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		id, err := createUser(ctx, tx, user)
		if err != nil {
			return err
		}

		var table string
		switch role {
		case models.RoleTeacher:
			table = "teachers"
		case models.RoleStudent:
			table = "students"
		default:
			return apperrors.NewValidationError("become must be Teacher or Student")
		}
		if _, err := createRoleProfile(ctx, tx, table, id); err != nil {
			return err
		}

		userID = id
		return nil
	})
	if err != nil {
		return 0, err
	}

	return userID, nil
}

func createUser(ctx context.Context, q db.Querier, user *models.User) (int64, error) {
	query := squirrel.Insert("users").
		Columns("username", "email", "password", "full_name", "bio", "phone_number").
		Values(user.Username, user.Email, user.Password, user.FullName, user.Bio, user.PhoneNumber).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = q.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		return 0, mapUserUniqueViolation(err)
	}

	return id, nil
}

func mapUserUniqueViolation(err error) error {
	switch {
	case dberrors.IsUniqueViolationOn(err, "users_username_key"):
		return apperrors.ErrUsernameTaken
	case dberrors.IsUniqueViolationOn(err, "users_email_key"):
		return apperrors.ErrEmailTaken
	default:
		return fmt.Errorf("error executing query: %w", err)
	}
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := squirrel.Select(userColumns...).
		From("users").
		Where("username = ?", username).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by primary key
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := squirrel.Select(userColumns...).
		From("users").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return user, nil
}

// UpdatePersonalInfo updates the freeform profile fields by username.
// Nil fields are left untouched.
func (r *UserRepository) UpdatePersonalInfo(ctx context.Context, username string, fullName, bio, phoneNumber *string) error {
	query := squirrel.Update("users").
		Where("username = ?", username).
		PlaceholderFormat(squirrel.Dollar)

	changed := false
	if fullName != nil {
		query = query.Set("full_name", *fullName)
		changed = true
	}
	if bio != nil {
		query = query.Set("bio", *bio)
		changed = true
	}
	if phoneNumber != nil {
		query = query.Set("phone_number", *phoneNumber)
		changed = true
	}
	if !changed {
		return nil
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

// UpdateGeneralInfo updates username and email. Duplicates surface as
// conflict sentinels.
func (r *UserRepository) UpdateGeneralInfo(ctx context.Context, username string, newUsername, newEmail *string) error {
	query := squirrel.Update("users").
		Where("username = ?", username).
		PlaceholderFormat(squirrel.Dollar)

	changed := false
	if newUsername != nil {
		query = query.Set("username", *newUsername)
		changed = true
	}
	if newEmail != nil {
		query = query.Set("email", *newEmail)
		changed = true
	}
	if !changed {
		return nil
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return mapUserUniqueViolation(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error {
	query := squirrel.Update("users").
		Set("password", hashedPassword).
		Where("id = ?", userID).
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

// UpdateLastLogin stamps the user's last successful authentication
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	query := squirrel.Update("users").
		Set("last_login", squirrel.Expr("NOW()")).
		Where("id = ?", userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

func createRoleProfile(ctx context.Context, q db.Querier, table string, userID int64) (int64, error) {
	query := squirrel.Insert(table).
		Columns("user_id").
		Values(userID).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = q.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrConflict
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// GetTeacherByUserID retrieves the teacher profile for a user, or
// ErrNotTeacher when the user has none.
func (r *UserRepository) GetTeacherByUserID(ctx context.Context, userID int64) (*models.Teacher, error) {
	query := squirrel.Select("id", "user_id").
		From("teachers").
		Where("user_id = ?", userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var teacher models.Teacher
	err = r.db.QueryRow(ctx, sql, args...).Scan(&teacher.ID, &teacher.UserID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotTeacher
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &teacher, nil
}

// GetStudentByUserID retrieves the student profile for a user, or
// ErrNotStudent when the user has none.
func (r *UserRepository) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	query := squirrel.Select("id", "user_id").
		From("students").
		Where("user_id = ?", userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var student models.Student
	err = r.db.QueryRow(ctx, sql, args...).Scan(&student.ID, &student.UserID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotStudent
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &student, nil
}
