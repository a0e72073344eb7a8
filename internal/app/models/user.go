package models

import (
	"time"
)

// User defines the identity root based on the 'users' table.
type User struct {
	ID          int64      `json:"id" db:"id"`
	Username    string     `json:"username" db:"username"`
	Email       string     `json:"email" db:"email"`
	Password    string     `json:"-" db:"password"` // bcrypt hash, never plaintext
	FullName    *string    `json:"fullName,omitempty" db:"full_name"`
	Bio         *string    `json:"bio,omitempty" db:"bio"`
	PhoneNumber *string    `json:"phoneNumber,omitempty" db:"phone_number"`
	IsSuperuser bool       `json:"-" db:"is_superuser"`
	IsActive    bool       `json:"isActive" db:"is_active"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	JoinedAt    time.Time  `json:"joinedAt" db:"joined_at"`
}

// Teacher is a role extension of User. Role membership is a row, not
// an enum field, so a user may hold both roles at once.
type Teacher struct {
	ID     int64 `json:"id" db:"id"`
	UserID int64 `json:"userId" db:"user_id"`
	User   *User `json:"user,omitempty"`
}

// Student is the student role extension of User.
type Student struct {
	ID     int64 `json:"id" db:"id"`
	UserID int64 `json:"userId" db:"user_id"`
	User   *User `json:"user,omitempty"`
}

// Role names accepted at registration.
type Role string

const (
	RoleTeacher Role = "Teacher"
	RoleStudent Role = "Student"
)
