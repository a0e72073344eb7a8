package models

import (
	"time"
)

// Level is the course difficulty level.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelExpert       Level = "expert"
	LevelAll          Level = "all"
)

// ValidLevel reports whether s is a known course level.
func ValidLevel(s string) bool {
	switch Level(s) {
	case LevelBeginner, LevelIntermediate, LevelExpert, LevelAll:
		return true
	}
	return false
}

// Course is the root aggregate for catalog content. TeacherID is
// nullable: deleting a teacher orphans their courses rather than
// removing them from the catalog.
type Course struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Overview  string    `json:"overview" db:"overview"`
	Cover     *string   `json:"cover,omitempty" db:"cover"`
	Video     *string   `json:"video,omitempty" db:"video"`
	Level     Level     `json:"level" db:"level"`
	TeacherID *int64    `json:"teacherId,omitempty" db:"teacher_id"`
	Price     float64   `json:"price" db:"price"`
	Discount  float64   `json:"discount" db:"discount"`
	IsDraft   bool      `json:"isDraft" db:"is_draft"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	Slug      string    `json:"slug" db:"slug"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Category is a normalized lookup value, stored capitalized.
type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Language is a normalized lookup value, stored capitalized.
type Language struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Requirement is a prerequisite line attached to a course.
type Requirement struct {
	ID       int64  `json:"id" db:"id"`
	CourseID int64  `json:"courseId" db:"course_id"`
	Name     string `json:"name" db:"name"`
}
