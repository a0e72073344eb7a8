package models

import (
	"time"
)

// Section groups lectures and assignments inside a course. Titles are
// unique per course, so repeated creation with the same title resolves
// to the existing row.
type Section struct {
	ID        int64     `json:"id" db:"id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	Title     string    `json:"title" db:"title"`
	Objective string    `json:"objective" db:"objective"`
	Order     int       `json:"order" db:"sort_order"`
	Slug      string    `json:"slug" db:"slug"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Lecture is a single unit of study material within a section.
type Lecture struct {
	ID        int64     `json:"id" db:"id"`
	SectionID int64     `json:"sectionId" db:"section_id"`
	Title     string    `json:"title" db:"title"`
	Text      *string   `json:"text,omitempty" db:"text"`
	Video     *string   `json:"video,omitempty" db:"video"`
	Order     int       `json:"order" db:"sort_order"`
	Slug      string    `json:"slug" db:"slug"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Assignment is a graded task within a section.
type Assignment struct {
	ID          int64     `json:"id" db:"id"`
	SectionID   int64     `json:"sectionId" db:"section_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	File        *string   `json:"file,omitempty" db:"file"`
	Slug        string    `json:"slug" db:"slug"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Announcement is a teacher broadcast attached to a course.
type Announcement struct {
	ID          int64     `json:"id" db:"id"`
	CourseID    int64     `json:"courseId" db:"course_id"`
	TeacherID   int64     `json:"teacherId" db:"teacher_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Enrollment links a student to a course. At most one row per
// (student, course) pair, enforced by a unique constraint.
type Enrollment struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Review is a student rating of a course, one per (student, course).
// StudentID is nullable so reviews survive account deletion.
type Review struct {
	ID        int64     `json:"id" db:"id"`
	StudentID *int64    `json:"studentId,omitempty" db:"student_id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	Review    string    `json:"review" db:"review"`
	Rate      int       `json:"rate" db:"rate"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// BookMark saves a course for later, one per (student, course).
type BookMark struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
