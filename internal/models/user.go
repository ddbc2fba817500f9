package models

import "time"

// Role identifies what a platform account is allowed to do.
type Role string

const (
	// RoleStudent can view entitled content and submit work.
	RoleStudent Role = "student"
	// RoleTeacher can publish content and grade submissions.
	RoleTeacher Role = "teacher"
	// RoleAdmin can run maintenance operations.
	RoleAdmin Role = "admin"
)

// User represents a platform account. Students carry a class/semester cohort
// identifier; a student without one never matches class-wide content.
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Email         string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Role          Role      `gorm:"size:32;not null" json:"role"`
	ClassSemester *string   `gorm:"size:128" json:"class_semester"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsStudent reports whether the account is a student.
func (u User) IsStudent() bool {
	return u.Role == RoleStudent
}

// IsTeacher reports whether the account is a teacher.
func (u User) IsTeacher() bool {
	return u.Role == RoleTeacher
}
