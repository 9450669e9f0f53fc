package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment tracks a user's enrollment in a course with progress
type Enrollment struct {
	gorm.Model
	UserID           uint       `json:"user_id" gorm:"index;not null"`
	CourseID         uint       `json:"course_id" gorm:"index;not null"`
	Status           string     `json:"status" gorm:"default:'ENROLLED'"`      // ENROLLED, IN_PROGRESS, COMPLETED
	AccessStatus     string     `json:"access_status" gorm:"default:'ACTIVE'"` // ACTIVE, BLOCKED
	Progress         float64    `json:"progress" gorm:"default:0"`             // Completion percentage (0-100)
	CompletedLessons int        `json:"completed_lessons" gorm:"default:0"`
	TotalLessons     int        `json:"total_lessons" gorm:"default:0"`
	CompletedAt      *time.Time `json:"completed_at"`
	IsDeleted        bool       `gorm:"default:false"`

	Course Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

// LessonProgress tracks a user's progress through a single lesson
type LessonProgress struct {
	gorm.Model
	EnrollmentID uint       `json:"enrollment_id" gorm:"index;not null"`
	UserID       uint       `json:"user_id" gorm:"index;not null"`
	CourseID     uint       `json:"course_id" gorm:"index;not null"`
	LessonID     uint       `json:"lesson_id" gorm:"index;not null"`
	Completed    bool       `json:"completed" gorm:"default:false"`
	CompletedAt  *time.Time `json:"completed_at"`
	Score        *int       `json:"score"` // Quiz score percentage, nil for non-quiz lessons
	IsDeleted    bool       `gorm:"default:false"`
}
