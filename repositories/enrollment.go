package repositories

import (
	"errors"

	courseModels "github.com/rashinkp/byway-sub000/models/course"

	"gorm.io/gorm"
)

// EnrollmentRepository reads enrollment records.
type EnrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// FindByUserAndCourse returns the user's enrollment in a course, or nil when
// none exists.
func (r *EnrollmentRepository) FindByUserAndCourse(userID, courseID uint) (*courseModels.Enrollment, error) {
	var e courseModels.Enrollment
	err := r.db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// LessonProgressRepository reads lesson-progress records.
type LessonProgressRepository struct {
	db *gorm.DB
}

func NewLessonProgressRepository(db *gorm.DB) *LessonProgressRepository {
	return &LessonProgressRepository{db: db}
}

// FindByEnrollment returns all progress rows recorded for an enrollment
// within a course.
func (r *LessonProgressRepository) FindByEnrollment(enrollmentID, courseID uint) ([]courseModels.LessonProgress, error) {
	var rows []courseModels.LessonProgress
	err := r.db.Where("enrollment_id = ? AND course_id = ? AND is_deleted = ?", enrollmentID, courseID, false).
		Find(&rows).Error
	return rows, err
}
