package repositories

import (
	"errors"

	courseModels "github.com/rashinkp/byway-sub000/models/course"

	"gorm.io/gorm"
)

// CourseRepository reads and writes course records.
type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) FindByID(id uint) (*courseModels.Course, error) {
	var c courseModels.Course
	err := r.db.Where("id = ? AND is_deleted = ?", id, false).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// LessonRepository reads lesson records.
type LessonRepository struct {
	db *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{db: db}
}

// FindByCourseID returns the published lessons of a course in display order.
func (r *LessonRepository) FindByCourseID(courseID uint) ([]courseModels.Lesson, error) {
	var lessons []courseModels.Lesson
	err := r.db.Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Order("order_index asc").Find(&lessons).Error
	return lessons, err
}
