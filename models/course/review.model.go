package course

import "gorm.io/gorm"

// Review is a course review left by an enrolled student
type Review struct {
	gorm.Model
	UserID    uint   `gorm:"not null;index" json:"user_id"`
	CourseID  uint   `gorm:"not null;index" json:"course_id"`
	Rating    int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"` // 1–5 rating
	Comment   string `gorm:"type:text;default:''" json:"comment"`
	IsDeleted bool   `gorm:"default:false"`
}
