package course

import "gorm.io/gorm"

// Course represents a course listed on the marketplace
type Course struct {
	gorm.Model
	Title        string  `json:"title"`
	Description  string  `json:"description" gorm:"type:text"`
	CreatedBy    uint    `json:"created_by" gorm:"index;not null"` // Instructor user ID
	Price        float64 `json:"price" gorm:"default:0"`           // 0 = free course
	Duration     int64   `json:"duration" gorm:"default:0"`        // duration in hours
	Level        string  `json:"level" gorm:"default:'BEGINNER'"`  // BEGINNER, INTERMEDIATE, ADVANCED
	Status       string  `json:"status" gorm:"default:'DRAFT'"`    // DRAFT, ACTIVE, INACTIVE
	Rating       float64 `json:"rating" gorm:"default:0"`          // Average review rating
	ReviewCount  int     `json:"review_count" gorm:"default:0"`
	ThumbnailURL string  `json:"thumbnail_url"`
	IsPublished  bool    `json:"is_published" gorm:"default:false"`
	IsDeleted    bool    `gorm:"default:false"`
}
