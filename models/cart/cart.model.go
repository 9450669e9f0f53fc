package cart

import "gorm.io/gorm"

// CartItem is a single course sitting in a user's cart
type CartItem struct {
	gorm.Model
	UserID        uint    `json:"user_id" gorm:"index;not null"`
	CourseID      uint    `json:"course_id" gorm:"index;not null"`
	PriceSnapshot float64 `json:"price_snapshot"` // Price at the time the course was added
	IsDeleted     bool    `gorm:"default:false"`
}
