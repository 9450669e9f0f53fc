package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ProfileImage        string     `gorm:"default:''" json:"profile_image"`
	Name                string     `gorm:"default:''" json:"name"`
	Email               string     `gorm:"unique;not null" json:"email"`
	Mobile              string     `gorm:"default:''" json:"mobile"`
	Role                string     `gorm:"default:'USER'" json:"role"` // USER, INSTRUCTOR, ADMIN
	Password            string     `gorm:"not null" json:"-"`
	Bio                 string     `gorm:"type:text" json:"bio"`
	Headline            string     `json:"headline"` // Short instructor tagline shown on course pages
	IsMobileVerified    bool       `gorm:"default:false" json:"is_mobile_verified"`
	IsEmailVerified     bool       `gorm:"default:false" json:"is_email_verified"`
	MainBalance         float64    `gorm:"default:0" json:"main_balance"` // Wallet balance
	LastLogin           time.Time  `gorm:"default:NULL" json:"last_login"`
	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	LastFailedLogin     *time.Time `json:"-"`
	IsBlocked           bool       `gorm:"default:false" json:"is_blocked"`
	BlockedUntil        *time.Time `json:"-"`
	IsDeleted           bool       `gorm:"default:false" json:"-"`
}
