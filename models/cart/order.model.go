package cart

import "gorm.io/gorm"

// Order statuses
const (
	OrderStatusPending = "PENDING"
	OrderStatusPaid    = "PAID"
	OrderStatusFailed  = "FAILED"
)

// Payment methods accepted at checkout
const (
	PaymentMethodWallet = "WALLET"
	PaymentMethodStripe = "STRIPE"
	PaymentMethodPayPal = "PAYPAL"
)

// Order is a checkout of one or more cart items
type Order struct {
	gorm.Model
	UserID        uint        `json:"user_id" gorm:"index;not null"`
	OrderNumber   string      `json:"order_number" gorm:"uniqueIndex;not null"`
	TotalAmount   float64     `json:"total_amount" gorm:"not null"`
	PaymentMethod string      `json:"payment_method" gorm:"type:varchar(20)"`
	PaymentID     *string     `json:"payment_id" gorm:"type:varchar(100);uniqueIndex"` // Gateway transaction reference, NULL for wallet orders
	Status        string      `json:"status" gorm:"default:'PENDING'"`
	IsDeleted     bool        `gorm:"default:false"`
	Items         []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

// OrderItem is a single course line within an order
type OrderItem struct {
	gorm.Model
	OrderID     uint    `json:"order_id" gorm:"index;not null"`
	CourseID    uint    `json:"course_id" gorm:"index;not null"`
	CourseTitle string  `json:"course_title"` // Title snapshot at purchase time
	Price       float64 `json:"price"`
	IsDeleted   bool    `gorm:"default:false"`
}
