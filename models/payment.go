package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment tracks a gateway payment attempt against an order
type Payment struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	OrderID         uint      `json:"order_id"`
	RazorpayOrderID string    `json:"razorpay_order_id"`
	Amount          float64   `json:"amount"`
	Status          string    `json:"status"` // pending, completed, failed
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PaymentMethod is a stored card. Only the last four digits of the
// number are persisted.
type PaymentMethod struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	UserID     uint           `json:"user_id" gorm:"index;not null"`
	HolderName string         `json:"holder_name"`
	Brand      string         `json:"brand"`
	LastFour   string         `json:"last_four"`
	ExpMonth   int            `json:"exp_month"`
	ExpYear    int            `json:"exp_year"`
	IsDefault  bool           `json:"is_default" gorm:"default:false"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
