package models

import (
	"time"
)

// CartItem is one line of a user's cart. It mirrors the order line shape;
// SubTotal is frozen at add time and does not track later price changes.
type CartItem struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `json:"userId" gorm:"index;not null"`
	ProductID     uint      `json:"productRef" gorm:"not null"`
	Product       Product   `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity      int       `json:"quantity"`
	SelectedSize  string    `json:"selectedSize"`
	SelectedColor string    `json:"selectedColor"`
	SubTotal      float64   `json:"subTotal"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
