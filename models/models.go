package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a customer account
type User struct {
	gorm.Model
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Password     string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone"`
	ProfileImage string    `json:"profile_image"`
	IsBlocked    bool      `json:"is_blocked"`
	IsVerified   bool      `json:"is_verified" gorm:"default:false"`
	IsAdmin      bool      `json:"is_admin" gorm:"default:false"`
	LastLoginAt  time.Time `json:"last_login_at"`

	Addresses []Address `json:"addresses" gorm:"foreignKey:UserID"`
}

// Admin represents a back-office operator
type Admin struct {
	gorm.Model
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	LastLogin time.Time `json:"last_login"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
}

// Category groups products for browsing
type Category struct {
	gorm.Model
	Name        string    `json:"name" gorm:"uniqueIndex"`
	Description string    `json:"description"`
	Products    []Product `json:"products,omitempty"`
	Blocked     bool      `json:"blocked" gorm:"default:false"`
}

// Product is a catalog entry. Stock lives on the size options of its
// variants, one integer per (color, size) cell.
type Product struct {
	gorm.Model
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	Price              float64   `json:"price"`
	OriginalPrice      float64   `json:"originalPrice"`
	DiscountPercentage int       `json:"discountPercentage"`
	CategoryID         uint      `json:"categoryId"`
	Category           Category  `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	ImageURL           string    `json:"imageUrl"`
	Brand              string    `json:"brand"`
	IsActive           bool      `json:"isActive" gorm:"default:true"`
	IsFeatured         bool      `json:"isFeatured" gorm:"default:false"`
	Views              int       `json:"views" gorm:"default:0"`
	Variants           []Variant `json:"variants" gorm:"foreignKey:ProductID"`
}

// Variant is one color option of a product with its own size/stock table
type Variant struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	ProductID   uint         `json:"productId" gorm:"index;not null"`
	Color       string       `json:"color"`
	Image       string       `json:"image"`
	SizeOptions []SizeOption `json:"sizes" gorm:"foreignKey:VariantID"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// SizeOption is a (size, stock) cell under a variant. Stock must never
// go negative; every decrement is a conditional update guarded by the
// current value.
type SizeOption struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	VariantID uint      `json:"variantId" gorm:"index;not null"`
	Size      string    `json:"size"`
	Stock     int       `json:"stock" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
