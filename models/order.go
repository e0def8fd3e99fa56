package models

import (
	"time"
)

// Order status constants. These values are part of the wire contract
// with the mobile client and must not be renamed.
const (
	OrderStatusProcessing = "Processing"
	OrderStatusShipping   = "Shipping"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCanceled   = "Canceled"
)

// Delivery method constants with their shipping costs
const (
	DeliveryMethodFedex = "fedex"
	DeliveryMethodUSPS  = "usps"
	DeliveryMethodDHL   = "dhl"
)

type Order struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	UserID         uint        `json:"userId" gorm:"index"`
	User           User        `json:"-" gorm:"foreignKey:UserID"`
	AddressID      uint        `json:"addressId"`
	Address        Address     `json:"address" gorm:"foreignKey:AddressID"`
	Products       []OrderItem `json:"products" gorm:"foreignKey:OrderID"`
	TotalAmount    float64     `json:"totalAmount"`
	ShippingCost   float64     `json:"shippingCost"`
	DiscountAmount float64     `json:"discountAmount"`
	DeliveryMethod string      `json:"deliveryMethod"`
	PaymentMethod  string      `json:"paymentMethod"`
	CouponCode     string      `json:"couponCode,omitempty"`
	ShippingFree   bool        `json:"shippingFree"`
	OrderStatus    string      `json:"orderStatus"`
	ProcessingDate *time.Time  `json:"processingDate,omitempty"`
	ShippingDate   *time.Time  `json:"shippingDate,omitempty"`
	DeliveredDate  *time.Time  `json:"deliveredDate,omitempty"`
	CanceledDate   *time.Time  `json:"canceledDate,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// OrderItem is one line of an order. SubTotal is frozen at the price the
// item carried when it was added to the cart.
type OrderItem struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	OrderID       uint    `json:"orderId" gorm:"index"`
	ProductID     uint    `json:"productRef"`
	Product       Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity      int     `json:"quantity"`
	SelectedSize  string  `json:"selectedSize"`
	SelectedColor string  `json:"selectedColor"`
	SubTotal      float64 `json:"subTotal"`
}

// ShippingCostFor returns the shipping cost for a delivery method.
// Unknown methods are rejected by the caller before this is consulted.
func ShippingCostFor(method string) (float64, bool) {
	switch method {
	case DeliveryMethodFedex:
		return 25, true
	case DeliveryMethodUSPS:
		return 20, true
	case DeliveryMethodDHL:
		return 15, true
	}
	return 0, false
}
