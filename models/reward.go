package models

import (
	"time"
)

// AttendanceCycleLength is the number of slots in one check-in cycle
const AttendanceCycleLength = 7

// Voucher categories. A user may hold one active voucher of each
// category at checkout, never two of the same one.
const (
	VoucherTypeDeliver = "deliver"
	VoucherTypeCoupon  = "coupon"
)

// Voucher status values
const (
	VoucherStatusActive   = "active"
	VoucherStatusRedeemed = "redeemed"
)

// AttendanceCycle is the 7-slot check-in sequence. During normal
// operation it is always a contiguous prefix of true values.
type AttendanceCycle []bool

// NewAttendanceCycle returns an all-false cycle
func NewAttendanceCycle() AttendanceCycle {
	return make(AttendanceCycle, AttendanceCycleLength)
}

// RewardLedger tracks one user's check-in cycle and unspent spin credits
type RewardLedger struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `json:"userId" gorm:"uniqueIndex;not null"`
	Attendance  AttendanceCycle `json:"attendance" gorm:"serializer:json"`
	LastCheckIn *time.Time      `json:"lastCheckIn,omitempty"`
	SpinCount   int             `json:"spinCount" gorm:"default:0"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// RewardGrant is one spin outcome. Rows are append-only and never
// mutated after creation.
type RewardGrant struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `json:"userId" gorm:"index;not null"`
	Text          string    `json:"text"`
	Icon          string    `json:"icon"`
	Code          string    `json:"code"`
	DaysRemaining int       `json:"daysRemaining"`
	Type          string    `json:"type"`
	GrantedAt     time.Time `json:"time"`
}

// Voucher is a redeemable entitlement granted by a spin. Vouchers are
// single-use: a successful order placement flips status to redeemed.
type Voucher struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `json:"userId" gorm:"index;not null"`
	Name          string    `json:"name"`
	Discount      string    `json:"discount"` // percentage as string, empty for shipping vouchers
	Code          string    `json:"code" gorm:"uniqueIndex"`
	DaysRemaining int       `json:"daysRemaining"`
	Icon          string    `json:"icon"`
	Type          string    `json:"type"` // deliver or coupon
	Status        string    `json:"status" gorm:"default:'active'"`
	ReceivedAt    time.Time `json:"receivedAt"`
	RedeemedAt    *time.Time `json:"redeemedAt,omitempty"`
}

// UserActiveVoucher tracks the voucher currently applied to a user's
// checkout, at most one per category.
type UserActiveVoucher struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `json:"userId" gorm:"uniqueIndex:idx_active_voucher_user_type"`
	Type      string    `json:"type" gorm:"uniqueIndex:idx_active_voucher_user_type"`
	VoucherID uint      `json:"voucherId"`
	Code      string    `json:"code"`
	AppliedAt time.Time `json:"appliedAt"`
}
