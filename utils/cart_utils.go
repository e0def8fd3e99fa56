package utils

import (
	"fmt"
	"math"
	"time"

	"github.com/stylenest/stylenest-api/config"
	"github.com/stylenest/stylenest-api/models"
)

// CheckoutDetails carries the computed totals for a user's cart plus the
// vouchers currently applied to it.
type CheckoutDetails struct {
	Items          []models.CartItem
	Subtotal       float64
	DiscountAmount float64
	CouponCode     string
	CouponPercent  float64
	ShippingFree   bool
	DeliverCode    string
}

// GetCheckoutDetails loads the cart and applies the user's active
// vouchers. A coupon voucher replaces any product-level discount already
// frozen into the line subtotals, so the discount is computed from the
// raw subtotal, never stacked.
func GetCheckoutDetails(userID uint) (*CheckoutDetails, error) {
	db := config.DB

	var items []models.CartItem
	if err := db.Where("user_id = ?", userID).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cart items: %v", err)
	}

	details := &CheckoutDetails{Items: items}
	for _, item := range items {
		details.Subtotal += item.SubTotal
	}
	details.Subtotal = math.Round(details.Subtotal*100) / 100

	var active []models.UserActiveVoucher
	if err := db.Where("user_id = ?", userID).Find(&active).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch active vouchers: %v", err)
	}

	for _, av := range active {
		var voucher models.Voucher
		if err := db.Where("id = ? AND user_id = ? AND status = ?", av.VoucherID, userID, models.VoucherStatusActive).First(&voucher).Error; err != nil {
			continue
		}
		switch voucher.Type {
		case models.VoucherTypeDeliver:
			details.ShippingFree = true
			details.DeliverCode = voucher.Code
		case models.VoucherTypeCoupon:
			percent := ParseDiscountPercent(voucher.Discount)
			details.CouponCode = voucher.Code
			details.CouponPercent = percent
			details.DiscountAmount = math.Round(details.Subtotal*percent) / 100
		}
	}

	return details, nil
}

// ParseDiscountPercent reads the percentage out of a voucher discount
// string such as "20" or "20%". Returns 0 for shipping vouchers, whose
// discount field is empty.
func ParseDiscountPercent(discount string) float64 {
	var percent float64
	for _, r := range discount {
		if r < '0' || r > '9' {
			break
		}
		percent = percent*10 + float64(r-'0')
	}
	return percent
}

// OrderTotal computes the invariant total: sum of line subtotals minus
// the discount plus shipping.
func OrderTotal(subtotal, discount, shipping float64) float64 {
	return math.Round((subtotal-discount+shipping)*100) / 100
}

// VoucherExpired reports whether a voucher's grant-time validity window
// has elapsed.
func VoucherExpired(v *models.Voucher, now time.Time) bool {
	expiry := v.ReceivedAt.AddDate(0, 0, v.DaysRemaining)
	return now.After(expiry)
}
