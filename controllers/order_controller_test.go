package controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stylenest/stylenest-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrderComputesTotal(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	r := userRouter(user)

	product := seedProduct(t, db, 50, "Black", "M", 10)
	address := seedAddress(t, db, user.ID)
	seedCartLine(t, db, user.ID, product.ID, 2, "Black", "M", 100)

	w := doJSON(t, r, http.MethodPost, "/api/orders", map[string]interface{}{
		"addressId":      address.ID,
		"deliveryMethod": "fedex",
		"paymentMethod":  "cod",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var order models.Order
	require.NoError(t, db.Preload("Products").Where("user_id = ?", user.ID).First(&order).Error)
	assert.Equal(t, models.OrderStatusProcessing, order.OrderStatus)
	assert.Equal(t, 125.0, order.TotalAmount)
	assert.Equal(t, 25.0, order.ShippingCost)
	assert.Equal(t, 0.0, order.DiscountAmount)
	require.Len(t, order.Products, 1)
	assert.Equal(t, 100.0, order.Products[0].SubTotal)
	require.NotNil(t, order.ProcessingDate)

	option := sizeOptionOf(t, db, product.ID, "Black", "M")
	assert.Equal(t, 8, option.Stock)

	var cartCount int64
	db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount)
	assert.EqualValues(t, 0, cartCount, "cart must be cleared after checkout")
}

func TestPlaceOrderWithVouchers(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	r := userRouter(user)

	product := seedProduct(t, db, 50, "Black", "M", 10)
	address := seedAddress(t, db, user.ID)
	seedCartLine(t, db, user.ID, product.ID, 2, "Black", "M", 100)

	coupon := seedVoucher(t, db, user.ID, models.VoucherTypeCoupon, "20", "COUP20", time.Now())
	deliver := seedVoucher(t, db, user.ID, models.VoucherTypeDeliver, "", "SHIPFR", time.Now())
	for _, code := range []string{"COUP20", "SHIPFR"} {
		w := doJSON(t, r, http.MethodPost, "/api/vouchers/apply", map[string]string{"code": code})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, r, http.MethodPost, "/api/orders", map[string]interface{}{
		"addressId":      address.ID,
		"deliveryMethod": "usps",
		"paymentMethod":  "card",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var order models.Order
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&order).Error)
	// 100 subtotal - 20% coupon + free shipping
	assert.Equal(t, 80.0, order.TotalAmount)
	assert.Equal(t, 20.0, order.DiscountAmount)
	assert.Equal(t, 0.0, order.ShippingCost)
	assert.True(t, order.ShippingFree)
	assert.Equal(t, "COUP20", order.CouponCode)

	// Both vouchers are consumed and unapplied
	for _, id := range []uint{coupon.ID, deliver.ID} {
		var voucher models.Voucher
		require.NoError(t, db.First(&voucher, id).Error)
		assert.Equal(t, models.VoucherStatusRedeemed, voucher.Status)
		require.NotNil(t, voucher.RedeemedAt)
	}
	var activeCount int64
	db.Model(&models.UserActiveVoucher{}).Where("user_id = ?", user.ID).Count(&activeCount)
	assert.EqualValues(t, 0, activeCount)
}

func TestPlaceOrderInsufficientStockAbortsWholeOrder(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	r := userRouter(user)

	plenty := seedProduct(t, db, 50, "Black", "M", 10)
	scarce := seedProduct(t, db, 30, "White", "S", 1)
	address := seedAddress(t, db, user.ID)
	seedCartLine(t, db, user.ID, plenty.ID, 2, "Black", "M", 100)
	seedCartLine(t, db, user.ID, scarce.ID, 3, "White", "S", 90)

	w := doJSON(t, r, http.MethodPost, "/api/orders", map[string]interface{}{
		"addressId":      address.ID,
		"deliveryMethod": "dhl",
		"paymentMethod":  "cod",
	})
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// No partial reservation: both cells keep their stock
	assert.Equal(t, 10, sizeOptionOf(t, db, plenty.ID, "Black", "M").Stock)
	assert.Equal(t, 1, sizeOptionOf(t, db, scarce.ID, "White", "S").Stock)

	var orderCount int64
	db.Model(&models.Order{}).Where("user_id = ?", user.ID).Count(&orderCount)
	assert.EqualValues(t, 0, orderCount)

	var cartCount int64
	db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount)
	assert.EqualValues(t, 2, cartCount, "cart must survive a failed checkout")
}

func TestPlaceOrderEmptyCartRejected(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	r := userRouter(user)
	address := seedAddress(t, db, user.ID)

	w := doJSON(t, r, http.MethodPost, "/api/orders", map[string]interface{}{
		"addressId":      address.ID,
		"deliveryMethod": "fedex",
		"paymentMethod":  "cod",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaceOrderInvalidDeliveryMethodRejected(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	r := userRouter(user)
	address := seedAddress(t, db, user.ID)

	w := doJSON(t, r, http.MethodPost, "/api/orders", map[string]interface{}{
		"addressId":      address.ID,
		"deliveryMethod": "carrier-pigeon",
		"paymentMethod":  "cod",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaceOrderStaleVoucherRejected(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	r := userRouter(user)

	product := seedProduct(t, db, 50, "Black", "M", 10)
	address := seedAddress(t, db, user.ID)
	seedCartLine(t, db, user.ID, product.ID, 1, "Black", "M", 50)

	voucher := seedVoucher(t, db, user.ID, models.VoucherTypeCoupon, "20", "COUP20", time.Now())
	w := doJSON(t, r, http.MethodPost, "/api/vouchers/apply", map[string]string{"code": "COUP20"})
	require.Equal(t, http.StatusOK, w.Code)

	// Redeemed out from under the applied row, e.g. by another session
	require.NoError(t, db.Model(&voucher).Update("status", models.VoucherStatusRedeemed).Error)

	w = doJSON(t, r, http.MethodPost, "/api/orders", map[string]interface{}{
		"addressId":      address.ID,
		"deliveryMethod": "fedex",
		"paymentMethod":  "cod",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var orderCount int64
	db.Model(&models.Order{}).Where("user_id = ?", user.ID).Count(&orderCount)
	assert.EqualValues(t, 0, orderCount)
}

func TestCancelOrderRestoresStock(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	r := userRouter(user)

	product := seedProduct(t, db, 50, "Black", "M", 10)
	address := seedAddress(t, db, user.ID)
	seedCartLine(t, db, user.ID, product.ID, 2, "Black", "M", 100)

	w := doJSON(t, r, http.MethodPost, "/api/orders", map[string]interface{}{
		"addressId":      address.ID,
		"deliveryMethod": "fedex",
		"paymentMethod":  "cod",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 8, sizeOptionOf(t, db, product.ID, "Black", "M").Stock)

	var order models.Order
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&order).Error)

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/orders/%d/status", order.ID), map[string]string{
		"orderStatus": models.OrderStatusCanceled,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, db.First(&order, order.ID).Error)
	assert.Equal(t, models.OrderStatusCanceled, order.OrderStatus)
	require.NotNil(t, order.CanceledDate)
	assert.Equal(t, 10, sizeOptionOf(t, db, product.ID, "Black", "M").Stock)
}

func TestCancelShippedOrderRejected(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	r := userRouter(user)

	product := seedProduct(t, db, 50, "Black", "M", 10)
	address := seedAddress(t, db, user.ID)
	order := models.Order{
		UserID:         user.ID,
		AddressID:      address.ID,
		TotalAmount:    75,
		ShippingCost:   25,
		DeliveryMethod: "fedex",
		PaymentMethod:  "cod",
		OrderStatus:    models.OrderStatusShipping,
		Products: []models.OrderItem{
			{ProductID: product.ID, Quantity: 1, SelectedColor: "Black", SelectedSize: "M", SubTotal: 50},
		},
	}
	require.NoError(t, db.Create(&order).Error)

	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/orders/%d/status", order.ID), map[string]string{
		"orderStatus": models.OrderStatusCanceled,
	})
	require.Equal(t, http.StatusConflict, w.Code)

	require.NoError(t, db.First(&order, order.ID).Error)
	assert.Equal(t, models.OrderStatusShipping, order.OrderStatus)
	assert.Equal(t, 10, sizeOptionOf(t, db, product.ID, "Black", "M").Stock, "stock must not be restored")
}

func TestUserCannotAdvanceOrderStatus(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	r := userRouter(user)

	address := seedAddress(t, db, user.ID)
	order := models.Order{
		UserID:         user.ID,
		AddressID:      address.ID,
		TotalAmount:    75,
		DeliveryMethod: "fedex",
		PaymentMethod:  "cod",
		OrderStatus:    models.OrderStatusProcessing,
	}
	require.NoError(t, db.Create(&order).Error)

	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/orders/%d/status", order.ID), map[string]string{
		"orderStatus": models.OrderStatusDelivered,
	})
	require.Equal(t, http.StatusForbidden, w.Code)
}
