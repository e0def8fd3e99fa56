package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stylenest/stylenest-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminUpdateStockAdd(t *testing.T) {
	db := setupTestDB(t)
	r := adminRouter()

	product := seedProduct(t, db, 50, "Black", "M", 5)

	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/products/%d/update-stock", product.ID), map[string]interface{}{
		"color":    "Black",
		"size":     "M",
		"quantity": 7,
		"action":   "add",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 12, sizeOptionOf(t, db, product.ID, "Black", "M").Stock)
}

func TestAdminUpdateStockSubtract(t *testing.T) {
	db := setupTestDB(t)
	r := adminRouter()

	product := seedProduct(t, db, 50, "Black", "M", 5)

	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/products/%d/update-stock", product.ID), map[string]interface{}{
		"color":    "Black",
		"size":     "M",
		"quantity": 5,
		"action":   "subtract",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, sizeOptionOf(t, db, product.ID, "Black", "M").Stock)
}

func TestAdminUpdateStockNeverGoesNegative(t *testing.T) {
	db := setupTestDB(t)
	r := adminRouter()

	product := seedProduct(t, db, 50, "Black", "M", 3)

	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/products/%d/update-stock", product.ID), map[string]interface{}{
		"color":    "Black",
		"size":     "M",
		"quantity": 4,
		"action":   "subtract",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 3, sizeOptionOf(t, db, product.ID, "Black", "M").Stock, "failed subtraction must leave stock untouched")
}

func TestAdminUpdateStockUnknownCell(t *testing.T) {
	db := setupTestDB(t)
	r := adminRouter()

	product := seedProduct(t, db, 50, "Black", "M", 3)

	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/products/%d/update-stock", product.ID), map[string]interface{}{
		"color":    "Black",
		"size":     "XXL",
		"quantity": 1,
		"action":   "add",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminOrderStatusFlow(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	r := adminRouter()

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

	// Delivered before Shipping is rejected
	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/admin/orders/%d/status", order.ID), map[string]string{
		"orderStatus": models.OrderStatusDelivered,
	})
	require.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/admin/orders/%d/status", order.ID), map[string]string{
		"orderStatus": models.OrderStatusShipping,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, db.First(&order, order.ID).Error)
	assert.Equal(t, models.OrderStatusShipping, order.OrderStatus)
	require.NotNil(t, order.ShippingDate)

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/admin/orders/%d/status", order.ID), map[string]string{
		"orderStatus": models.OrderStatusDelivered,
	})
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.First(&order, order.ID).Error)
	assert.Equal(t, models.OrderStatusDelivered, order.OrderStatus)
	require.NotNil(t, order.DeliveredDate)
}

func TestAdminOrderStatusRejectsCancellation(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	r := adminRouter()

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

	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/admin/orders/%d/status", order.ID), map[string]string{
		"orderStatus": models.OrderStatusCanceled,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
