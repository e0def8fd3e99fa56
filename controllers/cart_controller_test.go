package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stylenest/stylenest-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCartCreatesLine(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	r := userRouter(user)

	product := seedProduct(t, db, 50, "Black", "M", 10)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/cart/%d/add", user.ID), map[string]interface{}{
		"productRef":    product.ID,
		"quantity":      2,
		"selectedColor": "Black",
		"selectedSize":  "M",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var line models.CartItem
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&line).Error)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, 100.0, line.SubTotal)

	data := decodeData(t, w)
	assert.EqualValues(t, 100, data["totalAmount"])
}

func TestAddToCartMergesSameVariantLine(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	r := userRouter(user)

	product := seedProduct(t, db, 50, "Black", "M", 10)
	payload := map[string]interface{}{
		"productRef":    product.ID,
		"quantity":      1,
		"selectedColor": "Black",
		"selectedSize":  "M",
	}
	for i := 0; i < 2; i++ {
		w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/cart/%d/add", user.ID), payload)
		require.Equal(t, http.StatusOK, w.Code)
	}

	var lines []models.CartItem
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&lines).Error)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 100.0, lines[0].SubTotal)
}

func TestAddToCartSubtotalFrozenAtAddTime(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	r := userRouter(user)

	product := seedProduct(t, db, 50, "Black", "M", 10)
	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/cart/%d/add", user.ID), map[string]interface{}{
		"productRef":    product.ID,
		"quantity":      2,
		"selectedColor": "Black",
		"selectedSize":  "M",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// A later price change must not move the existing line
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).Update("price", 80).Error)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/cart/%d", user.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.EqualValues(t, 100, data["totalAmount"])
}

func TestAddToCartUnknownColorRejected(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	r := userRouter(user)

	product := seedProduct(t, db, 50, "Black", "M", 10)
	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/cart/%d/add", user.ID), map[string]interface{}{
		"productRef":    product.ID,
		"quantity":      1,
		"selectedColor": "Chartreuse",
		"selectedSize":  "M",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddToCartExceedingStockRejected(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	r := userRouter(user)

	product := seedProduct(t, db, 50, "Black", "M", 3)
	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/cart/%d/add", user.ID), map[string]interface{}{
		"productRef":    product.ID,
		"quantity":      5,
		"selectedColor": "Black",
		"selectedSize":  "M",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	var count int64
	db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestUpdateCartItemScalesAtFrozenPrice(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	r := userRouter(user)

	product := seedProduct(t, db, 50, "Black", "M", 10)
	line := seedCartLine(t, db, user.ID, product.ID, 1, "Black", "M", 50)

	// Price rises after the line was added
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).Update("price", 80).Error)

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/cart/%d/items/%d", user.ID, line.ID), map[string]interface{}{
		"itemId":   line.ID,
		"quantity": 3,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, db.First(&line, line.ID).Error)
	assert.Equal(t, 3, line.Quantity)
	assert.Equal(t, 150.0, line.SubTotal, "quantity change must use the add-time unit price")
}

func TestCartOwnershipEnforced(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	r := userRouter(user)

	product := seedProduct(t, db, 50, "Black", "M", 10)
	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/cart/%d/add", user.ID+99), map[string]interface{}{
		"productRef":    product.ID,
		"quantity":      1,
		"selectedColor": "Black",
		"selectedSize":  "M",
	})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRemoveCartItem(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	r := userRouter(user)

	product := seedProduct(t, db, 50, "Black", "M", 10)
	line := seedCartLine(t, db, user.ID, product.ID, 1, "Black", "M", 50)

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/cart/%d/items/%d", user.ID, line.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestClearCart(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	r := userRouter(user)

	product := seedProduct(t, db, 50, "Black", "M", 10)
	seedCartLine(t, db, user.ID, product.ID, 1, "Black", "M", 50)
	seedCartLine(t, db, user.ID, product.ID, 2, "Black", "M", 100)

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/cart/%d", user.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}
