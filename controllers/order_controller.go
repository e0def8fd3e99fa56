package controllers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/stylenest/stylenest-api/config"
	"github.com/stylenest/stylenest-api/models"
	"github.com/stylenest/stylenest-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PlaceOrderRequest represents the checkout submission
type PlaceOrderRequest struct {
	AddressID      uint   `json:"addressId" binding:"required"`
	DeliveryMethod string `json:"deliveryMethod" binding:"required"`
	PaymentMethod  string `json:"paymentMethod" binding:"required"`
}

// PlaceOrder turns the caller's cart into an order. Stock for every
// (color, size) cell is decremented with a conditional update inside one
// transaction, so an insufficient cell aborts the whole order and a
// concurrent checkout can never drive stock negative.
func PlaceOrder(c *gin.Context) {
	utils.LogInfo("PlaceOrder called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	deliveryMethod := strings.ToLower(strings.TrimSpace(req.DeliveryMethod))
	baseShipping, ok := models.ShippingCostFor(deliveryMethod)
	if !ok {
		utils.BadRequest(c, "Invalid delivery method. Must be one of: fedex, usps, dhl", nil)
		return
	}

	paymentMethod := strings.ToLower(strings.TrimSpace(req.PaymentMethod))
	validMethods := map[string]bool{"cod": true, "card": true, "online": true}
	if !validMethods[paymentMethod] {
		utils.BadRequest(c, "Invalid payment method. Must be one of: cod, card, online", nil)
		return
	}

	var address models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", req.AddressID, user.ID).First(&address).Error; err != nil {
		utils.NotFound(c, "Address not found")
		return
	}

	details, err := utils.GetCheckoutDetails(user.ID)
	if err != nil {
		utils.LogError("Failed to get checkout details for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to get cart details", nil)
		return
	}
	if len(details.Items) == 0 {
		utils.BadRequest(c, "Cannot place order with empty cart", nil)
		return
	}

	// Applied vouchers are re-validated at submission time; stale or
	// already-redeemed codes abort the checkout.
	now := time.Now()
	var appliedVouchers []models.Voucher
	var activeRows []models.UserActiveVoucher
	if err := config.DB.Where("user_id = ?", user.ID).Find(&activeRows).Error; err != nil {
		utils.InternalServerError(c, "Failed to read applied vouchers", nil)
		return
	}
	for _, row := range activeRows {
		var voucher models.Voucher
		if err := config.DB.Where("id = ? AND user_id = ?", row.VoucherID, user.ID).First(&voucher).Error; err != nil {
			utils.BadRequest(c, "An applied voucher is no longer available", nil)
			return
		}
		if voucher.Status != models.VoucherStatusActive {
			utils.BadRequest(c, fmt.Sprintf("Voucher %s has already been redeemed", voucher.Code), nil)
			return
		}
		if utils.VoucherExpired(&voucher, now) {
			utils.BadRequest(c, fmt.Sprintf("Voucher %s has expired", voucher.Code), nil)
			return
		}
		appliedVouchers = append(appliedVouchers, voucher)
	}

	shippingCost := baseShipping
	if details.ShippingFree {
		shippingCost = 0
	}
	totalAmount := utils.OrderTotal(details.Subtotal, details.DiscountAmount, shippingCost)

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction for user ID: %d: %v", user.ID, tx.Error)
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	// Decrement every stock cell before creating the order; any shortfall
	// rolls back everything.
	for _, item := range details.Items {
		sizeOption, appErr := findSizeOption(tx, item.ProductID, item.SelectedColor, item.SelectedSize)
		if appErr != nil {
			tx.Rollback()
			utils.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		res := tx.Model(&models.SizeOption{}).
			Where("id = ? AND stock >= ?", sizeOption.ID, item.Quantity).
			UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
		if res.Error != nil {
			tx.Rollback()
			utils.LogError("Failed to decrement stock for size option %d: %v", sizeOption.ID, res.Error)
			utils.InternalServerError(c, "Failed to reserve stock", nil)
			return
		}
		if res.RowsAffected == 0 {
			tx.Rollback()
			utils.LogInfo("Insufficient stock for product %d (%s/%s), requested: %d",
				item.ProductID, item.SelectedColor, item.SelectedSize, item.Quantity)
			utils.Conflict(c, fmt.Sprintf("Insufficient stock for product %d in color '%s', size '%s'",
				item.ProductID, item.SelectedColor, item.SelectedSize), nil)
			return
		}
	}

	order := models.Order{
		UserID:         user.ID,
		AddressID:      address.ID,
		TotalAmount:    totalAmount,
		ShippingCost:   shippingCost,
		DiscountAmount: details.DiscountAmount,
		DeliveryMethod: deliveryMethod,
		PaymentMethod:  paymentMethod,
		CouponCode:     details.CouponCode,
		ShippingFree:   details.ShippingFree,
		OrderStatus:    models.OrderStatusProcessing,
		ProcessingDate: &now,
	}
	for _, item := range details.Items {
		order.Products = append(order.Products, models.OrderItem{
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			SelectedSize:  item.SelectedSize,
			SelectedColor: item.SelectedColor,
			SubTotal:      item.SubTotal,
		})
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create order for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create order", nil)
		return
	}

	// Vouchers are single-use: consume them with the order
	for _, voucher := range appliedVouchers {
		res := tx.Model(&models.Voucher{}).
			Where("id = ? AND status = ?", voucher.ID, models.VoucherStatusActive).
			Updates(map[string]interface{}{"status": models.VoucherStatusRedeemed, "redeemed_at": now})
		if res.Error != nil || res.RowsAffected == 0 {
			tx.Rollback()
			utils.Conflict(c, fmt.Sprintf("Voucher %s has already been redeemed", voucher.Code), nil)
			return
		}
	}
	if err := tx.Where("user_id = ?", user.ID).Delete(&models.UserActiveVoucher{}).Error; err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to clear applied vouchers", nil)
		return
	}

	if err := tx.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to clear cart for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to clear cart", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit order for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.LogInfo("Created order ID: %d for user ID: %d, total: %.2f", order.ID, user.ID, order.TotalAmount)

	// Best-effort event for fulfilment consumers
	_ = utils.PublishOrderEvent(context.Background(), "order.placed", utils.OrderEvent{
		OrderID:     order.ID,
		UserID:      user.ID,
		Status:      order.OrderStatus,
		TotalAmount: order.TotalAmount,
		OccurredAt:  now,
	})

	utils.Created(c, "Order placed successfully", gin.H{"order": order})
}

// ListOrders lists the caller's orders with optional status filter
func ListOrders(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	query := config.DB.Where("user_id = ?", user.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("order_status = ?", status)
	}

	var orders []models.Order
	query.Order("created_at DESC").Preload("Products").Find(&orders)

	summaries := make([]gin.H, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, gin.H{
			"id":          o.ID,
			"date":        o.CreatedAt.Format("2006-01-02 15:04:05"),
			"orderStatus": o.OrderStatus,
			"totalAmount": o.TotalAmount,
			"items":       len(o.Products),
		})
	}
	utils.Success(c, "Orders retrieved successfully", gin.H{"orders": summaries})
}

// GetOrderDetails returns one order owned by the caller
func GetOrderDetails(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var order models.Order
	if err := config.DB.Preload("Products.Product").Preload("Address").
		Where("id = ? AND user_id = ?", orderID, user.ID).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}
	utils.Success(c, "Order retrieved successfully", gin.H{"order": order})
}

// UpdateOrderStatus handles the user-facing status transition: only
// cancellation, and only while the order is still Processing. Stock for
// every line is restored in the same transaction that flips the status.
func UpdateOrderStatus(c *gin.Context) {
	utils.LogInfo("UpdateOrderStatus called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var req struct {
		OrderStatus string `json:"orderStatus" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if req.OrderStatus != models.OrderStatusCanceled {
		utils.Forbidden(c, "Only cancellation is allowed")
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	var order models.Order
	if err := tx.Preload("Products").Where("id = ? AND user_id = ?", orderID, user.ID).First(&order).Error; err != nil {
		tx.Rollback()
		utils.NotFound(c, "Order not found")
		return
	}

	now := time.Now()
	// The status guard doubles as the idempotency check against a
	// concurrent cancel
	res := tx.Model(&models.Order{}).
		Where("id = ? AND order_status = ?", order.ID, models.OrderStatusProcessing).
		Updates(map[string]interface{}{"order_status": models.OrderStatusCanceled, "canceled_date": now})
	if res.Error != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to cancel order", nil)
		return
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		utils.Conflict(c, fmt.Sprintf("Order cannot be canceled while %s", order.OrderStatus), nil)
		return
	}

	for _, item := range order.Products {
		if err := restoreStock(tx, &item); err != nil {
			tx.Rollback()
			utils.LogError("Failed to restore stock for order %d: %v", order.ID, err)
			utils.InternalServerError(c, "Failed to restore stock", nil)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.LogInfo("Canceled order ID: %d for user ID: %d", order.ID, user.ID)

	_ = utils.PublishOrderEvent(context.Background(), "order.canceled", utils.OrderEvent{
		OrderID:     order.ID,
		UserID:      user.ID,
		Status:      models.OrderStatusCanceled,
		TotalAmount: order.TotalAmount,
		OccurredAt:  now,
	})

	order.OrderStatus = models.OrderStatusCanceled
	order.CanceledDate = &now
	utils.Success(c, "Order canceled", gin.H{"order": order})
}

// restoreStock returns an order line's quantity to its stock cell
func restoreStock(tx *gorm.DB, item *models.OrderItem) error {
	sizeOption, appErr := findSizeOption(tx, item.ProductID, item.SelectedColor, item.SelectedSize)
	if appErr != nil {
		return appErr
	}
	return tx.Model(&models.SizeOption{}).
		Where("id = ?", sizeOption.ID).
		UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error
}
