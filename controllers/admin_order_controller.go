package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/stylenest/stylenest-api/config"
	"github.com/stylenest/stylenest-api/models"
	"github.com/stylenest/stylenest-api/utils"

	"github.com/gin-gonic/gin"
)

// Forward transitions an admin may apply. Cancellation goes through the
// same path as the user flow so stock restoration is never skipped.
var adminStatusFlow = map[string]string{
	models.OrderStatusShipping:  models.OrderStatusProcessing,
	models.OrderStatusDelivered: models.OrderStatusShipping,
}

var statusDateColumn = map[string]string{
	models.OrderStatusShipping:  "shipping_date",
	models.OrderStatusDelivered: "delivered_date",
}

// AdminListOrders lists all orders with optional status/user filters
func AdminListOrders(c *gin.Context) {
	query := config.DB.Model(&models.Order{})
	if status := c.Query("status"); status != "" {
		query = query.Where("order_status = ?", status)
	}
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	page, limit := utils.GetPaginationParams(c)
	var total int64
	query.Count(&total)

	var orders []models.Order
	query.Order("created_at DESC").Preload("Products").
		Offset((page - 1) * limit).Limit(limit).Find(&orders)

	utils.SuccessWithPagination(c, "Orders retrieved successfully", orders, total, page, limit)
}

// AdminUpdateOrderStatus moves an order along Processing -> Shipping ->
// Delivered, stamping the matching date column.
func AdminUpdateOrderStatus(c *gin.Context) {
	utils.LogInfo("AdminUpdateOrderStatus called")

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

	requiredCurrent, ok := adminStatusFlow[req.OrderStatus]
	if !ok {
		utils.BadRequest(c, "Invalid status. Must be one of: Shipping, Delivered", nil)
		return
	}

	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	now := time.Now()
	res := config.DB.Model(&models.Order{}).
		Where("id = ? AND order_status = ?", order.ID, requiredCurrent).
		Updates(map[string]interface{}{
			"order_status":                      req.OrderStatus,
			statusDateColumn[req.OrderStatus]:   now,
		})
	if res.Error != nil {
		utils.InternalServerError(c, "Failed to update order status", nil)
		return
	}
	if res.RowsAffected == 0 {
		utils.Conflict(c, fmt.Sprintf("Order must be %s before it can move to %s", requiredCurrent, req.OrderStatus), nil)
		return
	}

	utils.LogInfo("Order ID: %d moved to %s", order.ID, req.OrderStatus)
	config.DB.Preload("Products").First(&order, order.ID)
	utils.Success(c, "Order status updated", gin.H{"order": order})
}
