package controllers

import (
	"fmt"
	"time"

	"github.com/stylenest/stylenest-api/config"
	"github.com/stylenest/stylenest-api/models"
	"github.com/stylenest/stylenest-api/utils"

	"github.com/gin-gonic/gin"
)

// ApplyVoucherRequest represents the request body for applying a voucher
type ApplyVoucherRequest struct {
	Code string `json:"code" binding:"required"`
}

// ApplyVoucher applies a voucher to the caller's checkout. Vouchers fall
// into two categories, deliver and coupon; one of each may be active at
// once, and applying a second voucher of the same category replaces the
// first.
func ApplyVoucher(c *gin.Context) {
	utils.LogInfo("ApplyVoucher called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req ApplyVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	utils.LogInfo("Applying voucher code: %s for user ID: %d", req.Code, user.ID)

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	var voucher models.Voucher
	if err := tx.Where("code = ? AND user_id = ?", req.Code, user.ID).First(&voucher).Error; err != nil {
		tx.Rollback()
		utils.LogError("Voucher %s not found for user ID: %d", req.Code, user.ID)
		utils.NotFound(c, "Voucher not found")
		return
	}

	if voucher.Status != models.VoucherStatusActive {
		tx.Rollback()
		utils.BadRequest(c, "Voucher has already been redeemed", nil)
		return
	}

	if utils.VoucherExpired(&voucher, time.Now()) {
		tx.Rollback()
		utils.BadRequest(c, "Voucher has expired", nil)
		return
	}

	// Same-category voucher is replaced, never stacked
	if err := tx.Where("user_id = ? AND type = ?", user.ID, voucher.Type).Delete(&models.UserActiveVoucher{}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to clear previous active voucher for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to clear previous voucher", nil)
		return
	}

	active := models.UserActiveVoucher{
		UserID:    user.ID,
		Type:      voucher.Type,
		VoucherID: voucher.ID,
		Code:      voucher.Code,
		AppliedAt: time.Now(),
	}
	if err := tx.Create(&active).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to save active voucher for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to save active voucher", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	respondWithCheckoutTotals(c, user.ID, "Voucher applied successfully")
}

// RemoveVoucher removes an applied voucher, restoring the pre-voucher
// shipping cost or subtotal.
func RemoveVoucher(c *gin.Context) {
	utils.LogInfo("RemoveVoucher called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req ApplyVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var voucher models.Voucher
	if err := config.DB.Where("code = ? AND user_id = ?", req.Code, user.ID).First(&voucher).Error; err != nil {
		utils.NotFound(c, "Voucher not found")
		return
	}

	if err := config.DB.Where("user_id = ? AND voucher_id = ?", user.ID, voucher.ID).Delete(&models.UserActiveVoucher{}).Error; err != nil {
		utils.LogError("Failed to remove active voucher for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to remove voucher", nil)
		return
	}

	respondWithCheckoutTotals(c, user.ID, "Voucher removed successfully")
}

// ListVouchers returns the caller's redeemable vouchers
func ListVouchers(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var vouchers []models.Voucher
	if err := config.DB.Where("user_id = ? AND status = ?", user.ID, models.VoucherStatusActive).Order("received_at").Find(&vouchers).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch vouchers", nil)
		return
	}

	utils.Success(c, "Vouchers retrieved successfully", gin.H{"availableVouchers": vouchers})
}

// respondWithCheckoutTotals recomputes the cart totals after a voucher
// mutation so the client can refresh its checkout screen.
func respondWithCheckoutTotals(c *gin.Context, userID uint, message string) {
	details, err := utils.GetCheckoutDetails(userID)
	if err != nil {
		utils.LogError("Failed to get checkout details for user ID: %d: %v", userID, err)
		utils.InternalServerError(c, "Failed to get cart details", nil)
		return
	}

	utils.Success(c, message, gin.H{
		"subtotal":       fmt.Sprintf("%.2f", details.Subtotal),
		"discountAmount": fmt.Sprintf("%.2f", details.DiscountAmount),
		"couponCode":     details.CouponCode,
		"shippingFree":   details.ShippingFree,
		"totalAmount":    fmt.Sprintf("%.2f", details.Subtotal-details.DiscountAmount),
	})
}
