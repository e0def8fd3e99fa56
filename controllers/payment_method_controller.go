package controllers

import (
	"strconv"
	"strings"

	"github.com/stylenest/stylenest-api/config"
	"github.com/stylenest/stylenest-api/models"
	"github.com/stylenest/stylenest-api/utils"

	"github.com/gin-gonic/gin"
)

// CardRequest represents a stored-card payload. The full number is used
// only for validation and the last four digits; it is never persisted.
type CardRequest struct {
	HolderName string `json:"holder_name" binding:"required"`
	Number     string `json:"number" binding:"required"`
	ExpMonth   int    `json:"exp_month" binding:"required"`
	ExpYear    int    `json:"exp_year" binding:"required"`
	IsDefault  bool   `json:"is_default"`
}

// ListPaymentMethods returns the caller's stored cards
func ListPaymentMethods(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var methods []models.PaymentMethod
	if err := config.DB.Where("user_id = ?", user.ID).Order("is_default DESC, id").Find(&methods).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch payment methods", nil)
		return
	}
	utils.Success(c, "Payment methods retrieved successfully", gin.H{"payment_methods": methods})
}

// AddPaymentMethod validates and stores a card
func AddPaymentMethod(c *gin.Context) {
	utils.LogInfo("AddPaymentMethod called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req CardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if errs := utils.ValidateCard(req.Number, req.ExpMonth, req.ExpYear); len(errs) > 0 {
		utils.ValidationError(c, "Card validation failed", errs)
		return
	}

	method := models.PaymentMethod{
		UserID:     user.ID,
		HolderName: req.HolderName,
		Brand:      cardBrand(req.Number),
		LastFour:   utils.CardLastFour(req.Number),
		ExpMonth:   req.ExpMonth,
		ExpYear:    req.ExpYear,
		IsDefault:  req.IsDefault,
	}

	tx := config.DB.Begin()
	if req.IsDefault {
		if err := tx.Model(&models.PaymentMethod{}).Where("user_id = ?", user.ID).Update("is_default", false).Error; err != nil {
			tx.Rollback()
			utils.InternalServerError(c, "Failed to update default card", nil)
			return
		}
	}
	if err := tx.Create(&method).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to store card for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to store card", nil)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.Created(c, "Card added successfully", gin.H{"payment_method": method})
}

// DeletePaymentMethod removes a stored card
func DeletePaymentMethod(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	methodID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid payment method ID", nil)
		return
	}

	res := config.DB.Where("id = ? AND user_id = ?", methodID, user.ID).Delete(&models.PaymentMethod{})
	if res.Error != nil {
		utils.InternalServerError(c, "Failed to delete payment method", nil)
		return
	}
	if res.RowsAffected == 0 {
		utils.NotFound(c, "Payment method not found")
		return
	}
	utils.Success(c, "Payment method deleted successfully", nil)
}

// cardBrand guesses the network from the leading digits
func cardBrand(number string) string {
	digits := strings.ReplaceAll(strings.ReplaceAll(number, " ", ""), "-", "")
	switch {
	case strings.HasPrefix(digits, "4"):
		return "visa"
	case len(digits) >= 2 && digits[0] == '5' && digits[1] >= '1' && digits[1] <= '5':
		return "mastercard"
	case strings.HasPrefix(digits, "34"), strings.HasPrefix(digits, "37"):
		return "amex"
	case strings.HasPrefix(digits, "6"):
		return "discover"
	}
	return "card"
}
