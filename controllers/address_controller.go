package controllers

import (
	"strconv"

	"github.com/stylenest/stylenest-api/config"
	"github.com/stylenest/stylenest-api/models"
	"github.com/stylenest/stylenest-api/utils"

	"github.com/gin-gonic/gin"
)

// AddressRequest represents address create/update payloads
type AddressRequest struct {
	Name       string `json:"name"`
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state"`
	Country    string `json:"country" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	Phone      string `json:"phone"`
	IsDefault  bool   `json:"is_default"`
}

// ListAddresses returns the caller's addresses
func ListAddresses(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var addresses []models.Address
	if err := config.DB.Where("user_id = ?", user.ID).Order("is_default DESC, id").Find(&addresses).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch addresses", nil)
		return
	}
	utils.Success(c, "Addresses retrieved successfully", gin.H{"addresses": addresses})
}

// AddAddress creates an address for the caller
func AddAddress(c *gin.Context) {
	utils.LogInfo("AddAddress called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	address := models.Address{
		UserID:     user.ID,
		Name:       req.Name,
		Line1:      req.Line1,
		Line2:      req.Line2,
		City:       req.City,
		State:      req.State,
		Country:    req.Country,
		PostalCode: req.PostalCode,
		Phone:      req.Phone,
		IsDefault:  req.IsDefault,
	}

	tx := config.DB.Begin()
	if req.IsDefault {
		if err := tx.Model(&models.Address{}).Where("user_id = ?", user.ID).Update("is_default", false).Error; err != nil {
			tx.Rollback()
			utils.InternalServerError(c, "Failed to update default address", nil)
			return
		}
	}
	if err := tx.Create(&address).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create address for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create address", nil)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.Created(c, "Address added successfully", gin.H{"address": address})
}

// UpdateAddress updates one of the caller's addresses
func UpdateAddress(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	addressID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid address ID", nil)
		return
	}

	var address models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", addressID, user.ID).First(&address).Error; err != nil {
		utils.NotFound(c, "Address not found")
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	address.Name = req.Name
	address.Line1 = req.Line1
	address.Line2 = req.Line2
	address.City = req.City
	address.State = req.State
	address.Country = req.Country
	address.PostalCode = req.PostalCode
	address.Phone = req.Phone

	tx := config.DB.Begin()
	if req.IsDefault && !address.IsDefault {
		if err := tx.Model(&models.Address{}).Where("user_id = ?", user.ID).Update("is_default", false).Error; err != nil {
			tx.Rollback()
			utils.InternalServerError(c, "Failed to update default address", nil)
			return
		}
		address.IsDefault = true
	}
	if err := tx.Save(&address).Error; err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to update address", nil)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.Success(c, "Address updated successfully", gin.H{"address": address})
}

// DeleteAddress removes one of the caller's addresses
func DeleteAddress(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	addressID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid address ID", nil)
		return
	}

	res := config.DB.Where("id = ? AND user_id = ?", addressID, user.ID).Delete(&models.Address{})
	if res.Error != nil {
		utils.InternalServerError(c, "Failed to delete address", nil)
		return
	}
	if res.RowsAffected == 0 {
		utils.NotFound(c, "Address not found")
		return
	}
	utils.Success(c, "Address deleted successfully", nil)
}
