package controllers

import (
	"strconv"

	"github.com/stylenest/stylenest-api/config"
	"github.com/stylenest/stylenest-api/models"
	"github.com/stylenest/stylenest-api/utils"

	"github.com/gin-gonic/gin"
)

// AddToWishlist saves a product for later
func AddToWishlist(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req struct {
		ProductID uint `json:"productRef" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var product models.Product
	if err := config.DB.First(&product, req.ProductID).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	var existing models.Wishlist
	if err := config.DB.Where("user_id = ? AND product_id = ?", user.ID, req.ProductID).First(&existing).Error; err == nil {
		utils.Conflict(c, "Product is already in your wishlist", nil)
		return
	}

	entry := models.Wishlist{UserID: user.ID, ProductID: req.ProductID}
	if err := config.DB.Create(&entry).Error; err != nil {
		utils.LogError("Failed to add to wishlist for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to add to wishlist", nil)
		return
	}

	utils.Created(c, "Added to wishlist", gin.H{"wishlist_item": entry})
}

// GetWishlist lists the caller's saved products
func GetWishlist(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var items []models.Wishlist
	if err := config.DB.Preload("Product.Variants.SizeOptions").Where("user_id = ?", user.ID).Order("created_at DESC").Find(&items).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch wishlist", nil)
		return
	}
	utils.Success(c, "Wishlist retrieved successfully", gin.H{"wishlist": items})
}

// RemoveFromWishlist deletes one saved product
func RemoveFromWishlist(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	res := config.DB.Where("user_id = ? AND product_id = ?", user.ID, productID).Delete(&models.Wishlist{})
	if res.Error != nil {
		utils.InternalServerError(c, "Failed to remove from wishlist", nil)
		return
	}
	if res.RowsAffected == 0 {
		utils.NotFound(c, "Product not in wishlist")
		return
	}
	utils.Success(c, "Removed from wishlist", nil)
}
