package controllers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/stylenest/stylenest-api/config"
	"github.com/stylenest/stylenest-api/models"
	"github.com/stylenest/stylenest-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AddToCartRequest represents the payload for adding a line to the cart
type AddToCartRequest struct {
	ProductID     uint   `json:"productRef" binding:"required"`
	Quantity      int    `json:"quantity"`
	SelectedSize  string `json:"selectedSize" binding:"required"`
	SelectedColor string `json:"selectedColor" binding:"required"`
}

// cartOwner resolves the :userId path param and verifies it matches the
// authenticated caller.
func cartOwner(c *gin.Context) (*models.User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return nil, false
	}
	user := userVal.(models.User)

	if param := c.Param("userId"); param != "" {
		id, err := strconv.Atoi(param)
		if err != nil || uint(id) != user.ID {
			utils.Forbidden(c, "Cannot modify another user's cart")
			return nil, false
		}
	}
	return &user, true
}

// AddToCart adds or merges a line item into the user's cart. The line
// subtotal is frozen at the product's current price and does not track
// later price changes.
func AddToCart(c *gin.Context) {
	utils.LogInfo("AddToCart called")
	user, ok := cartOwner(c)
	if !ok {
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}
	utils.LogInfo("Adding product ID: %d (%s/%s) x%d to cart for user ID: %d",
		req.ProductID, req.SelectedColor, req.SelectedSize, req.Quantity, user.ID)

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	var product models.Product
	if err := tx.First(&product, req.ProductID).Error; err != nil {
		tx.Rollback()
		utils.NotFound(c, "Product not found")
		return
	}
	if !product.IsActive {
		tx.Rollback()
		utils.BadRequest(c, "Product is not available", nil)
		return
	}

	sizeOption, appErr := findSizeOption(tx, product.ID, req.SelectedColor, req.SelectedSize)
	if appErr != nil {
		tx.Rollback()
		utils.Error(c, appErr.Code, appErr.Message, nil)
		return
	}

	var line models.CartItem
	err := tx.Where("user_id = ? AND product_id = ? AND selected_color = ? AND selected_size = ?",
		user.ID, product.ID, req.SelectedColor, req.SelectedSize).First(&line).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		line = models.CartItem{
			UserID:        user.ID,
			ProductID:     product.ID,
			Quantity:      req.Quantity,
			SelectedSize:  req.SelectedSize,
			SelectedColor: req.SelectedColor,
			SubTotal:      product.Price * float64(req.Quantity),
		}
		if sizeOption.Stock < line.Quantity {
			tx.Rollback()
			utils.Conflict(c, fmt.Sprintf("Only %d left in stock for this size", sizeOption.Stock), nil)
			return
		}
		if err := tx.Create(&line).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to create cart line for user ID: %d: %v", user.ID, err)
			utils.InternalServerError(c, "Failed to add to cart", nil)
			return
		}
	case err != nil:
		tx.Rollback()
		utils.InternalServerError(c, "Failed to read cart", nil)
		return
	default:
		line.Quantity += req.Quantity
		line.SubTotal += product.Price * float64(req.Quantity)
		if sizeOption.Stock < line.Quantity {
			tx.Rollback()
			utils.Conflict(c, fmt.Sprintf("Only %d left in stock for this size", sizeOption.Stock), nil)
			return
		}
		if err := tx.Save(&line).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to merge cart line for user ID: %d: %v", user.ID, err)
			utils.InternalServerError(c, "Failed to update cart", nil)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	respondWithCart(c, user.ID, "Item added to cart")
}

// GetCart returns the user's cart with the recomputed total
func GetCart(c *gin.Context) {
	user, ok := cartOwner(c)
	if !ok {
		return
	}
	respondWithCart(c, user.ID, "Cart retrieved successfully")
}

// UpdateCartItem changes the quantity of one cart line. The unit price
// implied by the frozen subtotal is kept, so quantity changes scale the
// line at its add-time price.
func UpdateCartItem(c *gin.Context) {
	utils.LogInfo("UpdateCartItem called")
	user, ok := cartOwner(c)
	if !ok {
		return
	}

	var req struct {
		ItemID   uint `json:"itemId" binding:"required"`
		Quantity int  `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if req.Quantity < 1 {
		utils.BadRequest(c, "Quantity must be at least 1", nil)
		return
	}

	var line models.CartItem
	if err := config.DB.Where("id = ? AND user_id = ?", req.ItemID, user.ID).First(&line).Error; err != nil {
		utils.NotFound(c, "Cart item not found")
		return
	}

	sizeOption, appErr := findSizeOption(config.DB, line.ProductID, line.SelectedColor, line.SelectedSize)
	if appErr != nil {
		utils.Error(c, appErr.Code, appErr.Message, nil)
		return
	}
	if sizeOption.Stock < req.Quantity {
		utils.Conflict(c, fmt.Sprintf("Only %d left in stock for this size", sizeOption.Stock), nil)
		return
	}

	unitPrice := line.SubTotal / float64(line.Quantity)
	line.Quantity = req.Quantity
	line.SubTotal = unitPrice * float64(req.Quantity)
	if err := config.DB.Save(&line).Error; err != nil {
		utils.LogError("Failed to update cart line for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to update cart", nil)
		return
	}

	respondWithCart(c, user.ID, "Cart updated successfully")
}

// RemoveCartItem deletes one line from the cart
func RemoveCartItem(c *gin.Context) {
	user, ok := cartOwner(c)
	if !ok {
		return
	}

	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil {
		utils.BadRequest(c, "Invalid item ID", nil)
		return
	}

	res := config.DB.Where("id = ? AND user_id = ?", itemID, user.ID).Delete(&models.CartItem{})
	if res.Error != nil {
		utils.InternalServerError(c, "Failed to remove cart item", nil)
		return
	}
	if res.RowsAffected == 0 {
		utils.NotFound(c, "Cart item not found")
		return
	}

	respondWithCart(c, user.ID, "Item removed from cart")
}

// ClearCart removes every line from the user's cart
func ClearCart(c *gin.Context) {
	user, ok := cartOwner(c)
	if !ok {
		return
	}

	if err := config.DB.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error; err != nil {
		utils.InternalServerError(c, "Failed to clear cart", nil)
		return
	}

	respondWithCart(c, user.ID, "Cart cleared")
}

// findSizeOption resolves a (product, color, size) stock cell, mapping
// the two lookup failures onto their own errors.
func findSizeOption(db *gorm.DB, productID uint, color, size string) (*models.SizeOption, *utils.AppError) {
	var variant models.Variant
	if err := db.Where("product_id = ? AND color = ?", productID, color).First(&variant).Error; err != nil {
		return nil, utils.NotFoundError(fmt.Sprintf("Color '%s' not available for this product", color), err)
	}
	var sizeOption models.SizeOption
	if err := db.Where("variant_id = ? AND size = ?", variant.ID, size).First(&sizeOption).Error; err != nil {
		return nil, utils.NotFoundError(fmt.Sprintf("Size '%s' not available in color '%s'", size, color), err)
	}
	return &sizeOption, nil
}

// respondWithCart returns the cart lines and the total recomputed as the
// sum of the line subtotals.
func respondWithCart(c *gin.Context, userID uint, message string) {
	var items []models.CartItem
	if err := config.DB.Preload("Product").Where("user_id = ?", userID).Order("id").Find(&items).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch cart", nil)
		return
	}

	var total float64
	for _, item := range items {
		total += item.SubTotal
	}

	utils.Success(c, message, gin.H{
		"products":    items,
		"totalAmount": total,
	})
}
