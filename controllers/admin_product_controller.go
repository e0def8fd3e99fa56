package controllers

import (
	"fmt"
	"strconv"

	"github.com/stylenest/stylenest-api/config"
	"github.com/stylenest/stylenest-api/models"
	"github.com/stylenest/stylenest-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// VariantInput is one color option with its size/stock table
type VariantInput struct {
	Color string `json:"color" binding:"required"`
	Image string `json:"image"`
	Sizes []struct {
		Size  string `json:"size" binding:"required"`
		Stock int    `json:"stock"`
	} `json:"sizes" binding:"required"`
}

// CreateProductRequest represents the admin product creation payload
type CreateProductRequest struct {
	Name          string         `json:"name" binding:"required"`
	Description   string         `json:"description"`
	Price         float64        `json:"price" binding:"required"`
	OriginalPrice float64        `json:"originalPrice"`
	CategoryID    uint           `json:"categoryId" binding:"required"`
	ImageURL      string         `json:"imageUrl"`
	Brand         string         `json:"brand"`
	Variants      []VariantInput `json:"variants" binding:"required"`
}

// AdminCreateProduct creates a product with its variants and stock cells
func AdminCreateProduct(c *gin.Context) {
	utils.LogInfo("AdminCreateProduct called")

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if req.Price <= 0 {
		utils.BadRequest(c, "Price must be positive", nil)
		return
	}

	var category models.Category
	if err := config.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	product := models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		CategoryID:    req.CategoryID,
		ImageURL:      req.ImageURL,
		Brand:         req.Brand,
		IsActive:      true,
	}
	for _, v := range req.Variants {
		variant := models.Variant{Color: v.Color, Image: v.Image}
		for _, s := range v.Sizes {
			if s.Stock < 0 {
				utils.BadRequest(c, "Stock cannot be negative", nil)
				return
			}
			variant.SizeOptions = append(variant.SizeOptions, models.SizeOption{Size: s.Size, Stock: s.Stock})
		}
		product.Variants = append(product.Variants, variant)
	}

	if err := config.DB.Create(&product).Error; err != nil {
		utils.LogError("Failed to create product: %v", err)
		utils.InternalServerError(c, "Failed to create product", nil)
		return
	}

	utils.LogInfo("Created product ID: %d", product.ID)
	utils.Created(c, "Product created successfully", gin.H{"product": product})
}

// AdminUpdateProduct updates basic product fields
func AdminUpdateProduct(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var product models.Product
	if err := config.DB.First(&product, productID).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	var req struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		ImageURL    *string  `json:"imageUrl"`
		Brand       *string  `json:"brand"`
		IsActive    *bool    `json:"isActive"`
		IsFeatured  *bool    `json:"isFeatured"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			utils.BadRequest(c, "Price must be positive", nil)
			return
		}
		product.Price = *req.Price
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}

	if err := config.DB.Save(&product).Error; err != nil {
		utils.InternalServerError(c, "Failed to update product", nil)
		return
	}
	utils.Success(c, "Product updated successfully", gin.H{"product": product})
}

// AdminDeleteProduct soft-deletes a product
func AdminDeleteProduct(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	res := config.DB.Delete(&models.Product{}, productID)
	if res.Error != nil {
		utils.InternalServerError(c, "Failed to delete product", nil)
		return
	}
	if res.RowsAffected == 0 {
		utils.NotFound(c, "Product not found")
		return
	}
	utils.Success(c, "Product deleted successfully", nil)
}

// UpdateStockRequest adjusts one (color, size) stock cell
type UpdateStockRequest struct {
	Color    string `json:"color" binding:"required"`
	Size     string `json:"size" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
	Action   string `json:"action" binding:"required"` // add or subtract
}

// AdminUpdateStock adjusts a single stock cell. Subtraction is a
// conditional update guarded by the current value so the cell can never
// go negative.
func AdminUpdateStock(c *gin.Context) {
	utils.LogInfo("AdminUpdateStock called")

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var req UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if req.Quantity < 1 {
		utils.BadRequest(c, "Quantity must be at least 1", nil)
		return
	}
	if req.Action != "add" && req.Action != "subtract" {
		utils.BadRequest(c, "Action must be 'add' or 'subtract'", nil)
		return
	}

	sizeOption, appErr := findSizeOption(config.DB, uint(productID), req.Color, req.Size)
	if appErr != nil {
		utils.Error(c, appErr.Code, appErr.Message, nil)
		return
	}

	var res *gorm.DB
	if req.Action == "add" {
		res = config.DB.Model(&models.SizeOption{}).
			Where("id = ?", sizeOption.ID).
			UpdateColumn("stock", gorm.Expr("stock + ?", req.Quantity))
	} else {
		res = config.DB.Model(&models.SizeOption{}).
			Where("id = ? AND stock >= ?", sizeOption.ID, req.Quantity).
			UpdateColumn("stock", gorm.Expr("stock - ?", req.Quantity))
	}
	if res.Error != nil {
		utils.LogError("Failed to update stock for size option %d: %v", sizeOption.ID, res.Error)
		utils.InternalServerError(c, "Failed to update stock", nil)
		return
	}
	if res.RowsAffected == 0 {
		utils.Conflict(c, fmt.Sprintf("Cannot subtract %d, only %d in stock", req.Quantity, sizeOption.Stock), nil)
		return
	}

	var updated models.SizeOption
	config.DB.First(&updated, sizeOption.ID)
	utils.LogInfo("Stock for size option %d now %d", updated.ID, updated.Stock)
	utils.Success(c, "Stock updated successfully", gin.H{
		"color": req.Color,
		"size":  updated.Size,
		"stock": updated.Stock,
	})
}

// AdminCreateCategory creates a category
func AdminCreateCategory(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	category := models.Category{Name: req.Name, Description: req.Description}
	if err := config.DB.Create(&category).Error; err != nil {
		utils.Conflict(c, "Category already exists", nil)
		return
	}
	utils.Created(c, "Category created successfully", gin.H{"category": category})
}
