package controllers

import (
	"strconv"
	"strings"

	"github.com/stylenest/stylenest-api/config"
	"github.com/stylenest/stylenest-api/models"
	"github.com/stylenest/stylenest-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetProducts lists active products with filter, sort and pagination
func GetProducts(c *gin.Context) {
	query := config.DB.Model(&models.Product{}).Where("is_active = ?", true)

	if name := c.Query("name"); name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category_id = ?", category)
	}
	if brand := c.Query("brand"); brand != "" {
		query = query.Where("brand = ?", brand)
	}
	if featured := c.Query("featured"); featured == "true" {
		query = query.Where("is_featured = ?", true)
	}

	switch c.DefaultQuery("sort", "newest") {
	case "price_asc":
		query = query.Order("price ASC")
	case "price_desc":
		query = query.Order("price DESC")
	case "popular":
		query = query.Order("views DESC")
	default:
		query = query.Order("created_at DESC")
	}

	page, limit := utils.GetPaginationParams(c)
	var total int64
	query.Count(&total)

	var products []models.Product
	if err := query.Preload("Variants.SizeOptions").Preload("Category").
		Offset((page - 1) * limit).Limit(limit).Find(&products).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch products", nil)
		return
	}

	utils.SuccessWithPagination(c, "Products retrieved successfully", products, total, page, limit)
}

// GetProductDetails returns one product and bumps its view counter
func GetProductDetails(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var product models.Product
	if err := config.DB.Preload("Variants.SizeOptions").Preload("Category").
		Where("id = ? AND is_active = ?", productID, true).First(&product).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	config.DB.Model(&product).UpdateColumn("views", gorm.Expr("views + 1"))

	utils.Success(c, "Product retrieved successfully", gin.H{"product": product})
}

// ListCategories returns all unblocked categories
func ListCategories(c *gin.Context) {
	var categories []models.Category
	if err := config.DB.Where("blocked = ?", false).Order("name").Find(&categories).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch categories", nil)
		return
	}
	utils.Success(c, "Categories retrieved successfully", gin.H{"categories": categories})
}
