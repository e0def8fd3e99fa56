package controllers

import (
	"errors"
	"time"

	"github.com/stylenest/stylenest-api/config"
	"github.com/stylenest/stylenest-api/models"
	"github.com/stylenest/stylenest-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRequest represents the signup payload
type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// RegisterUser creates a new customer account
func RegisterUser(c *gin.Context) {
	utils.LogInfo("RegisterUser called")

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if err := utils.ValidateUsername(req.Username); err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}
	if err := utils.ValidateEmail(req.Email); err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ? OR username = ?", req.Email, req.Username).First(&existing).Error; err == nil {
		utils.Conflict(c, "An account with this email or username already exists", nil)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Failed to hash password: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	user := models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		utils.LogError("Failed to create user: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}
	utils.LogInfo("Registered user ID: %d", user.ID)

	if err := utils.SendWelcomeEmail(user.Email, user.Username); err != nil {
		utils.LogError("Failed to send welcome email to %s: %v", user.Email, err)
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}

	utils.Created(c, "Account created successfully", gin.H{
		"token": token,
		"user":  user,
	})
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginUser authenticates a customer and issues a JWT
func LoginUser(c *gin.Context) {
	utils.LogInfo("LoginUser called")

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		utils.LogError("Failed login attempt for email: %s", req.Email)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if user.IsBlocked {
		utils.Forbidden(c, "Account is blocked")
		return
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}

	config.DB.Model(&user).UpdateColumn("last_login_at", time.Now())
	utils.LogInfo("User ID: %d logged in", user.ID)

	utils.Success(c, "Logged in successfully", gin.H{
		"token": token,
		"user":  user,
	})
}

// Logout blacklists the caller's token until its natural expiry
func Logout(c *gin.Context) {
	tokenVal, exists := c.Get("token")
	if !exists {
		utils.Unauthorized(c, "No active session")
		return
	}

	blacklisted := models.BlacklistedToken{
		Token:     tokenVal.(string),
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	if err := config.DB.Create(&blacklisted).Error; err != nil {
		utils.LogError("Failed to blacklist token: %v", err)
		utils.InternalServerError(c, "Failed to log out", nil)
		return
	}

	utils.Success(c, "Logged out successfully", nil)
}

// GetProfile returns the caller's account details
func GetProfile(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	config.DB.Preload("Addresses").First(&user, user.ID)
	utils.Success(c, "Profile retrieved successfully", gin.H{"user": user})
}

// UpdateProfile updates the caller's basic details
func UpdateProfile(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req struct {
		FirstName    *string `json:"first_name"`
		LastName     *string `json:"last_name"`
		Phone        *string `json:"phone"`
		ProfileImage *string `json:"profile_image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.ProfileImage != nil {
		user.ProfileImage = *req.ProfileImage
	}

	if err := config.DB.Save(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to update profile", nil)
		return
	}
	utils.Success(c, "Profile updated successfully", gin.H{"user": user})
}

// AdminLogin authenticates a back-office operator
func AdminLogin(c *gin.Context) {
	utils.LogInfo("AdminLogin called")

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var admin models.Admin
	if err := config.DB.Where("email = ?", req.Email).First(&admin).Error; err != nil {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if !utils.CheckPassword(req.Password, admin.Password) {
		utils.LogError("Failed admin login attempt for email: %s", req.Email)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if !admin.IsActive {
		utils.Forbidden(c, "Admin account is inactive")
		return
	}

	token, err := utils.GenerateAdminToken(&admin)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}

	config.DB.Model(&admin).UpdateColumn("last_login", time.Now())
	utils.Success(c, "Logged in successfully", gin.H{"token": token})
}

// CreateSampleAdmin seeds a default admin account on first boot
func CreateSampleAdmin() error {
	var admin models.Admin
	err := config.DB.Where("email = ?", "admin@stylenest.io").First(&admin).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := utils.HashPassword("Admin@123")
	if err != nil {
		return err
	}
	admin = models.Admin{
		Email:     "admin@stylenest.io",
		Password:  hashed,
		FirstName: "Store",
		LastName:  "Admin",
		IsActive:  true,
	}
	return config.DB.Create(&admin).Error
}
