package controllers

import (
	"strconv"

	"github.com/stylenest/stylenest-api/config"
	"github.com/stylenest/stylenest-api/models"
	"github.com/stylenest/stylenest-api/utils"

	"github.com/gin-gonic/gin"
)

// SendChatMessage appends a message to the caller's support conversation
func SendChatMessage(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request. message is required", err.Error())
		return
	}

	msg := models.ChatMessage{
		UserID:  user.ID,
		Sender:  models.ChatSenderUser,
		Message: req.Message,
	}
	if err := config.DB.Create(&msg).Error; err != nil {
		utils.LogError("Failed to save chat message for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to send message", nil)
		return
	}
	utils.Created(c, "Message sent", gin.H{"chat_message": msg})
}

// GetChatHistory returns the caller's support conversation in order
func GetChatHistory(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var messages []models.ChatMessage
	if err := config.DB.Where("user_id = ?", user.ID).Order("created_at ASC, id ASC").Find(&messages).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch chat history", nil)
		return
	}
	utils.Success(c, "Chat history retrieved successfully", gin.H{"messages": messages})
}

// AdminReplyToChat lets a support agent answer a user's conversation
func AdminReplyToChat(c *gin.Context) {
	utils.LogInfo("AdminReplyToChat called")

	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		utils.BadRequest(c, "Invalid user ID", nil)
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request. message is required", err.Error())
		return
	}

	msg := models.ChatMessage{
		UserID:  user.ID,
		Sender:  models.ChatSenderAgent,
		Message: req.Message,
	}
	if err := config.DB.Create(&msg).Error; err != nil {
		utils.InternalServerError(c, "Failed to send reply", nil)
		return
	}
	utils.Created(c, "Reply sent", gin.H{"chat_message": msg})
}

// AdminGetChatHistory returns one user's conversation for an agent
func AdminGetChatHistory(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		utils.BadRequest(c, "Invalid user ID", nil)
		return
	}

	var messages []models.ChatMessage
	if err := config.DB.Where("user_id = ?", userID).Order("created_at ASC, id ASC").Find(&messages).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch chat history", nil)
		return
	}
	utils.Success(c, "Chat history retrieved successfully", gin.H{"messages": messages})
}

// AdminListConversations lists users with open support conversations
func AdminListConversations(c *gin.Context) {
	var userIDs []uint
	if err := config.DB.Model(&models.ChatMessage{}).Distinct("user_id").Pluck("user_id", &userIDs).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch conversations", nil)
		return
	}

	type conversation struct {
		UserID      uint               `json:"user_id"`
		Username    string             `json:"username"`
		LastMessage models.ChatMessage `json:"last_message"`
	}
	conversations := make([]conversation, 0, len(userIDs))
	for _, id := range userIDs {
		var user models.User
		if err := config.DB.First(&user, id).Error; err != nil {
			continue
		}
		var last models.ChatMessage
		if err := config.DB.Where("user_id = ?", id).Order("created_at DESC, id DESC").First(&last).Error; err != nil {
			continue
		}
		conversations = append(conversations, conversation{UserID: id, Username: user.Username, LastMessage: last})
	}
	utils.Success(c, "Conversations retrieved successfully", gin.H{"conversations": conversations})
}
