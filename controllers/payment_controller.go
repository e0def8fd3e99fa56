package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/stylenest/stylenest-api/config"
	"github.com/stylenest/stylenest-api/models"
	"github.com/stylenest/stylenest-api/utils"

	"github.com/gin-gonic/gin"
	razorpay "github.com/razorpay/razorpay-go"
)

// InitiatePayment creates a Razorpay order for an online-payment order
func InitiatePayment(c *gin.Context) {
	utils.LogInfo("InitiatePayment called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req struct {
		OrderID uint `json:"orderId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request. orderId is required", err.Error())
		return
	}

	var order models.Order
	if err := config.DB.Where("id = ? AND user_id = ?", req.OrderID, user.ID).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if order.PaymentMethod != "online" {
		utils.BadRequest(c, "Order is not an online-payment order", nil)
		return
	}

	var existing models.Payment
	if err := config.DB.Where("order_id = ? AND status = ?", order.ID, "completed").First(&existing).Error; err == nil {
		utils.BadRequest(c, "Payment for this order has already been completed", nil)
		return
	}

	client := razorpay.NewClient(os.Getenv("RAZORPAY_KEY"), os.Getenv("RAZORPAY_SECRET"))
	data := map[string]interface{}{
		"amount":   int(order.TotalAmount * 100), // smallest currency unit
		"currency": "INR",
		"receipt":  fmt.Sprintf("order_%d", order.ID),
	}
	rzOrder, err := client.Order.Create(data, nil)
	if err != nil {
		utils.LogError("Failed to create gateway order for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to initiate payment", nil)
		return
	}

	payment := models.Payment{
		OrderID:         order.ID,
		RazorpayOrderID: fmt.Sprintf("%v", rzOrder["id"]),
		Amount:          order.TotalAmount,
		Status:          "pending",
	}
	if err := config.DB.Create(&payment).Error; err != nil {
		utils.LogError("Failed to record payment for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to record payment", nil)
		return
	}

	utils.Success(c, "Payment initiated", gin.H{
		"razorpay_order_id": payment.RazorpayOrderID,
		"amount":            data["amount"],
		"currency":          data["currency"],
		"key":               os.Getenv("RAZORPAY_KEY"),
	})
}

// VerifyPayment checks the gateway signature and marks the payment
// completed
func VerifyPayment(c *gin.Context) {
	utils.LogInfo("VerifyPayment called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req struct {
		RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
		RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
		RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var payment models.Payment
	if err := config.DB.Where("razorpay_order_id = ?", req.RazorpayOrderID).First(&payment).Error; err != nil {
		utils.NotFound(c, "Payment not found")
		return
	}

	var order models.Order
	if err := config.DB.Where("id = ? AND user_id = ?", payment.OrderID, user.ID).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	mac := hmac.New(sha256.New, []byte(os.Getenv("RAZORPAY_SECRET")))
	mac.Write([]byte(req.RazorpayOrderID + "|" + req.RazorpayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(req.RazorpaySignature)) {
		utils.LogError("Signature mismatch for payment on order ID: %d", order.ID)
		config.DB.Model(&payment).Update("status", "failed")
		utils.BadRequest(c, "Payment verification failed", nil)
		return
	}

	config.DB.Model(&payment).Update("status", "completed")
	utils.LogInfo("Payment completed for order ID: %d", order.ID)
	utils.Success(c, "Payment verified successfully", gin.H{"orderId": order.ID})
}
