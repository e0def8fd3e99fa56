package controllers

import (
	"encoding/json"
	"errors"
	"math/rand"
	"time"

	"github.com/stylenest/stylenest-api/config"
	"github.com/stylenest/stylenest-api/models"
	"github.com/stylenest/stylenest-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// spinReward is one entry of the fixed spin table. Selection is uniform;
// weighting happens only through duplicate entries.
type spinReward struct {
	Text     string
	Icon     string
	Type     string
	Discount string
	Name     string
}

var spinRewards = []spinReward{
	{Text: "Free Delivery", Icon: "truck", Type: models.VoucherTypeDeliver, Discount: "", Name: "Free Delivery Voucher"},
	{Text: "10% Discount Coupon", Icon: "coupon", Type: models.VoucherTypeCoupon, Discount: "10", Name: "10% Off Coupon"},
	{Text: "10% Discount Coupon", Icon: "coupon", Type: models.VoucherTypeCoupon, Discount: "10", Name: "10% Off Coupon"},
	{Text: "20% Discount Coupon", Icon: "coupon", Type: models.VoucherTypeCoupon, Discount: "20", Name: "20% Off Coupon"},
	{Text: "30% Discount Coupon", Icon: "coupon", Type: models.VoucherTypeCoupon, Discount: "30", Name: "30% Off Coupon"},
}

const voucherValidityDays = 30

// getOrCreateLedger fetches a user's reward ledger, creating it on first
// access with an all-false cycle and zero spins.
func getOrCreateLedger(db *gorm.DB, userID uint) (*models.RewardLedger, error) {
	var ledger models.RewardLedger
	err := db.Where("user_id = ?", userID).First(&ledger).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ledger = models.RewardLedger{
			UserID:     userID,
			Attendance: models.NewAttendanceCycle(),
			SpinCount:  0,
		}
		if err := db.Create(&ledger).Error; err != nil {
			return nil, err
		}
		return &ledger, nil
	}
	if err != nil {
		return nil, err
	}
	return &ledger, nil
}

// GetUserRewards returns the caller's reward ledger, lazily creating it,
// together with the grant history and currently active vouchers.
func GetUserRewards(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	ledger, err := getOrCreateLedger(config.DB, user.ID)
	if err != nil {
		utils.LogError("Failed to load reward ledger for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to load rewards", nil)
		return
	}

	var history []models.RewardGrant
	config.DB.Where("user_id = ?", user.ID).Order("granted_at").Find(&history)

	var vouchers []models.Voucher
	config.DB.Where("user_id = ? AND status = ?", user.ID, models.VoucherStatusActive).Order("received_at").Find(&vouchers)

	utils.Success(c, "Rewards retrieved successfully", gin.H{
		"attendance":        ledger.Attendance,
		"lastCheckIn":       ledger.LastCheckIn,
		"spinCount":         ledger.SpinCount,
		"rewardHistory":     history,
		"availableVouchers": vouchers,
	})
}

// CheckIn marks today's attendance slot and grants one spin credit.
// Succeeds at most once per calendar day; the guard is a conditional
// update on last_check_in so two same-day calls can never both grant.
func CheckIn(c *gin.Context) {
	utils.LogInfo("CheckIn called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)
	now := time.Now()

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction for user ID: %d: %v", user.ID, tx.Error)
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	ledger, err := getOrCreateLedger(tx, user.ID)
	if err != nil {
		tx.Rollback()
		utils.LogError("Failed to load reward ledger for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to load rewards", nil)
		return
	}

	if ledger.LastCheckIn != nil && sameCalendarDay(*ledger.LastCheckIn, now) {
		tx.Rollback()
		utils.LogInfo("User ID: %d already checked in today", user.ID)
		utils.Conflict(c, "You have already checked in today", nil)
		return
	}

	// First false slot gets today's mark; a full cycle restarts at slot 0
	attendance := ledger.Attendance
	if len(attendance) != models.AttendanceCycleLength {
		attendance = models.NewAttendanceCycle()
	}
	slot := -1
	for i, marked := range attendance {
		if !marked {
			slot = i
			break
		}
	}
	if slot == -1 {
		attendance = models.NewAttendanceCycle()
		slot = 0
	}
	attendance[slot] = true

	attendanceJSON, err := json.Marshal(attendance)
	if err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to encode attendance", nil)
		return
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	res := tx.Model(&models.RewardLedger{}).
		Where("id = ? AND (last_check_in IS NULL OR last_check_in < ?)", ledger.ID, dayStart).
		Updates(map[string]interface{}{
			"attendance":    string(attendanceJSON),
			"last_check_in": now,
			"spin_count":    gorm.Expr("spin_count + 1"),
		})
	if res.Error != nil {
		tx.Rollback()
		utils.LogError("Failed to record check-in for user ID: %d: %v", user.ID, res.Error)
		utils.InternalServerError(c, "Failed to record check-in", nil)
		return
	}
	if res.RowsAffected == 0 {
		// A concurrent request won the date guard
		tx.Rollback()
		utils.Conflict(c, "You have already checked in today", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit check-in for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.LogInfo("Check-in recorded for user ID: %d, slot: %d", user.ID, slot)
	utils.Success(c, "Checked in successfully", gin.H{
		"attendance":  attendance,
		"lastCheckIn": now,
		"spinCount":   ledger.SpinCount + 1,
	})
}

// Spin consumes one spin credit and grants a random reward from the
// fixed table. The credit decrement is guarded by spin_count > 0 so
// concurrent spins cannot grant more rewards than credits held.
func Spin(c *gin.Context) {
	utils.LogInfo("Spin called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)
	now := time.Now()

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction for user ID: %d: %v", user.ID, tx.Error)
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	ledger, err := getOrCreateLedger(tx, user.ID)
	if err != nil {
		tx.Rollback()
		utils.LogError("Failed to load reward ledger for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to load rewards", nil)
		return
	}

	res := tx.Model(&models.RewardLedger{}).
		Where("id = ? AND spin_count > 0", ledger.ID).
		UpdateColumn("spin_count", gorm.Expr("spin_count - 1"))
	if res.Error != nil {
		tx.Rollback()
		utils.LogError("Failed to consume spin credit for user ID: %d: %v", user.ID, res.Error)
		utils.InternalServerError(c, "Failed to consume spin credit", nil)
		return
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		utils.LogInfo("User ID: %d has no spins available", user.ID)
		utils.Conflict(c, "No spins available", nil)
		return
	}

	reward := spinRewards[rand.Intn(len(spinRewards))]

	code, err := generateUniqueVoucherCode(tx)
	if err != nil {
		tx.Rollback()
		utils.LogError("Failed to generate voucher code for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to generate reward code", nil)
		return
	}

	grant := models.RewardGrant{
		UserID:        user.ID,
		Text:          reward.Text,
		Icon:          reward.Icon,
		Code:          code,
		DaysRemaining: voucherValidityDays,
		Type:          reward.Type,
		GrantedAt:     now,
	}
	if err := tx.Create(&grant).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to record reward grant for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to record reward", nil)
		return
	}

	var voucher *models.Voucher
	if reward.Type == models.VoucherTypeDeliver || reward.Type == models.VoucherTypeCoupon {
		v := models.Voucher{
			UserID:        user.ID,
			Name:          reward.Name,
			Discount:      reward.Discount,
			Code:          code,
			DaysRemaining: voucherValidityDays,
			Icon:          reward.Icon,
			Type:          reward.Type,
			Status:        models.VoucherStatusActive,
			ReceivedAt:    now,
		}
		if err := tx.Create(&v).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to store voucher for user ID: %d: %v", user.ID, err)
			utils.InternalServerError(c, "Failed to store voucher", nil)
			return
		}
		voucher = &v
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit spin for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.LogInfo("Spin granted '%s' to user ID: %d", reward.Text, user.ID)
	utils.Success(c, "Spin completed", gin.H{
		"grantedReward": grant,
		"voucher":       voucher,
		"spinCount":     ledger.SpinCount - 1,
	})
}

// generateUniqueVoucherCode retries on the unlikely collision with an
// existing voucher code.
func generateUniqueVoucherCode(db *gorm.DB) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code, err := utils.GenerateVoucherCode()
		if err != nil {
			return "", err
		}
		var count int64
		if err := db.Model(&models.Voucher{}).Where("code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique voucher code")
}

func sameCalendarDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
