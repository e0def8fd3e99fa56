package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stylenest/stylenest-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyVoucherActivatesIt(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	r := userRouter(user)

	seedVoucher(t, db, user.ID, models.VoucherTypeCoupon, "20", "COUP20", time.Now())

	w := doJSON(t, r, http.MethodPost, "/api/vouchers/apply", map[string]string{"code": "COUP20"})
	require.Equal(t, http.StatusOK, w.Code)

	var active models.UserActiveVoucher
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&active).Error)
	assert.Equal(t, models.VoucherTypeCoupon, active.Type)
	assert.Equal(t, "COUP20", active.Code)
}

func TestApplySecondCouponReplacesFirst(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	r := userRouter(user)

	seedVoucher(t, db, user.ID, models.VoucherTypeCoupon, "10", "COUP10", time.Now())
	second := seedVoucher(t, db, user.ID, models.VoucherTypeCoupon, "30", "COUP30", time.Now())

	w := doJSON(t, r, http.MethodPost, "/api/vouchers/apply", map[string]string{"code": "COUP10"})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/vouchers/apply", map[string]string{"code": "COUP30"})
	require.Equal(t, http.StatusOK, w.Code)

	var active []models.UserActiveVoucher
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&active).Error)
	require.Len(t, active, 1, "same-category vouchers must replace, not stack")
	assert.Equal(t, second.ID, active[0].VoucherID)
}

func TestDeliverAndCouponCoexist(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	r := userRouter(user)

	seedVoucher(t, db, user.ID, models.VoucherTypeDeliver, "", "SHIPFR", time.Now())
	seedVoucher(t, db, user.ID, models.VoucherTypeCoupon, "20", "COUP20", time.Now())

	w := doJSON(t, r, http.MethodPost, "/api/vouchers/apply", map[string]string{"code": "SHIPFR"})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/vouchers/apply", map[string]string{"code": "COUP20"})
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.UserActiveVoucher{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestApplyExpiredVoucherRejected(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	r := userRouter(user)

	seedVoucher(t, db, user.ID, models.VoucherTypeCoupon, "20", "OLDCPN", time.Now().AddDate(0, 0, -31))

	w := doJSON(t, r, http.MethodPost, "/api/vouchers/apply", map[string]string{"code": "OLDCPN"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.UserActiveVoucher{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestApplyRedeemedVoucherRejected(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	r := userRouter(user)

	voucher := seedVoucher(t, db, user.ID, models.VoucherTypeCoupon, "20", "USEDUP", time.Now())
	require.NoError(t, db.Model(&voucher).Update("status", models.VoucherStatusRedeemed).Error)

	w := doJSON(t, r, http.MethodPost, "/api/vouchers/apply", map[string]string{"code": "USEDUP"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApplyAnotherUsersVoucherRejected(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	other := seedUser(t, db)
	r := userRouter(user)

	seedVoucher(t, db, other.ID, models.VoucherTypeCoupon, "20", "NOTMIN", time.Now())

	w := doJSON(t, r, http.MethodPost, "/api/vouchers/apply", map[string]string{"code": "NOTMIN"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemoveVoucherClearsActiveRow(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	r := userRouter(user)

	seedVoucher(t, db, user.ID, models.VoucherTypeCoupon, "20", "COUP20", time.Now())

	w := doJSON(t, r, http.MethodPost, "/api/vouchers/apply", map[string]string{"code": "COUP20"})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/vouchers/remove", map[string]string{"code": "COUP20"})
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.UserActiveVoucher{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 0, count)

	// The voucher itself stays redeemable
	var voucher models.Voucher
	require.NoError(t, db.Where("code = ?", "COUP20").First(&voucher).Error)
	assert.Equal(t, models.VoucherStatusActive, voucher.Status)
}

func TestListVouchersOmitsRedeemed(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	r := userRouter(user)

	seedVoucher(t, db, user.ID, models.VoucherTypeCoupon, "10", "LIVE10", time.Now())
	used := seedVoucher(t, db, user.ID, models.VoucherTypeCoupon, "20", "DEAD20", time.Now())
	require.NoError(t, db.Model(&used).Update("status", models.VoucherStatusRedeemed).Error)

	w := doJSON(t, r, http.MethodGet, "/api/vouchers", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	vouchers, ok := data["availableVouchers"].([]interface{})
	require.True(t, ok)
	require.Len(t, vouchers, 1)
	first := vouchers[0].(map[string]interface{})
	assert.Equal(t, "LIVE10", first["code"])
}
