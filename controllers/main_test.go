package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stylenest/stylenest-api/config"
	"github.com/stylenest/stylenest-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestDB swaps the global DB for a throwaway SQLite database
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err)
	require.NoError(t, config.MigrateModels(db))

	prev := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = prev })
	return db
}

func seedUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{
		Username: fmt.Sprintf("shopper-%d", time.Now().UnixNano()),
		Email:    fmt.Sprintf("shopper-%d@example.com", time.Now().UnixNano()),
		Password: "not-a-real-hash",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// seedProduct creates a product with one color variant and one size cell
func seedProduct(t *testing.T, db *gorm.DB, price float64, color, size string, stock int) models.Product {
	t.Helper()
	product := models.Product{
		Name:     "Test Sneaker",
		Price:    price,
		IsActive: true,
		Variants: []models.Variant{
			{
				Color: color,
				SizeOptions: []models.SizeOption{
					{Size: size, Stock: stock},
				},
			},
		},
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedAddress(t *testing.T, db *gorm.DB, userID uint) models.Address {
	t.Helper()
	address := models.Address{
		UserID:     userID,
		Line1:      "1 Test Street",
		City:       "Testville",
		Country:    "US",
		PostalCode: "12345",
	}
	require.NoError(t, db.Create(&address).Error)
	return address
}

func seedCartLine(t *testing.T, db *gorm.DB, userID, productID uint, qty int, color, size string, subTotal float64) models.CartItem {
	t.Helper()
	line := models.CartItem{
		UserID:        userID,
		ProductID:     productID,
		Quantity:      qty,
		SelectedColor: color,
		SelectedSize:  size,
		SubTotal:      subTotal,
	}
	require.NoError(t, db.Create(&line).Error)
	return line
}

func seedVoucher(t *testing.T, db *gorm.DB, userID uint, typ, discount, code string, receivedAt time.Time) models.Voucher {
	t.Helper()
	voucher := models.Voucher{
		UserID:        userID,
		Name:          "Test Voucher",
		Discount:      discount,
		Code:          code,
		DaysRemaining: 30,
		Type:          typ,
		Status:        models.VoucherStatusActive,
		ReceivedAt:    receivedAt,
	}
	require.NoError(t, db.Create(&voucher).Error)
	return voucher
}

// sizeOptionOf resolves the stock cell for a (product, color, size)
func sizeOptionOf(t *testing.T, db *gorm.DB, productID uint, color, size string) models.SizeOption {
	t.Helper()
	var variant models.Variant
	require.NoError(t, db.Where("product_id = ? AND color = ?", productID, color).First(&variant).Error)
	var option models.SizeOption
	require.NoError(t, db.Where("variant_id = ? AND size = ?", variant.ID, size).First(&option).Error)
	return option
}

// userRouter builds a router with the customer routes wired to a fixed
// authenticated user, skipping real token handling.
func userRouter(user models.User) *gin.Engine {
	r := gin.New()
	api := r.Group("/api", func(c *gin.Context) {
		c.Set("user", user)
	})

	api.POST("/cart/:userId/add", AddToCart)
	api.GET("/cart/:userId", GetCart)
	api.PUT("/cart/:userId/items/:itemId", UpdateCartItem)
	api.DELETE("/cart/:userId/items/:itemId", RemoveCartItem)
	api.DELETE("/cart/:userId", ClearCart)

	api.GET("/user-rewards", GetUserRewards)
	api.POST("/user-rewards/check-in", CheckIn)
	api.POST("/user-rewards/spin", Spin)

	api.GET("/vouchers", ListVouchers)
	api.POST("/vouchers/apply", ApplyVoucher)
	api.POST("/vouchers/remove", RemoveVoucher)

	api.POST("/orders", PlaceOrder)
	api.GET("/orders", ListOrders)
	api.GET("/orders/:id", GetOrderDetails)
	api.PATCH("/orders/:id/status", UpdateOrderStatus)

	api.GET("/wishlist", GetWishlist)
	api.POST("/wishlist", AddToWishlist)
	api.DELETE("/wishlist/:productId", RemoveFromWishlist)

	return r
}

// adminRouter wires the back-office routes without token handling
func adminRouter() *gin.Engine {
	r := gin.New()
	api := r.Group("/api")
	api.PATCH("/products/:id/update-stock", AdminUpdateStock)
	api.GET("/admin/orders", AdminListOrders)
	api.PATCH("/admin/orders/:id/status", AdminUpdateOrderStatus)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Status  string                 `json:"status"`
		Message string                 `json:"message"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Data
}
