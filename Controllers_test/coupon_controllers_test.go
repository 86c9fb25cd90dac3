package Controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yeremiapane/pizzeria-app/controllers"
	"github.com/yeremiapane/pizzeria-app/models"
	"github.com/yeremiapane/pizzeria-app/utils"
)

func setupCouponRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	couponCtrl := controllers.NewCouponController(db)
	r.POST("/coupons", couponCtrl.CreateCoupon)
	r.GET("/coupons", couponCtrl.GetAllCoupons)
	return r
}

func TestCreateCouponHTTP(t *testing.T) {
	db := newTestDB(t)
	r := setupCouponRouter(db)

	now := time.Now()
	w := postJSON(t, r, "/coupons", gin.H{
		"code":          "save10",
		"discount_type": models.DiscountPercentage,
		"value":         "10",
		"min_amount":    "50",
		"starts_at":     now.Format(time.RFC3339),
		"ends_at":       now.Add(24 * time.Hour).Format(time.RFC3339),
		"max_uses":      100,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var coupon models.Coupon
	require.NoError(t, db.Where("code = ?", "SAVE10").First(&coupon).Error)
	assert.True(t, coupon.Active)
	assert.Equal(t, 100, coupon.MaxUses)
	assert.Zero(t, coupon.CurrentUses)
}

func TestCreateCouponValidationHTTP(t *testing.T) {
	db := newTestDB(t)
	r := setupCouponRouter(db)

	now := time.Now()
	base := func() gin.H {
		return gin.H{
			"code":          "BOGUS",
			"discount_type": models.DiscountPercentage,
			"value":         "10",
			"starts_at":     now.Format(time.RFC3339),
			"ends_at":       now.Add(time.Hour).Format(time.RFC3339),
		}
	}

	tests := []struct {
		name    string
		mutate  func(gin.H)
		message string
	}{
		{
			name:    "unknown discount type",
			mutate:  func(p gin.H) { p["discount_type"] = "bogo" },
			message: "discount_type must be percentage or fixed",
		},
		{
			name:    "percentage above 100",
			mutate:  func(p gin.H) { p["value"] = "120" },
			message: "percentage value cannot exceed 100",
		},
		{
			name:    "window ends before it starts",
			mutate:  func(p gin.H) { p["ends_at"] = now.Add(-time.Hour).Format(time.RFC3339) },
			message: "ends_at must be after starts_at",
		},
		{
			name:    "negative max uses",
			mutate:  func(p gin.H) { p["max_uses"] = -1 },
			message: "max_uses cannot be negative",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			payload := base()
			tc.mutate(payload)

			w := postJSON(t, r, "/coupons", payload)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

			var resp utils.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.message, resp.Error)
		})
	}
}

func TestRestockProductHTTP(t *testing.T) {
	db := newTestDB(t)
	_, product, _ := seedOrderFixtures(t, db, "25.00", 5)

	r := gin.New()
	stockCtrl := controllers.NewStockController(db)
	r.POST("/stock/products/:product_id/restock", stockCtrl.RestockProduct)
	r.GET("/stock/movements", stockCtrl.GetMovements)

	w := postJSON(t, r, "/stock/products/"+strconv.Itoa(int(product.ID))+"/restock", gin.H{
		"quantity": 12,
		"reason":   "supplier_receipt",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 17, reloaded.Stock)

	req, _ := http.NewRequest(http.MethodGet, "/stock/movements?item_type=product", nil)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	require.Equal(t, http.StatusOK, w2.Code)

	var resp struct {
		Data []models.StockMovement `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, models.MovementIncome, resp.Data[0].Type)
	assert.Equal(t, 12, resp.Data[0].Quantity)
	assert.Equal(t, 17, resp.Data[0].Balance)
}
