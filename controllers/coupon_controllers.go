package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yeremiapane/pizzeria-app/models"
	"github.com/yeremiapane/pizzeria-app/utils"
)

type CouponController struct {
	DB *gorm.DB
}

func NewCouponController(db *gorm.DB) *CouponController {
	return &CouponController{DB: db}
}

func (cc *CouponController) GetAllCoupons(c *gin.Context) {
	var coupons []models.Coupon
	if err := cc.DB.Find(&coupons).Error; err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of coupons", coupons)
}

func (cc *CouponController) CreateCoupon(c *gin.Context) {
	var req struct {
		Code         string          `json:"code" binding:"required"`
		DiscountType string          `json:"discount_type" binding:"required"`
		Value        decimal.Decimal `json:"value" binding:"required"`
		MinAmount    decimal.Decimal `json:"min_amount"`
		StartsAt     time.Time       `json:"starts_at" binding:"required"`
		EndsAt       time.Time       `json:"ends_at" binding:"required"`
		MaxUses      int             `json:"max_uses"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.DiscountType != models.DiscountPercentage && req.DiscountType != models.DiscountFixed {
		utils.HandleError(c, utils.ValidationError("discount_type must be percentage or fixed"))
		return
	}
	if req.Value.IsNegative() || req.Value.IsZero() {
		utils.HandleError(c, utils.ValidationError("value must be positive"))
		return
	}
	if req.DiscountType == models.DiscountPercentage && req.Value.GreaterThan(decimal.NewFromInt(100)) {
		utils.HandleError(c, utils.ValidationError("percentage value cannot exceed 100"))
		return
	}
	if !req.EndsAt.After(req.StartsAt) {
		utils.HandleError(c, utils.ValidationError("ends_at must be after starts_at"))
		return
	}
	if req.MaxUses < 0 {
		utils.HandleError(c, utils.ValidationError("max_uses cannot be negative"))
		return
	}

	coupon := models.Coupon{
		Code:         strings.ToUpper(strings.TrimSpace(req.Code)),
		DiscountType: req.DiscountType,
		Value:        req.Value,
		MinAmount:    req.MinAmount,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
		MaxUses:      req.MaxUses,
		Active:       true,
	}
	if err := cc.DB.Create(&coupon).Error; err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Coupon created", coupon)
}

func (cc *CouponController) GetCouponByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("coupon_id"))

	var coupon models.Coupon
	if err := cc.DB.First(&coupon, id).Error; err != nil {
		utils.HandleError(c, utils.ErrNotFoundOrInactive)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Coupon detail", coupon)
}

func (cc *CouponController) UpdateCoupon(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("coupon_id"))

	var coupon models.Coupon
	if err := cc.DB.First(&coupon, id).Error; err != nil {
		utils.HandleError(c, utils.ErrNotFoundOrInactive)
		return
	}

	var req struct {
		MinAmount *decimal.Decimal `json:"min_amount"`
		EndsAt    *time.Time       `json:"ends_at"`
		MaxUses   *int             `json:"max_uses"`
		Active    *bool            `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	// Code, type and value are immutable once created; existing usages
	// refer to them.
	if req.MinAmount != nil {
		coupon.MinAmount = *req.MinAmount
	}
	if req.EndsAt != nil {
		coupon.EndsAt = *req.EndsAt
	}
	if req.MaxUses != nil {
		coupon.MaxUses = *req.MaxUses
	}
	if req.Active != nil {
		coupon.Active = *req.Active
	}

	if err := cc.DB.Save(&coupon).Error; err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Coupon updated", coupon)
}

func (cc *CouponController) DeleteCoupon(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("coupon_id"))

	if err := cc.DB.Delete(&models.Coupon{}, id).Error; err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Coupon deleted", gin.H{"coupon_id": id})
}

// GetCouponUsages lists redemptions for one coupon.
func (cc *CouponController) GetCouponUsages(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("coupon_id"))

	var usages []models.CouponUsage
	if err := cc.DB.Where("coupon_id = ?", id).Order("created_at desc").Find(&usages).Error; err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Coupon usages", usages)
}
