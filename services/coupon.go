package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yeremiapane/pizzeria-app/models"
	"github.com/yeremiapane/pizzeria-app/utils"
)

var hundred = decimal.NewFromInt(100)

// CouponResult carries the applied coupon and the discount it granted.
type CouponResult struct {
	CouponID uint
	Discount decimal.Decimal
}

// ApplyCoupon validates a coupon against the order amount, computes the
// discount, records a usage row and bumps the usage counter. Everything runs
// on the caller's transaction so redemption commits or rolls back with the
// order.
func ApplyCoupon(tx *gorm.DB, code string, orderAmount decimal.Decimal, customerID, orderID uint) (*CouponResult, error) {
	// Codes are stored uppercase; match whatever casing the client sent.
	code = strings.ToUpper(strings.TrimSpace(code))

	var coupon models.Coupon
	err := withRowLock(tx).Where("code = ?", code).First(&coupon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrCouponNotFound
		}
		return nil, err
	}

	now := time.Now()
	if !coupon.Active || now.Before(coupon.StartsAt) || now.After(coupon.EndsAt) {
		return nil, utils.ErrCouponExpiredOrInactive
	}
	if coupon.MaxUses > 0 && coupon.CurrentUses >= coupon.MaxUses {
		return nil, utils.ErrCouponExhausted
	}
	if orderAmount.LessThan(coupon.MinAmount) {
		return nil, utils.ErrBelowMinimumAmount
	}

	discount := computeDiscount(&coupon, orderAmount)

	// Guarded increment: loses to a concurrent redemption that exhausted
	// the coupon between our read and this update.
	res := tx.Model(&models.Coupon{}).
		Where("id = ? AND (max_uses = 0 OR current_uses < max_uses)", coupon.ID).
		Update("current_uses", gorm.Expr("current_uses + 1"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, utils.ErrCouponExhausted
	}

	usage := models.CouponUsage{
		CouponID:   coupon.ID,
		OrderID:    orderID,
		CustomerID: customerID,
		Discount:   discount,
	}
	if err := tx.Create(&usage).Error; err != nil {
		return nil, err
	}

	return &CouponResult{CouponID: coupon.ID, Discount: discount}, nil
}

// computeDiscount caps the discount at the order amount so a total can
// never go negative.
func computeDiscount(coupon *models.Coupon, orderAmount decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch coupon.DiscountType {
	case models.DiscountPercentage:
		discount = orderAmount.Mul(coupon.Value).Div(hundred).Round(2)
	case models.DiscountFixed:
		discount = coupon.Value
	default:
		return decimal.Zero
	}

	if discount.GreaterThan(orderAmount) {
		discount = orderAmount
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	return discount
}
