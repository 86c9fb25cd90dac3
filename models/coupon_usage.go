package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CouponUsage is written once per redemption, in the same transaction as
// the order it discounted. Append-only.
type CouponUsage struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	CouponID   uint            `gorm:"not null;index" json:"coupon_id"`
	Coupon     Coupon          `gorm:"foreignKey:CouponID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	OrderID    uint            `gorm:"not null;index" json:"order_id"`
	CustomerID uint            `gorm:"not null" json:"customer_id"`
	Discount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"discount"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
}
