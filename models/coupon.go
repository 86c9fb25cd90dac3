package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

type Coupon struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Code         string          `gorm:"type:varchar(50);unique;not null" json:"code"`
	DiscountType string          `gorm:"type:varchar(20);not null" json:"discount_type"`
	Value        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"value"`
	MinAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00" json:"min_amount"`
	StartsAt     time.Time       `gorm:"not null" json:"starts_at"`
	EndsAt       time.Time       `gorm:"not null" json:"ends_at"`
	MaxUses      int             `gorm:"not null;default:0" json:"max_uses"`
	CurrentUses  int             `gorm:"not null;default:0" json:"current_uses"`
	Active       bool            `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updated_at"`
}
