package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductPrice is one sellable catalog line: a product at a given size.
// Only active lines are considered by price resolution.
type ProductPrice struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ProductID uint            `gorm:"not null;uniqueIndex:idx_product_size" json:"product_id"`
	Product   Product         `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	SizeID    uint            `gorm:"not null;uniqueIndex:idx_product_size" json:"size_id"`
	Size      Size            `gorm:"foreignKey:SizeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"size"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Active    bool            `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
}
