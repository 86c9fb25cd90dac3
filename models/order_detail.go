package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderDetail is one line of an order. Exactly one of product+size or combo
// is set. UnitPrice is frozen at order creation and never recalculated.
type OrderDetail struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	Order     Order           `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ProductID *uint           `json:"product_id,omitempty"`
	SizeID    *uint           `json:"size_id,omitempty"`
	ComboID   *uint           `json:"combo_id,omitempty"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	LineTotal decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"line_total"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
}
