package models

import "time"

const (
	StockItemProduct    = "product"
	StockItemIngredient = "ingredient"

	MovementIncome  = "income"
	MovementOutcome = "outcome"
)

// StockMovement is an append-only ledger row. One row is written per stock
// mutation; rows are never updated or deleted.
type StockMovement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ItemType  string    `gorm:"type:varchar(20);not null;index:idx_stock_item" json:"item_type"`
	ItemID    uint      `gorm:"not null;index:idx_stock_item" json:"item_id"`
	Type      string    `gorm:"type:varchar(10);not null" json:"type"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Balance   int       `gorm:"not null" json:"balance"`
	Reason    string    `gorm:"type:varchar(100);not null" json:"reason"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
