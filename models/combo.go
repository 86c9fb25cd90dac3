package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Combo struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Active      bool            `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`

	Items []ComboItem `gorm:"foreignKey:ComboID" json:"items"`
}

// ComboItem maps a combo to the product+size units it is composed of.
// Ordering a combo consumes stock for every item in it.
type ComboItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ComboID   uint    `gorm:"not null;index" json:"combo_id"`
	ProductID uint    `gorm:"not null" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	SizeID    uint    `gorm:"not null" json:"size_id"`
	Quantity  int     `gorm:"not null;default:1" json:"quantity"`
}
