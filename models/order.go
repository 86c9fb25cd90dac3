package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusInProgress = "in_progress"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

type Order struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	Reference  string          `gorm:"type:varchar(36);unique;not null" json:"reference"`
	CustomerID uint            `gorm:"not null;index" json:"customer_id"`
	Customer   Customer        `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Status     string          `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00" json:"subtotal"`
	Discount   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00" json:"discount"`
	Total      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00" json:"total"`
	CouponID   *uint           `gorm:"index" json:"coupon_id,omitempty"`
	Notes      string          `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updated_at"`

	Details []OrderDetail `gorm:"foreignKey:OrderID" json:"details"`
}

// CanTransitionTo enforces the order status flow: pending -> in_progress ->
// delivered, with cancellation allowed before delivery.
func (o *Order) CanTransitionTo(status string) bool {
	switch o.Status {
	case OrderStatusPending:
		return status == OrderStatusInProgress || status == OrderStatusCancelled
	case OrderStatusInProgress:
		return status == OrderStatusDelivered || status == OrderStatusCancelled
	default:
		return false
	}
}
