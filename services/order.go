package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yeremiapane/pizzeria-app/models"
	"github.com/yeremiapane/pizzeria-app/utils"
)

// OrderLine is one requested catalog line: product+size or combo.
type OrderLine struct {
	ProductID *uint `json:"product_id"`
	SizeID    *uint `json:"size_id"`
	ComboID   *uint `json:"combo_id"`
	Quantity  int   `json:"quantity"`
}

type PlaceOrderInput struct {
	CustomerID uint        `json:"customer_id"`
	Lines      []OrderLine `json:"lines"`
	CouponCode string      `json:"coupon_code"`
	Notes      string      `json:"notes"`
}

type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

// PlaceOrder creates an order and everything that hangs off it inside one
// transaction: detail lines with frozen prices, stock decrements with their
// movement rows, and an optional coupon redemption. Any failure rolls the
// whole thing back; an order is never partially created.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error) {
	if len(in.Lines) == 0 {
		return nil, utils.ValidationError("at least one order line is required")
	}
	for i, line := range in.Lines {
		if line.Quantity < 1 {
			return nil, utils.ValidationError("line %d: quantity must be at least 1", i+1)
		}
		ref := LineRef{ProductID: line.ProductID, SizeID: line.SizeID, ComboID: line.ComboID}
		if !ref.Valid() {
			return nil, utils.ValidationError("line %d: set either product_id and size_id, or combo_id", i+1)
		}
	}

	var order models.Order
	reference := uuid.NewString()

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.Where("id = ? AND active = ?", in.CustomerID, true).First(&customer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrNotFoundOrInactive
			}
			return err
		}

		subtotal := decimal.Zero
		details := make([]models.OrderDetail, 0, len(in.Lines))

		// Lines run sequentially on purpose: a later line may hit the same
		// stock item as an earlier one and must see the updated balance.
		for _, line := range in.Lines {
			ref := LineRef{ProductID: line.ProductID, SizeID: line.SizeID, ComboID: line.ComboID}

			price, err := ResolvePrice(tx, ref)
			if err != nil {
				return err
			}

			if err := reserveLineStock(tx, ref, line.Quantity, reference); err != nil {
				return err
			}

			lineTotal := price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			subtotal = subtotal.Add(lineTotal)
			details = append(details, models.OrderDetail{
				ProductID: line.ProductID,
				SizeID:    line.SizeID,
				ComboID:   line.ComboID,
				Quantity:  line.Quantity,
				UnitPrice: price,
				LineTotal: lineTotal,
			})
		}

		order = models.Order{
			Reference:  reference,
			CustomerID: in.CustomerID,
			Status:     models.OrderStatusPending,
			Subtotal:   subtotal,
			Discount:   decimal.Zero,
			Total:      subtotal,
			Notes:      in.Notes,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if in.CouponCode != "" {
			result, err := ApplyCoupon(tx, in.CouponCode, subtotal, in.CustomerID, order.ID)
			if err != nil {
				return err
			}
			order.CouponID = &result.CouponID
			order.Discount = result.Discount
			order.Total = subtotal.Sub(result.Discount)
			if order.Total.IsNegative() {
				order.Total = decimal.Zero
			}
			if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
				"coupon_id": result.CouponID,
				"discount":  result.Discount,
				"total":     order.Total,
			}).Error; err != nil {
				return err
			}
		}

		for i := range details {
			details[i].OrderID = order.ID
			if err := tx.Create(&details[i]).Error; err != nil {
				return err
			}
		}
		order.Details = details

		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Order %s placed: customer=%d lines=%d total=%s",
		order.Reference, order.CustomerID, len(order.Details), order.Total.StringFixed(2))

	return &order, nil
}

// UpdateStatus moves an order through its status flow. Cancelling restores
// every stock reservation the order made, in the same transaction.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, status string) (*models.Order, error) {
	var order models.Order

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := withRowLock(tx).Preload("Details").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrNotFoundOrInactive
			}
			return err
		}

		if !order.CanTransitionTo(status) {
			return utils.ValidationError("cannot move order from %s to %s", order.Status, status)
		}

		if status == models.OrderStatusCancelled {
			if err := restoreOrderStock(tx, order.Reference); err != nil {
				return err
			}
		}

		if err := transitionOrderStatus(tx, order.ID, order.Status, status); err != nil {
			return err
		}
		order.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// transitionOrderStatus writes the new status only if the order still holds
// the status the transition was checked against. A concurrent update that
// got there first makes this a no-op, reported as a conflict.
func transitionOrderStatus(tx *gorm.DB, orderID uint, from, to string) error {
	res := tx.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrOrderConflict
	}
	return nil
}

// reserveLineStock decrements the stock behind one catalog line. A product
// line consumes the product itself; a combo consumes every component,
// sequentially, scaled by the ordered quantity. Every movement is tagged
// with the order's reference so cancellation can replay it.
func reserveLineStock(tx *gorm.DB, ref LineRef, quantity int, reference string) error {
	reason := "order:" + reference
	if !ref.IsCombo() {
		return ReserveStock(tx, models.StockItemProduct, *ref.ProductID, quantity, reason)
	}

	items, err := comboItems(tx, *ref.ComboID)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := ReserveStock(tx, models.StockItemProduct, item.ProductID, item.Quantity*quantity, reason); err != nil {
			return err
		}
	}
	return nil
}

// restoreOrderStock reverses the order's own outcome movements instead of
// re-resolving its lines, so a combo edited or deleted after ordering does
// not change what gets restored.
func restoreOrderStock(tx *gorm.DB, reference string) error {
	var movements []models.StockMovement
	err := tx.Where("reason = ? AND type = ?", "order:"+reference, models.MovementOutcome).
		Find(&movements).Error
	if err != nil {
		return err
	}

	for _, m := range movements {
		if err := Restock(tx, m.ItemType, m.ItemID, m.Quantity, "order_cancelled:"+reference); err != nil {
			return err
		}
	}
	return nil
}

func comboItems(tx *gorm.DB, comboID uint) ([]models.ComboItem, error) {
	var items []models.ComboItem
	if err := tx.Where("combo_id = ?", comboID).Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, utils.ErrNotFoundOrInactive
	}
	return items, nil
}
