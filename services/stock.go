package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yeremiapane/pizzeria-app/models"
	"github.com/yeremiapane/pizzeria-app/utils"
)

// ReserveStock decrements available stock for one item inside the caller's
// transaction. The stock row is read under a row lock so two concurrent
// orders cannot both observe a stale balance and both succeed. A request
// exceeding the available quantity fails before any mutation and one
// outcome movement is appended per successful decrement.
func ReserveStock(tx *gorm.DB, itemType string, itemID uint, quantity int, reason string) error {
	if quantity < 1 {
		return utils.ValidationError("quantity must be at least 1")
	}

	available, err := lockStock(tx, itemType, itemID)
	if err != nil {
		return err
	}
	if quantity > available {
		return utils.ErrInsufficientStock
	}

	balance := available - quantity
	if err := writeStock(tx, itemType, itemID, balance); err != nil {
		return err
	}

	return tx.Create(&models.StockMovement{
		ItemType: itemType,
		ItemID:   itemID,
		Type:     models.MovementOutcome,
		Quantity: quantity,
		Balance:  balance,
		Reason:   reason,
	}).Error
}

// Restock increments available stock (supplier receipts, cancellations).
// It fails only when the item reference is invalid.
func Restock(tx *gorm.DB, itemType string, itemID uint, quantity int, reason string) error {
	if quantity < 1 {
		return utils.ValidationError("quantity must be at least 1")
	}

	available, err := lockStock(tx, itemType, itemID)
	if err != nil {
		return err
	}

	balance := available + quantity
	if err := writeStock(tx, itemType, itemID, balance); err != nil {
		return err
	}

	return tx.Create(&models.StockMovement{
		ItemType: itemType,
		ItemID:   itemID,
		Type:     models.MovementIncome,
		Quantity: quantity,
		Balance:  balance,
		Reason:   reason,
	}).Error
}

// withRowLock adds FOR UPDATE on backends that support it. SQLite (used in
// tests) serializes writers on its own and rejects the clause.
func withRowLock(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "mysql" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func lockStock(tx *gorm.DB, itemType string, itemID uint) (int, error) {
	locked := withRowLock(tx)

	switch itemType {
	case models.StockItemProduct:
		var product models.Product
		if err := locked.First(&product, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, utils.ErrNotFoundOrInactive
			}
			return 0, err
		}
		return product.Stock, nil
	case models.StockItemIngredient:
		var ingredient models.Ingredient
		if err := locked.First(&ingredient, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, utils.ErrNotFoundOrInactive
			}
			return 0, err
		}
		return ingredient.Stock, nil
	default:
		return 0, utils.ValidationError("unknown stock item type: %s", itemType)
	}
}

func writeStock(tx *gorm.DB, itemType string, itemID uint, balance int) error {
	switch itemType {
	case models.StockItemProduct:
		return tx.Model(&models.Product{}).Where("id = ?", itemID).Update("stock", balance).Error
	case models.StockItemIngredient:
		return tx.Model(&models.Ingredient{}).Where("id = ?", itemID).Update("stock", balance).Error
	default:
		return utils.ValidationError("unknown stock item type: %s", itemType)
	}
}
