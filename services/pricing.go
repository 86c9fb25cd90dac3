package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yeremiapane/pizzeria-app/models"
	"github.com/yeremiapane/pizzeria-app/utils"
)

// LineRef identifies one sellable catalog line: either a product at a size
// or a combo.
type LineRef struct {
	ProductID *uint
	SizeID    *uint
	ComboID   *uint
}

func (r LineRef) IsCombo() bool {
	return r.ComboID != nil
}

// Valid reports whether exactly one of product+size or combo is set.
func (r LineRef) Valid() bool {
	if r.ComboID != nil {
		return r.ProductID == nil && r.SizeID == nil
	}
	return r.ProductID != nil && r.SizeID != nil
}

// ResolvePrice returns the current active unit price for ref. It runs on
// the caller's transaction so it observes the same snapshot as the stock
// check that follows. Missing or inactive lines are a hard error; there is
// no fallback price.
func ResolvePrice(tx *gorm.DB, ref LineRef) (decimal.Decimal, error) {
	if ref.IsCombo() {
		var combo models.Combo
		err := tx.Where("id = ? AND active = ?", *ref.ComboID, true).First(&combo).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return decimal.Zero, utils.ErrNotFoundOrInactive
			}
			return decimal.Zero, err
		}
		return combo.Price, nil
	}

	var line models.ProductPrice
	err := tx.Joins("JOIN products ON products.id = product_prices.product_id").
		Where("product_prices.product_id = ? AND product_prices.size_id = ? AND product_prices.active = ? AND products.active = ?",
			*ref.ProductID, *ref.SizeID, true, true).
		First(&line).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, utils.ErrNotFoundOrInactive
		}
		return decimal.Zero, err
	}
	return line.Price, nil
}
