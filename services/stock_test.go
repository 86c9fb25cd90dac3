package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yeremiapane/pizzeria-app/models"
	"github.com/yeremiapane/pizzeria-app/utils"
)

func TestReserveStockSequence(t *testing.T) {
	db := setupTestDB(t)
	_, product, _ := seedCatalog(t, db, "10.00", 10)

	grants := []int{3, 2, 4}
	for _, qty := range grants {
		err := db.Transaction(func(tx *gorm.DB) error {
			return ReserveStock(tx, models.StockItemProduct, product.ID, qty, "order")
		})
		require.NoError(t, err)
	}

	// Final balance equals initial minus the sum of granted quantities.
	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 1, reloaded.Stock)

	// One more that does not fit is rejected without mutation.
	err := db.Transaction(func(tx *gorm.DB) error {
		return ReserveStock(tx, models.StockItemProduct, product.ID, 2, "order")
	})
	assert.ErrorIs(t, err, utils.ErrInsufficientStock)

	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 1, reloaded.Stock)

	var movements []models.StockMovement
	require.NoError(t, db.Order("id asc").Find(&movements).Error)
	require.Len(t, movements, 3)
	assert.Equal(t, 7, movements[0].Balance)
	assert.Equal(t, 5, movements[1].Balance)
	assert.Equal(t, 1, movements[2].Balance)
}

func TestReserveStockUnknownItem(t *testing.T) {
	db := setupTestDB(t)

	err := db.Transaction(func(tx *gorm.DB) error {
		return ReserveStock(tx, models.StockItemProduct, 42, 1, "order")
	})
	assert.ErrorIs(t, err, utils.ErrNotFoundOrInactive)

	err = db.Transaction(func(tx *gorm.DB) error {
		return ReserveStock(tx, "warehouse", 1, 1, "order")
	})
	require.Error(t, err)
}

func TestRestockIngredient(t *testing.T) {
	db := setupTestDB(t)

	ingredient := models.Ingredient{Name: "Mozzarella", Unit: "kg", Stock: 3, Active: true}
	require.NoError(t, db.Create(&ingredient).Error)

	err := db.Transaction(func(tx *gorm.DB) error {
		return Restock(tx, models.StockItemIngredient, ingredient.ID, 7, "supplier_receipt")
	})
	require.NoError(t, err)

	var reloaded models.Ingredient
	require.NoError(t, db.First(&reloaded, ingredient.ID).Error)
	assert.Equal(t, 10, reloaded.Stock)

	var movement models.StockMovement
	require.NoError(t, db.Where("item_type = ?", models.StockItemIngredient).First(&movement).Error)
	assert.Equal(t, models.MovementIncome, movement.Type)
	assert.Equal(t, 10, movement.Balance)
	assert.Equal(t, "supplier_receipt", movement.Reason)
}

func TestReserveStockRejectsNonPositiveQuantity(t *testing.T) {
	db := setupTestDB(t)
	_, product, _ := seedCatalog(t, db, "10.00", 10)

	err := db.Transaction(func(tx *gorm.DB) error {
		return ReserveStock(tx, models.StockItemProduct, product.ID, 0, "order")
	})
	require.Error(t, err)

	err = db.Transaction(func(tx *gorm.DB) error {
		return Restock(tx, models.StockItemProduct, product.ID, -5, "oops")
	})
	require.Error(t, err)
}
