package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/pizzeria-app/models"
	"github.com/yeremiapane/pizzeria-app/utils"
)

func TestPlaceOrderSuccess(t *testing.T) {
	db := setupTestDB(t)
	customer, product, size := seedCatalog(t, db, "25.00", 10)
	svc := NewOrderService(db)

	order, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: customer.ID,
		Lines: []OrderLine{
			{ProductID: ptr(product.ID), SizeID: ptr(size.ID), Quantity: 3},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.NotEmpty(t, order.Reference)
	assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("75.00")), "subtotal = %s", order.Subtotal)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("75.00")), "total = %s", order.Total)
	require.Len(t, order.Details, 1)
	assert.True(t, order.Details[0].UnitPrice.Equal(decimal.RequireFromString("25.00")))
	assert.True(t, order.Details[0].LineTotal.Equal(decimal.RequireFromString("75.00")))

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 7, reloaded.Stock)

	var movement models.StockMovement
	require.NoError(t, db.Where("item_type = ? AND item_id = ?", models.StockItemProduct, product.ID).First(&movement).Error)
	assert.Equal(t, models.MovementOutcome, movement.Type)
	assert.Equal(t, 3, movement.Quantity)
	assert.Equal(t, 7, movement.Balance)
	assert.Equal(t, "order:"+order.Reference, movement.Reason)
}

func TestPlaceOrderFreezesPrice(t *testing.T) {
	db := setupTestDB(t)
	customer, product, size := seedCatalog(t, db, "25.00", 10)
	svc := NewOrderService(db)

	order, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: customer.ID,
		Lines:      []OrderLine{{ProductID: ptr(product.ID), SizeID: ptr(size.ID), Quantity: 1}},
	})
	require.NoError(t, err)

	// Changing the catalog price afterwards must not touch the order.
	require.NoError(t, db.Model(&models.ProductPrice{}).
		Where("product_id = ?", product.ID).
		Update("price", decimal.RequireFromString("99.00")).Error)

	var detail models.OrderDetail
	require.NoError(t, db.Where("order_id = ?", order.ID).First(&detail).Error)
	assert.True(t, detail.UnitPrice.Equal(decimal.RequireFromString("25.00")))
}

func TestPlaceOrderInsufficientStockRollsBack(t *testing.T) {
	db := setupTestDB(t)
	customer, product, size := seedCatalog(t, db, "25.00", 2)
	svc := NewOrderService(db)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: customer.ID,
		Lines:      []OrderLine{{ProductID: ptr(product.ID), SizeID: ptr(size.ID), Quantity: 5}},
	})
	assert.ErrorIs(t, err, utils.ErrInsufficientStock)

	// No partial writes may be visible after the failure.
	var orders, details, movements int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderDetail{}).Count(&details)
	db.Model(&models.StockMovement{}).Count(&movements)
	assert.Zero(t, orders)
	assert.Zero(t, details)
	assert.Zero(t, movements)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 2, reloaded.Stock)
}

func TestPlaceOrderSecondLineSeesUpdatedBalance(t *testing.T) {
	db := setupTestDB(t)
	customer, product, size := seedCatalog(t, db, "10.00", 5)
	svc := NewOrderService(db)

	// 3 + 3 exceeds the 5 in stock even though each line alone fits.
	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: customer.ID,
		Lines: []OrderLine{
			{ProductID: ptr(product.ID), SizeID: ptr(size.ID), Quantity: 3},
			{ProductID: ptr(product.ID), SizeID: ptr(size.ID), Quantity: 3},
		},
	})
	assert.ErrorIs(t, err, utils.ErrInsufficientStock)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 5, reloaded.Stock)
}

func TestPlaceOrderValidation(t *testing.T) {
	db := setupTestDB(t)
	customer, product, size := seedCatalog(t, db, "25.00", 10)
	svc := NewOrderService(db)
	comboID := uint(1)

	tests := []struct {
		name  string
		input PlaceOrderInput
	}{
		{
			name:  "no lines",
			input: PlaceOrderInput{CustomerID: customer.ID},
		},
		{
			name: "zero quantity",
			input: PlaceOrderInput{
				CustomerID: customer.ID,
				Lines:      []OrderLine{{ProductID: ptr(product.ID), SizeID: ptr(size.ID), Quantity: 0}},
			},
		},
		{
			name: "product without size",
			input: PlaceOrderInput{
				CustomerID: customer.ID,
				Lines:      []OrderLine{{ProductID: ptr(product.ID), Quantity: 1}},
			},
		},
		{
			name: "combo and product together",
			input: PlaceOrderInput{
				CustomerID: customer.ID,
				Lines:      []OrderLine{{ProductID: ptr(product.ID), SizeID: ptr(size.ID), ComboID: &comboID, Quantity: 1}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.PlaceOrder(context.Background(), tt.input)
			require.Error(t, err)
			var appErr *utils.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, 400, appErr.Status)
		})
	}
}

func TestPlaceOrderUnknownCustomer(t *testing.T) {
	db := setupTestDB(t)
	_, product, size := seedCatalog(t, db, "25.00", 10)
	svc := NewOrderService(db)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: 999,
		Lines:      []OrderLine{{ProductID: ptr(product.ID), SizeID: ptr(size.ID), Quantity: 1}},
	})
	assert.ErrorIs(t, err, utils.ErrNotFoundOrInactive)
}

func TestPlaceOrderInactivePriceLine(t *testing.T) {
	db := setupTestDB(t)
	customer, product, size := seedCatalog(t, db, "25.00", 10)
	require.NoError(t, db.Model(&models.ProductPrice{}).
		Where("product_id = ?", product.ID).
		Update("active", false).Error)
	svc := NewOrderService(db)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: customer.ID,
		Lines:      []OrderLine{{ProductID: ptr(product.ID), SizeID: ptr(size.ID), Quantity: 1}},
	})
	assert.ErrorIs(t, err, utils.ErrNotFoundOrInactive)
}

func TestPlaceOrderCombo(t *testing.T) {
	db := setupTestDB(t)
	customer, product, size := seedCatalog(t, db, "25.00", 10)

	side := models.Product{Name: "Garlic Bread", Stock: 4, Active: true, ImageUrls: "[]"}
	require.NoError(t, db.Create(&side).Error)

	combo := models.Combo{
		Name:   "Pizza + Bread",
		Price:  decimal.RequireFromString("30.00"),
		Active: true,
		Items: []models.ComboItem{
			{ProductID: product.ID, SizeID: size.ID, Quantity: 1},
			{ProductID: side.ID, SizeID: size.ID, Quantity: 2},
		},
	}
	require.NoError(t, db.Create(&combo).Error)

	svc := NewOrderService(db)
	order, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: customer.ID,
		Lines:      []OrderLine{{ComboID: ptr(combo.ID), Quantity: 2}},
	})
	require.NoError(t, err)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("60.00")))

	// Each combo consumes 1 pizza and 2 breads, ordered twice.
	var pizza, bread models.Product
	require.NoError(t, db.First(&pizza, product.ID).Error)
	require.NoError(t, db.First(&bread, side.ID).Error)
	assert.Equal(t, 8, pizza.Stock)
	assert.Equal(t, 0, bread.Stock)
}

func TestPlaceOrderWithCoupon(t *testing.T) {
	db := setupTestDB(t)
	customer, product, size := seedCatalog(t, db, "25.00", 10)
	seedCoupon(t, db, models.Coupon{
		Code:         "SAVE10",
		DiscountType: models.DiscountPercentage,
		Value:        decimal.RequireFromString("10"),
		MinAmount:    decimal.RequireFromString("50.00"),
		MaxUses:      1,
		Active:       true,
	})

	svc := NewOrderService(db)
	order, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: customer.ID,
		Lines:      []OrderLine{{ProductID: ptr(product.ID), SizeID: ptr(size.ID), Quantity: 4}},
		CouponCode: "SAVE10",
	})
	require.NoError(t, err)

	assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, order.Discount.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, order.Total.Equal(decimal.RequireFromString("90.00")))
	require.NotNil(t, order.CouponID)

	var coupon models.Coupon
	require.NoError(t, db.Where("code = ?", "SAVE10").First(&coupon).Error)
	assert.Equal(t, 1, coupon.CurrentUses)

	var usage models.CouponUsage
	require.NoError(t, db.Where("order_id = ?", order.ID).First(&usage).Error)
	assert.Equal(t, customer.ID, usage.CustomerID)
	assert.True(t, usage.Discount.Equal(decimal.RequireFromString("10.00")))

	// The coupon is exhausted now; reusing it fails and rolls the second
	// order back entirely, stock included.
	_, err = svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: customer.ID,
		Lines:      []OrderLine{{ProductID: ptr(product.ID), SizeID: ptr(size.ID), Quantity: 4}},
		CouponCode: "SAVE10",
	})
	assert.ErrorIs(t, err, utils.ErrCouponExhausted)

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.EqualValues(t, 1, orders)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 6, reloaded.Stock)
}

func TestUpdateStatusFlow(t *testing.T) {
	db := setupTestDB(t)
	customer, product, size := seedCatalog(t, db, "25.00", 10)
	svc := NewOrderService(db)

	order, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: customer.ID,
		Lines:      []OrderLine{{ProductID: ptr(product.ID), SizeID: ptr(size.ID), Quantity: 2}},
	})
	require.NoError(t, err)

	// pending cannot jump straight to delivered
	_, err = svc.UpdateStatus(context.Background(), order.ID, models.OrderStatusDelivered)
	require.Error(t, err)

	updated, err := svc.UpdateStatus(context.Background(), order.ID, models.OrderStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusInProgress, updated.Status)

	updated, err = svc.UpdateStatus(context.Background(), order.ID, models.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, updated.Status)

	// delivered is terminal
	_, err = svc.UpdateStatus(context.Background(), order.ID, models.OrderStatusCancelled)
	require.Error(t, err)
}

func TestCancelRestoresStock(t *testing.T) {
	db := setupTestDB(t)
	customer, product, size := seedCatalog(t, db, "25.00", 10)
	svc := NewOrderService(db)

	order, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: customer.ID,
		Lines:      []OrderLine{{ProductID: ptr(product.ID), SizeID: ptr(size.ID), Quantity: 4}},
	})
	require.NoError(t, err)

	var afterOrder models.Product
	require.NoError(t, db.First(&afterOrder, product.ID).Error)
	require.Equal(t, 6, afterOrder.Stock)

	_, err = svc.UpdateStatus(context.Background(), order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)

	var restored models.Product
	require.NoError(t, db.First(&restored, product.ID).Error)
	assert.Equal(t, 10, restored.Stock)

	var income models.StockMovement
	require.NoError(t, db.Where("type = ? AND reason = ?", models.MovementIncome, "order_cancelled:"+order.Reference).First(&income).Error)
	assert.Equal(t, 4, income.Quantity)
	assert.Equal(t, 10, income.Balance)
}

func TestCancelRestoresComboComponentsAsReserved(t *testing.T) {
	db := setupTestDB(t)
	customer, product, size := seedCatalog(t, db, "25.00", 10)

	side := models.Product{Name: "Garlic Bread", Stock: 6, Active: true, ImageUrls: "[]"}
	require.NoError(t, db.Create(&side).Error)

	combo := models.Combo{
		Name:   "Pizza + Bread",
		Price:  decimal.RequireFromString("30.00"),
		Active: true,
		Items: []models.ComboItem{
			{ProductID: product.ID, SizeID: size.ID, Quantity: 1},
			{ProductID: side.ID, SizeID: size.ID, Quantity: 2},
		},
	}
	require.NoError(t, db.Create(&combo).Error)

	svc := NewOrderService(db)
	order, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: customer.ID,
		Lines:      []OrderLine{{ComboID: ptr(combo.ID), Quantity: 2}},
	})
	require.NoError(t, err)

	// Deleting the combo afterwards must not affect what cancellation
	// restores: it replays the order's own reservations.
	require.NoError(t, db.Where("combo_id = ?", combo.ID).Delete(&models.ComboItem{}).Error)
	require.NoError(t, db.Delete(&models.Combo{}, combo.ID).Error)

	_, err = svc.UpdateStatus(context.Background(), order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)

	var pizza, bread models.Product
	require.NoError(t, db.First(&pizza, product.ID).Error)
	require.NoError(t, db.First(&bread, side.ID).Error)
	assert.Equal(t, 10, pizza.Stock)
	assert.Equal(t, 6, bread.Stock)
}

func TestStatusWriteGuardedAgainstConcurrentUpdate(t *testing.T) {
	db := setupTestDB(t)
	customer, product, size := seedCatalog(t, db, "25.00", 10)
	svc := NewOrderService(db)

	order, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: customer.ID,
		Lines:      []OrderLine{{ProductID: ptr(product.ID), SizeID: ptr(size.ID), Quantity: 2}},
	})
	require.NoError(t, err)

	// A writer that lost the race sees the status it checked against gone
	// and must not overwrite the newer one.
	err = transitionOrderStatus(db, order.ID, models.OrderStatusInProgress, models.OrderStatusDelivered)
	assert.ErrorIs(t, err, utils.ErrOrderConflict)

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, reloaded.Status)
}
