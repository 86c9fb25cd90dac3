package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/pizzeria-app/models"
	"github.com/yeremiapane/pizzeria-app/services"
	"github.com/yeremiapane/pizzeria-app/utils"
)

type StockController struct {
	DB *gorm.DB
}

func NewStockController(db *gorm.DB) *StockController {
	return &StockController{DB: db}
}

// GetMovements lists the stock ledger, newest first.
// Filters: ?item_type=product&item_id=3
func (sc *StockController) GetMovements(c *gin.Context) {
	query := sc.DB.Order("created_at desc").Limit(200)

	if itemType := c.Query("item_type"); itemType != "" {
		if itemType != models.StockItemProduct && itemType != models.StockItemIngredient {
			utils.HandleError(c, utils.ValidationError("item_type must be product or ingredient"))
			return
		}
		query = query.Where("item_type = ?", itemType)
	}
	if itemIDStr := c.Query("item_id"); itemIDStr != "" {
		itemID, err := strconv.Atoi(itemIDStr)
		if err != nil {
			utils.HandleError(c, utils.ValidationError("invalid item_id"))
			return
		}
		query = query.Where("item_id = ?", itemID)
	}

	var movements []models.StockMovement
	if err := query.Find(&movements).Error; err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Stock movements", movements)
}

// RestockProduct records inbound product stock.
// POST /stock/products/:product_id/restock {"quantity": 10, "reason": "supplier"}
func (sc *StockController) RestockProduct(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("product_id"))

	var req struct {
		Quantity int    `json:"quantity" binding:"required"`
		Reason   string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reason := req.Reason
	if reason == "" {
		reason = "supplier_receipt"
	}

	err := sc.DB.Transaction(func(tx *gorm.DB) error {
		return services.Restock(tx, models.StockItemProduct, uint(id), req.Quantity, reason)
	})
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	var product models.Product
	if err := sc.DB.First(&product, id).Error; err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product restocked", product)
}
