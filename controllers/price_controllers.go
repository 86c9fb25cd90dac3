package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yeremiapane/pizzeria-app/models"
	"github.com/yeremiapane/pizzeria-app/utils"
)

type PriceController struct {
	DB *gorm.DB
}

func NewPriceController(db *gorm.DB) *PriceController {
	return &PriceController{DB: db}
}

// GetPrices lists catalog price lines, optionally filtered by product:
// GET /prices?product=<id>
func (pc *PriceController) GetPrices(c *gin.Context) {
	query := pc.DB.Preload("Size")
	if productStr := c.Query("product"); productStr != "" {
		productID, err := strconv.Atoi(productStr)
		if err != nil {
			utils.HandleError(c, utils.ValidationError("invalid product ID"))
			return
		}
		query = query.Where("product_id = ?", productID)
	}

	var prices []models.ProductPrice
	if err := query.Find(&prices).Error; err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of price lines", prices)
}

func (pc *PriceController) CreatePrice(c *gin.Context) {
	var req struct {
		ProductID uint            `json:"product_id" binding:"required"`
		SizeID    uint            `json:"size_id" binding:"required"`
		Price     decimal.Decimal `json:"price" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Price.IsNegative() || req.Price.IsZero() {
		utils.HandleError(c, utils.ValidationError("price must be positive"))
		return
	}

	price := models.ProductPrice{
		ProductID: req.ProductID,
		SizeID:    req.SizeID,
		Price:     req.Price,
		Active:    true,
	}
	if err := pc.DB.Create(&price).Error; err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Price line created", price)
}

func (pc *PriceController) UpdatePrice(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("price_id"))

	var price models.ProductPrice
	if err := pc.DB.First(&price, id).Error; err != nil {
		utils.HandleError(c, utils.ErrNotFoundOrInactive)
		return
	}

	var req struct {
		Price  *decimal.Decimal `json:"price"`
		Active *bool            `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Price != nil {
		if req.Price.IsNegative() || req.Price.IsZero() {
			utils.HandleError(c, utils.ValidationError("price must be positive"))
			return
		}
		price.Price = *req.Price
	}
	if req.Active != nil {
		price.Active = *req.Active
	}

	if err := pc.DB.Save(&price).Error; err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Price line updated", price)
}

func (pc *PriceController) DeletePrice(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("price_id"))

	if err := pc.DB.Delete(&models.ProductPrice{}, id).Error; err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Price line deleted", gin.H{"price_id": id})
}
