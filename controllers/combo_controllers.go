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

type ComboController struct {
	DB *gorm.DB
}

func NewComboController(db *gorm.DB) *ComboController {
	return &ComboController{DB: db}
}

func (cc *ComboController) GetAllCombos(c *gin.Context) {
	var combos []models.Combo
	if err := cc.DB.Preload("Items").Find(&combos).Error; err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of combos", combos)
}

func (cc *ComboController) GetComboByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("combo_id"))

	var combo models.Combo
	if err := cc.DB.Preload("Items").First(&combo, id).Error; err != nil {
		utils.HandleError(c, utils.ErrNotFoundOrInactive)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Combo detail", combo)
}

func (cc *ComboController) CreateCombo(c *gin.Context) {
	var req struct {
		Name        string          `json:"name" binding:"required"`
		Description string          `json:"description"`
		Price       decimal.Decimal `json:"price" binding:"required"`
		Items       []struct {
			ProductID uint `json:"product_id" binding:"required"`
			SizeID    uint `json:"size_id" binding:"required"`
			Quantity  int  `json:"quantity"`
		} `json:"items" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Price.IsNegative() || req.Price.IsZero() {
		utils.HandleError(c, utils.ValidationError("price must be positive"))
		return
	}

	combo := models.Combo{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Active:      true,
	}
	for _, item := range req.Items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		combo.Items = append(combo.Items, models.ComboItem{
			ProductID: item.ProductID,
			SizeID:    item.SizeID,
			Quantity:  qty,
		})
	}

	if err := cc.DB.Create(&combo).Error; err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Combo created", combo)
}

func (cc *ComboController) UpdateCombo(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("combo_id"))

	var combo models.Combo
	if err := cc.DB.First(&combo, id).Error; err != nil {
		utils.HandleError(c, utils.ErrNotFoundOrInactive)
		return
	}

	var req struct {
		Name        *string          `json:"name"`
		Description *string          `json:"description"`
		Price       *decimal.Decimal `json:"price"`
		Active      *bool            `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		combo.Name = *req.Name
	}
	if req.Description != nil {
		combo.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() || req.Price.IsZero() {
			utils.HandleError(c, utils.ValidationError("price must be positive"))
			return
		}
		combo.Price = *req.Price
	}
	if req.Active != nil {
		combo.Active = *req.Active
	}

	if err := cc.DB.Save(&combo).Error; err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Combo updated", combo)
}

func (cc *ComboController) DeleteCombo(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("combo_id"))

	err := cc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("combo_id = ?", id).Delete(&models.ComboItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Combo{}, id).Error
	})
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Combo deleted", gin.H{"combo_id": id})
}
