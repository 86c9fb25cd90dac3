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

type IngredientController struct {
	DB *gorm.DB
}

func NewIngredientController(db *gorm.DB) *IngredientController {
	return &IngredientController{DB: db}
}

func (ic *IngredientController) GetAllIngredients(c *gin.Context) {
	var ingredients []models.Ingredient
	if err := ic.DB.Find(&ingredients).Error; err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of ingredients", ingredients)
}

func (ic *IngredientController) CreateIngredient(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required"`
		Unit  string `json:"unit"`
		Stock int    `json:"stock"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Stock < 0 {
		utils.HandleError(c, utils.ValidationError("stock cannot be negative"))
		return
	}

	unit := req.Unit
	if unit == "" {
		unit = "unit"
	}

	ingredient := models.Ingredient{
		Name:   req.Name,
		Unit:   unit,
		Stock:  req.Stock,
		Active: true,
	}
	if err := ic.DB.Create(&ingredient).Error; err != nil {
		utils.HandleError(c, err)
		return
	}

	if req.Stock > 0 {
		ic.DB.Create(&models.StockMovement{
			ItemType: models.StockItemIngredient,
			ItemID:   ingredient.ID,
			Type:     models.MovementIncome,
			Quantity: req.Stock,
			Balance:  req.Stock,
			Reason:   "initial_stock",
		})
	}

	utils.RespondJSON(c, http.StatusCreated, "Ingredient created", ingredient)
}

func (ic *IngredientController) GetIngredientByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("ingredient_id"))

	var ingredient models.Ingredient
	if err := ic.DB.First(&ingredient, id).Error; err != nil {
		utils.HandleError(c, utils.ErrNotFoundOrInactive)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Ingredient detail", ingredient)
}

func (ic *IngredientController) UpdateIngredient(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("ingredient_id"))

	var ingredient models.Ingredient
	if err := ic.DB.First(&ingredient, id).Error; err != nil {
		utils.HandleError(c, utils.ErrNotFoundOrInactive)
		return
	}

	var req struct {
		Name   *string `json:"name"`
		Unit   *string `json:"unit"`
		Active *bool   `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	// Stock is deliberately not updatable here: all stock changes go
	// through the ledger so every mutation leaves a movement row.
	if req.Name != nil {
		ingredient.Name = *req.Name
	}
	if req.Unit != nil {
		ingredient.Unit = *req.Unit
	}
	if req.Active != nil {
		ingredient.Active = *req.Active
	}

	if err := ic.DB.Save(&ingredient).Error; err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Ingredient updated", ingredient)
}

func (ic *IngredientController) DeleteIngredient(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("ingredient_id"))

	if err := ic.DB.Delete(&models.Ingredient{}, id).Error; err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Ingredient deleted", gin.H{"ingredient_id": id})
}

// RestockIngredient records a supplier receipt.
// POST /ingredients/:ingredient_id/restock {"quantity": 10, "reason": "supplier"}
func (ic *IngredientController) RestockIngredient(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("ingredient_id"))

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

	err := ic.DB.Transaction(func(tx *gorm.DB) error {
		return services.Restock(tx, models.StockItemIngredient, uint(id), req.Quantity, reason)
	})
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	var ingredient models.Ingredient
	if err := ic.DB.First(&ingredient, id).Error; err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Ingredient restocked", ingredient)
}
