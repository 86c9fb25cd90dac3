package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/pizzeria-app/models"
	"github.com/yeremiapane/pizzeria-app/utils"
)

type SizeController struct {
	DB *gorm.DB
}

func NewSizeController(db *gorm.DB) *SizeController {
	return &SizeController{DB: db}
}

func (sc *SizeController) GetAllSizes(c *gin.Context) {
	var sizes []models.Size
	if err := sc.DB.Find(&sizes).Error; err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of sizes", sizes)
}

func (sc *SizeController) CreateSize(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	size := models.Size{Name: req.Name}
	if err := sc.DB.Create(&size).Error; err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Size created", size)
}

func (sc *SizeController) UpdateSize(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("size_id"))

	var size models.Size
	if err := sc.DB.First(&size, id).Error; err != nil {
		utils.HandleError(c, utils.ErrNotFoundOrInactive)
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	size.Name = req.Name
	if err := sc.DB.Save(&size).Error; err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Size updated", size)
}

func (sc *SizeController) DeleteSize(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("size_id"))

	if err := sc.DB.Delete(&models.Size{}, id).Error; err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Size deleted", gin.H{"size_id": id})
}
