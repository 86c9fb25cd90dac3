package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeremiapane/pizzeria-app/models"
	"github.com/yeremiapane/pizzeria-app/utils"
)

const (
	maxImageSize  = 10 << 20 // 10MB per file
	maxImageCount = 3
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

type ProductController struct {
	DB        *gorm.DB
	UploadDir string
	BaseURL   string
}

func NewProductController(db *gorm.DB, uploadDir, baseURL string) *ProductController {
	return &ProductController{DB: db, UploadDir: uploadDir, BaseURL: baseURL}
}

func (pc *ProductController) GetAllProducts(c *gin.Context) {
	var products []models.Product
	if err := pc.DB.Preload("Prices").Preload("Prices.Size").Find(&products).Error; err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

func (pc *ProductController) GetProductByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("product_id"))

	var product models.Product
	if err := pc.DB.Preload("Prices").Preload("Prices.Size").First(&product, id).Error; err != nil {
		utils.HandleError(c, utils.ErrNotFoundOrInactive)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product detail", product)
}

// CreateProduct takes a multipart form: name, description, stock, and an
// optional "images" field (jpg/jpeg/png, max 3 files of 10MB each).
func (pc *ProductController) CreateProduct(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxImageSize); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("error parsing form data"))
		return
	}

	name := c.PostForm("name")
	if name == "" {
		utils.HandleError(c, utils.ValidationError("name is required"))
		return
	}

	stock := 0
	if stockStr := c.PostForm("stock"); stockStr != "" {
		var err error
		stock, err = strconv.Atoi(stockStr)
		if err != nil || stock < 0 {
			utils.HandleError(c, utils.ValidationError("invalid stock"))
			return
		}
	}

	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files = form.File["images"]
	}

	imageUrls, err := pc.saveImages(c, files)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	product := models.Product{
		Name:        name,
		Description: c.PostForm("description"),
		Stock:       stock,
		Active:      true,
	}
	if err := product.SetImageUrls(imageUrls); err != nil {
		pc.removeImages(imageUrls)
		utils.HandleError(c, err)
		return
	}

	if err := pc.DB.Create(&product).Error; err != nil {
		pc.removeImages(imageUrls)
		utils.HandleError(c, err)
		return
	}

	if stock > 0 {
		// Initial stock shows up in the ledger like any other income.
		pc.DB.Create(&models.StockMovement{
			ItemType: models.StockItemProduct,
			ItemID:   product.ID,
			Type:     models.MovementIncome,
			Quantity: stock,
			Balance:  stock,
			Reason:   "initial_stock",
		})
	}

	utils.RespondJSON(c, http.StatusCreated, "Product created", product)
}

func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("product_id"))

	var product models.Product
	if err := pc.DB.First(&product, id).Error; err != nil {
		utils.HandleError(c, utils.ErrNotFoundOrInactive)
		return
	}

	if err := c.Request.ParseMultipartForm(maxImageSize); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("error parsing form data"))
		return
	}

	if name := c.PostForm("name"); name != "" {
		product.Name = name
	}
	if desc, ok := c.GetPostForm("description"); ok {
		product.Description = desc
	}
	if activeStr, ok := c.GetPostForm("active"); ok {
		product.Active = activeStr == "true" || activeStr == "1"
	}

	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files = form.File["images"]
	}
	if len(files) > 0 {
		imageUrls, err := pc.saveImages(c, files)
		if err != nil {
			utils.HandleError(c, err)
			return
		}
		pc.removeImages(product.GetImageUrls())
		if err := product.SetImageUrls(imageUrls); err != nil {
			utils.HandleError(c, err)
			return
		}
	}

	if err := pc.DB.Save(&product).Error; err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product updated", product)
}

func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("product_id"))

	var product models.Product
	if err := pc.DB.First(&product, id).Error; err != nil {
		utils.HandleError(c, utils.ErrNotFoundOrInactive)
		return
	}

	if err := pc.DB.Delete(&product).Error; err != nil {
		utils.HandleError(c, err)
		return
	}
	pc.removeImages(product.GetImageUrls())

	utils.RespondJSON(c, http.StatusOK, "Product deleted", gin.H{"product_id": id})
}

// saveImages validates and stores uploaded files, returning their public
// URLs. On any failure it removes what was already written.
func (pc *ProductController) saveImages(c *gin.Context, files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > maxImageCount {
		return nil, utils.ValidationError("at most %d images per request", maxImageCount)
	}

	if err := os.MkdirAll(pc.UploadDir, 0o755); err != nil {
		return nil, err
	}

	var imageUrls []string
	var saved []string
	for _, file := range files {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedImageExts[ext] {
			pc.removePaths(saved)
			return nil, utils.ValidationError("only jpg, jpeg and png images are allowed")
		}
		if file.Size > maxImageSize {
			pc.removePaths(saved)
			return nil, utils.ValidationError("image %s exceeds the 10MB limit", file.Filename)
		}

		filename := fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.NewString(), ext)
		dst := filepath.Join(pc.UploadDir, filename)
		if err := c.SaveUploadedFile(file, dst); err != nil {
			pc.removePaths(saved)
			return nil, err
		}

		saved = append(saved, dst)
		imageUrls = append(imageUrls, fmt.Sprintf("%s/uploads/%s", pc.BaseURL, filename))
	}

	return imageUrls, nil
}

func (pc *ProductController) removeImages(urls []string) {
	for _, url := range urls {
		idx := strings.LastIndex(url, "/uploads/")
		if idx < 0 {
			continue
		}
		os.Remove(filepath.Join(pc.UploadDir, url[idx+len("/uploads/"):]))
	}
}

func (pc *ProductController) removePaths(paths []string) {
	for _, p := range paths {
		os.Remove(p)
	}
}
