package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/yeremiapane/pizzeria-app/cache"
	"github.com/yeremiapane/pizzeria-app/config"
	"github.com/yeremiapane/pizzeria-app/database"
	"github.com/yeremiapane/pizzeria-app/middlewares"
	"github.com/yeremiapane/pizzeria-app/models"
	"github.com/yeremiapane/pizzeria-app/router"
	"github.com/yeremiapane/pizzeria-app/services"
	"github.com/yeremiapane/pizzeria-app/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	utils.InitDB(db)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	// Verification codes live in-process by default; point REDIS_ADDR at a
	// Redis instance when running more than one replica.
	var codes cache.CodeStore
	if cfg.RedisAddr != "" {
		codes = cache.NewRedisCodeStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		utils.InfoLogger.Printf("Verification codes stored in Redis at %s", cfg.RedisAddr)
	} else {
		codes = cache.NewMemoryCodeStore()
		utils.InfoLogger.Println("Verification codes stored in memory (single-process only)")
	}

	mailer := services.NewMailer(cfg)
	verifier := services.NewVerificationService(codes, mailer)

	rateLimiter := middlewares.NewRateLimiter(50, 1)

	r := router.SetupRouter(db, cfg, verifier, rateLimiter)
	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Product{},
		&models.Size{},
		&models.ProductPrice{},
		&models.Combo{},
		&models.ComboItem{},
		&models.Ingredient{},
		&models.StockMovement{},
		&models.Coupon{},
		&models.CouponUsage{},
		&models.Order{},
		&models.OrderDetail{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	if err := database.EnsureSchemaGuards(db); err != nil {
		utils.ErrorLogger.Printf("Error installing schema guards: %v", err)
	}
}
