package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/pizzeria-app/config"
	"github.com/yeremiapane/pizzeria-app/controllers"
	"github.com/yeremiapane/pizzeria-app/middlewares"
	"github.com/yeremiapane/pizzeria-app/services"
)

func SetupRouter(db *gorm.DB, cfg *config.Config, verifier *services.VerificationService, limiter *middlewares.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	if limiter != nil {
		r.Use(limiter.RateLimit())
	}

	// Uploaded images are served back publicly; only image files pass.
	uploads := r.Group("/uploads", middlewares.UploadsCORS())
	uploads.Use(func(c *gin.Context) {
		path := strings.ToLower(c.Request.URL.Path)
		if !strings.HasSuffix(path, ".jpg") &&
			!strings.HasSuffix(path, ".jpeg") &&
			!strings.HasSuffix(path, ".png") {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	})
	uploads.Static("/", cfg.UploadDir)

	userCtrl := controllers.NewUserController(db, verifier)
	customerCtrl := controllers.NewCustomerController(db)
	productCtrl := controllers.NewProductController(db, cfg.UploadDir, cfg.BaseURL)
	sizeCtrl := controllers.NewSizeController(db)
	priceCtrl := controllers.NewPriceController(db)
	comboCtrl := controllers.NewComboController(db)
	ingredientCtrl := controllers.NewIngredientController(db)
	couponCtrl := controllers.NewCouponController(db)
	stockCtrl := controllers.NewStockController(db)
	orderCtrl := controllers.NewOrderController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	v1 := r.Group("/api/v1")

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	auth := v1.Group("/auth")
	auth.Use(middlewares.NewStrictRateLimiter())
	{
		auth.POST("/register", userCtrl.Register)
		auth.POST("/login", userCtrl.Login)
		auth.POST("/send-code", userCtrl.SendVerificationCode)
		auth.POST("/verify-code", userCtrl.VerifyEmail)
		auth.POST("/forgot-password", userCtrl.ForgotPassword)
		auth.POST("/reset-password", userCtrl.ResetPassword)
	}

	// Catalog browsing needs no login.
	v1.GET("/products", productCtrl.GetAllProducts)
	v1.GET("/products/:product_id", productCtrl.GetProductByID)
	v1.GET("/sizes", sizeCtrl.GetAllSizes)
	v1.GET("/prices", priceCtrl.GetPrices)
	v1.GET("/combos", comboCtrl.GetAllCombos)
	v1.GET("/combos/:combo_id", comboCtrl.GetComboByID)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	protected := v1.Group("/")
	protected.Use(middlewares.AuthMiddleware())

	protected.GET("/profile", userCtrl.GetProfile)
	protected.GET("/users", middlewares.RequireRole("admin"), userCtrl.GetAllUsers)

	// CUSTOMERS
	protected.GET("/customers", customerCtrl.GetAllCustomers)
	protected.POST("/customers", customerCtrl.CreateCustomer)
	protected.GET("/customers/:customer_id", customerCtrl.GetCustomerByID)
	protected.PATCH("/customers/:customer_id", customerCtrl.UpdateCustomer)
	protected.DELETE("/customers/:customer_id", middlewares.RequireRole("admin"), customerCtrl.DeleteCustomer)

	// PRODUCTS
	protected.POST("/products", productCtrl.CreateProduct)
	protected.PATCH("/products/:product_id", productCtrl.UpdateProduct)
	protected.DELETE("/products/:product_id", middlewares.RequireRole("admin"), productCtrl.DeleteProduct)

	// SIZES
	protected.POST("/sizes", sizeCtrl.CreateSize)
	protected.PATCH("/sizes/:size_id", sizeCtrl.UpdateSize)
	protected.DELETE("/sizes/:size_id", middlewares.RequireRole("admin"), sizeCtrl.DeleteSize)

	// PRICE LINES
	protected.POST("/prices", priceCtrl.CreatePrice)
	protected.PATCH("/prices/:price_id", priceCtrl.UpdatePrice)
	protected.DELETE("/prices/:price_id", middlewares.RequireRole("admin"), priceCtrl.DeletePrice)

	// COMBOS
	protected.POST("/combos", comboCtrl.CreateCombo)
	protected.PATCH("/combos/:combo_id", comboCtrl.UpdateCombo)
	protected.DELETE("/combos/:combo_id", middlewares.RequireRole("admin"), comboCtrl.DeleteCombo)

	// INGREDIENTS
	protected.GET("/ingredients", ingredientCtrl.GetAllIngredients)
	protected.POST("/ingredients", ingredientCtrl.CreateIngredient)
	protected.GET("/ingredients/:ingredient_id", ingredientCtrl.GetIngredientByID)
	protected.PATCH("/ingredients/:ingredient_id", ingredientCtrl.UpdateIngredient)
	protected.DELETE("/ingredients/:ingredient_id", middlewares.RequireRole("admin"), ingredientCtrl.DeleteIngredient)
	protected.POST("/ingredients/:ingredient_id/restock", ingredientCtrl.RestockIngredient)

	// COUPONS (admin)
	couponGroup := protected.Group("/coupons", middlewares.RequireRole("admin"))
	{
		couponGroup.GET("", couponCtrl.GetAllCoupons)
		couponGroup.POST("", couponCtrl.CreateCoupon)
		couponGroup.GET("/:coupon_id", couponCtrl.GetCouponByID)
		couponGroup.PATCH("/:coupon_id", couponCtrl.UpdateCoupon)
		couponGroup.DELETE("/:coupon_id", couponCtrl.DeleteCoupon)
		couponGroup.GET("/:coupon_id/usages", couponCtrl.GetCouponUsages)
	}

	// STOCK
	protected.GET("/stock/movements", stockCtrl.GetMovements)
	protected.POST("/stock/products/:product_id/restock", stockCtrl.RestockProduct)

	// ORDERS
	protected.GET("/orders", orderCtrl.GetAllOrders)
	protected.POST("/orders", orderCtrl.CreateOrder)
	protected.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	protected.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	protected.DELETE("/orders/:order_id", middlewares.RequireRole("admin"), orderCtrl.DeleteOrder)

	return r
}
