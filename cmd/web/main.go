package main

import (
	"fmt"
	"net/http"
	"os"

	"kardbook/internal/config"
	"kardbook/internal/database"
	"kardbook/internal/handlers"
	"kardbook/internal/logger"
	"kardbook/internal/middleware"
	"kardbook/internal/services"
	"kardbook/internal/validator"
	"kardbook/web"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create database manager
	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom form validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	cardService := services.NewCardService(db)
	categoryService := services.NewCategoryService(db)
	ledgerService := services.NewLedgerService(db, cardService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	cardHandler := handlers.NewCardHandler(cardService, categoryService)
	customDataHandler := handlers.NewCustomDataHandler(categoryService)
	transactionHandler := handlers.NewTransactionHandler(ledgerService, cardService, categoryService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.SetHTMLTemplate(web.Templates())

	// The root redirects to the card overview; unauthenticated visitors get
	// bounced to /auth by the middleware from there.
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/cards")
	})

	// Public auth routes
	auth := router.Group("/auth")
	auth.GET("", authHandler.LoginPage)
	auth.POST("", authHandler.Login)
	auth.GET("/logout", authHandler.Logout)
	auth.GET("/register", authHandler.RegisterPage)
	auth.POST("/register", authHandler.Register)

	// Account management for signed-in users
	account := router.Group("/auth")
	account.Use(middleware.AuthMiddleware())
	account.GET("/home", authHandler.Home)
	account.GET("/change-password", authHandler.ChangePasswordPage)
	account.POST("/change-password", authHandler.ChangePassword)
	account.GET("/delete-account", authHandler.DeleteAccount)

	// Card routes
	cards := router.Group("/cards")
	cards.Use(middleware.AuthMiddleware())
	cards.GET("", cardHandler.List)
	cards.GET("/add-card", cardHandler.AddCardPage)
	cards.POST("/add-card", cardHandler.AddCard)
	cards.GET("/edit-card/:id", cardHandler.EditCardPage)
	cards.POST("/edit-card/:id", cardHandler.EditCard)
	cards.GET("/delete/:id", cardHandler.DeleteCard)

	// Custom data routes (account/income/expense types)
	customData := router.Group("/custom-data")
	customData.Use(middleware.AuthMiddleware())
	customData.GET("/:cdType", customDataHandler.List)
	customData.GET("/add-custom-data/:cdType", customDataHandler.AddPage)
	customData.POST("/add-custom-data/:cdType", customDataHandler.Add)
	customData.GET("/edit-custom-data/:cdType/:id", customDataHandler.EditPage)
	customData.POST("/edit-custom-data/:cdType/:id", customDataHandler.Edit)
	customData.GET("/delete/:cdType/:id", customDataHandler.Delete)

	// Transaction routes
	transactions := router.Group("/transactions")
	transactions.Use(middleware.AuthMiddleware())
	transactions.GET("/card/:cardID", transactionHandler.ListByCard)
	transactions.GET("/card/:cardID/add-income", transactionHandler.AddIncomePage)
	transactions.POST("/card/:cardID/add-income", transactionHandler.AddIncome)
	transactions.GET("/card/:cardID/add-expense", transactionHandler.AddExpensePage)
	transactions.POST("/card/:cardID/add-expense", transactionHandler.AddExpense)
	transactions.GET("/edit-income/:id", transactionHandler.EditIncomePage)
	transactions.POST("/edit-income/:id", transactionHandler.EditIncome)
	transactions.GET("/edit-expense/:id", transactionHandler.EditExpensePage)
	transactions.POST("/edit-expense/:id", transactionHandler.EditExpense)
	transactions.GET("/delete-income/:id", transactionHandler.DeleteIncome)
	transactions.GET("/delete-expense/:id", transactionHandler.DeleteExpense)

	log.Infof("Starting Kardbook server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
