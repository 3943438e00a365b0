package config

import (
	"Purchase-Tracker/internal/api/handlers"
	"Purchase-Tracker/internal/api/routes"
	"Purchase-Tracker/internal/middleware"
	"Purchase-Tracker/internal/utils"
	"Purchase-Tracker/internal/utils/mailing"
	"Purchase-Tracker/internal/utils/storage"
	"Purchase-Tracker/internal/view"
	"Purchase-Tracker/pkg/category"
	"Purchase-Tracker/pkg/maps"
	"Purchase-Tracker/pkg/product"
	"Purchase-Tracker/pkg/share"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
		BodyLimit:         10 * 1024 * 1024,
	})
	middlewares := middleware.NewMiddleware(utils.GetConfig("CORS_ORIGINS"))
	validator := utils.Validate

	// setting up logging, recovery and limiter
	logFile := utils.GetConfig("LOG_FILE")
	err := os.MkdirAll(filepath.Dir(logFile), os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		logFile,
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Bangkok",
		Output:     io.MultiWriter(os.Stdout, file),
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        30,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	mailer := mailing.NewMailer(mailing.LoadMailConfig())
	engine, err := view.NewEngine()
	if err != nil {
		return nil, err
	}

	// Repository
	categoryRepository := category.NewCategoryRepository(db)
	productRepository := product.NewProductRepository(db)

	// Service
	categoryService := category.NewCategoryService(categoryRepository)
	productService := product.NewProductService(productRepository, categoryRepository, s3)
	shareService := share.NewShareService(productRepository, mailer)

	// Handler
	appURL := utils.GetConfig("APP_URL")
	categoryHandler := handlers.NewCategoryHandler(categoryService, validator)
	productHandler := handlers.NewProductHandler(productService, validator)
	shareHandler := handlers.NewShareHandler(shareService, validator, appURL)
	pageHandler := handlers.NewPageHandler(categoryService, productService, shareService, engine, validator, maps.DefaultConfig(), appURL)

	// routes
	routesConfig := routes.Config{
		App:             app,
		CategoryHandler: categoryHandler,
		ProductHandler:  productHandler,
		ShareHandler:    shareHandler,
		PageHandler:     pageHandler,
		Middleware:      middlewares,
	}
	routesConfig.Setup()
	return app, nil
}
