package routes

import (
	"Purchase-Tracker/internal/api/handlers"
	"Purchase-Tracker/internal/middleware"
	"Purchase-Tracker/web"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
)

type Config struct {
	App             *fiber.App
	CategoryHandler handlers.CategoryHandler
	ProductHandler  handlers.ProductHandler
	ShareHandler    handlers.ShareHandler
	PageHandler     handlers.PageHandler
	Middleware      middleware.Middleware
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Static()
	c.Categories()
	c.Products()
	c.Shared()
	c.Pages()
	c.GuestRoute()
}

func (c *Config) Static() {
	c.App.Use("/static", filesystem.New(filesystem.Config{
		Root:       http.FS(web.Static),
		PathPrefix: "static",
	}))
}

func (c *Config) Categories() {
	categories := c.App.Group("/api/v1/categories")
	{
		categories.Get("", c.CategoryHandler.GetCategories)
		categories.Post("", c.CategoryHandler.AddCategory)
		categories.Delete("/:id", c.CategoryHandler.DeleteCategory)
	}
}

func (c *Config) Products() {
	products := c.App.Group("/api/v1/products")
	products.Get("/suggestions", c.ProductHandler.GetSuggestions)

	// Basic CRUD operations
	products.Get("", c.ProductHandler.GetProducts)
	products.Post("", c.ProductHandler.AddProduct)
	products.Get("/:id", c.ProductHandler.GetProductDetails)
	products.Put("/:id", c.ProductHandler.UpdateProduct)
	products.Delete("/:id", c.ProductHandler.DeleteProduct)

	// Sharing
	products.Post("/:id/share", c.ShareHandler.ShareProduct)
	products.Get("/:id/share/qr", c.ShareHandler.ShareQRCode)
	products.Post("/:id/share/email", c.ShareHandler.EmailShareLink)

	c.App.Post("/api/v1/images", c.ProductHandler.UploadImage)
}

func (c *Config) Shared() {
	c.App.Get("/api/v1/shared/:token", c.ShareHandler.GetSharedProduct)
}

func (c *Config) Pages() {
	c.App.Get("/", c.PageHandler.Index)
	c.App.Post("/products", c.PageHandler.SaveProduct)
	c.App.Post("/products/:id", c.PageHandler.SaveProduct)
	c.App.Post("/products/:id/delete", c.PageHandler.DeleteProduct)
	c.App.Post("/products/:id/share", c.PageHandler.ShareProduct)
	c.App.Get("/products/:id/share/qr", c.PageHandler.ShareQRCode)
	c.App.Post("/categories", c.PageHandler.AddCategory)
	c.App.Post("/categories/:id/delete", c.PageHandler.DeleteCategory)
	c.App.Get("/shared/:token", c.PageHandler.SharedProduct)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
