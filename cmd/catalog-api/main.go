// Command catalog-api serves the product REST backend the product pages talk
// to, storing products with GORM and optionally publishing change events to
// RabbitMQ.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"productdesk/internal/backend"
	"productdesk/internal/config"
	"productdesk/internal/logging"
	"productdesk/internal/middleware"
	"productdesk/internal/models"
	"productdesk/internal/repositories"
	"productdesk/pkg/rabbitmq"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()

	// --- Initialize Repository ---
	productRepo, err := openRepository(cfg)
	if err != nil {
		zl.Fatal("failed to open product store", zap.String("driver", cfg.DatabaseDriver), zap.Error(err))
	}
	if cfg.SeedProducts {
		seedProducts(productRepo, zl)
	}

	// --- Initialize RabbitMQ Client ---
	var publisher backend.EventPublisher
	if cfg.EventsEnabled() {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue}, zl)
		if err != nil {
			zl.Fatal("failed to initialize RabbitMQ client", zap.Error(err))
		}
		defer mqClient.Close()
		publisher = mqClient
	}

	app := newApp(productRepo, publisher, zl)

	zl.Info("starting catalog API", zap.String("port", cfg.APIPort), zap.String("driver", cfg.DatabaseDriver))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.APIPort); err != nil {
			zl.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-quit
	zl.Info("shutting down catalog API")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zl.Error("error during Fiber shutdown", zap.Error(err))
	}
	zl.Info("catalog API gracefully stopped")
}

func newApp(repo repositories.ProductRepository, publisher backend.EventPublisher, zl *zap.Logger) *fiber.App {
	service := backend.NewService(repo, publisher, zl)
	handler := backend.NewHandler(service, zl)

	app := fiber.New(fiber.Config{AppName: "catalog-api", DisableStartupMessage: true})
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(zl))

	handler.RegisterRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"events": publisher != nil,
		})
	})
	return app
}

// openRepository returns the product store selected by DATABASE_DRIVER.
func openRepository(cfg config.Config) (repositories.ProductRepository, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case config.DriverMemory:
		return repositories.NewMockProductRepository(), nil
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DatabaseDSN)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return repositories.NewGORMProductRepository(db), nil
}

// seedProducts populates an empty store with sample products.
func seedProducts(repo repositories.ProductRepository, zl *zap.Logger) {
	existing, err := repo.GetAll()
	if err != nil {
		zl.Error("failed to check store before seeding", zap.Error(err))
		return
	}
	if len(existing) > 0 {
		zl.Info("store already has products, skipping seed", zap.Int("count", len(existing)))
		return
	}

	products := []models.Product{
		{Name: "Laptop", Description: "High performance laptop with 16GB RAM", Price: decimal.RequireFromString("1299.99"), StockQuantity: 10, Category: models.CategoryElectronics},
		{Name: "Mechanical Keyboard", Description: "Tenkeyless mechanical keyboard", Price: decimal.RequireFromString("75.00"), StockQuantity: 25, Category: models.CategoryElectronics},
		{Name: "Denim Jacket", Description: "Classic blue denim jacket", Price: decimal.RequireFromString("59.90"), StockQuantity: 4, Category: models.CategoryClothing},
		{Name: "The Go Programming Language", Description: "Introduction to Go by Donovan and Kernighan", Price: decimal.RequireFromString("34.50"), StockQuantity: 0, Category: models.CategoryBooks},
		{Name: "Standing Desk", Description: "Height adjustable standing desk", Price: decimal.RequireFromString("399.00"), StockQuantity: 7, Category: models.CategoryFurniture},
		{Name: "Leather Wallet", Description: "Slim bifold leather wallet", Price: decimal.RequireFromString("29.95"), StockQuantity: 60, Category: models.CategoryAccessories},
	}

	for i := range products {
		if err := repo.Create(&products[i]); err != nil {
			zl.Error("error seeding product", zap.String("name", products[i].Name), zap.Error(err))
			continue
		}
		zl.Info("seeded product", zap.String("name", products[i].Name), zap.Int64("product_id", products[i].ID))
	}
}
