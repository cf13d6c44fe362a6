package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"panaderia/internal/config"
	"panaderia/internal/handlers"
	"panaderia/internal/middleware"
	"panaderia/internal/models"
	"panaderia/internal/notifier"
	"panaderia/internal/repositories"
	"panaderia/internal/services"
	"panaderia/pkg/mailer"
	"panaderia/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	// --- Database ---
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Branch{},
		&models.Product{},
		&models.Offer{},
		&models.Order{},
		&models.OrderLine{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ (optional: the app runs without a broker) ---
	var mqClient *rabbitmq.Client
	mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Printf("RabbitMQ unavailable, domain events disabled: %v", err)
		mqClient = nil
	} else {
		defer mqClient.Close()
	}

	// --- Notification plumbing ---
	dispatcher := notifier.NewDispatcher(cfg.NotifierWorkers, cfg.NotifierQueueSize)
	smtpMailer := mailer.NewSMTPMailer(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	})

	// --- Repositories ---
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	offerRepo := repositories.NewGORMOfferRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	reportRepo := repositories.NewGORMReportRepository(db)
	branchRepo := repositories.NewGORMBranchRepository(db)

	// --- Services ---
	watcher := services.NewInventoryWatcher(userRepo, dispatcher, smtpMailer, mqClient)
	tracker := services.NewOrderTracker(userRepo, dispatcher, smtpMailer)
	productService := services.NewProductService(productRepo, watcher)
	orderService := services.NewOrderService(orderRepo, productService, tracker, mqClient)
	offerService := services.NewOfferService(offerRepo, userRepo, dispatcher, smtpMailer)
	reportService := services.NewReportService(reportRepo)
	branchService := services.NewBranchService(branchRepo)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)
	offerHandler := handlers.NewOfferHandler(offerService)
	reportHandler := handlers.NewReportHandler(reportService)
	branchHandler := handlers.NewBranchHandler(branchService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())

	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)

	auth := middleware.AuthRequired(authService)
	productHandler.RegisterRoutes(apiV1, auth)
	offerHandler.RegisterRoutes(apiV1, auth)
	branchHandler.RegisterRoutes(apiV1, auth)
	orderHandler.RegisterRoutes(apiV1, auth)
	reportHandler.RegisterRoutes(apiV1, auth)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Event log consumer ---
	if mqClient != nil {
		if consumerErr := mqClient.ConsumeEvents(func(msg amqp.Delivery) error {
			log.Printf("Event %s (tag %d): %s", msg.Type, msg.DeliveryTag, string(msg.Body))
			return nil
		}); consumerErr != nil {
			log.Printf("Failed to start event consumer: %v", consumerErr)
		}
	}

	// --- Start HTTP server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	// Let queued notifications drain before the process exits.
	dispatcher.Close()

	log.Println("Server gracefully stopped")
}
