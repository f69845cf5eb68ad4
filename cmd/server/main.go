package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/joho/godotenv"
	"github.com/nestwell/nestwell/internal/clients"
	"github.com/nestwell/nestwell/internal/config"
	"github.com/nestwell/nestwell/internal/database"
	"github.com/nestwell/nestwell/internal/handlers"
	"github.com/nestwell/nestwell/internal/logging"
	"github.com/nestwell/nestwell/internal/middleware"
	"github.com/nestwell/nestwell/internal/notify"
	"github.com/nestwell/nestwell/internal/types"
	"github.com/nestwell/nestwell/internal/utils"
)

// @title Nestwell API
// @version 1.0.0
// @description Maternal-wellness API: check-ins, journal, appointments, partner sharing
// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey ActorAuth
// @in header
// @name X-User-ID

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logging.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Optional geocode cache
	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer cache.Close()
	}

	// External service clients
	chatClient := clients.NewChatClient(cfg.ChatAPIURL, cfg.ChatAPIKey, cfg.ChatModel, cfg.ChatFallback, zlog)
	placesClient := clients.NewPlacesClient(cfg.PlacesAPIURL, cfg.PlacesAPIKey, cache, zlog)
	emailClient, err := clients.NewEmailClient(context.Background(), cfg.AWSRegion, cfg.EmailFrom, cfg.EmailFromName, zlog)
	if err != nil {
		log.Fatalf("Failed to create email client: %v", err)
	}

	// Outbox worker drains provider alerts off the request path
	workerCtx, stopWorker := context.WithCancel(context.Background())
	worker := notify.NewOutboxWorker(db, emailClient, time.Duration(cfg.OutboxInterval)*time.Second, zlog)
	go worker.Start(workerCtx)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("nestwell")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	userHandler := &handlers.UserHandler{DB: db}
	partnershipHandler := &handlers.PartnershipHandler{DB: db}
	partnerHandler := &handlers.PartnerHandler{DB: db}
	checkInHandler := &handlers.CheckInHandler{DB: db, RedFlags: cfg.RedFlagFeelings}
	journalHandler := &handlers.JournalHandler{DB: db}
	appointmentHandler := &handlers.AppointmentHandler{DB: db}
	groupHandler := &handlers.GroupHandler{DB: db, Geocoder: placesClient}
	chatHandler := &handlers.ChatHandler{DB: db, Chat: chatClient}
	contentHandler := &handlers.ContentHandler{DB: db}

	// Users
	api.Post("/users", userHandler.CreateUser)
	api.Get("/users/:id", userHandler.GetUser)
	api.Patch("/users/:id", userHandler.UpdateUser)

	// Partnerships (permission mutations require an explicit actor)
	api.Post("/partnerships", partnershipHandler.CreatePartnership)
	api.Post("/partnerships/redeem", partnershipHandler.RedeemInvite)
	api.Post("/partnerships/:id/accept", partnershipHandler.AcceptPartnership)
	api.Patch("/partnerships/:id/permissions", middleware.RequireActor(), partnershipHandler.UpdatePermissions)
	api.Delete("/partnerships/:id", middleware.RequireActor(), partnershipHandler.RevokePartnership)
	api.Get("/partnerships/mother/:id", partnershipHandler.ListForMother)

	// Partner-facing filtered views
	api.Get("/partner/dashboard/:userId", partnerHandler.Dashboard)
	api.Get("/partner/updates/:userId", partnerHandler.Updates)
	api.Get("/partner/journal/:userId", partnerHandler.Journal)
	api.Get("/partner/resources/:userId", partnerHandler.Resources)

	// Check-ins
	api.Post("/checkin", checkInHandler.CreateCheckIn)
	api.Get("/checkin/today/:userId", checkInHandler.TodayCheckIn)
	api.Get("/checkins/:userId", checkInHandler.ListCheckIns)

	// Journal
	api.Post("/journal", journalHandler.CreateEntry)
	api.Get("/journal/:userId", journalHandler.ListEntries)
	api.Put("/journal/:id", middleware.RequireActor(), journalHandler.UpdateEntry)
	api.Delete("/journal/:id", middleware.RequireActor(), journalHandler.DeleteEntry)

	// Appointments
	api.Post("/appointments", appointmentHandler.CreateAppointment)
	api.Get("/appointments/:userId", appointmentHandler.ListAppointments)
	api.Delete("/appointments/:id", middleware.RequireActor(), appointmentHandler.DeleteAppointment)

	// Groups
	api.Get("/groups", groupHandler.ListGroups)
	api.Post("/groups", groupHandler.CreateGroup)
	api.Post("/groups/seed", groupHandler.SeedFromPlaces)
	api.Post("/groups/:id/join", groupHandler.JoinGroup)
	api.Post("/groups/:id/leave", groupHandler.LeaveGroup)
	api.Post("/groups/:id/favorite", groupHandler.ToggleFavorite)
	api.Post("/groups/:id/messages", groupHandler.PostMessage)
	api.Get("/groups/:id/messages", groupHandler.ListMessages)

	// Chat companion
	api.Post("/chat", chatHandler.SendMessage)

	// Content
	api.Get("/experts", contentHandler.ListExperts)
	api.Get("/resources", contentHandler.ListResources)
	api.Get("/affirmations/today", contentHandler.AffirmationOfTheDay)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, "[404] Resource Not Found")
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		stopWorker()
		_ = app.Shutdown()
	}()

	// Start server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var appErr *types.AppError
	if errors.As(err, &appErr) {
		code = appErr.Code
		message = appErr.Message
		errorType = appErr.Type
	} else if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
