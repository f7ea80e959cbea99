package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sitesmith/sitesmith-backend/api"
	"github.com/sitesmith/sitesmith-backend/config"
	"github.com/sitesmith/sitesmith-backend/database"
	"github.com/sitesmith/sitesmith-backend/models"
	"github.com/sitesmith/sitesmith-backend/services"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	cfg := config.New()

	// Overlay secrets from SSM Parameter Store when a prefix is configured
	if prefix := config.GetString(cfg, "SSM_PARAMETER_PREFIX", ""); prefix != "" {
		fmt.Printf("Loading parameters from SSM under %s...\n", prefix)
		if err := config.LoadSSM(context.Background(), cfg, prefix); err != nil {
			fmt.Printf("Error loading SSM parameters: %v\n", err)
			os.Exit(1)
		}
	}

	connStr := config.GetString(cfg, "DATABASE_URL", "")
	if connStr == "" {
		fmt.Println("DATABASE_URL is not set. Exiting...")
		os.Exit(1)
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	// Enable required PostgreSQL extensions
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		fmt.Printf("Error enabling uuid-ossp extension: %v\n", err)
		os.Exit(1)
	}
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"vector\"").Error; err != nil {
		fmt.Printf("Error enabling vector extension: %v\n", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(&models.Project{}, &models.Comparison{}, &models.StatusCheck{}); err != nil {
		fmt.Printf("Error migrating schema: %v\n", err)
		os.Exit(1)
	}

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		fmt.Printf("Error testing database connection: %v\n", err)
		os.Exit(1)
	}

	currentDB := database.New(db)

	providers, err := services.NewProviderSet(context.Background(), cfg)
	if err != nil {
		fmt.Printf("Error initializing AI providers: %v\n", err)
		os.Exit(1)
	}

	generationTimeout := time.Duration(config.GetInt(cfg, "GENERATION_TIMEOUT_SECONDS", 120)) * time.Second
	generator := services.NewGenerator(providers, generationTimeout)

	publisher, err := services.NewPublisher(context.Background(), cfg)
	if err != nil {
		fmt.Printf("Error initializing publisher: %v\n", err)
		os.Exit(1)
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(api.Dependencies{
		DB:        currentDB,
		Generator: generator,
		Providers: providers,
		Publisher: publisher,
		Config:    cfg,
	})
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
