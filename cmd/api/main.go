package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/gin-gonic/gin"

	appConfig "github.com/SHASHANK8412/Civil-Soul-sub000/internal/config"
	"github.com/SHASHANK8412/Civil-Soul-sub000/internal/handlers"
	"github.com/SHASHANK8412/Civil-Soul-sub000/internal/ledger"
	"github.com/SHASHANK8412/Civil-Soul-sub000/internal/middleware"
	"github.com/SHASHANK8412/Civil-Soul-sub000/internal/models"
	"github.com/SHASHANK8412/Civil-Soul-sub000/internal/services"
)

func main() {
	cfg, err := appConfig.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	log.Println("✅ Configuration loaded")

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Println("🔧 Initializing services...")

	// 1. DynamoDB
	dynamoClient, err := initDynamoDBClient(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize DynamoDB: %v", err)
	}
	log.Println("✅ Connected to DynamoDB")

	dynamoDBService := services.NewDynamoDBService(
		dynamoClient,
		cfg.DynamoDBTableCertificates,
		cfg.DynamoDBVolunteerIndexName,
	)

	// 2. Certificate ledger
	certificateLedger, chainLedger := initLedger(cfg, dynamoDBService)
	if chainLedger != nil {
		defer chainLedger.Close()
	}

	// 3. Kafka
	kafkaService := services.NewKafkaService(
		cfg.KafkaBootstrapServers,
		cfg.KafkaConsumerGroup,
		cfg.KafkaActivityTopic,
		cfg.KafkaCertificateTopic,
	)

	err = kafkaService.CheckConnection(context.Background())
	if err != nil {
		log.Printf("⚠️ Warning: Kafka connection failed: %v", err)
		log.Println("   Make sure Kafka is running")
	} else {
		log.Println("✅ Connected to Kafka")
	}

	// 4. Certificate service
	certificateService := services.NewCertificateService(
		dynamoDBService,
		certificateLedger,
		kafkaService,
	)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	certificateHandler := handlers.NewCertificateHandler(certificateService)

	// Routes
	router := setupRoutes(cfg, healthHandler, certificateHandler)

	// HTTP server
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	// Start the Kafka consumer in the background
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Println("🎧 Starting Kafka consumer...")

		handler := func(event *models.ActivityCompletedEvent) error {
			return certificateService.HandleActivityCompleted(ctx, event)
		}

		err := kafkaService.ConsumeActivityEvents(ctx, handler)
		if err != nil && ctx.Err() == nil {
			log.Printf("❌ Kafka consumer error: %v", err)
		}
	}()

	// Start the HTTP server
	go func() {
		log.Printf("🚀 Server started on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server error: %v", err)
		}
	}()

	// Wait for the shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	cancel() // Stop the Kafka consumer

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
	}

	wg.Wait()

	if kafkaService != nil {
		kafkaService.Close()
	}

	log.Println("✅ Server stopped cleanly")
}

// initDynamoDBClient initializes the DynamoDB client
func initDynamoDBClient(cfg *appConfig.Config) (*dynamodb.Client, error) {
	ctx := context.Background()

	var awsCfg aws.Config
	var err error

	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretKey != "" {
		// Use the provided credentials
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.AWSRegion),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AWSAccessKeyID,
				cfg.AWSSecretKey,
				"",
			)),
		)
	} else {
		// Use the default credential chain (IAM role, env vars, etc.)
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.AWSRegion),
		)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	dynamoClient := dynamodb.NewFromConfig(awsCfg)

	// Use the local endpoint when configured
	if cfg.DynamoDBEndpoint != "" {
		dynamoClient = dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		})
		log.Printf("🔧 Using local DynamoDB endpoint: %s", cfg.DynamoDBEndpoint)
	}

	return dynamoClient, nil
}

// initLedger builds the configured certificate ledger, falling back to the
// in-memory mock when the chain is unreachable so the service can still run
// in demo mode.
func initLedger(cfg *appConfig.Config, store *services.DynamoDBService) (ledger.Ledger, *ledger.ChainLedger) {
	if cfg.LedgerMode == appConfig.LedgerModeMock {
		log.Println("🔧 Using in-memory mock ledger")
		return ledger.NewMockLedger(), nil
	}

	chainLedger, err := ledger.NewChainLedger(
		cfg.BlockchainRPCURL,
		store,
		time.Duration(cfg.BlockchainTimeout)*time.Second,
		cfg.MaxRetries,
		cfg.EnableStrictVerification,
	)
	if err != nil {
		log.Printf("⚠️ Warning: Unable to connect to the blockchain: %v", err)
		log.Println("   Falling back to the in-memory mock ledger")
		return ledger.NewMockLedger(), nil
	}

	if err := chainLedger.CheckConnection(context.Background()); err != nil {
		log.Printf("⚠️ Warning: Blockchain connection failed: %v", err)
		log.Println("   Falling back to the in-memory mock ledger")
		chainLedger.Close()
		return ledger.NewMockLedger(), nil
	}

	log.Println("✅ Connected to the blockchain")
	return chainLedger, chainLedger
}

// setupRoutes configures the application routes
func setupRoutes(cfg *appConfig.Config, healthHandler *handlers.HealthHandler, certificateHandler *handlers.CertificateHandler) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.SetupLogging())
	router.Use(gin.Recovery())
	router.Use(middleware.SetupCORS())
	router.Use(middleware.RequestID())
	router.Use(middleware.CorrelationID())

	// Rate limiting when configured
	if cfg.RateLimitRequests > 0 {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimitPerSecond(),
			BurstSize:         cfg.RateLimitRequests,
		})
		router.Use(rateLimiter.Middleware())
	}

	// Health routes
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/health/ready", healthHandler.ReadinessCheck)
	router.GET("/health/live", healthHandler.LivenessCheck)

	// API group
	apiGroup := router.Group("/api")
	{
		certificateGroup := apiGroup.Group("/certificates")
		{
			certificateGroup.POST("/generate", certificateHandler.GenerateCertificate)
			certificateGroup.POST("/preview", certificateHandler.PreviewEligibility)
			certificateGroup.GET("/user/:userId", certificateHandler.ListUserCertificates)
			certificateGroup.GET("/verify/:certificateId", certificateHandler.VerifyCertificate)
			certificateGroup.GET("/:certificateId/download", certificateHandler.DownloadCertificate)
		}
	}

	return router
}
