package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/example/luxa-shop/internal/api"
	"github.com/example/luxa-shop/internal/auth"
	"github.com/example/luxa-shop/internal/config"
	"github.com/example/luxa-shop/internal/domain/admin"
	"github.com/example/luxa-shop/internal/domain/cart"
	"github.com/example/luxa-shop/internal/domain/catalog"
	"github.com/example/luxa-shop/internal/domain/checkout"
	"github.com/example/luxa-shop/internal/domain/order"
	"github.com/example/luxa-shop/internal/domain/wilaya"
	"github.com/example/luxa-shop/internal/infrastructure/kafka"
	"github.com/example/luxa-shop/internal/infrastructure/objectstore"
	"github.com/example/luxa-shop/internal/infrastructure/store"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()
	if err := cfg.ValidateAPI(); err != nil {
		log.Fatalf("[API] %v", err)
	}

	log.Println("[API] ========================================")
	log.Println("[API] Luxa Shop API")
	log.Println("[API] ========================================")
	log.Printf("[API] Cart storage: %s", cfg.CartStorage)
	log.Printf("[API] Kafka: %v", cfg.KafkaBrokers)
	log.Printf("[API] Topic: %s", cfg.KafkaTopic)

	db, err := store.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[API] Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()
	log.Println("[API] Connected to PostgreSQL")

	carts, err := cartStorage(ctx, cfg, db)
	if err != nil {
		log.Fatalf("[API] Failed to set up cart storage: %v", err)
	}

	var images catalog.ImageStore
	if cfg.S3Bucket != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			log.Fatalf("[API] Failed to load AWS config: %v", err)
		}
		images = objectstore.NewS3ImageStore(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.AWSRegion, cfg.S3PublicBaseURL)
		log.Printf("[API] Product images: s3://%s", cfg.S3Bucket)
	} else {
		log.Println("[API] S3_BUCKET not set, image uploads disabled")
	}

	var publisher order.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
		publisher = producer
	} else {
		log.Println("[API] KAFKA_BROKERS not set, order events are not published")
	}

	// Repositories
	products := store.NewPostgresProductStore(db)
	wilayas := store.NewPostgresWilayaStore(db)
	orders := store.NewPostgresOrderStore(db)
	settings := store.NewPostgresSettingsStore(db)

	// Domain services
	orderSvc := order.NewService(orders, publisher)
	checkoutSvc := checkout.NewService(wilayas, orders, orderSvc, checkout.NewNumberGenerator(cfg.OrderPrefix, nil))

	handlers := api.NewHandlers(api.Deps{
		Catalog:       catalog.NewService(products, images),
		Wilayas:       wilaya.NewService(wilayas),
		Orders:        orderSvc,
		Checkout:      checkoutSvc,
		Carts:         carts,
		Gate:          admin.NewGate(settings, nil),
		Tokens:        auth.NewSessionTokens(cfg.SessionSecret, nil),
		SecureCookies: cfg.SecureCookies,
	})
	router := api.NewRouter(handlers, cfg.WebDir)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Println("[API] ========================================")
		log.Printf("[API] Server started on %s", cfg.HTTPAddr)
		log.Println("[API] ========================================")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[API] Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[API] Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[API] Shutdown error: %v", err)
	}
}

// cartStorage picks the cart backend named by CART_STORAGE.
func cartStorage(ctx context.Context, cfg *config.Config, db *sql.DB) (cart.Storage, error) {
	switch cfg.CartStorage {
	case config.CartStorageDynamo:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return nil, err
		}
		log.Printf("[API] Carts in DynamoDB table %s", cfg.DynamoCartTable)
		return store.NewDynamoCartStorage(dynamodb.NewFromConfig(awsCfg), cfg.DynamoCartTable), nil
	case config.CartStorageMemory:
		log.Println("[API] Carts in memory, they are lost on restart")
		return cart.NewMemoryStorage(), nil
	default:
		s := store.NewPostgresCartStorage(db)
		if err := s.Migrate(ctx); err != nil {
			return nil, err
		}
		return s, nil
	}
}
