package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/jyelen1110/alfies-server/internal/ai"
	"github.com/jyelen1110/alfies-server/internal/config"
	"github.com/jyelen1110/alfies-server/internal/database"
	"github.com/jyelen1110/alfies-server/internal/extract"
	"github.com/jyelen1110/alfies-server/internal/handlers"
	"github.com/jyelen1110/alfies-server/internal/ingest"
	"github.com/jyelen1110/alfies-server/internal/ledger"
	"github.com/jyelen1110/alfies-server/internal/mailbox"
	"github.com/jyelen1110/alfies-server/internal/models"
	"github.com/jyelen1110/alfies-server/internal/store"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize database (detects embedded vs external automatically)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// Note: db.Close() is called manually in shutdown handler below

	// 3. Auto-migrate schema
	log.Println("🚀 Synchronizing database schema...")
	err = db.AutoMigrate(
		&models.Tenant{},
		&models.Supplier{},
		&models.Customer{},
		&models.InventoryItem{},
		&models.ItemAlias{},
		&models.Order{},
		&models.OrderItem{},
		&models.Invoice{},
		&models.ImportRecord{},
		&models.UserAuth{},
	)
	if err != nil {
		log.Printf("⚠️ Migration warning: %v\n", err)
	} else {
		log.Println("✅ Schema synchronized successfully")
	}

	// 4. Stores
	importStore := store.NewImportStore(db)
	catalogStore := store.NewCatalogStore(db)
	customerStore := store.NewCustomerStore(db)
	orderStore := store.NewOrderStore(db)

	// 5. HTTP router
	router := handlers.NewRouter(db, cfg, importStore, orderStore, catalogStore)

	// 6. Ingestion pipeline (requires the extraction model)
	var coordinator *ingest.Coordinator
	if cfg.Gemini.APIKey != "" {
		gemini, err := ai.NewGeminiClient(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Fatalf("Failed to init extraction model: %v", err)
		}
		defer gemini.Close()

		extractor := extract.NewGeminiExtractor(gemini)
		coordinator = ingest.NewCoordinator(importStore, catalogStore, customerStore, orderStore, extractor)
		router.SetIngestor(coordinator)
		log.Printf("✅ Ingestion pipeline ready (model: %s)", cfg.Gemini.Model)
	} else {
		log.Println("⚠️ GEMINI_API_KEY not set: email ingestion disabled")
	}

	// 7. Accounting export
	ledgerClient := ledger.NewClient(cfg.Ledger.URL, cfg.Ledger.Database, cfg.Ledger.Username, cfg.Ledger.Password)
	ledgerService := ledger.NewService(ledgerClient, orderStore)
	router.SetLedgerService(ledgerService)
	if ledgerClient.IsConfigured() {
		log.Println("✅ Ledger export configured")
	} else {
		log.Println("Ledger export disabled: LEDGER_URL not configured")
	}

	// 8. Mailbox poller (background)
	var mailboxService *mailbox.Service
	if coordinator != nil && cfg.Mailbox.Enabled {
		creds := &clientcredentials.Config{
			ClientID:     cfg.Mailbox.ClientID,
			ClientSecret: cfg.Mailbox.ClientSecret,
			TokenURL:     cfg.Mailbox.TokenURL,
			Scopes:       []string{"https://graph.microsoft.com/.default"},
		}
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Mailbox.RedisAddr})

		fetcher := mailbox.NewFetcher(creds.Client(context.Background()), cfg.Mailbox.BaseURL, cfg.Mailbox.Address)
		filter := mailbox.NewProcessedFilter(rdb)
		mailboxService = mailbox.NewService(fetcher, filter, coordinator, cfg.Mailbox)
		mailboxService.Start()
	} else if cfg.Mailbox.Enabled {
		log.Println("⚠️ Mailbox polling disabled: ingestion pipeline unavailable")
	}

	// 9. Stale import reaper: imports stuck in processing after a crash
	// are flipped to failed so the mailbox claim is not wedged forever
	go func() {
		interval := time.Duration(cfg.Pipeline.ReaperIntervalMinutes) * time.Minute
		staleAfter := time.Duration(cfg.Pipeline.StaleImportMinutes) * time.Minute

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			n, err := importStore.ReclaimStale(context.Background(), staleAfter)
			if err != nil {
				log.Printf("❌ Import reaper error: %v", err)
			} else if n > 0 {
				log.Printf("🔄 Import reaper: marked %d stale import(s) as failed", n)
			}
		}
	}()

	// 10. Start server with graceful shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		log.Printf("🚀 Server starting on port %s\n", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	sig := <-shutdown
	log.Printf("\n⚠️  Received signal: %v. Shutting down gracefully...\n", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	if mailboxService != nil {
		mailboxService.Stop()
	}

	log.Println("🛑 Closing database connection...")
	if err := db.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}

	log.Println("✅ Shutdown complete")
}
