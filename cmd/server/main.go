package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chem-backend/internal/alertfeed"
	"chem-backend/internal/auth"
	"chem-backend/internal/cache"
	"chem-backend/internal/config"
	"chem-backend/internal/database"
	"chem-backend/internal/db"
	"chem-backend/internal/handlers"
	"chem-backend/internal/health"
	h "chem-backend/internal/http"
	"chem-backend/internal/middleware"
	"chem-backend/internal/repositories"
	"chem-backend/internal/services"
	"chem-backend/migrations"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg := config.Load()
	if *port > 0 {
		cfg.Server.Port = *port
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(rootCtx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Redis only backs logout revocation; the API runs without it
	if err := cache.Init(cfg); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (logout revocation disabled)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}
	defer cache.Close()

	log.Println("Running database migrations...")
	migrator := database.NewMigratorWithFS(pool, migrations.FS, ".")
	migrateCtx, cancel := context.WithTimeout(rootCtx, 30*time.Second)
	err = migrator.RunMigrations(migrateCtx)
	cancel()
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	healthChecker := health.NewHealthChecker(pool, cache.IsHealthy)
	go health.RunHostSampler(rootCtx, 15*time.Second)

	jwtManager := auth.NewJWTManager(cfg)
	denylist := cache.TokenDenylist{}

	// Repositories
	chemicalRepo := repositories.NewChemicalRepository(pool)
	purchaseRepo := repositories.NewPurchaseRepository(pool)
	saleRepo := repositories.NewSaleRepository(pool)
	safetyRepo := repositories.NewSafetyRepository(pool)
	userRepo := repositories.NewUserRepository(pool)

	// Services
	chemicalService := services.NewChemicalService(chemicalRepo)
	purchaseService := services.NewPurchaseService(purchaseRepo, chemicalRepo)
	saleService := services.NewSaleService(saleRepo, chemicalRepo)
	safetyService := services.NewSafetyService(safetyRepo, chemicalRepo)
	userService := services.NewUserService(userRepo, jwtManager, denylist)
	reportService := services.NewReportService(chemicalRepo, saleRepo, purchaseRepo,
		cfg.Inventory.LowStockThreshold, cfg.Inventory.ExpiryWindowDays)
	alertService := services.NewAlertService(chemicalRepo,
		cfg.Inventory.LowStockThreshold, cfg.Inventory.ExpiryWindowDays)

	var archiveService *services.ArchiveService
	if cfg.Archive.Enabled {
		client, err := services.NewS3Client(rootCtx, cfg)
		if err != nil {
			log.Printf("[Archive] S3 client unavailable: %v (archiving disabled)", err)
		} else {
			archiveService = services.NewArchiveService(reportService, client, cfg.Archive.Bucket, cfg.Archive.Prefix)
			log.Printf("[Archive] Archiving reports to bucket %s", cfg.Archive.Bucket)
		}
	}

	hub := alertfeed.NewHub(alertService, time.Duration(cfg.Inventory.AlertFeedIntervalS)*time.Second)
	go hub.Run(rootCtx)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, denylist)
	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(
		handlers.NewUserHandler(userService),
		handlers.NewChemicalHandler(chemicalService),
		handlers.NewPurchaseHandler(purchaseService),
		handlers.NewSaleHandler(saleService),
		handlers.NewSafetyHandler(safetyService),
		handlers.NewReportHandler(reportService, archiveService),
		handlers.NewAlertHandler(alertService),
		handlers.NewHealthHandler(healthChecker),
		hub,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(middleware.RequestLogger(corsMiddleware(router)))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server running on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-rootCtx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}
