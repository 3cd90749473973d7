package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/marcus102/AGROVIE-sub002/internal/config"
	"github.com/marcus102/AGROVIE-sub002/internal/db"
	httpHandlers "github.com/marcus102/AGROVIE-sub002/internal/http/handlers"
	httpRouter "github.com/marcus102/AGROVIE-sub002/internal/http/router"
	"github.com/marcus102/AGROVIE-sub002/internal/logger"
	"github.com/marcus102/AGROVIE-sub002/internal/repository"
	"github.com/marcus102/AGROVIE-sub002/internal/service"
	"github.com/marcus102/AGROVIE-sub002/internal/storage"
	"github.com/marcus102/AGROVIE-sub002/internal/wizard"
	"github.com/marcus102/AGROVIE-sub002/internal/ws"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: could not load configuration: %v", err)
	}

	logLevel := "info"
	if cfg.Env == "development" {
		logLevel = "debug"
		logger.Init(logLevel)
		logger.SetTextFormatter()
	} else {
		logger.Init(logLevel)
	}

	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: could not connect to database: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: migrations failed: %v", err)
	}

	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	photoStorage, err := storage.NewPhotoStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: could not prepare media storage: %v", err)
	}

	// Repositories.
	userRepo := repository.NewUserRepository(dbConn)
	missionRepo := repository.NewMissionRepository(dbConn)
	pricingRepo := repository.NewPricingRepository(dbConn)
	trackingRepo := repository.NewTrackingRepository(dbConn)
	templateRepo := repository.NewTemplateRepository(dbConn)
	mediaRepo := repository.NewMediaRepository(dbConn)

	// Pricing rule cache is optional; without redis every quote hits the
	// database.
	var ruleCache service.RuleCache
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ruleCache = service.NewRedisRuleCache(redisClient, cfg.PricingCacheTTL)
		log.Printf("main: pricing rule cache enabled at %s", cfg.RedisAddr)
	}

	// Services.
	authService := service.NewAuthService(userRepo, tokenManager)
	pricingService := service.NewPricingService(pricingRepo, ruleCache)
	machine := wizard.New(pricingService)
	missionService := service.NewMissionService(missionRepo, mediaRepo, machine)
	trackingService := service.NewTrackingService(trackingRepo, missionRepo)
	templateService := service.NewTemplateService(templateRepo)

	// Websocket hub for mission and tracking events.
	hub := ws.NewHub(ctx)
	go hub.Run()
	missionService.SetHub(hub)
	trackingService.SetHub(hub)

	// HTTP handlers.
	authHandler := httpHandlers.NewAuthHandler(authService)
	wizardHandler := httpHandlers.NewWizardHandler(machine, pricingService)
	missionHandler := httpHandlers.NewMissionHandler(missionService)
	trackingHandler := httpHandlers.NewTrackingHandler(trackingService)
	templateHandler := httpHandlers.NewTemplateHandler(templateService)
	mediaHandler := httpHandlers.NewMediaHandler(mediaRepo, photoStorage)
	wsHandler := httpHandlers.NewWSHandler(hub, tokenManager)
	healthHandler := httpHandlers.NewHealthHandler(dbConn, redisClient)

	engine := httpRouter.SetupRouter(
		cfg,
		authHandler,
		wizardHandler,
		missionHandler,
		trackingHandler,
		templateHandler,
		mediaHandler,
		wsHandler,
		healthHandler,
		tokenManager,
	)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: http server shutdown error: %v", err)
		}
	}()

	log.Printf("main: HTTP server listening on port %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: server exited with error: %v", err)
	}
}

func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: database close error: %v", err)
	}
}
