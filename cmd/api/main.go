package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudsim-dash/cloudsim-backend/config"
	"github.com/cloudsim-dash/cloudsim-backend/internal/auth"
	"github.com/cloudsim-dash/cloudsim-backend/internal/bootstrap"
	"github.com/cloudsim-dash/cloudsim-backend/internal/cloudsim/demo"
	"github.com/cloudsim-dash/cloudsim-backend/internal/cloudsim/repository"
	"github.com/cloudsim-dash/cloudsim-backend/internal/cloudsim/sampler"
	"github.com/cloudsim-dash/cloudsim-backend/internal/cloudsim/service"
	"github.com/cloudsim-dash/cloudsim-backend/internal/pricing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()

	db, err := bootstrap.OpenDB(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if db != nil {
		defer db.Close()
		log.Println("Metrics archive enabled")
	}

	authClient, err := auth.InitializeFirebase(&cfg.Firebase)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}
	if authClient == nil {
		log.Println("Firebase credentials not configured, running with header-based identity")
	}

	simRepo := repository.NewSimulationRepository(redisClient)
	metricsRepo := repository.NewMetricsRepository(redisClient)

	var archiveRepo *repository.MetricsArchiveRepository
	if db != nil {
		archiveRepo = repository.NewMetricsArchiveRepository(db)
	}

	simService := service.NewSimulationService(simRepo, metricsRepo, archiveRepo, sampler.NewSystemSampler())
	seeder := demo.NewSeeder(simRepo, metricsRepo)

	rates := pricing.NewTable(pricing.Rates{
		InstanceRate:  cfg.Pricing.InstanceRate,
		CPUCoreRate:   cfg.Pricing.CPUCoreRate,
		MemoryGBRate:  cfg.Pricing.MemoryGBRate,
		StorageGBRate: cfg.Pricing.StorageGBRate,
	})

	if cfg.Pricing.AWSRefreshEnabled {
		refresher, err := pricing.NewAWSRefresher(ctx, cfg.Pricing.AWSRegion, rates)
		if err != nil {
			log.Printf("AWS pricing refresh unavailable: %v", err)
		} else {
			scheduler := pricing.NewScheduler(refresher)
			scheduler.Start()
			defer scheduler.Stop()
		}
	}

	loop := service.NewSamplerLoop(simService, time.Duration(cfg.Sampler.IntervalSeconds)*time.Second)
	if err := loop.Start(); err != nil {
		log.Fatalf("sampler loop: %v", err)
	}
	defer loop.Stop()

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "cloudsim-backend",
		Version:     cfg.App.Version,
		Redis:       redisClient,
		DB:          db,
		AuthClient:  authClient,
		SimService:  simService,
		Seeder:      seeder,
		Rates:       rates,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}
