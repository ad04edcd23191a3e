package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/verdant-labs/verdant/internal/clientdata"
	"github.com/verdant-labs/verdant/internal/clients/alphavantage"
	"github.com/verdant-labs/verdant/internal/clients/fmp"
	"github.com/verdant-labs/verdant/internal/config"
	"github.com/verdant-labs/verdant/internal/database"
	"github.com/verdant-labs/verdant/internal/events"
	"github.com/verdant-labs/verdant/internal/metrics"
	"github.com/verdant-labs/verdant/internal/modules/marketdata"
	mdhandlers "github.com/verdant-labs/verdant/internal/modules/marketdata/handlers"
	"github.com/verdant-labs/verdant/internal/modules/portfolio"
	pfhandlers "github.com/verdant-labs/verdant/internal/modules/portfolio/handlers"
	"github.com/verdant-labs/verdant/internal/scheduler"
	"github.com/verdant-labs/verdant/internal/server"
	"github.com/verdant-labs/verdant/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New(logger.Config{Level: "info"})
		fallback.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting Verdant")

	// Databases
	portfolioDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "portfolio.db"),
		Profile: database.ProfileStandard,
		Name:    "portfolio",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open portfolio database")
	}
	defer portfolioDB.Close()

	clientDataDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "client_data.db"),
		Profile: database.ProfileCache,
		Name:    "client_data",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open client data database")
	}
	defer clientDataDB.Close()

	for _, db := range []*database.DB{portfolioDB, clientDataDB} {
		if err := db.Migrate(); err != nil {
			log.Fatal().Err(err).Str("db", db.Name()).Msg("Failed to run migrations")
		}
	}

	// Market data resolution chain
	cache := clientdata.NewRepository(clientDataDB.Conn())
	avClient := alphavantage.NewClient(cfg.AlphaVantageAPIKey, cache, log)
	fmpClient := fmp.NewClient(cfg.FMPAPIKey, cache, log)
	generator := marketdata.NewGenerator(rand.New(rand.NewSource(time.Now().UnixNano())))
	appMetrics := metrics.New()
	resolver := marketdata.NewResolver(avClient, fmpClient, generator, appMetrics, log)

	// Portfolio
	bus := events.NewBus(log)
	store := portfolio.NewStore(log)
	snapshots := portfolio.NewSnapshotRepository(portfolioDB.Conn(), log)
	service := portfolio.NewService(store, resolver, snapshots, bus, appMetrics, log)
	if err := service.Init(cfg.InitialFundCash); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize portfolio")
	}

	// Background refresh
	sched := scheduler.New(log)
	if cfg.RefreshSchedule != "" {
		if err := sched.AddJob(cfg.RefreshSchedule, scheduler.NewRefreshPricesJob(service)); err != nil {
			log.Fatal().Err(err).Msg("Failed to register refresh job")
		}
	}
	sched.Start()
	defer sched.Stop()

	srv := server.New(server.Config{
		Port:       cfg.Port,
		Log:        log,
		DevMode:    cfg.DevMode,
		Portfolio:  pfhandlers.NewHandler(service, log),
		MarketData: mdhandlers.NewHandler(resolver, fmpClient, log),
		Metrics:    appMetrics,
		Bus:        bus,
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
