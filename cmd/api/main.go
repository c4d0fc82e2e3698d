package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/stayease/marketplace-system/internal/api"
	"github.com/stayease/marketplace-system/internal/core/service"
	"github.com/stayease/marketplace-system/internal/infrastructure/config"
	mongodb "github.com/stayease/marketplace-system/internal/infrastructure/db/mongo"
	redisdb "github.com/stayease/marketplace-system/internal/infrastructure/db/redis"
	"github.com/stayease/marketplace-system/internal/infrastructure/queue"
	"github.com/stayease/marketplace-system/pkg/logger"
)

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Repositories ---
	recordStore := redisdb.NewRecordStore(rdb, cfg.Redis.KeyPrefix)
	listingRepo := mongodb.NewListingRepository(db)
	favoritesRepo := mongodb.NewFavoritesRepository(db)
	dedup := redisdb.NewDedupChecker(rdb)

	if err := listingRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure listing indexes")
	}
	if err := favoritesRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure favorites indexes")
	}

	// --- Core services ---
	history := service.NewHistoryService(recordStore, cfg.Directory.HistoryLimit)
	directory := service.NewDirectoryService(recordStore, history, service.DirectoryConfig{
		Seed:    cfg.Directory.SeedFixtures,
		Latency: cfg.Directory.LookupLatency,
	}, log)
	sessions := service.NewSessionService(directory, recordStore, log)
	listings := service.NewListingService(listingRepo, log)
	favorites := service.NewFavoriteService(favoritesRepo, listingRepo, dedup, log)

	if _, err := directory.Initialize(ctx); err != nil {
		log.Fatal().Err(err).Msg("directory initialization failed")
	}
	if cfg.Catalog.SeedFixtures {
		if err := service.SeedCatalog(ctx, listingRepo); err != nil {
			log.Warn().Err(err).Msg("catalog seeding failed")
		}
	}

	// Restore a persisted session before serving so clients never observe
	// the loading state as unauthenticated.
	if _, err := sessions.Restore(ctx); err != nil {
		log.Warn().Err(err).Msg("session restore failed")
	}

	// --- Favorites pipeline ---
	dispatcher := queue.NewDispatcher(cfg.Favorites.Workers, favorites, log)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(api.Deps{
		Config:    cfg,
		Log:       log,
		Mongo:     db,
		Redis:     rdb,
		Directory: directory,
		History:   history,
		Sessions:  sessions,
		Listings:  listings,
		Favorites: favorites,
		Queue:     dispatcher,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}
