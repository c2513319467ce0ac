package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hotel-booking-service/internal/adapters/cache"
	"hotel-booking-service/internal/adapters/repositories"
	"hotel-booking-service/internal/api"
	"hotel-booking-service/internal/config"
	"hotel-booking-service/internal/platform/db"
	"hotel-booking-service/internal/platform/obs"
	"hotel-booking-service/internal/ports"
	"hotel-booking-service/internal/services"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, Redis) behind ports and starts the HTTP server.
func main() {
	config.Load()
	obs.Setup(config.Get("LOG_LEVEL", "info"), config.GetBool("LOG_PRETTY", false))

	port := config.GetInt("PORT", 8080)
	if port < 1 || port > 65535 {
		log.Fatal().Int("port", port).Msg("PORT must be between 1 and 65535")
	}
	seedPath := config.Get("SEED_PATH", "")

	store, closeStore, err := openStore(seedPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open room store")
	}
	defer closeStore()

	allocCache, closeCache, err := openCache(store)
	if err != nil {
		log.Fatal().Err(err).Msg("open allocation cache")
	}
	defer closeCache()

	seed := config.GetUint64("RANDOM_SEED", 0)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	svc := services.NewHotelService(store.rooms, services.NewAllocator(allocCache), seed)
	router := api.NewRouter(svc)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", srv.Addr).Str("store", store.kind).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

type roomStore struct {
	kind  string
	db    *sql.DB
	rooms ports.RoomStateRepository
}

// openStore picks Postgres when DATABASE_URL is set and SQLite otherwise,
// then makes sure the schema and every room exist.
func openStore(seedPath string) (roomStore, func(), error) {
	if url := config.Get("DATABASE_URL", ""); url != "" {
		conn, err := db.Open(url)
		if err != nil {
			return roomStore{}, nil, err
		}
		if err := initAndSeed(conn, repositories.Postgres, seedPath); err != nil {
			conn.Close()
			return roomStore{}, nil, err
		}
		return roomStore{kind: "postgres", db: conn, rooms: repositories.NewSQLRoomRepository(conn)},
			func() { conn.Close() }, nil
	}

	dbPath := config.Get("DB_PATH", ":memory:")
	conn, err := db.OpenSQLite(dbPath)
	if err != nil {
		return roomStore{}, nil, err
	}

	// Initialize schema and seed rooms on startup for local runs.
	if err := initAndSeed(conn, repositories.SQLite, seedPath); err != nil {
		conn.Close()
		return roomStore{}, nil, err
	}
	return roomStore{kind: "sqlite", db: conn, rooms: repositories.NewSqliteRoomRepository(conn)},
		func() { conn.Close() }, nil
}

// openCache prefers Redis when REDIS_URL is set. Without it, SQLite stores
// get a table-backed cache and Postgres runs uncached.
func openCache(store roomStore) (ports.AllocationCache, func(), error) {
	if url := config.Get("REDIS_URL", ""); url != "" {
		opts, err := redis.ParseURL(url)
		if err != nil {
			return nil, nil, fmt.Errorf("open cache: parse REDIS_URL: %w", err)
		}

		client := redis.NewClient(opts)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("open cache: ping redis: %w", err)
		}

		ttl := config.GetDuration("ALLOCATION_CACHE_TTL", 10*time.Minute)
		return cache.NewRedisAllocationCache(client, ttl), func() { client.Close() }, nil
	}

	if store.kind == "sqlite" {
		c := cache.NewSqliteAllocationCache(store.db)
		if err := c.Init(context.Background()); err != nil {
			return nil, nil, err
		}
		return c, func() {}, nil
	}

	return nil, func() {}, nil
}

func initAndSeed(conn *sql.DB, dialect repositories.Dialect, seedPath string) error {
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedTopology(conn, dialect); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if seedPath == "" {
		return nil
	}
	if err := repositories.SeedFromJSON(conn, dialect, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
