package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-mindful-tracker/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/config"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/services"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/workers"
)

// application is the wired server. A nil DB selects in-memory storage.
type application struct {
	router *gin.Engine
	warmer *workers.MetricsWarmer
}

type storage struct {
	habits      domain.HabitRepository
	logs        domain.LogRepository
	reflections domain.ReflectionRepository
	users       domain.UserRepository
}

func newStorage(db *sqlx.DB, rdb *redis.Client) storage {
	if db == nil {
		return storage{
			habits:      repository.NewInMemoryHabitRepository(),
			logs:        repository.NewInMemoryLogRepository(),
			reflections: repository.NewInMemoryReflectionRepository(),
			users:       repository.NewInMemoryUserRepository(),
		}
	}

	var habits domain.HabitRepository = repository.NewPostgresHabitRepository(db)
	if rdb != nil {
		habits = repository.NewCachedHabitRepository(habits, rdb)
	}

	return storage{
		habits:      habits,
		logs:        repository.NewPostgresLogRepository(db),
		reflections: repository.NewPostgresReflectionRepository(db),
		users:       repository.NewPostgresUserRepository(db),
	}
}

func newApplication(cfg *config.Config, db *sqlx.DB, rdb *redis.Client, startTime time.Time) (*application, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	clock := adapterHTTP.NewClock(loc)

	store := newStorage(db, rdb)

	var metricsCache interface {
		services.MetricsCache
		workers.ReportCache
	} = cache.NewMemoryMetricsCache()
	if rdb != nil {
		metricsCache = cache.NewRedisMetricsCache(rdb)
	}

	warmer := workers.NewMetricsWarmer(store.habits, store.logs, metricsCache, clock)

	tokenService := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenDuration, store.users)
	authService := services.NewAuthService(store.users)
	habitService := services.NewHabitService(store.habits, store.logs, store.reflections, metricsCache, warmer)
	logService := services.NewLogService(store.habits, store.logs, metricsCache, warmer)
	reflectionService := services.NewReflectionService(store.habits, store.reflections)
	metricsService := services.NewMetricsService(store.habits, store.logs, metricsCache)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:       adapterHTTP.NewAuthHandler(authService, tokenService),
		HabitHandler:      adapterHTTP.NewHabitHandler(habitService),
		LogHandler:        adapterHTTP.NewLogHandler(logService, clock),
		ReflectionHandler: adapterHTTP.NewReflectionHandler(reflectionService, clock),
		MetricsHandler:    adapterHTTP.NewMetricsHandler(metricsService, clock),
		TokenService:      tokenService,
		DB:                db,
		Redis:             rdb,
		RateLimit:         cfg.RateLimit.Requests,
		RateLimitWindow:   cfg.RateLimit.Window,
		StartTime:         startTime,
	})

	return &application{router: router, warmer: warmer}, nil
}

func connectDatabase(cfg *config.Config) (*sqlx.DB, error) {
	log.Println("Connecting to database...")

	db, err := sqlx.Connect("pgx", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repository.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	log.Println("Database connected successfully.")
	return db, nil
}

func main() {
	startTime := time.Now()

	cfg, err := config.Load(os.Getenv("KANSO_CONFIG"))
	if err != nil {
		log.Fatalf("Critical: %v", err)
	}

	var db *sqlx.DB
	if cfg.Storage == config.StoragePostgres {
		db, err = connectDatabase(cfg)
		if err != nil {
			log.Fatalf("Critical: Failed to connect to database: %v", err)
		}
		defer db.Close()
	} else {
		log.Println("Using in-memory storage, data is lost on shutdown.")
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		rdb, err = cache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Printf("[CACHE] Redis unavailable, falling back to in-process cache: %v", err)
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	app, err := newApplication(cfg, db, rdb, startTime)
	if err != nil {
		log.Fatalf("Critical: %v", err)
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	app.warmer.Start(workerCtx)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      app.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Kanso Mindful Tracker running on http://localhost:%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}
	stopWorkers()

	log.Println("Server stopped gracefully.")
}
