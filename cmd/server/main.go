package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/vallicrm/training-seat-disposition/internal/config"
	"github.com/vallicrm/training-seat-disposition/internal/database"
	"github.com/vallicrm/training-seat-disposition/internal/disposition"
	"github.com/vallicrm/training-seat-disposition/internal/handler"
	"github.com/vallicrm/training-seat-disposition/internal/middleware"
	"github.com/vallicrm/training-seat-disposition/internal/queue"
	"github.com/vallicrm/training-seat-disposition/internal/repository"
	"github.com/vallicrm/training-seat-disposition/internal/router"
	queue_publisher "github.com/vallicrm/training-seat-disposition/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	sessions := repository.NewSessionRepo(db)
	bookings := repository.NewBookingRepo(db)
	manuals := repository.NewManualRepo(db)
	layouts := repository.NewLayoutRepo(db)
	seats := repository.NewSeatRepo(db)
	history := repository.NewHistoryRepo(db)
	dispoRepo := repository.NewDispositionRepo(db, layouts, seats, history)

	gen := disposition.NewGenerator(sessions, bookings, manuals, dispoRepo)

	// Optional redis-backed middleware. Nil client disables both.
	rdb := config.NewRedisClient()
	var rateLimit, cache echo.MiddlewareFunc
	if rdb != nil {
		rateLimit = middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
		cache = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	}

	authH := handler.NewAuthHandler(cfg, users, tokens)
	dispoH := handler.NewDispositionHandler(gen, sessions, layouts, seats, history,
		queue_publisher.PublishDispositionGenerated)
	editH := handler.NewSeatEditHandler(seats, sessions, layouts, history, dispoRepo)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterDisposition(e, dispoH, editH, cfg.JWTSecret, rateLimit, cache)

	// Background consumer for generated-disposition events. Failure to
	// reach the broker never blocks the API.
	go func() {
		if err := queue.StartDispositionConsumer(); err != nil {
			log.Printf("queue consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
