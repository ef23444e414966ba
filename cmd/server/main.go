package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/kosratdiaz/barber-reservation/internal/config"
	"github.com/kosratdiaz/barber-reservation/internal/database"
	"github.com/kosratdiaz/barber-reservation/internal/handler"
	"github.com/kosratdiaz/barber-reservation/internal/queue"
	"github.com/kosratdiaz/barber-reservation/internal/repository"
	"github.com/kosratdiaz/barber-reservation/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := database.SeedRoles(ctx, db); err != nil {
		cancel()
		log.Fatalf("seed roles: %v", err)
	}
	cancel()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting and caching disabled")
	}

	// Explicit construction in dependency order: repositories, handlers, routes.
	users := repository.NewUserRepo(db)
	reservations := repository.NewReservationRepo(db)
	availability := repository.NewAvailabilityRepo(db)

	e := echo.New()
	router.Register(e, cfg, rdb, router.Handlers{
		Auth:         handler.NewAuthHandler(cfg, users),
		Reservations: handler.NewReservationHandler(reservations),
		Availability: handler.NewAvailabilityHandler(availability),
	})

	// Background consumer keeps the reservation audit log; it reconnects on
	// its own and never takes the API down.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
