package main // Entry point package

import (
    "log" // Logging library

    "github.com/joho/godotenv"    // Optional .env loader for local development
    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/parking-spot-reservation/internal/availability" // Slot flag reconciliation
    "github.com/iliyamo/parking-spot-reservation/internal/config"       // Internal config loader
    "github.com/iliyamo/parking-spot-reservation/internal/database"     // MySQL connection pool
    "github.com/iliyamo/parking-spot-reservation/internal/handler"      // HTTP handlers
    "github.com/iliyamo/parking-spot-reservation/internal/middleware"   // Rate limiting and response cache
    "github.com/iliyamo/parking-spot-reservation/internal/queue"        // booking.confirmed consumer
    "github.com/iliyamo/parking-spot-reservation/internal/repository"   // Data access layer
    "github.com/iliyamo/parking-spot-reservation/internal/router"       // Route registration
)

func main() {
    // A missing .env is fine; real deployments set the environment directly.
    _ = godotenv.Load()

    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)
    locations := repository.NewLocationRepo(db)
    slots := repository.NewSlotRepo(db)
    bookings := repository.NewBookingRepo(db)
    payments := repository.NewPaymentRepo(db)

    avail := availability.New(slots, bookings)

    authH := handler.NewAuthHandler(cfg, users, tokens)
    adminH := handler.NewAdminHandler(locations, slots)
    catalogH := handler.NewCatalogHandler(locations, slots, avail)
    bookingH := handler.NewBookingHandler(bookings, slots, locations, avail)
    paymentH := handler.NewPaymentHandler(payments, bookings, slots, locations, avail, cfg.PaymentKeyID, cfg.PaymentSecret)

    e := echo.New()

    // Redis backs both the token-bucket rate limiter (applied globally)
    // and the catalog response cache (applied per route).
    var cacheMW []echo.MiddlewareFunc
    if rdb := config.NewRedisClient(); rdb != nil {
        e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
        cacheMW = append(cacheMW, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
    } else {
        log.Println("redis unavailable; rate limiting and catalog cache disabled")
    }

    router.RegisterRoutes(e)
    router.RegisterAuth(e, authH, cfg.JWTSecret)
    router.RegisterCatalog(e, catalogH, cacheMW...)
    router.RegisterAdmin(e, adminH, cfg.JWTSecret)
    router.RegisterBookings(e, bookingH, paymentH, cfg.JWTSecret)

    // The consumer keeps its own reconnect loop; it never brings the
    // API down when the broker is unavailable.
    go func() {
        if err := queue.StartBookingConsumer(); err != nil {
            log.Printf("booking-consumer stopped: %v", err)
        }
    }()

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)

    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
