package main

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/court-reservation/internal/config"
    "github.com/iliyamo/court-reservation/internal/database"
    "github.com/iliyamo/court-reservation/internal/handler"
    "github.com/iliyamo/court-reservation/internal/mailer"
    "github.com/iliyamo/court-reservation/internal/middleware"
    "github.com/iliyamo/court-reservation/internal/paymongo"
    "github.com/iliyamo/court-reservation/internal/queue"
    "github.com/iliyamo/court-reservation/internal/repository"
    "github.com/iliyamo/court-reservation/internal/router"
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

    // Redis is optional infrastructure: nil disables caching and rate
    // limiting instead of failing startup.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Println("redis unavailable; cache and rate limiting disabled")
    }

    courts := repository.NewCourtRepo(db)
    equipment := repository.NewEquipmentRepo(db)
    reservations := repository.NewReservationRepo(db)
    payments := repository.NewPaymentRepo(db)
    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)
    suggestions := repository.NewSuggestionRepo(db)

    gateway := paymongo.NewClient(cfg.PayMongoSecretKey)
    mail := mailer.New(cfg)

    rec := &handler.Reconciler{
        Courts:       courts,
        Reservations: reservations,
        Payments:     payments,
        Users:        users,
        Mail:         mail,
    }

    authH := handler.NewAuthHandler(cfg, users, tokens)
    catalogH := handler.NewCatalogHandler(courts, equipment)
    reservationH := handler.NewReservationHandler(courts, equipment, reservations, gateway, rec)
    paymentH := handler.NewPaymentHandler(gateway)
    webhookH := handler.NewWebhookHandler(cfg, gateway, rec)
    suggestionH := handler.NewSuggestionHandler(suggestions, repository.NewMemorySuggestionStore())

    e := echo.New()
    e.HideBanner = true

    e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

    router.RegisterRoutes(e)
    router.RegisterAuth(e, authH, cfg.JWTSecret)
    router.RegisterCatalog(e, catalogH, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
    router.RegisterReservations(e, reservationH, cfg.JWTSecret)
    router.RegisterPayments(e, paymentH, cfg.JWTSecret)
    router.RegisterWebhooks(e, webhookH)
    router.RegisterSuggestions(e, suggestionH, cfg.JWTSecret)

    // Background consumer writes confirmed-reservation lines to
    // logs/reservation.log; it reconnects on broker failures.
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
