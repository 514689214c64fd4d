package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DraganJovanovic96/FinanceTracker/internal/auth"
	"github.com/DraganJovanovic96/FinanceTracker/internal/reports"
	"github.com/DraganJovanovic96/FinanceTracker/internal/router"
	"github.com/DraganJovanovic96/FinanceTracker/internal/summary"
	"github.com/DraganJovanovic96/FinanceTracker/internal/transactions"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	secret := auth.MustSecretFromEnv()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("error creating pgx pool: %v", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("error pinging database: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "internal server error"

			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
				message = fiberErr.Message
			}

			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})

	app.Use(router.CorsMiddleware())
	app.Use(requestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	issuer := auth.NewTokenIssuer(secret)
	userStore := auth.NewPostgresStore(pool)
	authHandler := &auth.Handler{Store: userStore, Issuer: issuer}

	txStore := transactions.NewPostgresStore(pool)
	txService := transactions.NewService(txStore)
	txHandler := transactions.NewHandler(txService)

	summaryService := summary.NewService(txStore)
	summaryHandler := summary.NewHandler(summaryService)

	reportsHandler := reports.NewHandler(txStore)

	r := &router.Router{
		AuthHandler:    authHandler,
		TxHandler:      txHandler,
		SummaryHandler: summaryHandler,
		ReportsHandler: reportsHandler,
		AuthMW:         auth.RequireAuth(issuer),
	}
	r.RegisterRoutes(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Listening on port", port)
	log.Fatal(app.Listen(":" + port))
}

func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		log.Printf("%s %s %d %s", c.Method(), c.Path(), status, time.Since(start))
		return err
	}
}
