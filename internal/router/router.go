package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DraganJovanovic96/FinanceTracker/internal/auth"
	"github.com/DraganJovanovic96/FinanceTracker/internal/reports"
	"github.com/DraganJovanovic96/FinanceTracker/internal/summary"
	"github.com/DraganJovanovic96/FinanceTracker/internal/transactions"
)

type Router struct {
	AuthHandler    *auth.Handler
	TxHandler      *transactions.Handler
	SummaryHandler *summary.Handler
	ReportsHandler *reports.Handler
	AuthMW         fiber.Handler
}

// RegisterRoutes wires all API routes. Permission gates sit at the route
// boundary so handlers and services stay policy-free; the transactions
// static route segments (all-transactions, statement) must register before
// the parameterized delete route.
func (r *Router) RegisterRoutes(app *fiber.App) {
	authLimiter := RateLimitAuth()
	writeLimiter := RateLimitWrite()

	app.Post("/api/v1/auth/register", authLimiter, r.AuthHandler.Register)
	app.Post("/api/v1/auth/authenticate", authLimiter, r.AuthHandler.Authenticate)
	app.Post("/api/v1/auth/refresh-token", authLimiter, r.AuthHandler.RefreshToken)

	app.Get("/api/v1/summary", r.AuthMW, r.SummaryHandler.GetSummary)

	app.Get("/api/v1/transactions/all-transactions", r.AuthMW,
		auth.RequirePermission(auth.PermAdminRead), r.TxHandler.ListAll)
	app.Get("/api/v1/transactions/statement", r.AuthMW, r.ReportsHandler.StatementPDF)
	app.Get("/api/v1/transactions", r.AuthMW, r.TxHandler.ListMine)
	app.Post("/api/v1/transactions", r.AuthMW, writeLimiter,
		auth.RequirePermission(auth.PermUserCreate, auth.PermAdminCreate), r.TxHandler.Create)
	app.Put("/api/v1/transactions", r.AuthMW, writeLimiter, r.TxHandler.Update)
	app.Delete("/api/v1/transactions/:transactionId", r.AuthMW, writeLimiter, r.TxHandler.Delete)
}
