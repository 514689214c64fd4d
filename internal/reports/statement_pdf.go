package reports

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/phpdave11/gofpdf"

	"github.com/DraganJovanovic96/FinanceTracker/internal/transactions"
)

// Handler renders PDF statements from the transaction store.
type Handler struct {
	Store transactions.Store
}

func NewHandler(store transactions.Store) *Handler {
	return &Handler{Store: store}
}

// StatementPDF handles GET /api/v1/transactions/statement. It renders the
// caller's non-deleted transactions as a PDF with an income/expense/balance
// header, newest rows last (store order).
func (h *Handler) StatementPDF(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	items, err := h.Store.FindByUser(userContext(c), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed statement: "+err.Error())
	}

	var totalIncome, totalExpense float64
	for _, t := range items {
		switch t.TransactionType {
		case transactions.TypeIncome:
			totalIncome += t.Amount
		case transactions.TypeExpense:
			totalExpense += t.Amount
		}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Finance Tracker Statement", false)
	pdf.SetMargins(14, 14, 14)
	pdf.AddPage()

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Finance Tracker Statement")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.Cell(0, 6, "User: "+maskID(userID))
	pdf.Ln(10)

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(248, 248, 248)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 11)

	sumW := []float64{62, 62, 62}
	pdf.CellFormat(sumW[0], 10, "Income", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[1], 10, "Expense", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[2], 10, "Balance", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(sumW[0], 10, formatAmount(totalIncome), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[1], 10, formatAmount(totalExpense), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[2], 10, formatAmount(totalIncome-totalExpense), "1", 1, "C", false, 0, "")
	pdf.Ln(6)

	colW := []float64{24, 30, 88, 28, 20}
	writeRowHeader(pdf, colW)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(30, 30, 30)

	for _, t := range items {
		if pdf.GetY() > 270 {
			pdf.AddPage()
			writeRowHeader(pdf, colW)
			pdf.SetFont("Helvetica", "", 9)
		}

		amt := formatAmount(t.Amount)
		if t.TransactionType == transactions.TypeExpense {
			amt = "-" + amt
		}

		pdf.CellFormat(colW[0], 8, string(t.TransactionType), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[1], 8, t.CreatedAt.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[2], 8, trimTo(t.Description, 86), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[3], 8, amt, "1", 0, "R", false, 0, "")
		pdf.CellFormat(colW[4], 8, shortID(t.ID), "1", 1, "C", false, 0, "")
	}

	pdf.SetY(-18)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 10, "Generated "+time.Now().Format(time.RFC3339), "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "pdf build failed: "+err.Error())
	}

	filename := "transactions-statement-" + time.Now().Format("2006-01-02") + ".pdf"
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

func writeRowHeader(pdf *gofpdf.Fpdf, colW []float64) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(245, 245, 245)
	pdf.CellFormat(colW[0], 8, "TYPE", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colW[1], 8, "DATE", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colW[2], 8, "DESCRIPTION", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colW[3], 8, "AMOUNT", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colW[4], 8, "ID", "1", 1, "C", true, 0, "")
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func shortID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func maskID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) <= 8 {
		return id
	}
	return id[:4] + ".." + id[len(id)-4:]
}

func trimTo(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max-2] + ".."
}

func currentUserID(c *fiber.Ctx) (string, bool) {
	if v := c.Locals("user_id"); v != nil {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return s, true
		}
	}
	return "", false
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
