package transactions_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DraganJovanovic96/FinanceTracker/internal/transactions"
	"github.com/DraganJovanovic96/FinanceTracker/internal/transactions/mocks"
)

// newTestApp mirrors the app wiring from cmd/api: same error handler, same
// routes, with the auth middleware replaced by a stub that authenticates
// every request as userID.
func newTestApp(store transactions.Store, userID string) *fiber.App {
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

	asUser := func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		c.Locals("role", "USER")
		return c.Next()
	}

	h := transactions.NewHandler(transactions.NewService(store))
	app.Get("/api/v1/transactions", asUser, h.ListMine)
	app.Post("/api/v1/transactions", asUser, h.Create)
	app.Put("/api/v1/transactions", asUser, h.Update)
	app.Delete("/api/v1/transactions/:transactionId", asUser, h.Delete)
	return app
}

func postJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()

	buf, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp.StatusCode, decoded
}

func TestHandler_Create_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	valid := map[string]any{
		"transactionType": "INCOME",
		"amount":          550.5,
		"description":     "Salary",
		"user":            map[string]any{"id": userA},
	}

	tests := []struct {
		name    string
		mutate  func(m map[string]any)
		wantMsg string
	}{
		{
			name:    "amount zero",
			mutate:  func(m map[string]any) { m["amount"] = 0 },
			wantMsg: "Amount must be greater than 0",
		},
		{
			name:    "amount negative",
			mutate:  func(m map[string]any) { m["amount"] = -10.5 },
			wantMsg: "Amount must be greater than 0",
		},
		{
			name:    "empty description",
			mutate:  func(m map[string]any) { m["description"] = "  " },
			wantMsg: "Description must not be empty",
		},
		{
			name:    "invalid type",
			mutate:  func(m map[string]any) { m["transactionType"] = "TRANSFER" },
			wantMsg: "Transaction type must be either INCOME or EXPENSE",
		},
		{
			name:    "missing user",
			mutate:  func(m map[string]any) { delete(m, "user") },
			wantMsg: "User must not be null",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockStore(ctrl)
			// no store expectation: validation must reject before any write
			app := newTestApp(store, userA)

			body := make(map[string]any, len(valid))
			for k, v := range valid {
				body[k] = v
			}
			tt.mutate(body)

			status, decoded := postJSON(t, app, fiber.MethodPost, "/api/v1/transactions", body)
			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.Equal(t, tt.wantMsg, decoded["error"])
		})
	}
}

func TestHandler_Create_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2024, 3, 2, 9, 30, 0, 0, time.UTC)

	store := mocks.NewMockStore(ctrl)
	store.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, txn *transactions.Transaction) error {
			txn.ID = txnID
			txn.CreatedAt = now
			txn.UpdatedAt = now
			return nil
		})

	app := newTestApp(store, userA)
	status, decoded := postJSON(t, app, fiber.MethodPost, "/api/v1/transactions", map[string]any{
		"transactionType": "EXPENSE",
		"amount":          100.0,
		"description":     "Groceries",
		"user":            map[string]any{"id": userA},
	})

	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, txnID, decoded["id"])
	assert.Equal(t, "EXPENSE", decoded["transactionType"])
	assert.Equal(t, 100.0, decoded["amount"])
	assert.Equal(t, false, decoded["deleted"])

	user, ok := decoded["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, userA, user["id"])
}

func TestHandler_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("owner delete answers 204 with empty body", func(t *testing.T) {
		txn := fixtureTxn(txnID, userA, transactions.TypeIncome, 550.5)

		store := mocks.NewMockStore(ctrl)
		store.EXPECT().FindByID(gomock.Any(), txnID).Return(&txn, nil)
		store.EXPECT().SoftDelete(gomock.Any(), txnID).Return(nil)

		app := newTestApp(store, userA)
		status, _ := postJSON(t, app, fiber.MethodDelete, "/api/v1/transactions/"+txnID, nil)
		assert.Equal(t, fiber.StatusNoContent, status)
	})

	t.Run("second delete answers 404 already deleted", func(t *testing.T) {
		txn := fixtureTxn(txnID, userA, transactions.TypeIncome, 550.5)
		txn.Deleted = true

		store := mocks.NewMockStore(ctrl)
		store.EXPECT().FindByID(gomock.Any(), txnID).Return(&txn, nil)

		app := newTestApp(store, userA)
		status, decoded := postJSON(t, app, fiber.MethodDelete, "/api/v1/transactions/"+txnID, nil)
		assert.Equal(t, fiber.StatusNotFound, status)
		assert.Equal(t, "Transaction is already deleted", decoded["error"])
	})

	t.Run("foreign owner answers 403 regardless of role", func(t *testing.T) {
		txn := fixtureTxn(txnID, userB, transactions.TypeIncome, 550.5)

		store := mocks.NewMockStore(ctrl)
		store.EXPECT().FindByID(gomock.Any(), txnID).Return(&txn, nil)

		app := newTestApp(store, userA)
		status, decoded := postJSON(t, app, fiber.MethodDelete, "/api/v1/transactions/"+txnID, nil)
		assert.Equal(t, fiber.StatusForbidden, status)
		assert.Equal(t, "Transaction doesn't belong to the user", decoded["error"])
	})

	t.Run("malformed id answers 404 without touching the store", func(t *testing.T) {
		store := mocks.NewMockStore(ctrl)

		app := newTestApp(store, userA)
		status, decoded := postJSON(t, app, fiber.MethodDelete, "/api/v1/transactions/not-a-uuid", nil)
		assert.Equal(t, fiber.StatusNotFound, status)
		assert.Equal(t, "Transaction is not found", decoded["error"])
	})
}

func TestHandler_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("non-positive amount answers 403", func(t *testing.T) {
		txn := fixtureTxn(txnID, userA, transactions.TypeIncome, 550.5)

		store := mocks.NewMockStore(ctrl)
		store.EXPECT().FindByID(gomock.Any(), txnID).Return(&txn, nil)

		app := newTestApp(store, userA)
		status, decoded := postJSON(t, app, fiber.MethodPut, "/api/v1/transactions", map[string]any{
			"id":              txnID,
			"transactionType": "INCOME",
			"amount":          0,
			"description":     "x",
		})
		assert.Equal(t, fiber.StatusForbidden, status)
		assert.Equal(t, "Amount must be positive number", decoded["error"])
	})

	t.Run("non-owner update is allowed", func(t *testing.T) {
		// update has no ownership check, unlike delete
		txn := fixtureTxn(txnID, userB, transactions.TypeIncome, 550.5)

		store := mocks.NewMockStore(ctrl)
		store.EXPECT().FindByID(gomock.Any(), txnID).Return(&txn, nil)
		store.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		app := newTestApp(store, userA)
		status, decoded := postJSON(t, app, fiber.MethodPut, "/api/v1/transactions", map[string]any{
			"id":              txnID,
			"transactionType": "EXPENSE",
			"amount":          42.0,
			"description":     "Groceries",
		})
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "EXPENSE", decoded["transactionType"])
		assert.Equal(t, 42.0, decoded["amount"])
	})

	t.Run("invalid type answers 400", func(t *testing.T) {
		store := mocks.NewMockStore(ctrl)

		app := newTestApp(store, userA)
		status, decoded := postJSON(t, app, fiber.MethodPut, "/api/v1/transactions", map[string]any{
			"id":              txnID,
			"transactionType": "TRANSFER",
			"amount":          42.0,
			"description":     "Groceries",
		})
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "Transaction type must be either INCOME or EXPENSE", decoded["error"])
	})
}

func TestHandler_ListMine_TypeFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockStore(ctrl)
	store.EXPECT().FindByUser(gomock.Any(), userA).Return([]transactions.Transaction{
		fixtureTxn("a", userA, transactions.TypeIncome, 550.5),
	}, nil)

	app := newTestApp(store, userA)
	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/transactions?type=FOO", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var decoded []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	assert.Len(t, decoded, 1)
}
