package summary

import (
	"context"

	"github.com/DraganJovanovic96/FinanceTracker/internal/transactions"
)

// Summary is the aggregated income/expense/balance view for one user.
type Summary struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	Balance      float64 `json:"balance"`
}

// Service computes summaries from the transaction store. Read-only.
type Service struct {
	store transactions.Store
}

func NewService(store transactions.Store) *Service {
	return &Service{store: store}
}

// ForUser sums the user's non-deleted INCOME and EXPENSE transactions and
// returns the totals and their difference. Sums start at zero and accumulate
// in store order; no rounding beyond native float64 semantics.
func (s *Service) ForUser(ctx context.Context, userID string) (Summary, error) {
	incomes, err := s.store.FindByTypeAndUser(ctx, transactions.TypeIncome, userID)
	if err != nil {
		return Summary{}, err
	}
	expenses, err := s.store.FindByTypeAndUser(ctx, transactions.TypeExpense, userID)
	if err != nil {
		return Summary{}, err
	}

	var totalIncome, totalExpense float64
	for _, t := range incomes {
		totalIncome += t.Amount
	}
	for _, t := range expenses {
		totalExpense += t.Amount
	}

	return Summary{
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
		Balance:      totalIncome - totalExpense,
	}, nil
}
