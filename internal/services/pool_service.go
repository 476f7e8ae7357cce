package services

import (
	"errors"
	"log/slog"
	"sort"

	"github.com/M1doriya/Analysis-PRO/internal/models"
)

var (
	ErrEmptyTransactionPool = errors.New("no transactions with a non-zero amount in any statement")
)

type transactionPoolService struct{}

func NewTransactionPoolService() TransactionPoolServiceInterface {
	return &transactionPoolService{}
}

// Build flattens the statements into one pool. Accounts are visited in
// sorted id order, zero-amount rows (closing balance entries and the like)
// are skipped, and the pool is stable-sorted by date, then larger amounts
// first, then description. Pool positions are assigned after the sort and
// stay fixed for the rest of the run.
func (s *transactionPoolService) Build(input *models.AnalysisInput) ([]models.Transaction, error) {
	pool := make([]models.Transaction, 0, 256)
	idx := 0

	for _, accID := range input.AccountIDs() {
		statement := input.Statements[accID]
		if statement == nil {
			continue
		}

		for i := range statement.Transactions {
			raw := &statement.Transactions[i]

			if raw.Credit.IsZero() && raw.Debit.IsZero() {
				continue
			}

			date, ok := raw.ParsedDate()
			if !ok {
				continue
			}

			pool = append(pool, models.Transaction{
				AccountID:     accID,
				Date:          date,
				Description:   raw.Description,
				Debit:         raw.Debit,
				Credit:        raw.Credit,
				Balance:       raw.Balance,
				OriginalIndex: idx,
			})
			idx++
		}
	}

	if len(pool) == 0 {
		return nil, ErrEmptyTransactionPool
	}

	sort.SliceStable(pool, func(i, j int) bool {
		a, b := &pool[i], &pool[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		am, bm := a.TotalAmount(), b.TotalAmount()
		if !am.Equal(bm) {
			return am.GreaterThan(bm)
		}
		return a.Description < b.Description
	})

	for i := range pool {
		pool[i].SortedIndex = i
	}

	slog.Info("transaction pool built",
		"accounts", len(input.Statements),
		"transactions", len(pool))

	return pool, nil
}

// Partition splits the pool into credit and debit views. A row carrying both
// a credit and a debit appears in both views. Each view is stable-sorted by
// date, then larger side amounts first, then description; the elements point
// into the pool so category assignments are shared.
func (s *transactionPoolService) Partition(pool []models.Transaction) ([]*models.Transaction, []*models.Transaction) {
	credits := make([]*models.Transaction, 0, len(pool))
	debits := make([]*models.Transaction, 0, len(pool))

	for i := range pool {
		txn := &pool[i]
		if txn.Credit.IsPositive() {
			credits = append(credits, txn)
		}
		if txn.Debit.IsPositive() {
			debits = append(debits, txn)
		}
	}

	sort.SliceStable(credits, func(i, j int) bool {
		a, b := credits[i], credits[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if !a.Credit.Equal(b.Credit) {
			return a.Credit.GreaterThan(b.Credit)
		}
		return a.Description < b.Description
	})

	sort.SliceStable(debits, func(i, j int) bool {
		a, b := debits[i], debits[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if !a.Debit.Equal(b.Debit) {
			return a.Debit.GreaterThan(b.Debit)
		}
		return a.Description < b.Description
	})

	return credits, debits
}
