package services

import (
	"time"

	"github.com/M1doriya/Analysis-PRO/internal/config"
	"github.com/M1doriya/Analysis-PRO/internal/models"

	"github.com/shopspring/decimal"
)

// testEngineConfig returns the production default thresholds.
func testEngineConfig() *config.EngineConfig {
	return &config.EngineConfig{
		AmountTolerance:        decimal.NewFromInt(1),
		DateToleranceDays:      1,
		LargeTransferThreshold: decimal.NewFromInt(50000),
		RoundFigureThreshold:   decimal.NewFromInt(10000),
		RoundFigureWarningPct:  decimal.NewFromInt(40),
		BankChargeCeiling:      decimal.NewFromInt(1000),
		HighValueThreshold:     decimal.NewFromInt(500000),
	}
}

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func mustDate(value string) time.Time {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}
	return t
}

func creditTxn(account, date, desc string, amount float64) models.Transaction {
	return models.Transaction{
		AccountID:   account,
		Date:        mustDate(date),
		Description: desc,
		Credit:      decimal.NewFromFloat(amount),
	}
}

func debitTxn(account, date, desc string, amount float64) models.Transaction {
	return models.Transaction{
		AccountID:   account,
		Date:        mustDate(date),
		Description: desc,
		Debit:       decimal.NewFromFloat(amount),
	}
}

// assemblePool fixes pool positions in the given order and returns the
// partitioned credit and debit views.
func assemblePool(txns ...models.Transaction) ([]models.Transaction, []*models.Transaction, []*models.Transaction) {
	pool := make([]models.Transaction, len(txns))
	copy(pool, txns)
	for i := range pool {
		pool[i].SortedIndex = i
		pool[i].OriginalIndex = i
	}
	credits, debits := NewTransactionPoolService().Partition(pool)
	return pool, credits, debits
}
