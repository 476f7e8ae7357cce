package services

import (
	"log/slog"
	"time"

	"github.com/M1doriya/Analysis-PRO/internal/config"
	"github.com/M1doriya/Analysis-PRO/internal/models"
)

type transferMatcherService struct {
	cfg *config.EngineConfig
}

func NewTransferMatcherService(cfg *config.EngineConfig) TransferMatcherServiceInterface {
	return &transferMatcherService{cfg: cfg}
}

// Match walks the credit view in order and pairs each unconsumed credit with
// the first unconsumed debit on a different account that sits within the
// amount and date tolerance and either carries a transfer marker or the
// company's own name on one side, or clears the large-transfer threshold.
// First match wins; both sides are consumed and categorized.
func (s *transferMatcherService) Match(credits, debits []*models.Transaction, consumed *models.ConsumedSet, companyKeywords []string) []models.MatchedTransfer {
	matched := make([]models.MatchedTransfer, 0)

	for _, credit := range credits {
		if consumed.Has(credit.SortedIndex) {
			continue
		}

		for _, debit := range debits {
			if consumed.Has(debit.SortedIndex) {
				continue
			}
			if debit.AccountID == credit.AccountID {
				continue
			}
			if credit.Credit.Sub(debit.Debit).Abs().GreaterThan(s.cfg.AmountTolerance) {
				continue
			}
			if dayDelta(credit.Date, debit.Date) > s.cfg.DateToleranceDays {
				continue
			}

			creditDesc := credit.DescriptionUpper()
			debitDesc := debit.DescriptionUpper()
			hasMarker := hasInterAccountMarker(creditDesc) || hasInterAccountMarker(debitDesc) ||
				hasCompanyName(creditDesc, companyKeywords) || hasCompanyName(debitDesc, companyKeywords)

			if !hasMarker && credit.Credit.LessThan(s.cfg.LargeTransferThreshold) {
				continue
			}

			matched = append(matched, models.MatchedTransfer{
				Date:              credit.DateString(),
				Amount:            credit.Credit,
				FromAccount:       debit.AccountID,
				ToAccount:         credit.AccountID,
				CreditDescription: credit.Description,
				DebitDescription:  debit.Description,
				CreditIndex:       credit.SortedIndex,
				DebitIndex:        debit.SortedIndex,
			})

			credit.Categorize(models.CategoryInterAccountTransfer)
			debit.Categorize(models.CategoryInterAccountTransfer)
			consumed.Add(credit.SortedIndex)
			consumed.Add(debit.SortedIndex)
			break
		}
	}

	slog.Info("inter-account transfer matching complete",
		"matched_pairs", len(matched),
		"credits", len(credits),
		"debits", len(debits))

	return matched
}

// dayDelta returns the absolute whole-day difference between two
// midnight-normalized dates.
func dayDelta(a, b time.Time) int {
	days := int(a.Sub(b).Hours() / 24)
	if days < 0 {
		return -days
	}
	return days
}
