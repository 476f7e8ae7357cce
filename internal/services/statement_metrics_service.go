package services

import (
	"time"

	"github.com/M1doriya/Analysis-PRO/internal/config"
	"github.com/M1doriya/Analysis-PRO/internal/models"

	"github.com/shopspring/decimal"
)

const monthKeyLayout = "2006-01"

var (
	roundFigureStep = decimal.NewFromInt(1000)
	oneHundred      = decimal.NewFromInt(100)
	two             = decimal.NewFromInt(2)

	volatilityLowCeiling      = decimal.NewFromInt(50)
	volatilityModerateCeiling = decimal.NewFromInt(100)
	volatilityHighCeiling     = decimal.NewFromInt(200)
)

// round2 converts a decimal to a float rounded to two places, half to even.
func round2(d decimal.Decimal) float64 {
	return d.RoundBank(2).InexactFloat64()
}

func round1(d decimal.Decimal) float64 {
	return d.RoundBank(1).InexactFloat64()
}

type statementMetricsService struct {
	cfg *config.EngineConfig
}

func NewStatementMetricsService(cfg *config.EngineConfig) StatementMetricsServiceInterface {
	return &statementMetricsService{cfg: cfg}
}

// Volatility computes the swing over the midpoint of high and low as a
// percentage. Equal bounds and a zero midpoint both yield a flat LOW
// reading. The level is banded on the raw percentage, the returned index is
// rounded to two places.
func (s *statementMetricsService) Volatility(high, low decimal.Decimal) (float64, string) {
	if high.Equal(low) {
		return 0, models.VolatilityLow
	}

	avg := high.Add(low).Div(two)
	if avg.IsZero() {
		return 0, models.VolatilityLow
	}

	pct := high.Sub(low).Div(avg).Mul(oneHundred)

	level := models.VolatilityExtreme
	switch {
	case pct.LessThanOrEqual(volatilityLowCeiling):
		level = models.VolatilityLow
	case pct.LessThanOrEqual(volatilityModerateCeiling):
		level = models.VolatilityModerate
	case pct.LessThanOrEqual(volatilityHighCeiling):
		level = models.VolatilityHigh
	}

	return round2(pct), level
}

// IsRoundFigure reports whether the amount clears the round-figure threshold
// and sits exactly on the thousand grid.
func (s *statementMetricsService) IsRoundFigure(amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(s.cfg.RoundFigureThreshold) && amount.Mod(roundFigureStep).IsZero()
}

// RecurringStatus grades coverage of a recurring payment type: FOUND needs
// max(4, expected-2) distinct months, PARTIAL needs at least one.
func (s *statementMetricsService) RecurringStatus(foundCount, expectedCount int) string {
	required := expectedCount - 2
	if required < 4 {
		required = 4
	}

	switch {
	case foundCount >= required:
		return models.RecurringFound
	case foundCount >= 1:
		return models.RecurringPartial
	default:
		return models.RecurringNotFound
	}
}

// BuildAccountReports produces one report section per statement, ordered by
// account id. The monthly profile reconstructs each opening balance from the
// closing balance and net change, and grades every month's volatility.
func (s *statementMetricsService) BuildAccountReports(input *models.AnalysisInput) []models.AccountReport {
	reports := make([]models.AccountReport, 0, len(input.Statements))

	for _, accID := range input.AccountIDs() {
		statement := input.Statements[accID]
		if statement == nil {
			continue
		}
		info := input.Accounts[accID]

		monthly := make([]models.MonthlyReport, 0, len(statement.MonthlySummary))
		totalCredits := decimal.Zero
		totalDebits := decimal.Zero

		for i := range statement.MonthlySummary {
			m := &statement.MonthlySummary[i]

			volPct, volLevel := s.Volatility(m.HighestBalance, m.LowestBalance)

			monthly = append(monthly, models.MonthlyReport{
				Month:            m.Month,
				MonthName:        monthDisplayName(m.Month),
				TransactionCount: m.TransactionCount,
				Opening:          round2(m.EndingBalance.Sub(m.NetChange)),
				Closing:          m.EndingBalance.InexactFloat64(),
				Credits:          m.TotalCredit.InexactFloat64(),
				Debits:           m.TotalDebit.InexactFloat64(),
				HighestIntraday:  m.HighestBalance.InexactFloat64(),
				LowestIntraday:   m.LowestBalance.InexactFloat64(),
				AverageIntraday:  round2(m.HighestBalance.Add(m.LowestBalance).Div(two)),
				Swing:            round2(m.HighestBalance.Sub(m.LowestBalance)),
				VolatilityPct:    volPct,
				VolatilityLevel:  volLevel,
			})

			totalCredits = totalCredits.Add(m.TotalCredit)
			totalDebits = totalDebits.Add(m.TotalDebit)
		}

		periodStart, periodEnd := statement.PeriodBounds()

		report := models.AccountReport{
			AccountID:         accID,
			BankName:          info.BankName,
			AccountNumber:     info.AccountNumber,
			AccountHolder:     info.AccountHolder,
			AccountType:       info.AccountType,
			Classification:    info.Classification,
			IsOD:              false,
			ODLimit:           nil,
			PeriodStart:       periodStart,
			PeriodEnd:         periodEnd,
			TotalCredits:      round2(totalCredits),
			TotalDebits:       round2(totalDebits),
			TransactionVolume: round2(totalCredits.Add(totalDebits)),
			TransactionCount:  statement.Summary.TotalTransactions,
			MonthlySummary:    monthly,
		}
		if len(monthly) > 0 {
			report.OpeningBalance = monthly[0].Opening
			report.ClosingBalance = monthly[len(monthly)-1].Closing
		}

		reports = append(reports, report)
	}

	return reports
}

// OverallVolatility grades the widest spread seen across every account
// month: the single highest intraday balance against the single lowest.
func (s *statementMetricsService) OverallVolatility(accounts []models.AccountReport) (float64, string) {
	var (
		high, low decimal.Decimal
		seen      bool
	)

	for i := range accounts {
		for j := range accounts[i].MonthlySummary {
			m := &accounts[i].MonthlySummary[j]
			monthHigh := decimal.NewFromFloat(m.HighestIntraday)
			monthLow := decimal.NewFromFloat(m.LowestIntraday)

			if !seen {
				high, low = monthHigh, monthLow
				seen = true
				continue
			}
			if monthHigh.GreaterThan(high) {
				high = monthHigh
			}
			if monthLow.LessThan(low) {
				low = monthLow
			}
		}
	}

	if !seen {
		return 0, models.VolatilityLow
	}

	return s.Volatility(high, low)
}

func monthDisplayName(monthKey string) string {
	t, err := time.Parse(monthKeyLayout, monthKey)
	if err != nil {
		return monthKey
	}
	return t.Format("January 2006")
}
