package services

import (
	"time"

	"github.com/M1doriya/Analysis-PRO/internal/models"

	"github.com/shopspring/decimal"
)

// AnalysisServiceInterface runs the complete statement analysis: sanitation,
// pooling, missing-bank detection, transfer matching, classification,
// aggregation, and report assembly. The run is synchronous and in-memory;
// callers wrap timeouts externally.
type AnalysisServiceInterface interface {
	Analyze(input *models.AnalysisInput) (*AnalysisResult, error)
}

// TransactionPoolServiceInterface merges per-account statements into one
// canonically ordered transaction pool.
type TransactionPoolServiceInterface interface {
	// Build flattens every statement into a single pool sorted by
	// (date, -amount, description) and assigns pool positions.
	Build(input *models.AnalysisInput) ([]models.Transaction, error)

	// Partition splits the pool into credit and debit views, each sorted by
	// (date, -side amount, description). The views alias the pool.
	Partition(pool []models.Transaction) (credits, debits []*models.Transaction)
}

// BankDetectorServiceInterface finds references to banks whose statements
// were not supplied.
type BankDetectorServiceInterface interface {
	DetectMissing(pool []models.Transaction, providedCodes []string) models.MissingBankSummary
}

// TransferMatcherServiceInterface pairs credits with debits across accounts
// within the configured amount and date tolerance.
type TransferMatcherServiceInterface interface {
	Match(credits, debits []*models.Transaction, consumed *models.ConsumedSet, companyKeywords []string) []models.MatchedTransfer
}

// ClassificationServiceInterface assigns a category to every transaction the
// matcher left unconsumed, in strict priority order per flow direction.
type ClassificationServiceInterface interface {
	Classify(credits, debits []*models.Transaction, consumed *models.ConsumedSet, missing models.MissingBankSummary, companyKeywords []string, parties []models.RelatedPartyPattern) *ClassificationResult
}

// StatementMetricsServiceInterface derives balance and pattern metrics from
// sanitized statements.
type StatementMetricsServiceInterface interface {
	// BuildAccountReports produces the per-account report sections with
	// monthly balance profiles, ordered by account id.
	BuildAccountReports(input *models.AnalysisInput) []models.AccountReport

	// OverallVolatility computes the swing index across the highest and
	// lowest intraday balances of all account months.
	OverallVolatility(accounts []models.AccountReport) (float64, string)

	// Volatility computes the swing-over-average index for one high/low pair.
	Volatility(high, low decimal.Decimal) (float64, string)

	// IsRoundFigure reports whether a credit amount sits on the configured
	// round-figure grid.
	IsRoundFigure(amount decimal.Decimal) bool

	// RecurringStatus grades statutory coverage for one payment type.
	RecurringStatus(foundCount, expectedCount int) string
}

// IntegrityServiceInterface evaluates the weighted integrity checklist.
type IntegrityServiceInterface interface {
	Evaluate(signals IntegritySignals) models.IntegrityScore
}

// ReportBuilderServiceInterface assembles the final report from the pool,
// the classification buckets, and the account metrics.
type ReportBuilderServiceInterface interface {
	Build(params ReportParams) *models.AnalysisReport
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

// StatementGeneratorServiceInterface produces synthetic statement bundles for
// demos and fixtures. A fixed seed and end month yield the same bundle.
type StatementGeneratorServiceInterface interface {
	GenerateInput(opts GeneratorOptions) (*models.AnalysisInput, error)
}
