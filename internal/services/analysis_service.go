package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/M1doriya/Analysis-PRO/internal/config"
	"github.com/M1doriya/Analysis-PRO/internal/models"
)

// ErrNoStatements means the input carried no account statements at all.
var ErrNoStatements = errors.New("no account statements provided")

// AnalysisResult is the outcome of one run: the report plus the sanitation
// drop count, which callers surface in their response message.
type AnalysisResult struct {
	Report              *models.AnalysisReport
	DroppedTransactions int
}

type analysisService struct {
	cfg        *config.EngineConfig
	pool       TransactionPoolServiceInterface
	detector   BankDetectorServiceInterface
	matcher    TransferMatcherServiceInterface
	classifier ClassificationServiceInterface
	metrics    StatementMetricsServiceInterface
	builder    ReportBuilderServiceInterface
	recorder   MetricsRecorderInterface
	now        func() time.Time
	logger     *slog.Logger
}

func NewAnalysisService(
	cfg *config.EngineConfig,
	pool TransactionPoolServiceInterface,
	detector BankDetectorServiceInterface,
	matcher TransferMatcherServiceInterface,
	classifier ClassificationServiceInterface,
	metrics StatementMetricsServiceInterface,
	builder ReportBuilderServiceInterface,
	recorder MetricsRecorderInterface,
) AnalysisServiceInterface {
	return &analysisService{
		cfg:        cfg,
		pool:       pool,
		detector:   detector,
		matcher:    matcher,
		classifier: classifier,
		metrics:    metrics,
		builder:    builder,
		recorder:   recorder,
		now:        time.Now,
		logger:     slog.Default(),
	}
}

// Analyze runs the full pipeline over one input. Statements that lose rows
// during sanitation are kept; statements that lose every row are skipped with
// a warning. The same input always yields the same report apart from
// generated_at.
func (s *analysisService) Analyze(input *models.AnalysisInput) (*AnalysisResult, error) {
	start := time.Now()

	if input == nil || len(input.Statements) == 0 {
		s.recorder.IncrementCounter("analysis.completed", map[string]string{"status": "rejected"})
		return nil, ErrNoStatements
	}

	input.Normalize()

	dropped := 0
	for _, accountID := range input.AccountIDs() {
		stmt := input.Statements[accountID]
		if stmt == nil {
			continue
		}
		n, err := stmt.Sanitize()
		dropped += n
		if err != nil {
			s.logger.Warn("statement has no usable transactions",
				slog.String("account_id", accountID),
				slog.Int("dropped", n))
			continue
		}
		if n > 0 {
			s.logger.Warn("dropped malformed transactions during sanitation",
				slog.String("account_id", accountID),
				slog.Int("dropped", n))
		}
	}

	// The recorder interface only increments; dropped counts stay small.
	for i := 0; i < dropped; i++ {
		s.recorder.IncrementCounter("analysis.dropped_transactions", nil)
	}

	pool, err := s.pool.Build(input)
	if err != nil {
		s.recorder.IncrementCounter("analysis.completed", map[string]string{"status": "failed"})
		return nil, fmt.Errorf("building transaction pool: %w", err)
	}

	missing := s.detector.DetectMissing(pool, input.ProvidedBankCodes)

	credits, debits := s.pool.Partition(pool)

	consumed := models.NewConsumedSet()
	matched := s.matcher.Match(credits, debits, consumed, input.CompanyKeywords)

	parties := models.ExpandRelatedParties(input.RelatedParties)
	classification := s.classifier.Classify(credits, debits, consumed, missing, input.CompanyKeywords, parties)

	accounts := s.metrics.BuildAccountReports(input)

	report := s.builder.Build(ReportParams{
		Input:          input,
		Pool:           pool,
		Missing:        missing,
		Matched:        matched,
		Classification: classification,
		Accounts:       accounts,
		GeneratedAt:    s.now(),
	})

	duration := time.Since(start)
	s.recorder.RecordProcessingTime("analysis.duration", duration)
	s.recorder.IncrementCounter("analysis.completed", map[string]string{"status": "success"})
	s.recorder.RecordGauge("analysis.pool_size", float64(len(pool)), nil)
	s.recorder.RecordGauge("analysis.matched_transfers", float64(len(matched)), nil)
	s.recorder.RecordGauge("analysis.integrity_score", report.IntegrityScore.Score, nil)

	s.logger.Info("analysis completed",
		slog.String("company", input.CompanyName),
		slog.Int("accounts", len(accounts)),
		slog.Int("pool_size", len(pool)),
		slog.Int("matched_transfers", len(matched)),
		slog.Int("dropped_transactions", dropped),
		slog.Float64("integrity_score", report.IntegrityScore.Score),
		slog.Duration("duration", duration))

	return &AnalysisResult{Report: report, DroppedTransactions: dropped}, nil
}
