package services

import (
	"testing"

	"github.com/M1doriya/Analysis-PRO/internal/models"

	"github.com/stretchr/testify/suite"
)

// AnalysisServiceTestSuite defines the end-to-end test suite for the full
// pipeline behind the recorder seam
type AnalysisServiceTestSuite struct {
	suite.Suite
	service AnalysisServiceInterface
}

// SetupTest runs before each test
func (s *AnalysisServiceTestSuite) SetupTest() {
	cfg := testEngineConfig()
	metrics := NewStatementMetricsService(cfg)
	integrity := NewIntegrityService(cfg, metrics)
	s.service = NewAnalysisService(
		cfg,
		NewTransactionPoolService(),
		NewBankDetectorService(),
		NewTransferMatcherService(cfg),
		NewClassificationService(cfg),
		metrics,
		NewReportBuilderService(cfg, metrics, integrity),
		NewNoopMetricsRecorder(),
	)
}

// TestAnalysisServiceSuite runs the test suite
func TestAnalysisServiceSuite(t *testing.T) {
	suite.Run(t, new(AnalysisServiceTestSuite))
}

func analysisInput() *models.AnalysisInput {
	return &models.AnalysisInput{
		CompanyName:    "Delta Manufacturing Sdn Bhd",
		RelatedParties: []models.RelatedParty{{Name: "Aman Jaya Trading Sdn Bhd", Relationship: "Sister company"}},
		Accounts: map[string]models.AccountInfo{
			"CIMB_MAIN": {BankName: "CIMB Bank", Classification: models.ClassificationPrimary},
			"HLB_OPS":   {BankName: "Hong Leong Bank", Classification: models.ClassificationOperating},
		},
		Statements: map[string]*models.AccountStatement{
			"CIMB_MAIN": {
				Transactions: []models.StatementTransaction{
					{Date: "2024-01-05", Description: "ITB TRF TO HLB OPS", Debit: dec(15000), Balance: dec(85000)},
					{Date: "2024-01-10", Description: "CHEQUE DEPOSIT 100", Credit: dec(20000), Balance: dec(105000)},
					{Date: "2024-01-15", Description: "KWSP CARUMAN JAN", Debit: dec(5200), Balance: dec(99800)},
					{Date: "2024-02-12", Description: "CUSTOMER RECEIPT INV 1", Credit: dec(35500.25), Balance: dec(135300.25)},
					{Date: "2024-02-15", Description: "ITB TRF TO MBB COLLECTIONS", Debit: dec(9000), Balance: dec(126300.25)},
				},
			},
			"HLB_OPS": {
				Transactions: []models.StatementTransaction{
					{Date: "2024-01-05", Description: "ITB TRF FROM CIMB MAIN", Credit: dec(15000), Balance: dec(45000)},
					{Date: "2024-01-20", Description: "TNB BILL JANUARY", Debit: dec(1800), Balance: dec(43200)},
					{Date: "2024-02-28", Description: "VENDOR SETTLEMENT INV 88", Debit: dec(22000), Balance: dec(21200)},
				},
			},
		},
	}
}

// TestAnalyze_FullPipeline tests the wired pipeline end to end
func (s *AnalysisServiceTestSuite) TestAnalyze_FullPipeline() {
	result, err := s.service.Analyze(analysisInput())

	s.Require().NoError(err)
	s.Require().NotNil(result)
	s.Zero(result.DroppedTransactions)

	report := result.Report
	s.Require().NotNil(report)
	s.Equal("Delta Manufacturing Sdn Bhd", report.ReportInfo.CompanyName)
	s.Equal("2024-01-05", report.ReportInfo.PeriodStart)
	s.Equal("2024-02-28", report.ReportInfo.PeriodEnd)
	s.Equal(2, report.ReportInfo.TotalAccounts)
	s.Equal(2, report.ReportInfo.TotalMonths)
	s.NotEmpty(report.ReportInfo.GeneratedAt)

	// The cross-account pair matched, the MBB leg stayed unverified
	s.Equal(1, report.InterAccountTransfers.Summary.MatchedCount)
	s.Equal(1, report.InterAccountTransfers.Summary.UnverifiedCount)
	s.Equal([]string{"MBB"}, report.InterAccountTransfers.Unverified.MissingAccounts)

	s.InDelta(70500.25, report.Consolidated.Gross.TotalCredits, 0.001)
	s.InDelta(53000, report.Consolidated.Gross.TotalDebits, 0.001)

	// Sanitation rebuilt the monthly profiles from running balances
	s.Require().Len(report.Accounts, 2)
	s.Equal("CIMB_MAIN", report.Accounts[0].AccountID)
	s.Require().Len(report.Accounts[0].MonthlySummary, 2)
	s.Equal("2024-01", report.Accounts[0].MonthlySummary[0].Month)
	s.InDelta(105000, report.Accounts[0].MonthlySummary[0].HighestIntraday, 0.001)
	s.InDelta(85000, report.Accounts[0].MonthlySummary[0].LowestIntraday, 0.001)

	s.Len(report.IntegrityScore.Checks, 14)
	s.NotEmpty(report.Observations.Positive)
}

// TestAnalyze_NilInput tests the empty-input sentinel
func (s *AnalysisServiceTestSuite) TestAnalyze_NilInput() {
	result, err := s.service.Analyze(nil)

	s.Require().ErrorIs(err, ErrNoStatements)
	s.Nil(result)
}

// TestAnalyze_NoStatements tests an input without statements
func (s *AnalysisServiceTestSuite) TestAnalyze_NoStatements() {
	result, err := s.service.Analyze(&models.AnalysisInput{CompanyName: "Delta Manufacturing Sdn Bhd"})

	s.Require().ErrorIs(err, ErrNoStatements)
	s.Nil(result)
}

// TestAnalyze_AllRowsUnusable tests statements whose rows all fail sanitation
func (s *AnalysisServiceTestSuite) TestAnalyze_AllRowsUnusable() {
	input := &models.AnalysisInput{
		CompanyName: "Delta Manufacturing Sdn Bhd",
		Statements: map[string]*models.AccountStatement{
			"CIMB_MAIN": {
				Transactions: []models.StatementTransaction{
					{Date: "pending", Description: "NO DATE", Credit: dec(100)},
					{Date: "2024-01-05", Description: "", Credit: dec(200)},
				},
			},
		},
	}

	result, err := s.service.Analyze(input)

	s.Require().ErrorIs(err, ErrEmptyTransactionPool)
	s.Nil(result)
}

// TestAnalyze_ReportsDroppedRows tests that sanitation drops are surfaced
func (s *AnalysisServiceTestSuite) TestAnalyze_ReportsDroppedRows() {
	input := analysisInput()
	stmt := input.Statements["CIMB_MAIN"]
	stmt.Transactions = append(stmt.Transactions,
		models.StatementTransaction{Date: "soon", Description: "UNDATED ROW", Credit: dec(999)},
		models.StatementTransaction{Date: "2024-02-02", Description: "   ", Debit: dec(50)},
	)

	result, err := s.service.Analyze(input)

	s.Require().NoError(err)
	s.Equal(2, result.DroppedTransactions)
	s.InDelta(70500.25, result.Report.Consolidated.Gross.TotalCredits, 0.001)
}

// TestAnalyze_DeterministicApartFromTimestamp tests run-to-run stability
func (s *AnalysisServiceTestSuite) TestAnalyze_DeterministicApartFromTimestamp() {
	first, err := s.service.Analyze(analysisInput())
	s.Require().NoError(err)
	second, err := s.service.Analyze(analysisInput())
	s.Require().NoError(err)

	s.Equal(first.Report.ReportInfo.ReportID, second.Report.ReportInfo.ReportID)

	// Everything except the generation timestamp is identical
	second.Report.ReportInfo.GeneratedAt = first.Report.ReportInfo.GeneratedAt
	s.Equal(first.Report, second.Report)
}

// TestAnalyze_SingleAccountNoTransfers tests a run with nothing to match
func (s *AnalysisServiceTestSuite) TestAnalyze_SingleAccountNoTransfers() {
	input := &models.AnalysisInput{
		CompanyName: "Delta Manufacturing Sdn Bhd",
		Statements: map[string]*models.AccountStatement{
			"CIMB_MAIN": {
				Transactions: []models.StatementTransaction{
					{Date: "2024-03-04", Description: "CUSTOMER RECEIPT INV 7", Credit: dec(12500), Balance: dec(52500)},
					{Date: "2024-03-18", Description: "VENDOR SETTLEMENT INV 12", Debit: dec(4000), Balance: dec(48500)},
				},
			},
		},
	}

	result, err := s.service.Analyze(input)

	s.Require().NoError(err)
	report := result.Report
	s.Zero(report.InterAccountTransfers.Summary.MatchedCount)
	s.Zero(report.InterAccountTransfers.Summary.UnverifiedCount)
	s.Empty(report.ReportInfo.AccountsNotProvided)
	s.Equal(models.CategoryGenuineSales, report.Categories.Credits[0].Category)
	s.Equal(1, report.Categories.Credits[0].Count)
	s.Equal(1, report.Categories.Debits[0].Count)
	s.InDelta(100, report.Categories.Credits[0].Percentage, 0.001)
}
