package services

import (
	"testing"

	"github.com/M1doriya/Analysis-PRO/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// TransactionPoolServiceTestSuite defines the test suite for pool building
type TransactionPoolServiceTestSuite struct {
	suite.Suite
	service TransactionPoolServiceInterface
}

// SetupTest runs before each test
func (s *TransactionPoolServiceTestSuite) SetupTest() {
	s.service = NewTransactionPoolService()
}

// TestTransactionPoolServiceSuite runs the test suite
func TestTransactionPoolServiceSuite(t *testing.T) {
	suite.Run(t, new(TransactionPoolServiceTestSuite))
}

func statementWithRows(rows ...models.StatementTransaction) *models.AccountStatement {
	return &models.AccountStatement{Transactions: rows}
}

// TestBuild_CanonicalOrder tests the (date, -amount, description) pool sort
func (s *TransactionPoolServiceTestSuite) TestBuild_CanonicalOrder() {
	input := &models.AnalysisInput{
		Statements: map[string]*models.AccountStatement{
			"CIMB_MAIN": statementWithRows(
				models.StatementTransaction{Date: "2024-01-06", Description: "SMALL LATE", Credit: decimal.NewFromInt(100)},
				models.StatementTransaction{Date: "2024-01-05", Description: "BETA SAME AMOUNT", Credit: decimal.NewFromInt(500)},
				models.StatementTransaction{Date: "2024-01-05", Description: "ALPHA SAME AMOUNT", Credit: decimal.NewFromInt(500)},
				models.StatementTransaction{Date: "2024-01-05", Description: "BIG EARLY", Debit: decimal.NewFromInt(9000)},
			),
		},
	}

	pool, err := s.service.Build(input)
	s.Require().NoError(err)
	s.Require().Len(pool, 4)

	s.Equal("BIG EARLY", pool[0].Description)
	s.Equal("ALPHA SAME AMOUNT", pool[1].Description)
	s.Equal("BETA SAME AMOUNT", pool[2].Description)
	s.Equal("SMALL LATE", pool[3].Description)

	for i := range pool {
		s.Equal(i, pool[i].SortedIndex)
	}
}

// TestBuild_SkipsZeroAmountRows tests that informational rows never enter the pool
func (s *TransactionPoolServiceTestSuite) TestBuild_SkipsZeroAmountRows() {
	input := &models.AnalysisInput{
		Statements: map[string]*models.AccountStatement{
			"CIMB_MAIN": statementWithRows(
				models.StatementTransaction{Date: "2024-01-05", Description: "CLOSING BALANCE", Balance: decimal.NewFromInt(12000)},
				models.StatementTransaction{Date: "2024-01-05", Description: "REAL ROW", Credit: decimal.NewFromInt(100)},
			),
		},
	}

	pool, err := s.service.Build(input)
	s.Require().NoError(err)
	s.Require().Len(pool, 1)
	s.Equal("REAL ROW", pool[0].Description)
}

// TestBuild_SkipsUnparseableDates tests that rows with unusable dates are dropped
func (s *TransactionPoolServiceTestSuite) TestBuild_SkipsUnparseableDates() {
	input := &models.AnalysisInput{
		Statements: map[string]*models.AccountStatement{
			"CIMB_MAIN": statementWithRows(
				models.StatementTransaction{Date: "pending", Description: "BAD DATE", Credit: decimal.NewFromInt(100)},
				models.StatementTransaction{Date: "2024-01-05", Description: "GOOD DATE", Credit: decimal.NewFromInt(100)},
			),
		},
	}

	pool, err := s.service.Build(input)
	s.Require().NoError(err)
	s.Require().Len(pool, 1)
	s.Equal("GOOD DATE", pool[0].Description)
}

// TestBuild_MergesAccountsSorted tests that accounts merge deterministically
func (s *TransactionPoolServiceTestSuite) TestBuild_MergesAccountsSorted() {
	input := &models.AnalysisInput{
		Statements: map[string]*models.AccountStatement{
			"HLB_OPS": statementWithRows(
				models.StatementTransaction{Date: "2024-01-05", Description: "OPS ROW", Debit: decimal.NewFromInt(300)},
			),
			"CIMB_MAIN": statementWithRows(
				models.StatementTransaction{Date: "2024-01-05", Description: "MAIN ROW", Credit: decimal.NewFromInt(300)},
			),
		},
	}

	pool, err := s.service.Build(input)
	s.Require().NoError(err)
	s.Require().Len(pool, 2)

	// Same date and amount: canonical order falls back to description
	s.Equal("MAIN ROW", pool[0].Description)
	s.Equal("CIMB_MAIN", pool[0].AccountID)
	s.Equal("OPS ROW", pool[1].Description)
	s.Equal("HLB_OPS", pool[1].AccountID)
}

// TestBuild_EmptyPool tests the empty-pool sentinel
func (s *TransactionPoolServiceTestSuite) TestBuild_EmptyPool() {
	input := &models.AnalysisInput{
		Statements: map[string]*models.AccountStatement{
			"CIMB_MAIN": statementWithRows(
				models.StatementTransaction{Date: "2024-01-05", Description: "ZERO ROW"},
			),
		},
	}

	_, err := s.service.Build(input)
	s.Require().ErrorIs(err, ErrEmptyTransactionPool)
}

// TestBuild_NilStatementSkipped tests tolerance of a nil statement entry
func (s *TransactionPoolServiceTestSuite) TestBuild_NilStatementSkipped() {
	input := &models.AnalysisInput{
		Statements: map[string]*models.AccountStatement{
			"GONE": nil,
			"CIMB_MAIN": statementWithRows(
				models.StatementTransaction{Date: "2024-01-05", Description: "ROW", Credit: decimal.NewFromInt(10)},
			),
		},
	}

	pool, err := s.service.Build(input)
	s.Require().NoError(err)
	s.Len(pool, 1)
}

// TestPartition_SplitsSides tests the credit/debit views
func (s *TransactionPoolServiceTestSuite) TestPartition_SplitsSides() {
	pool, credits, debits := assemblePool(
		creditTxn("CIMB_MAIN", "2024-01-05", "CREDIT ROW", 1000),
		debitTxn("CIMB_MAIN", "2024-01-06", "DEBIT ROW", 400),
	)

	s.Require().Len(credits, 1)
	s.Require().Len(debits, 1)
	s.Equal("CREDIT ROW", credits[0].Description)
	s.Equal("DEBIT ROW", debits[0].Description)

	// Views alias the pool: categorizing through a view is visible in the pool
	credits[0].Categorize(models.CategoryGenuineSales)
	s.Equal(models.CategoryGenuineSales, pool[0].Category)
}

// TestPartition_RowOnBothSides tests that a row carrying both amounts appears
// in both views
func (s *TransactionPoolServiceTestSuite) TestPartition_RowOnBothSides() {
	both := models.Transaction{
		AccountID:   "CIMB_MAIN",
		Date:        mustDate("2024-01-05"),
		Description: "ADJUSTMENT ROW",
		Credit:      decimal.NewFromInt(50),
		Debit:       decimal.NewFromInt(20),
	}

	_, credits, debits := assemblePool(both)

	s.Require().Len(credits, 1)
	s.Require().Len(debits, 1)
	s.Equal(credits[0], debits[0])
}

// TestPartition_SideOrdering tests (date, -side amount, description) per view
func (s *TransactionPoolServiceTestSuite) TestPartition_SideOrdering() {
	_, credits, _ := assemblePool(
		creditTxn("CIMB_MAIN", "2024-01-05", "SMALL", 100),
		creditTxn("CIMB_MAIN", "2024-01-05", "LARGE", 900),
		creditTxn("CIMB_MAIN", "2024-01-04", "EARLIER", 10),
	)

	s.Require().Len(credits, 3)
	s.Equal("EARLIER", credits[0].Description)
	s.Equal("LARGE", credits[1].Description)
	s.Equal("SMALL", credits[2].Description)
}
