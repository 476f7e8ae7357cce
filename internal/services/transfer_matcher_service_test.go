package services

import (
	"testing"

	"github.com/M1doriya/Analysis-PRO/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// TransferMatcherServiceTestSuite defines the test suite for transfer matching
type TransferMatcherServiceTestSuite struct {
	suite.Suite
	service TransferMatcherServiceInterface
}

// SetupTest runs before each test
func (s *TransferMatcherServiceTestSuite) SetupTest() {
	s.service = NewTransferMatcherService(testEngineConfig())
}

// TestTransferMatcherServiceSuite runs the test suite
func TestTransferMatcherServiceSuite(t *testing.T) {
	suite.Run(t, new(TransferMatcherServiceTestSuite))
}

// TestMatch_MarkerPair tests the basic marker-driven pair
func (s *TransferMatcherServiceTestSuite) TestMatch_MarkerPair() {
	pool, credits, debits := assemblePool(
		debitTxn("CIMB_MAIN", "2024-01-05", "ITB TRF TO HLB OPS", 20000),
		creditTxn("HLB_OPS", "2024-01-05", "ITB TRF FROM CIMB MAIN", 20000),
	)
	consumed := models.NewConsumedSet()

	matched := s.service.Match(credits, debits, consumed, nil)

	s.Require().Len(matched, 1)
	m := matched[0]
	s.Equal("2024-01-05", m.Date)
	s.True(m.Amount.Equal(decimal.NewFromInt(20000)))
	s.Equal("CIMB_MAIN", m.FromAccount)
	s.Equal("HLB_OPS", m.ToAccount)
	s.Equal("ITB TRF FROM CIMB MAIN", m.CreditDescription)
	s.Equal("ITB TRF TO HLB OPS", m.DebitDescription)
	s.Equal(1, m.CreditIndex)
	s.Equal(0, m.DebitIndex)

	s.Equal(models.CategoryInterAccountTransfer, pool[0].Category)
	s.Equal(models.CategoryInterAccountTransfer, pool[1].Category)
	s.True(consumed.Has(0))
	s.True(consumed.Has(1))
}

// TestMatch_AmountToleranceBoundary tests that a one-unit gap still matches
// and a larger gap does not
func (s *TransferMatcherServiceTestSuite) TestMatch_AmountToleranceBoundary() {
	_, credits, debits := assemblePool(
		debitTxn("CIMB_MAIN", "2024-01-05", "ITB TRF TO HLB", 20001),
		creditTxn("HLB_OPS", "2024-01-05", "ITB TRF FROM CIMB", 20000),
	)
	matched := s.service.Match(credits, debits, models.NewConsumedSet(), nil)
	s.Len(matched, 1)

	_, credits, debits = assemblePool(
		debitTxn("CIMB_MAIN", "2024-01-05", "ITB TRF TO HLB", 20002),
		creditTxn("HLB_OPS", "2024-01-05", "ITB TRF FROM CIMB", 20000),
	)
	matched = s.service.Match(credits, debits, models.NewConsumedSet(), nil)
	s.Empty(matched)
}

// TestMatch_DateToleranceBoundary tests the one-day window
func (s *TransferMatcherServiceTestSuite) TestMatch_DateToleranceBoundary() {
	_, credits, debits := assemblePool(
		debitTxn("CIMB_MAIN", "2024-01-05", "ITB TRF TO HLB", 15000),
		creditTxn("HLB_OPS", "2024-01-06", "ITB TRF FROM CIMB", 15000),
	)
	matched := s.service.Match(credits, debits, models.NewConsumedSet(), nil)
	s.Len(matched, 1)

	_, credits, debits = assemblePool(
		debitTxn("CIMB_MAIN", "2024-01-05", "ITB TRF TO HLB", 15000),
		creditTxn("HLB_OPS", "2024-01-07", "ITB TRF FROM CIMB", 15000),
	)
	matched = s.service.Match(credits, debits, models.NewConsumedSet(), nil)
	s.Empty(matched)
}

// TestMatch_SameAccountRejected tests that both legs must differ by account
func (s *TransferMatcherServiceTestSuite) TestMatch_SameAccountRejected() {
	_, credits, debits := assemblePool(
		debitTxn("CIMB_MAIN", "2024-01-05", "ITB TRF OUT", 15000),
		creditTxn("CIMB_MAIN", "2024-01-05", "ITB TRF IN", 15000),
	)

	matched := s.service.Match(credits, debits, models.NewConsumedSet(), nil)

	s.Empty(matched)
}

// TestMatch_CompanyNamePair tests matching driven by the company's own name
// instead of a transfer marker
func (s *TransferMatcherServiceTestSuite) TestMatch_CompanyNamePair() {
	_, credits, debits := assemblePool(
		debitTxn("CIMB_MAIN", "2024-01-05", "TRSF DELTA MANUFACTURING SDN BHD", 8000),
		creditTxn("HLB_OPS", "2024-01-05", "INCOMING FUNDS", 8000),
	)

	matched := s.service.Match(credits, debits, models.NewConsumedSet(), []string{"DELTA MANUFACTURING SDN BHD"})

	s.Require().Len(matched, 1)
	s.Equal("CIMB_MAIN", matched[0].FromAccount)
}

// TestMatch_LargeAmountOverride tests the threshold that waives the marker
// requirement
func (s *TransferMatcherServiceTestSuite) TestMatch_LargeAmountOverride() {
	_, credits, debits := assemblePool(
		debitTxn("CIMB_MAIN", "2024-01-05", "OUTGOING FUNDS", 50000),
		creditTxn("HLB_OPS", "2024-01-05", "INCOMING FUNDS", 50000),
	)
	matched := s.service.Match(credits, debits, models.NewConsumedSet(), nil)
	s.Len(matched, 1)

	_, credits, debits = assemblePool(
		debitTxn("CIMB_MAIN", "2024-01-05", "OUTGOING FUNDS", 49999),
		creditTxn("HLB_OPS", "2024-01-05", "INCOMING FUNDS", 49999),
	)
	matched = s.service.Match(credits, debits, models.NewConsumedSet(), nil)
	s.Empty(matched)
}

// TestMatch_FirstMatchWins tests that a credit pairs with the first eligible
// debit in view order and later candidates stay free
func (s *TransferMatcherServiceTestSuite) TestMatch_FirstMatchWins() {
	_, credits, debits := assemblePool(
		debitTxn("CIMB_MAIN", "2024-01-04", "ITB TRF TO HLB ALPHA", 15000),
		debitTxn("AMB_FD", "2024-01-05", "ITB TRF TO HLB BETA", 15000),
		creditTxn("HLB_OPS", "2024-01-05", "ITB TRF FROM OWN ACC", 15000),
	)

	matched := s.service.Match(credits, debits, models.NewConsumedSet(), nil)

	// Debit view order: 2024-01-04 first, so ALPHA wins
	s.Require().Len(matched, 1)
	s.Equal("CIMB_MAIN", matched[0].FromAccount)
	s.Equal("ITB TRF TO HLB ALPHA", matched[0].DebitDescription)
}

// TestMatch_ConsumedDebitSkipped tests that a consumed debit cannot pair twice
func (s *TransferMatcherServiceTestSuite) TestMatch_ConsumedDebitSkipped() {
	_, credits, debits := assemblePool(
		debitTxn("CIMB_MAIN", "2024-01-05", "ITB TRF TO HLB", 15000),
		creditTxn("HLB_OPS", "2024-01-05", "ITB TRF FROM CIMB ONE", 15000),
		creditTxn("AMB_FD", "2024-01-05", "ITB TRF FROM CIMB TWO", 15000),
	)

	matched := s.service.Match(credits, debits, models.NewConsumedSet(), nil)

	// Single debit leg: only one of the two credits can pair with it
	s.Len(matched, 1)
}

// TestMatch_ConsumedCreditSkipped tests that pre-consumed credits are ignored
func (s *TransferMatcherServiceTestSuite) TestMatch_ConsumedCreditSkipped() {
	_, credits, debits := assemblePool(
		debitTxn("CIMB_MAIN", "2024-01-05", "ITB TRF TO HLB", 15000),
		creditTxn("HLB_OPS", "2024-01-05", "ITB TRF FROM CIMB", 15000),
	)
	consumed := models.NewConsumedSet()
	consumed.Add(credits[0].SortedIndex)

	matched := s.service.Match(credits, debits, consumed, nil)

	s.Empty(matched)
}

// TestMatch_NoEligiblePairs tests an all-miss pool
func (s *TransferMatcherServiceTestSuite) TestMatch_NoEligiblePairs() {
	_, credits, debits := assemblePool(
		debitTxn("CIMB_MAIN", "2024-01-05", "SUPPLIER PAYMENT", 4000),
		creditTxn("HLB_OPS", "2024-01-20", "CUSTOMER RECEIPT", 9000),
	)

	matched := s.service.Match(credits, debits, models.NewConsumedSet(), nil)

	s.Empty(matched)
	s.Len(matched, 0)
}
