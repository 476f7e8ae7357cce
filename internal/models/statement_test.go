package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// StatementTestSuite is the test suite for statement parsing and sanitation
type StatementTestSuite struct {
	suite.Suite
}

// TestStatementTestSuite runs the test suite
func TestStatementTestSuite(t *testing.T) {
	suite.Run(t, new(StatementTestSuite))
}

// TestCleanDate tests date recovery from the known upstream formats
func (s *StatementTestSuite) TestCleanDate() {
	testCases := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{"ISO date", "2024-03-15", "2024-03-15", true},
		{"ISO timestamp", "2024-03-15T10:30:00Z", "2024-03-15", true},
		{"ISO with surrounding text", "VALUE DATE: 2024-03-15 POSTED", "2024-03-15", true},
		{"day-first slashes", "15/03/2024", "2024-03-15", true},
		{"day-first dashes", "15-03-2024", "2024-03-15", true},
		{"year-first slashes", "2024/03/15", "2024-03-15", true},
		{"year-first dots", "2024.03.15", "2024-03-15", true},
		{"whitespace padding", "  2024-03-15  ", "2024-03-15", true},
		{"impossible calendar date", "2024-13-45", "", false},
		{"free text", "pending", "", false},
		{"empty", "", "", false},
		{"blank", "   ", "", false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			got, ok := CleanDate(tc.input)
			assert.Equal(s.T(), tc.ok, ok)
			assert.Equal(s.T(), tc.expected, got)
		})
	}
}

// TestStatementTransaction_UnmarshalFlexibleAmounts tests that amounts survive
// the formats upstream processors emit
func (s *StatementTestSuite) TestStatementTransaction_UnmarshalFlexibleAmounts() {
	testCases := []struct {
		name     string
		payload  string
		expected string
	}{
		{"plain number", `{"date":"2024-01-05","description":"X","credit":1234.56}`, "1234.56"},
		{"numeric string", `{"date":"2024-01-05","description":"X","credit":"1234.56"}`, "1234.56"},
		{"comma grouped", `{"date":"2024-01-05","description":"X","credit":"1,234.56"}`, "1234.56"},
		{"accounting negative", `{"date":"2024-01-05","description":"X","credit":"(1,234.56)"}`, "-1234.56"},
		{"null", `{"date":"2024-01-05","description":"X","credit":null}`, "0"},
		{"missing", `{"date":"2024-01-05","description":"X"}`, "0"},
		{"empty string", `{"date":"2024-01-05","description":"X","credit":""}`, "0"},
		{"garbage string", `{"date":"2024-01-05","description":"X","credit":"N/A"}`, "0"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			var txn StatementTransaction
			err := json.Unmarshal([]byte(tc.payload), &txn)
			require.NoError(s.T(), err)

			expected, err := decimal.NewFromString(tc.expected)
			require.NoError(s.T(), err)
			s.True(txn.Credit.Equal(expected), "got %s, want %s", txn.Credit, expected)
		})
	}
}

// TestMonthlyBalance_UnmarshalAlternateKeys tests the highest_intraday and
// lowest_intraday aliases
func (s *StatementTestSuite) TestMonthlyBalance_UnmarshalAlternateKeys() {
	payload := `{
		"month": "2024-02",
		"transaction_count": 14,
		"total_debit": "8,000.00",
		"total_credit": 12000,
		"ending_balance": 30000,
		"highest_intraday": 42000,
		"lowest_intraday": 18000
	}`

	var m MonthlyBalance
	err := json.Unmarshal([]byte(payload), &m)
	require.NoError(s.T(), err)

	assert.Equal(s.T(), "2024-02", m.Month)
	assert.Equal(s.T(), 14, m.TransactionCount)
	s.True(m.TotalDebit.Equal(decimal.NewFromInt(8000)))
	s.True(m.HighestBalance.Equal(decimal.NewFromInt(42000)))
	s.True(m.LowestBalance.Equal(decimal.NewFromInt(18000)))
}

// TestMonthlyBalance_NetChangeComputedWhenAbsent tests the net_change fallback
func (s *StatementTestSuite) TestMonthlyBalance_NetChangeComputedWhenAbsent() {
	payload := `{
		"month": "2024-02",
		"total_debit": 8000,
		"total_credit": 12000,
		"ending_balance": 30000
	}`

	var m MonthlyBalance
	err := json.Unmarshal([]byte(payload), &m)
	require.NoError(s.T(), err)

	s.True(m.NetChange.Equal(decimal.NewFromInt(4000)))
	// Absent high/low fall back to the ending balance
	s.True(m.HighestBalance.Equal(decimal.NewFromInt(30000)))
	s.True(m.LowestBalance.Equal(decimal.NewFromInt(30000)))
}

// TestSanitize_DropsUnusableRows tests that rows without a date or
// description are removed and counted
func (s *StatementTestSuite) TestSanitize_DropsUnusableRows() {
	stmt := &AccountStatement{
		Transactions: []StatementTransaction{
			{Date: "2024-01-10", Description: "IBG CREDIT CUSTOMER A", Credit: decimal.NewFromInt(5000), Balance: decimal.NewFromInt(5000)},
			{Date: "garbage", Description: "UNPARSEABLE", Credit: decimal.NewFromInt(100)},
			{Date: "2024-01-12", Description: "   ", Debit: decimal.NewFromInt(200)},
			{Date: "2024-01-11", Description: "IBG PAYMENT SUPPLIER B", Debit: decimal.NewFromInt(2000), Balance: decimal.NewFromInt(3000)},
		},
	}

	dropped, err := stmt.Sanitize()
	require.NoError(s.T(), err)

	assert.Equal(s.T(), 2, dropped)
	require.Len(s.T(), stmt.Transactions, 2)
	assert.Equal(s.T(), "2024-01-10", stmt.Transactions[0].Date)
	assert.Equal(s.T(), "2024-01-11", stmt.Transactions[1].Date)
}

// TestSanitize_OrdersByDateThenDescription tests the canonical row ordering
func (s *StatementTestSuite) TestSanitize_OrdersByDateThenDescription() {
	stmt := &AccountStatement{
		Transactions: []StatementTransaction{
			{Date: "2024-01-10", Description: "ZEBRA PAYMENT", Debit: decimal.NewFromInt(10)},
			{Date: "2024-01-09", Description: "LATE ROW", Credit: decimal.NewFromInt(10)},
			{Date: "2024-01-10", Description: "ALPHA PAYMENT", Debit: decimal.NewFromInt(10)},
		},
	}

	_, err := stmt.Sanitize()
	require.NoError(s.T(), err)

	require.Len(s.T(), stmt.Transactions, 3)
	assert.Equal(s.T(), "LATE ROW", stmt.Transactions[0].Description)
	assert.Equal(s.T(), "ALPHA PAYMENT", stmt.Transactions[1].Description)
	assert.Equal(s.T(), "ZEBRA PAYMENT", stmt.Transactions[2].Description)
}

// TestSanitize_NormalizesRowDates tests that kept rows end up with ISO dates
func (s *StatementTestSuite) TestSanitize_NormalizesRowDates() {
	stmt := &AccountStatement{
		Transactions: []StatementTransaction{
			{Date: "15/01/2024", Description: "DAY FIRST ROW", Credit: decimal.NewFromInt(100)},
		},
	}

	_, err := stmt.Sanitize()
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "2024-01-15", stmt.Transactions[0].Date)
}

// TestSanitize_RebuildsSummary tests date range and count reconstruction
func (s *StatementTestSuite) TestSanitize_RebuildsSummary() {
	stmt := &AccountStatement{
		Transactions: []StatementTransaction{
			{Date: "2024-02-20", Description: "SECOND", Credit: decimal.NewFromInt(50)},
			{Date: "2024-01-05", Description: "FIRST", Credit: decimal.NewFromInt(50)},
		},
	}

	_, err := stmt.Sanitize()
	require.NoError(s.T(), err)

	assert.Equal(s.T(), "2024-01-05 to 2024-02-20", stmt.Summary.DateRange)
	assert.Equal(s.T(), 2, stmt.Summary.TotalTransactions)

	start, end := stmt.PeriodBounds()
	assert.Equal(s.T(), "2024-01-05", start)
	assert.Equal(s.T(), "2024-02-20", end)
}

// TestSanitize_KeepsProvidedSummary tests that an upstream summary survives
func (s *StatementTestSuite) TestSanitize_KeepsProvidedSummary() {
	stmt := &AccountStatement{
		Summary: StatementSummary{
			TotalTransactions: 99,
			DateRange:         "2024-01-01 to 2024-03-31",
		},
		Transactions: []StatementTransaction{
			{Date: "2024-01-05", Description: "ONLY ROW", Credit: decimal.NewFromInt(50)},
		},
	}

	_, err := stmt.Sanitize()
	require.NoError(s.T(), err)

	assert.Equal(s.T(), "2024-01-01 to 2024-03-31", stmt.Summary.DateRange)
	assert.Equal(s.T(), 99, stmt.Summary.TotalTransactions)
}

// TestSanitize_RebuildsMonthlySummary tests aggregate reconstruction from rows
func (s *StatementTestSuite) TestSanitize_RebuildsMonthlySummary() {
	stmt := &AccountStatement{
		Transactions: []StatementTransaction{
			{Date: "2024-01-05", Description: "CREDIT A", Credit: decimal.NewFromInt(1000), Balance: decimal.NewFromInt(11000)},
			{Date: "2024-01-20", Description: "DEBIT A", Debit: decimal.NewFromInt(400), Balance: decimal.NewFromInt(10600)},
			{Date: "2024-02-03", Description: "CREDIT B", Credit: decimal.NewFromInt(2000), Balance: decimal.NewFromInt(12600)},
		},
	}

	_, err := stmt.Sanitize()
	require.NoError(s.T(), err)

	require.Len(s.T(), stmt.MonthlySummary, 2)

	jan := stmt.MonthlySummary[0]
	assert.Equal(s.T(), "2024-01", jan.Month)
	assert.Equal(s.T(), 2, jan.TransactionCount)
	s.True(jan.TotalCredit.Equal(decimal.NewFromInt(1000)))
	s.True(jan.TotalDebit.Equal(decimal.NewFromInt(400)))
	s.True(jan.EndingBalance.Equal(decimal.NewFromInt(10600)))
	s.True(jan.HighestBalance.Equal(decimal.NewFromInt(11000)))
	s.True(jan.LowestBalance.Equal(decimal.NewFromInt(10600)))
	s.True(jan.NetChange.Equal(decimal.NewFromInt(600)))

	feb := stmt.MonthlySummary[1]
	assert.Equal(s.T(), "2024-02", feb.Month)
	assert.Equal(s.T(), 1, feb.TransactionCount)
}

// TestSanitize_DropsMalformedMonthKeys tests that bad month rows are discarded
func (s *StatementTestSuite) TestSanitize_DropsMalformedMonthKeys() {
	stmt := &AccountStatement{
		MonthlySummary: []MonthlyBalance{
			{Month: "2024-01", TransactionCount: 3},
			{Month: "January 2024", TransactionCount: 4},
		},
		Transactions: []StatementTransaction{
			{Date: "2024-01-05", Description: "ROW", Credit: decimal.NewFromInt(50)},
		},
	}

	_, err := stmt.Sanitize()
	require.NoError(s.T(), err)

	require.Len(s.T(), stmt.MonthlySummary, 1)
	assert.Equal(s.T(), "2024-01", stmt.MonthlySummary[0].Month)
}

// TestSanitize_NoUsableTransactions tests the empty-statement error
func (s *StatementTestSuite) TestSanitize_NoUsableTransactions() {
	stmt := &AccountStatement{
		Transactions: []StatementTransaction{
			{Date: "not-a-date", Description: "ROW", Credit: decimal.NewFromInt(50)},
			{Date: "2024-01-05", Description: "", Credit: decimal.NewFromInt(50)},
		},
	}

	dropped, err := stmt.Sanitize()
	require.ErrorIs(s.T(), err, ErrNoUsableTransactions)
	assert.Equal(s.T(), 2, dropped)
}

// TestParsedDate tests calendar parsing of a raw row date
func (s *StatementTestSuite) TestParsedDate() {
	txn := &StatementTransaction{Date: "15/03/2024"}
	parsed, ok := txn.ParsedDate()
	require.True(s.T(), ok)
	assert.Equal(s.T(), 2024, parsed.Year())
	assert.Equal(s.T(), 3, int(parsed.Month()))
	assert.Equal(s.T(), 15, parsed.Day())

	bad := &StatementTransaction{Date: "soon"}
	_, ok = bad.ParsedDate()
	assert.False(s.T(), ok)
}

// TestStatementSummary_MalformedIsNonFatal tests that a summary of the wrong
// shape does not fail the statement bind
func (s *StatementTestSuite) TestStatementSummary_MalformedIsNonFatal() {
	payload := `{
		"summary": "not an object",
		"transactions": [
			{"date": "2024-01-05", "description": "ROW", "credit": 100}
		]
	}`

	var stmt AccountStatement
	err := json.Unmarshal([]byte(payload), &stmt)
	require.NoError(s.T(), err)
	require.Len(s.T(), stmt.Transactions, 1)
}
