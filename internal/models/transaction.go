package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction side labels used in transfer and related-party detail sections.
const (
	TransactionSideCredit = "CREDIT"
	TransactionSideDebit  = "DEBIT"
)

// Transaction is one ledger entry on one account after pool admission. Debit
// and credit are non-negative; rows where both are zero never enter the pool.
// SortedIndex is assigned once by the canonical pool sort and is the handle
// used for consumed-set bookkeeping everywhere downstream.
type Transaction struct {
	AccountID   string          `json:"account_id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`

	Category            Category `json:"category,omitempty"`
	ExcludeFromTurnover bool     `json:"exclude_from_turnover"`

	IsRelatedParty           bool   `json:"is_related_party"`
	RelatedPartyName         string `json:"related_party_name,omitempty"`
	RelatedPartyRelationship string `json:"related_party_relationship,omitempty"`
	PurposeNote              string `json:"purpose_note,omitempty"`

	OriginalIndex int `json:"original_index"`
	SortedIndex   int `json:"sorted_index"`
}

// TotalAmount returns debit + credit, the magnitude used by the canonical
// pool ordering.
func (t *Transaction) TotalAmount() decimal.Decimal {
	return t.Debit.Add(t.Credit)
}

// IsCredit reports whether the credit side is positive.
func (t *Transaction) IsCredit() bool {
	return t.Credit.IsPositive()
}

// IsDebit reports whether the debit side is positive.
func (t *Transaction) IsDebit() bool {
	return t.Debit.IsPositive()
}

// SideAmount returns the credit amount for credit entries, otherwise the
// debit amount.
func (t *Transaction) SideAmount() decimal.Decimal {
	if t.IsCredit() {
		return t.Credit
	}
	return t.Debit
}

// Side returns the CREDIT/DEBIT label for detail sections.
func (t *Transaction) Side() string {
	if t.IsCredit() {
		return TransactionSideCredit
	}
	return TransactionSideDebit
}

// DateString returns the ISO calendar date.
func (t *Transaction) DateString() string {
	return t.Date.Format(time.DateOnly)
}

// MonthKey returns the YYYY-MM month bucket of the transaction date.
func (t *Transaction) MonthKey() string {
	return t.Date.Format("2006-01")
}

// DescriptionUpper returns the case-folded description used by every keyword
// and marker comparison.
func (t *Transaction) DescriptionUpper() string {
	return strings.ToUpper(t.Description)
}

// Categorize assigns the category and the derived turnover exclusion flag.
func (t *Transaction) Categorize(c Category) {
	t.Category = c
	t.ExcludeFromTurnover = c.ExcludedFromTurnover()
}

// ConsumedSet tracks the sorted-index values already assigned a category
// during one analysis run. Every classification stage checks membership
// before acting and records its own assignments, which makes double
// classification impossible. The set is discarded with the run.
type ConsumedSet struct {
	indices map[int]struct{}
}

// NewConsumedSet returns an empty consumed set.
func NewConsumedSet() *ConsumedSet {
	return &ConsumedSet{indices: make(map[int]struct{})}
}

// Has reports whether the sorted index was already consumed.
func (s *ConsumedSet) Has(sortedIndex int) bool {
	_, ok := s.indices[sortedIndex]
	return ok
}

// Add marks the sorted index as consumed.
func (s *ConsumedSet) Add(sortedIndex int) {
	s.indices[sortedIndex] = struct{}{}
}

// Len returns the number of consumed transactions.
func (s *ConsumedSet) Len() int {
	return len(s.indices)
}
