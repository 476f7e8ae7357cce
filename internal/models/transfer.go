package models

import "github.com/shopspring/decimal"

// TransferVerificationUnverified marks transfers inferred from descriptions
// referencing banks with no statement supplied.
const TransferVerificationUnverified = "UNVERIFIED"

// MatchedTransfer pairs a credit on one account with a debit on another
// account inside the matcher's amount and date tolerance. Amount is the
// credit-side figure; the positional indices refer to the canonical pool
// order. Never mutated after creation.
type MatchedTransfer struct {
	Date              string          `json:"date"`
	Amount            decimal.Decimal `json:"amount"`
	FromAccount       string          `json:"from_account"`
	ToAccount         string          `json:"to_account"`
	CreditDescription string          `json:"credit_description"`
	DebitDescription  string          `json:"debit_description"`
	CreditIndex       int             `json:"credit_idx"`
	DebitIndex        int             `json:"debit_idx"`
}

// UnverifiedTransfer is a one-sided inter-account movement whose counter
// statement was not supplied, recognized from a missing bank code together
// with an inter-account marker or the entity's own name.
type UnverifiedTransfer struct {
	Date               string          `json:"date"`
	Account            string          `json:"account"`
	Side               string          `json:"type"`
	Amount             decimal.Decimal `json:"amount"`
	Description        string          `json:"description"`
	TargetBank         string          `json:"target_bank"`
	VerificationStatus string          `json:"verification_status"`
}
