package models

import (
	"sort"
	"strings"
)

// AnalysisInput is the fully assembled request for one analysis run: the
// entity being analyzed, its known related parties, and one sanitized
// statement per account.
type AnalysisInput struct {
	CompanyName       string
	CompanyKeywords   []string
	RelatedParties    []RelatedParty
	ProvidedBankCodes []string
	Accounts          map[string]AccountInfo
	Statements        map[string]*AccountStatement
}

// Normalize uppercases the keyword and bank-code lists in place. An empty
// keyword list falls back to the company name itself so self-transfers are
// still recognizable.
func (in *AnalysisInput) Normalize() {
	if len(in.CompanyKeywords) == 0 && in.CompanyName != "" {
		in.CompanyKeywords = []string{in.CompanyName}
	}
	for i, kw := range in.CompanyKeywords {
		in.CompanyKeywords[i] = strings.ToUpper(strings.TrimSpace(kw))
	}
	for i, code := range in.ProvidedBankCodes {
		in.ProvidedBankCodes[i] = strings.ToUpper(strings.TrimSpace(code))
	}
}

// AccountIDs returns the statement account identifiers in sorted order so
// every pass over the accounts is reproducible.
func (in *AnalysisInput) AccountIDs() []string {
	ids := make([]string, 0, len(in.Statements))
	for id := range in.Statements {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// MissingBankSummary captures references to banks that appear in transaction
// descriptions but have no statement in the input. Counts is keyed by the
// display label ("CODE (Bank Name)"); Codes holds the bare codes sorted
// ascending.
type MissingBankSummary struct {
	Counts map[string]int
	Codes  []string
}

// HasMissing reports whether at least one unprovided bank was referenced.
func (m MissingBankSummary) HasMissing() bool {
	return len(m.Codes) > 0
}

// FirstCodeIn returns the first missing bank code contained in the given
// uppercased description, or the empty string when none matches.
func (m MissingBankSummary) FirstCodeIn(descUpper string) string {
	for _, code := range m.Codes {
		if strings.Contains(descUpper, code) {
			return code
		}
	}
	return ""
}
