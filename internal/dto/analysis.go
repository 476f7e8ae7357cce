package dto

import (
	"github.com/M1doriya/Analysis-PRO/internal/models"
)

// AnalyzeRequest represents the full statement bundle submitted for analysis.
// Statement payloads bind leniently; structural validation happens here and
// semantic sanitation inside the engine.
type AnalyzeRequest struct {
	CompanyName       string                              `json:"company_name" validate:"required,min=1,max=200"`
	CompanyKeywords   []string                            `json:"company_keywords" validate:"omitempty,dive,min=1,max=100"`
	RelatedParties    []RelatedPartyRequest               `json:"related_parties" validate:"omitempty,dive"`
	ProvidedBankCodes []string                            `json:"provided_bank_codes" validate:"omitempty,dive,bank_code"`
	Accounts          map[string]AccountMeta              `json:"accounts" validate:"omitempty,dive"`
	Statements        map[string]*models.AccountStatement `json:"statements" validate:"required,min=1"`
}

// RelatedPartyRequest identifies one configured related party
type RelatedPartyRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	Relationship string `json:"relationship" validate:"omitempty,max=100"`
}

// AccountMeta carries caller-supplied metadata for one statement account
type AccountMeta struct {
	BankName       string `json:"bank_name" validate:"omitempty,max=100"`
	AccountNumber  string `json:"account_number" validate:"omitempty,account_number"`
	AccountHolder  string `json:"account_holder" validate:"omitempty,max=200"`
	AccountType    string `json:"account_type" validate:"omitempty,max=50"`
	Classification string `json:"classification" validate:"omitempty,account_classification"`
}

// ToAnalysisInput converts the request into the engine input
func (r *AnalyzeRequest) ToAnalysisInput() *models.AnalysisInput {
	parties := make([]models.RelatedParty, 0, len(r.RelatedParties))
	for _, rp := range r.RelatedParties {
		parties = append(parties, models.RelatedParty{
			Name:         rp.Name,
			Relationship: rp.Relationship,
		})
	}

	accounts := make(map[string]models.AccountInfo, len(r.Accounts))
	for id, meta := range r.Accounts {
		accounts[id] = models.AccountInfo{
			BankName:       meta.BankName,
			AccountNumber:  meta.AccountNumber,
			AccountHolder:  meta.AccountHolder,
			AccountType:    meta.AccountType,
			Classification: meta.Classification,
		}
	}

	return &models.AnalysisInput{
		CompanyName:       r.CompanyName,
		CompanyKeywords:   r.CompanyKeywords,
		RelatedParties:    parties,
		ProvidedBankCodes: r.ProvidedBankCodes,
		Accounts:          accounts,
		Statements:        r.Statements,
	}
}

// AnalyzeResponse represents the response after a completed analysis
type AnalyzeResponse struct {
	Message             string                 `json:"message"`
	DroppedTransactions int                    `json:"dropped_transactions"`
	Report              *models.AnalysisReport `json:"report"`
}
