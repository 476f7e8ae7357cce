package models

// Account classifications describing how an account participates in the
// entity's cash flow.
const (
	ClassificationPrimary    = "PRIMARY"
	ClassificationSecondary  = "SECONDARY"
	ClassificationEscrow     = "ESCROW"
	ClassificationOperating  = "OPERATING"
	ClassificationCollection = "COLLECTION"
)

// AccountInfo is the static caller-supplied metadata for one statement
// account. It is constructed once per run and read-only thereafter.
type AccountInfo struct {
	BankName       string `json:"bank_name"`
	AccountNumber  string `json:"account_number"`
	AccountHolder  string `json:"account_holder"`
	AccountType    string `json:"account_type"`
	Classification string `json:"classification"`
}

// IsValidClassification checks if the classification is a known value.
func IsValidClassification(classification string) bool {
	switch classification {
	case ClassificationPrimary, ClassificationSecondary, ClassificationEscrow,
		ClassificationOperating, ClassificationCollection:
		return true
	default:
		return false
	}
}

// AllClassifications returns the known classification values.
func AllClassifications() []string {
	return []string{
		ClassificationPrimary,
		ClassificationSecondary,
		ClassificationEscrow,
		ClassificationOperating,
		ClassificationCollection,
	}
}
