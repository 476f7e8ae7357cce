package models

// Category is a business classification assigned by the analysis pipelines.
// The set is closed: every transaction in a completed analysis carries exactly
// one of these values.
type Category string

const (
	CategoryInterAccountTransfer           Category = "INTER_ACCOUNT_TRANSFER"
	CategoryInterAccountTransferUnverified Category = "INTER_ACCOUNT_TRANSFER_UNVERIFIED"
	CategoryRelatedParty                   Category = "RELATED_PARTY"
	CategoryLoanDisbursement               Category = "LOAN_DISBURSEMENT"
	CategoryInterestProfitDividend         Category = "INTEREST_PROFIT_DIVIDEND"
	CategoryReversal                       Category = "REVERSAL"
	CategoryGenuineSales                   Category = "GENUINE_SALES_COLLECTIONS"
	CategoryStatutoryPayment               Category = "STATUTORY_PAYMENT"
	CategorySalaryWages                    Category = "SALARY_WAGES"
	CategoryUtilities                      Category = "UTILITIES"
	CategoryBankCharges                    Category = "BANK_CHARGES"
	CategorySupplierVendor                 Category = "SUPPLIER_VENDOR_PAYMENTS"
)

// categoryExclusions is the fixed category-to-exclusion table. Internal
// movements and non-operating inflows leave the turnover; statutory, salary,
// utility and bank-charge debits are genuine business costs and stay in.
var categoryExclusions = map[Category]bool{
	CategoryInterAccountTransfer:           true,
	CategoryInterAccountTransferUnverified: true,
	CategoryRelatedParty:                   true,
	CategoryLoanDisbursement:               true,
	CategoryInterestProfitDividend:         true,
	CategoryReversal:                       true,
	CategoryGenuineSales:                   false,
	CategoryStatutoryPayment:               false,
	CategorySalaryWages:                    false,
	CategoryUtilities:                      false,
	CategoryBankCharges:                    false,
	CategorySupplierVendor:                 false,
}

// ExcludedFromTurnover reports whether transactions in this category are
// removed from net business turnover. It is a pure function of the category.
func (c Category) ExcludedFromTurnover() bool {
	return categoryExclusions[c]
}

// Valid checks if the category belongs to the closed set.
func (c Category) Valid() bool {
	_, ok := categoryExclusions[c]
	return ok
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// CreditCategories returns the credit-side categories in report order.
func CreditCategories() []Category {
	return []Category{
		CategoryGenuineSales,
		CategoryInterAccountTransfer,
		CategoryInterAccountTransferUnverified,
		CategoryRelatedParty,
		CategoryLoanDisbursement,
		CategoryInterestProfitDividend,
		CategoryReversal,
	}
}

// DebitCategories returns the debit-side categories in report order.
func DebitCategories() []Category {
	return []Category{
		CategorySupplierVendor,
		CategoryInterAccountTransfer,
		CategoryRelatedParty,
		CategoryStatutoryPayment,
		CategoryInterAccountTransferUnverified,
		CategorySalaryWages,
		CategoryUtilities,
		CategoryBankCharges,
	}
}

// AllCategories returns all valid category constants.
func AllCategories() []Category {
	return []Category{
		CategoryInterAccountTransfer,
		CategoryInterAccountTransferUnverified,
		CategoryRelatedParty,
		CategoryLoanDisbursement,
		CategoryInterestProfitDividend,
		CategoryReversal,
		CategoryGenuineSales,
		CategoryStatutoryPayment,
		CategorySalaryWages,
		CategoryUtilities,
		CategoryBankCharges,
		CategorySupplierVendor,
	}
}
