package services

import "strings"

// bankCode pairs a detection token with the bank's display name. Scan order
// is fixed so occurrence counts are reproducible; several tokens may map to
// the same bank and a description can match more than one token.
type bankCode struct {
	code string
	name string
}

var bankCodes = []bankCode{
	{"AMFB", "AmBank"},
	{"AMB", "AmBank"},
	{"AMBANK", "AmBank"},
	{"BIMB", "Bank Islam"},
	{"BANK ISLAM", "Bank Islam"},
	{"MBB", "Maybank"},
	{"MAYBANK", "Maybank"},
	{"RHB", "RHB Bank"},
	{"PBB", "Public Bank"},
	{"PUBLIC BANK", "Public Bank"},
	{"OCBC", "OCBC Bank"},
	{"HSBC", "HSBC Bank"},
	{"UOB", "UOB Bank"},
	{"AFFIN", "Affin Bank"},
	{"BSN", "BSN"},
	{"CITI", "Citibank"},
	{"SCB", "Standard Chartered"},
}

// defaultProvidedBankCodes covers the statement sources this engine was
// tuned for; callers override the set per run.
var defaultProvidedBankCodes = []string{
	"CIMB", "CIMBKL", "CIMB14", "CIMB9", "CIMBSEK",
	"HLB", "HLBB", "BMMB", "MUAMALAT",
}

var interAccountMarkers = []string{
	"ITB TRF", "ITC TRF", "INTERBANK", "INTER ACC", "OWN ACC",
	"INTERCO TXN", "INTER-CO", "INTRA ACC", "SELF TRF",
	"TR FROM CA", "TR TO C/A",
}

// statutoryType groups the detection keywords for one Malaysian statutory
// agency. Types are checked in declaration order and the first keyword hit
// decides the type.
type statutoryType struct {
	name     string
	keywords []string
}

var statutoryTypes = []statutoryType{
	{"EPF/KWSP", []string{"KUMPULAN WANG SIMPANAN PEKERJA", "KWSP", "EPF", "EMPLOYEES PROVIDENT"}},
	{"SOCSO/PERKESO", []string{"PERTUBUHAN KESELAMATAN SOSIAL", "PERKESO", "SOCSO", "SOCIAL SECURITY"}},
	{"LHDN/Tax", []string{"LEMBAGA HASIL DALAM NEGERI", "LHDN", "PCB", "MTD", "CP39", "CP38", "INCOME TAX"}},
	{"HRDF/PSMB", []string{"PEMBANGUNAN SUMBER MANUSIA", "HRDF", "PSMB", "HRD CORP"}},
}

var salaryKeywords = []string{
	"SALARY", "GAJI", "PAYROLL", "WAGES", "ALLOWANCE", "ELAUN",
	"BONUS", "COMMISSION", "INCENTIVE", "EPF EMPLOYER", "STAFF CLAIM",
	"OVERTIME", "OT CLAIM",
}

var utilityKeywords = []string{
	"TNB", "TENAGA NASIONAL", "TENAGA",
	"SYABAS", "AIR SELANGOR", "PENGURUSAN AIR", "SAINS", "SAJ", "SAJH",
	"TELEKOM", "TM NET", "UNIFI", "STREAMYX",
	"MAXIS", "CELCOM", "DIGI", "U MOBILE", "YES",
	"ASTRO", "TIME DOTCOM", "TIME FIBRE",
	"IWK", "INDAH WATER",
}

var bankChargeKeywords = []string{
	"SERVICE CHARGE", "BANK CHARGE", "AUTOPAY CHARGES", "FEE",
	"COMMISSION", "STAMP DUTY", "DUTI SETEM", "COT",
	"HANDLING CHARGE", "PROCESSING FEE", "ADM CHARGE", "ADMIN FEE",
}

var disbursementKeywords = []string{
	"DISB", "DISBURSEMENT", "LOAN CR", "FINANCING CR", "DRAWDOWN", "FACILITY RELEASE",
}

var interestKeywords = []string{
	"PROFIT PAID", "PROFIT/HIBAH", "HIBAH", "INTEREST", "DIVIDEND", "FAEDAH", "BONUS INTEREST",
}

var reversalKeywords = []string{
	"REVERSAL", "REVERSE", "REV", "CANCELLED", "VOID", "RETURNED", "REJECTED",
}

// containsAny reports whether the uppercased description holds any of the
// given keywords.
func containsAny(descUpper string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(descUpper, kw) {
			return true
		}
	}
	return false
}

func hasInterAccountMarker(descUpper string) bool {
	return containsAny(descUpper, interAccountMarkers)
}

func hasCompanyName(descUpper string, companyKeywords []string) bool {
	return containsAny(descUpper, companyKeywords)
}

// matchStatutoryType returns the statutory type detected in the description,
// or the empty string when none applies.
func matchStatutoryType(descUpper string) string {
	for _, st := range statutoryTypes {
		if containsAny(descUpper, st.keywords) {
			return st.name
		}
	}
	return ""
}

// statutoryTypeNames returns the detection types in check order.
func statutoryTypeNames() []string {
	names := make([]string, 0, len(statutoryTypes))
	for _, st := range statutoryTypes {
		names = append(names, st.name)
	}
	return names
}
