package models

// SchemaVersion identifies the report layout. Bump only when a field is
// added, removed, or renamed.
const SchemaVersion = "5.2.1"

// Volatility levels derived from the swing-over-average index.
const (
	VolatilityLow      = "LOW"
	VolatilityModerate = "MODERATE"
	VolatilityHigh     = "HIGH"
	VolatilityExtreme  = "EXTREME"
)

// Recurring payment detection statuses.
const (
	RecurringFound    = "FOUND"
	RecurringPartial  = "PARTIAL"
	RecurringNotFound = "NOT_FOUND"
)

// Integrity check statuses.
const (
	CheckStatusPass = "PASS"
	CheckStatusFail = "FAIL"
)

// Integrity check tiers, highest weight first.
const (
	TierCritical   = "CRITICAL"
	TierWarning    = "WARNING"
	TierMonitor    = "MONITOR"
	TierCompliance = "COMPLIANCE"
)

// Integrity score ratings.
const (
	RatingExcellent = "EXCELLENT"
	RatingGood      = "GOOD"
	RatingFair      = "FAIR"
	RatingPoor      = "POOR"
)

// AnalysisReport is the complete serialized result of one analysis run.
// Field order matches the emitted JSON; every slice is allocated even when
// empty so the output never contains null where a list is expected.
type AnalysisReport struct {
	ReportInfo               ReportInfo               `json:"report_info"`
	Accounts                 []AccountReport          `json:"accounts"`
	Consolidated             Consolidated             `json:"consolidated"`
	InterAccountTransfers    InterAccountTransfers    `json:"inter_account_transfers"`
	RelatedPartyTransactions RelatedPartySection      `json:"related_party_transactions"`
	FlaggedForReview         FlaggedForReview         `json:"flagged_for_review"`
	Categories               CategoriesSection        `json:"categories"`
	Counterparties           CounterpartySection      `json:"counterparties"`
	KiteFlying               KiteFlyingSection        `json:"kite_flying"`
	Volatility               VolatilitySection        `json:"volatility"`
	RecurringPayments        RecurringPaymentsSection `json:"recurring_payments"`
	NonBankFinancing         NonBankFinancingSection  `json:"non_bank_financing"`
	Flags                    FlagsSection             `json:"flags"`
	IntegrityScore           IntegrityScore           `json:"integrity_score"`
	Observations             Observations             `json:"observations"`
	Recommendations          []Recommendation         `json:"recommendations"`
}

// ReportInfo identifies the run: who was analyzed, over which period, and
// which referenced accounts were absent from the input. ReportID is
// deterministic for a given company and period; GeneratedAt is the only
// wall-clock field in the report.
type ReportInfo struct {
	ReportID            string         `json:"report_id"`
	SchemaVersion       string         `json:"schema_version"`
	CompanyName         string         `json:"company_name"`
	GeneratedAt         string         `json:"generated_at"`
	PeriodStart         string         `json:"period_start"`
	PeriodEnd           string         `json:"period_end"`
	TotalAccounts       int            `json:"total_accounts"`
	TotalMonths         int            `json:"total_months"`
	RelatedParties      []RelatedParty `json:"related_parties"`
	AccountsNotProvided []string       `json:"accounts_not_provided"`
}

// AccountReport summarizes one statement: identity, period totals, and the
// per-month balance profile.
type AccountReport struct {
	AccountID         string          `json:"account_id"`
	BankName          string          `json:"bank_name"`
	AccountNumber     string          `json:"account_number"`
	AccountHolder     string          `json:"account_holder"`
	AccountType       string          `json:"account_type"`
	Classification    string          `json:"classification"`
	IsOD              bool            `json:"is_od"`
	ODLimit           *float64        `json:"od_limit"`
	PeriodStart       string          `json:"period_start"`
	PeriodEnd         string          `json:"period_end"`
	TotalCredits      float64         `json:"total_credits"`
	TotalDebits       float64         `json:"total_debits"`
	TransactionVolume float64         `json:"transaction_volume"`
	TransactionCount  int             `json:"transaction_count"`
	OpeningBalance    float64         `json:"opening_balance"`
	ClosingBalance    float64         `json:"closing_balance"`
	MonthlySummary    []MonthlyReport `json:"monthly_summary"`
}

// MonthlyReport is one month of an account's balance movement. Opening is
// reconstructed as closing minus net change.
type MonthlyReport struct {
	Month            string  `json:"month"`
	MonthName        string  `json:"month_name"`
	TransactionCount int     `json:"transaction_count"`
	Opening          float64 `json:"opening"`
	Closing          float64 `json:"closing"`
	Credits          float64 `json:"credits"`
	Debits           float64 `json:"debits"`
	HighestIntraday  float64 `json:"highest_intraday"`
	LowestIntraday   float64 `json:"lowest_intraday"`
	AverageIntraday  float64 `json:"average_intraday"`
	Swing            float64 `json:"swing"`
	VolatilityPct    float64 `json:"volatility_pct"`
	VolatilityLevel  string  `json:"volatility_level"`
}

// Consolidated holds the pooled totals: gross flows, business turnover
// after exclusions, the exclusion breakdown, and derived ratios.
type Consolidated struct {
	Gross            GrossTotals     `json:"gross"`
	BusinessTurnover TurnoverTotals  `json:"business_turnover"`
	Exclusions       ExclusionsBlock `json:"exclusions"`
	Ratios           RatioBlock      `json:"ratios"`
}

type GrossTotals struct {
	TotalCredits      float64 `json:"total_credits"`
	TotalDebits       float64 `json:"total_debits"`
	NetFlow           float64 `json:"net_flow"`
	AnnualizedCredits float64 `json:"annualized_credits"`
	AnnualizedDebits  float64 `json:"annualized_debits"`
}

type TurnoverTotals struct {
	NetCredits        float64 `json:"net_credits"`
	NetDebits         float64 `json:"net_debits"`
	NetFlow           float64 `json:"net_flow"`
	AnnualizedCredits float64 `json:"annualized_credits"`
	AnnualizedDebits  float64 `json:"annualized_debits"`
}

type ExclusionsBlock struct {
	Credits CreditExclusions `json:"credits"`
	Debits  DebitExclusions  `json:"debits"`
}

// InterAccountExclusion splits internal movement into statement-matched and
// unverified portions.
type InterAccountExclusion struct {
	Matched    float64 `json:"matched"`
	Unverified float64 `json:"unverified"`
	Total      float64 `json:"total"`
}

type CreditExclusions struct {
	InterAccount       InterAccountExclusion `json:"inter_account"`
	RelatedParty       float64               `json:"related_party"`
	Reversals          float64               `json:"reversals"`
	ReturnedCheque     float64               `json:"returned_cheque"`
	LoanDisbursement   float64               `json:"loan_disbursement"`
	InterestFDDividend float64               `json:"interest_fd_dividend"`
	Total              float64               `json:"total"`
}

type DebitExclusions struct {
	InterAccount   InterAccountExclusion `json:"inter_account"`
	RelatedParty   float64               `json:"related_party"`
	ReturnedCheque float64               `json:"returned_cheque"`
	Total          float64               `json:"total"`
}

type RatioBlock struct {
	IncomeRatio         float64 `json:"income_ratio"`
	InternalMovementPct float64 `json:"internal_movement_pct"`
	AvgMonthlyCredits   float64 `json:"avg_monthly_credits"`
	AvgMonthlyDebits    float64 `json:"avg_monthly_debits"`
}

// InterAccountTransfers reports internal movement between the provided
// accounts and toward accounts that were referenced but not supplied.
type InterAccountTransfers struct {
	DetectionMethod string                  `json:"detection_method"`
	Summary         TransferTotals          `json:"summary"`
	Matched         MatchedTransferBlock    `json:"matched_transfers"`
	Unverified      UnverifiedTransferBlock `json:"unverified_transfers"`
}

type TransferTotals struct {
	MatchedCount     int     `json:"matched_count"`
	MatchedAmount    float64 `json:"matched_amount"`
	UnverifiedCount  int     `json:"unverified_count"`
	UnverifiedAmount float64 `json:"unverified_amount"`
	TotalCount       int     `json:"total_count"`
	TotalAmount      float64 `json:"total_amount"`
}

type MatchedTransferBlock struct {
	Top10 []TransferDetail   `json:"top_10_transfers"`
	All   []TransferMovement `json:"all_transfers"`
}

// TransferDetail is a fully described matched pair, including both side
// descriptions and the pool positions that were consumed.
type TransferDetail struct {
	Date              string  `json:"date"`
	Amount            float64 `json:"amount"`
	FromAccount       string  `json:"from_account"`
	ToAccount         string  `json:"to_account"`
	CreditDescription string  `json:"credit_description"`
	DebitDescription  string  `json:"debit_description"`
	CreditIdx         int     `json:"credit_idx"`
	DebitIdx          int     `json:"debit_idx"`
}

// TransferMovement is the condensed chronological listing of a matched pair.
type TransferMovement struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	FromAccount string  `json:"from_account"`
	ToAccount   string  `json:"to_account"`
}

type UnverifiedTransferBlock struct {
	Note            string                     `json:"note"`
	MissingAccounts []string                   `json:"missing_accounts"`
	Transfers       []UnverifiedTransferDetail `json:"transfers"`
}

type UnverifiedTransferDetail struct {
	Date               string  `json:"date"`
	Account            string  `json:"account"`
	Type               string  `json:"type"`
	Amount             float64 `json:"amount"`
	Description        string  `json:"description"`
	TargetBank         string  `json:"target_bank"`
	VerificationStatus string  `json:"verification_status"`
}

// RelatedPartySection reports flows against configured related parties,
// aggregated per party and itemized for the largest movements.
type RelatedPartySection struct {
	Summary      RelatedPartyTotals   `json:"summary"`
	ByParty      []PartyBreakdown     `json:"by_party"`
	Transactions []RelatedPartyDetail `json:"transactions"`
}

type RelatedPartyTotals struct {
	TotalCredits float64 `json:"total_credits"`
	TotalDebits  float64 `json:"total_debits"`
	NetPosition  float64 `json:"net_position"`
}

type PartyBreakdown struct {
	PartyName        string  `json:"party_name"`
	Relationship     string  `json:"relationship"`
	TotalCredits     float64 `json:"total_credits"`
	TotalDebits      float64 `json:"total_debits"`
	NetPosition      float64 `json:"net_position"`
	TransactionCount int     `json:"transaction_count"`
}

type RelatedPartyDetail struct {
	Date        string  `json:"date"`
	PartyName   string  `json:"party_name"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Account     string  `json:"account"`
	PurposeNote string  `json:"purpose_note"`
}

// FlaggedForReview lists credits that warrant a manual look.
type FlaggedForReview struct {
	Count       int           `json:"count"`
	TotalAmount float64       `json:"total_amount"`
	Top10       []FlaggedItem `json:"top_10_items"`
	All         []FlaggedItem `json:"all_items"`
	Note        string        `json:"note"`
}

type FlaggedItem struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	FlagReason  string  `json:"flag_reason"`
}

// CategoriesSection breaks both flow directions down by category in the
// fixed reporting order.
type CategoriesSection struct {
	Credits []CategoryBreakdown `json:"credits"`
	Debits  []CategoryBreakdown `json:"debits"`
}

type CategoryBreakdown struct {
	Category   Category              `json:"category"`
	Count      int                   `json:"count"`
	Amount     float64               `json:"amount"`
	Percentage float64               `json:"percentage"`
	Top5       []CategoryTransaction `json:"top_5_transactions"`
}

type CategoryTransaction struct {
	Date         string  `json:"date"`
	Description  string  `json:"description"`
	Amount       float64 `json:"amount"`
	Counterparty *string `json:"counterparty"`
}

// CounterpartySection is reserved for named-counterparty aggregation, which
// needs resolver data this engine does not ingest. The shape is emitted so
// consumers bind against a stable schema.
type CounterpartySection struct {
	TopPayers         []CounterpartyEntry `json:"top_payers"`
	TopPayees         []CounterpartyEntry `json:"top_payees"`
	ConcentrationRisk ConcentrationRisk   `json:"concentration_risk"`
	PartiesBothSides  []string            `json:"parties_both_sides"`
}

type CounterpartyEntry struct {
	Name             string  `json:"name"`
	TotalAmount      float64 `json:"total_amount"`
	TransactionCount int     `json:"transaction_count"`
	Percentage       float64 `json:"percentage"`
}

type ConcentrationRisk struct {
	Top1PayerPct float64 `json:"top1_payer_pct"`
	Top3PayerPct float64 `json:"top3_payers_pct"`
	Top1PayeePct float64 `json:"top1_payee_pct"`
	Top3PayeePct float64 `json:"top3_payees_pct"`
	RiskLevel    string  `json:"risk_level"`
}

type KiteFlyingSection struct {
	RiskScore        int      `json:"risk_score"`
	RiskLevel        string   `json:"risk_level"`
	Indicators       []string `json:"indicators"`
	DetailedFindings []string `json:"detailed_findings"`
}

type VolatilitySection struct {
	CalculationMethod string              `json:"calculation_method"`
	OverallIndex      float64             `json:"overall_index"`
	OverallLevel      string              `json:"overall_level"`
	Monthly           []MonthlyVolatility `json:"monthly"`
	Alerts            []string            `json:"alerts"`
}

type MonthlyVolatility struct {
	Month string  `json:"month"`
	Index float64 `json:"index"`
	Level string  `json:"level"`
}

type RecurringPaymentsSection struct {
	PaymentTypes []RecurringPaymentType `json:"payment_types"`
	Alerts       []string               `json:"alerts"`
	Assessment   RecurringAssessment    `json:"assessment"`
}

type RecurringPaymentType struct {
	Type          string   `json:"type"`
	ExpectedCount int      `json:"expected_count"`
	FoundCount    int      `json:"found_count"`
	MissingMonths []string `json:"missing_months"`
	Status        string   `json:"status"`
}

type RecurringAssessment struct {
	StatutoryDetection string `json:"statutory_detection"`
	OverallStatus      string `json:"overall_status"`
	Summary            string `json:"summary"`
}

type NonBankFinancingSection struct {
	DetectionMethod     string   `json:"detection_method"`
	ExclusionsApplied   []string `json:"exclusions_applied"`
	Sources             []string `json:"sources"`
	SuspectedUnlicensed []string `json:"suspected_unlicensed"`
	RiskLevel           string   `json:"risk_level"`
	Assessment          string   `json:"assessment"`
}

type FlagsSection struct {
	HighValueTransactions   HighValueFlags      `json:"high_value_transactions"`
	RoundFigureTransactions RoundFigureFlags    `json:"round_figure_transactions"`
	ReturnedCheques         ReturnedChequeFlags `json:"returned_cheques"`
}

type HighValueFlags struct {
	Threshold       float64       `json:"threshold"`
	AvgDailyBalance float64       `json:"avg_daily_balance"`
	Count           int           `json:"count"`
	Transactions    []FlaggedItem `json:"transactions"`
}

type RoundFigureFlags struct {
	Count               int           `json:"count"`
	TotalAmount         float64       `json:"total_amount"`
	PercentageOfCredits float64       `json:"percentage_of_credits"`
	Assessment          string        `json:"assessment"`
	Top10               []FlaggedItem `json:"top_10_transactions"`
	All                 []FlaggedItem `json:"all_transactions"`
}

type ReturnedChequeFlags struct {
	Count        int           `json:"count"`
	TotalValue   float64       `json:"total_value"`
	Transactions []FlaggedItem `json:"transactions"`
	Assessment   string        `json:"assessment"`
}

// IntegrityScore is the weighted outcome of the structural, warning,
// monitoring, and compliance checks.
type IntegrityScore struct {
	Score          float64          `json:"score"`
	PointsEarned   int              `json:"points_earned"`
	PointsPossible int              `json:"points_possible"`
	Rating         string           `json:"rating"`
	Checks         []IntegrityCheck `json:"checks"`
}

type IntegrityCheck struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Tier         string `json:"tier"`
	Weight       int    `json:"weight"`
	Status       string `json:"status"`
	PointsEarned int    `json:"points_earned"`
	Details      string `json:"details"`
}

type Observations struct {
	Positive []string `json:"positive"`
	Concerns []string `json:"concerns"`
}

type Recommendation struct {
	Priority       string `json:"priority"`
	Category       string `json:"category"`
	Recommendation string `json:"recommendation"`
}
