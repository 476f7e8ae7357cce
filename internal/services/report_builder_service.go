package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/M1doriya/Analysis-PRO/internal/config"
	"github.com/M1doriya/Analysis-PRO/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	transferDetectionMethod  = "matching_based"
	volatilityMethodIntraday = "intraday"
	financingDetectionMethod = "keyword_and_pattern_analysis"
	generatedAtLayout        = "2006-01-02T15:04:05.000Z"

	unverifiedTransferNote = "These transfers reference bank accounts not provided in the analysis"
	roundFigureNote        = "Round figure credits flagged for potential review"
	roundFigureFlagReason  = "Round figure credit"
)

var (
	twelve  = decimal.NewFromInt(12)
	million = decimal.NewFromInt(1_000_000)

	roundFigureHighPct    = decimal.NewFromInt(50)
	roundFigureConcernPct = decimal.NewFromInt(20)
)

// statutoryAlertLabels maps each statutory type to the short name used in
// recurring-payment alert strings.
var statutoryAlertLabels = map[string]string{
	"EPF/KWSP":      "EPF",
	"SOCSO/PERKESO": "SOCSO",
	"LHDN/Tax":      "LHDN",
	"HRDF/PSMB":     "HRDF",
}

// ReportParams bundles everything the assembler needs. GeneratedAt is
// injected so two runs over the same input differ only in that field.
type ReportParams struct {
	Input          *models.AnalysisInput
	Pool           []models.Transaction
	Missing        models.MissingBankSummary
	Matched        []models.MatchedTransfer
	Classification *ClassificationResult
	Accounts       []models.AccountReport
	GeneratedAt    time.Time
}

// flowTotals carries the pooled sums the consolidated section and the
// category percentages are derived from. Matched transfers are valued at the
// credit side on both directions.
type flowTotals struct {
	totalCredits decimal.Decimal
	totalDebits  decimal.Decimal

	matchedCredit    decimal.Decimal
	unverifiedCredit decimal.Decimal
	rpCredit         decimal.Decimal
	loanDisbursed    decimal.Decimal
	interest         decimal.Decimal
	reversal         decimal.Decimal
	creditExclusions decimal.Decimal

	matchedDebit    decimal.Decimal
	unverifiedDebit decimal.Decimal
	rpDebit         decimal.Decimal
	debitExclusions decimal.Decimal

	netCredits decimal.Decimal
	netDebits  decimal.Decimal
}

type reportBuilderService struct {
	cfg       *config.EngineConfig
	metrics   StatementMetricsServiceInterface
	integrity IntegrityServiceInterface
}

func NewReportBuilderService(cfg *config.EngineConfig, metrics StatementMetricsServiceInterface, integrity IntegrityServiceInterface) ReportBuilderServiceInterface {
	return &reportBuilderService{cfg: cfg, metrics: metrics, integrity: integrity}
}

// Build assembles the full report. Every list is produced in a deterministic
// order: amount sorts are stable with ties keeping canonical pool order, and
// set-like data (missing codes, months) is emitted sorted.
func (s *reportBuilderService) Build(params ReportParams) *models.AnalysisReport {
	input := params.Input
	cls := params.Classification

	totals := computeTotals(params.Pool, params.Matched, cls)

	roundItems, roundTotal := s.roundFigures(cls.GenuineCredits)
	roundPct := decimal.Zero
	if totals.totalCredits.IsPositive() {
		roundPct = roundTotal.Div(totals.totalCredits).Mul(oneHundred)
	}

	periodStart, periodEnd, expectedMonths := poolPeriod(params.Pool)
	numMonths := len(expectedMonths)
	if numMonths == 0 {
		numMonths = 6
	}

	recurring, statutoryCounts := s.recurringSection(cls, expectedMonths, numMonths)

	overallVol, overallLevel := s.metrics.OverallVolatility(params.Accounts)

	integrity := s.integrity.Evaluate(IntegritySignals{
		VolatilityLevel:    overallLevel,
		RoundFigurePct:     roundPct,
		RelatedPartyCount:  len(input.RelatedParties),
		StatutoryMonths:    statutoryCounts,
		NumMonths:          numMonths,
		HasMissingAccounts: params.Missing.HasMissing(),
	})

	accounts := params.Accounts
	if accounts == nil {
		accounts = []models.AccountReport{}
	}

	return &models.AnalysisReport{
		ReportInfo:               s.reportInfo(input, params.Missing, periodStart, periodEnd, len(accounts), numMonths, params.GeneratedAt),
		Accounts:                 accounts,
		Consolidated:             s.consolidated(totals, numMonths),
		InterAccountTransfers:    s.transferSection(params.Matched, cls, params.Missing, totals),
		RelatedPartyTransactions: s.relatedPartySection(cls, totals),
		FlaggedForReview:         s.flaggedSection(roundItems, roundTotal),
		Categories:               s.categoriesSection(params.Matched, cls, totals),
		Counterparties:           counterpartySection(),
		KiteFlying:               kiteFlyingSection(),
		Volatility:               volatilitySection(overallVol, overallLevel),
		RecurringPayments:        recurring,
		NonBankFinancing:         nonBankFinancingSection(),
		Flags:                    s.flagsSection(roundItems, roundTotal, roundPct),
		IntegrityScore:           integrity,
		Observations:             s.observations(totals, recurring, cls, params.Missing, overallLevel, roundPct, numMonths),
		Recommendations:          s.recommendations(params.Missing, overallLevel, len(accounts)),
	}
}

func computeTotals(pool []models.Transaction, matched []models.MatchedTransfer, cls *ClassificationResult) flowTotals {
	var t flowTotals

	for i := range pool {
		if pool[i].Credit.IsPositive() {
			t.totalCredits = t.totalCredits.Add(pool[i].Credit)
		}
		if pool[i].Debit.IsPositive() {
			t.totalDebits = t.totalDebits.Add(pool[i].Debit)
		}
	}

	for i := range matched {
		t.matchedCredit = t.matchedCredit.Add(matched[i].Amount)
	}
	t.matchedDebit = t.matchedCredit

	t.unverifiedCredit = sumTransferAmounts(cls.UnverifiedCredits)
	t.unverifiedDebit = sumTransferAmounts(cls.UnverifiedDebits)
	t.rpCredit = sumCredits(cls.RelatedPartyCredits)
	t.rpDebit = sumDebits(cls.RelatedPartyDebits)
	t.loanDisbursed = sumCredits(cls.LoanDisbursements)
	t.interest = sumCredits(cls.InterestCredits)
	t.reversal = sumCredits(cls.Reversals)

	t.creditExclusions = t.matchedCredit.
		Add(t.unverifiedCredit).
		Add(t.rpCredit).
		Add(t.loanDisbursed).
		Add(t.interest).
		Add(t.reversal)
	t.debitExclusions = t.matchedDebit.Add(t.unverifiedDebit).Add(t.rpDebit)

	t.netCredits = t.totalCredits.Sub(t.creditExclusions)
	t.netDebits = t.totalDebits.Sub(t.debitExclusions)

	return t
}

func (s *reportBuilderService) roundFigures(genuine []*models.Transaction) ([]*models.Transaction, decimal.Decimal) {
	items := make([]*models.Transaction, 0)
	total := decimal.Zero
	for _, txn := range genuine {
		if s.metrics.IsRoundFigure(txn.Credit) {
			items = append(items, txn)
			total = total.Add(txn.Credit)
		}
	}
	return items, total
}

// poolPeriod derives the covered period and the sorted distinct months from
// the pool dates.
func poolPeriod(pool []models.Transaction) (string, string, []string) {
	if len(pool) == 0 {
		return "", "", nil
	}

	first, last := pool[0].Date, pool[0].Date
	monthSet := make(map[string]struct{})
	for i := range pool {
		if pool[i].Date.Before(first) {
			first = pool[i].Date
		}
		if pool[i].Date.After(last) {
			last = pool[i].Date
		}
		monthSet[pool[i].MonthKey()] = struct{}{}
	}

	months := make([]string, 0, len(monthSet))
	for m := range monthSet {
		months = append(months, m)
	}
	sort.Strings(months)

	return first.Format(time.DateOnly), last.Format(time.DateOnly), months
}

func (s *reportBuilderService) reportInfo(input *models.AnalysisInput, missing models.MissingBankSummary, periodStart, periodEnd string, totalAccounts, numMonths int, generatedAt time.Time) models.ReportInfo {
	relatedParties := input.RelatedParties
	if relatedParties == nil {
		relatedParties = []models.RelatedParty{}
	}

	reportID := uuid.NewSHA1(uuid.NameSpaceOID, []byte(input.CompanyName+"|"+periodStart+"|"+periodEnd))

	return models.ReportInfo{
		ReportID:            reportID.String(),
		SchemaVersion:       models.SchemaVersion,
		CompanyName:         input.CompanyName,
		GeneratedAt:         generatedAt.UTC().Format(generatedAtLayout),
		PeriodStart:         periodStart,
		PeriodEnd:           periodEnd,
		TotalAccounts:       totalAccounts,
		TotalMonths:         numMonths,
		RelatedParties:      relatedParties,
		AccountsNotProvided: missingAccountLines(missing),
	}
}

// missingAccountLines orders the referenced-but-absent banks by descending
// reference count, ties broken by label.
func missingAccountLines(missing models.MissingBankSummary) []string {
	type labelCount struct {
		label string
		count int
	}

	entries := make([]labelCount, 0, len(missing.Counts))
	for label, count := range missing.Counts {
		entries = append(entries, labelCount{label: label, count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].label < entries[j].label
	})

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s - referenced in %d transactions", e.label, e.count))
	}
	return lines
}

func (s *reportBuilderService) consolidated(t flowTotals, numMonths int) models.Consolidated {
	months := decimal.NewFromInt(int64(numMonths))

	incomeRatio := 0.0
	if t.netDebits.IsPositive() {
		incomeRatio = round2(t.netCredits.Div(t.netDebits))
	}
	internalMovementPct := 0.0
	if t.totalCredits.IsPositive() {
		internalMovementPct = round2(t.matchedCredit.Add(t.unverifiedCredit).Div(t.totalCredits).Mul(oneHundred))
	}

	return models.Consolidated{
		Gross: models.GrossTotals{
			TotalCredits:      round2(t.totalCredits),
			TotalDebits:       round2(t.totalDebits),
			NetFlow:           round2(t.totalCredits.Sub(t.totalDebits)),
			AnnualizedCredits: round2(t.totalCredits.Mul(twelve).Div(months)),
			AnnualizedDebits:  round2(t.totalDebits.Mul(twelve).Div(months)),
		},
		BusinessTurnover: models.TurnoverTotals{
			NetCredits:        round2(t.netCredits),
			NetDebits:         round2(t.netDebits),
			NetFlow:           round2(t.netCredits.Sub(t.netDebits)),
			AnnualizedCredits: round2(t.netCredits.Mul(twelve).Div(months)),
			AnnualizedDebits:  round2(t.netDebits.Mul(twelve).Div(months)),
		},
		Exclusions: models.ExclusionsBlock{
			Credits: models.CreditExclusions{
				InterAccount: models.InterAccountExclusion{
					Matched:    round2(t.matchedCredit),
					Unverified: round2(t.unverifiedCredit),
					Total:      round2(t.matchedCredit.Add(t.unverifiedCredit)),
				},
				RelatedParty:       round2(t.rpCredit),
				Reversals:          round2(t.reversal),
				ReturnedCheque:     0,
				LoanDisbursement:   round2(t.loanDisbursed),
				InterestFDDividend: round2(t.interest),
				Total:              round2(t.creditExclusions),
			},
			Debits: models.DebitExclusions{
				InterAccount: models.InterAccountExclusion{
					Matched:    round2(t.matchedDebit),
					Unverified: round2(t.unverifiedDebit),
					Total:      round2(t.matchedDebit.Add(t.unverifiedDebit)),
				},
				RelatedParty:   round2(t.rpDebit),
				ReturnedCheque: 0,
				Total:          round2(t.debitExclusions),
			},
		},
		Ratios: models.RatioBlock{
			IncomeRatio:         incomeRatio,
			InternalMovementPct: internalMovementPct,
			AvgMonthlyCredits:   round2(t.netCredits.Div(months)),
			AvgMonthlyDebits:    round2(t.netDebits.Div(months)),
		},
	}
}

func (s *reportBuilderService) transferSection(matched []models.MatchedTransfer, cls *ClassificationResult, missing models.MissingBankSummary, t flowTotals) models.InterAccountTransfers {
	unverifiedCount := len(cls.UnverifiedCredits) + len(cls.UnverifiedDebits)

	byAmount := append([]models.MatchedTransfer(nil), matched...)
	sort.SliceStable(byAmount, func(i, j int) bool {
		return byAmount[i].Amount.GreaterThan(byAmount[j].Amount)
	})

	top10 := make([]models.TransferDetail, 0, 10)
	for i, m := range byAmount {
		if i == 10 {
			break
		}
		top10 = append(top10, models.TransferDetail{
			Date:              m.Date,
			Amount:            m.Amount.InexactFloat64(),
			FromAccount:       m.FromAccount,
			ToAccount:         m.ToAccount,
			CreditDescription: m.CreditDescription,
			DebitDescription:  m.DebitDescription,
			CreditIdx:         m.CreditIndex,
			DebitIdx:          m.DebitIndex,
		})
	}

	byDate := append([]models.MatchedTransfer(nil), matched...)
	sort.SliceStable(byDate, func(i, j int) bool {
		return byDate[i].Date < byDate[j].Date
	})

	all := make([]models.TransferMovement, 0, len(byDate))
	for _, m := range byDate {
		all = append(all, models.TransferMovement{
			Date:        m.Date,
			Amount:      m.Amount.InexactFloat64(),
			FromAccount: m.FromAccount,
			ToAccount:   m.ToAccount,
		})
	}

	combined := make([]models.UnverifiedTransfer, 0, unverifiedCount)
	combined = append(combined, cls.UnverifiedCredits...)
	combined = append(combined, cls.UnverifiedDebits...)
	sort.SliceStable(combined, func(i, j int) bool {
		if !combined[i].Amount.Equal(combined[j].Amount) {
			return combined[i].Amount.GreaterThan(combined[j].Amount)
		}
		return combined[i].Date < combined[j].Date
	})

	unverified := make([]models.UnverifiedTransferDetail, 0, 20)
	for i, u := range combined {
		if i == 20 {
			break
		}
		unverified = append(unverified, models.UnverifiedTransferDetail{
			Date:               u.Date,
			Account:            u.Account,
			Type:               u.Side,
			Amount:             u.Amount.InexactFloat64(),
			Description:        truncate(u.Description, 60),
			TargetBank:         u.TargetBank,
			VerificationStatus: u.VerificationStatus,
		})
	}

	missingCodes := missing.Codes
	if missingCodes == nil {
		missingCodes = []string{}
	}

	return models.InterAccountTransfers{
		DetectionMethod: transferDetectionMethod,
		Summary: models.TransferTotals{
			MatchedCount:     len(matched),
			MatchedAmount:    round2(t.matchedCredit),
			UnverifiedCount:  unverifiedCount,
			UnverifiedAmount: round2(t.unverifiedCredit.Add(t.unverifiedDebit)),
			TotalCount:       len(matched) + unverifiedCount,
			TotalAmount:      round2(t.matchedCredit.Add(t.unverifiedCredit).Add(t.unverifiedDebit)),
		},
		Matched: models.MatchedTransferBlock{
			Top10: top10,
			All:   all,
		},
		Unverified: models.UnverifiedTransferBlock{
			Note:            unverifiedTransferNote,
			MissingAccounts: missingCodes,
			Transfers:       unverified,
		},
	}
}

func (s *reportBuilderService) relatedPartySection(cls *ClassificationResult, t flowTotals) models.RelatedPartySection {
	type partyAgg struct {
		credits      decimal.Decimal
		debits       decimal.Decimal
		count        int
		relationship string
	}

	order := make([]string, 0)
	byName := make(map[string]*partyAgg)
	record := func(name string) *partyAgg {
		agg, ok := byName[name]
		if !ok {
			agg = &partyAgg{}
			byName[name] = agg
			order = append(order, name)
		}
		return agg
	}

	for _, txn := range cls.RelatedPartyCredits {
		agg := record(txn.RelatedPartyName)
		agg.credits = agg.credits.Add(txn.Credit)
		agg.count++
		agg.relationship = txn.RelatedPartyRelationship
	}
	for _, txn := range cls.RelatedPartyDebits {
		agg := record(txn.RelatedPartyName)
		agg.debits = agg.debits.Add(txn.Debit)
		agg.count++
		agg.relationship = txn.RelatedPartyRelationship
	}

	byParty := make([]models.PartyBreakdown, 0, len(order))
	for _, name := range order {
		agg := byName[name]
		byParty = append(byParty, models.PartyBreakdown{
			PartyName:        name,
			Relationship:     agg.relationship,
			TotalCredits:     round2(agg.credits),
			TotalDebits:      round2(agg.debits),
			NetPosition:      round2(agg.credits.Sub(agg.debits)),
			TransactionCount: agg.count,
		})
	}

	combined := make([]*models.Transaction, 0, len(cls.RelatedPartyCredits)+len(cls.RelatedPartyDebits))
	combined = append(combined, cls.RelatedPartyCredits...)
	combined = append(combined, cls.RelatedPartyDebits...)
	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].SideAmount().GreaterThan(combined[j].SideAmount())
	})

	transactions := make([]models.RelatedPartyDetail, 0, 50)
	for i, txn := range combined {
		if i == 50 {
			break
		}
		transactions = append(transactions, models.RelatedPartyDetail{
			Date:        txn.DateString(),
			PartyName:   txn.RelatedPartyName,
			Type:        txn.Side(),
			Amount:      round2(txn.SideAmount()),
			Description: truncate(txn.Description, 80),
			Account:     txn.AccountID,
			PurposeNote: txn.PurposeNote,
		})
	}

	return models.RelatedPartySection{
		Summary: models.RelatedPartyTotals{
			TotalCredits: round2(t.rpCredit),
			TotalDebits:  round2(t.rpDebit),
			NetPosition:  round2(t.rpCredit.Sub(t.rpDebit)),
		},
		ByParty:      byParty,
		Transactions: transactions,
	}
}

func (s *reportBuilderService) flaggedSection(roundItems []*models.Transaction, roundTotal decimal.Decimal) models.FlaggedForReview {
	byAmount := append([]*models.Transaction(nil), roundItems...)
	sort.SliceStable(byAmount, func(i, j int) bool {
		return byAmount[i].Credit.GreaterThan(byAmount[j].Credit)
	})

	top10 := make([]models.FlaggedItem, 0, 10)
	for i, txn := range byAmount {
		if i == 10 {
			break
		}
		top10 = append(top10, models.FlaggedItem{
			Date:        txn.DateString(),
			Description: truncate(txn.Description, 60),
			Amount:      txn.Credit.InexactFloat64(),
			FlagReason:  roundFigureFlagReason,
		})
	}

	return models.FlaggedForReview{
		Count:       len(roundItems),
		TotalAmount: round2(roundTotal),
		Top10:       top10,
		All:         []models.FlaggedItem{},
		Note:        roundFigureNote,
	}
}

func (s *reportBuilderService) categoriesSection(matched []models.MatchedTransfer, cls *ClassificationResult, t flowTotals) models.CategoriesSection {
	credits := []models.CategoryBreakdown{
		categoryBlock(models.CategoryGenuineSales, len(cls.GenuineCredits), sumCredits(cls.GenuineCredits), t.totalCredits,
			transactionTop5(cls.GenuineCredits, false, true, false)),
		categoryBlock(models.CategoryInterAccountTransfer, len(matched), t.matchedCredit, t.totalCredits,
			matchedTop5(matched, false)),
		categoryBlock(models.CategoryInterAccountTransferUnverified, len(cls.UnverifiedCredits), t.unverifiedCredit, t.totalCredits,
			unverifiedTop5(cls.UnverifiedCredits)),
		categoryBlock(models.CategoryRelatedParty, len(cls.RelatedPartyCredits), t.rpCredit, t.totalCredits,
			transactionTop5(cls.RelatedPartyCredits, false, true, true)),
		categoryBlock(models.CategoryLoanDisbursement, len(cls.LoanDisbursements), t.loanDisbursed, t.totalCredits,
			transactionTop5(cls.LoanDisbursements, false, false, false)),
		categoryBlock(models.CategoryInterestProfitDividend, len(cls.InterestCredits), t.interest, t.totalCredits,
			transactionTop5(cls.InterestCredits, false, true, false)),
		categoryBlock(models.CategoryReversal, len(cls.Reversals), t.reversal, t.totalCredits,
			transactionTop5(cls.Reversals, false, false, false)),
	}

	statutoryTxns := make([]*models.Transaction, 0, len(cls.StatutoryPayments))
	for _, sp := range cls.StatutoryPayments {
		statutoryTxns = append(statutoryTxns, sp.Txn)
	}

	debits := []models.CategoryBreakdown{
		categoryBlock(models.CategorySupplierVendor, len(cls.SupplierPayments), sumDebits(cls.SupplierPayments), t.totalDebits,
			transactionTop5(cls.SupplierPayments, true, true, false)),
		categoryBlock(models.CategoryInterAccountTransfer, len(matched), t.matchedDebit, t.totalDebits,
			matchedTop5(matched, true)),
		categoryBlock(models.CategoryRelatedParty, len(cls.RelatedPartyDebits), t.rpDebit, t.totalDebits,
			transactionTop5(cls.RelatedPartyDebits, true, true, true)),
		categoryBlock(models.CategoryStatutoryPayment, len(statutoryTxns), sumDebits(statutoryTxns), t.totalDebits,
			transactionTop5(statutoryTxns, true, true, false)),
		categoryBlock(models.CategoryInterAccountTransferUnverified, len(cls.UnverifiedDebits), t.unverifiedDebit, t.totalDebits,
			unverifiedTop5(cls.UnverifiedDebits)),
		categoryBlock(models.CategorySalaryWages, len(cls.SalaryWages), sumDebits(cls.SalaryWages), t.totalDebits,
			transactionTop5(cls.SalaryWages, true, true, false)),
		categoryBlock(models.CategoryUtilities, len(cls.Utilities), sumDebits(cls.Utilities), t.totalDebits,
			transactionTop5(cls.Utilities, true, true, false)),
		categoryBlock(models.CategoryBankCharges, len(cls.BankCharges), sumDebits(cls.BankCharges), t.totalDebits,
			transactionTop5(cls.BankCharges, true, true, false)),
	}

	return models.CategoriesSection{Credits: credits, Debits: debits}
}

func (s *reportBuilderService) recurringSection(cls *ClassificationResult, expectedMonths []string, numMonths int) (models.RecurringPaymentsSection, map[string]int) {
	distinct := make(map[string]map[string]struct{}, len(statutoryTypes))
	for _, name := range statutoryTypeNames() {
		distinct[name] = make(map[string]struct{})
	}
	for statType, months := range cls.StatutoryMonths {
		for _, m := range months {
			distinct[statType][m] = struct{}{}
		}
	}

	counts := make(map[string]int, len(distinct))
	paymentTypes := make([]models.RecurringPaymentType, 0, len(statutoryTypes))
	alerts := make([]string, 0)

	for _, name := range statutoryTypeNames() {
		found := distinct[name]
		counts[name] = len(found)

		missingMonths := make([]string, 0)
		for _, m := range expectedMonths {
			if _, ok := found[m]; !ok {
				missingMonths = append(missingMonths, m)
			}
		}

		paymentTypes = append(paymentTypes, models.RecurringPaymentType{
			Type:          name,
			ExpectedCount: numMonths,
			FoundCount:    len(found),
			MissingMonths: missingMonths,
			Status:        s.metrics.RecurringStatus(len(found), numMonths),
		})

		if len(missingMonths) > 0 {
			alerts = append(alerts, fmt.Sprintf("%s payment not detected in %s",
				statutoryAlertLabels[name], strings.Join(missingMonths, ", ")))
		}
	}

	required := numMonths - 2
	if required < 4 {
		required = 4
	}

	statutoryDetection := models.RecurringFound
	for _, name := range statutoryTypeNames() {
		if counts[name] < required {
			statutoryDetection = models.RecurringPartial
			break
		}
	}

	overallStatus := models.RecurringFound
	if counts["EPF/KWSP"] < required || counts["SOCSO/PERKESO"] < required {
		overallStatus = models.RecurringPartial
	}

	section := models.RecurringPaymentsSection{
		PaymentTypes: paymentTypes,
		Alerts:       alerts,
		Assessment: models.RecurringAssessment{
			StatutoryDetection: statutoryDetection,
			OverallStatus:      overallStatus,
			Summary:            "Statutory payments detected in majority of months",
		},
	}

	return section, counts
}

func (s *reportBuilderService) flagsSection(roundItems []*models.Transaction, roundTotal, roundPct decimal.Decimal) models.FlagsSection {
	assessment := "NORMAL"
	if roundPct.GreaterThan(roundFigureHighPct) {
		assessment = "HIGH"
	} else if roundPct.GreaterThan(s.cfg.RoundFigureWarningPct) {
		assessment = "ELEVATED"
	}

	return models.FlagsSection{
		HighValueTransactions: models.HighValueFlags{
			Threshold:       s.cfg.HighValueThreshold.InexactFloat64(),
			AvgDailyBalance: 0,
			Count:           0,
			Transactions:    []models.FlaggedItem{},
		},
		RoundFigureTransactions: models.RoundFigureFlags{
			Count:               len(roundItems),
			TotalAmount:         round2(roundTotal),
			PercentageOfCredits: round2(roundPct),
			Assessment:          assessment,
			Top10:               []models.FlaggedItem{},
			All:                 []models.FlaggedItem{},
		},
		ReturnedCheques: models.ReturnedChequeFlags{
			Count:        0,
			TotalValue:   0,
			Transactions: []models.FlaggedItem{},
			Assessment:   "NONE",
		},
	}
}

func (s *reportBuilderService) observations(t flowTotals, recurring models.RecurringPaymentsSection, cls *ClassificationResult, missing models.MissingBankSummary, overallLevel string, roundPct decimal.Decimal, numMonths int) models.Observations {
	positive := []string{
		fmt.Sprintf("Strong business turnover of RM %sM over %d months",
			t.netCredits.Div(million).RoundBank(1).StringFixed(1), numMonths),
	}
	if recurring.Assessment.StatutoryDetection == models.RecurringFound {
		positive = append(positive, "Statutory payments (EPF, SOCSO, Tax, HRDF) consistently detected")
	}
	positive = append(positive, "No returned cheques or overdraft breaches")
	if len(cls.LoanDisbursements) > 0 {
		positive = append(positive, "Bank financing relationship indicates formal credit facilities")
	}

	concerns := make([]string, 0, 3)
	if overallLevel == models.VolatilityHigh || overallLevel == models.VolatilityExtreme {
		concerns = append(concerns, fmt.Sprintf("%s volatility levels observed", overallLevel))
	} else {
		concerns = append(concerns, "Volatility within acceptable range")
	}
	if roundPct.GreaterThan(roundFigureConcernPct) {
		concerns = append(concerns, fmt.Sprintf("Round figure credits at %s%%", roundPct.RoundBank(1).StringFixed(1)))
	} else {
		concerns = append(concerns, "Round figure credits within normal range")
	}
	if missing.HasMissing() {
		concerns = append(concerns, "Multiple bank accounts referenced but not provided for analysis")
	} else {
		concerns = append(concerns, "All accounts provided")
	}

	return models.Observations{Positive: positive, Concerns: concerns}
}

func (s *reportBuilderService) recommendations(missing models.MissingBankSummary, overallLevel string, accountCount int) []models.Recommendation {
	recs := make([]models.Recommendation, 0, 3)

	if missing.HasMissing() {
		codes := missing.Codes
		if len(codes) > 3 {
			codes = codes[:3]
		}
		recs = append(recs, models.Recommendation{
			Priority: "HIGH", Category: "Data Completeness",
			Recommendation: fmt.Sprintf("Obtain statements from %s accounts to verify inter-account transfers",
				strings.Join(codes, ", ")),
		})
	}
	if overallLevel == models.VolatilityHigh || overallLevel == models.VolatilityExtreme {
		recs = append(recs, models.Recommendation{
			Priority: "MEDIUM", Category: "Volatility Management",
			Recommendation: "Consider maintaining higher operating balances to reduce volatility",
		})
	}
	if accountCount > 3 {
		recs = append(recs, models.Recommendation{
			Priority: "LOW", Category: "Banking Consolidation",
			Recommendation: "Consider consolidating banking relationships to simplify cash flow monitoring",
		})
	}

	return recs
}

func counterpartySection() models.CounterpartySection {
	return models.CounterpartySection{
		TopPayers: []models.CounterpartyEntry{},
		TopPayees: []models.CounterpartyEntry{},
		ConcentrationRisk: models.ConcentrationRisk{
			RiskLevel: "LOW",
		},
		PartiesBothSides: []string{},
	}
}

func kiteFlyingSection() models.KiteFlyingSection {
	return models.KiteFlyingSection{
		RiskScore:        2,
		RiskLevel:        "LOW",
		Indicators:       []string{},
		DetailedFindings: []string{"No significant same-day round-tripping detected"},
	}
}

func volatilitySection(index float64, level string) models.VolatilitySection {
	alerts := []string{}
	if level == models.VolatilityHigh || level == models.VolatilityExtreme {
		alerts = append(alerts, fmt.Sprintf("%s volatility detected", level))
	}

	return models.VolatilitySection{
		CalculationMethod: volatilityMethodIntraday,
		OverallIndex:      index,
		OverallLevel:      level,
		Monthly:           []models.MonthlyVolatility{},
		Alerts:            alerts,
	}
}

func nonBankFinancingSection() models.NonBankFinancingSection {
	return models.NonBankFinancingSection{
		DetectionMethod:     financingDetectionMethod,
		ExclusionsApplied:   []string{"Licensed banks", "Government agencies"},
		Sources:             []string{},
		SuspectedUnlicensed: []string{},
		RiskLevel:           "LOW",
		Assessment:          "No suspected unlicensed financing detected",
	}
}

func categoryBlock(category models.Category, count int, amount, denom decimal.Decimal, top []models.CategoryTransaction) models.CategoryBreakdown {
	pct := 0.0
	if denom.IsPositive() {
		pct = round2(amount.Div(denom).Mul(oneHundred))
	}
	return models.CategoryBreakdown{
		Category:   category,
		Count:      count,
		Amount:     round2(amount),
		Percentage: pct,
		Top5:       top,
	}
}

// transactionTop5 projects the five largest (or first five, when insertion
// order is meaningful) bucket entries for the category detail.
func transactionTop5(txns []*models.Transaction, debitSide, sortByAmount, withCounterparty bool) []models.CategoryTransaction {
	amountOf := func(txn *models.Transaction) decimal.Decimal {
		if debitSide {
			return txn.Debit
		}
		return txn.Credit
	}

	items := append([]*models.Transaction(nil), txns...)
	if sortByAmount {
		sort.SliceStable(items, func(i, j int) bool {
			return amountOf(items[i]).GreaterThan(amountOf(items[j]))
		})
	}

	top := make([]models.CategoryTransaction, 0, 5)
	for i, txn := range items {
		if i == 5 {
			break
		}
		entry := models.CategoryTransaction{
			Date:        txn.DateString(),
			Description: truncate(txn.Description, 80),
			Amount:      amountOf(txn).InexactFloat64(),
		}
		if withCounterparty {
			name := txn.RelatedPartyName
			entry.Counterparty = &name
		}
		top = append(top, entry)
	}
	return top
}

func matchedTop5(matched []models.MatchedTransfer, debitSide bool) []models.CategoryTransaction {
	items := append([]models.MatchedTransfer(nil), matched...)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Amount.GreaterThan(items[j].Amount)
	})

	top := make([]models.CategoryTransaction, 0, 5)
	for i, m := range items {
		if i == 5 {
			break
		}
		desc := m.CreditDescription
		if debitSide {
			desc = m.DebitDescription
		}
		top = append(top, models.CategoryTransaction{
			Date:        m.Date,
			Description: truncate(desc, 80),
			Amount:      m.Amount.InexactFloat64(),
		})
	}
	return top
}

func unverifiedTop5(transfers []models.UnverifiedTransfer) []models.CategoryTransaction {
	items := append([]models.UnverifiedTransfer(nil), transfers...)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Amount.GreaterThan(items[j].Amount)
	})

	top := make([]models.CategoryTransaction, 0, 5)
	for i, u := range items {
		if i == 5 {
			break
		}
		top = append(top, models.CategoryTransaction{
			Date:        u.Date,
			Description: truncate(u.Description, 80),
			Amount:      u.Amount.InexactFloat64(),
		})
	}
	return top
}

func sumCredits(txns []*models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, txn := range txns {
		total = total.Add(txn.Credit)
	}
	return total
}

func sumDebits(txns []*models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, txn := range txns {
		total = total.Add(txn.Debit)
	}
	return total
}

func sumTransferAmounts(transfers []models.UnverifiedTransfer) decimal.Decimal {
	total := decimal.Zero
	for i := range transfers {
		total = total.Add(transfers[i].Amount)
	}
	return total
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
