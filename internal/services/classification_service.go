package services

import (
	"log/slog"

	"github.com/M1doriya/Analysis-PRO/internal/config"
	"github.com/M1doriya/Analysis-PRO/internal/models"
)

// StatutoryPayment ties a classified debit to the statutory type whose
// keywords matched it.
type StatutoryPayment struct {
	Txn  *models.Transaction
	Type string
}

// ClassificationResult collects classified transactions per bucket, in
// classification order. StatutoryMonths records the "YYYY-MM" month of every
// statutory hit per type, duplicates included; distinct-month counting
// happens at scoring time.
type ClassificationResult struct {
	UnverifiedCredits   []models.UnverifiedTransfer
	UnverifiedDebits    []models.UnverifiedTransfer
	RelatedPartyCredits []*models.Transaction
	RelatedPartyDebits  []*models.Transaction
	LoanDisbursements   []*models.Transaction
	InterestCredits     []*models.Transaction
	Reversals           []*models.Transaction
	GenuineCredits      []*models.Transaction
	StatutoryPayments   []StatutoryPayment
	StatutoryMonths     map[string][]string
	SalaryWages         []*models.Transaction
	Utilities           []*models.Transaction
	BankCharges         []*models.Transaction
	SupplierPayments    []*models.Transaction
}

type classificationService struct {
	cfg *config.EngineConfig
}

func NewClassificationService(cfg *config.EngineConfig) ClassificationServiceInterface {
	return &classificationService{cfg: cfg}
}

// Classify runs the remaining priorities after transfer matching. Credits:
// unverified transfer, related party, loan disbursement, interest, reversal,
// then genuine sales as the default. Debits: related party before statutory
// so payroll-adjacent related-party payments are not miscoded, then
// unverified transfer, statutory, salary, utilities, bank charges, and
// supplier as the default. Every pass walks its side in canonical order and
// consumes what it categorizes, so each transaction is decided exactly once.
func (s *classificationService) Classify(credits, debits []*models.Transaction, consumed *models.ConsumedSet, missing models.MissingBankSummary, companyKeywords []string, parties []models.RelatedPartyPattern) *ClassificationResult {
	result := &ClassificationResult{
		StatutoryMonths: make(map[string][]string),
	}

	result.UnverifiedCredits = s.classifyUnverified(credits, models.TransactionSideCredit, consumed, missing, companyKeywords)
	result.RelatedPartyCredits = s.classifyRelatedParty(credits, consumed, parties)
	result.LoanDisbursements = s.classifyByKeywords(credits, consumed, disbursementKeywords, models.CategoryLoanDisbursement)
	result.InterestCredits = s.classifyByKeywords(credits, consumed, interestKeywords, models.CategoryInterestProfitDividend)
	result.Reversals = s.classifyByKeywords(credits, consumed, reversalKeywords, models.CategoryReversal)
	result.GenuineCredits = s.classifyRemaining(credits, consumed, models.CategoryGenuineSales)

	result.RelatedPartyDebits = s.classifyRelatedParty(debits, consumed, parties)
	result.UnverifiedDebits = s.classifyUnverified(debits, models.TransactionSideDebit, consumed, missing, companyKeywords)
	s.classifyStatutory(debits, consumed, result)
	result.SalaryWages = s.classifyByKeywords(debits, consumed, salaryKeywords, models.CategorySalaryWages)
	result.Utilities = s.classifyByKeywords(debits, consumed, utilityKeywords, models.CategoryUtilities)
	result.BankCharges = s.classifyBankCharges(debits, consumed)
	result.SupplierPayments = s.classifyRemaining(debits, consumed, models.CategorySupplierVendor)

	slog.Info("transaction classification complete",
		"genuine_credits", len(result.GenuineCredits),
		"supplier_payments", len(result.SupplierPayments),
		"related_party", len(result.RelatedPartyCredits)+len(result.RelatedPartyDebits),
		"statutory", len(result.StatutoryPayments),
		"unverified_transfers", len(result.UnverifiedCredits)+len(result.UnverifiedDebits))

	return result
}

// classifyUnverified recognizes one-sided transfers toward missing banks: a
// missing bank code in the description plus either a transfer marker or the
// company's own name.
func (s *classificationService) classifyUnverified(side []*models.Transaction, sideLabel string, consumed *models.ConsumedSet, missing models.MissingBankSummary, companyKeywords []string) []models.UnverifiedTransfer {
	transfers := make([]models.UnverifiedTransfer, 0)

	for _, txn := range side {
		if consumed.Has(txn.SortedIndex) {
			continue
		}

		descUpper := txn.DescriptionUpper()
		code := missing.FirstCodeIn(descUpper)
		if code == "" {
			continue
		}
		if !hasInterAccountMarker(descUpper) && !hasCompanyName(descUpper, companyKeywords) {
			continue
		}

		amount := txn.Credit
		if sideLabel == models.TransactionSideDebit {
			amount = txn.Debit
		}

		transfers = append(transfers, models.UnverifiedTransfer{
			Date:               txn.DateString(),
			Account:            txn.AccountID,
			Side:               sideLabel,
			Amount:             amount,
			Description:        txn.Description,
			TargetBank:         code,
			VerificationStatus: models.TransferVerificationUnverified,
		})

		txn.Categorize(models.CategoryInterAccountTransferUnverified)
		consumed.Add(txn.SortedIndex)
	}

	return transfers
}

func (s *classificationService) classifyRelatedParty(side []*models.Transaction, consumed *models.ConsumedSet, parties []models.RelatedPartyPattern) []*models.Transaction {
	bucket := make([]*models.Transaction, 0)

	for _, txn := range side {
		if consumed.Has(txn.SortedIndex) {
			continue
		}

		match, ok := models.MatchRelatedParty(txn.DescriptionUpper(), parties)
		if !ok {
			continue
		}

		txn.Categorize(models.CategoryRelatedParty)
		txn.IsRelatedParty = true
		txn.RelatedPartyName = match.Name
		txn.RelatedPartyRelationship = match.Relationship
		txn.PurposeNote = match.PurposeNote

		bucket = append(bucket, txn)
		consumed.Add(txn.SortedIndex)
	}

	return bucket
}

func (s *classificationService) classifyByKeywords(side []*models.Transaction, consumed *models.ConsumedSet, keywords []string, category models.Category) []*models.Transaction {
	bucket := make([]*models.Transaction, 0)

	for _, txn := range side {
		if consumed.Has(txn.SortedIndex) {
			continue
		}
		if !containsAny(txn.DescriptionUpper(), keywords) {
			continue
		}

		txn.Categorize(category)
		bucket = append(bucket, txn)
		consumed.Add(txn.SortedIndex)
	}

	return bucket
}

func (s *classificationService) classifyStatutory(debits []*models.Transaction, consumed *models.ConsumedSet, result *ClassificationResult) {
	for _, txn := range debits {
		if consumed.Has(txn.SortedIndex) {
			continue
		}

		statType := matchStatutoryType(txn.DescriptionUpper())
		if statType == "" {
			continue
		}

		txn.Categorize(models.CategoryStatutoryPayment)
		result.StatutoryPayments = append(result.StatutoryPayments, StatutoryPayment{Txn: txn, Type: statType})
		result.StatutoryMonths[statType] = append(result.StatutoryMonths[statType], txn.MonthKey())
		consumed.Add(txn.SortedIndex)
	}
}

// classifyBankCharges matches charge keywords but only below the ceiling;
// large fee-like debits stay with supplier payments.
func (s *classificationService) classifyBankCharges(debits []*models.Transaction, consumed *models.ConsumedSet) []*models.Transaction {
	bucket := make([]*models.Transaction, 0)

	for _, txn := range debits {
		if consumed.Has(txn.SortedIndex) {
			continue
		}
		if !containsAny(txn.DescriptionUpper(), bankChargeKeywords) {
			continue
		}
		if !txn.Debit.LessThan(s.cfg.BankChargeCeiling) {
			continue
		}

		txn.Categorize(models.CategoryBankCharges)
		bucket = append(bucket, txn)
		consumed.Add(txn.SortedIndex)
	}

	return bucket
}

func (s *classificationService) classifyRemaining(side []*models.Transaction, consumed *models.ConsumedSet, category models.Category) []*models.Transaction {
	bucket := make([]*models.Transaction, 0)

	for _, txn := range side {
		if consumed.Has(txn.SortedIndex) {
			continue
		}

		txn.Categorize(category)
		bucket = append(bucket, txn)
		consumed.Add(txn.SortedIndex)
	}

	return bucket
}
