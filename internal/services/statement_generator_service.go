package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/M1doriya/Analysis-PRO/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

// GeneratorOptions controls one synthetic bundle. Zero values mean: random
// company name, 6 months, random seed, period ending last calendar month.
type GeneratorOptions struct {
	CompanyName string
	Months      int
	Seed        uint64
	EndMonth    string // "YYYY-MM"
}

const (
	generatorMainAccount = "CIMB_MAIN"
	generatorOpsAccount  = "HLB_OPS"

	defaultGeneratorMonths = 6
)

// Curated counterparty pools. Raw faker company names are avoided in
// descriptions because they can collide with classification keywords
// ("REV...", "...FEE") and skew the demo bundle.
var (
	generatorPayers = []string{
		"SYARIKAT MAJU JAYA", "PERNIAGAAN SENTOSA", "BINA STRUKTUR SDN BHD",
		"KEJURUTERAAN DINAMIK", "PEMBINAAN HARMONI", "TECHSPAN SOLUTIONS",
		"GLOBAL MARINE WORKS", "SELATAN TRADING", "UTARA LOGISTICS",
		"DELTA FABRICATION", "AMANAH PROJEK", "NUSANTARA SUPPLY",
	}
	generatorSuppliers = []string{
		"STEELWORKS INDUSTRIES", "PERKASA HARDWARE", "MEGA BUILDING MATERIALS",
		"CAHAYA ELEKTRIK", "SEMENANJUNG CEMENT", "TIMUR SAFETY EQUIPMENT",
		"WIRA TRANSPORT", "PELITA OFFICE SUPPLIES", "JATI TIMBER TRADING",
		"KENCANA MACHINERY",
	}
	generatorUtilityBills = []string{
		"TNB BILL PAYMENT", "TELEKOM MALAYSIA BILL", "AIR SELANGOR BILL",
	}
)

type statementGeneratorService struct{}

// NewStatementGeneratorService creates a synthetic statement generator.
func NewStatementGeneratorService() StatementGeneratorServiceInterface {
	return &statementGeneratorService{}
}

// GenerateInput builds a two-account bundle for a fictional company: an
// operating account carrying collections, payroll, statutory and supplier
// flows, and a secondary account funded through marked inter-account
// transfers. A few rows reference banks outside the provided set so the
// missing-bank and unverified-transfer paths have material to work on.
func (g *statementGeneratorService) GenerateInput(opts GeneratorOptions) (*models.AnalysisInput, error) {
	faker := gofakeit.New(opts.Seed)

	months := opts.Months
	if months <= 0 {
		months = defaultGeneratorMonths
	}

	endMonth, err := resolveEndMonth(opts.EndMonth)
	if err != nil {
		return nil, err
	}

	companyName := opts.CompanyName
	if companyName == "" {
		companyName = generatedCompanyName(faker)
	}
	keywords := companyKeywordsFor(companyName)
	relatedParty := relatedPartyFor(companyName)

	mainRows := make([]models.StatementTransaction, 0, months*24)
	opsRows := make([]models.StatementTransaction, 0, months*8)

	for i := months - 1; i >= 0; i-- {
		month := endMonth.AddDate(0, -i, 0)
		quarterMonth := i%3 == 0

		mainRows = append(mainRows, g.monthlyCollections(faker, month)...)
		mainRows = append(mainRows, g.monthlySupplierPayments(faker, month)...)
		mainRows = append(mainRows, g.monthlyStatutoryPayments(faker, month)...)
		mainRows = append(mainRows,
			row(month, faker.Number(25, 28), "PAYROLL SALARY STAFF", price(faker, 18000, 45000), true),
			row(month, faker.Number(5, 20), generatorUtilityBills[faker.Number(0, len(generatorUtilityBills)-1)], price(faker, 300, 2600), true),
			row(month, faker.Number(26, 28), "BANK SERVICE CHARGE", price(faker, 10, 60), true),
		)

		transferDay := faker.Number(6, 22)
		transferAmount := price(faker, 20000, 60000)
		mainRows = append(mainRows, row(month, transferDay, "ITB TRF TO HLB OPS ACC", transferAmount, true))
		opsRows = append(opsRows, row(month, transferDay, "ITB TRF FR CIMB MAIN ACC", transferAmount, false))

		opsRows = append(opsRows, g.monthlyOpsPayments(faker, month)...)

		if quarterMonth {
			mainRows = append(mainRows,
				row(month, faker.Number(8, 18), "PAYMENT FROM "+relatedParty, price(faker, 15000, 60000), false),
				row(month, faker.Number(10, 24), "ITB TRF TO MBB A/C "+faker.DigitN(10), price(faker, 8000, 30000), true),
			)
		}
		if i%2 == 0 {
			mainRows = append(mainRows, row(month, faker.Number(3, 20), "CHEQUE DEPOSIT", float64(faker.Number(2, 6)*10000), false))
		}
	}

	mainStatement := statementFromRows(mainRows, decimal.NewFromInt(int64(faker.Number(250, 400)*1000)))
	opsStatement := statementFromRows(opsRows, decimal.NewFromInt(int64(faker.Number(60, 120)*1000)))

	return &models.AnalysisInput{
		CompanyName:     companyName,
		CompanyKeywords: keywords,
		RelatedParties: []models.RelatedParty{
			{Name: relatedParty, Relationship: "Sister Company"},
		},
		Accounts: map[string]models.AccountInfo{
			generatorMainAccount: {
				BankName:       "CIMB Islamic Bank",
				AccountNumber:  faker.DigitN(10),
				AccountHolder:  companyName,
				AccountType:    "Current",
				Classification: models.ClassificationPrimary,
			},
			generatorOpsAccount: {
				BankName:       "Hong Leong Bank",
				AccountNumber:  faker.DigitN(10),
				AccountHolder:  companyName,
				AccountType:    "Current",
				Classification: models.ClassificationOperating,
			},
		},
		Statements: map[string]*models.AccountStatement{
			generatorMainAccount: mainStatement,
			generatorOpsAccount:  opsStatement,
		},
	}, nil
}

func (g *statementGeneratorService) monthlyCollections(faker *gofakeit.Faker, month time.Time) []models.StatementTransaction {
	rows := make([]models.StatementTransaction, 0, 12)
	count := faker.Number(8, 12)
	for i := 0; i < count; i++ {
		payer := generatorPayers[faker.Number(0, len(generatorPayers)-1)]
		desc := "IBG CREDIT " + payer
		if faker.Number(0, 3) == 0 {
			desc = "DUITNOW TRANSFER FR " + payer
		}
		rows = append(rows, row(month, faker.Number(1, 28), desc, price(faker, 3000, 80000), false))
	}
	return rows
}

func (g *statementGeneratorService) monthlySupplierPayments(faker *gofakeit.Faker, month time.Time) []models.StatementTransaction {
	rows := make([]models.StatementTransaction, 0, 8)
	count := faker.Number(5, 8)
	for i := 0; i < count; i++ {
		supplier := generatorSuppliers[faker.Number(0, len(generatorSuppliers)-1)]
		rows = append(rows, row(month, faker.Number(2, 27), "IBG PAYMENT TO "+supplier, price(faker, 2000, 40000), true))
	}
	return rows
}

// monthlyStatutoryPayments emits one debit per statutory agency around the
// mid-month contribution window.
func (g *statementGeneratorService) monthlyStatutoryPayments(faker *gofakeit.Faker, month time.Time) []models.StatementTransaction {
	label := strings.ToUpper(month.Format("Jan 2006"))
	return []models.StatementTransaction{
		row(month, faker.Number(10, 15), "KWSP CARUMAN "+label, price(faker, 3000, 7000), true),
		row(month, faker.Number(10, 15), "PERKESO CARUMAN "+label, price(faker, 400, 1200), true),
		row(month, faker.Number(10, 15), "LHDN PCB "+label, price(faker, 1500, 5000), true),
		row(month, faker.Number(10, 15), "HRD CORP LEVY "+label, price(faker, 250, 900), true),
	}
}

func (g *statementGeneratorService) monthlyOpsPayments(faker *gofakeit.Faker, month time.Time) []models.StatementTransaction {
	rows := make([]models.StatementTransaction, 0, 4)
	count := faker.Number(2, 4)
	for i := 0; i < count; i++ {
		supplier := generatorSuppliers[faker.Number(0, len(generatorSuppliers)-1)]
		rows = append(rows, row(month, faker.Number(3, 27), "IBG PAYMENT TO "+supplier, price(faker, 1000, 15000), true))
	}
	return rows
}

// row builds one statement row on the given day of the month. Balances are
// assigned later, once the account's rows are in date order.
func row(month time.Time, day int, description string, amount float64, debit bool) models.StatementTransaction {
	txn := models.StatementTransaction{
		Date:        time.Date(month.Year(), month.Month(), day, 0, 0, 0, 0, time.UTC).Format(time.DateOnly),
		Description: description,
	}
	value := decimal.NewFromFloat(amount).Round(2)
	if debit {
		txn.Debit = value
	} else {
		txn.Credit = value
	}
	return txn
}

func price(faker *gofakeit.Faker, min, max float64) float64 {
	return faker.Price(min, max)
}

// statementFromRows orders the rows, threads a running balance through them,
// and lets Sanitize rebuild the summary sections the way a statement
// processor would have delivered them.
func statementFromRows(rows []models.StatementTransaction, opening decimal.Decimal) *models.AccountStatement {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		return rows[i].Description < rows[j].Description
	})

	balance := opening
	for i := range rows {
		balance = balance.Add(rows[i].Credit).Sub(rows[i].Debit).Round(2)
		rows[i].Balance = balance
	}

	stmt := &models.AccountStatement{Transactions: rows}
	// Generated rows always have valid dates and descriptions, so Sanitize
	// only rebuilds the summary and monthly sections here.
	_, _ = stmt.Sanitize()
	return stmt
}

func resolveEndMonth(endMonth string) (time.Time, error) {
	if endMonth == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0), nil
	}
	parsed, err := time.Parse("2006-01", endMonth)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing end month %q: %w", endMonth, err)
	}
	return time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}

func generatedCompanyName(faker *gofakeit.Faker) string {
	cleaned := strings.NewReplacer(",", "", ".", "", "'", "").Replace(faker.Company())
	return strings.ToUpper(cleaned) + " SDN BHD"
}

// companyKeywordsFor derives the matcher keywords the way analysts enter
// them: the full name and its leading pair of words.
func companyKeywordsFor(companyName string) []string {
	upper := strings.ToUpper(companyName)
	words := strings.Fields(upper)
	if len(words) < 2 {
		return []string{upper}
	}
	return []string{upper, words[0] + " " + words[1]}
}

func relatedPartyFor(companyName string) string {
	words := strings.Fields(strings.ToUpper(companyName))
	return words[0] + " HOLDINGS SDN BHD"
}
