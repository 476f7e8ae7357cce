package models

import (
	"encoding/json"
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNoUsableTransactions means every transaction in a statement was dropped
// during sanitation.
var ErrNoUsableTransactions = errors.New("no usable transactions in statement")

var (
	isoDatePattern  = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	monthKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// fallbackDateFormats are the non-ISO forms upstream processors are known to
// emit. Day-first layouts come before year-first ones.
var fallbackDateFormats = []string{
	"02/01/2006",
	"02-01-2006",
	"2006/01/02",
	"2006.01.02",
}

// AccountStatement is the normalized per-account input contract delivered by
// the external statement processor: a period summary, per-month balance
// aggregates and the raw transaction rows.
type AccountStatement struct {
	Summary        StatementSummary       `json:"summary"`
	MonthlySummary []MonthlyBalance       `json:"monthly_summary"`
	Transactions   []StatementTransaction `json:"transactions"`
}

// StatementSummary describes the statement period as a whole. DateRange is
// the "<ISO> to <ISO>" form produced upstream.
type StatementSummary struct {
	TotalTransactions int    `json:"total_transactions"`
	DateRange         string `json:"date_range"`
}

// MonthlyBalance carries one month of balance aggregates for an account.
type MonthlyBalance struct {
	Month            string          `json:"month"`
	TransactionCount int             `json:"transaction_count"`
	TotalDebit       decimal.Decimal `json:"total_debit"`
	TotalCredit      decimal.Decimal `json:"total_credit"`
	EndingBalance    decimal.Decimal `json:"ending_balance"`
	HighestBalance   decimal.Decimal `json:"highest_balance"`
	LowestBalance    decimal.Decimal `json:"lowest_balance"`
	NetChange        decimal.Decimal `json:"net_change"`
}

// StatementTransaction is one raw statement row. Date stays a string at this
// layer so lenient upstream formats survive binding; Sanitize is responsible
// for reducing it to a strict ISO calendar date.
type StatementTransaction struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// UnmarshalJSON tolerates amounts serialized as numbers, plain numeric
// strings, comma-grouped strings, or accounting negatives like (1,234.56).
func (t *StatementTransaction) UnmarshalJSON(data []byte) error {
	var aux struct {
		Date        string          `json:"date"`
		Description string          `json:"description"`
		Debit       json.RawMessage `json:"debit"`
		Credit      json.RawMessage `json:"credit"`
		Balance     json.RawMessage `json:"balance"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.Date = aux.Date
	t.Description = aux.Description
	t.Debit = flexibleAmount(aux.Debit)
	t.Credit = flexibleAmount(aux.Credit)
	t.Balance = flexibleAmount(aux.Balance)
	return nil
}

// UnmarshalJSON accepts the alternate highest_intraday/lowest_intraday keys
// some upstreams use and computes net_change when it is absent.
func (m *MonthlyBalance) UnmarshalJSON(data []byte) error {
	var aux struct {
		Month            string          `json:"month"`
		TransactionCount json.RawMessage `json:"transaction_count"`
		TotalDebit       json.RawMessage `json:"total_debit"`
		TotalCredit      json.RawMessage `json:"total_credit"`
		EndingBalance    json.RawMessage `json:"ending_balance"`
		HighestBalance   json.RawMessage `json:"highest_balance"`
		HighestIntraday  json.RawMessage `json:"highest_intraday"`
		LowestBalance    json.RawMessage `json:"lowest_balance"`
		LowestIntraday   json.RawMessage `json:"lowest_intraday"`
		NetChange        json.RawMessage `json:"net_change"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	m.Month = strings.TrimSpace(aux.Month)
	m.TransactionCount = flexibleInt(aux.TransactionCount)
	m.TotalDebit = flexibleAmount(aux.TotalDebit)
	m.TotalCredit = flexibleAmount(aux.TotalCredit)
	m.EndingBalance = flexibleAmount(aux.EndingBalance)
	m.HighestBalance = firstAmount(m.EndingBalance, aux.HighestBalance, aux.HighestIntraday)
	m.LowestBalance = firstAmount(m.EndingBalance, aux.LowestBalance, aux.LowestIntraday)
	if isNullRaw(aux.NetChange) {
		m.NetChange = m.TotalCredit.Sub(m.TotalDebit)
	} else {
		m.NetChange = flexibleAmount(aux.NetChange)
	}
	return nil
}

// UnmarshalJSON keeps a malformed or absent summary non-fatal; Sanitize
// rebuilds whatever is missing from the transaction rows.
func (s *StatementSummary) UnmarshalJSON(data []byte) error {
	var aux struct {
		TotalTransactions json.RawMessage `json:"total_transactions"`
		DateRange         string          `json:"date_range"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil
	}
	s.TotalTransactions = flexibleInt(aux.TotalTransactions)
	s.DateRange = strings.TrimSpace(aux.DateRange)
	return nil
}

// ParsedDate returns the transaction date as a calendar date.
func (t *StatementTransaction) ParsedDate() (time.Time, bool) {
	iso, ok := CleanDate(t.Date)
	if !ok {
		return time.Time{}, false
	}
	parsed, err := time.Parse(time.DateOnly, iso)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// Sanitize drops transactions without a usable calendar date or a non-empty
// description, orders the survivors by (date, description), and rebuilds the
// summary and monthly summary when the statement arrived without them. It
// returns the number of dropped transactions; ErrNoUsableTransactions is
// returned when nothing survives.
func (s *AccountStatement) Sanitize() (int, error) {
	kept := make([]StatementTransaction, 0, len(s.Transactions))
	dropped := 0
	for _, txn := range s.Transactions {
		date, ok := CleanDate(txn.Date)
		desc := strings.TrimSpace(txn.Description)
		if !ok || desc == "" {
			dropped++
			continue
		}
		txn.Date = date
		txn.Description = desc
		kept = append(kept, txn)
	}
	if len(kept) == 0 {
		return dropped, ErrNoUsableTransactions
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Date != kept[j].Date {
			return kept[i].Date < kept[j].Date
		}
		return kept[i].Description < kept[j].Description
	})
	s.Transactions = kept

	if !strings.Contains(s.Summary.DateRange, " to ") {
		s.Summary.DateRange = kept[0].Date + " to " + kept[len(kept)-1].Date
	}
	if s.Summary.TotalTransactions == 0 {
		s.Summary.TotalTransactions = len(kept)
	}

	monthly := make([]MonthlyBalance, 0, len(s.MonthlySummary))
	for _, m := range s.MonthlySummary {
		if !monthKeyPattern.MatchString(m.Month) {
			continue
		}
		monthly = append(monthly, m)
	}
	if len(monthly) == 0 {
		monthly = monthlyFromTransactions(kept)
	}
	s.MonthlySummary = monthly

	return dropped, nil
}

// PeriodBounds splits the summary date range into its start and end dates.
func (s *AccountStatement) PeriodBounds() (string, string) {
	parts := strings.SplitN(s.Summary.DateRange, " to ", 2)
	if len(parts) != 2 {
		return s.Summary.DateRange, s.Summary.DateRange
	}
	return parts[0], parts[1]
}

// CleanDate extracts a YYYY-MM-DD calendar date from common statement date
// forms. ISO timestamps keep their date part; day-first and dotted layouts
// are converted. The second return value is false when no valid date can be
// recovered.
func CleanDate(value string) (string, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return "", false
	}
	if m := isoDatePattern.FindString(s); m != "" {
		if _, err := time.Parse(time.DateOnly, m); err == nil {
			return m, true
		}
		return "", false
	}
	for _, layout := range fallbackDateFormats {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed.Format(time.DateOnly), true
		}
	}
	return "", false
}

// monthlyFromTransactions recomputes monthly balance aggregates from raw
// rows for statements delivered without a monthly summary. Ending balance is
// the last row of the month in statement order; highs and lows come from the
// running balances.
func monthlyFromTransactions(txns []StatementTransaction) []MonthlyBalance {
	byMonth := make(map[string][]StatementTransaction)
	months := make([]string, 0)
	for _, t := range txns {
		key := t.Date[:7]
		if _, seen := byMonth[key]; !seen {
			months = append(months, key)
		}
		byMonth[key] = append(byMonth[key], t)
	}
	sort.Strings(months)

	out := make([]MonthlyBalance, 0, len(months))
	for _, month := range months {
		rows := byMonth[month]
		totalDebit := decimal.Zero
		totalCredit := decimal.Zero
		highest := rows[0].Balance
		lowest := rows[0].Balance
		for _, t := range rows {
			totalDebit = totalDebit.Add(t.Debit)
			totalCredit = totalCredit.Add(t.Credit)
			if t.Balance.GreaterThan(highest) {
				highest = t.Balance
			}
			if t.Balance.LessThan(lowest) {
				lowest = t.Balance
			}
		}
		out = append(out, MonthlyBalance{
			Month:            month,
			TransactionCount: len(rows),
			TotalDebit:       totalDebit.Round(2),
			TotalCredit:      totalCredit.Round(2),
			EndingBalance:    rows[len(rows)-1].Balance.Round(2),
			HighestBalance:   highest.Round(2),
			LowestBalance:    lowest.Round(2),
			NetChange:        totalCredit.Sub(totalDebit).Round(2),
		})
	}
	return out
}

// flexibleAmount parses a JSON number or a numeric string, tolerating
// thousand separators and accounting negatives. Unparseable input yields
// zero rather than failing the bind.
func flexibleAmount(raw json.RawMessage) decimal.Decimal {
	if isNullRaw(raw) {
		return decimal.Zero
	}
	var d decimal.Decimal
	if err := json.Unmarshal(raw, &d); err == nil {
		return d
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return decimal.Zero
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	if negative {
		return d.Neg()
	}
	return d
}

// firstAmount returns the first present raw amount, falling back to the
// given default.
func firstAmount(fallback decimal.Decimal, raws ...json.RawMessage) decimal.Decimal {
	for _, raw := range raws {
		if !isNullRaw(raw) {
			return flexibleAmount(raw)
		}
	}
	return fallback
}

func flexibleInt(raw json.RawMessage) int {
	if isNullRaw(raw) {
		return 0
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(f)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, convErr := strconv.Atoi(strings.TrimSpace(s)); convErr == nil {
			return v
		}
	}
	return 0
}

func isNullRaw(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
