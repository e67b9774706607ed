package holdings

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// The engine degrades silently on bad data so one mangled record never
// aborts a reporting run. Audit is the loud counterpart: it walks a record
// set and reports every finding the engine would otherwise paper over, so
// operators can fix the store instead of shipping quietly wrong figures.

// isinRegex checks for the basic structure: 2 letters, 9 alphanumeric, 1 digit.
var isinRegex = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// ValidateISIN checks if a string is a validly formatted ISIN.
// It returns nil if valid, or a descriptive error if invalid.
func ValidateISIN(isin string) error {
	if len(isin) != 12 {
		return fmt.Errorf("invalid length: must be 12 characters, got %d", len(isin))
	}
	if !isinRegex.MatchString(isin) {
		return fmt.Errorf("invalid format: must be 2 uppercase letters, 9 alphanumeric chars, and 1 digit")
	}

	// Convert letters to numbers for the check digit calculation.
	var numericStr strings.Builder
	for _, char := range isin[:11] {
		if char >= 'A' && char <= 'Z' {
			numericStr.WriteString(strconv.Itoa(int(char - 'A' + 10)))
		} else {
			numericStr.WriteRune(char)
		}
	}

	// Apply a variation of the Luhn algorithm.
	sum := 0
	isSecond := true
	digits := numericStr.String()
	for i := len(digits) - 1; i >= 0; i-- {
		digit, _ := strconv.Atoi(string(digits[i]))
		if isSecond {
			digit *= 2
		}
		sum += (digit / 10) + (digit % 10)
		isSecond = !isSecond
	}

	expectedCheckDigit := (10 - (sum % 10)) % 10
	actualCheckDigit, _ := strconv.Atoi(string(isin[11]))
	if expectedCheckDigit != actualCheckDigit {
		return fmt.Errorf("invalid check digit: expected %d, got %d", expectedCheckDigit, actualCheckDigit)
	}
	return nil
}

// Issue is one data-quality finding in a record set.
type Issue struct {
	Record  string // which record, e.g. "transaction[2]"
	Message string
}

func (i Issue) String() string { return i.Record + ": " + i.Message }

// Audit reports every record that the engine would silently degrade on:
// malformed ISINs, records for another security, unknown transaction
// codes, zero quantities, unparseable dates, missing prices and invalid
// split ratios. It never mutates the set and an empty result means the
// ledger is computed exactly as recorded.
func Audit(rs *RecordSet) []Issue {
	var issues []Issue
	report := func(record string, format string, args ...any) {
		issues = append(issues, Issue{Record: record, Message: fmt.Sprintf(format, args...)})
	}

	security := activeSecurity(rs.Transactions, rs.Bonuses, rs.Splits)
	if security == "" {
		report("records", "no security id found, the ledger will be empty")
		return issues
	}
	if err := ValidateISIN(security); err != nil {
		report("records", "security id %q is not a valid ISIN: %v", security, err)
	}

	for i, t := range rs.Transactions {
		record := fmt.Sprintf("transaction[%d]", i)
		if t.Security != security {
			report(record, "security %q does not match %q, record is ignored", t.Security, security)
			continue
		}
		if !IsBuyCode(t.Type) && !IsSellCode(t.Type) {
			report(record, "code %q is neither a buy nor a sell, record is a no-op", t.Type)
		}
		if t.Quantity.IsZero() {
			report(record, "zero quantity, record is dropped")
		}
		if t.Date.IsZero() {
			report(record, "unparseable date, record is applied last and its row suppressed")
		}
		if t.UnitPrice().IsZero() && (IsBuyCode(t.Type) || IsSellCode(t.Type)) {
			report(record, "no rate and no net amount, a zero price enters the cost basis")
		}
	}
	for i, b := range rs.Bonuses {
		record := fmt.Sprintf("bonus[%d]", i)
		if b.Security != security {
			report(record, "security %q does not match %q, record is ignored", b.Security, security)
			continue
		}
		if b.ExDate.IsZero() {
			report(record, "unparseable ex date, record is applied last and its row suppressed")
		}
	}
	for i, s := range rs.Splits {
		record := fmt.Sprintf("split[%d]", i)
		if s.Security != security {
			report(record, "security %q does not match %q, record is ignored", s.Security, security)
			continue
		}
		if !s.Ratio1.IsPositive() || !s.Ratio2.IsPositive() {
			report(record, "ratio %v:%v is not positive, split is skipped", s.Ratio1, s.Ratio2)
		}
		if s.IssueDate.IsZero() {
			report(record, "unparseable issue date, record is applied last and its row suppressed")
		}
	}
	return issues
}
