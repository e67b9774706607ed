package renderer

import (
	"strings"
	"testing"

	"github.com/equitydesk/holdings"
)

func testLedger() *holdings.Ledger {
	return holdings.ComputeHoldings([]holdings.TransactionRecord{
		{
			Security: "INE009A01021",
			Type:     "BY-",
			Quantity: holdings.Q(100),
			Rate:     holdings.M(10, "INR"),
			Date:     holdings.MustParseDate("2023-01-01"),
		},
		{
			Security: "INE009A01021",
			Type:     "SL+",
			Quantity: holdings.Q(40),
			Rate:     holdings.M(15, "INR"),
			Date:     holdings.MustParseDate("2023-02-01"),
		},
	}, nil, nil)
}

func TestLedgerMarkdown(t *testing.T) {
	got := LedgerMarkdown(testLedger())

	for _, want := range []string{
		"# Transaction History",
		"INE009A01021",
		"BUY",
		"SELL",
		"2023-01-01",
		"2023-02-01",
		"#1", // lot id of the buy
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output does not contain %q:\n%s", want, got)
		}
	}
}

func TestLedgerMarkdownEmpty(t *testing.T) {
	got := LedgerMarkdown(holdings.ComputeHoldings(nil, nil, nil))
	if !strings.Contains(got, "No ledger rows.") {
		t.Errorf("empty ledger output = %q, want a no-rows notice", got)
	}
}

func TestCardMarkdown(t *testing.T) {
	got := CardMarkdown(testLedger().Summary())

	for _, want := range []string{
		"# Holdings",
		"INE009A01021",
		"Average Cost",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output does not contain %q:\n%s", want, got)
		}
	}
}
