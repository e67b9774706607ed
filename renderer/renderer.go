// Package renderer turns computed ledgers into markdown reports for the
// terminal or for export.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/equitydesk/holdings"
	md "github.com/nao1215/markdown"
)

// LedgerMarkdown renders the full per-event ledger as a markdown table.
func LedgerMarkdown(l *holdings.Ledger) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	title := "Transaction History"
	if l.Security() != "" {
		title = fmt.Sprintf("Transaction History - %s", l.Security())
	}
	doc.H1(title)

	rows := l.Rows()
	if len(rows) == 0 {
		doc.PlainText("No ledger rows.")
		return doc.String()
	}

	table := md.TableSet{
		Header: []string{"Date", "Event", "Lot", "Qty", "Price", "Net Amount", "Holdings", "Cost", "Avg Cost", "Realized P&L", "Active"},
	}
	for _, r := range rows {
		lot := "-"
		if r.LotID != 0 {
			lot = fmt.Sprintf("#%d", r.LotID)
		}
		pnl := "-"
		if r.RealizedPnL != nil {
			pnl = r.RealizedPnL.String()
		}
		active := " "
		if r.LotActive {
			active = "X"
		}
		table.Rows = append(table.Rows, []string{
			r.Date.String(),
			string(r.Event),
			lot,
			r.Quantity.String(),
			r.Price.String(),
			r.NetAmount.String(),
			r.Holdings.String(),
			r.CostOfHoldings.String(),
			r.AverageCost.String(),
			pnl,
			active,
		})
	}
	doc.Table(table)

	return doc.String()
}

// CardMarkdown renders the holdings summary card.
func CardMarkdown(s holdings.Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	security := s.Security
	if security == "" {
		security = "(no security)"
	}
	doc.H1(fmt.Sprintf("Holdings - %s", security))

	table := md.TableSet{
		Header: []string{"Holdings", "Holding Value", "Average Cost"},
		Rows: [][]string{
			{s.Holdings.String(), s.HoldingValue.String(), s.AverageCost.String()},
		},
	}
	doc.Table(table)

	return doc.String()
}
