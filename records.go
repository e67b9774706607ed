package holdings

// This file defines the canonical record shapes the engine consumes.
// Upstream fetch layers (query/pagination, CSV uploads) deliver loosely
// shaped objects; the adapter in adapter.go converts those into these
// types so the engine itself never sees a duck-typed field again.

// TransactionRecord is one trade as fetched from the transaction store.
// It is immutable once built.
type TransactionRecord struct {
	Security  string   // ISIN of the traded security
	Type      string   // broker transaction code, e.g. "BY-", "SL+"
	Quantity  Quantity // magnitude of the trade, always non-negative
	Rate      Money    // price per unit, zero when the store had none
	NetAmount Money    // total consideration, used to derive a rate when Rate is zero
	Date      Date     // trade date, zero when the raw date failed to parse
}

// UnitPrice returns the effective per-unit price of the trade: the rate
// when present, otherwise net amount over quantity, otherwise zero.
// A zero price is a silent data-quality issue that propagates into the
// weighted average cost, mirroring the upstream reporting pipelines.
func (t TransactionRecord) UnitPrice() Money {
	if !t.Rate.IsZero() {
		return t.Rate
	}
	if !t.NetAmount.IsZero() && !t.Quantity.IsZero() {
		return t.NetAmount.Div(t.Quantity)
	}
	return Money{}
}

// BonusRecord is a bonus share issue: shares credited at zero cost basis.
type BonusRecord struct {
	Security string
	Shares   Quantity
	ExDate   Date
}

// SplitRecord is a stock split. The share count multiplies by
// Ratio2/Ratio1 on the issue date.
type SplitRecord struct {
	Security  string
	Ratio1    Quantity
	Ratio2    Quantity
	IssueDate Date
}

// RecordSet groups the three record collections fetched for one
// (account, security) request. The collections are unsorted bags; the
// engine orders them itself.
type RecordSet struct {
	Transactions []TransactionRecord
	Bonuses      []BonusRecord
	Splits       []SplitRecord
}

// Compute runs the FIFO holdings engine over the record set.
func (rs *RecordSet) Compute() *Ledger {
	return ComputeHoldings(rs.Transactions, rs.Bonuses, rs.Splits)
}

// MarshalJSON implements the json.Marshaler interface for TransactionRecord.
func (t TransactionRecord) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("kind", "transaction")
	w.Append("securityId", t.Security)
	w.Append("tranType", t.Type)
	w.Append("qty", t.Quantity)
	if !t.Rate.IsZero() {
		w.Append("rate", t.Rate.exact())
	}
	if !t.NetAmount.IsZero() {
		w.Append("netAmount", t.NetAmount)
	}
	w.Append("tranDate", t.Date)
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface for BonusRecord.
func (b BonusRecord) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("kind", "bonus")
	w.Append("securityId", b.Security)
	w.Append("bonusShare", b.Shares)
	w.Append("exDate", b.ExDate)
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface for SplitRecord.
func (s SplitRecord) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("kind", "split")
	w.Append("securityId", s.Security)
	w.Append("ratio1", s.Ratio1)
	w.Append("ratio2", s.Ratio2)
	w.Append("issueDate", s.IssueDate)
	return w.MarshalJSON()
}
