package holdings

import "sort"

// event represents a single, atomic action on the active security.
// It is the lowest-level, immutable fact the lot ledger folds over.
type event interface {
	when() Date
	kind() eventKind
}

// eventKind doubles as the same-date tie-break priority: trades apply
// before bonuses, bonuses before splits.
type eventKind int

const (
	kindTrade eventKind = iota
	kindBonus
	kindSplit
)

// trade is a buy, sell or transfer-only action.
type trade struct {
	on       Date
	code     string
	quantity Quantity
	price    Money // effective per-unit price, zero when unknown
}

func (e trade) when() Date      { return e.on }
func (e trade) kind() eventKind { return kindTrade }

// bonus credits shares at zero cost basis.
type bonus struct {
	on     Date
	shares Quantity
}

func (e bonus) when() Date      { return e.on }
func (e bonus) kind() eventKind { return kindBonus }

// split multiplies the open share count by ratio2/ratio1.
type split struct {
	on     Date
	ratio1 Quantity
	ratio2 Quantity
}

func (e split) when() Date      { return e.on }
func (e split) kind() eventKind { return kindSplit }

// activeSecurity resolves the security this engine run is about: the id of
// the first transaction, else the first bonus, else the first split.
// Empty means no active security and the run returns a zero result.
func activeSecurity(transactions []TransactionRecord, bonuses []BonusRecord, splits []SplitRecord) string {
	for _, t := range transactions {
		if t.Security != "" {
			return t.Security
		}
	}
	for _, b := range bonuses {
		if b.Security != "" {
			return b.Security
		}
	}
	for _, s := range splits {
		if s.Security != "" {
			return s.Security
		}
	}
	return ""
}

// normalize filters the three record bags down to the active security and
// converts them into events, in concatenation order (transactions, then
// bonuses, then splits). Zero-quantity transactions are dropped as no-ops.
func normalize(security string, transactions []TransactionRecord, bonuses []BonusRecord, splits []SplitRecord) []event {
	events := make([]event, 0, len(transactions)+len(bonuses)+len(splits))
	for _, t := range transactions {
		if t.Security != security {
			continue
		}
		if t.Quantity.Abs().IsZero() {
			continue
		}
		events = append(events, trade{
			on:       t.Date,
			code:     t.Type,
			quantity: t.Quantity.Abs(),
			price:    t.UnitPrice(),
		})
	}
	for _, b := range bonuses {
		if b.Security != security {
			continue
		}
		events = append(events, bonus{on: b.ExDate, shares: b.Shares})
	}
	for _, s := range splits {
		if s.Security != security {
			continue
		}
		events = append(events, split{on: s.IssueDate, ratio1: s.Ratio1, ratio2: s.Ratio2})
	}
	return events
}

// sequence orders events by the explicit priority tuple
// (date, kind, input index). Zero dates (unparseable upstream values)
// sort after every real date. The input index makes the order fully
// deterministic instead of leaning on sort stability.
func sequence(events []event) []event {
	type sequenced struct {
		event
		index int
	}
	seq := make([]sequenced, len(events))
	for i, e := range events {
		seq[i] = sequenced{event: e, index: i}
	}
	sort.Slice(seq, func(i, j int) bool {
		a, b := seq[i], seq[j]
		ad, bd := a.when(), b.when()
		switch {
		case ad.IsZero() != bd.IsZero():
			return bd.IsZero()
		case ad != bd:
			return ad.Before(bd)
		case a.kind() != b.kind():
			return a.kind() < b.kind()
		default:
			return a.index < b.index
		}
	})
	ordered := make([]event, len(seq))
	for i, s := range seq {
		ordered[i] = s.event
	}
	return ordered
}
