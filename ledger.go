package holdings

// EventType identifies what produced a ledger row.
type EventType string

const (
	EventBuy   EventType = "BUY"
	EventSell  EventType = "SELL"
	EventBonus EventType = "BONUS"
	EventSplit EventType = "SPLIT"
)

// Lot is an open (or partially consumed) purchase batch. Lots are owned
// exclusively by the engine: one is destroyed when fully consumed by a
// sale, and logically replaced (deactivated, new lot created) by a split.
type Lot struct {
	ID        int64 // monotonic, scoped to one engine run
	Original  Quantity
	Remaining Quantity
	UnitPrice Money
	Acquired  Date
	Active    bool
}

// LedgerRow is one output record per processed event, carrying the
// holdings state after that event was applied.
type LedgerRow struct {
	LotID          int64 // zero when the event created no lot (sells)
	Date           Date
	Event          EventType
	Quantity       Quantity
	Price          Money
	NetAmount      Money
	Holdings       Quantity
	CostOfHoldings Money
	AverageCost    Money
	RealizedPnL    *Money // nil for non-sell events
	LotActive      bool
}

// MarshalJSON implements the json.Marshaler interface for LedgerRow.
func (r LedgerRow) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("lotId", r.LotID)
	w.Append("date", r.Date)
	w.Append("event", r.Event)
	w.Append("qty", r.Quantity)
	w.Append("price", r.Price.exact())
	w.Append("netAmount", r.NetAmount)
	w.Append("holdings", r.Holdings)
	w.Append("costOfHoldings", r.CostOfHoldings)
	w.Append("averageCost", r.AverageCost.exact())
	if r.RealizedPnL != nil {
		w.Append("realizedPnL", *r.RealizedPnL)
	}
	w.Append("lotActive", r.LotActive)
	return w.MarshalJSON()
}

// Summary is the "card" projection of a computed ledger: the current
// position taken from the final ledger row.
type Summary struct {
	Security     string
	Holdings     Quantity
	HoldingValue Money
	AverageCost  Money
}

// MarshalJSON implements the json.Marshaler interface for Summary.
func (s Summary) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("securityId", s.Security)
	w.Append("holdings", s.Holdings)
	w.Append("holdingValue", s.HoldingValue)
	w.Append("averageCost", s.AverageCost.exact())
	return w.MarshalJSON()
}

// Ledger is the computed result of one engine run: the chronological rows
// and the final lot state for one (account, security) slice. It retains no
// state across runs; concurrent runs over independent record sets need no
// synchronization.
type Ledger struct {
	security string
	rows     []LedgerRow
	lots     []*Lot // every lot ever created, in creation order
}

// Security returns the active security id resolved for this run.
func (l *Ledger) Security() string { return l.security }

// Rows returns the full per-event ledger in chronological order.
func (l *Ledger) Rows() []LedgerRow { return l.rows }

// ActiveLots returns a copy of the lots still open, oldest first.
func (l *Ledger) ActiveLots() []Lot {
	var open []Lot
	for _, lot := range l.lots {
		if lot.Active && !lot.Remaining.IsZero() {
			open = append(open, *lot)
		}
	}
	return open
}

// Summary projects the final ledger row into a holdings card. It never
// recomputes anything, so the card and the full ledger are consistent by
// construction for identical input.
func (l *Ledger) Summary() Summary {
	if len(l.rows) == 0 {
		return Summary{Security: l.security}
	}
	last := l.rows[len(l.rows)-1]
	return Summary{
		Security:     l.security,
		Holdings:     last.Holdings,
		HoldingValue: last.CostOfHoldings,
		AverageCost:  last.AverageCost,
	}
}

// ComputeHoldings folds an unordered bag of transaction, bonus and split
// records for one security into a deterministic, chronologically
// consistent ledger of holdings, cost basis, weighted average price and
// realized profit/loss.
//
// The engine degrades silently on bad data instead of failing: oversells
// are capped at current holdings, invalid split ratios are skipped,
// unknown transaction codes do nothing, and records with unparseable
// dates are applied last and excluded from the output rows.
func ComputeHoldings(transactions []TransactionRecord, bonuses []BonusRecord, splits []SplitRecord) *Ledger {
	security := activeSecurity(transactions, bonuses, splits)
	ledger := &Ledger{security: security}
	if security == "" {
		return ledger
	}

	events := sequence(normalize(security, transactions, bonuses, splits))

	book := &lotBook{}
	for _, e := range events {
		switch v := e.(type) {
		case trade:
			switch {
			case IsBuyCode(v.code):
				book.buy(v.on, v.quantity, v.price)
			case IsSellCode(v.code):
				book.sell(v.on, v.quantity, v.price)
			}
			// A code matching neither classifier is a silent no-op.
		case bonus:
			book.credit(v.on, v.shares)
		case split:
			book.split(v.on, v.ratio1, v.ratio2)
		}
	}

	ledger.rows = book.rows
	ledger.lots = book.all
	return ledger
}

// lotBook is the mutable state of one engine run: the FIFO queue of open
// lots and the running holdings totals.
type lotBook struct {
	counter  int64  // lot id source, scoped to this run
	queue    []*Lot // open lots, oldest first
	all      []*Lot // every lot created, for final state inspection
	holdings Quantity
	cost     Money // cost basis of the open holdings
	rows     []LedgerRow
}

// newLot creates and enqueues an active lot.
func (b *lotBook) newLot(on Date, quantity Quantity, unitPrice Money) *Lot {
	b.counter++
	lot := &Lot{
		ID:        b.counter,
		Original:  quantity,
		Remaining: quantity,
		UnitPrice: unitPrice,
		Acquired:  on,
		Active:    true,
	}
	b.queue = append(b.queue, lot)
	b.all = append(b.all, lot)
	return lot
}

// averageCost derives the weighted average price of the open holdings.
func (b *lotBook) averageCost() Money {
	if !b.holdings.IsPositive() {
		return Money{}
	}
	return b.cost.Div(b.holdings)
}

// appendRow emits one ledger row carrying the running totals. Rows for
// events with a zero date are suppressed: the event still mutated the
// book, but the presentation layers cannot place it on a timeline.
func (b *lotBook) appendRow(row LedgerRow) {
	if row.Date.IsZero() {
		return
	}
	row.Holdings = b.holdings
	row.CostOfHoldings = b.cost
	row.AverageCost = b.averageCost()
	b.rows = append(b.rows, row)
}

// buy pushes a new lot and grows holdings.
func (b *lotBook) buy(on Date, quantity Quantity, price Money) {
	lot := b.newLot(on, quantity, price)
	b.holdings = b.holdings.Add(quantity)
	b.cost = b.cost.Add(price.Mul(quantity))
	b.appendRow(LedgerRow{
		LotID:     lot.ID,
		Date:      on,
		Event:     EventBuy,
		Quantity:  quantity,
		Price:     price,
		NetAmount: price.Mul(quantity),
		LotActive: true,
	})
}

// credit pushes a zero-cost bonus lot.
func (b *lotBook) credit(on Date, shares Quantity) {
	lot := b.newLot(on, shares, Money{})
	b.holdings = b.holdings.Add(shares)
	b.appendRow(LedgerRow{
		LotID:     lot.ID,
		Date:      on,
		Event:     EventBonus,
		Quantity:  shares,
		Price:     Money{},
		NetAmount: Money{},
		LotActive: true,
	})
}

// sell consumes open lots oldest-first. An oversell is capped at current
// holdings, never driving them negative. Realized P&L is the proceeds of
// the capped quantity minus the FIFO cost of the consumed lots.
func (b *lotBook) sell(on Date, quantity Quantity, price Money) {
	sellQty := quantity.Min(b.holdings)

	var fifoCost Money
	remaining := sellQty
	for len(b.queue) > 0 && remaining.IsPositive() {
		lot := b.queue[0]
		used := lot.Remaining.Min(remaining)
		fifoCost = fifoCost.Add(lot.UnitPrice.Mul(used))
		lot.Remaining = lot.Remaining.Sub(used)
		remaining = remaining.Sub(used)
		if lot.Remaining.IsZero() {
			// Fully consumed lots are destroyed.
			b.queue = b.queue[1:]
		}
	}

	b.holdings = b.holdings.Sub(sellQty)
	b.cost = b.cost.Sub(fifoCost)
	realized := price.Mul(sellQty).Sub(fifoCost)
	b.appendRow(LedgerRow{
		Date:        on,
		Event:       EventSell,
		Quantity:    sellQty,
		Price:       price,
		NetAmount:   price.Mul(sellQty),
		RealizedPnL: &realized,
		LotActive:   true,
	})
}

// split replaces every open lot with a ratio-adjusted successor.
//
// A split changes the per-share economics of every open lot without
// creating or destroying value: each replacement preserves
// quantity x price (up to flooring the share count) while reindexing lot
// identity, so later sells still consume in original acquisition order.
func (b *lotBook) split(on Date, ratio1, ratio2 Quantity) {
	if !ratio1.IsPositive() || !ratio2.IsPositive() {
		return // invalid ratios, skip the split
	}
	if len(b.queue) == 0 {
		return
	}
	multiplier := ratio2.Div(ratio1)

	// Snapshot and retire the open lots, and flip the rows that still
	// present them as active so display layers can strike the pre-split
	// state.
	snapshot := b.queue
	retired := make(map[int64]struct{}, len(snapshot))
	for _, lot := range snapshot {
		lot.Active = false
		retired[lot.ID] = struct{}{}
	}
	for i := range b.rows {
		if _, ok := retired[b.rows[i].LotID]; ok {
			b.rows[i].LotActive = false
		}
	}

	// Rebuild the queue: exactly one replacement lot per retired lot, in
	// original acquisition order, accumulating the running totals as each
	// one lands.
	b.queue = nil
	b.holdings = Quantity{}
	b.cost = Money{}
	for _, old := range snapshot {
		newQty := old.Remaining.Mul(multiplier).Floor()
		newPrice := old.UnitPrice.Div(multiplier)
		lot := b.newLot(on, newQty, newPrice)
		b.holdings = b.holdings.Add(newQty)
		b.cost = b.cost.Add(newPrice.Mul(newQty))
		b.appendRow(LedgerRow{
			LotID:     lot.ID,
			Date:      on,
			Event:     EventSplit,
			Quantity:  newQty,
			Price:     newPrice,
			NetAmount: newPrice.Mul(newQty),
			LotActive: true,
		})
	}
}
