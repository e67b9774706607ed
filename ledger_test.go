package holdings

import (
	"encoding/json"
	"math/rand"
	"testing"
)

func TestComputeHoldingsBuySell(t *testing.T) {
	ledger := ComputeHoldings([]TransactionRecord{
		tx("2023-01-01", "BY-", 100, 10),
		tx("2023-02-01", "SL+", 40, 15),
	}, nil, nil)

	if got, want := ledger.Security(), infosys; got != want {
		t.Errorf("Security() = %q, want %q", got, want)
	}
	rows := ledger.Rows()
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	t.Run("buy row", func(t *testing.T) {
		row := rows[0]
		if row.Event != EventBuy {
			t.Errorf("event = %q, want %q", row.Event, EventBuy)
		}
		if row.LotID == 0 {
			t.Error("buy row must carry a lot id")
		}
		if got, want := row.Holdings, Q(100); !got.Equal(want) {
			t.Errorf("holdings = %v, want %v", got, want)
		}
		if got, want := row.CostOfHoldings, INR(1000); !got.Equal(want) {
			t.Errorf("costOfHoldings = %v, want %v", got, want)
		}
		if got, want := row.AverageCost, INR(10); !got.Equal(want) {
			t.Errorf("averageCost = %v, want %v", got, want)
		}
		if row.RealizedPnL != nil {
			t.Error("buy row must not carry realized P&L")
		}
	})

	t.Run("sell row", func(t *testing.T) {
		row := rows[1]
		if row.Event != EventSell {
			t.Errorf("event = %q, want %q", row.Event, EventSell)
		}
		if got, want := row.Holdings, Q(60); !got.Equal(want) {
			t.Errorf("holdings = %v, want %v", got, want)
		}
		if got, want := row.CostOfHoldings, INR(600); !got.Equal(want) {
			t.Errorf("costOfHoldings = %v, want %v", got, want)
		}
		if row.RealizedPnL == nil {
			t.Fatal("sell row must carry realized P&L")
		}
		if got, want := *row.RealizedPnL, INR(200); !got.Equal(want) {
			t.Errorf("realizedPnL = %v, want %v", got, want)
		}
	})

	t.Run("summary is last row", func(t *testing.T) {
		card := ledger.Summary()
		last := rows[len(rows)-1]
		if !card.Holdings.Equal(last.Holdings) {
			t.Errorf("summary holdings = %v, want %v", card.Holdings, last.Holdings)
		}
		if !card.HoldingValue.Equal(last.CostOfHoldings) {
			t.Errorf("summary holdingValue = %v, want %v", card.HoldingValue, last.CostOfHoldings)
		}
		if !card.AverageCost.Equal(last.AverageCost) {
			t.Errorf("summary averageCost = %v, want %v", card.AverageCost, last.AverageCost)
		}
	})
}

func TestComputeHoldingsBonus(t *testing.T) {
	ledger := ComputeHoldings(
		[]TransactionRecord{tx("2023-01-01", "BY-", 100, 10)},
		[]BonusRecord{bonusOn("2023-03-01", 50)},
		nil)

	rows := ledger.Rows()
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	row := rows[1]
	if row.Event != EventBonus {
		t.Errorf("event = %q, want %q", row.Event, EventBonus)
	}
	if got, want := row.Holdings, Q(150); !got.Equal(want) {
		t.Errorf("holdings = %v, want %v", got, want)
	}
	// Bonus shares are free: the cost basis does not move, the average falls.
	if got, want := row.CostOfHoldings, INR(1000); !got.Equal(want) {
		t.Errorf("costOfHoldings = %v, want %v", got, want)
	}
	if got, want := row.AverageCost, INR(1000).Div(Q(150)); !got.Equal(want) {
		t.Errorf("averageCost = %v, want %v", got, want)
	}
}

func TestComputeHoldingsSplit(t *testing.T) {
	t.Run("doubles shares halves price", func(t *testing.T) {
		ledger := ComputeHoldings(
			[]TransactionRecord{tx("2023-01-01", "BY-", 100, 10)},
			nil,
			[]SplitRecord{splitOn("2023-04-01", 1, 2)})

		rows := ledger.Rows()
		if len(rows) != 2 {
			t.Fatalf("got %d rows, want 2", len(rows))
		}
		if rows[0].LotActive {
			t.Error("pre-split buy row must be flagged inactive")
		}
		row := rows[1]
		if row.Event != EventSplit {
			t.Errorf("event = %q, want %q", row.Event, EventSplit)
		}
		if got, want := row.Quantity, Q(200); !got.Equal(want) {
			t.Errorf("qty = %v, want %v", got, want)
		}
		if got, want := row.Price, INR(5); !got.Equal(want) {
			t.Errorf("price = %v, want %v", got, want)
		}
		if got, want := row.Holdings, Q(200); !got.Equal(want) {
			t.Errorf("holdings = %v, want %v", got, want)
		}
		if got, want := row.CostOfHoldings, INR(1000); !got.Equal(want) {
			t.Errorf("costOfHoldings = %v, want %v", got, want)
		}

		open := ledger.ActiveLots()
		if len(open) != 1 {
			t.Fatalf("got %d active lots, want 1", len(open))
		}
		if got, want := open[0].Remaining, Q(200); !got.Equal(want) {
			t.Errorf("active lot remaining = %v, want %v", got, want)
		}
	})

	t.Run("one replacement per open lot", func(t *testing.T) {
		ledger := ComputeHoldings([]TransactionRecord{
			tx("2023-01-01", "BY-", 100, 10),
			tx("2023-02-01", "BY-", 50, 20),
		}, nil, []SplitRecord{splitOn("2023-04-01", 1, 2)})

		rows := ledger.Rows()
		if len(rows) != 4 {
			t.Fatalf("got %d rows, want 4", len(rows))
		}
		// Replacements land in original acquisition order, each row showing
		// the running totals up to that replacement.
		if got, want := rows[2].Holdings, Q(200); !got.Equal(want) {
			t.Errorf("first replacement holdings = %v, want %v", got, want)
		}
		if got, want := rows[3].Holdings, Q(300); !got.Equal(want) {
			t.Errorf("second replacement holdings = %v, want %v", got, want)
		}
		if got, want := rows[3].CostOfHoldings, INR(2000); !got.Equal(want) {
			t.Errorf("final costOfHoldings = %v, want %v", got, want)
		}
		// A sell after the split still consumes the oldest lot first.
		if open := ledger.ActiveLots(); !open[0].UnitPrice.Equal(INR(5)) {
			t.Errorf("oldest lot price = %v, want %v", open[0].UnitPrice, INR(5))
		}
	})

	t.Run("fractional result is floored", func(t *testing.T) {
		ledger := ComputeHoldings(
			[]TransactionRecord{tx("2023-01-01", "BY-", 5, 10)},
			nil,
			[]SplitRecord{splitOn("2023-04-01", 2, 3)})

		rows := ledger.Rows()
		row := rows[len(rows)-1]
		// 5 x 3/2 = 7.5 shares, floored to 7 whole shares.
		if got, want := row.Quantity, Q(7); !got.Equal(want) {
			t.Errorf("qty = %v, want %v", got, want)
		}
		multiplier := Q(3).Div(Q(2))
		if got, want := row.Price, INR(10).Div(multiplier); !got.Equal(want) {
			t.Errorf("price = %v, want %v", got, want)
		}
		if got, want := row.CostOfHoldings, INR(10).Div(multiplier).Mul(Q(7)); !got.Equal(want) {
			t.Errorf("costOfHoldings = %v, want %v", got, want)
		}
	})

	t.Run("invalid ratio is a no-op", func(t *testing.T) {
		ledger := ComputeHoldings(
			[]TransactionRecord{tx("2023-01-01", "BY-", 100, 10)},
			nil,
			[]SplitRecord{splitOn("2023-04-01", 0, 2)})

		if got := len(ledger.Rows()); got != 1 {
			t.Fatalf("got %d rows, want 1", got)
		}
		if !ledger.Rows()[0].LotActive {
			t.Error("buy row must stay active when the split is skipped")
		}
	})

	t.Run("split with no open lots is a no-op", func(t *testing.T) {
		ledger := ComputeHoldings(nil, nil, []SplitRecord{splitOn("2023-04-01", 1, 2)})
		if got := len(ledger.Rows()); got != 0 {
			t.Errorf("got %d rows, want 0", got)
		}
	})
}

func TestComputeHoldingsOversell(t *testing.T) {
	ledger := ComputeHoldings([]TransactionRecord{
		tx("2023-01-01", "BY-", 100, 10),
		tx("2023-02-01", "SL+", 150, 12),
	}, nil, nil)

	rows := ledger.Rows()
	row := rows[len(rows)-1]
	// The sale is capped at the 100 shares actually held.
	if got, want := row.Quantity, Q(100); !got.Equal(want) {
		t.Errorf("qty = %v, want %v", got, want)
	}
	if got, want := row.Holdings, Q(0); !got.Equal(want) {
		t.Errorf("holdings = %v, want %v", got, want)
	}
	if got, want := row.CostOfHoldings, INR(0); !got.Equal(want) {
		t.Errorf("costOfHoldings = %v, want %v", got, want)
	}
	if got, want := *row.RealizedPnL, INR(200); !got.Equal(want) {
		t.Errorf("realizedPnL = %v, want %v", got, want)
	}
	if open := ledger.ActiveLots(); len(open) != 0 {
		t.Errorf("got %d active lots, want 0", len(open))
	}
}

func TestComputeHoldingsFIFO(t *testing.T) {
	ledger := ComputeHoldings([]TransactionRecord{
		tx("2023-01-01", "BY-", 100, 10),
		tx("2023-02-01", "BY-", 100, 20),
		tx("2023-03-01", "SL+", 150, 30),
	}, nil, nil)

	rows := ledger.Rows()
	row := rows[len(rows)-1]
	// FIFO cost: 100 at 10, then 50 at 20, leaving 50 at 20.
	if got, want := row.Holdings, Q(50); !got.Equal(want) {
		t.Errorf("holdings = %v, want %v", got, want)
	}
	if got, want := row.CostOfHoldings, INR(1000); !got.Equal(want) {
		t.Errorf("costOfHoldings = %v, want %v", got, want)
	}
	if got, want := row.AverageCost, INR(20); !got.Equal(want) {
		t.Errorf("averageCost = %v, want %v", got, want)
	}
	if got, want := *row.RealizedPnL, INR(2500); !got.Equal(want) {
		t.Errorf("realizedPnL = %v, want %v", got, want)
	}
}

func TestComputeHoldingsNoOpCode(t *testing.T) {
	ledger := ComputeHoldings([]TransactionRecord{
		tx("2023-01-01", "BY-", 100, 10),
		tx("2023-02-01", "TRF", 40, 15), // transfer-only, neither buy nor sell
	}, nil, nil)

	rows := ledger.Rows()
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if got, want := rows[0].Holdings, Q(100); !got.Equal(want) {
		t.Errorf("holdings = %v, want %v", got, want)
	}
}

func TestComputeHoldingsZeroDate(t *testing.T) {
	undated := TransactionRecord{
		Security: infosys,
		Type:     "BY-",
		Quantity: Q(10),
		Rate:     INR(20),
		// Date left zero, as the adapter produces for an unparseable value.
	}
	ledger := ComputeHoldings([]TransactionRecord{
		tx("2023-01-01", "BY-", 100, 10),
		undated,
		tx("2023-02-01", "SL+", 105, 15),
	}, nil, nil)

	rows := ledger.Rows()
	// The undated buy is applied after every dated event and emits no row,
	// so the sell only sees the 100 dated shares.
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	sell := rows[1]
	if got, want := sell.Quantity, Q(100); !got.Equal(want) {
		t.Errorf("sell qty = %v, want %v", got, want)
	}
	if got, want := sell.Holdings, Q(0); !got.Equal(want) {
		t.Errorf("holdings = %v, want %v", got, want)
	}

	// The undated lot still exists in the final state.
	open := ledger.ActiveLots()
	if len(open) != 1 {
		t.Fatalf("got %d active lots, want 1", len(open))
	}
	if got, want := open[0].Remaining, Q(10); !got.Equal(want) {
		t.Errorf("active lot remaining = %v, want %v", got, want)
	}
}

func TestComputeHoldingsEmpty(t *testing.T) {
	ledger := ComputeHoldings(nil, nil, nil)
	if got := ledger.Security(); got != "" {
		t.Errorf("Security() = %q, want empty", got)
	}
	if got := len(ledger.Rows()); got != 0 {
		t.Errorf("got %d rows, want 0", got)
	}
	card := ledger.Summary()
	if !card.Holdings.IsZero() || !card.HoldingValue.IsZero() || !card.AverageCost.IsZero() {
		t.Errorf("empty summary must be all zero, got %+v", card)
	}
}

func TestComputeHoldingsInputOrderIndependence(t *testing.T) {
	transactions := []TransactionRecord{
		tx("2023-01-01", "BY-", 100, 10),
		tx("2023-02-01", "BY-", 50, 20),
		tx("2023-03-01", "SL+", 120, 30),
		tx("2023-05-01", "BY-", 30, 25),
	}
	bonuses := []BonusRecord{bonusOn("2023-04-01", 25)}
	splits := []SplitRecord{splitOn("2023-06-01", 1, 2)}

	want, err := json.Marshal(ComputeHoldings(transactions, bonuses, splits).Rows())
	if err != nil {
		t.Fatal(err)
	}

	shuffled := make([]TransactionRecord, len(transactions))
	copy(shuffled, transactions)
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		rnd.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got, err := json.Marshal(ComputeHoldings(shuffled, bonuses, splits).Rows())
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != string(want) {
			t.Fatalf("shuffle %d: ledger differs\ngot  %s\nwant %s", i, got, want)
		}
	}
}

// TestComputeHoldingsAgainstReference replays random integer trades against
// an independently written FIFO model and compares the final state and the
// total realized P&L.
func TestComputeHoldingsAgainstReference(t *testing.T) {
	type refLot struct{ qty, price int64 }

	rnd := rand.New(rand.NewSource(7))
	for round := 0; round < 20; round++ {
		var transactions []TransactionRecord
		var queue []refLot
		var refHoldings, refCost, refRealized int64

		day := MustParseDate("2023-01-01")
		n := 5 + rnd.Intn(40)
		for i := 0; i < n; i++ {
			day = day.Add(1 + rnd.Intn(3))
			price := int64(1 + rnd.Intn(50))
			if rnd.Intn(2) == 0 {
				qty := int64(1 + rnd.Intn(100))
				transactions = append(transactions, TransactionRecord{
					Security: infosys, Type: "BY-",
					Quantity: Q(qty), Rate: INR(float64(price)), Date: day,
				})
				queue = append(queue, refLot{qty, price})
				refHoldings += qty
				refCost += qty * price
			} else {
				qty := int64(1 + rnd.Intn(150))
				transactions = append(transactions, TransactionRecord{
					Security: infosys, Type: "SL+",
					Quantity: Q(qty), Rate: INR(float64(price)), Date: day,
				})
				if qty > refHoldings {
					qty = refHoldings
				}
				remaining := qty
				for remaining > 0 {
					lot := &queue[0]
					used := lot.qty
					if remaining < used {
						used = remaining
					}
					refCost -= used * lot.price
					refRealized += used * (price - lot.price)
					lot.qty -= used
					remaining -= used
					if lot.qty == 0 {
						queue = queue[1:]
					}
				}
				refHoldings -= qty
			}
		}

		ledger := ComputeHoldings(transactions, nil, nil)
		rows := ledger.Rows()
		last := rows[len(rows)-1]
		if got, want := last.Holdings, Q(refHoldings); !got.Equal(want) {
			t.Fatalf("round %d: holdings = %v, want %v", round, got, want)
		}
		// Compare by difference: the currency stays weak until the first
		// priced row lands.
		if got, want := last.CostOfHoldings, INR(float64(refCost)); !got.Sub(want).IsZero() {
			t.Fatalf("round %d: costOfHoldings = %v, want %v", round, got, want)
		}

		var realized Money
		var openQty Quantity
		for _, row := range rows {
			if row.RealizedPnL != nil {
				realized = realized.Add(*row.RealizedPnL)
			}
		}
		for _, lot := range ledger.ActiveLots() {
			openQty = openQty.Add(lot.Remaining)
		}
		if want := INR(float64(refRealized)); !realized.Sub(want).IsZero() {
			t.Fatalf("round %d: total realizedPnL = %v, want %v", round, realized, want)
		}
		if !openQty.Equal(last.Holdings) {
			t.Fatalf("round %d: open lots hold %v, ledger says %v", round, openQty, last.Holdings)
		}
	}
}
