package holdings

import (
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// The fetch layers feeding this engine disagree on field naming: the same
// store exposes `ISIN` or `isin`, `QTY` or `qty` depending on the query
// path. Rather than letting that duck-typing leak into the engine, this
// adapter probes the loosely-typed object with jsonpath and builds the one
// canonical record shape.

// FieldError reports a raw record field that could not be coerced to its
// canonical type. It is the only fail-fast condition at the engine
// boundary: producing silently wrong financial figures from a mangled
// quantity is worse than aborting the decode.
type FieldError struct {
	Field string // canonical field name
	Value any    // offending raw value
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: cannot coerce %v (%T)", e.Field, e.Value, e.Value)
}

// lookup probes the object for the first alias that resolves.
func lookup(obj map[string]any, aliases ...string) (any, bool) {
	for _, alias := range aliases {
		v, err := jsonpath.Get("$."+alias, obj)
		if err != nil {
			continue
		}
		// jsonpath is never clear about whether it returns a list of one
		// answer or a single answer; keep the first one if any.
		if jlist, ok := v.([]any); ok {
			if len(jlist) == 0 {
				continue
			}
			v = jlist[0]
		}
		if v != nil {
			return v, true
		}
	}
	return nil, false
}

// asString coerces a raw value to a string.
func asString(field string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &FieldError{Field: field, Value: v}
	}
	return strings.TrimSpace(s), nil
}

// asQuantity coerces a raw value (number or numeric string) to a Quantity.
func asQuantity(field string, v any) (Quantity, error) {
	switch n := v.(type) {
	case float64:
		return Q(n), nil
	case int:
		return Q(n), nil
	case int64:
		return Q(n), nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return Quantity{}, &FieldError{Field: field, Value: v}
		}
		return Q(d), nil
	default:
		return Quantity{}, &FieldError{Field: field, Value: v}
	}
}

// asMoney coerces a raw value to a currency-weak Money.
func asMoney(field string, v any) (Money, error) {
	q, err := asQuantity(field, v)
	if err != nil {
		return Money{}, &FieldError{Field: field, Value: v}
	}
	return M(q.value, ""), nil
}

// asDate coerces a raw value to a Date. An unparseable date is NOT an
// error: it yields the zero Date, which sorts last and is suppressed from
// the output rows, so one bad date never aborts a reporting run.
func asDate(v any) Date {
	s, ok := v.(string)
	if !ok {
		return Date{}
	}
	d, err := ParseDate(s)
	if err != nil {
		return Date{}
	}
	return d
}

// TransactionFromObject builds a canonical TransactionRecord from a
// loosely-typed object.
func TransactionFromObject(obj map[string]any) (TransactionRecord, error) {
	var t TransactionRecord
	if v, ok := lookup(obj, "securityId", "ISIN", "isin"); ok {
		s, err := asString("securityId", v)
		if err != nil {
			return t, err
		}
		t.Security = s
	}
	if v, ok := lookup(obj, "tranType", "TRAN_TYPE", "tran_type"); ok {
		s, err := asString("tranType", v)
		if err != nil {
			return t, err
		}
		t.Type = s
	}
	if v, ok := lookup(obj, "qty", "QTY", "quantity"); ok {
		q, err := asQuantity("qty", v)
		if err != nil {
			return t, err
		}
		// Signed magnitudes appear on sell codes in some stores; the
		// quantity is always kept unsigned.
		t.Quantity = q.Abs()
	}
	if v, ok := lookup(obj, "rate", "RATE", "price"); ok {
		m, err := asMoney("rate", v)
		if err != nil {
			return t, err
		}
		t.Rate = m
	}
	if v, ok := lookup(obj, "netAmount", "NET_AMOUNT", "net_amount"); ok {
		m, err := asMoney("netAmount", v)
		if err != nil {
			return t, err
		}
		t.NetAmount = m
	}
	if v, ok := lookup(obj, "tranDate", "TRAN_DATE", "tran_date", "date"); ok {
		t.Date = asDate(v)
	}
	return t, nil
}

// BonusFromObject builds a canonical BonusRecord from a loosely-typed object.
func BonusFromObject(obj map[string]any) (BonusRecord, error) {
	var b BonusRecord
	if v, ok := lookup(obj, "securityId", "ISIN", "isin"); ok {
		s, err := asString("securityId", v)
		if err != nil {
			return b, err
		}
		b.Security = s
	}
	if v, ok := lookup(obj, "bonusShare", "BONUS_SHARE", "bonus_share", "shares"); ok {
		q, err := asQuantity("bonusShare", v)
		if err != nil {
			return b, err
		}
		b.Shares = q.Abs()
	}
	if v, ok := lookup(obj, "exDate", "EX_DATE", "ex_date", "date"); ok {
		b.ExDate = asDate(v)
	}
	return b, nil
}

// SplitFromObject builds a canonical SplitRecord from a loosely-typed object.
func SplitFromObject(obj map[string]any) (SplitRecord, error) {
	var s SplitRecord
	if v, ok := lookup(obj, "securityId", "ISIN", "isin"); ok {
		id, err := asString("securityId", v)
		if err != nil {
			return s, err
		}
		s.Security = id
	}
	if v, ok := lookup(obj, "ratio1", "RATIO1"); ok {
		q, err := asQuantity("ratio1", v)
		if err != nil {
			return s, err
		}
		s.Ratio1 = q
	}
	if v, ok := lookup(obj, "ratio2", "RATIO2"); ok {
		q, err := asQuantity("ratio2", v)
		if err != nil {
			return s, err
		}
		s.Ratio2 = q
	}
	if v, ok := lookup(obj, "issueDate", "ISSUE_DATE", "issue_date", "date"); ok {
		s.IssueDate = asDate(v)
	}
	return s, nil
}
