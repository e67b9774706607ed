package holdings

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DecodeRecords reads a record set from a stream of JSONL data: one JSON
// object per line, discriminated by a "kind" field ("transaction",
// "bonus" or "split"). Field names inside each object may use any of the
// store's spellings; the adapter resolves them.
func DecodeRecords(r io.Reader) (*RecordSet, error) {
	rs := &RecordSet{}
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var obj map[string]any
		if err := json.Unmarshal(lineBytes, &obj); err != nil {
			return nil, fmt.Errorf("line %d: not a JSON object: %w", line, err)
		}

		kind, _ := obj["kind"].(string)
		switch kind {
		case "transaction":
			t, err := TransactionFromObject(obj)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			rs.Transactions = append(rs.Transactions, t)
		case "bonus":
			b, err := BonusFromObject(obj)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			rs.Bonuses = append(rs.Bonuses, b)
		case "split":
			s, err := SplitFromObject(obj)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			rs.Splits = append(rs.Splits, s)
		default:
			return nil, fmt.Errorf("line %d: unknown record kind %q", line, kind)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return rs, nil
}

// EncodeRecord marshals a single record to JSON and writes it to the
// writer, followed by a newline, in JSONL format.
func EncodeRecord(w io.Writer, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// EncodeRecords persists a whole record set to an io.Writer in JSONL
// format, transactions first, then bonuses, then splits, matching the
// concatenation order the sequencer uses as its final tie-break.
func EncodeRecords(w io.Writer, rs *RecordSet) error {
	for _, t := range rs.Transactions {
		if err := EncodeRecord(w, t); err != nil {
			return err
		}
	}
	for _, b := range rs.Bonuses {
		if err := EncodeRecord(w, b); err != nil {
			return err
		}
	}
	for _, s := range rs.Splits {
		if err := EncodeRecord(w, s); err != nil {
			return err
		}
	}
	return nil
}
