package holdings

// Broker transaction codes are short fixed strings. A code can match the
// buy classifier, the sell classifier, or neither; a code matching neither
// is a deliberate no-op (transfer-only codes), not an error.

var buyCodes = map[string]struct{}{
	"BY-": {}, // market buy
	"SQB": {}, // square-off buy
	"OPI": {}, // opening position / inward transfer
}

var sellCodes = map[string]struct{}{
	"SL+": {}, // market sell
	"SQS": {}, // square-off sell
	"OPO": {}, // outward transfer
	"NF-": {}, // net-off
}

// IsBuyCode reports whether the transaction code increases holdings
// through a purchase or inward transfer.
func IsBuyCode(code string) bool {
	_, ok := buyCodes[code]
	return ok
}

// IsSellCode reports whether the transaction code decreases holdings
// through a sale or outward transfer.
func IsSellCode(code string) bool {
	_, ok := sellCodes[code]
	return ok
}
