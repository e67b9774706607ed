package holdings

// infosys is the security id used across engine tests.
const infosys = "INE009A01021"

// INR is a helper for test to create rupee money from const
func INR(v float64) Money { return M(v, "INR") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// tx builds a dated transaction record for the test security.
func tx(day, code string, qty, rate float64) TransactionRecord {
	return TransactionRecord{
		Security: infosys,
		Type:     code,
		Quantity: Q(qty),
		Rate:     INR(rate),
		Date:     MustParseDate(day),
	}
}

// bonusOn builds a bonus record for the test security.
func bonusOn(day string, shares float64) BonusRecord {
	return BonusRecord{
		Security: infosys,
		Shares:   Q(shares),
		ExDate:   MustParseDate(day),
	}
}

// splitOn builds a split record for the test security.
func splitOn(day string, ratio1, ratio2 int) SplitRecord {
	return SplitRecord{
		Security:  infosys,
		Ratio1:    Q(ratio1),
		Ratio2:    Q(ratio2),
		IssueDate: MustParseDate(day),
	}
}
