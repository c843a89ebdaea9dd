package accounting

import "github.com/shopspring/decimal"

// This package centralises the ledger derivation rules so services and tests
// share one definition. Stored derived values must never drift from these
// formulas: every mutation recomputes them from the submitted inputs
// immediately before persistence.

// TotalDue computes a receivable's total owed amount from the prior-period
// carry and the current-period charge.
func TotalDue(priorAmount, monthlyCharge decimal.Decimal) decimal.Decimal {
	return priorAmount.Add(monthlyCharge)
}

// PaidTotal sums the three payment-method buckets of a receivable.
func PaidTotal(cash, bankTransfer, card decimal.Decimal) decimal.Decimal {
	return cash.Add(bankTransfer).Add(card)
}

// Outstanding computes the remaining receivable balance. A negative result
// means the client has over-paid; receivables keep the signed value instead
// of splitting it the way payables do.
func Outstanding(totalDue, paidTotal decimal.Decimal) decimal.Decimal {
	return totalDue.Sub(paidTotal)
}

// TotalCharged computes a payable's total charged amount from the
// prior-period balance and the current-period charge.
func TotalCharged(priorBalance, monthlyCharge decimal.Decimal) decimal.Decimal {
	return priorBalance.Add(monthlyCharge)
}

// SplitOutstanding divides totalCharged - amountPaid into the mutually
// exclusive debt/advance pair: a non-negative difference is debt still owed,
// a negative one becomes an advance held by the payee. Exactly one of the two
// results is ever nonzero.
func SplitOutstanding(totalCharged, amountPaid decimal.Decimal) (debt, advance decimal.Decimal) {
	diff := totalCharged.Sub(amountPaid)
	if diff.IsNegative() {
		return decimal.Zero, diff.Abs()
	}
	return diff, decimal.Zero
}
