package accounting_test

import (
	"testing"

	"github.com/BalansDev/branch_accounting_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestReceivableDerivations(t *testing.T) {
	totalDue := accounting.TotalDue(d("1000"), d("2000"))
	assert.True(t, totalDue.Equal(d("3000")))

	paid := accounting.PaidTotal(d("500"), d("250.50"), d("0"))
	assert.True(t, paid.Equal(d("750.50")))

	outstanding := accounting.Outstanding(totalDue, paid)
	assert.True(t, outstanding.Equal(d("2249.50")))
}

func TestOutstandingMayGoNegative(t *testing.T) {
	// Over-payment stays a single signed amount on receivables.
	outstanding := accounting.Outstanding(d("100"), d("150"))
	assert.True(t, outstanding.Equal(d("-50")))
}

func TestSplitOutstanding(t *testing.T) {
	tests := []struct {
		name         string
		totalCharged string
		amountPaid   string
		wantDebt     string
		wantAdvance  string
	}{
		{"unpaid debt", "800", "300", "500", "0"},
		{"settled exactly", "800", "800", "0", "0"},
		{"over-paid advance", "800", "950", "0", "150"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			debt, advance := accounting.SplitOutstanding(d(tt.totalCharged), d(tt.amountPaid))
			assert.True(t, debt.Equal(d(tt.wantDebt)), "debt: got %s", debt)
			assert.True(t, advance.Equal(d(tt.wantAdvance)), "advance: got %s", advance)

			// The pair is mutually exclusive and preserves the difference.
			assert.False(t, debt.IsPositive() && advance.IsPositive())
			diff := d(tt.totalCharged).Sub(d(tt.amountPaid))
			assert.True(t, debt.Sub(advance).Equal(diff))
		})
	}
}
