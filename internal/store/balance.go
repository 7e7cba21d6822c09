package store

import (
	"github.com/shopspring/decimal"

	"spendtrack/internal/core"
)

// Total sums all amounts over the full, unfiltered record sequence.
func Total(records []core.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, rec := range records {
		total = total.Add(rec.Amount.Decimal)
	}
	return total
}

// Remaining derives the remaining balance: income minus the sum of all
// amounts. Active filters never affect the result.
func Remaining(income decimal.Decimal, records []core.Expense) decimal.Decimal {
	return income.Sub(Total(records))
}
