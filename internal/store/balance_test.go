package store

import (
	"testing"

	"github.com/shopspring/decimal"

	"spendtrack/internal/core"
)

func TestRemaining(t *testing.T) {
	tests := []struct {
		name    string
		income  string
		amounts []string
		want    string
	}{
		{name: "positive remainder", income: "1000.00", amounts: []string{"250.00", "99.99"}, want: "650.01"},
		{name: "negative remainder", income: "100.00", amounts: []string{"50", "75"}, want: "-25.00"},
		{name: "no expenses", income: "1200.50", amounts: nil, want: "1200.50"},
		{name: "zero income", income: "0", amounts: []string{"10.00"}, want: "-10.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			income, err := decimal.NewFromString(tt.income)
			if err != nil {
				t.Fatalf("parse income: %v", err)
			}
			var records []core.Expense
			for i, s := range tt.amounts {
				records = append(records, expense(int64(i+1), "x", s, "2025-01-01", ""))
			}

			got := Remaining(income, records)
			if got.StringFixed(2) != tt.want {
				t.Errorf("Remaining = %s, want %s", got.StringFixed(2), tt.want)
			}
		})
	}
}

func TestRemaining_IgnoresFilters(t *testing.T) {
	income := decimal.NewFromInt(100)
	records := sample()

	// The balance covers the full store even when a filtered view is active.
	full := Remaining(income, records)
	filteredView := Filter(records, "coffee", "")
	if len(filteredView) == len(records) {
		t.Fatal("filter should narrow the view for this test")
	}
	again := Remaining(income, records)
	if !full.Equal(again) {
		t.Errorf("Remaining changed after filtering: %s != %s", full, again)
	}
}
