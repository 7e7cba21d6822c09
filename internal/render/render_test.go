package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"spendtrack/internal/core"
)

func expense(id int64, title, amount, date, description string) core.Expense {
	a, _ := core.NewAmount(amount)
	return core.Expense{ID: id, Title: title, Amount: a, Date: date, Description: description}
}

func sample() []core.Expense {
	return []core.Expense{
		expense(1, "Rent", "400.00", "2025-03-01", "march rent"),
		expense(2, "Coffee", "3.50", "2025-03-02", ""),
		expense(3, "Groceries", "82.10", "2025-03-02", "weekly"),
	}
}

func TestTable_RerenderIsIdempotent(t *testing.T) {
	records := sample()

	first := &bytes.Buffer{}
	New(Options{Out: first, Plain: true}).Table(records, true)

	second := &bytes.Buffer{}
	r := New(Options{Out: second, Plain: true})
	r.Table(records, true)

	if first.String() != second.String() {
		t.Errorf("renders differ:\n%s\n---\n%s", first.String(), second.String())
	}

	lines := strings.Split(strings.TrimRight(first.String(), "\n"), "\n")
	if want := len(records) + 1; len(lines) != want { // header + one line per record
		t.Errorf("rendered %d lines, want %d", len(lines), want)
	}
}

func TestTable_StaggerSchedule(t *testing.T) {
	var slept []time.Duration
	buf := &bytes.Buffer{}
	r := New(Options{
		Out:      buf,
		RowDelay: 50 * time.Millisecond,
		Sleep:    func(d time.Duration) { slept = append(slept, d) },
		Plain:    true,
	})

	r.Table(sample(), true)

	// The first row appears immediately; every following row waits one more
	// delay, so row i lands delay*i after the first.
	if len(slept) != 2 {
		t.Fatalf("slept %d times, want 2", len(slept))
	}
	for _, d := range slept {
		if d != 50*time.Millisecond {
			t.Errorf("slept %v, want 50ms", d)
		}
	}
}

func TestTable_NoStaggerWhenDisabled(t *testing.T) {
	tests := []struct {
		name    string
		delay   time.Duration
		animate bool
	}{
		{name: "animate off", delay: 50 * time.Millisecond, animate: false},
		{name: "zero delay", delay: 0, animate: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var slept int
			r := New(Options{
				Out:      &bytes.Buffer{},
				RowDelay: tt.delay,
				Sleep:    func(time.Duration) { slept++ },
				Plain:    true,
			})
			r.Table(sample(), tt.animate)
			if slept != 0 {
				t.Errorf("slept %d times, want 0", slept)
			}
		})
	}
}

func TestTable_Empty(t *testing.T) {
	buf := &bytes.Buffer{}
	New(Options{Out: buf, Plain: true}).Table(nil, true)
	if !strings.Contains(buf.String(), "(no expenses)") {
		t.Errorf("empty table output = %q", buf.String())
	}
}

func TestTable_ClearBeforeRender(t *testing.T) {
	buf := &bytes.Buffer{}
	r := New(Options{Out: buf, Plain: true, ClearBeforeRender: true})
	r.Table(sample(), false)
	if !strings.HasPrefix(buf.String(), "\x1b[2J\x1b[H") {
		t.Error("render must start with a clear-screen sequence")
	}
}

func TestFormatBalance(t *testing.T) {
	tests := []struct {
		name      string
		remaining string
		want      string
	}{
		{name: "positive", remaining: "650.01", want: "Remaining Balance: 650.01"},
		{name: "negative", remaining: "-25", want: "Remaining Balance: -25.00"},
		{name: "zero", remaining: "0", want: "Remaining Balance: 0.00"},
		{name: "rounded to two decimals", remaining: "10.5", want: "Remaining Balance: 10.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remaining := decimal.RequireFromString(tt.remaining)
			if got := FormatBalance(remaining); got != tt.want {
				t.Errorf("FormatBalance(%s) = %q, want %q", tt.remaining, got, tt.want)
			}
		})
	}
}

func TestBalance_PlainOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	r := New(Options{Out: buf, Plain: true})
	r.Balance(decimal.RequireFromString("-25.00"))
	if got := buf.String(); got != "Remaining Balance: -25.00\n" {
		t.Errorf("Balance output = %q", got)
	}
}
