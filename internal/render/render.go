// Package render projects expense records into a terminal table. Rows can
// enter with a staggered cascade: each row is emitted after a fixed per-row
// delay, so row i appears delay*i after the first.
package render

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"spendtrack/internal/core"
)

// Sleeper is injectable so tests can observe the stagger schedule without
// waiting for it.
type Sleeper func(time.Duration)

type Options struct {
	Out      io.Writer
	RowDelay time.Duration
	Sleep    Sleeper
	Plain    bool

	// ClearBeforeRender wipes the screen before every table render so a
	// re-render replaces the previous one instead of accumulating. Used by
	// the interactive session; one-shot commands leave it off.
	ClearBeforeRender bool
}

type Renderer struct {
	out   io.Writer
	delay time.Duration
	sleep Sleeper
	plain bool
	clear bool
}

func New(opts Options) *Renderer {
	sleep := opts.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Renderer{
		out:   opts.Out,
		delay: opts.RowDelay,
		sleep: sleep,
		plain: opts.Plain,
		clear: opts.ClearBeforeRender,
	}
}

// ClearScreen wipes the terminal so a re-render fully replaces the previous
// table instead of accumulating below it.
func (r *Renderer) ClearScreen() {
	fmt.Fprint(r.out, "\x1b[2J\x1b[H")
}

// Table renders one row per record. With animate set, each row after the
// first is delayed by the configured per-row delay, cascading the entrance.
func (r *Renderer) Table(records []core.Expense, animate bool) {
	if r.clear {
		r.ClearScreen()
	}
	widths := columnWidths(records)

	r.row(headerStyle, widths, "ID", "Title", "Amount", "Date", "Description")
	for i, rec := range records {
		if animate && r.delay > 0 && i > 0 {
			r.sleep(r.delay)
		}
		r.row(rowStyle, widths,
			strconv.FormatInt(rec.ID, 10),
			rec.Title,
			rec.Amount.StringFixed(2),
			rec.Date,
			rec.Description)
	}
	if len(records) == 0 {
		fmt.Fprintln(r.out, "(no expenses)")
	}
}

// Balance renders the remaining-balance line. A negative remaining uses the
// negative style so overspending stands out.
func (r *Renderer) Balance(remaining decimal.Decimal) {
	text := FormatBalance(remaining)
	if r.plain {
		fmt.Fprintln(r.out, text)
		return
	}
	style := positiveStyle
	if remaining.IsNegative() {
		style = negativeStyle
	}
	fmt.Fprintln(r.out, style.Render(text))
}

// FormatBalance renders the remaining balance with two fixed decimals.
func FormatBalance(remaining decimal.Decimal) string {
	return "Remaining Balance: " + remaining.StringFixed(2)
}

func (r *Renderer) row(style rowStyler, widths [5]int, cells ...string) {
	line := fmt.Sprintf("%-*s  %-*s  %*s  %-*s  %-*s",
		widths[0], cells[0],
		widths[1], cells[1],
		widths[2], cells[2],
		widths[3], cells[3],
		widths[4], cells[4])
	if r.plain {
		fmt.Fprintln(r.out, line)
		return
	}
	fmt.Fprintln(r.out, style.Render(line))
}

func columnWidths(records []core.Expense) [5]int {
	widths := [5]int{2, 5, 6, 4, 11} // header widths
	for _, rec := range records {
		widths[0] = max(widths[0], len(strconv.FormatInt(rec.ID, 10)))
		widths[1] = max(widths[1], len(rec.Title))
		widths[2] = max(widths[2], len(rec.Amount.StringFixed(2)))
		widths[3] = max(widths[3], len(rec.Date))
		widths[4] = max(widths[4], len(rec.Description))
	}
	return widths
}
