package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"spendtrack/internal/render"
)

type incomeCmd struct{}

func (*incomeCmd) Name() string     { return "income" }
func (*incomeCmd) Synopsis() string { return "set the monthly income used for the remaining balance" }
func (*incomeCmd) Usage() string {
	return `income <value>

  Persists the monthly income locally and shows the updated remaining
  balance. The value must be a positive decimal.
`
}

func (*incomeCmd) SetFlags(*flag.FlagSet) {}

func (c *incomeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one income value is required.")
		return subcommands.ExitUsageError
	}

	app, err := newAppSession(render.Options{Plain: true})
	if err != nil {
		return fail(err)
	}
	defer app.Close()

	// Fetch first so the recomputed balance covers the current store.
	if err := app.sess.LoadIncome(ctx); err != nil {
		return fail(err)
	}
	if err := app.sess.Refresh(ctx, false); err != nil {
		return fail(err)
	}
	if err := app.sess.SetIncome(ctx, f.Arg(0)); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
