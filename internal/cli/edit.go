package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"spendtrack/internal/render"
)

type editCmd struct {
	id          int64
	title       string
	amount      string
	date        string
	description string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "update an existing expense" }
func (*editCmd) Usage() string {
	return `edit -id <id> [-title <text>] [-amount <decimal>] [-date <yyyy-mm-dd>] [-description <text>]

  Fetches the record, applies the given field overrides, and sends a full
  replace. Fields not given keep their current server values.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Identifier of the expense to update (required)")
	f.StringVar(&c.title, "title", "", "New title")
	f.StringVar(&c.amount, "amount", "", "New amount")
	f.StringVar(&c.date, "date", "", "New date, yyyy-mm-dd")
	f.StringVar(&c.description, "description", "", "New description")
}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == 0 {
		fmt.Fprintln(os.Stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}

	app, err := newAppSession(render.Options{})
	if err != nil {
		return fail(err)
	}
	defer app.Close()

	if err := app.sess.LoadIncome(ctx); err != nil {
		return fail(err)
	}

	// Populate the form from the server record, then apply only the flags
	// the user actually set.
	if err := app.sess.Edit(ctx, c.id); err != nil {
		return fail(err)
	}
	overrides := map[string]string{
		"title":       c.title,
		"amount":      c.amount,
		"date":        c.date,
		"description": c.description,
	}
	f.Visit(func(fl *flag.Flag) {
		if v, ok := overrides[fl.Name]; ok {
			app.sess.SetField(fl.Name, v)
		}
	})

	if err := app.sess.Submit(ctx); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
