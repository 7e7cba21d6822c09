package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"spendtrack/internal/render"
)

type addCmd struct {
	title       string
	amount      string
	date        string
	description string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "create a new expense" }
func (*addCmd) Usage() string {
	return `add -title <text> -amount <decimal> -date <yyyy-mm-dd> [-description <text>]

  Creates an expense on the server, then refreshes and renders the list.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.title, "title", "", "Expense title (required)")
	f.StringVar(&c.amount, "amount", "", "Expense amount, e.g. 12.50 (required)")
	f.StringVar(&c.date, "date", "", "Expense date, yyyy-mm-dd (required)")
	f.StringVar(&c.description, "description", "", "Optional description")
}

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := newAppSession(render.Options{})
	if err != nil {
		return fail(err)
	}
	defer app.Close()

	if err := app.sess.LoadIncome(ctx); err != nil {
		return fail(err)
	}

	app.sess.SetField("title", c.title)
	app.sess.SetField("amount", c.amount)
	app.sess.SetField("date", c.date)
	app.sess.SetField("description", c.description)

	if err := app.sess.Submit(ctx); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
