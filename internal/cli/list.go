package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"spendtrack/internal/render"
)

type listCmd struct {
	search string
	date   string
	plain  bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "fetch and show the expense table with the remaining balance" }
func (*listCmd) Usage() string {
	return `list [-search <text>] [-date <yyyy-mm-dd>] [-plain]

  Fetches the expense list, applies the filters locally, and renders the
  table plus the remaining balance. The text filter matches title or
  description case-insensitively; the date filter matches exactly.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.search, "search", "", "Substring to match against title or description")
	f.StringVar(&c.date, "date", "", "Exact date to match (yyyy-mm-dd)")
	f.BoolVar(&c.plain, "plain", false, "Disable styling and entrance animation")
}

func (c *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := newAppSession(render.Options{Plain: c.plain})
	if err != nil {
		return fail(err)
	}
	defer app.Close()

	app.sess.SetQueries(c.search, c.date)
	if err := app.sess.LoadIncome(ctx); err != nil {
		return fail(err)
	}
	if err := app.sess.Refresh(ctx, !c.plain); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
