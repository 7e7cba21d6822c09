package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/subcommands"

	"spendtrack/internal/render"
)

type rmCmd struct{}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete an expense" }
func (*rmCmd) Usage() string {
	return `rm <id>

  Deletes the expense with the given identifier, then refreshes and renders
  the list.
`
}

func (*rmCmd) SetFlags(*flag.FlagSet) {}

func (c *rmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one expense id is required.")
		return subcommands.ExitUsageError
	}
	id, err := strconv.ParseInt(f.Arg(0), 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid expense id %q.\n", f.Arg(0))
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
	if err := app.sess.Remove(ctx, id); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
