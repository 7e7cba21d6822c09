package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/subcommands"

	"spendtrack/internal/render"
)

type sessionCmd struct {
	plain bool
}

func (*sessionCmd) Name() string     { return "session" }
func (*sessionCmd) Synopsis() string { return "interactive expense session" }
func (*sessionCmd) Usage() string {
	return `session [-plain]

  Starts an interactive session over the expense table. Commands:

    set title|amount|date|description <value>   fill a form field
    form                                        show the form and submit label
    submit                                      save the form (create or update)
    edit <id>                                   load a record into the form
    del <id>                                    delete a record
    search <text>                               filter by title/description
    date <yyyy-mm-dd>                           filter by exact date
    clear                                       clear both filters
    income <value>                              set the monthly income
    refresh                                     refetch and re-render
    quit                                        leave the session
`
}

func (c *sessionCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.plain, "plain", false, "Disable styling, screen clearing, and animation")
}

func (c *sessionCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := newAppSession(render.Options{
		Plain:             c.plain,
		ClearBeforeRender: !c.plain,
	})
	if err != nil {
		return fail(err)
	}
	defer app.Close()

	if err := app.sess.Init(ctx); err != nil {
		// Same terminal treatment the web client gave a failed initial
		// load: report and keep the session open for a manual retry.
		report(err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("[%s] > ", app.sess.SubmitLabel())
		if !scanner.Scan() {
			fmt.Println()
			return subcommands.ExitSuccess
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		verb, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		switch verb {
		case "quit", "exit":
			return subcommands.ExitSuccess
		case "help":
			fmt.Print(c.Usage())
		case "set":
			field, value, _ := strings.Cut(rest, " ")
			if field == "desc" {
				field = "description"
			}
			if err := app.sess.SetField(field, value); err != nil {
				report(err)
			}
		case "form":
			form := app.sess.Form()
			fmt.Printf("title=%q amount=%q date=%q description=%q [%s]\n",
				form.Title, form.Amount, form.Date, form.Description, app.sess.SubmitLabel())
		case "submit":
			if err := app.sess.Submit(ctx); err != nil {
				report(err)
			}
		case "edit":
			id, err := parseID(rest)
			if err != nil {
				report(err)
				continue
			}
			if err := app.sess.Edit(ctx, id); err != nil {
				report(err)
			}
		case "del":
			id, err := parseID(rest)
			if err != nil {
				report(err)
				continue
			}
			if err := app.sess.Remove(ctx, id); err != nil {
				report(err)
			}
		case "search":
			app.sess.Search(rest)
		case "date":
			app.sess.FilterDate(rest)
		case "clear":
			app.sess.ClearFilters()
		case "income":
			if err := app.sess.SetIncome(ctx, rest); err != nil {
				report(err)
			}
		case "refresh":
			if err := app.sess.Refresh(ctx, true); err != nil {
				report(err)
			}
		default:
			fmt.Printf("unknown command %q, try 'help'\n", verb)
		}
	}
}

// report is the session's blocking error notification: the failure is shown
// and the user decides whether to retry.
func report(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid expense id %q", s)
	}
	return id, nil
}
