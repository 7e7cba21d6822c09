package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"

	"spendtrack/internal/amqp"
	"spendtrack/internal/render"
)

type watchCmd struct {
	plain bool
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "follow server-side changes and keep the table current" }
func (*watchCmd) Usage() string {
	return `watch [-plain]

  Renders the expense table and then consumes change notifications from the
  configured AMQP exchange, refetching the list on every message. Requires
  AMQP_URL to be set. Stop with Ctrl-C.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.plain, "plain", false, "Disable styling, screen clearing, and animation")
}

func (c *watchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if cfg.AMQPURL == "" {
		fmt.Fprintln(os.Stderr, "Error: watch requires AMQP_URL to be configured.")
		return subcommands.ExitUsageError
	}

	app, err := newAppSession(render.Options{
		Plain:             c.plain,
		ClearBeforeRender: !c.plain,
	})
	if err != nil {
		return fail(err)
	}
	defer app.Close()

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		return fail(err)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.sess.Init(ctx); err != nil {
		return fail(err)
	}

	err = client.ConsumeChanges(ctx, func(msg *amqp.ChangeMessage) error {
		logger.InfoContext(ctx, "Expense changed upstream", "id", msg.ID, "action", msg.Action)
		return app.sess.Refresh(ctx, false)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
