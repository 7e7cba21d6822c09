// Package cli implements the command surface of the expense client.
package cli

import (
	"fmt"
	"os"

	"github.com/google/subcommands"

	"spendtrack/internal/config"
	"spendtrack/internal/controller"
	"spendtrack/internal/gateway"
	"spendtrack/internal/log"
	"spendtrack/internal/render"
	"spendtrack/internal/settings"
	"spendtrack/internal/store"
)

// Register wires every subcommand into the commander. A main package calls
// Register() and then Execute() on the user-selected one.
func Register(c *subcommands.Commander, conf *config.Config, lg *log.Logger) {
	cfg = conf
	logger = lg

	c.Register(&listCmd{}, "expenses")
	c.Register(&addCmd{}, "expenses")
	c.Register(&editCmd{}, "expenses")
	c.Register(&rmCmd{}, "expenses")

	c.Register(&incomeCmd{}, "settings")

	c.Register(&sessionCmd{}, "interactive")
	c.Register(&watchCmd{}, "interactive")

	c.Register(&exportCmd{}, "export")
}

// Short-lived CLI process, package-level collaborators are fine here.
var (
	cfg    *config.Config
	logger *log.Logger
)

// appSession bundles the session with the resources it borrows.
type appSession struct {
	sess     *controller.Session
	settings *settings.Store
}

func (a *appSession) Close() {
	if a.settings != nil {
		a.settings.Close()
	}
}

// newAppSession builds the full client stack: gateway, settings store,
// in-memory expense store, renderer, and the session controller on top.
func newAppSession(opts render.Options) (*appSession, error) {
	gw, err := gateway.New(gateway.Options{
		BaseURL:        cfg.BaseURL,
		SessionCookie:  cfg.SessionCookie,
		CSRFCookieName: cfg.CSRFCookieName,
		Timeout:        cfg.HTTPTimeout,
		Logger:         logger.WithComponent(log.ComponentGateway),
	})
	if err != nil {
		return nil, fmt.Errorf("create gateway: %w", err)
	}

	st, err := settings.Open(cfg.StateDBPath)
	if err != nil {
		return nil, fmt.Errorf("open settings store: %w", err)
	}

	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.RowDelay == 0 {
		opts.RowDelay = cfg.RowDelay
	}

	sess := controller.NewSession(
		gw,
		st,
		store.New(),
		render.New(opts),
		logger.WithComponent(log.ComponentController),
	)

	return &appSession{sess: sess, settings: st}, nil
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
