package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"spendtrack/internal/export"
	"spendtrack/internal/gateway"
	"spendtrack/internal/log"
)

type exportCmd struct {
	spreadsheet string
	sheet       string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "append the expense list to a Google Sheet" }
func (*exportCmd) Usage() string {
	return `export [-spreadsheet <id>] [-sheet <name>]

  Fetches the full expense list and appends one row per record to the given
  sheet. Flags default to GOOGLE_SPREADSHEET_ID and GOOGLE_SHEET_NAME.
  Credentials come from GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE,
  or GOOGLE_APPLICATION_CREDENTIALS.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.spreadsheet, "spreadsheet", "", "Spreadsheet ID (defaults to GOOGLE_SPREADSHEET_ID)")
	f.StringVar(&c.sheet, "sheet", "", "Sheet name (defaults to GOOGLE_SHEET_NAME)")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	spreadsheetID := c.spreadsheet
	if spreadsheetID == "" {
		spreadsheetID = cfg.GoogleSpreadsheetID
	}
	sheetName := c.sheet
	if sheetName == "" {
		sheetName = cfg.GoogleSheetName
	}
	if spreadsheetID == "" {
		fmt.Fprintln(os.Stderr, "Error: export requires a spreadsheet ID.")
		return subcommands.ExitUsageError
	}

	gw, err := gateway.New(gateway.Options{
		BaseURL:        cfg.BaseURL,
		SessionCookie:  cfg.SessionCookie,
		CSRFCookieName: cfg.CSRFCookieName,
		Timeout:        cfg.HTTPTimeout,
		Logger:         logger.WithComponent(log.ComponentGateway),
	})
	if err != nil {
		return fail(err)
	}

	records, _, err := gw.List(ctx)
	if err != nil {
		return fail(err)
	}

	exporter, err := export.New(ctx, spreadsheetID, sheetName, logger.WithComponent(log.ComponentExport))
	if err != nil {
		return fail(err)
	}

	rows, err := exporter.Append(ctx, records)
	if err != nil {
		return fail(err)
	}

	fmt.Printf("Exported %d expense(s) to %s/%s\n", rows, spreadsheetID, sheetName)
	return subcommands.ExitSuccess
}
