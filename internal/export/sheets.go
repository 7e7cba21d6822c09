// Package export appends the current expense list to a Google Sheet, one row
// per record, for people who keep their budget overview in a spreadsheet.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"spendtrack/internal/core"
	"spendtrack/internal/log"
)

type Exporter struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	log           *log.Logger
}

// New creates an exporter for the given spreadsheet/sheet using Service
// Account credentials resolved from the environment.
func New(ctx context.Context, spreadsheetID, sheetName string, logger *log.Logger) (*Exporter, error) {
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	if sheetName == "" {
		sheetName = "Expenses"
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentExport)
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Exporter{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		log:           logger,
	}, nil
}

// Append writes one row per record (date, title, amount, description) below
// the existing data and returns the number of rows written.
func (e *Exporter) Append(ctx context.Context, records []core.Expense) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	values := make([][]any, 0, len(records))
	for _, rec := range records {
		values = append(values, []any{
			rec.Date,
			rec.Title,
			rec.Amount.StringFixed(2),
			rec.Description,
		})
	}

	rangeRef := e.sheetName + "!A:D"
	_, err := e.svc.Spreadsheets.Values.Append(e.spreadsheetID, rangeRef, &gsheet.ValueRange{
		Values: values,
	}).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("append to sheet %s: %w", rangeRef, err)
	}

	e.log.InfoContext(ctx, "Exported expenses to sheet",
		log.FieldCount, len(records),
		"spreadsheet_id", e.spreadsheetID,
		"sheet", e.sheetName)

	return len(values), nil
}

// newSheetsService initializes a Sheets Service using Service Account
// credentials. Uses GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE,
// or GOOGLE_APPLICATION_CREDENTIALS.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))

	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS")
	}

	svc, err := gsheet.NewService(ctx, goption.WithCredentialsJSON(credentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return svc, nil
}
