// Package export appends movements to a Google Sheets spreadsheet, the
// external ledger copy the worker maintains.
package export

import (
	"context"
	"errors"
	"fmt"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"finanzapp/internal/core"
)

// SheetsExporter writes one row per movement to a single sheet. Rows are
// append-only; a re-export of the same movement adds a new row rather than
// editing in place.
type SheetsExporter struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// NewSheetsExporter builds an exporter authenticated with a service-account
// credentials file.
func NewSheetsExporter(ctx context.Context, spreadsheetID, sheetName, credentialsFile string) (*SheetsExporter, error) {
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsFile(credentialsFile),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &SheetsExporter{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}, nil
}

// AppendMovement appends one movement row: date, kind, category, subcategory,
// description, amount in units, method, reference.
func (e *SheetsExporter) AppendMovement(ctx context.Context, m core.Movement, category, subcategory string) error {
	if e.svc == nil {
		return errors.New("sheets service not initialized")
	}

	amount := float64(m.AmountCents) / 100.0
	row := []any{m.Date.String(), string(m.Kind), category, subcategory, m.Description, amount, string(m.Method), m.Reference}

	rng := fmt.Sprintf("%s!A:H", e.sheetName)
	vr := &gsheet.ValueRange{Values: [][]any{row}}
	_, err := e.svc.Spreadsheets.Values.Append(e.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to sheet %s: %w", e.sheetName, err)
	}
	return nil
}
