// Package sheets pushes rendered ledger rows to a Google spreadsheet.
package sheets

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/ledgerfold-dev/ledgerfold/internal/ledger"
)

// uploadTimeout bounds one whole upload round trip.
const uploadTimeout = 2 * time.Minute

// Exporter writes ledger rows to one sheet of a spreadsheet using a
// service-account key.
type Exporter struct {
	svc           *sheets.Service
	spreadsheetID string
	sheet         string
}

// NewExporter builds an Exporter from a service-account JSON key file.
func NewExporter(ctx context.Context, credentialsFile, spreadsheetID, sheet string) (*Exporter, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("creating sheets client: %w", err)
	}
	return &Exporter{svc: svc, spreadsheetID: spreadsheetID, sheet: sheet}, nil
}

// Upload replaces the sheet contents with a Date/Money/Description
// header plus one row per ledger day, exactly as rendered. Money cells
// are =-prefixed sum formulas so the spreadsheet shows the day total;
// empty days get empty cells.
func (e *Exporter) Upload(ctx context.Context, rows []ledger.Row) error {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	values := make([][]interface{}, 0, len(rows)+1)
	values = append(values, []interface{}{"Date", "Money", "Description"})
	for _, r := range rows {
		money := ""
		if r.Amounts != "" {
			money = "=" + r.Amounts
		}
		values = append(values, []interface{}{r.Date, money, r.Descriptions})
	}

	if _, err := e.svc.Spreadsheets.Values.
		Clear(e.spreadsheetID, e.sheet, &sheets.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clearing sheet %s: %w", e.sheet, err)
	}

	vr := &sheets.ValueRange{Values: values}
	if _, err := e.svc.Spreadsheets.Values.
		Update(e.spreadsheetID, fmt.Sprintf("%s!A1", e.sheet), vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("updating sheet %s: %w", e.sheet, err)
	}
	return nil
}
