package ports

import (
	"context"

	"golang.org/x/oauth2"
)

// Credential is an OAuth token for the spreadsheet API. It is passed into
// every exporter call; refreshing yields a new value.
type Credential struct {
	Token *oauth2.Token
}

// SpreadsheetExporter appends calculation rows to an external spreadsheet.
type SpreadsheetExporter interface {
	// CreateSpreadsheet creates the document with its header row and
	// returns its id.
	CreateSpreadsheet(ctx context.Context, cred Credential) (string, error)
	// AppendRow appends one row and returns the number of updated cells.
	AppendRow(ctx context.Context, cred Credential, spreadsheetID string, row []string) (int64, error)
	// URL is where a user opens the spreadsheet.
	URL(spreadsheetID string) string
}
