package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"travel-time-service/internal/domain"
	"travel-time-service/internal/platform/obs"
	"travel-time-service/internal/ports"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

const (
	SpreadsheetTitle = "Зорчих цагийн тооцоолол - Travel Time Calculator"
	SheetTitle       = "Тооцооллын түүх"

	headerRange = "A1:L1"
	appendRange = "A:L"
)

// Header is the fixed first row of the export sheet.
var Header = []string{
	"Огноо", "Цаг", "Гэрийн хаяг", "Сургуулийн хаяг", "Ажлын хаяг",
	"Гэр → Сургууль (мин)", "Сургууль → Ажил (мин)",
	"Ажил → Сургууль (мин)", "Сургууль → Гэр (мин)",
	"Өдрийн нийт цаг", "Сарын нийт цаг", "Жилийн нийт өдөр",
}

// SpreadsheetURL is the browser URL of a spreadsheet.
func SpreadsheetURL(id string) string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/edit", id)
}

// GoogleSheetsExporter implements SpreadsheetExporter with the Sheets v4 API.
// The caller's credential is turned into a token source per call.
type GoogleSheetsExporter struct {
	config     *oauth2.Config
	newService func(ctx context.Context, cred ports.Credential) (*sheetsapi.Service, error)
}

func NewGoogleSheetsExporter(cfg *oauth2.Config) *GoogleSheetsExporter {
	e := &GoogleSheetsExporter{config: cfg}
	e.newService = e.tokenService
	return e
}

func (e *GoogleSheetsExporter) URL(spreadsheetID string) string {
	return SpreadsheetURL(spreadsheetID)
}

func (e *GoogleSheetsExporter) tokenService(ctx context.Context, cred ports.Credential) (*sheetsapi.Service, error) {
	ts := oauth2.StaticTokenSource(cred.Token)
	if e.config != nil {
		ts = e.config.TokenSource(ctx, cred.Token)
	}
	return sheetsapi.NewService(ctx, option.WithTokenSource(ts))
}

func (e *GoogleSheetsExporter) service(ctx context.Context, cred ports.Credential) (*sheetsapi.Service, error) {
	if cred.Token == nil {
		return nil, fmt.Errorf("sheets service: %w", domain.ErrUnauthenticated)
	}

	srv, err := e.newService(ctx, cred)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return srv, nil
}

func (e *GoogleSheetsExporter) CreateSpreadsheet(ctx context.Context, cred ports.Credential) (_ string, err error) {
	defer obs.Time(ctx, "sheets.CreateSpreadsheet")(&err)

	srv, err := e.service(ctx, cred)
	if err != nil {
		return "", err
	}

	created, err := srv.Spreadsheets.Create(&sheetsapi.Spreadsheet{
		Properties: &sheetsapi.SpreadsheetProperties{Title: SpreadsheetTitle},
		Sheets: []*sheetsapi.Sheet{
			{Properties: &sheetsapi.SheetProperties{Title: SheetTitle}},
		},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create spreadsheet: %w", classify(err))
	}

	id := created.SpreadsheetId

	var sheetID int64
	if len(created.Sheets) > 0 && created.Sheets[0].Properties != nil {
		sheetID = created.Sheets[0].Properties.SheetId
	}

	_, err = srv.Spreadsheets.Values.Update(id, headerRange, &sheetsapi.ValueRange{
		Values: [][]interface{}{toCells(Header)},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("write header row: %w", classify(err))
	}

	bold := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			RepeatCell: &sheetsapi.RepeatCellRequest{
				Range: &sheetsapi.GridRange{
					SheetId:         sheetID,
					StartRowIndex:   0,
					EndRowIndex:     1,
					ForceSendFields: []string{"SheetId", "StartRowIndex"},
				},
				Cell: &sheetsapi.CellData{
					UserEnteredFormat: &sheetsapi.CellFormat{
						TextFormat: &sheetsapi.TextFormat{Bold: true},
					},
				},
				Fields: "userEnteredFormat.textFormat.bold",
			},
		}},
	}
	if _, err := srv.Spreadsheets.BatchUpdate(id, bold).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("format header row: %w", classify(err))
	}

	return id, nil
}

func (e *GoogleSheetsExporter) AppendRow(
	ctx context.Context,
	cred ports.Credential,
	spreadsheetID string,
	row []string,
) (_ int64, err error) {
	defer obs.Time(ctx, "sheets.AppendRow")(&err)

	if spreadsheetID == "" {
		return 0, fmt.Errorf("append row: spreadsheet id is empty: %w", domain.ErrInvalidInput)
	}

	srv, err := e.service(ctx, cred)
	if err != nil {
		return 0, err
	}

	resp, err := srv.Spreadsheets.Values.Append(spreadsheetID, appendRange, &sheetsapi.ValueRange{
		Values: [][]interface{}{toCells(row)},
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("append row: %w", classify(err))
	}

	if resp.Updates == nil {
		return 0, nil
	}
	return resp.Updates.UpdatedCells, nil
}

func toCells(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}

// classify maps Sheets API failures onto the domain error taxonomy.
func classify(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && (gerr.Code == http.StatusUnauthorized || gerr.Code == http.StatusForbidden) {
		return fmt.Errorf("%v: %w", err, domain.ErrUnauthenticated)
	}

	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		return fmt.Errorf("%v: %w", err, domain.ErrUnauthenticated)
	}

	return fmt.Errorf("%v: %w", err, domain.ErrUpstreamUnavailable)
}
