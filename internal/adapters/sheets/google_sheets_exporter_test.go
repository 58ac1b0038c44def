package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"travel-time-service/internal/domain"
	"travel-time-service/internal/ports"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

type fakeSheets struct {
	mu       sync.Mutex
	requests []string
	bodies   map[string]string
	status   int
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	key := r.Method + " " + r.URL.Path
	f.requests = append(f.requests, key)
	f.bodies[key] = string(body)
	f.mu.Unlock()

	if f.status != 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		w.Write([]byte(`{"error":{"code":401,"message":"invalid credentials"}}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/v4/spreadsheets":
		w.Write([]byte(`{"spreadsheetId":"sheet-1","sheets":[{"properties":{"sheetId":0,"title":"x"}}]}`))
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, ":append"):
		w.Write([]byte(`{"spreadsheetId":"sheet-1","updates":{"updatedCells":12}}`))
	default:
		w.Write([]byte(`{}`))
	}
}

func newTestExporter(t *testing.T, fake *fakeSheets) *GoogleSheetsExporter {
	t.Helper()

	fake.bodies = map[string]string{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	e := NewGoogleSheetsExporter(nil)
	e.newService = func(ctx context.Context, _ ports.Credential) (*sheetsapi.Service, error) {
		return sheetsapi.NewService(ctx,
			option.WithHTTPClient(srv.Client()),
			option.WithEndpoint(srv.URL+"/"),
		)
	}
	return e
}

var testCred = ports.Credential{Token: &oauth2.Token{AccessToken: "token"}}

func TestCreateSpreadsheet(t *testing.T) {
	fake := &fakeSheets{}
	e := newTestExporter(t, fake)

	id, err := e.CreateSpreadsheet(context.Background(), testCred)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id != "sheet-1" {
		t.Fatalf("id = %q, want sheet-1", id)
	}

	if len(fake.requests) != 3 {
		t.Fatalf("requests = %v, want create, header, format", fake.requests)
	}
	if !strings.HasPrefix(fake.requests[1], http.MethodPut+" /v4/spreadsheets/sheet-1/values/") {
		t.Fatalf("second request = %q, want header update", fake.requests[1])
	}
	if !strings.HasSuffix(fake.requests[2], ":batchUpdate") {
		t.Fatalf("third request = %q, want batchUpdate", fake.requests[2])
	}

	var vr struct {
		Values [][]string `json:"values"`
	}
	if err := json.Unmarshal([]byte(fake.bodies[fake.requests[1]]), &vr); err != nil {
		t.Fatalf("decode header body: %v", err)
	}
	if len(vr.Values) != 1 || len(vr.Values[0]) != 12 || vr.Values[0][0] != "Огноо" {
		t.Fatalf("unexpected header values: %v", vr.Values)
	}

	if !strings.Contains(fake.bodies[fake.requests[2]], `"bold":true`) {
		t.Fatalf("format body = %s", fake.bodies[fake.requests[2]])
	}
}

func TestAppendRow(t *testing.T) {
	fake := &fakeSheets{}
	e := newTestExporter(t, fake)

	row := make([]string, 12)
	row[0] = "2026-01-01"

	n, err := e.AppendRow(context.Background(), testCred, "sheet-1", row)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if n != 12 {
		t.Fatalf("updated cells = %d, want 12", n)
	}
	if len(fake.requests) != 1 || !strings.HasSuffix(fake.requests[0], ":append") {
		t.Fatalf("requests = %v", fake.requests)
	}
}

func TestExporterErrors(t *testing.T) {
	fake := &fakeSheets{status: http.StatusUnauthorized}
	e := newTestExporter(t, fake)

	_, err := e.AppendRow(context.Background(), testCred, "sheet-1", []string{"x"})
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}

	_, err = e.CreateSpreadsheet(context.Background(), ports.Credential{})
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("nil token err = %v, want ErrUnauthenticated", err)
	}

	_, err = e.AppendRow(context.Background(), testCred, "", []string{"x"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("empty id err = %v, want ErrInvalidInput", err)
	}
}

func TestSpreadsheetURL(t *testing.T) {
	if got := SpreadsheetURL("abc"); got != "https://docs.google.com/spreadsheets/d/abc/edit" {
		t.Fatalf("url = %q", got)
	}
}
