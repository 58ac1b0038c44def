package sheets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
	"travel-time-service/internal/domain"
	"travel-time-service/internal/ports"

	"golang.org/x/oauth2"
)

func tokenServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		switch r.Form.Get("grant_type") {
		case "authorization_code":
			if r.Form.Get("code") != "good-code" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":"invalid_grant"}`))
				return
			}
		case "refresh_token":
			if r.Form.Get("refresh_token") != "refresh-1" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":"invalid_grant"}`))
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"access-new","token_type":"Bearer","refresh_token":"refresh-1","expires_in":3600}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testFlow(t *testing.T) *OAuthFlow {
	srv := tokenServer(t)
	return NewOAuthFlow(&oauth2.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:8080/api/oauth2callback",
		Scopes:       []string{SpreadsheetsScope},
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://accounts.example.com/auth",
			TokenURL: srv.URL,
		},
	})
}

func TestAuthCodeURL(t *testing.T) {
	f := testFlow(t)

	u, err := url.Parse(f.AuthCodeURL("state-123"))
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}

	q := u.Query()
	if q.Get("state") != "state-123" {
		t.Errorf("state = %q", q.Get("state"))
	}
	if q.Get("access_type") != "offline" {
		t.Errorf("access_type = %q, want offline", q.Get("access_type"))
	}
	if q.Get("include_granted_scopes") != "true" {
		t.Errorf("include_granted_scopes = %q, want true", q.Get("include_granted_scopes"))
	}
	if q.Get("scope") != SpreadsheetsScope {
		t.Errorf("scope = %q", q.Get("scope"))
	}
}

func TestExchange(t *testing.T) {
	f := testFlow(t)

	cred, err := f.Exchange(context.Background(), "good-code")
	if err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if cred.Token.AccessToken != "access-new" || cred.Token.RefreshToken != "refresh-1" {
		t.Fatalf("unexpected token: %+v", cred.Token)
	}

	if _, err := f.Exchange(context.Background(), ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("empty code err = %v, want ErrInvalidInput", err)
	}
	if _, err := f.Exchange(context.Background(), "bad-code"); err == nil {
		t.Fatal("expected error for bad code")
	}
}

func TestRefreshCredential(t *testing.T) {
	f := testFlow(t)
	ctx := context.Background()

	valid := ports.Credential{Token: &oauth2.Token{AccessToken: "a", Expiry: time.Now().Add(time.Hour)}}
	got, refreshed, err := f.RefreshCredential(ctx, valid)
	if err != nil || refreshed || got.Token != valid.Token {
		t.Fatalf("valid token: got=%+v refreshed=%v err=%v", got, refreshed, err)
	}

	expired := ports.Credential{Token: &oauth2.Token{
		AccessToken:  "old",
		RefreshToken: "refresh-1",
		Expiry:       time.Now().Add(-time.Hour),
	}}
	got, refreshed, err = f.RefreshCredential(ctx, expired)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if !refreshed || got.Token.AccessToken != "access-new" {
		t.Fatalf("refresh: got=%+v refreshed=%v", got.Token, refreshed)
	}
	if expired.Token.AccessToken != "old" {
		t.Fatal("refresh must not mutate the input credential")
	}

	noRefresh := ports.Credential{Token: &oauth2.Token{AccessToken: "old", Expiry: time.Now().Add(-time.Hour)}}
	if _, _, err := f.RefreshCredential(ctx, noRefresh); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}

	if _, _, err := f.RefreshCredential(ctx, ports.Credential{}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}
}

func TestNewOAuthConfig(t *testing.T) {
	if _, err := NewOAuthConfig("", "", ""); err == nil {
		t.Fatal("expected error for missing client id")
	}

	cfg, err := NewOAuthConfig("id", "secret", "http://localhost/cb")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Scopes) != 1 || cfg.Scopes[0] != SpreadsheetsScope {
		t.Fatalf("scopes = %v", cfg.Scopes)
	}
}
