package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"travel-time-service/internal/domain"
	"travel-time-service/internal/ports"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// SpreadsheetsScope grants read/write access to the user's spreadsheets.
const SpreadsheetsScope = "https://www.googleapis.com/auth/spreadsheets"

// NewOAuthConfigFromFile reads a Google client secrets JSON file.
func NewOAuthConfigFromFile(path, redirectURL string) (*oauth2.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("oauth config: read client secrets %q: %w", path, err)
	}

	cfg, err := google.ConfigFromJSON(b, SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("oauth config: parse client secrets: %w", err)
	}
	if redirectURL != "" {
		cfg.RedirectURL = redirectURL
	}

	return cfg, nil
}

// NewOAuthConfig builds a config from a client id and secret.
func NewOAuthConfig(clientID, clientSecret, redirectURL string) (*oauth2.Config, error) {
	if clientID == "" || clientSecret == "" {
		return nil, errors.New("oauth config: client id and secret are required")
	}

	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{SpreadsheetsScope},
		Endpoint:     google.Endpoint,
	}, nil
}

// OAuthFlow runs the authorization code flow for the spreadsheet scope.
type OAuthFlow struct {
	config *oauth2.Config
}

func NewOAuthFlow(cfg *oauth2.Config) *OAuthFlow {
	return &OAuthFlow{config: cfg}
}

// AuthCodeURL returns the consent page URL. state must be verified in the callback.
func (f *OAuthFlow) AuthCodeURL(state string) string {
	return f.config.AuthCodeURL(
		state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
	)
}

// Exchange trades an authorization code for a credential.
func (f *OAuthFlow) Exchange(ctx context.Context, code string) (ports.Credential, error) {
	if code == "" {
		return ports.Credential{}, fmt.Errorf("oauth exchange: missing code: %w", domain.ErrInvalidInput)
	}

	tok, err := f.config.Exchange(ctx, code)
	if err != nil {
		return ports.Credential{}, fmt.Errorf("oauth exchange: %w", err)
	}

	return ports.Credential{Token: tok}, nil
}

// RefreshCredential returns cred unchanged while its token is valid, otherwise
// a new credential obtained with the refresh token. refreshed reports which.
func (f *OAuthFlow) RefreshCredential(
	ctx context.Context,
	cred ports.Credential,
) (_ ports.Credential, refreshed bool, err error) {
	if cred.Token == nil {
		return ports.Credential{}, false, fmt.Errorf("refresh credential: %w", domain.ErrUnauthenticated)
	}

	if cred.Token.Valid() {
		return cred, false, nil
	}

	if cred.Token.RefreshToken == "" {
		return ports.Credential{}, false, fmt.Errorf("refresh credential: token expired without refresh token: %w", domain.ErrUnauthenticated)
	}

	tok, err := f.config.TokenSource(ctx, cred.Token).Token()
	if err != nil {
		return ports.Credential{}, false, fmt.Errorf("refresh credential: %v: %w", err, domain.ErrUnauthenticated)
	}

	return ports.Credential{Token: tok}, true, nil
}

// Config exposes the oauth2 config for the exporter's token source.
func (f *OAuthFlow) Config() *oauth2.Config { return f.config }
