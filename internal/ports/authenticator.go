package ports

import "context"

// Authenticator runs the OAuth authorization code flow for the spreadsheet API.
type Authenticator interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (Credential, error)
	// RefreshCredential returns cred unchanged while it is valid, otherwise
	// a new credential. refreshed reports which.
	RefreshCredential(ctx context.Context, cred Credential) (_ Credential, refreshed bool, err error)
}
