package config

import (
	"context"
	"errors"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// ErrNoToken indicates the profile carries no usable credential for the
// requested connector.
var ErrNoToken = errors.New("config: no token configured")

// TokenProvider supplies an access token for a connector. Implementations
// may return a cached token or derive one from stored credentials.
type TokenProvider interface {
	// GetToken returns a valid access token.
	GetToken(ctx context.Context) (string, error)

	// IsAuthenticated reports whether a credential is configured at all.
	IsAuthenticated() bool
}

// StaticTokenProvider wraps a fixed token string (PAT-style credentials:
// TikTok access tokens, Webflow bearer tokens).
type StaticTokenProvider struct {
	token string
}

// NewStaticTokenProvider creates a provider that always returns token.
func NewStaticTokenProvider(token string) *StaticTokenProvider {
	return &StaticTokenProvider{token: token}
}

// GetToken implements TokenProvider.
func (p *StaticTokenProvider) GetToken(_ context.Context) (string, error) {
	if p.token == "" {
		return "", ErrNoToken
	}
	return p.token, nil
}

// IsAuthenticated implements TokenProvider.
func (p *StaticTokenProvider) IsAuthenticated() bool {
	return p.token != ""
}

// GoogleTokenSource builds an oauth2.TokenSource from stored Google
// credentials. When a refresh token is present the oauth2 package
// transparently exchanges it for fresh access tokens; otherwise the
// stored access token is used as-is until it expires.
func GoogleTokenSource(ctx context.Context, creds GoogleCredentials) (oauth2.TokenSource, error) {
	if creds.RefreshToken == "" && creds.AccessToken == "" {
		return nil, ErrNoToken
	}

	if creds.RefreshToken == "" {
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: creds.AccessToken}), nil
	}

	cfg := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     google.Endpoint,
	}
	tok := &oauth2.Token{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
	}
	return cfg.TokenSource(ctx, tok), nil
}

// GoogleTokenProvider adapts GoogleTokenSource to the TokenProvider
// interface for callers that only need the bearer string.
type GoogleTokenProvider struct {
	creds GoogleCredentials
}

// NewGoogleTokenProvider creates a provider backed by profile credentials.
func NewGoogleTokenProvider(creds GoogleCredentials) *GoogleTokenProvider {
	return &GoogleTokenProvider{creds: creds}
}

// GetToken implements TokenProvider.
func (p *GoogleTokenProvider) GetToken(ctx context.Context) (string, error) {
	ts, err := GoogleTokenSource(ctx, p.creds)
	if err != nil {
		return "", err
	}
	tok, err := ts.Token()
	if err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

// IsAuthenticated implements TokenProvider.
func (p *GoogleTokenProvider) IsAuthenticated() bool {
	return p.creds.RefreshToken != "" || p.creds.AccessToken != ""
}
