package utils

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/internal/config"
)

// NewGoogleHTTPClient returns an HTTP client authorized for the given scopes.
// The token is shared by every Google client of the session, so the scopes
// should cover all features that will be used.
func NewGoogleHTTPClient(ctx context.Context, oauthCfg *config.OAuthClientConfig, scopes []string, env string, store *TokenStore, logger *zap.Logger) (*http.Client, error) {
	if len(scopes) == 0 {
		return nil, fmt.Errorf("no google scopes requested")
	}

	oauthConfig, err := GetOAuthConfig(oauthCfg, scopes)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	token, err := GetTokenWithFlow(ctx, oauthConfig, store, env, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	return oauthConfig.Client(ctx, token), nil
}
