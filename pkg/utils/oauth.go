package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/matthew-foreman-pf/qa-resource-planning-tool/internal/config"
)

const (
	AuthPort     = 3000
	authTimeout  = 5 * time.Minute
	callbackPath = "/oauth/callback"
	tokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"
)

// OAuth scopes for Google APIs
const (
	ScopeSheets    = "https://www.googleapis.com/auth/spreadsheets"
	ScopeGmailSend = "https://www.googleapis.com/auth/gmail.send"
)

var (
	tokenCache   *oauth2.Token
	tokenCacheMu sync.Mutex
)

// RequiredScopes returns the scopes needed by the features enabled in cfg.
// Tokens are cached per env, so a token granted for fewer scopes is replaced
// once a feature needing more is switched on.
func RequiredScopes(cfg *config.Config) []string {
	scopes := []string{}
	if cfg.Store.Backend == config.BackendSheets || cfg.RosterSheetID != "" {
		scopes = append(scopes, ScopeSheets)
	}
	if len(cfg.Digest.Recipients) > 0 {
		scopes = append(scopes, ScopeGmailSend)
	}
	return scopes
}

// MissingScopes returns the required scopes absent from a space separated scope list
func MissingScopes(granted string, required []string) []string {
	grantedScopes := strings.Fields(granted)
	missing := []string{}
	for _, scope := range required {
		if !slices.Contains(grantedScopes, scope) {
			missing = append(missing, scope)
		}
	}
	return missing
}

// GetOAuthConfig creates an OAuth2 config for the installed-app flow
func GetOAuthConfig(oauthCfg *config.OAuthClientConfig, scopes []string) (*oauth2.Config, error) {
	oauthConfigJSON, err := json.Marshal(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal oauth config: %w", err)
	}

	googleConfig, err := google.ConfigFromJSON(oauthConfigJSON, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to create google config: %w", err)
	}

	// The callback is served by our own local listener
	googleConfig.RedirectURL = fmt.Sprintf("http://localhost:%d%s", AuthPort, callbackPath)

	return googleConfig, nil
}

// validateTokenScopes asks Google which scopes the token carries
func validateTokenScopes(ctx context.Context, token *oauth2.Token, required []string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tokenInfoURL+"?access_token="+token.AccessToken, nil)
	if err != nil {
		return fmt.Errorf("failed to create tokeninfo request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call tokeninfo endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("tokeninfo request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var tokenInfo struct {
		Scope string `json:"scope"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenInfo); err != nil {
		return fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}

	if missing := MissingScopes(tokenInfo.Scope, required); len(missing) > 0 {
		return fmt.Errorf("token is missing required scopes: %v", missing)
	}

	return nil
}

// GetTokenWithFlow returns a valid token for env, trying the memory cache,
// then the token file (refreshing if needed), then the browser flow.
// Only one flow runs at a time.
func GetTokenWithFlow(ctx context.Context, oauthConfig *oauth2.Config, store *TokenStore, env string, logger *zap.Logger) (*oauth2.Token, error) {
	tokenCacheMu.Lock()
	defer tokenCacheMu.Unlock()

	if tokenCache != nil && tokenCache.Valid() {
		return tokenCache, nil
	}

	fileToken, err := store.Load(env)
	if err != nil {
		logger.Warn("Failed to load cached token", zap.Error(err))
	}

	if token := reuseToken(ctx, oauthConfig, store, env, fileToken, logger); token != nil {
		tokenCache = token
		return token, nil
	}

	logger.Info("No valid token found, starting OAuth flow")
	authURL := oauthConfig.AuthCodeURL("state", oauth2.AccessTypeOffline)
	fmt.Printf("\nVisit this URL to authorize the application:\n%s\n\n", authURL)

	code, err := listenForAuthCallback(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get authorization code: %w", err)
	}

	token, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}

	if err := validateTokenScopes(ctx, token, oauthConfig.Scopes); err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	if err := store.Save(env, token); err != nil {
		logger.Warn("Failed to save token", zap.Error(err))
	}

	tokenCache = token
	return token, nil
}

// reuseToken returns the cached file token, refreshed if expired, as long as it
// still carries every configured scope. Unusable tokens are deleted.
func reuseToken(ctx context.Context, oauthConfig *oauth2.Config, store *TokenStore, env string, fileToken *oauth2.Token, logger *zap.Logger) *oauth2.Token {
	if fileToken == nil {
		return nil
	}

	token := fileToken
	refreshed := false
	if !token.Valid() {
		if token.RefreshToken == "" {
			return nil
		}
		newToken, err := oauthConfig.TokenSource(ctx, token).Token()
		if err != nil || newToken.AccessToken == token.AccessToken {
			return nil
		}
		token = newToken
		refreshed = true
	}

	if err := validateTokenScopes(ctx, token, oauthConfig.Scopes); err != nil {
		logger.Info("Cached token cannot be used, deleting it", zap.Error(err))
		if err := store.Delete(env); err != nil {
			logger.Warn("Failed to delete token", zap.Error(err))
		}
		return nil
	}

	if refreshed {
		logger.Debug("Token refreshed")
		if err := store.Save(env, token); err != nil {
			logger.Warn("Failed to save refreshed token", zap.Error(err))
		}
	}

	return token
}

// listenForAuthCallback starts a local HTTP server and waits for the OAuth callback
func listenForAuthCallback(ctx context.Context) (string, error) {
	codeChan := make(chan string, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			errChan <- fmt.Errorf("no authorization code received")
			http.Error(w, "Authorization failed", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body><h1>QA Planner authorized</h1><p>You can close this window.</p></body></html>`)

		codeChan <- code
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", AuthPort),
		Handler: mux,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	timeoutCtx, cancel := context.WithTimeout(ctx, authTimeout)
	defer cancel()

	var code string
	var authErr error

	select {
	case code = <-codeChan:
	case authErr = <-errChan:
	case <-timeoutCtx.Done():
		authErr = fmt.Errorf("authorization timeout after %v", authTimeout)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	server.Shutdown(shutdownCtx)

	if authErr != nil {
		return "", authErr
	}

	return code, nil
}
