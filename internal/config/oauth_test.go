package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOAuthClient() *OAuthClientConfig {
	return &OAuthClientConfig{
		Installed: OAuthInstalled{
			ClientID:                "qa-planner.apps.googleusercontent.com",
			ProjectID:               "qa-planner",
			AuthURI:                 "https://accounts.google.com/o/oauth2/auth",
			TokenURI:                "https://oauth2.googleapis.com/token",
			AuthProviderX509CertURL: "https://www.googleapis.com/oauth2/v1/certs",
			ClientSecret:            "secret",
			RedirectURIs:            []string{"http://localhost"},
		},
	}
}

func TestValidateOAuthClient(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *OAuthClientConfig)
		wantErr bool
	}{
		{"valid", func(c *OAuthClientConfig) {}, false},
		{"cert url is optional", func(c *OAuthClientConfig) { c.Installed.AuthProviderX509CertURL = "" }, false},
		{"missing client id", func(c *OAuthClientConfig) { c.Installed.ClientID = "" }, true},
		{"missing secret", func(c *OAuthClientConfig) { c.Installed.ClientSecret = "" }, true},
		{"invalid auth uri", func(c *OAuthClientConfig) { c.Installed.AuthURI = "not-a-valid-url" }, true},
		{"no redirect uris", func(c *OAuthClientConfig) { c.Installed.RedirectURIs = []string{} }, true},
		{"invalid redirect uri", func(c *OAuthClientConfig) { c.Installed.RedirectURIs = []string{"not a valid uri"} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validOAuthClient()
			tt.mutate(cfg)

			err := ValidateOAuthClient(cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "validation failed")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadOAuthClientFromPath_ValidConfig(t *testing.T) {
	oauthPath := filepath.Join(t.TempDir(), "oauthClient.test.json")

	contents := `{
  "installed": {
    "client_id": "qa-planner.apps.googleusercontent.com",
    "project_id": "qa-planner",
    "auth_uri": "https://accounts.google.com/o/oauth2/auth",
    "token_uri": "https://oauth2.googleapis.com/token",
    "client_secret": "secret",
    "redirect_uris": ["http://localhost", "urn:ietf:wg:oauth:2.0:oob"]
  }
}`
	require.NoError(t, os.WriteFile(oauthPath, []byte(contents), 0644))

	cfg, err := LoadOAuthClientFromPath(oauthPath)
	require.NoError(t, err)

	assert.Equal(t, "qa-planner.apps.googleusercontent.com", cfg.Installed.ClientID)
	assert.Equal(t, "https://oauth2.googleapis.com/token", cfg.Installed.TokenURI)
	assert.Equal(t, []string{"http://localhost", "urn:ietf:wg:oauth:2.0:oob"}, cfg.Installed.RedirectURIs)
}

func TestLoadOAuthClientFromPath_InvalidJSON(t *testing.T) {
	oauthPath := filepath.Join(t.TempDir(), "oauthClient.json")
	require.NoError(t, os.WriteFile(oauthPath, []byte(`{"installed": {"client_id": "x" "project_id": "y"}}`), 0644))

	_, err := LoadOAuthClientFromPath(oauthPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse oauth client file")
}

func TestLoadOAuthClientFromPath_MissingSection(t *testing.T) {
	oauthPath := filepath.Join(t.TempDir(), "oauthClient.json")
	require.NoError(t, os.WriteFile(oauthPath, []byte(`{"web": {}}`), 0644))

	_, err := LoadOAuthClientFromPath(oauthPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadOAuthClientFromPath_FileNotFound(t *testing.T) {
	_, err := LoadOAuthClientFromPath("/nonexistent/path/oauthClient.json")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read oauth client file")
}
