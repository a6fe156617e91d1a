package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/agentgate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateEnv(t *testing.T) string {
	t.Helper()

	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	for _, key := range []string{
		"DESCOPE_PROJECT_ID", "DESCOPE_AUTH_MANAGEMENT_KEY", "GEMINI_API_KEY", "GEMINI_MODEL", "PORT",
		"DEMO_BEARER_TOKEN_SLACK", "DEMO_BEARER_TOKEN_NOTION", "DEMO_BEARER_TOKEN_GITHUB", "DEMO_BEARER_TOKEN_GCAL",
		"AGENTGATE_SERVER_ADDR", "AGENTGATE_REPLAY_WINDOW", "AGENTGATE_REPLAY_REQUIRE_HEADERS", "AGENTGATE_SUMMARIZER_MODEL",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	return homeDir
}

func TestLoadDefaults(t *testing.T) {
	homeDir := isolateEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.Equal(t, filepath.Join(homeDir, ".agentgate", "agents.toml"), cfg.AgentsPath)
	assert.Equal(t, filepath.Join(homeDir, ".agentgate", "tokens"), cfg.TokensDir)
	assert.Equal(t, "agentgate/tokens", cfg.PassPrefix)
	assert.Equal(t, 300*time.Second, cfg.ReplayWindow)
	assert.True(t, cfg.RequireReplayHeaders)
	assert.Equal(t, 20*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 3, cfg.RetryMaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.RetryMaxWait)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Len(t, cfg.ProviderBaseURLs, len(domain.Providers()))
	assert.Equal(t, cfg.AgentsPath, cfg.Viper.GetString(KeyAgentsPath))
}

func TestLoadReadsConfigFileAndEnvOverrides(t *testing.T) {
	homeDir := isolateEnv(t)
	configPath := filepath.Join(homeDir, ".agentgate", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0o700))
	require.NoError(t, os.WriteFile(configPath, []byte(`
[server]
addr = "127.0.0.1:7000"

[agents]
path = "~/policies/agents.toml"

[replay]
window = "60s"

[providers.slack]
base_url = "http://slack.local/api"
`), 0o600))

	t.Setenv("AGENTGATE_REPLAY_REQUIRE_HEADERS", "false")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7000", cfg.Addr)
	assert.Equal(t, filepath.Join(homeDir, "policies", "agents.toml"), cfg.AgentsPath)
	assert.Equal(t, time.Minute, cfg.ReplayWindow)
	assert.False(t, cfg.RequireReplayHeaders)
	assert.Equal(t, "http://slack.local/api", cfg.ProviderBaseURLs[domain.ProviderSlack])
	assert.Empty(t, cfg.ProviderBaseURLs[domain.ProviderNotion])
}

func TestLoadExplicitConfigFileMustExist(t *testing.T) {
	homeDir := isolateEnv(t)

	_, err := Load(filepath.Join(homeDir, "nope.toml"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "read config file")
}

func TestLoadSecretsFromEnvironment(t *testing.T) {
	isolateEnv(t)
	t.Setenv("DESCOPE_PROJECT_ID", "P123")
	t.Setenv("DESCOPE_AUTH_MANAGEMENT_KEY", "K456")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("GEMINI_MODEL", "models/gemini-2.0-flash")
	t.Setenv("DEMO_BEARER_TOKEN_SLACK", "xoxb-demo")
	t.Setenv("PORT", "8080")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "P123", cfg.Secrets.DescopeProjectID)
	assert.Equal(t, "K456", cfg.Secrets.DescopeManagementKey)
	assert.Equal(t, "g-key", cfg.Secrets.GeminiAPIKey)
	assert.Equal(t, "models/gemini-2.0-flash", cfg.SummarizerModel)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr)
	assert.Equal(t, "xoxb-demo", cfg.Secrets.DemoTokens()[domain.ProviderSlack])
	assert.Empty(t, cfg.Secrets.DemoTokens()[domain.ProviderGitHub])
}

func TestLoadExplicitModelBeatsSecretModel(t *testing.T) {
	isolateEnv(t)
	t.Setenv("GEMINI_MODEL", "gemini-a")
	t.Setenv("AGENTGATE_SUMMARIZER_MODEL", "gemini-b")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "gemini-b", cfg.SummarizerModel)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	isolateEnv(t)
	t.Setenv("AGENTGATE_REPLAY_WINDOW", "0s")

	_, err := Load("")
	require.Error(t, err)
	assert.ErrorContains(t, err, KeyReplayWindow)
}

func TestLoadRejectsMalformedPort(t *testing.T) {
	isolateEnv(t)
	t.Setenv("PORT", "eighty")

	_, err := Load("")
	require.Error(t, err)
	assert.ErrorContains(t, err, "parse env")
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		level   string
		format  string
		wantErr string
	}{
		{name: "text", level: "info", format: "text"},
		{name: "json", level: "debug", format: "json"},
		{name: "empty format", level: "warn", format: ""},
		{name: "bad level", level: "loud", format: "text", wantErr: "invalid log level"},
		{name: "bad format", level: "info", format: "xml", wantErr: "invalid log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger, err := NewLogger(&buf, tt.level, tt.format)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, logger)
		})
	}
}

func TestNewLoggerJSONRespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "warn", "json")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "agent", "agent_slackbot")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "shown", record["msg"])
	assert.Equal(t, "agent_slackbot", record["agent"])
}
