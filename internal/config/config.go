package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/agentgate/internal/domain"
	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"
)

const (
	EnvPrefix   = "AGENTGATE"
	DefaultAddr = "127.0.0.1:5001"
	configDir   = ".agentgate"
	configName  = "config"
	configType  = "toml"
)

const (
	KeyServerAddr          = "server.addr"
	KeyAgentsPath          = "agents.path"
	KeyTokensDir           = "tokens.dir"
	KeyTokensPassPrefix    = "tokens.pass_prefix"
	KeyReplayWindow        = "replay.window"
	KeyReplayRequire       = "replay.require_headers"
	KeyHTTPTimeout         = "http.timeout"
	KeyRetryMaxAttempts    = "retry.max_attempts"
	KeyRetryMaxWait        = "retry.max_wait"
	KeySummarizerBaseURL   = "summarizer.base_url"
	KeySummarizerModel     = "summarizer.model"
	KeyBrokerBaseURL       = "broker.base_url"
	KeyLogLevel            = "log.level"
	KeyLogFormat           = "log.format"
	providerBaseURLPattern = "providers.%s.base_url"
)

// Secrets is the environment block shared with the deployment: credentials
// and demo overrides keep their established variable names.
type Secrets struct {
	DescopeProjectID     string `env:"DESCOPE_PROJECT_ID"`
	DescopeManagementKey string `env:"DESCOPE_AUTH_MANAGEMENT_KEY"`
	GeminiAPIKey         string `env:"GEMINI_API_KEY"`
	GeminiModel          string `env:"GEMINI_MODEL"`
	Port                 int    `env:"PORT"`
	DemoTokenSlack       string `env:"DEMO_BEARER_TOKEN_SLACK"`
	DemoTokenNotion      string `env:"DEMO_BEARER_TOKEN_NOTION"`
	DemoTokenGitHub      string `env:"DEMO_BEARER_TOKEN_GITHUB"`
	DemoTokenGCal        string `env:"DEMO_BEARER_TOKEN_GCAL"`
}

func (s Secrets) DemoTokens() map[domain.Provider]string {
	return map[domain.Provider]string{
		domain.ProviderSlack:  s.DemoTokenSlack,
		domain.ProviderNotion: s.DemoTokenNotion,
		domain.ProviderGitHub: s.DemoTokenGitHub,
		domain.ProviderGCal:   s.DemoTokenGCal,
	}
}

type Config struct {
	Addr                 string
	AgentsPath           string
	TokensDir            string
	PassPrefix           string
	ReplayWindow         time.Duration
	RequireReplayHeaders bool
	HTTPTimeout          time.Duration
	RetryMaxAttempts     int
	RetryMaxWait         time.Duration
	SummarizerBaseURL    string
	SummarizerModel      string
	BrokerBaseURL        string
	ProviderBaseURLs     map[domain.Provider]string
	LogLevel             string
	LogFormat            string
	Secrets              Secrets

	// Viper is the resolved settings tree, handed to adapters that read
	// their own keys.
	Viper *viper.Viper
}

// Load reads defaults, then the config file, then AGENTGATE_* variables,
// then the secrets block. configFile may be empty to use
// ~/.agentgate/config.toml when it exists.
func Load(configFile string) (Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}

	v := viper.New()
	setDefaults(v, homeDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(filepath.Join(homeDir, configDir))
	}

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var secrets Secrets
	if err := ParseEnv(&secrets); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Addr:                 strings.TrimSpace(v.GetString(KeyServerAddr)),
		AgentsPath:           expandHome(v.GetString(KeyAgentsPath), homeDir),
		TokensDir:            expandHome(v.GetString(KeyTokensDir), homeDir),
		PassPrefix:           v.GetString(KeyTokensPassPrefix),
		ReplayWindow:         v.GetDuration(KeyReplayWindow),
		RequireReplayHeaders: v.GetBool(KeyReplayRequire),
		HTTPTimeout:          v.GetDuration(KeyHTTPTimeout),
		RetryMaxAttempts:     v.GetInt(KeyRetryMaxAttempts),
		RetryMaxWait:         v.GetDuration(KeyRetryMaxWait),
		SummarizerBaseURL:    v.GetString(KeySummarizerBaseURL),
		SummarizerModel:      v.GetString(KeySummarizerModel),
		BrokerBaseURL:        v.GetString(KeyBrokerBaseURL),
		ProviderBaseURLs:     make(map[domain.Provider]string, len(domain.Providers())),
		LogLevel:             v.GetString(KeyLogLevel),
		LogFormat:            v.GetString(KeyLogFormat),
		Secrets:              secrets,
		Viper:                v,
	}
	for _, provider := range domain.Providers() {
		cfg.ProviderBaseURLs[provider] = v.GetString(ProviderBaseURLKey(provider))
	}
	if secrets.GeminiModel != "" && !v.IsSet(KeySummarizerModel) {
		cfg.SummarizerModel = secrets.GeminiModel
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
		if secrets.Port > 0 {
			cfg.Addr = "0.0.0.0:" + strconv.Itoa(secrets.Port)
		}
	}
	v.Set(KeyAgentsPath, cfg.AgentsPath)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.ReplayWindow < time.Second {
		return fmt.Errorf("%s must be at least 1s, got %s", KeyReplayWindow, c.ReplayWindow)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%s must be positive, got %s", KeyHTTPTimeout, c.HTTPTimeout)
	}
	if c.RetryMaxAttempts < 1 {
		return fmt.Errorf("%s must be at least 1, got %d", KeyRetryMaxAttempts, c.RetryMaxAttempts)
	}
	if c.RetryMaxWait < 0 {
		return fmt.Errorf("%s must not be negative, got %s", KeyRetryMaxWait, c.RetryMaxWait)
	}
	if c.AgentsPath == "" {
		return fmt.Errorf("%s is empty", KeyAgentsPath)
	}

	return nil
}

func ProviderBaseURLKey(provider domain.Provider) string {
	return fmt.Sprintf(providerBaseURLPattern, provider)
}

// ParseEnv loads tagged fields of target from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper, homeDir string) {
	base := filepath.Join(homeDir, configDir)

	v.SetDefault(KeyAgentsPath, filepath.Join(base, "agents.toml"))
	v.SetDefault(KeyTokensDir, filepath.Join(base, "tokens"))
	v.SetDefault(KeyTokensPassPrefix, "agentgate/tokens")
	v.SetDefault(KeyReplayWindow, "300s")
	v.SetDefault(KeyReplayRequire, true)
	v.SetDefault(KeyHTTPTimeout, "20s")
	v.SetDefault(KeyRetryMaxAttempts, 3)
	v.SetDefault(KeyRetryMaxWait, "30s")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
}

func expandHome(path, homeDir string) string {
	path = strings.TrimSpace(path)
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		return filepath.Join(homeDir, rest)
	}

	return path
}
