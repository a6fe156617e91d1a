package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/bnema/agentgate/internal/adapters/apiclient"
	descopebroker "github.com/bnema/agentgate/internal/adapters/broker/descope"
	gcalprovider "github.com/bnema/agentgate/internal/adapters/providers/gcal"
	githubprovider "github.com/bnema/agentgate/internal/adapters/providers/github"
	notionprovider "github.com/bnema/agentgate/internal/adapters/providers/notion"
	slackprovider "github.com/bnema/agentgate/internal/adapters/providers/slack"
	agentsrender "github.com/bnema/agentgate/internal/adapters/render/agents"
	tomlrepo "github.com/bnema/agentgate/internal/adapters/repo/toml"
	chainstore "github.com/bnema/agentgate/internal/adapters/secrets/chain"
	envstore "github.com/bnema/agentgate/internal/adapters/secrets/env"
	"github.com/bnema/agentgate/internal/adapters/summarizer/gemini"
	"github.com/bnema/agentgate/internal/application"
	"github.com/bnema/agentgate/internal/config"
	"github.com/bnema/agentgate/internal/domain"
	"github.com/bnema/agentgate/internal/ports"
)

type app struct {
	cfg            config.Config
	logger         *slog.Logger
	policies       *application.PolicyService
	policyPath     string
	tokens         ports.TokenStore
	broker         *descopebroker.Broker
	agentsRenderer func([]domain.AgentGrant, agentsrender.RenderOptions) (string, error)
	gatewayURL     string
	httpClient     *http.Client
	now            func() time.Time
}

func wireApp() (*app, error) {
	cfg, err := config.Load(os.Getenv("AGENTGATE_CONFIG"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := config.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	repo, err := tomlrepo.NewRepository(cfg.Viper)
	if err != nil {
		return nil, fmt.Errorf("wire agents repository: %w", err)
	}

	tokens, err := chainstore.NewOverrideChain(cfg.Secrets.DemoTokens(), cfg.PassPrefix, cfg.TokensDir)
	if err != nil {
		return nil, fmt.Errorf("wire token store chain: %w", err)
	}

	a := &app{
		cfg:            cfg,
		logger:         logger,
		policies:       application.NewPolicyService(repo, logger),
		policyPath:     repo.Path(),
		tokens:         tokens,
		agentsRenderer: agentsrender.Render,
		gatewayURL:     envOrDefault("AGENTGATE_URL", "http://"+dialAddr(cfg.Addr)),
		httpClient:     http.DefaultClient,
		now:            time.Now,
	}
	a.broker = descopebroker.NewBroker(descopebroker.Config{
		ProjectID:     cfg.Secrets.DescopeProjectID,
		ManagementKey: cfg.Secrets.DescopeManagementKey,
	}, a.apiClient(cfg.BrokerBaseURL))

	return a, nil
}

func (a *app) apiClient(baseURL string) apiclient.Client {
	return apiclient.Client{
		BaseURL:        baseURL,
		HTTPClient:     a.httpClient,
		RequestTimeout: a.cfg.HTTPTimeout,
		MaxAttempts:    a.cfg.RetryMaxAttempts,
		MaxWait:        a.cfg.RetryMaxWait,
	}
}

// buildGateway loads the authorization table once; edits to the agents file
// take effect on the next start.
func (a *app) buildGateway(ctx context.Context) (*application.Gateway, *application.ReplayGuard, error) {
	snapshot, err := a.policies.Load(ctx)
	if err != nil {
		return nil, nil, err
	}

	replay := application.NewReplayGuard(ports.SystemClock{}, a.cfg.ReplayWindow)
	deps := application.GatewayDeps{
		Authorizer:          application.NewScopeAuthorizer(snapshot.Table),
		Replay:              replay,
		Credentials:         application.NewCredentialResolver(a.tokens, a.broker, a.logger),
		Messenger:           slackprovider.NewMessenger(a.apiClient(a.cfg.ProviderBaseURLs[domain.ProviderSlack])),
		Notes:               notionprovider.NewWriter(a.apiClient(a.cfg.ProviderBaseURLs[domain.ProviderNotion])),
		Issues:              githubprovider.NewIssueTracker(a.apiClient(a.cfg.ProviderBaseURLs[domain.ProviderGitHub])),
		Calendar:            gcalprovider.NewCalendar(a.apiClient(a.cfg.ProviderBaseURLs[domain.ProviderGCal])),
		Logger:              a.logger,
		RequireReplayClaims: a.cfg.RequireReplayHeaders,
	}

	summarizer := gemini.NewSummarizer(gemini.Config{
		APIKey:     a.cfg.Secrets.GeminiAPIKey,
		Model:      a.cfg.SummarizerModel,
		BaseURL:    a.cfg.SummarizerBaseURL,
		HTTPClient: a.httpClient,
		Timeout:    a.cfg.HTTPTimeout,
	})
	if summarizer != nil {
		deps.Summarizer = summarizer
	} else {
		a.logger.WarnContext(ctx, "GEMINI_API_KEY not set, summarization is disabled")
	}

	if overridden := envstore.NewStore(a.cfg.Secrets.DemoTokens()).Providers(); len(overridden) > 0 {
		a.logger.InfoContext(ctx, "environment token overrides active", "providers", overridden)
	}

	return application.NewGateway(deps), replay, nil
}

// dialAddr turns a listen address into one a local client can dial.
func dialAddr(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	if host == "" || net.ParseIP(host).IsUnspecified() {
		host = "127.0.0.1"
	}
	return net.JoinHostPort(host, port)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
