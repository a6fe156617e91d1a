package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bnema/agentgate/internal/domain"
	"github.com/bnema/agentgate/internal/ports"
)

const DefaultIssueTitle = "From Agent"

var errSummarizerUnavailable = errors.New("summarizer is not configured")

type GatewayDeps struct {
	Authorizer  *ScopeAuthorizer
	Replay      *ReplayGuard
	Credentials *CredentialResolver
	Summarizer  ports.Summarizer
	Messenger   ports.Messenger
	Notes       ports.NotesWriter
	Issues      ports.IssueTracker
	Calendar    ports.Calendar
	Logger      *slog.Logger

	// RequireReplayClaims rejects requests that carry no timestamp and no
	// nonce. When false such requests skip the replay check.
	RequireReplayClaims bool
}

// Gateway runs every action through the same gate: scope, replay, request
// shape, credential, optional summary, provider call.
type Gateway struct {
	authorizer    *ScopeAuthorizer
	replay        *ReplayGuard
	credentials   *CredentialResolver
	summarizer    ports.Summarizer
	messenger     ports.Messenger
	notes         ports.NotesWriter
	issues        ports.IssueTracker
	booking       *BookingService
	logger        *slog.Logger
	requireClaims bool
}

func NewGateway(deps GatewayDeps) *Gateway {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	replay := deps.Replay
	if replay == nil {
		replay = NewReplayGuard(nil, DefaultReplayWindow)
	}

	return &Gateway{
		authorizer:    deps.Authorizer,
		replay:        replay,
		credentials:   deps.Credentials,
		summarizer:    deps.Summarizer,
		messenger:     deps.Messenger,
		notes:         deps.Notes,
		issues:        deps.Issues,
		booking:       NewBookingService(deps.Calendar),
		logger:        logger,
		requireClaims: deps.RequireReplayClaims,
	}
}

func (g *Gateway) Health() Health {
	return Health{
		OK:         true,
		Broker:     g.credentials != nil && g.credentials.BrokerConfigured(),
		Summarizer: g.summarizer != nil,
	}
}

func (g *Gateway) TriggerSummary(ctx context.Context, cmd SummarizeCommand) (string, error) {
	action := strings.TrimSpace(cmd.Action)
	if action == "" {
		action = string(domain.ActionSummarize)
	}
	if err := g.admit(ctx, cmd.Agent, action, cmd.Replay); err != nil {
		return "", err
	}

	if strings.TrimSpace(cmd.Messages) == "" {
		return "", domain.NewValidationError("messages", "Missing 'messages' to summarize.")
	}

	return g.summarize(ctx, cmd.Messages, domain.SummaryStyleStandup)
}

func (g *Gateway) PostMessage(ctx context.Context, cmd PostMessageCommand) (domain.ProviderResult, error) {
	if err := g.admit(ctx, cmd.Agent, string(domain.ActionPostSlack), cmd.Replay); err != nil {
		return domain.ProviderResult{}, err
	}

	if err := requireTextOrMessages(cmd.Text, cmd.Messages); err != nil {
		return domain.ProviderResult{}, err
	}
	channel := domain.NormalizeChannelRef(cmd.Channel)
	if channel == "" {
		return domain.ProviderResult{}, domain.NewValidationError("channel",
			"Missing Slack 'channel' (channel ID like C09... or paste the full channel URL).")
	}

	token, err := g.credential(ctx, domain.ProviderSlack, cmd.Identity)
	if err != nil {
		return domain.ProviderResult{}, err
	}

	text, err := g.textOrSummary(ctx, cmd.Text, cmd.Messages, domain.SummaryStyleStandup)
	if err != nil {
		return domain.ProviderResult{}, err
	}

	result, err := g.messenger.PostMessage(ctx, token, channel, text)
	if err != nil {
		return domain.ProviderResult{}, fmt.Errorf("post message: %w", asUpstream(domain.ProviderSlack, err))
	}

	return g.logResult(ctx, domain.ProviderSlack, result), nil
}

func (g *Gateway) AppendNote(ctx context.Context, cmd AppendNoteCommand) (domain.ProviderResult, error) {
	if err := g.admit(ctx, cmd.Agent, string(domain.ActionUpdateNotion), cmd.Replay); err != nil {
		return domain.ProviderResult{}, err
	}

	if err := requireTextOrMessages(cmd.Text, cmd.Messages); err != nil {
		return domain.ProviderResult{}, err
	}
	pageID, err := domain.NormalizePageID(cmd.PageID)
	if err != nil {
		return domain.ProviderResult{}, err
	}

	token, err := g.credential(ctx, domain.ProviderNotion, cmd.Identity)
	if err != nil {
		return domain.ProviderResult{}, err
	}

	text, err := g.textOrSummary(ctx, cmd.Text, cmd.Messages, domain.SummaryStyleNotes)
	if err != nil {
		return domain.ProviderResult{}, err
	}

	result, err := g.notes.AppendParagraph(ctx, token, pageID, text)
	if err != nil {
		return domain.ProviderResult{}, fmt.Errorf("append note: %w", asUpstream(domain.ProviderNotion, err))
	}

	return g.logResult(ctx, domain.ProviderNotion, result), nil
}

func (g *Gateway) CreateIssue(ctx context.Context, cmd CreateIssueCommand) (domain.ProviderResult, error) {
	if err := g.admit(ctx, cmd.Agent, string(domain.ActionCreateIssue), cmd.Replay); err != nil {
		return domain.ProviderResult{}, err
	}

	owner, name, err := domain.SplitRepo(cmd.Repo)
	if err != nil {
		return domain.ProviderResult{}, err
	}
	repo := owner + "/" + name
	title := strings.TrimSpace(cmd.Title)
	if title == "" {
		title = DefaultIssueTitle
	}

	token, err := g.credential(ctx, domain.ProviderGitHub, cmd.Identity)
	if err != nil {
		return domain.ProviderResult{}, err
	}

	result, err := g.issues.CreateIssue(ctx, token, repo, title, strings.TrimSpace(cmd.Body))
	if err != nil {
		return domain.ProviderResult{}, fmt.Errorf("create issue: %w", asUpstream(domain.ProviderGitHub, err))
	}

	return g.logResult(ctx, domain.ProviderGitHub, result), nil
}

func (g *Gateway) CreateEvent(ctx context.Context, cmd CreateEventCommand) (BookingOutcome, error) {
	if err := g.admit(ctx, cmd.Agent, string(domain.ActionCreateEvent), cmd.Replay); err != nil {
		return BookingOutcome{}, err
	}

	booking := cmd.Booking.Normalize()
	if err := booking.Validate(); err != nil {
		return BookingOutcome{}, err
	}

	// Calendar connections are never tenant scoped.
	identity := domain.Identity{UserID: cmd.Identity.UserID}
	token, err := g.credential(ctx, domain.ProviderGCal, identity)
	if err != nil {
		return BookingOutcome{}, err
	}

	outcome, err := g.booking.Book(ctx, token, booking)
	if err != nil {
		return BookingOutcome{}, err
	}
	if outcome.Conflict {
		g.logger.InfoContext(ctx, "calendar booking held back by conflicts",
			"calendar", booking.CalendarID, "conflicts", len(outcome.Conflicts))
		return outcome, nil
	}

	outcome.Result = g.logResult(ctx, domain.ProviderGCal, outcome.Result)
	return outcome, nil
}

// admit is the gate shared by every action: scope first, then replay.
func (g *Gateway) admit(ctx context.Context, agent, action string, claim ReplayClaim) error {
	if g.authorizer == nil {
		return fmt.Errorf("%w: no authorization table", domain.ErrAuthorizationDenied)
	}
	if err := g.authorizer.Authorize(agent, action); err != nil {
		g.logger.WarnContext(ctx, "agent action denied", "agent", agent, "action", action)
		return err
	}

	if claim.Empty() && !g.requireClaims {
		g.logger.DebugContext(ctx, "replay check skipped for unsigned request", "agent", agent, "action", action)
		return nil
	}

	if err := g.replay.Check(claim.Timestamp, claim.Nonce); err != nil {
		g.logger.WarnContext(ctx, "request rejected by replay guard", "agent", agent, "action", action, "error", err)
		return err
	}

	return nil
}

func (g *Gateway) credential(ctx context.Context, provider domain.Provider, identity domain.Identity) (string, error) {
	if g.credentials == nil {
		return "", &domain.CredentialError{Provider: provider}
	}

	token, ok := g.credentials.Resolve(ctx, provider, domain.NewIdentity(identity.UserID, identity.TenantID))
	if !ok {
		g.logger.InfoContext(ctx, "no credential available", "provider", provider, "user", identity.UserID)
		return "", &domain.CredentialError{Provider: provider}
	}

	return token, nil
}

func (g *Gateway) textOrSummary(ctx context.Context, text, messages string, style domain.SummaryStyle) (string, error) {
	if text = strings.TrimSpace(text); text != "" {
		return text, nil
	}

	return g.summarize(ctx, messages, style)
}

// summarize makes exactly one summarizer call.
func (g *Gateway) summarize(ctx context.Context, raw string, style domain.SummaryStyle) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", domain.NewValidationError("messages", "Missing 'messages' to summarize.")
	}
	if g.summarizer == nil {
		return "", &domain.UpstreamError{Source: "summarizer", Err: errSummarizerUnavailable}
	}

	summary, err := g.summarizer.Summarize(ctx, raw, style)
	if err != nil {
		g.logger.WarnContext(ctx, "summarization failed", "style", style, "error", err)
		return "", &domain.UpstreamError{Source: "summarizer", Err: err}
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", &domain.UpstreamError{Source: "summarizer", Err: errors.New("empty summary")}
	}

	return summary, nil
}

func (g *Gateway) logResult(ctx context.Context, provider domain.Provider, result domain.ProviderResult) domain.ProviderResult {
	if result.OK {
		g.logger.InfoContext(ctx, "provider call succeeded", "provider", provider, "status", result.Status)
	} else {
		g.logger.WarnContext(ctx, "provider call failed", "provider", provider, "status", result.Status)
	}

	return result
}

func requireTextOrMessages(text, messages string) error {
	if strings.TrimSpace(text) == "" && strings.TrimSpace(messages) == "" {
		return domain.NewValidationError("text", "Provide 'text' or 'messages' to summarize.")
	}

	return nil
}
