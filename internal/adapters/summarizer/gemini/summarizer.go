package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/agentgate/internal/domain"
	"github.com/bnema/agentgate/internal/ports"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	// DefaultBaseURL is Gemini's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultModel   = "gemini-1.5-flash"
	defaultTimeout = 20 * time.Second
)

var prompts = map[domain.SummaryStyle]string{
	domain.SummaryStyleStandup: "Convert the following raw updates into a Slack-ready daily standup. " +
		"Use 2-4 concise bullet points, include blockers, and a one-line title.",
	domain.SummaryStyleNotes: "Convert these raw updates into concise meeting notes for a Notion page. " +
		"Start with a short title, then 3-6 bullets; include blockers and follow-ups. " +
		"Keep it crisp and actionable.",
}

type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Summarizer turns raw chat updates into short structured text. Every call
// is a single attempt.
type Summarizer struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

var _ ports.Summarizer = (*Summarizer)(nil)

// NewSummarizer returns nil when no API key is configured.
func NewSummarizer(cfg Config) *Summarizer {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	model := strings.TrimPrefix(strings.TrimSpace(cfg.Model), "models/")
	if model == "" {
		model = DefaultModel
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	return &Summarizer{client: openai.NewClient(opts...), model: model, timeout: timeout}
}

func (s *Summarizer) Model() string {
	return s.model
}

func (s *Summarizer) Summarize(ctx context.Context, raw string, style domain.SummaryStyle) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", domain.NewValidationError("messages", "Missing 'messages' to summarize.")
	}

	prompt, ok := prompts[style]
	if !ok {
		prompt = prompts[domain.SummaryStyleStandup]
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	completion, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt),
			openai.UserMessage(raw),
		},
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("gemini completion failed with status %d: %w", apiErr.StatusCode, err)
		}
		return "", fmt.Errorf("gemini completion: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", errors.New("gemini completion returned no choices")
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
