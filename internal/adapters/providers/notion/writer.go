package notion

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bnema/agentgate/internal/adapters/apiclient"
	"github.com/bnema/agentgate/internal/domain"
	"github.com/bnema/agentgate/internal/ports"
)

const (
	DefaultBaseURL = "https://api.notion.com/v1"
	APIVersion     = "2022-06-28"
	// MaxParagraphRunes keeps one paragraph under the API's rich text limit.
	MaxParagraphRunes = 1900
)

type Writer struct {
	client apiclient.Client
}

var _ ports.NotesWriter = (*Writer)(nil)

func NewWriter(client apiclient.Client) *Writer {
	if client.BaseURL == "" {
		client.BaseURL = DefaultBaseURL
	}
	client.Header = client.Header.Clone()
	if client.Header == nil {
		client.Header = http.Header{}
	}
	client.Header.Set("Notion-Version", APIVersion)

	return &Writer{client: client}
}

// AppendParagraph adds text as a single paragraph block at the end of the
// page. pageID may be any form domain.NormalizePageID accepts.
func (w *Writer) AppendParagraph(ctx context.Context, token, pageID, text string) (domain.ProviderResult, error) {
	blockID, err := domain.NormalizePageID(pageID)
	if err != nil {
		return domain.ProviderResult{}, err
	}

	payload := map[string]any{
		"children": []any{
			map[string]any{
				"object": "block",
				"type":   "paragraph",
				"paragraph": map[string]any{
					"rich_text": []any{
						map[string]any{
							"type": "text",
							"text": map[string]any{"content": truncate(text, MaxParagraphRunes)},
						},
					},
				},
			},
		},
	}

	resp, err := w.client.Do(ctx, apiclient.Request{
		Method: http.MethodPatch,
		Path:   "blocks/" + blockID + "/children",
		Body:   payload,
		Token:  token,
	})
	if err != nil {
		return domain.ProviderResult{}, fmt.Errorf("notion append paragraph: %w", err)
	}

	return domain.ProviderResult{OK: resp.OK(), Status: resp.Status, Payload: resp.Body}, nil
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}

	return string(runes[:limit])
}
