package ports

import (
	"context"

	"github.com/bnema/agentgate/internal/domain"
)

type Summarizer interface {
	Summarize(ctx context.Context, raw string, style domain.SummaryStyle) (string, error)
}
