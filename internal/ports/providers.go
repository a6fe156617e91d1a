package ports

import (
	"context"

	"github.com/bnema/agentgate/internal/domain"
)

// Provider adapters return a ProviderResult for every call the provider
// answered, including non-success answers. An error means the call itself
// could not be completed.

type Messenger interface {
	PostMessage(ctx context.Context, token, channel, text string) (domain.ProviderResult, error)
}

type NotesWriter interface {
	AppendParagraph(ctx context.Context, token, pageID, text string) (domain.ProviderResult, error)
}

type IssueTracker interface {
	CreateIssue(ctx context.Context, token, repo, title, body string) (domain.ProviderResult, error)
}

type Calendar interface {
	// ListEvents returns events overlapping [start, end). A non-success
	// answer is reported as a *domain.UpstreamError.
	ListEvents(ctx context.Context, token, calendarID, start, end string) ([]domain.CalendarEvent, error)
	CreateEvent(ctx context.Context, token string, request domain.BookingRequest) (domain.ProviderResult, error)
}
