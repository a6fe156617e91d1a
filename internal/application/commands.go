package application

import "github.com/bnema/agentgate/internal/domain"

type SummarizeCommand struct {
	Agent    string
	Action   string
	Messages string
	Replay   ReplayClaim
}

type PostMessageCommand struct {
	Agent    string
	Identity domain.Identity
	Text     string
	Messages string
	Channel  string
	Replay   ReplayClaim
}

type AppendNoteCommand struct {
	Agent    string
	Identity domain.Identity
	Text     string
	Messages string
	PageID   string
	Replay   ReplayClaim
}

type CreateIssueCommand struct {
	Agent    string
	Identity domain.Identity
	Repo     string
	Title    string
	Body     string
	Replay   ReplayClaim
}

type CreateEventCommand struct {
	Agent    string
	Identity domain.Identity
	Booking  domain.BookingRequest
	Replay   ReplayClaim
}

type Health struct {
	OK         bool `json:"ok"`
	Broker     bool `json:"broker"`
	Summarizer bool `json:"summarizer"`
}
