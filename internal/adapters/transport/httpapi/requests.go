package httpapi

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/bnema/agentgate/internal/application"
	"github.com/bnema/agentgate/internal/domain"
)

type summaryRequest struct {
	Agent    string `json:"agent"`
	Action   string `json:"action"`
	Messages string `json:"messages"`
}

type identityFields struct {
	Agent    string `json:"agent"`
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
}

func (f identityFields) identity() domain.Identity {
	return domain.NewIdentity(f.UserID, f.TenantID)
}

type slackRequest struct {
	identityFields
	Text     string `json:"text"`
	Messages string `json:"messages"`
	Channel  string `json:"channel"`
}

type notionRequest struct {
	identityFields
	Text     string `json:"text"`
	Messages string `json:"messages"`
	PageID   string `json:"page_id"`
}

type issueRequest struct {
	identityFields
	Repo  string `json:"repo"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

type eventRequest struct {
	identityFields
	CalendarID  string   `json:"calendar_id"`
	Summary     string   `json:"summary"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	StartISO    string   `json:"start_iso"`
	EndISO      string   `json:"end_iso"`
	Description string   `json:"description"`
	Force       flexBool `json:"force"`
}

func (r eventRequest) booking() domain.BookingRequest {
	return domain.BookingRequest{
		CalendarID:  r.CalendarID,
		Summary:     r.Summary,
		Start:       firstNonEmpty(r.Start, r.StartISO),
		End:         firstNonEmpty(r.End, r.EndISO),
		Description: r.Description,
		Force:       bool(r.Force),
	}
}

func (r summaryRequest) command(claim application.ReplayClaim) application.SummarizeCommand {
	return application.SummarizeCommand{Agent: r.Agent, Action: r.Action, Messages: r.Messages, Replay: claim}
}

func (r slackRequest) command(claim application.ReplayClaim) application.PostMessageCommand {
	return application.PostMessageCommand{
		Agent:    r.Agent,
		Identity: r.identity(),
		Text:     r.Text,
		Messages: r.Messages,
		Channel:  r.Channel,
		Replay:   claim,
	}
}

func (r notionRequest) command(claim application.ReplayClaim) application.AppendNoteCommand {
	return application.AppendNoteCommand{
		Agent:    r.Agent,
		Identity: r.identity(),
		Text:     r.Text,
		Messages: r.Messages,
		PageID:   r.PageID,
		Replay:   claim,
	}
}

func (r issueRequest) command(claim application.ReplayClaim) application.CreateIssueCommand {
	return application.CreateIssueCommand{
		Agent:    r.Agent,
		Identity: r.identity(),
		Repo:     r.Repo,
		Title:    r.Title,
		Body:     r.Body,
		Replay:   claim,
	}
}

func (r eventRequest) command(claim application.ReplayClaim) application.CreateEventCommand {
	return application.CreateEventCommand{
		Agent:    r.Agent,
		Identity: r.identity(),
		Booking:  r.booking(),
		Replay:   claim,
	}
}

// flexBool accepts true/false, "true"/"1"/"yes" and non-zero numbers, the way
// form-driven clients tend to send flags.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*b = false
	case len(data) > 0 && data[0] == '"':
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "1", "true", "yes", "on":
			*b = true
		default:
			*b = false
		}
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*b = flexBool(data[0] == 't')
	default:
		n, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return err
		}
		*b = n != 0
	}

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
