package gcal

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bnema/agentgate/internal/adapters/apiclient"
	"github.com/bnema/agentgate/internal/domain"
	"github.com/bnema/agentgate/internal/ports"
)

const (
	DefaultBaseURL = "https://www.googleapis.com/calendar/v3"
	// conflictPageSize bounds the conflict read; a handful of overlapping
	// events is enough to refuse the booking.
	conflictPageSize = 10
)

type Calendar struct {
	client apiclient.Client
}

var _ ports.Calendar = (*Calendar)(nil)

func NewCalendar(client apiclient.Client) *Calendar {
	if client.BaseURL == "" {
		client.BaseURL = DefaultBaseURL
	}

	return &Calendar{client: client}
}

type eventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
}

func (t eventTime) value() string {
	if t.DateTime != "" {
		return t.DateTime
	}

	return t.Date
}

type eventList struct {
	Items []struct {
		ID      string    `json:"id"`
		Summary string    `json:"summary"`
		Status  string    `json:"status"`
		Start   eventTime `json:"start"`
		End     eventTime `json:"end"`
	} `json:"items"`
}

func (c *Calendar) ListEvents(ctx context.Context, token, calendarID, start, end string) ([]domain.CalendarEvent, error) {
	query := url.Values{
		"timeMin":      {start},
		"timeMax":      {end},
		"singleEvents": {"true"},
		"orderBy":      {"startTime"},
		"maxResults":   {fmt.Sprint(conflictPageSize)},
	}

	path, err := eventsPath(calendarID)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(ctx, apiclient.Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
		Token:  token,
	})
	if err != nil {
		return nil, fmt.Errorf("gcal list events: %w", err)
	}
	if !resp.OK() {
		return nil, &domain.UpstreamError{Source: string(domain.ProviderGCal), Status: resp.Status, Payload: resp.Body}
	}

	var list eventList
	if err := remarshal(resp.Body, &list); err != nil {
		return nil, &domain.UpstreamError{Source: string(domain.ProviderGCal), Status: resp.Status, Payload: resp.Body, Err: err}
	}

	events := make([]domain.CalendarEvent, 0, len(list.Items))
	for _, item := range list.Items {
		events = append(events, domain.CalendarEvent{
			ID:      item.ID,
			Summary: item.Summary,
			Start:   item.Start.value(),
			End:     item.End.value(),
			Status:  item.Status,
		})
	}

	return events, nil
}

func (c *Calendar) CreateEvent(ctx context.Context, token string, request domain.BookingRequest) (domain.ProviderResult, error) {
	payload := map[string]any{
		"summary": request.Summary,
		"start":   eventTime{DateTime: request.Start},
		"end":     eventTime{DateTime: request.End},
	}
	if request.Description != "" {
		payload["description"] = request.Description
	}

	path, err := eventsPath(request.CalendarID)
	if err != nil {
		return domain.ProviderResult{}, err
	}

	resp, err := c.client.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   payload,
		Token:  token,
	})
	if err != nil {
		return domain.ProviderResult{}, fmt.Errorf("gcal create event: %w", err)
	}

	return domain.ProviderResult{OK: resp.OK(), Status: resp.Status, Payload: resp.Body}, nil
}

func eventsPath(calendarID string) (string, error) {
	if calendarID == "" {
		calendarID = domain.DefaultCalendarID
	}
	if err := domain.ValidateCalendarID(calendarID); err != nil {
		return "", err
	}

	return "calendars/" + url.PathEscape(calendarID) + "/events", nil
}
