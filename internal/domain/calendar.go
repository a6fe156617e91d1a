package domain

import (
	"strings"
	"time"
)

const DefaultCalendarID = "primary"

const EventStatusCancelled = "cancelled"

type BookingRequest struct {
	CalendarID  string
	Summary     string
	Start       string
	End         string
	Description string
	Force       bool
}

// Normalize trims every field and fills the default calendar.
func (r BookingRequest) Normalize() BookingRequest {
	r.CalendarID = strings.TrimSpace(r.CalendarID)
	if r.CalendarID == "" {
		r.CalendarID = DefaultCalendarID
	}
	r.Summary = strings.TrimSpace(r.Summary)
	r.Start = strings.TrimSpace(r.Start)
	r.End = strings.TrimSpace(r.End)
	r.Description = strings.TrimSpace(r.Description)
	return r
}

// Validate checks the request shape. It never touches the network.
func (r BookingRequest) Validate() error {
	if err := ValidateCalendarID(r.CalendarID); err != nil {
		return err
	}
	if r.Summary == "" {
		return NewValidationError("summary", "Missing 'summary'")
	}
	if r.Start == "" || r.End == "" {
		return NewValidationError("start", "Missing 'start' and/or 'end' (RFC 3339)")
	}

	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return NewValidationError("start", "'start' must be an RFC 3339 timestamp")
	}
	end, err := time.Parse(time.RFC3339, r.End)
	if err != nil {
		return NewValidationError("end", "'end' must be an RFC 3339 timestamp")
	}
	if !end.After(start) {
		return NewValidationError("end", "'end' must be after 'start'")
	}

	return nil
}

// ValidateCalendarID rejects ids that would not address a single calendar.
// An empty id means the default calendar.
func ValidateCalendarID(id string) error {
	if id == "." || id == ".." {
		return NewValidationError("calendar_id", "invalid 'calendar_id'")
	}

	return nil
}

// CalendarEvent is an existing event as reported by the calendar provider.
type CalendarEvent struct {
	ID      string
	Summary string
	Start   string
	End     string
	Status  string
}

func (e CalendarEvent) Cancelled() bool {
	return e.Status == EventStatusCancelled
}

type Conflict struct {
	ID      string `json:"id"`
	Summary string `json:"summary"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// ConflictsFrom keeps the provider's order and drops cancelled events.
func ConflictsFrom(events []CalendarEvent) []Conflict {
	conflicts := make([]Conflict, 0, len(events))
	for _, event := range events {
		if event.Cancelled() {
			continue
		}
		conflicts = append(conflicts, Conflict{
			ID:      event.ID,
			Summary: event.Summary,
			Start:   event.Start,
			End:     event.End,
		})
	}

	return conflicts
}
