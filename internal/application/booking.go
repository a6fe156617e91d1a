package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/agentgate/internal/domain"
	"github.com/bnema/agentgate/internal/ports"
)

const ConflictMessage = "This time conflicts with existing events."

type BookingOutcome struct {
	// Conflict is set when the booking was held back; Result is then empty.
	Conflict  bool
	Conflicts []domain.Conflict
	Result    domain.ProviderResult
}

// BookingService books calendar events only after a conflict read over the
// same window has completed.
type BookingService struct {
	calendar ports.Calendar
}

func NewBookingService(calendar ports.Calendar) *BookingService {
	return &BookingService{calendar: calendar}
}

func (s *BookingService) Book(ctx context.Context, token string, request domain.BookingRequest) (BookingOutcome, error) {
	request = request.Normalize()
	if err := request.Validate(); err != nil {
		return BookingOutcome{}, err
	}

	events, err := s.calendar.ListEvents(ctx, token, request.CalendarID, request.Start, request.End)
	if err != nil {
		return BookingOutcome{}, fmt.Errorf("check calendar conflicts: %w", asUpstream(domain.ProviderGCal, err))
	}

	conflicts := domain.ConflictsFrom(events)
	if len(conflicts) > 0 && !request.Force {
		return BookingOutcome{Conflict: true, Conflicts: conflicts}, nil
	}

	result, err := s.calendar.CreateEvent(ctx, token, request)
	if err != nil {
		return BookingOutcome{}, fmt.Errorf("create calendar event: %w", asUpstream(domain.ProviderGCal, err))
	}

	return BookingOutcome{Conflicts: conflicts, Result: result}, nil
}

func asUpstream(provider domain.Provider, err error) error {
	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		return err
	}

	return &domain.UpstreamError{Source: string(provider), Err: err}
}
