package application

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/agentgate/internal/domain"
	"github.com/bnema/agentgate/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func standupBooking() domain.BookingRequest {
	return domain.BookingRequest{
		Summary: "Standup",
		Start:   "2025-01-01T10:00:00Z",
		End:     "2025-01-01T10:30:00Z",
	}
}

func TestBookingServiceBlocksOnConflictWithoutForce(t *testing.T) {
	calendar := mocks.NewMockCalendar(t)
	service := NewBookingService(calendar)

	calendar.EXPECT().ListEvents(mockAnyContext(), "tok", "primary", "2025-01-01T10:00:00Z", "2025-01-01T10:30:00Z").
		Return([]domain.CalendarEvent{{
			ID:      "evt-1",
			Summary: "Existing",
			Start:   "2025-01-01T10:00:00Z",
			End:     "2025-01-01T10:30:00Z",
			Status:  "confirmed",
		}}, nil)

	outcome, err := service.Book(context.Background(), "tok", standupBooking())
	require.NoError(t, err)
	assert.True(t, outcome.Conflict)
	assert.Equal(t, []domain.Conflict{{
		ID:      "evt-1",
		Summary: "Existing",
		Start:   "2025-01-01T10:00:00Z",
		End:     "2025-01-01T10:30:00Z",
	}}, outcome.Conflicts)
	calendar.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingServiceForceCreatesDespiteConflict(t *testing.T) {
	calendar := mocks.NewMockCalendar(t)
	service := NewBookingService(calendar)

	request := standupBooking()
	request.Force = true
	created := domain.ProviderResult{OK: true, Status: 200, Payload: map[string]any{"id": "evt-2"}}

	calendar.EXPECT().ListEvents(mockAnyContext(), "tok", "primary", request.Start, request.End).
		Return([]domain.CalendarEvent{{ID: "evt-1", Status: "confirmed"}}, nil)
	calendar.EXPECT().CreateEvent(mockAnyContext(), "tok", mock.MatchedBy(func(r domain.BookingRequest) bool {
		return r.Force && r.CalendarID == "primary" && r.Summary == "Standup"
	})).Return(created, nil)

	outcome, err := service.Book(context.Background(), "tok", request)
	require.NoError(t, err)
	assert.False(t, outcome.Conflict)
	assert.Equal(t, created, outcome.Result)
	assert.Len(t, outcome.Conflicts, 1)
}

func TestBookingServiceIgnoresCancelledEvents(t *testing.T) {
	calendar := mocks.NewMockCalendar(t)
	service := NewBookingService(calendar)

	created := domain.ProviderResult{OK: true, Status: 200}
	calendar.EXPECT().ListEvents(mockAnyContext(), "tok", "team", mock.Anything, mock.Anything).
		Return([]domain.CalendarEvent{{ID: "evt-1", Status: domain.EventStatusCancelled}}, nil)
	calendar.EXPECT().CreateEvent(mockAnyContext(), "tok", mock.Anything).Return(created, nil)

	request := standupBooking()
	request.CalendarID = " team "
	outcome, err := service.Book(context.Background(), "tok", request)
	require.NoError(t, err)
	assert.False(t, outcome.Conflict)
	assert.Empty(t, outcome.Conflicts)
	assert.Equal(t, created, outcome.Result)
}

func TestBookingServiceInvalidRequestMakesNoCalls(t *testing.T) {
	calendar := mocks.NewMockCalendar(t)
	service := NewBookingService(calendar)

	request := standupBooking()
	request.End = request.Start

	_, err := service.Book(context.Background(), "tok", request)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestBookingServiceListFailureIsUpstream(t *testing.T) {
	calendar := mocks.NewMockCalendar(t)
	service := NewBookingService(calendar)

	upstream := &domain.UpstreamError{Source: "gcal", Status: 403, Payload: map[string]any{"error": "forbidden"}}
	calendar.EXPECT().ListEvents(mockAnyContext(), "tok", "primary", mock.Anything, mock.Anything).Return(nil, upstream)

	_, err := service.Book(context.Background(), "tok", standupBooking())
	require.ErrorIs(t, err, domain.ErrUpstreamFailure)

	var got *domain.UpstreamError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, 403, got.Status)
}

func TestBookingServiceCreateTransportFailureIsUpstream(t *testing.T) {
	calendar := mocks.NewMockCalendar(t)
	service := NewBookingService(calendar)

	calendar.EXPECT().ListEvents(mockAnyContext(), "tok", "primary", mock.Anything, mock.Anything).Return(nil, nil)
	calendar.EXPECT().CreateEvent(mockAnyContext(), "tok", mock.Anything).
		Return(domain.ProviderResult{}, errors.New("connection reset"))

	_, err := service.Book(context.Background(), "tok", standupBooking())
	require.ErrorIs(t, err, domain.ErrUpstreamFailure)
}
