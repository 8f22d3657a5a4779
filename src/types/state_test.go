package types

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseBookingState(t *testing.T) {
	for _, token := range []string{"ALL", "all", "Current", "past", "FUTURE", "waiting", "REJECTED"} {
		state, ok := ParseBookingState(token)
		assert.True(t, ok, token)
		assert.Equal(t, BookingState(strings.ToUpper(token)), state)
	}

	state, ok := ParseBookingState("")
	assert.True(t, ok)
	assert.Equal(t, STATE_ALL, state)

	_, ok = ParseBookingState("UNSUPPORTED_STATUS")
	assert.False(t, ok)

	_, ok = ParseBookingState("APPROVED")
	assert.False(t, ok, "APPROVED is a status, not a state token")
}

func TestBookingStateMatches(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	hour := time.Hour

	cases := []struct {
		name   string
		start  time.Time
		end    time.Time
		status BookingStatus
		want   map[BookingState]bool
	}{
		{
			name: "current", start: now.Add(-hour), end: now.Add(hour), status: BOOKING_APPROVED,
			want: map[BookingState]bool{STATE_ALL: true, STATE_CURRENT: true},
		},
		{
			name: "starts exactly now", start: now, end: now.Add(hour), status: BOOKING_WAITING,
			want: map[BookingState]bool{STATE_ALL: true, STATE_CURRENT: true, STATE_WAITING: true},
		},
		{
			name: "ends exactly now", start: now.Add(-hour), end: now, status: BOOKING_APPROVED,
			want: map[BookingState]bool{STATE_ALL: true},
		},
		{
			name: "past", start: now.Add(-2 * hour), end: now.Add(-hour), status: BOOKING_REJECTED,
			want: map[BookingState]bool{STATE_ALL: true, STATE_PAST: true, STATE_REJECTED: true},
		},
		{
			name: "future", start: now.Add(hour), end: now.Add(2 * hour), status: BOOKING_WAITING,
			want: map[BookingState]bool{STATE_ALL: true, STATE_FUTURE: true, STATE_WAITING: true},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, s := range bookingStates {
				assert.Equal(t, tc.want[s], s.Matches(tc.start, tc.end, tc.status, now), s)
			}
		})
	}
}

func TestBookingStatusTransitions(t *testing.T) {
	assert.True(t, BOOKING_WAITING.CanTransitionTo(BOOKING_APPROVED))
	assert.True(t, BOOKING_WAITING.CanTransitionTo(BOOKING_REJECTED))
	assert.False(t, BOOKING_APPROVED.CanTransitionTo(BOOKING_REJECTED))
	assert.False(t, BOOKING_APPROVED.CanTransitionTo(BOOKING_APPROVED))
	assert.False(t, BOOKING_REJECTED.CanTransitionTo(BOOKING_APPROVED))
	assert.True(t, BOOKING_APPROVED.IsTerminal())
	assert.True(t, BOOKING_REJECTED.IsTerminal())
	assert.False(t, BOOKING_WAITING.IsTerminal())
	assert.False(t, BookingStatus("CANCELED").IsValid())

	assert.Equal(t, BOOKING_APPROVED, DecisionStatus(true))
	assert.Equal(t, BOOKING_REJECTED, DecisionStatus(false))
}

func TestBookingStatusScan(t *testing.T) {
	var s BookingStatus
	assert.NoError(t, s.Scan([]byte("APPROVED")))
	assert.Equal(t, BOOKING_APPROVED, s)
	assert.NoError(t, s.Scan("REJECTED"))
	assert.Equal(t, BOOKING_REJECTED, s)
	assert.Error(t, s.Scan(42))
}

func TestErrorKinds(t *testing.T) {
	err := NotFound("Booking not found")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "Booking not found", err.Error())

	err = Invalid("Unknown state: FOO")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "Unknown state: FOO", err.Error())
}
