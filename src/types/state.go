package types

import (
	"strings"
	"time"
)

// BookingState selects a temporal or status bucket of bookings.
type BookingState string

const (
	STATE_ALL      BookingState = "ALL"
	STATE_CURRENT  BookingState = "CURRENT"
	STATE_PAST     BookingState = "PAST"
	STATE_FUTURE   BookingState = "FUTURE"
	STATE_WAITING  BookingState = "WAITING"
	STATE_REJECTED BookingState = "REJECTED"
)

var bookingStates = []BookingState{
	STATE_ALL,
	STATE_CURRENT,
	STATE_PAST,
	STATE_FUTURE,
	STATE_WAITING,
	STATE_REJECTED,
}

// ParseBookingState is case-insensitive. An empty token means ALL.
func ParseBookingState(token string) (BookingState, bool) {
	t := strings.ToUpper(strings.TrimSpace(token))
	if t == "" {
		return STATE_ALL, true
	}
	for _, s := range bookingStates {
		if string(s) == t {
			return s, true
		}
	}
	return "", false
}

// Matches reports whether a booking with the given window and status falls into
// the state at instant now.
func (s BookingState) Matches(start, end time.Time, status BookingStatus, now time.Time) bool {
	switch s {
	case STATE_ALL:
		return true
	case STATE_CURRENT:
		return !start.After(now) && now.Before(end)
	case STATE_PAST:
		return end.Before(now)
	case STATE_FUTURE:
		return start.After(now)
	case STATE_WAITING:
		return status == BOOKING_WAITING
	case STATE_REJECTED:
		return status == BOOKING_REJECTED
	}
	return false
}
