package types

import (
	"database/sql/driver"
	"fmt"
)

type BookingStatus string

const (
	BOOKING_WAITING  BookingStatus = "WAITING"
	BOOKING_APPROVED BookingStatus = "APPROVED"
	BOOKING_REJECTED BookingStatus = "REJECTED"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BOOKING_WAITING:  {BOOKING_APPROVED, BOOKING_REJECTED},
	BOOKING_APPROVED: {},
	BOOKING_REJECTED: {},
}

func (s BookingStatus) IsValid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range bookingTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

// DecisionStatus maps an owner's approve/reject decision to the target status.
func DecisionStatus(approved bool) BookingStatus {
	if approved {
		return BOOKING_APPROVED
	}
	return BOOKING_REJECTED
}

func (s *BookingStatus) Scan(value any) error {
	switch v := value.(type) {
	case []byte:
		*s = BookingStatus(v)
	case string:
		*s = BookingStatus(v)
	case nil:
		*s = ""
	default:
		return fmt.Errorf("cannot scan %T into BookingStatus", value)
	}
	return nil
}

func (s BookingStatus) Value() (driver.Value, error) {
	return string(s), nil
}
