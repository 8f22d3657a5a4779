// Package validation holds the authorization and validation gate that runs
// before every booking mutation or read.
package validation

import (
	"context"
	"errors"
	"fmt"
	"shareit/src/config"
	"shareit/src/models"
	"shareit/src/store"
	"shareit/src/types"
	"time"
)

type BookingValidation struct {
	Bookings store.BookingStore
	Items    store.ItemReader
	Users    store.UserReader
	Policy   config.DatePolicy
	Now      func() time.Time
}

func (v *BookingValidation) now() time.Time {
	if v.Now != nil {
		return v.Now()
	}
	return time.Now()
}

func lookup[T any](rec *T, err error, msg string) (*T, error) {
	if errors.Is(err, store.ErrNotFound) {
		return nil, types.NotFound(msg)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (v *BookingValidation) UserExists(ctx context.Context, id uint) (*models.User, error) {
	user, err := v.Users.GetUser(ctx, id)
	return lookup(user, err, "User not found")
}

func (v *BookingValidation) ItemExists(ctx context.Context, id uint) (*models.Item, error) {
	item, err := v.Items.GetItem(ctx, id)
	return lookup(item, err, "Item not found")
}

func (v *BookingValidation) BookingExists(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := v.Bookings.GetBooking(ctx, id)
	return lookup(booking, err, "Booking not found")
}

func (v *BookingValidation) ItemAvailable(item *models.Item) error {
	if !item.Available {
		return types.Invalid("Item isn't available for booking")
	}
	return nil
}

// DatesValid always requires end after start. The future policy also rejects
// windows that begin or end in the past.
func (v *BookingValidation) DatesValid(start, end time.Time) error {
	if !end.After(start) {
		return types.Invalid("End must be after start")
	}
	if v.Policy != config.DATE_POLICY_FUTURE {
		return nil
	}
	now := v.now()
	if end.Before(now) {
		return types.Invalid("Invalid end date")
	}
	if !start.After(now) {
		return types.Invalid("Invalid start date")
	}
	return nil
}

func (v *BookingValidation) NotOwnerBooking(item *models.Item, bookerID uint) error {
	if item.OwnerID == bookerID {
		return types.NotFound("The owner can't book his item")
	}
	return nil
}

func (v *BookingValidation) IsNotBooker(booking *models.Booking, userID uint) error {
	if booking.BookerID == userID {
		return types.NotFound("Booker cannot update the booking data")
	}
	return nil
}

func (v *BookingValidation) IsOwnerOfBookedItem(ctx context.Context, booking *models.Booking, userID uint) error {
	item, err := v.ItemExists(ctx, booking.ItemID)
	if err != nil {
		return err
	}
	if item.OwnerID != userID {
		return types.Invalid("User isn't owner")
	}
	return nil
}

func (v *BookingValidation) NotAlreadyDecided(booking *models.Booking) error {
	switch booking.Status {
	case types.BOOKING_APPROVED:
		return types.Invalid("The booking has already been approved")
	case types.BOOKING_REJECTED:
		return types.Invalid("The booking has already been rejected")
	}
	return nil
}

func (v *BookingValidation) IsOwnerOrBooker(ctx context.Context, booking *models.Booking, userID uint) error {
	item, err := v.ItemExists(ctx, booking.ItemID)
	if err != nil {
		return err
	}
	return CanView(item.OwnerID, booking.BookerID, userID)
}

// CanView decides read access to a booking from ids alone, so cached
// projections can be checked without touching the store.
func CanView(ownerID, bookerID, userID uint) error {
	if userID != ownerID && userID != bookerID {
		return types.NotFound("User isn't owner or booker")
	}
	return nil
}

func (v *BookingValidation) ParseState(token string) (types.BookingState, error) {
	state, ok := types.ParseBookingState(token)
	if !ok {
		return "", types.Invalid(fmt.Sprintf("Unknown state: %s", token))
	}
	return state, nil
}

// PageParamsValid returns nil when both from and size are omitted.
func (v *BookingValidation) PageParamsValid(from, size *int) (*types.Page, error) {
	if from == nil && size == nil {
		return nil, nil
	}
	page := &types.Page{From: types.DEFAULT_PAGE_FROM, Size: types.DEFAULT_PAGE_SIZE}
	if from != nil {
		page.From = *from
	}
	if size != nil {
		page.Size = *size
	}
	if page.From < 0 {
		return nil, types.Invalid("Parameter from must not be negative")
	}
	if page.Size <= 0 {
		return nil, types.Invalid("Parameter size must be positive")
	}
	return page, nil
}

func (v *BookingValidation) OwnerHasItems(itemIDs []uint) error {
	if len(itemIDs) == 0 {
		return types.Invalid("The owner doesn't have a single item")
	}
	return nil
}

// ValidateNewBooking runs the creation checks in order and stops at the first
// failure: booker, item, availability, dates, self-booking.
func (v *BookingValidation) ValidateNewBooking(ctx context.Context, draft types.BookingDraft, bookerID uint) (*models.Item, error) {
	if _, err := v.UserExists(ctx, bookerID); err != nil {
		return nil, err
	}
	item, err := v.ItemExists(ctx, draft.ItemID)
	if err != nil {
		return nil, err
	}
	if err := v.ItemAvailable(item); err != nil {
		return nil, err
	}
	if err := v.DatesValid(draft.Start, draft.End); err != nil {
		return nil, err
	}
	if err := v.NotOwnerBooking(item, bookerID); err != nil {
		return nil, err
	}
	return item, nil
}

// ValidateDecision runs the approval checks in order: exists, not booker,
// owner, still waiting.
func (v *BookingValidation) ValidateDecision(ctx context.Context, bookingID, callerID uint) (*models.Booking, error) {
	booking, err := v.BookingExists(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := v.IsNotBooker(booking, callerID); err != nil {
		return nil, err
	}
	if err := v.IsOwnerOfBookedItem(ctx, booking, callerID); err != nil {
		return nil, err
	}
	if err := v.NotAlreadyDecided(booking); err != nil {
		return nil, err
	}
	return booking, nil
}
