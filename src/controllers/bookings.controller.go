package controllers

import (
	"context"
	"log"
	"shareit/src/lib"
	"shareit/src/models"
	"shareit/src/store"
	"shareit/src/types"
	"shareit/src/validation"
	"shareit/src/views"
	"time"
)

// BookingController runs the booking lifecycle: every call passes the gate
// before it touches the store.
type BookingController struct {
	Store  store.BookingStore
	Items  store.ItemReader
	Gate   *validation.BookingValidation
	Views  *views.Assembler
	Cache  *lib.BookingCache
	Events lib.EventPublisher
	Now    func() time.Time
}

func (c *BookingController) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *BookingController) publish(ctx context.Context, kind lib.BookingEventType, b *models.Booking) {
	if c.Events == nil {
		return
	}
	err := c.Events.Publish(ctx, lib.BookingEvent{
		Type:      kind,
		BookingID: b.ID,
		ItemID:    b.ItemID,
		BookerID:  b.BookerID,
		Status:    b.Status,
		At:        c.now(),
	})
	if err != nil {
		log.Printf("[booking] Could not publish %s for booking %d: %s\n", kind, b.ID, err.Error())
	}
}

func (c *BookingController) Create(ctx context.Context, draft types.BookingDraft, bookerID uint) (*types.APIResponseBooking, error) {
	item, err := c.Gate.ValidateNewBooking(ctx, draft, bookerID)
	if err != nil {
		return nil, err
	}
	booking := models.Booking{
		Start:    draft.Start,
		End:      draft.End,
		ItemID:   item.ID,
		BookerID: bookerID,
		Status:   types.BOOKING_WAITING,
	}
	if err := c.Store.CreateBooking(ctx, &booking); err != nil {
		log.Printf("[booking] Error creating booking for item %d: %s\n", item.ID, err.Error())
		return nil, err
	}
	log.Printf("[booking] Created booking %d for item %d by user %d\n", booking.ID, item.ID, bookerID)
	c.publish(ctx, lib.BOOKING_CREATED, &booking)
	return c.Views.Booking(ctx, &booking)
}

// Approve records the owner's decision. The status write is conditional on the
// booking still waiting, so of two racing decisions only one is applied.
func (c *BookingController) Approve(ctx context.Context, bookingID uint, approved bool, callerID uint) (*types.APIResponseBooking, error) {
	booking, err := c.Gate.ValidateDecision(ctx, bookingID, callerID)
	if err != nil {
		return nil, err
	}
	target := types.DecisionStatus(approved)
	ok, err := c.Store.UpdateBookingStatus(ctx, booking.ID, types.BOOKING_WAITING, target)
	if err != nil {
		log.Printf("[booking] Error updating status of booking %d: %s\n", booking.ID, err.Error())
		return nil, err
	}
	if !ok {
		current, err := c.Gate.BookingExists(ctx, booking.ID)
		if err != nil {
			return nil, err
		}
		if err := c.Gate.NotAlreadyDecided(current); err != nil {
			return nil, err
		}
		return nil, types.Invalid("The booking has already been decided")
	}
	booking.Status = target
	c.Cache.Invalidate(ctx, booking.ID)
	log.Printf("[booking] Booking %d is now %s\n", booking.ID, target)

	kind := lib.BOOKING_REJECTED
	if approved {
		kind = lib.BOOKING_APPROVED
	}
	c.publish(ctx, kind, booking)
	return c.Views.Booking(ctx, booking)
}

func (c *BookingController) FindByID(ctx context.Context, bookingID, callerID uint) (*types.APIResponseBooking, error) {
	if cached, ok := c.Cache.Get(ctx, bookingID); ok {
		if err := validation.CanView(cached.OwnerID, cached.BookerID, callerID); err != nil {
			return nil, err
		}
		return cached.View, nil
	}
	booking, err := c.Gate.BookingExists(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	item, err := c.Gate.ItemExists(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	if err := validation.CanView(item.OwnerID, booking.BookerID, callerID); err != nil {
		return nil, err
	}
	view, err := c.Views.Booking(ctx, booking)
	if err != nil {
		return nil, err
	}
	// A waiting booking can still be approved or rejected after this read.
	if booking.Status.IsTerminal() {
		c.Cache.Set(ctx, item.OwnerID, booking.BookerID, view)
	}
	return view, nil
}

func (c *BookingController) FindAllByBooker(ctx context.Context, bookerID uint, state string, from, size *int) ([]*types.APIResponseBooking, error) {
	if _, err := c.Gate.UserExists(ctx, bookerID); err != nil {
		return nil, err
	}
	st, page, err := c.listParams(state, from, size)
	if err != nil {
		return nil, err
	}
	bookings, err := c.Store.ListBookingsByBooker(ctx, bookerID, st, c.now(), page)
	if err != nil {
		return nil, err
	}
	return c.Views.Bookings(ctx, bookings)
}

func (c *BookingController) FindAllByOwner(ctx context.Context, ownerID uint, state string, from, size *int) ([]*types.APIResponseBooking, error) {
	if _, err := c.Gate.UserExists(ctx, ownerID); err != nil {
		return nil, err
	}
	st, page, err := c.listParams(state, from, size)
	if err != nil {
		return nil, err
	}
	itemIDs, err := c.Items.ListItemIDsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if err := c.Gate.OwnerHasItems(itemIDs); err != nil {
		return nil, err
	}
	bookings, err := c.Store.ListBookingsByItems(ctx, itemIDs, st, c.now(), page)
	if err != nil {
		return nil, err
	}
	return c.Views.Bookings(ctx, bookings)
}

func (c *BookingController) listParams(state string, from, size *int) (types.BookingState, *types.Page, error) {
	st, err := c.Gate.ParseState(state)
	if err != nil {
		return "", nil, err
	}
	page, err := c.Gate.PageParamsValid(from, size)
	if err != nil {
		return "", nil, err
	}
	return st, page, nil
}
