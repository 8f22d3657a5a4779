package validation

import (
	"context"
	"errors"
	"shareit/src/config"
	"shareit/src/models"
	"shareit/src/store"
	"shareit/src/types"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	gate      *BookingValidation
	mem       *store.MemoryStore
	owner     models.User
	booker    models.User
	item      models.Item
	offMarket models.Item
}

func newFixture(policy config.DatePolicy) *fixture {
	mem := store.NewMemoryStore()
	f := &fixture{mem: mem}
	f.owner = mem.AddUser(models.User{Name: "owner", Email: "owner@mail.com"})
	f.booker = mem.AddUser(models.User{Name: "booker", Email: "booker@mail.com"})
	f.item = mem.AddItem(models.Item{Name: "drill", Available: true, OwnerID: f.owner.ID})
	f.offMarket = mem.AddItem(models.Item{Name: "ladder", Available: false, OwnerID: f.owner.ID})
	f.gate = &BookingValidation{
		Bookings: mem,
		Items:    mem,
		Users:    mem,
		Policy:   policy,
		Now:      func() time.Time { return now },
	}
	return f
}

func isNotFound(t *testing.T, err error, msg string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrNotFound), err.Error())
	assert.Equal(t, msg, err.Error())
}

func isInvalid(t *testing.T, err error, msg string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrValidation), err.Error())
	assert.Equal(t, msg, err.Error())
}

func TestValidateNewBookingOrder(t *testing.T) {
	f := newFixture(config.DATE_POLICY_ORDERED)
	ctx := context.Background()
	window := func(itemID uint) types.BookingDraft {
		return types.BookingDraft{Start: now.Add(time.Hour), End: now.Add(2 * time.Hour), ItemID: itemID}
	}

	_, err := f.gate.ValidateNewBooking(ctx, window(f.item.ID), 999)
	isNotFound(t, err, "User not found")

	_, err = f.gate.ValidateNewBooking(ctx, window(999), f.booker.ID)
	isNotFound(t, err, "Item not found")

	// Unavailable wins over bad dates and self-booking.
	bad := window(f.offMarket.ID)
	bad.End = bad.Start
	_, err = f.gate.ValidateNewBooking(ctx, bad, f.owner.ID)
	isInvalid(t, err, "Item isn't available for booking")

	// Bad dates win over self-booking.
	bad = window(f.item.ID)
	bad.End = bad.Start.Add(-time.Minute)
	_, err = f.gate.ValidateNewBooking(ctx, bad, f.owner.ID)
	isInvalid(t, err, "End must be after start")

	_, err = f.gate.ValidateNewBooking(ctx, window(f.item.ID), f.owner.ID)
	isNotFound(t, err, "The owner can't book his item")

	item, err := f.gate.ValidateNewBooking(ctx, window(f.item.ID), f.booker.ID)
	require.NoError(t, err)
	assert.Equal(t, f.item.ID, item.ID)
}

func TestDatesValidPolicies(t *testing.T) {
	ordered := newFixture(config.DATE_POLICY_ORDERED).gate
	future := newFixture(config.DATE_POLICY_FUTURE).gate

	past, pastEnd := now.Add(-2*time.Hour), now.Add(-time.Hour)
	assert.NoError(t, ordered.DatesValid(past, pastEnd))
	isInvalid(t, future.DatesValid(past, pastEnd), "Invalid end date")
	isInvalid(t, future.DatesValid(past, now.Add(time.Hour)), "Invalid start date")
	isInvalid(t, future.DatesValid(now, now.Add(time.Hour)), "Invalid start date")
	assert.NoError(t, future.DatesValid(now.Add(time.Hour), now.Add(2*time.Hour)))

	for _, gate := range []*BookingValidation{ordered, future} {
		isInvalid(t, gate.DatesValid(now.Add(time.Hour), now.Add(time.Hour)), "End must be after start")
		isInvalid(t, gate.DatesValid(now.Add(2*time.Hour), now.Add(time.Hour)), "End must be after start")
	}
}

func TestValidateDecisionOrder(t *testing.T) {
	f := newFixture(config.DATE_POLICY_ORDERED)
	ctx := context.Background()
	stranger := f.mem.AddUser(models.User{Name: "stranger", Email: "stranger@mail.com"})

	booking := models.Booking{
		Start: now.Add(time.Hour), End: now.Add(2 * time.Hour),
		ItemID: f.item.ID, BookerID: f.booker.ID, Status: types.BOOKING_WAITING,
	}
	require.NoError(t, f.mem.CreateBooking(ctx, &booking))

	_, err := f.gate.ValidateDecision(ctx, 999, f.owner.ID)
	isNotFound(t, err, "Booking not found")

	_, err = f.gate.ValidateDecision(ctx, booking.ID, f.booker.ID)
	isNotFound(t, err, "Booker cannot update the booking data")

	_, err = f.gate.ValidateDecision(ctx, booking.ID, stranger.ID)
	isInvalid(t, err, "User isn't owner")

	got, err := f.gate.ValidateDecision(ctx, booking.ID, f.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)

	_, err = f.mem.UpdateBookingStatus(ctx, booking.ID, types.BOOKING_WAITING, types.BOOKING_REJECTED)
	require.NoError(t, err)
	_, err = f.gate.ValidateDecision(ctx, booking.ID, f.owner.ID)
	isInvalid(t, err, "The booking has already been rejected")

	// A booker is turned away before the decided status is even looked at.
	_, err = f.gate.ValidateDecision(ctx, booking.ID, f.booker.ID)
	isNotFound(t, err, "Booker cannot update the booking data")
}

func TestIsOwnerOrBooker(t *testing.T) {
	f := newFixture(config.DATE_POLICY_ORDERED)
	ctx := context.Background()
	booking := &models.Booking{ItemID: f.item.ID, BookerID: f.booker.ID}

	assert.NoError(t, f.gate.IsOwnerOrBooker(ctx, booking, f.owner.ID))
	assert.NoError(t, f.gate.IsOwnerOrBooker(ctx, booking, f.booker.ID))
	isNotFound(t, f.gate.IsOwnerOrBooker(ctx, booking, 999), "User isn't owner or booker")
}

func TestParseState(t *testing.T) {
	gate := newFixture(config.DATE_POLICY_ORDERED).gate

	state, err := gate.ParseState("current")
	require.NoError(t, err)
	assert.Equal(t, types.STATE_CURRENT, state)

	_, err = gate.ParseState("UNSUPPORTED_STATUS")
	isInvalid(t, err, "Unknown state: UNSUPPORTED_STATUS")
}

func TestPageParamsValid(t *testing.T) {
	gate := newFixture(config.DATE_POLICY_ORDERED).gate
	ptr := func(i int) *int { return &i }

	page, err := gate.PageParamsValid(nil, nil)
	assert.NoError(t, err)
	assert.Nil(t, page)

	page, err = gate.PageParamsValid(ptr(1), ptr(10))
	require.NoError(t, err)
	assert.Equal(t, &types.Page{From: 1, Size: 10}, page)

	page, err = gate.PageParamsValid(ptr(20), nil)
	require.NoError(t, err)
	assert.Equal(t, types.DEFAULT_PAGE_SIZE, page.Size)

	_, err = gate.PageParamsValid(ptr(-1), ptr(10))
	assert.ErrorIs(t, err, types.ErrValidation)
	_, err = gate.PageParamsValid(ptr(0), ptr(0))
	assert.ErrorIs(t, err, types.ErrValidation)
}

func TestOwnerHasItems(t *testing.T) {
	gate := newFixture(config.DATE_POLICY_ORDERED).gate
	isInvalid(t, gate.OwnerHasItems(nil), "The owner doesn't have a single item")
	assert.NoError(t, gate.OwnerHasItems([]uint{1}))
}
