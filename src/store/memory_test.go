package store

import (
	"context"
	"shareit/src/models"
	"shareit/src/types"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func seed(t *testing.T) (*MemoryStore, models.Item) {
	t.Helper()
	s := NewMemoryStore()
	owner := s.AddUser(models.User{Name: "owner", Email: "owner@mail.com"})
	s.AddUser(models.User{Name: "booker", Email: "booker@mail.com"})
	item := s.AddItem(models.Item{Name: "drill", Available: true, OwnerID: owner.ID})
	return s, item
}

func book(t *testing.T, s *MemoryStore, itemID, bookerID uint, start, end time.Duration, status types.BookingStatus) models.Booking {
	t.Helper()
	b := models.Booking{
		Start:    now.Add(start),
		End:      now.Add(end),
		ItemID:   itemID,
		BookerID: bookerID,
		Status:   status,
	}
	require.NoError(t, s.CreateBooking(context.Background(), &b))
	return b
}

func TestMemoryStoreCreateDefaultsToWaiting(t *testing.T) {
	s, item := seed(t)
	b := book(t, s, item.ID, 2, time.Hour, 2*time.Hour, "")

	got, err := s.GetBooking(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, types.BOOKING_WAITING, got.Status)

	_, err = s.GetBooking(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreUpdateStatusIsCompareAndSwap(t *testing.T) {
	s, item := seed(t)
	b := book(t, s, item.ID, 2, time.Hour, 2*time.Hour, types.BOOKING_WAITING)

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(approved bool) {
			defer wg.Done()
			ok, err := s.UpdateBookingStatus(context.Background(), b.ID, types.BOOKING_WAITING, types.DecisionStatus(approved))
			assert.NoError(t, err)
			if ok {
				atomic.AddInt32(&wins, 1)
			}
		}(i%2 == 0)
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins)
	got, _ := s.GetBooking(context.Background(), b.ID)
	assert.True(t, got.Status.IsTerminal())
}

func TestMemoryStoreListOrderingAndPaging(t *testing.T) {
	s, item := seed(t)
	early := book(t, s, item.ID, 2, -3*time.Hour, -2*time.Hour, types.BOOKING_APPROVED)
	mid := book(t, s, item.ID, 2, -time.Hour, time.Hour, types.BOOKING_APPROVED)
	late := book(t, s, item.ID, 2, time.Hour, 2*time.Hour, types.BOOKING_WAITING)

	all, err := s.ListBookingsByBooker(context.Background(), 2, types.STATE_ALL, now, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uint{late.ID, mid.ID, early.ID}, []uint{all[0].ID, all[1].ID, all[2].ID})

	page, _ := s.ListBookingsByBooker(context.Background(), 2, types.STATE_ALL, now, &types.Page{From: 1, Size: 10})
	require.Len(t, page, 2)
	assert.Equal(t, mid.ID, page[0].ID)

	empty, _ := s.ListBookingsByBooker(context.Background(), 2, types.STATE_ALL, now, &types.Page{From: 5, Size: 10})
	assert.Empty(t, empty)

	current, _ := s.ListBookingsByItems(context.Background(), []uint{item.ID}, types.STATE_CURRENT, now, nil)
	require.Len(t, current, 1)
	assert.Equal(t, mid.ID, current[0].ID)

	other, _ := s.ListBookingsByItems(context.Background(), []uint{item.ID + 100}, types.STATE_ALL, now, nil)
	assert.Empty(t, other)
}

func TestMemoryStoreLastAndNextSkipRejected(t *testing.T) {
	s, item := seed(t)
	last := book(t, s, item.ID, 2, -5*time.Hour, -4*time.Hour, types.BOOKING_APPROVED)
	book(t, s, item.ID, 2, -3*time.Hour, -2*time.Hour, types.BOOKING_REJECTED)
	book(t, s, item.ID, 2, 3*time.Hour, 4*time.Hour, types.BOOKING_WAITING)
	next := book(t, s, item.ID, 2, time.Hour, 2*time.Hour, types.BOOKING_APPROVED)

	got, err := s.LastBookingForItem(context.Background(), item.ID, now)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, last.ID, got.ID)

	got, err = s.NextBookingForItem(context.Background(), item.ID, now)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, next.ID, got.ID)

	got, err = s.NextBookingForItem(context.Background(), item.ID+100, now)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStoreItemsByOwner(t *testing.T) {
	s, item := seed(t)
	second := s.AddItem(models.Item{Name: "saw", OwnerID: item.OwnerID})

	ids, err := s.ListItemIDsByOwner(context.Background(), item.OwnerID)
	require.NoError(t, err)
	assert.Equal(t, []uint{item.ID, second.ID}, ids)

	items, _ := s.ListItemsByOwner(context.Background(), item.OwnerID, &types.Page{From: 1, Size: 1})
	require.Len(t, items, 1)
	assert.Equal(t, "saw", items[0].Name)

	ids, _ = s.ListItemIDsByOwner(context.Background(), 2)
	assert.Empty(t, ids)
}
