// Package store holds the persistence interfaces consulted by the booking core
// and their gorm and in-memory implementations.
package store

import (
	"context"
	"errors"
	"shareit/src/models"
	"shareit/src/types"
	"time"
)

var ErrNotFound = errors.New("record not found")

type BookingStore interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	// UpdateBookingStatus moves a booking from one status to another in a single
	// conditional write. It returns false when the booking was not in status from.
	UpdateBookingStatus(ctx context.Context, id uint, from, to types.BookingStatus) (bool, error)
	// ListBookingsByBooker and ListBookingsByItems return the bookings in state at
	// now, ordered by start descending and windowed by page.
	ListBookingsByBooker(ctx context.Context, bookerID uint, state types.BookingState, now time.Time, page *types.Page) ([]models.Booking, error)
	ListBookingsByItems(ctx context.Context, itemIDs []uint, state types.BookingState, now time.Time, page *types.Page) ([]models.Booking, error)
	// LastBookingForItem returns the non-rejected booking of the item with the
	// latest end strictly before now, or nil.
	LastBookingForItem(ctx context.Context, itemID uint, now time.Time) (*models.Booking, error)
	// NextBookingForItem returns the non-rejected booking of the item with the
	// earliest start strictly after now, or nil.
	NextBookingForItem(ctx context.Context, itemID uint, now time.Time) (*models.Booking, error)
}

type ItemReader interface {
	GetItem(ctx context.Context, id uint) (*models.Item, error)
	ListItemIDsByOwner(ctx context.Context, ownerID uint) ([]uint, error)
	ListItemsByOwner(ctx context.Context, ownerID uint, page *types.Page) ([]models.Item, error)
}

type UserReader interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
}

type CommentReader interface {
	ListCommentsByItem(ctx context.Context, itemID uint) ([]models.Comment, error)
}

// Store is the full set of reads and writes the service needs from one backend.
type Store interface {
	BookingStore
	ItemReader
	UserReader
	CommentReader
	Ping(ctx context.Context) error
}

var (
	_ Store = (*GormStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
