package store

import (
	"context"
	"shareit/src/models"
	"shareit/src/types"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps every record in process memory. It backs local runs
// without Postgres and the handler tests.
type MemoryStore struct {
	mu       sync.RWMutex
	bookings map[uint]models.Booking
	items    map[uint]models.Item
	users    map[uint]models.User
	comments map[uint]models.Comment
	nextID   uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		bookings: map[uint]models.Booking{},
		items:    map[uint]models.Item{},
		users:    map[uint]models.User{},
		comments: map[uint]models.Comment{},
	}
}

func (s *MemoryStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *MemoryStore) AddUser(user models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == 0 {
		user.ID = s.id()
	} else if user.ID > s.nextID {
		s.nextID = user.ID
	}
	s.users[user.ID] = user
	return user
}

func (s *MemoryStore) AddItem(item models.Item) models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.ID == 0 {
		item.ID = s.id()
	} else if item.ID > s.nextID {
		s.nextID = item.ID
	}
	s.items[item.ID] = item
	return item
}

func (s *MemoryStore) AddComment(comment models.Comment) models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if comment.ID == 0 {
		comment.ID = s.id()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	s.comments[comment.ID] = comment
	return comment
}

func (s *MemoryStore) CreateBooking(_ context.Context, booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if booking.ID == 0 {
		booking.ID = s.id()
	}
	if booking.Status == "" {
		booking.Status = types.BOOKING_WAITING
	}
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	s.bookings[booking.ID] = *booking
	return nil
}

func (s *MemoryStore) GetBooking(_ context.Context, id uint) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	booking, ok := s.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &booking, nil
}

func (s *MemoryStore) UpdateBookingStatus(_ context.Context, id uint, from, to types.BookingStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	booking, ok := s.bookings[id]
	if !ok || booking.Status != from {
		return false, nil
	}
	booking.Status = to
	booking.UpdatedAt = time.Now()
	s.bookings[id] = booking
	return true, nil
}

func (s *MemoryStore) ListBookingsByBooker(_ context.Context, bookerID uint, state types.BookingState, now time.Time, page *types.Page) ([]models.Booking, error) {
	return s.listBookings(func(b models.Booking) bool { return b.BookerID == bookerID }, state, now, page), nil
}

func (s *MemoryStore) ListBookingsByItems(_ context.Context, itemIDs []uint, state types.BookingState, now time.Time, page *types.Page) ([]models.Booking, error) {
	owned := make(map[uint]bool, len(itemIDs))
	for _, id := range itemIDs {
		owned[id] = true
	}
	return s.listBookings(func(b models.Booking) bool { return owned[b.ItemID] }, state, now, page), nil
}

func (s *MemoryStore) listBookings(principal func(models.Booking) bool, state types.BookingState, now time.Time, page *types.Page) []models.Booking {
	s.mu.RLock()
	result := []models.Booking{}
	for _, b := range s.bookings {
		if principal(b) && state.Matches(b.Start, b.End, b.Status, now) {
			result = append(result, b)
		}
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Start.Equal(result[j].Start) {
			return result[i].Start.After(result[j].Start)
		}
		return result[i].ID > result[j].ID
	})
	if page == nil {
		return result
	}
	if page.From >= len(result) {
		return []models.Booking{}
	}
	end := page.From + page.Size
	if end > len(result) {
		end = len(result)
	}
	return result[page.From:end]
}

func (s *MemoryStore) LastBookingForItem(_ context.Context, itemID uint, now time.Time) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var last *models.Booking
	for _, b := range s.bookings {
		if b.ItemID != itemID || b.Status == types.BOOKING_REJECTED || !b.End.Before(now) {
			continue
		}
		if last == nil || b.End.After(last.End) {
			booking := b
			last = &booking
		}
	}
	return last, nil
}

func (s *MemoryStore) NextBookingForItem(_ context.Context, itemID uint, now time.Time) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var next *models.Booking
	for _, b := range s.bookings {
		if b.ItemID != itemID || b.Status == types.BOOKING_REJECTED || !b.Start.After(now) {
			continue
		}
		if next == nil || b.Start.Before(next.Start) {
			booking := b
			next = &booking
		}
	}
	return next, nil
}

func (s *MemoryStore) GetItem(_ context.Context, id uint) (*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (s *MemoryStore) ListItemIDsByOwner(_ context.Context, ownerID uint) ([]uint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := []uint{}
	for id, item := range s.items {
		if item.OwnerID == ownerID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *MemoryStore) ListItemsByOwner(ctx context.Context, ownerID uint, page *types.Page) ([]models.Item, error) {
	ids, _ := s.ListItemIDsByOwner(ctx, ownerID)
	if page != nil {
		if page.From >= len(ids) {
			return []models.Item{}, nil
		}
		end := page.From + page.Size
		if end > len(ids) {
			end = len(ids)
		}
		ids = ids[page.From:end]
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]models.Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, s.items[id])
	}
	return items, nil
}

func (s *MemoryStore) GetUser(_ context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *MemoryStore) ListCommentsByItem(_ context.Context, itemID uint) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	comments := []models.Comment{}
	for _, c := range s.comments {
		if c.ItemID == itemID {
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		}
		return comments[i].ID < comments[j].ID
	})
	return comments, nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}
