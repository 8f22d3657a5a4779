package store

import (
	"context"
	"errors"
	"shareit/src/models"
	"shareit/src/models/scopes"
	"shareit/src/types"
	"time"

	"gorm.io/gorm"
)

// GormStore implements every store interface against a single gorm connection.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GormStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	return s.db.WithContext(ctx).Create(booking).Error
}

func (s *GormStore) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.WithContext(ctx).
		Scopes(scopes.WithID(id)).
		Take(&booking).
		Error; err != nil {
		return nil, notFound(err)
	}
	return &booking, nil
}

func (s *GormStore) UpdateBookingStatus(ctx context.Context, id uint, from, to types.BookingStatus) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *GormStore) ListBookingsByBooker(ctx context.Context, bookerID uint, state types.BookingState, now time.Time, page *types.Page) ([]models.Booking, error) {
	return s.listBookings(ctx, scopes.WithBooker(bookerID), state, now, page)
}

func (s *GormStore) ListBookingsByItems(ctx context.Context, itemIDs []uint, state types.BookingState, now time.Time, page *types.Page) ([]models.Booking, error) {
	if len(itemIDs) == 0 {
		return []models.Booking{}, nil
	}
	return s.listBookings(ctx, scopes.WithItems(itemIDs...), state, now, page)
}

func (s *GormStore) listBookings(ctx context.Context, principal func(*gorm.DB) *gorm.DB, state types.BookingState, now time.Time, page *types.Page) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Scopes(
			principal,
			scopes.InState(state, now),
			scopes.LatestFirst,
			scopes.Paginate(page),
		).
		Find(&bookings).
		Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *GormStore) LastBookingForItem(ctx context.Context, itemID uint, now time.Time) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).
		Scopes(scopes.WithItems(itemID), scopes.NotRejected).
		Where("end_date < ?", now).
		Order("end_date desc").
		Take(&booking).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *GormStore) NextBookingForItem(ctx context.Context, itemID uint, now time.Time) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).
		Scopes(scopes.WithItems(itemID), scopes.NotRejected).
		Where("start_date > ?", now).
		Order("start_date asc").
		Take(&booking).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *GormStore) GetItem(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	if err := s.db.WithContext(ctx).
		Scopes(scopes.WithID(id)).
		Take(&item).
		Error; err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (s *GormStore) ListItemIDsByOwner(ctx context.Context, ownerID uint) ([]uint, error) {
	var ids []uint
	if err := s.db.WithContext(ctx).
		Model(&models.Item{}).
		Scopes(scopes.WithOwner(ownerID)).
		Order("id asc").
		Pluck("id", &ids).
		Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *GormStore) ListItemsByOwner(ctx context.Context, ownerID uint, page *types.Page) ([]models.Item, error) {
	var items []models.Item
	if err := s.db.WithContext(ctx).
		Scopes(scopes.WithOwner(ownerID), scopes.Paginate(page)).
		Order("id asc").
		Find(&items).
		Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *GormStore) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Scopes(scopes.WithID(id)).
		Take(&user).
		Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *GormStore) ListCommentsByItem(ctx context.Context, itemID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := s.db.WithContext(ctx).
		Where(&models.Comment{ItemID: itemID}).
		Order("created_at asc").
		Find(&comments).
		Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// Ping reports whether the underlying database is reachable.
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
