package scopes

import (
	"shareit/src/types"
	"time"

	"gorm.io/gorm"
)

func WithID(id uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	}
}

func WithIDs(ids ...uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id IN (?)", ids)
	}
}

func WithBooker(bookerID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("booker_id = ?", bookerID)
	}
}

func WithItems(itemIDs ...uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("item_id IN (?)", itemIDs)
	}
}

func WithOwner(ownerID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("owner_id = ?", ownerID)
	}
}

// InState narrows bookings to the bucket selected by state, evaluated at now.
// Keep in sync with types.BookingState.Matches.
func InState(state types.BookingState, now time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch state {
		case types.STATE_CURRENT:
			return db.Where("start_date <= ? AND end_date > ?", now, now)
		case types.STATE_PAST:
			return db.Where("end_date < ?", now)
		case types.STATE_FUTURE:
			return db.Where("start_date > ?", now)
		case types.STATE_WAITING:
			return db.Where("status = ?", types.BOOKING_WAITING)
		case types.STATE_REJECTED:
			return db.Where("status = ?", types.BOOKING_REJECTED)
		}
		return db
	}
}

// NotRejected keeps bookings that can still occupy an item.
func NotRejected(db *gorm.DB) *gorm.DB {
	return db.Where("status <> ?", types.BOOKING_REJECTED)
}

func LatestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("start_date desc").Order("id desc")
}

// Paginate applies an offset/limit window; a nil page leaves the query unbounded.
func Paginate(page *types.Page) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page == nil {
			return db
		}
		return db.Offset(page.From).Limit(page.Size)
	}
}
