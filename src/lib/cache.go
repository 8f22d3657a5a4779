package lib

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"shareit/src/types"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedBooking is a booking projection stored alongside the ids needed to
// authorize a read without going back to the database.
type CachedBooking struct {
	OwnerID  uint                      `json:"ownerId"`
	BookerID uint                      `json:"bookerId"`
	View     *types.APIResponseBooking `json:"view"`
}

// BookingCache is a read-through cache of booking projections. A nil
// *BookingCache or one without a client is a no-op.
type BookingCache struct {
	rd  *redis.Client
	ttl time.Duration
}

func NewBookingCache(rd *redis.Client, ttl time.Duration) *BookingCache {
	return &BookingCache{rd: rd, ttl: ttl}
}

func bookingKey(id uint) string {
	return fmt.Sprintf("booking:%d:view", id)
}

func (c *BookingCache) enabled() bool {
	return c != nil && c.rd != nil
}

func (c *BookingCache) Get(ctx context.Context, id uint) (*CachedBooking, bool) {
	if !c.enabled() {
		return nil, false
	}
	raw, err := c.rd.Get(ctx, bookingKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		log.Printf("[cache] Error reading %s: %s\n", bookingKey(id), err.Error())
		return nil, false
	}
	var cached CachedBooking
	if err := json.Unmarshal(raw, &cached); err != nil || cached.View == nil {
		log.Printf("[cache] Dropping malformed entry %s\n", bookingKey(id))
		c.Invalidate(ctx, id)
		return nil, false
	}
	return &cached, true
}

func (c *BookingCache) Set(ctx context.Context, ownerID, bookerID uint, view *types.APIResponseBooking) {
	if !c.enabled() || view == nil {
		return
	}
	raw, err := json.Marshal(CachedBooking{OwnerID: ownerID, BookerID: bookerID, View: view})
	if err != nil {
		log.Printf("[cache] Error encoding booking %d: %s\n", view.ID, err.Error())
		return
	}
	if err := c.rd.Set(ctx, bookingKey(view.ID), raw, c.ttl).Err(); err != nil {
		log.Printf("[cache] Error writing %s: %s\n", bookingKey(view.ID), err.Error())
	}
}

func (c *BookingCache) Invalidate(ctx context.Context, id uint) {
	if !c.enabled() {
		return
	}
	if err := c.rd.Del(ctx, bookingKey(id)).Err(); err != nil {
		log.Printf("[cache] Error deleting %s: %s\n", bookingKey(id), err.Error())
	}
}
