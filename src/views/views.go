// Package views projects stored records into the JSON shapes returned to clients.
package views

import (
	"context"
	"errors"
	"shareit/src/models"
	"shareit/src/store"
	"shareit/src/types"
	"time"
)

type Assembler struct {
	Items    store.ItemReader
	Users    store.UserReader
	History  store.BookingStore
	Comments store.CommentReader
	Now      func() time.Time
}

func (a *Assembler) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func User(u *models.User) *types.APIResponseUser {
	if u == nil {
		return nil
	}
	return &types.APIResponseUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

func Item(i *models.Item) *types.APIResponseItem {
	if i == nil {
		return nil
	}
	return &types.APIResponseItem{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		OwnerID:     i.OwnerID,
		RequestID:   i.RequestID,
	}
}

func BookingShort(b *models.Booking) *types.APIResponseBookingShort {
	if b == nil {
		return nil
	}
	return &types.APIResponseBookingShort{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    b.Start,
		End:      b.End,
		Status:   b.Status,
	}
}

func booking(b *models.Booking, booker *models.User, item *models.Item) *types.APIResponseBooking {
	return &types.APIResponseBooking{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: b.Status,
		Booker: User(booker),
		Item:   Item(item),
	}
}

// Booking joins a booking with its booker and item.
func (a *Assembler) Booking(ctx context.Context, b *models.Booking) (*types.APIResponseBooking, error) {
	booker, err := a.Users.GetUser(ctx, b.BookerID)
	if err != nil {
		return nil, err
	}
	item, err := a.Items.GetItem(ctx, b.ItemID)
	if err != nil {
		return nil, err
	}
	return booking(b, booker, item), nil
}

// Bookings projects a list, resolving each distinct user and item once.
func (a *Assembler) Bookings(ctx context.Context, list []models.Booking) ([]*types.APIResponseBooking, error) {
	users := map[uint]*models.User{}
	items := map[uint]*models.Item{}
	out := make([]*types.APIResponseBooking, 0, len(list))
	for i := range list {
		b := &list[i]
		booker, ok := users[b.BookerID]
		if !ok {
			u, err := a.Users.GetUser(ctx, b.BookerID)
			if err != nil {
				return nil, err
			}
			users[b.BookerID], booker = u, u
		}
		item, ok := items[b.ItemID]
		if !ok {
			it, err := a.Items.GetItem(ctx, b.ItemID)
			if err != nil {
				return nil, err
			}
			items[b.ItemID], item = it, it
		}
		out = append(out, booking(b, booker, item))
	}
	return out, nil
}

// ItemWithBookings builds the item detail view. Last and next bookings are
// only filled in for the item's owner.
func (a *Assembler) ItemWithBookings(ctx context.Context, item *models.Item, callerID uint) (*types.APIResponseItemWithBookings, error) {
	view := &types.APIResponseItemWithBookings{
		APIResponseItem: *Item(item),
		Comments:        []*types.APIResponseComment{},
	}

	if item.OwnerID == callerID {
		now := a.now()
		last, err := a.History.LastBookingForItem(ctx, item.ID, now)
		if err != nil {
			return nil, err
		}
		next, err := a.History.NextBookingForItem(ctx, item.ID, now)
		if err != nil {
			return nil, err
		}
		view.LastBooking = BookingShort(last)
		view.NextBooking = BookingShort(next)
	}

	comments, err := a.Comments.ListCommentsByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	authors := map[uint]string{}
	for _, c := range comments {
		name, ok := authors[c.AuthorID]
		if !ok {
			author, err := a.Users.GetUser(ctx, c.AuthorID)
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				return nil, err
			}
			if author != nil {
				name = author.Name
			}
			authors[c.AuthorID] = name
		}
		view.Comments = append(view.Comments, &types.APIResponseComment{
			ID:         c.ID,
			Text:       c.Text,
			AuthorName: name,
			Created:    c.CreatedAt,
		})
	}
	return view, nil
}

func (a *Assembler) ItemsWithBookings(ctx context.Context, items []models.Item, callerID uint) ([]*types.APIResponseItemWithBookings, error) {
	out := make([]*types.APIResponseItemWithBookings, 0, len(items))
	for i := range items {
		view, err := a.ItemWithBookings(ctx, &items[i], callerID)
		if err != nil {
			return nil, err
		}
		out = append(out, view)
	}
	return out, nil
}
