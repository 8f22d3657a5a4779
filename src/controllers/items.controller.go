package controllers

import (
	"context"
	"shareit/src/store"
	"shareit/src/types"
	"shareit/src/validation"
	"shareit/src/views"
)

// ItemController serves the read-only item detail views.
type ItemController struct {
	Items store.ItemReader
	Gate  *validation.BookingValidation
	Views *views.Assembler
}

func (c *ItemController) FindByID(ctx context.Context, itemID, callerID uint) (*types.APIResponseItemWithBookings, error) {
	if _, err := c.Gate.UserExists(ctx, callerID); err != nil {
		return nil, err
	}
	item, err := c.Gate.ItemExists(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return c.Views.ItemWithBookings(ctx, item, callerID)
}

func (c *ItemController) FindAllByOwner(ctx context.Context, ownerID uint, from, size *int) ([]*types.APIResponseItemWithBookings, error) {
	if _, err := c.Gate.UserExists(ctx, ownerID); err != nil {
		return nil, err
	}
	page, err := c.Gate.PageParamsValid(from, size)
	if err != nil {
		return nil, err
	}
	items, err := c.Items.ListItemsByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, err
	}
	return c.Views.ItemsWithBookings(ctx, items, ownerID)
}
