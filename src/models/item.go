package models

import "shareit/src/types"

type Item struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Available   bool   `json:"available"`
	OwnerID     uint   `gorm:"index;not null" json:"owner_id,omitempty"`
	RequestID   *uint  `json:"request_id,omitempty"`

	Bookings []Booking `gorm:"foreignKey:item_id" json:"bookings,omitempty"`
	Comments []Comment `gorm:"foreignKey:item_id" json:"comments,omitempty"`

	types.Timestamps
}
