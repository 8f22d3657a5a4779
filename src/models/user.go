package models

import "shareit/src/types"

type User struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `gorm:"uniqueIndex" json:"email,omitempty"`

	Items    []Item    `gorm:"foreignKey:owner_id" json:"items,omitempty"`
	Bookings []Booking `gorm:"foreignKey:booker_id" json:"bookings,omitempty"`

	types.Timestamps
}
