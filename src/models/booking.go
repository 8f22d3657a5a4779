package models

import (
	"shareit/src/types"
	"time"
)

type Booking struct {
	ID       uint                `gorm:"primarykey" json:"id"`
	Start    time.Time           `gorm:"column:start_date;index;not null" json:"start"`
	End      time.Time           `gorm:"column:end_date;index;not null" json:"end"`
	ItemID   uint                `gorm:"index;not null" json:"item_id,omitempty"`
	BookerID uint                `gorm:"index;not null" json:"booker_id,omitempty"`
	Status   types.BookingStatus `gorm:"type:varchar(16);index;default:'WAITING'" json:"status,omitempty"`

	types.Timestamps
}
