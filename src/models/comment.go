package models

import "shareit/src/types"

type Comment struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	Text     string `json:"text"`
	ItemID   uint   `gorm:"index;not null" json:"item_id,omitempty"`
	AuthorID uint   `gorm:"index;not null" json:"author_id,omitempty"`

	types.Timestamps
}
