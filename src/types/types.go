package types

import (
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

// Start and End accept either config.TIME_PARSE_FORMAT (local time) or RFC3339.
type CreateBookingRequestBody struct {
	Start  string `json:"start" binding:"required,bookingdate"`
	End    string `json:"end" binding:"required,bookingdate"`
	ItemID uint   `json:"itemId" binding:"required"`
}

type ApproveBookingQuery struct {
	Approved *bool `form:"approved" binding:"required"`
}

type BookingListQuery struct {
	State string `form:"state"`
	From  *int   `form:"from"`
	Size  *int   `form:"size"`
}

type PageQuery struct {
	From *int `form:"from"`
	Size *int `form:"size"`
}

// BookingDraft is a parsed booking creation request.
type BookingDraft struct {
	Start  time.Time
	End    time.Time
	ItemID uint
}

// Page is an offset/limit window. A nil *Page means unpaged.
type Page struct {
	From int
	Size int
}

const (
	DEFAULT_PAGE_FROM = 0
	DEFAULT_PAGE_SIZE = 10
)

type APIResponseUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type APIResponseItem struct {
	ID          uint   `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Available   bool   `json:"available"`
	OwnerID     uint   `json:"ownerId,omitempty"`
	RequestID   *uint  `json:"requestId,omitempty"`
}

type APIResponseBooking struct {
	ID     uint          `json:"id"`
	Start  time.Time     `json:"start"`
	End    time.Time     `json:"end"`
	Status BookingStatus `json:"status"`

	Booker *APIResponseUser `json:"booker,omitempty"`
	Item   *APIResponseItem `json:"item,omitempty"`
}

type APIResponseBookingShort struct {
	ID       uint          `json:"id"`
	BookerID uint          `json:"bookerId"`
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	Status   BookingStatus `json:"status"`
}

type APIResponseComment struct {
	ID         uint      `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName,omitempty"`
	Created    time.Time `json:"created"`
}

type APIResponseItemWithBookings struct {
	APIResponseItem

	LastBooking *APIResponseBookingShort `json:"lastBooking"`
	NextBooking *APIResponseBookingShort `json:"nextBooking"`
	Comments    []*APIResponseComment    `json:"comments"`
}
