package models

import (
	"time"

	"gorm.io/gorm"
)

// AddOn is an optional paid extra attachable to a stay. RoomTypeID scopes
// the add-on to a single room type; nil means it applies to all types.
type AddOn struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:128" json:"name"`
	Price       int64  `gorm:"column:price" json:"price"`
	PricingMode string `gorm:"column:pricing_mode;size:32" json:"pricingMode"`
	MaxQuantity int    `gorm:"column:max_quantity;default:1" json:"maxQuantity"`
	RoomTypeID  *uint  `gorm:"column:room_type_id;index" json:"roomTypeId,omitempty"`
	Active      bool   `gorm:"column:active;default:true" json:"active"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BookingAddOn snapshots an add-on selection on a booking. Unit and total
// prices are recorded at selection time; later AddOn price edits do not
// retroactively change the booking.
type BookingAddOn struct {
	gorm.Model
	BookingID uint `gorm:"index;column:booking_id" json:"bookingId"`
	AddOnID   uint `gorm:"index;column:add_on_id" json:"addOnId"`

	Name        string `gorm:"size:128" json:"name"`
	PricingMode string `gorm:"column:pricing_mode;size:32" json:"pricingMode"`
	Quantity    int    `gorm:"column:quantity" json:"quantity"`
	UnitPrice   int64  `gorm:"column:unit_price" json:"unitPrice"`
	TotalPrice  int64  `gorm:"column:total_price" json:"totalPrice"`
}
