package models

import "gorm.io/gorm"

// RoomAllocation links a booking to one physical room unit and records the
// nightly price actually charged for it, which may diverge from the room
// type's normal rate when custom pricing is used. The full set is replaced
// wholesale whenever the selected units change during an edit.
type RoomAllocation struct {
	gorm.Model
	BookingID  uint   `gorm:"index;column:booking_id" json:"bookingId"`
	RoomTypeID uint   `gorm:"index;column:room_type_id" json:"roomTypeId"`
	RoomNumber string `gorm:"column:room_number;size:50" json:"roomNumber"`

	NightlyPrice int64 `gorm:"column:nightly_price" json:"nightlyPrice"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID;references:ID" json:"roomType,omitempty"`
}
