package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Booking is a reservation. Guest identity is denormalized onto the booking
// (no separate customer table is involved in the engine). Modern bookings
// own one or more RoomAllocation rows; legacy single-room bookings instead
// carry RoomTypeID/RoomNumber directly and are normalized at load time via
// NormalizedAllocations.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"referenceCode"`

	GuestName  string `gorm:"column:guest_name;size:191" json:"guestName"`
	GuestEmail string `gorm:"column:guest_email;size:191" json:"guestEmail"`
	GuestPhone string `gorm:"column:guest_phone;size:64" json:"guestPhone"`
	GuestCount int    `gorm:"column:guest_count;default:1" json:"guestCount"`

	CheckIn      *time.Time `gorm:"column:check_in" json:"checkIn"`
	CheckOut     *time.Time `gorm:"column:check_out" json:"checkOut"`
	CheckInTime  string     `gorm:"column:check_in_time;size:8" json:"checkInTime,omitempty"`
	CheckOutTime string     `gorm:"column:check_out_time;size:8" json:"checkOutTime,omitempty"`
	Nights       int        `gorm:"column:nights" json:"nights"`

	Status        string `gorm:"column:status;size:32;index" json:"status"`
	PaymentStatus string `gorm:"column:payment_status;size:32" json:"paymentStatus"`
	PaymentAmount int64  `gorm:"column:payment_amount" json:"paymentAmount"`
	TotalPrice    int64  `gorm:"column:total_price" json:"totalPrice"`

	Source     string `gorm:"column:source;size:32" json:"source"`
	SourceName string `gorm:"column:source_name;size:128" json:"sourceName,omitempty"`

	SpecialRequests string `gorm:"column:special_requests;type:text" json:"specialRequests,omitempty"`

	// Draft list of accompanying guests as entered at booking time.
	AccompanyingGuests datatypes.JSON `gorm:"column:accompanying_guests" json:"accompanyingGuests,omitempty"`

	// Legacy single-room shape.
	RoomTypeID *uint  `gorm:"column:room_type_id;index" json:"roomTypeId,omitempty"`
	RoomNumber string `gorm:"column:room_number;size:50" json:"roomNumber,omitempty"`

	Allocations []RoomAllocation `gorm:"foreignKey:BookingID" json:"allocations"`
	AddOns      []BookingAddOn   `gorm:"foreignKey:BookingID" json:"addOns"`
}

// IsActive reports whether the booking participates in conflict and
// availability computations.
func (b *Booking) IsActive() bool {
	return !IsInactiveStatus(b.Status)
}

// NormalizedAllocations returns the booking's room allocations in the
// multi-room representation. A legacy single-room booking (no allocation
// rows, denormalized room fields set) becomes a one-element list so the
// conflict and pricing logic only ever sees one shape.
func (b *Booking) NormalizedAllocations() []RoomAllocation {
	if len(b.Allocations) > 0 {
		return b.Allocations
	}
	if b.RoomTypeID != nil && b.RoomNumber != "" {
		nightly := int64(0)
		if b.Nights > 0 {
			nightly = b.TotalPrice / int64(b.Nights)
		}
		return []RoomAllocation{{
			BookingID:    b.ID,
			RoomTypeID:   *b.RoomTypeID,
			RoomNumber:   b.RoomNumber,
			NightlyPrice: nightly,
		}}
	}
	return nil
}

// HoldsUnit reports whether the booking occupies the given unit of the
// given room type, in either representation.
func (b *Booking) HoldsUnit(roomTypeID uint, unitLabel string) bool {
	for _, alloc := range b.NormalizedAllocations() {
		if alloc.RoomTypeID == roomTypeID && alloc.RoomNumber == unitLabel {
			return true
		}
	}
	return false
}
