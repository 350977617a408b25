package models

// Booking lifecycle statuses. Cancelled and rejected bookings release
// their rooms; every other status holds them.
const (
	StatusPending     = "pending"
	StatusConfirmed   = "confirmed"
	StatusCheckedIn   = "checked_in"
	StatusCheckedOut  = "checked_out"
	StatusCancelled   = "cancelled"
	StatusRejected    = "rejected"
	StatusMaintenance = "maintenance"
)

// Payment statuses.
const (
	PaymentPaid        = "paid"
	PaymentUnpaid      = "unpaid"
	PaymentPayAtHotel  = "pay_at_hotel"
	PaymentDownPayment = "down_payment"
)

// Booking sources. OTA and "other" require a free-text qualifier.
const (
	SourceDirect = "direct"
	SourceOTA    = "ota"
	SourceWalkIn = "walk_in"
	SourceOther  = "other"
)

// Add-on pricing modes.
const (
	AddOnPerNight          = "per_night"
	AddOnPerPersonPerNight = "per_person_per_night"
	AddOnPerPerson         = "per_person"
	AddOnOnce              = "once"
)

// Custom price override modes.
const (
	OverridePerNight = "per_night"
	OverrideTotal    = "total"
)

func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut,
		StatusCancelled, StatusRejected, StatusMaintenance:
		return true
	}
	return false
}

// IsInactiveStatus reports whether a booking in this status no longer
// holds its rooms.
func IsInactiveStatus(status string) bool {
	return status == StatusCancelled || status == StatusRejected
}

func IsValidAddOnMode(mode string) bool {
	switch mode {
	case AddOnPerNight, AddOnPerPersonPerNight, AddOnPerPerson, AddOnOnce:
		return true
	}
	return false
}
