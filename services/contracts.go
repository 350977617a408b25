package services

import "lodging-backend/models"

// BookingRepository is the engine's view of the external data store. All
// reads are plain filtered queries and all conflict checks run as advisory
// pre-checks over them: there is no row locking or reservation token, so
// two concurrent editors can both pass the pre-check and both write. That
// is the store's contract, made explicit here rather than hidden.
type BookingRepository interface {
	// FindActiveBookingsForUnit returns every booking holding the given
	// unit whose status is neither cancelled nor rejected, skipping
	// excludeBookingID (0 = exclude nothing). Both the allocation-based
	// and the legacy single-room representation must be matched.
	FindActiveBookingsForUnit(roomTypeID uint, unitLabel string, excludeBookingID uint) ([]models.Booking, error)

	FindAllRoomTypes() ([]models.RoomType, error)
	FindRoomType(id uint) (models.RoomType, error)

	FindBooking(id uint) (models.Booking, error)
	FindAllBookings() ([]models.Booking, error)

	// FindActiveAddOns returns active add-ons applicable to the given room
	// type: globally scoped ones plus those scoped to roomTypeID. A nil
	// roomTypeID returns all active add-ons.
	FindActiveAddOns(roomTypeID *uint) ([]models.AddOn, error)

	// SaveBooking inserts or updates the booking and wholesale-replaces
	// its allocations and add-on snapshots in a single logical operation.
	SaveBooking(b *models.Booking, allocations []models.RoomAllocation, addOns []models.BookingAddOn) error

	// UpdateBookingStatus writes only the lifecycle status. Setting
	// cancelled or rejected is the logical-delete path.
	UpdateBookingStatus(id uint, status string) error

	// DeleteBooking hard-deletes the booking and its owned rows.
	DeleteBooking(id uint) error
}
