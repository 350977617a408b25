package services

import (
	"errors"
	"time"

	"lodging-backend/models"
)

// fakeRepo is an in-memory BookingRepository for engine tests.
type fakeRepo struct {
	roomTypes []models.RoomType
	bookings  []models.Booking
	addOns    []models.AddOn

	readErr error
	saveErr error

	savedBookings    []models.Booking
	savedAllocations [][]models.RoomAllocation
	savedAddOns      [][]models.BookingAddOn
	nextID           uint
}

func (f *fakeRepo) FindActiveBookingsForUnit(roomTypeID uint, unitLabel string, excludeBookingID uint) ([]models.Booking, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	var out []models.Booking
	for _, b := range f.bookings {
		if !b.IsActive() || b.ID == excludeBookingID {
			continue
		}
		if b.HoldsUnit(roomTypeID, unitLabel) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindAllRoomTypes() ([]models.RoomType, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.roomTypes, nil
}

func (f *fakeRepo) FindRoomType(id uint) (models.RoomType, error) {
	if f.readErr != nil {
		return models.RoomType{}, f.readErr
	}
	for _, rt := range f.roomTypes {
		if rt.ID == id {
			return rt, nil
		}
	}
	return models.RoomType{}, ErrRoomTypeNotFound
}

func (f *fakeRepo) FindBooking(id uint) (models.Booking, error) {
	if f.readErr != nil {
		return models.Booking{}, f.readErr
	}
	for _, b := range f.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Booking{}, ErrBookingNotFound
}

func (f *fakeRepo) FindAllBookings() ([]models.Booking, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.bookings, nil
}

func (f *fakeRepo) FindActiveAddOns(roomTypeID *uint) ([]models.AddOn, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	var out []models.AddOn
	for _, a := range f.addOns {
		if !a.Active {
			continue
		}
		if roomTypeID != nil && a.RoomTypeID != nil && *a.RoomTypeID != *roomTypeID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeRepo) SaveBooking(b *models.Booking, allocations []models.RoomAllocation, addOns []models.BookingAddOn) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if b.ID == 0 {
		f.nextID++
		b.ID = f.nextID + 1000
	}
	for i := range allocations {
		allocations[i].BookingID = b.ID
	}
	b.Allocations = allocations
	b.AddOns = addOns
	f.savedBookings = append(f.savedBookings, *b)
	f.savedAllocations = append(f.savedAllocations, allocations)
	f.savedAddOns = append(f.savedAddOns, addOns)

	for i := range f.bookings {
		if f.bookings[i].ID == b.ID {
			f.bookings[i] = *b
			return nil
		}
	}
	f.bookings = append(f.bookings, *b)
	return nil
}

func (f *fakeRepo) UpdateBookingStatus(id uint, status string) error {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings[i].Status = status
			return nil
		}
	}
	return ErrBookingNotFound
}

func (f *fakeRepo) DeleteBooking(id uint) error {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings = append(f.bookings[:i], f.bookings[i+1:]...)
			return nil
		}
	}
	return ErrBookingNotFound
}

var _ BookingRepository = (*fakeRepo)(nil)

var errStoreDown = errors.New("store down")

// ---------------------------
// Test data builders
// ---------------------------

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(year int, month time.Month, d int) *time.Time {
	t := day(year, month, d)
	return &t
}

func testRoomType(id uint, name string, price int64, priority int, labels ...string) models.RoomType {
	rt := models.RoomType{ID: id, Name: name, NormalPrice: price, Priority: priority}
	if err := rt.SetUnitLabels(labels); err != nil {
		panic(err)
	}
	return rt
}

func testBooking(id uint, guest, status string, roomTypeID uint, unit string, checkIn, checkOut time.Time) models.Booking {
	ci, co := checkIn, checkOut
	return models.Booking{
		ID:            id,
		ReferenceCode: "BK-TEST" + guest,
		GuestName:     guest,
		Status:        status,
		CheckIn:       &ci,
		CheckOut:      &co,
		Allocations: []models.RoomAllocation{
			{BookingID: id, RoomTypeID: roomTypeID, RoomNumber: unit, NightlyPrice: 100000},
		},
	}
}
