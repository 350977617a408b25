package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lodging-backend/models"
)

func conflictQuery(roomTypeID uint, unit string, checkIn, checkOut time.Time) ConflictQuery {
	return ConflictQuery{RoomTypeID: roomTypeID, UnitLabel: unit, CheckIn: checkIn, CheckOut: checkOut}
}

func TestCheckConflictFindsOverlap(t *testing.T) {
	repo := &fakeRepo{bookings: []models.Booking{
		testBooking(1, "Alice", models.StatusConfirmed, 1, "101", day(2026, 9, 1), day(2026, 9, 5)),
	}}
	svc := NewConflictService(repo)

	result, err := svc.CheckConflict(conflictQuery(1, "101", day(2026, 9, 3), day(2026, 9, 6)))
	require.NoError(t, err)
	assert.True(t, result.HasConflict)
	assert.Equal(t, uint(1), result.BookingID)
	assert.Contains(t, result.Reason, "Alice")
	assert.Contains(t, result.Reason, "101")
}

func TestCheckConflictNoOverlap(t *testing.T) {
	repo := &fakeRepo{bookings: []models.Booking{
		testBooking(1, "Alice", models.StatusConfirmed, 1, "101", day(2026, 9, 1), day(2026, 9, 5)),
	}}
	svc := NewConflictService(repo)

	result, err := svc.CheckConflict(conflictQuery(1, "101", day(2026, 9, 10), day(2026, 9, 12)))
	require.NoError(t, err)
	assert.False(t, result.HasConflict)
	assert.Empty(t, result.Reason)
}

func TestCheckConflictDifferentUnitDoesNotConflict(t *testing.T) {
	repo := &fakeRepo{bookings: []models.Booking{
		testBooking(1, "Alice", models.StatusConfirmed, 1, "101", day(2026, 9, 1), day(2026, 9, 5)),
	}}
	svc := NewConflictService(repo)

	result, err := svc.CheckConflict(conflictQuery(1, "102", day(2026, 9, 1), day(2026, 9, 5)))
	require.NoError(t, err)
	assert.False(t, result.HasConflict)
}

func TestCheckConflictIgnoresCancelledAndRejected(t *testing.T) {
	for _, status := range []string{models.StatusCancelled, models.StatusRejected} {
		repo := &fakeRepo{bookings: []models.Booking{
			testBooking(1, "Alice", status, 1, "101", day(2026, 9, 1), day(2026, 9, 5)),
		}}
		svc := NewConflictService(repo)

		result, err := svc.CheckConflict(conflictQuery(1, "101", day(2026, 9, 1), day(2026, 9, 5)))
		require.NoError(t, err)
		assert.False(t, result.HasConflict, "status %s must be invisible to the detector", status)
	}
}

func TestCheckConflictExcludesBookingUnderEdit(t *testing.T) {
	repo := &fakeRepo{bookings: []models.Booking{
		testBooking(7, "Alice", models.StatusConfirmed, 1, "101", day(2026, 9, 1), day(2026, 9, 5)),
	}}
	svc := NewConflictService(repo)

	q := conflictQuery(1, "101", day(2026, 9, 1), day(2026, 9, 5))
	q.ExcludeBookingID = 7
	result, err := svc.CheckConflict(q)
	require.NoError(t, err)
	assert.False(t, result.HasConflict, "a booking must never conflict against itself")

	q.ExcludeBookingID = 8
	result, err = svc.CheckConflict(q)
	require.NoError(t, err)
	assert.True(t, result.HasConflict)
}

func TestCheckConflictMatchesLegacySingleRoomBooking(t *testing.T) {
	roomTypeID := uint(1)
	legacy := models.Booking{
		ID:         3,
		GuestName:  "Bob",
		Status:     models.StatusConfirmed,
		CheckIn:    dayPtr(2026, 9, 2),
		CheckOut:   dayPtr(2026, 9, 6),
		Nights:     4,
		TotalPrice: 400000,
		RoomTypeID: &roomTypeID,
		RoomNumber: "101",
	}
	repo := &fakeRepo{bookings: []models.Booking{legacy}}
	svc := NewConflictService(repo)

	result, err := svc.CheckConflict(conflictQuery(1, "101", day(2026, 9, 4), day(2026, 9, 8)))
	require.NoError(t, err)
	assert.True(t, result.HasConflict)
	assert.Contains(t, result.Reason, "Bob")
}

func TestCheckConflictSameDayTurnover(t *testing.T) {
	existing := testBooking(1, "Alice", models.StatusConfirmed, 1, "101", day(2026, 9, 1), day(2026, 9, 4))
	repo := &fakeRepo{bookings: []models.Booking{existing}}
	svc := NewConflictService(repo)

	// Default times: checkout 12:00 before arrival 14:00.
	result, err := svc.CheckConflict(conflictQuery(1, "101", day(2026, 9, 4), day(2026, 9, 7)))
	require.NoError(t, err)
	assert.False(t, result.HasConflict)

	// Arriving before the incumbent has left.
	q := conflictQuery(1, "101", day(2026, 9, 4), day(2026, 9, 7))
	q.CheckInTime = "11:00"
	result, err = svc.CheckConflict(q)
	require.NoError(t, err)
	assert.True(t, result.HasConflict)
}

func TestCheckConflictRejectsInvalidRange(t *testing.T) {
	svc := NewConflictService(&fakeRepo{})

	_, err := svc.CheckConflict(conflictQuery(1, "101", day(2026, 9, 5), day(2026, 9, 5)))
	require.Error(t, err)
	_, ok := AsValidationErrors(err)
	assert.True(t, ok, "degenerate range is a validation error, not a quiet no-conflict")
}

func TestCheckConflictSurfacesDataAccessFailure(t *testing.T) {
	repo := &fakeRepo{readErr: errStoreDown}
	svc := NewConflictService(repo)

	result, err := svc.CheckConflict(conflictQuery(1, "101", day(2026, 9, 1), day(2026, 9, 4)))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDataAccess)
	assert.False(t, result.HasConflict, "an error result must not read as a conflict answer")
}
