package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lodging-backend/models"
)

func newAvailabilityService(repo *fakeRepo) *AvailabilityService {
	conflicts := NewConflictService(repo)
	return NewAvailabilityService(repo, conflicts)
}

func TestGetRoomTypeAvailabilityPartitions(t *testing.T) {
	repo := &fakeRepo{
		roomTypes: []models.RoomType{
			testRoomType(1, "Standard", 450000, 1, "101", "102", "103"),
			testRoomType(2, "Deluxe", 900000, 2, "301", "302"),
		},
		bookings: []models.Booking{
			testBooking(1, "Alice", models.StatusConfirmed, 1, "101", day(2026, 9, 1), day(2026, 9, 5)),
			testBooking(2, "Bob", models.StatusConfirmed, 2, "302", day(2026, 9, 2), day(2026, 9, 6)),
		},
	}
	svc := newAvailabilityService(repo)

	out, err := svc.GetRoomTypeAvailability(day(2026, 9, 3), day(2026, 9, 4), 0)
	require.NoError(t, err)
	require.Len(t, out, 2)

	standard := out[0]
	assert.Equal(t, []string{"102", "103"}, standard.AvailableUnits)
	assert.Equal(t, []string{"101"}, standard.BookedUnits)
	assert.Equal(t, 2, standard.AvailableCount)
	assert.Equal(t, int64(450000), standard.NormalPrice)

	deluxe := out[1]
	assert.Equal(t, []string{"301"}, deluxe.AvailableUnits)
	assert.Equal(t, []string{"302"}, deluxe.BookedUnits)
}

func TestAvailabilityPartitionIsExhaustiveAndDisjoint(t *testing.T) {
	repo := &fakeRepo{
		roomTypes: []models.RoomType{testRoomType(1, "Standard", 450000, 1, "101", "102", "103", "104")},
		bookings: []models.Booking{
			testBooking(1, "Alice", models.StatusConfirmed, 1, "102", day(2026, 9, 1), day(2026, 9, 5)),
			testBooking(2, "Bob", models.StatusConfirmed, 1, "104", day(2026, 9, 1), day(2026, 9, 5)),
		},
	}
	svc := newAvailabilityService(repo)

	avail, err := svc.CheckRoomTypeAvailability(1, day(2026, 9, 2), day(2026, 9, 3), 0)
	require.NoError(t, err)

	seen := map[string]int{}
	for _, u := range avail.AvailableUnits {
		seen[u]++
	}
	for _, u := range avail.BookedUnits {
		seen[u]++
	}
	assert.Len(t, seen, 4, "union covers every unit label of the type")
	for label, count := range seen {
		assert.Equal(t, 1, count, "unit %s must appear in exactly one partition", label)
	}
}

func TestAvailabilityWithPartialDatesReportsAllUnits(t *testing.T) {
	repo := &fakeRepo{
		roomTypes: []models.RoomType{testRoomType(1, "Standard", 450000, 1, "101", "102")},
		bookings: []models.Booking{
			testBooking(1, "Alice", models.StatusConfirmed, 1, "101", day(2026, 9, 1), day(2026, 9, 5)),
		},
	}
	svc := newAvailabilityService(repo)

	for _, dates := range [][2]time.Time{
		{{}, {}},
		{day(2026, 9, 1), {}},
		{{}, day(2026, 9, 5)},
	} {
		avail, err := svc.CheckRoomTypeAvailability(1, dates[0], dates[1], 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"101", "102"}, avail.AvailableUnits)
		assert.Empty(t, avail.BookedUnits)
		assert.Equal(t, 2, avail.AvailableCount)
	}
}

func TestAvailabilityExcludesBookingUnderEdit(t *testing.T) {
	repo := &fakeRepo{
		roomTypes: []models.RoomType{testRoomType(1, "Standard", 450000, 1, "101", "102")},
		bookings: []models.Booking{
			testBooking(9, "Alice", models.StatusConfirmed, 1, "101", day(2026, 9, 1), day(2026, 9, 5)),
		},
	}
	svc := newAvailabilityService(repo)

	avail, err := svc.CheckRoomTypeAvailability(1, day(2026, 9, 2), day(2026, 9, 4), 9)
	require.NoError(t, err)
	assert.Contains(t, avail.AvailableUnits, "101", "the booking under edit keeps its own unit selectable")

	avail, err = svc.CheckRoomTypeAvailability(1, day(2026, 9, 2), day(2026, 9, 4), 0)
	require.NoError(t, err)
	assert.Contains(t, avail.BookedUnits, "101")
}

func TestAvailabilityUnknownRoomType(t *testing.T) {
	svc := newAvailabilityService(&fakeRepo{})
	_, err := svc.CheckRoomTypeAvailability(42, day(2026, 9, 1), day(2026, 9, 2), 0)
	assert.ErrorIs(t, err, ErrRoomTypeNotFound)
}

func TestAvailabilitySurfacesDataAccessFailure(t *testing.T) {
	repo := &fakeRepo{readErr: errStoreDown}
	svc := newAvailabilityService(repo)

	_, err := svc.GetRoomTypeAvailability(day(2026, 9, 1), day(2026, 9, 4), 0)
	assert.ErrorIs(t, err, ErrDataAccess)
}

func TestRankAlternatives(t *testing.T) {
	all := []RoomTypeAvailability{
		{RoomTypeID: 1, Name: "Standard", Priority: 1, AvailableCount: 4},
		{RoomTypeID: 2, Name: "Superior", Priority: 2, AvailableCount: 1},
		{RoomTypeID: 3, Name: "Deluxe", Priority: 2, AvailableCount: 2},
		{RoomTypeID: 4, Name: "Suite", Priority: 3, AvailableCount: 0},
	}

	ranked := RankAlternatives(all, 1)
	require.Len(t, ranked, 2, "the requested type and full types are excluded")
	assert.Equal(t, uint(3), ranked[0].RoomTypeID, "equal priority ranks by available count")
	assert.Equal(t, uint(2), ranked[1].RoomTypeID)
}
