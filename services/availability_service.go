package services

import (
	"errors"
	"fmt"
	"time"

	"lodging-backend/models"
)

// RoomTypeAvailability partitions one room type's unit labels for a date
// range. AvailableUnits and BookedUnits are exhaustive and disjoint over
// the type's label list. Derived on every call, never persisted.
type RoomTypeAvailability struct {
	RoomTypeID     uint     `json:"roomTypeId"`
	Name           string   `json:"name"`
	NormalPrice    int64    `json:"normalPrice"`
	Priority       int      `json:"priority"`
	AvailableUnits []string `json:"availableUnits"`
	BookedUnits    []string `json:"bookedUnits"`
	AvailableCount int      `json:"availableCount"`
}

// AvailabilityService aggregates per-unit conflict checks into per-type
// availability. A per-unit brute-force scan is deliberate: unit counts per
// property are tens, not thousands.
type AvailabilityService struct {
	Repo      BookingRepository
	Conflicts *ConflictService
}

func NewAvailabilityService(repo BookingRepository, conflicts *ConflictService) *AvailabilityService {
	return &AvailabilityService{Repo: repo, Conflicts: conflicts}
}

// GetRoomTypeAvailability computes availability for every room type. With
// either date unset (zero) no conflict checks run and every unit reports
// available, since the UI calls this eagerly on partial input.
func (s *AvailabilityService) GetRoomTypeAvailability(checkIn, checkOut time.Time, excludeBookingID uint) ([]RoomTypeAvailability, error) {
	roomTypes, err := s.Repo.FindAllRoomTypes()
	if err != nil {
		return nil, fmt.Errorf("%w: room types: %v", ErrDataAccess, err)
	}

	out := make([]RoomTypeAvailability, 0, len(roomTypes))
	for i := range roomTypes {
		avail, err := s.availabilityFor(&roomTypes[i], checkIn, checkOut, excludeBookingID)
		if err != nil {
			return nil, err
		}
		out = append(out, avail)
	}
	return out, nil
}

// CheckRoomTypeAvailability is the single-type variant, used to decide
// whether switching to a room type is feasible before letting the user
// pick units.
func (s *AvailabilityService) CheckRoomTypeAvailability(roomTypeID uint, checkIn, checkOut time.Time, excludeBookingID uint) (RoomTypeAvailability, error) {
	rt, err := s.Repo.FindRoomType(roomTypeID)
	if err != nil {
		if errors.Is(err, ErrRoomTypeNotFound) {
			return RoomTypeAvailability{}, err
		}
		return RoomTypeAvailability{}, fmt.Errorf("%w: room type %d: %v", ErrDataAccess, roomTypeID, err)
	}
	return s.availabilityFor(&rt, checkIn, checkOut, excludeBookingID)
}

func (s *AvailabilityService) availabilityFor(rt *models.RoomType, checkIn, checkOut time.Time, excludeBookingID uint) (RoomTypeAvailability, error) {
	labels := rt.UnitLabels()
	avail := RoomTypeAvailability{
		RoomTypeID:     rt.ID,
		Name:           rt.Name,
		NormalPrice:    rt.NormalPrice,
		Priority:       rt.Priority,
		AvailableUnits: make([]string, 0, len(labels)),
		BookedUnits:    []string{},
	}

	// Partial date input: no computation, everything selectable.
	if checkIn.IsZero() || checkOut.IsZero() {
		avail.AvailableUnits = append(avail.AvailableUnits, labels...)
		avail.AvailableCount = len(labels)
		return avail, nil
	}

	for _, label := range labels {
		result, err := s.Conflicts.CheckConflict(ConflictQuery{
			RoomTypeID:       rt.ID,
			UnitLabel:        label,
			CheckIn:          checkIn,
			CheckOut:         checkOut,
			ExcludeBookingID: excludeBookingID,
		})
		if err != nil {
			return RoomTypeAvailability{}, err
		}
		if result.HasConflict {
			avail.BookedUnits = append(avail.BookedUnits, label)
		} else {
			avail.AvailableUnits = append(avail.AvailableUnits, label)
		}
	}
	avail.AvailableCount = len(avail.AvailableUnits)
	return avail, nil
}

// RankAlternatives filters and orders other room types that still have
// capacity, best candidates first: higher priority wins, then the larger
// available-unit count.
func RankAlternatives(all []RoomTypeAvailability, excludeRoomTypeID uint) []RoomTypeAvailability {
	out := make([]RoomTypeAvailability, 0, len(all))
	for _, a := range all {
		if a.RoomTypeID == excludeRoomTypeID || a.AvailableCount == 0 {
			continue
		}
		out = append(out, a)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && better(out[j], out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func better(a, b RoomTypeAvailability) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return a.AvailableCount > b.AvailableCount
}
