package services

import (
	"fmt"
	"time"
)

// ConflictQuery asks whether a candidate assignment of one unit for one
// date range collides with an existing active booking. ExcludeBookingID
// is the booking currently under edit (0 = none); it must never conflict
// against its own prior hold on the unit.
type ConflictQuery struct {
	RoomTypeID       uint      `json:"roomTypeId"`
	UnitLabel        string    `json:"unitLabel"`
	CheckIn          time.Time `json:"checkIn"`
	CheckOut         time.Time `json:"checkOut"`
	CheckInTime      string    `json:"checkInTime,omitempty"`
	CheckOutTime     string    `json:"checkOutTime,omitempty"`
	ExcludeBookingID uint      `json:"excludeBookingId,omitempty"`
}

// ConflictResult is a structured answer, not an error: conflicts are an
// expected, frequent outcome of the editing flow.
type ConflictResult struct {
	HasConflict bool   `json:"hasConflict"`
	Reason      string `json:"reason,omitempty"`
	BookingID   uint   `json:"bookingId,omitempty"`
}

// ConflictService detects room-date collisions against the store. All its
// methods are read-only and safe to call repeatedly, e.g. on every date
// pick.
type ConflictService struct {
	Repo BookingRepository
}

func NewConflictService(repo BookingRepository) *ConflictService {
	return &ConflictService{Repo: repo}
}

// CheckConflict fetches the active bookings holding the queried unit and
// applies the overlap rule to each. The first overlapping booking wins and
// is named in the reason. A store failure is returned as an error distinct
// from "no conflict" so callers can never save through an outage.
func (s *ConflictService) CheckConflict(q ConflictQuery) (ConflictResult, error) {
	candidate := StayWindow{
		CheckIn:      q.CheckIn,
		CheckOut:     q.CheckOut,
		CheckInTime:  q.CheckInTime,
		CheckOutTime: q.CheckOutTime,
	}
	if !candidate.Valid() {
		return ConflictResult{}, ValidationError{Field: "checkOut", Message: ErrInvalidStayRange.Error()}
	}

	bookings, err := s.Repo.FindActiveBookingsForUnit(q.RoomTypeID, q.UnitLabel, q.ExcludeBookingID)
	if err != nil {
		return ConflictResult{}, fmt.Errorf("%w: bookings for unit %s: %v", ErrDataAccess, q.UnitLabel, err)
	}

	for i := range bookings {
		b := &bookings[i]
		// The repository already filters these; re-checked here because the
		// exclusion of cancelled/rejected bookings and of the booking under
		// edit is the central invariant of the engine.
		if !b.IsActive() || b.ID == q.ExcludeBookingID {
			continue
		}
		if !b.HoldsUnit(q.RoomTypeID, q.UnitLabel) {
			continue
		}
		if b.CheckIn == nil || b.CheckOut == nil {
			continue
		}
		existing := StayWindow{
			CheckIn:      *b.CheckIn,
			CheckOut:     *b.CheckOut,
			CheckInTime:  b.CheckInTime,
			CheckOutTime: b.CheckOutTime,
		}
		if Overlaps(candidate, existing) {
			return ConflictResult{
				HasConflict: true,
				BookingID:   b.ID,
				Reason: fmt.Sprintf("room %s is held by %s (%s, %s to %s)",
					q.UnitLabel, b.GuestName, b.ReferenceCode,
					b.CheckIn.Format("2006-01-02"), b.CheckOut.Format("2006-01-02")),
			}, nil
		}
	}

	return ConflictResult{}, nil
}
