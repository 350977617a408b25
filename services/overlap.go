package services

import "time"

// Hospitality-convention defaults, applied identically to both sides of a
// comparison whenever a booking carries no explicit time-of-day.
const (
	DefaultCheckInTime  = "14:00"
	DefaultCheckOutTime = "12:00"
)

// StayWindow is one stay's [check-in, check-out) span for a single physical
// unit. Times are wall-clock "15:04" strings; empty means the default.
type StayWindow struct {
	CheckIn      time.Time
	CheckOut     time.Time
	CheckInTime  string
	CheckOutTime string
}

// Valid reports whether the window has both dates set and a positive
// length. Callers must reject invalid windows before asking Overlaps;
// a degenerate range is an input error, not "no conflict".
func (w StayWindow) Valid() bool {
	if w.CheckIn.IsZero() || w.CheckOut.IsZero() {
		return false
	}
	return dateOnly(w.CheckOut).After(dateOnly(w.CheckIn))
}

// Nights returns the stay length in nights.
func (w StayWindow) Nights() int {
	return int(dateOnly(w.CheckOut).Sub(dateOnly(w.CheckIn)).Hours() / 24)
}

// Overlaps decides whether two stays for the same physical unit collide.
// Date ranges are half-open: a check-out date equal to the other stay's
// check-in date is same-day turnover and only conflicts when the departing
// stay's check-out time is at or after the arriving stay's check-in time.
func Overlaps(a, b StayWindow) bool {
	aIn, aOut := dateOnly(a.CheckIn), dateOnly(a.CheckOut)
	bIn, bOut := dateOnly(b.CheckIn), dateOnly(b.CheckOut)

	if aOut.Before(bIn) || bOut.Before(aIn) {
		return false
	}
	if aOut.Equal(bIn) {
		return clockMinutes(a.CheckOutTime, DefaultCheckOutTime) >= clockMinutes(b.CheckInTime, DefaultCheckInTime)
	}
	if bOut.Equal(aIn) {
		return clockMinutes(b.CheckOutTime, DefaultCheckOutTime) >= clockMinutes(a.CheckInTime, DefaultCheckInTime)
	}
	return true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// clockMinutes parses a "15:04" string into minutes since midnight,
// falling back to def when the value is empty or malformed.
func clockMinutes(clock, def string) int {
	if clock == "" {
		clock = def
	}
	t, err := time.Parse("15:04", clock)
	if err != nil {
		t, err = time.Parse("15:04", def)
		if err != nil {
			return 0
		}
	}
	return t.Hour()*60 + t.Minute()
}
