package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDataAccess wraps any failure of the backing store. It must never
	// be collapsed into a "no conflict" or "available" answer.
	ErrDataAccess = errors.New("data access failed")

	// ErrConflictDetected is returned when a save is attempted for a
	// unit/date combination that overlaps an existing active booking.
	ErrConflictDetected = errors.New("booking conflict detected")

	// ErrNoAvailability is returned when a room type has zero free units
	// for the requested range.
	ErrNoAvailability = errors.New("no units available")

	// ErrInvalidStayRange is returned for a zero-or-negative-length stay.
	ErrInvalidStayRange = errors.New("check-out must be after check-in")

	ErrRoomTypeNotFound = errors.New("room type not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrSessionSaved     = errors.New("edit session already saved")
)

// ValidationError reports a single field-attributable input problem.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates per-field problems so the caller can report
// all of them at once instead of one per round trip.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, ve := range e {
		msgs = append(msgs, ve.Error())
	}
	return strings.Join(msgs, "; ")
}

// AsValidationErrors unwraps err into field errors if it carries any.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var many ValidationErrors
	if errors.As(err, &many) {
		return many, true
	}
	var one ValidationError
	if errors.As(err, &one) {
		return ValidationErrors{one}, true
	}
	return nil, false
}
