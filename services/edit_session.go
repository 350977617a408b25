package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"lodging-backend/models"
	"lodging-backend/utils"
)

// SessionState names the phases of one in-progress booking edit.
type SessionState string

const (
	StateIdle             SessionState = "idle"
	StateRoomTypeSelected SessionState = "room_type_selected"
	StateUnitsSelected    SessionState = "units_selected"
	StateDatesConfirmed   SessionState = "dates_confirmed"
	StateNoAvailability   SessionState = "no_availability"
	StateSaved            SessionState = "saved"
)

// ConflictWarning is a non-blocking heads-up surfaced when a date change
// collides with an existing booking. The selection is left in place; the
// decision belongs to the user.
type ConflictWarning struct {
	UnitLabel string `json:"unitLabel"`
	Reason    string `json:"reason"`
}

// AddOnChoice selects one add-on by id.
type AddOnChoice struct {
	AddOnID  uint `json:"addOnId"`
	Quantity int  `json:"quantity"`
}

// EditSession orchestrates one create-or-edit workflow over a booking. All
// intermediate transitions are pure recomputation over the in-memory
// selection plus read-only queries; the single write happens in Save.
// Sessions are not safe for concurrent use.
type EditSession struct {
	ID    string
	state SessionState

	repo         BookingRepository
	conflicts    *ConflictService
	availability *AvailabilityService

	bookingID     uint
	referenceCode string
	createdAt     time.Time

	checkIn      time.Time
	checkOut     time.Time
	checkInTime  string
	checkOutTime string

	roomTypeID uint
	snapshot   RoomTypeAvailability
	selected   []SelectedUnit

	guestName          string
	guestEmail         string
	guestPhone         string
	guestCount         int
	accompanyingGuests datatypes.JSON
	status             string
	paymentStatus      string
	paymentAmount      int64
	source             string
	sourceName         string
	specialRequests    string

	override CustomPriceOverride
	addOns   []AddOnSelection
}

func NewEditSession(repo BookingRepository, conflicts *ConflictService, availability *AvailabilityService) *EditSession {
	return &EditSession{
		ID:            uuid.NewString(),
		state:         StateIdle,
		repo:          repo,
		conflicts:     conflicts,
		availability:  availability,
		guestCount:    1,
		status:        models.StatusPending,
		paymentStatus: models.PaymentUnpaid,
		source:        models.SourceDirect,
	}
}

func (s *EditSession) State() SessionState { return s.state }
func (s *EditSession) SelectedUnits() []SelectedUnit {
	out := make([]SelectedUnit, len(s.selected))
	copy(out, s.selected)
	return out
}
func (s *EditSession) Override() CustomPriceOverride { return s.override }

// Nights returns the current stay length, 0 while dates are incomplete.
func (s *EditSession) Nights() int {
	w := StayWindow{CheckIn: s.checkIn, CheckOut: s.checkOut}
	if !w.Valid() {
		return 0
	}
	return w.Nights()
}

// LoadBooking prefills the session from an existing booking so staff can
// edit it. The booking's own id becomes the conflict exclusion, so its
// currently held units stay selectable.
func (s *EditSession) LoadBooking(bookingID uint) error {
	b, err := s.repo.FindBooking(bookingID)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return err
		}
		return fmt.Errorf("%w: booking %d: %v", ErrDataAccess, bookingID, err)
	}

	s.bookingID = b.ID
	s.referenceCode = b.ReferenceCode
	s.createdAt = b.CreatedAt
	s.accompanyingGuests = b.AccompanyingGuests
	s.guestName = b.GuestName
	s.guestEmail = b.GuestEmail
	s.guestPhone = b.GuestPhone
	if b.GuestCount > 0 {
		s.guestCount = b.GuestCount
	}
	if b.CheckIn != nil {
		s.checkIn = *b.CheckIn
	}
	if b.CheckOut != nil {
		s.checkOut = *b.CheckOut
	}
	s.checkInTime = b.CheckInTime
	s.checkOutTime = b.CheckOutTime
	if b.Status != "" {
		s.status = b.Status
	}
	if b.PaymentStatus != "" {
		s.paymentStatus = b.PaymentStatus
	}
	s.paymentAmount = b.PaymentAmount
	if b.Source != "" {
		s.source = b.Source
	}
	s.sourceName = b.SourceName
	s.specialRequests = b.SpecialRequests

	for _, row := range b.AddOns {
		s.addOns = append(s.addOns, AddOnSelection{
			AddOn: models.AddOn{
				ID:          row.AddOnID,
				Name:        row.Name,
				Price:       row.UnitPrice,
				PricingMode: row.PricingMode,
			},
			Quantity: row.Quantity,
		})
	}

	allocations := b.NormalizedAllocations()
	if len(allocations) == 0 {
		return nil
	}

	s.roomTypeID = allocations[0].RoomTypeID
	snapshot, err := s.availability.CheckRoomTypeAvailability(s.roomTypeID, s.checkIn, s.checkOut, s.bookingID)
	if err != nil {
		return err
	}
	s.snapshot = snapshot
	for _, alloc := range allocations {
		s.selected = append(s.selected, SelectedUnit{
			RoomTypeID:  alloc.RoomTypeID,
			RoomNumber:  alloc.RoomNumber,
			NightlyRate: alloc.NightlyPrice,
		})
	}
	s.state = StateUnitsSelected
	return nil
}

// SetDates records the stay window and, when units are already selected,
// re-validates each of them, returning non-blocking warnings instead of
// clearing the selection.
func (s *EditSession) SetDates(checkIn, checkOut time.Time, checkInTime, checkOutTime string) ([]ConflictWarning, error) {
	if !checkIn.IsZero() && !checkOut.IsZero() {
		w := StayWindow{CheckIn: checkIn, CheckOut: checkOut}
		if !w.Valid() {
			return nil, ValidationError{Field: "checkOut", Message: ErrInvalidStayRange.Error()}
		}
	}
	s.checkIn = checkIn
	s.checkOut = checkOut
	s.checkInTime = checkInTime
	s.checkOutTime = checkOutTime

	if len(s.selected) == 0 || checkIn.IsZero() || checkOut.IsZero() {
		return nil, nil
	}

	warnings := make([]ConflictWarning, 0)
	for _, unit := range s.selected {
		result, err := s.conflicts.CheckConflict(ConflictQuery{
			RoomTypeID:       unit.RoomTypeID,
			UnitLabel:        unit.RoomNumber,
			CheckIn:          checkIn,
			CheckOut:         checkOut,
			CheckInTime:      checkInTime,
			CheckOutTime:     checkOutTime,
			ExcludeBookingID: s.bookingID,
		})
		if err != nil {
			return nil, err
		}
		if result.HasConflict {
			warnings = append(warnings, ConflictWarning{UnitLabel: unit.RoomNumber, Reason: result.Reason})
		}
	}
	s.state = StateDatesConfirmed
	return warnings, nil
}

// SelectRoomType switches the session to a room type and caches its
// availability snapshot. When the type has no free units the session moves
// to NoAvailability and the ranked alternatives are returned alongside
// ErrNoAvailability.
func (s *EditSession) SelectRoomType(roomTypeID uint) (RoomTypeAvailability, []RoomTypeAvailability, error) {
	snapshot, err := s.availability.CheckRoomTypeAvailability(roomTypeID, s.checkIn, s.checkOut, s.bookingID)
	if err != nil {
		return RoomTypeAvailability{}, nil, err
	}

	if snapshot.AvailableCount == 0 {
		s.state = StateNoAvailability
		all, aerr := s.availability.GetRoomTypeAvailability(s.checkIn, s.checkOut, s.bookingID)
		if aerr != nil {
			return snapshot, nil, aerr
		}
		return snapshot, RankAlternatives(all, roomTypeID), ErrNoAvailability
	}

	if roomTypeID != s.roomTypeID {
		s.selected = nil
	}
	s.roomTypeID = roomTypeID
	s.snapshot = snapshot
	s.state = StateRoomTypeSelected
	return snapshot, nil, nil
}

// ToggleUnit adds or removes one unit from the selection, checked against
// the cached availability snapshot only; it never re-runs the aggregator.
func (s *EditSession) ToggleUnit(label string) error {
	switch s.state {
	case StateRoomTypeSelected, StateUnitsSelected, StateDatesConfirmed:
	default:
		return ValidationError{Field: "rooms", Message: "select a room type before picking rooms"}
	}

	for i, unit := range s.selected {
		if unit.RoomNumber == label {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			if len(s.selected) == 0 && s.state == StateUnitsSelected {
				s.state = StateRoomTypeSelected
			}
			return nil
		}
	}

	for _, booked := range s.snapshot.BookedUnits {
		if booked == label {
			return ValidationError{Field: "rooms", Message: fmt.Sprintf("room %s is already booked for the selected dates", label)}
		}
	}
	known := false
	for _, free := range s.snapshot.AvailableUnits {
		if free == label {
			known = true
			break
		}
	}
	if !known {
		return ValidationError{Field: "rooms", Message: fmt.Sprintf("room %s does not belong to the selected room type", label)}
	}

	s.selected = append(s.selected, SelectedUnit{
		RoomTypeID:  s.roomTypeID,
		RoomNumber:  label,
		NightlyRate: s.snapshot.NormalPrice,
	})
	if s.state == StateRoomTypeSelected {
		s.state = StateUnitsSelected
	}
	return nil
}

// SetGuest records guest identity fields.
func (s *EditSession) SetGuest(name, email, phone string, count int) {
	s.guestName = name
	s.guestEmail = email
	s.guestPhone = phone
	if count > 0 {
		s.guestCount = count
	}
}

// SetAccompanyingGuests replaces the draft list of accompanying guest
// names. An empty list clears the column.
func (s *EditSession) SetAccompanyingGuests(names []string) error {
	if len(names) == 0 {
		s.accompanyingGuests = nil
		return nil
	}
	raw, err := json.Marshal(names)
	if err != nil {
		return ValidationError{Field: "accompanyingGuests", Message: "guest names could not be encoded"}
	}
	s.accompanyingGuests = datatypes.JSON(raw)
	return nil
}

// SetSource records the booking source and its free-text qualifier.
func (s *EditSession) SetSource(source, sourceName string) {
	s.source = source
	s.sourceName = sourceName
}

// SetStatus records lifecycle and payment state for the save.
func (s *EditSession) SetStatus(status, paymentStatus string, paymentAmount int64) {
	if status != "" {
		s.status = status
	}
	if paymentStatus != "" {
		s.paymentStatus = paymentStatus
	}
	s.paymentAmount = paymentAmount
}

// SetSpecialRequests records the free-text request field.
func (s *EditSession) SetSpecialRequests(text string) {
	s.specialRequests = text
}

// SetOverride replaces the custom pricing state wholesale.
func (s *EditSession) SetOverride(o CustomPriceOverride) {
	s.override = o
}

// QuickDiscount enables a per-night override discounted by percent off the
// room type's normal rate.
func (s *EditSession) QuickDiscount(percent int) error {
	if s.roomTypeID == 0 {
		return ValidationError{Field: "roomType", Message: "select a room type before applying a discount"}
	}
	if percent <= 0 || percent >= 100 {
		return ValidationError{Field: "discount", Message: "discount percent must be between 1 and 99"}
	}
	s.override = ApplyQuickDiscount(s.override, s.snapshot.NormalPrice, percent)
	return nil
}

// ChooseAddOns resolves add-on ids against the active add-ons applicable
// to the selected room type and replaces the session's selection.
func (s *EditSession) ChooseAddOns(choices []AddOnChoice) error {
	if len(choices) == 0 {
		s.addOns = nil
		return nil
	}

	var scope *uint
	if s.roomTypeID != 0 {
		id := s.roomTypeID
		scope = &id
	}
	active, err := s.repo.FindActiveAddOns(scope)
	if err != nil {
		return fmt.Errorf("%w: add-ons: %v", ErrDataAccess, err)
	}
	byID := make(map[uint]models.AddOn, len(active))
	for _, a := range active {
		byID[a.ID] = a
	}

	selections := make([]AddOnSelection, 0, len(choices))
	for _, c := range choices {
		addOn, ok := byID[c.AddOnID]
		if !ok {
			return ValidationError{Field: "addOns", Message: fmt.Sprintf("add-on %d is not available for this room type", c.AddOnID)}
		}
		selections = append(selections, AddOnSelection{AddOn: addOn, Quantity: c.Quantity})
	}
	s.addOns = selections
	return nil
}

// Quote prices the current selection without writing anything.
func (s *EditSession) Quote() (PriceQuote, error) {
	return ComputeTotal(PriceInput{
		Units:      s.selected,
		Nights:     s.Nights(),
		GuestCount: s.guestCount,
		Override:   &s.override,
		AddOns:     s.addOns,
	})
}

// Save validates the whole session, re-runs the advisory conflict check,
// computes the final total, and performs the single write: booking upsert
// plus wholesale allocation replacement. Any failed precondition leaves
// the session intact so the caller can correct and retry.
func (s *EditSession) Save() (*models.Booking, error) {
	if s.state == StateSaved {
		return nil, ErrSessionSaved
	}

	if verrs := s.validateForSave(); len(verrs) > 0 {
		return nil, verrs
	}

	// Advisory pre-check; racing editors can still both pass (known
	// weakness of the store contract, see BookingRepository).
	for _, unit := range s.selected {
		result, err := s.conflicts.CheckConflict(ConflictQuery{
			RoomTypeID:       unit.RoomTypeID,
			UnitLabel:        unit.RoomNumber,
			CheckIn:          s.checkIn,
			CheckOut:         s.checkOut,
			CheckInTime:      s.checkInTime,
			CheckOutTime:     s.checkOutTime,
			ExcludeBookingID: s.bookingID,
		})
		if err != nil {
			return nil, err
		}
		if result.HasConflict {
			return nil, fmt.Errorf("%w: %s", ErrConflictDetected, result.Reason)
		}
	}

	quote, err := s.Quote()
	if err != nil {
		return nil, err
	}

	nights := s.Nights()
	checkIn, checkOut := s.checkIn, s.checkOut
	reference := s.referenceCode
	if reference == "" {
		reference, err = utils.GenerateBookingReference()
		if err != nil {
			return nil, err
		}
	}

	booking := &models.Booking{
		ID:            s.bookingID,
		CreatedAt:     s.createdAt,
		ReferenceCode: reference,

		GuestName:          s.guestName,
		GuestEmail:         s.guestEmail,
		GuestPhone:         s.guestPhone,
		GuestCount:         s.guestCount,
		AccompanyingGuests: s.accompanyingGuests,

		CheckIn:         &checkIn,
		CheckOut:        &checkOut,
		CheckInTime:     s.checkInTime,
		CheckOutTime:    s.checkOutTime,
		Nights:          nights,
		Status:          s.status,
		PaymentStatus:   s.paymentStatus,
		PaymentAmount:   s.paymentAmount,
		TotalPrice:      quote.TotalPrice,
		Source:          s.source,
		SourceName:      s.sourceName,
		SpecialRequests: s.specialRequests,
	}

	allocations := make([]models.RoomAllocation, 0, len(s.selected))
	for _, unit := range s.selected {
		allocations = append(allocations, models.RoomAllocation{
			RoomTypeID:   unit.RoomTypeID,
			RoomNumber:   unit.RoomNumber,
			NightlyPrice: s.nightlyChargeFor(unit, nights),
		})
	}

	addOnRows := make([]models.BookingAddOn, 0, len(s.addOns))
	for _, sel := range s.addOns {
		line, lerr := AddOnLineTotal(sel, nights, s.guestCount)
		if lerr != nil {
			return nil, lerr
		}
		addOnRows = append(addOnRows, models.BookingAddOn{
			AddOnID:     sel.AddOn.ID,
			Name:        sel.AddOn.Name,
			PricingMode: sel.AddOn.PricingMode,
			Quantity:    sel.Quantity,
			UnitPrice:   sel.AddOn.Price,
			TotalPrice:  line,
		})
	}

	if err := s.repo.SaveBooking(booking, allocations, addOnRows); err != nil {
		return nil, fmt.Errorf("%w: save booking: %v", ErrDataAccess, err)
	}

	s.bookingID = booking.ID
	s.referenceCode = booking.ReferenceCode
	s.state = StateSaved
	return booking, nil
}

func (s *EditSession) validateForSave() ValidationErrors {
	var verrs ValidationErrors

	window := StayWindow{CheckIn: s.checkIn, CheckOut: s.checkOut}
	if s.checkIn.IsZero() || s.checkOut.IsZero() {
		verrs = append(verrs, ValidationError{Field: "checkIn", Message: "check-in and check-out dates are required"})
	} else if !window.Valid() {
		verrs = append(verrs, ValidationError{Field: "checkOut", Message: ErrInvalidStayRange.Error()})
	}

	if len(s.selected) == 0 {
		verrs = append(verrs, ValidationError{Field: "rooms", Message: "at least one room must be selected"})
	}

	switch s.source {
	case models.SourceOTA:
		if s.sourceName == "" {
			verrs = append(verrs, ValidationError{Field: "sourceName", Message: "OTA name is required for OTA bookings"})
		}
	case models.SourceOther:
		if s.sourceName == "" {
			verrs = append(verrs, ValidationError{Field: "sourceName", Message: "source description is required"})
		}
	}

	if !models.IsValidStatus(s.status) {
		verrs = append(verrs, ValidationError{Field: "status", Message: "unknown booking status"})
	}

	if err := s.override.Validate(); err != nil {
		if many, ok := AsValidationErrors(err); ok {
			verrs = append(verrs, many...)
		}
	}

	return verrs
}

// nightlyChargeFor derives the per-unit nightly price recorded on the
// allocation row, which diverges from the normal rate under an override.
func (s *EditSession) nightlyChargeFor(unit SelectedUnit, nights int) int64 {
	if !s.override.Enabled || nights <= 0 || len(s.selected) == 0 {
		return unit.NightlyRate
	}
	if s.override.Mode == models.OverrideTotal {
		return s.override.TotalValue / (int64(nights) * int64(len(s.selected)))
	}
	return s.override.PerNightValue
}
