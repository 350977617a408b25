package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lodging-backend/models"
	"lodging-backend/repository"
	"lodging-backend/services"
	"lodging-backend/utils"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

// BookingPayload is the full create/edit request. The controller drives an
// edit session with it: dates first, then room type, then units, then the
// rest, so the same validation path serves both flows.
type BookingPayload struct {
	GuestName          string   `json:"guestName" binding:"required"`
	GuestEmail         string   `json:"guestEmail"`
	GuestPhone         string   `json:"guestPhone"`
	GuestCount         int      `json:"guestCount"`
	AccompanyingGuests []string `json:"accompanyingGuests"`

	CheckIn      string `json:"checkIn" binding:"required"`
	CheckOut     string `json:"checkOut" binding:"required"`
	CheckInTime  string `json:"checkInTime"`
	CheckOutTime string `json:"checkOutTime"`

	RoomTypeID  uint     `json:"roomTypeId" binding:"required"`
	RoomNumbers []string `json:"roomNumbers" binding:"required"`

	Status          string `json:"status"`
	PaymentStatus   string `json:"paymentStatus"`
	PaymentAmount   int64  `json:"paymentAmount"`
	Source          string `json:"source"`
	SourceName      string `json:"sourceName"`
	SpecialRequests string `json:"specialRequests"`

	CustomPrice     *services.CustomPriceOverride `json:"customPrice"`
	DiscountPercent int                           `json:"discountPercent"`
	AddOns          []services.AddOnChoice        `json:"addOns"`
}

type ConflictCheckPayload struct {
	RoomTypeID       uint   `json:"roomTypeId" binding:"required"`
	UnitLabel        string `json:"unitLabel" binding:"required"`
	CheckIn          string `json:"checkIn" binding:"required"`
	CheckOut         string `json:"checkOut" binding:"required"`
	CheckInTime      string `json:"checkInTime"`
	CheckOutTime     string `json:"checkOutTime"`
	ExcludeBookingID uint   `json:"excludeBookingId"`
}

type QuotePayload struct {
	RoomTypeID  uint     `json:"roomTypeId" binding:"required"`
	RoomNumbers []string `json:"roomNumbers" binding:"required"`
	CheckIn     string   `json:"checkIn" binding:"required"`
	CheckOut    string   `json:"checkOut" binding:"required"`
	GuestCount  int      `json:"guestCount"`

	CustomPrice     *services.CustomPriceOverride `json:"customPrice"`
	DiscountPercent int                           `json:"discountPercent"`
	AddOns          []services.AddOnChoice        `json:"addOns"`
}

type StatusPayload struct {
	Status string `json:"status" binding:"required"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	Repo         *repository.GormRepository
	Conflicts    *services.ConflictService
	Availability *services.AvailabilityService
}

func NewBookingController(repo *repository.GormRepository, conflicts *services.ConflictService, availability *services.AvailabilityService) *BookingController {
	return &BookingController{Repo: repo, Conflicts: conflicts, Availability: availability}
}

func (ctrl *BookingController) newSession() *services.EditSession {
	return services.NewEditSession(ctrl.Repo, ctrl.Conflicts, ctrl.Availability)
}

// GetBookings lists all bookings with relations.
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	list, err := ctrl.Repo.FindAllBookings()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// GetBooking returns one booking by id.
func (ctrl *BookingController) GetBooking(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	b, err := ctrl.Repo.FindBooking(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, b)
}

// CreateBooking runs the whole edit workflow for a fresh booking and
// persists it only when every precondition passes.
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var payload BookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	ctrl.runSession(c, ctrl.newSession(), payload, http.StatusCreated)
}

// UpdateBooking edits an existing booking through the same workflow; the
// booking under edit never conflicts against itself.
func (ctrl *BookingController) UpdateBooking(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	var payload BookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	session := ctrl.newSession()
	if err := session.LoadBooking(id); err != nil {
		respondServiceError(c, err)
		return
	}
	ctrl.runSession(c, session, payload, http.StatusOK)
}

// runSession drives a session from a payload and saves. Conflict warnings
// raised by the date change are returned alongside the saved booking; a
// conflict at save time blocks the write.
func (ctrl *BookingController) runSession(c *gin.Context, session *services.EditSession, payload BookingPayload, okStatus int) {
	checkIn, err := utils.ParseDate(payload.CheckIn)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", "checkIn must be YYYY-MM-DD")
		return
	}
	checkOut, err := utils.ParseDate(payload.CheckOut)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", "checkOut must be YYYY-MM-DD")
		return
	}
	if !utils.IsValidClock(payload.CheckInTime) || !utils.IsValidClock(payload.CheckOutTime) {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidTime", "times must be HH:MM")
		return
	}

	warnings, err := session.SetDates(checkIn, checkOut, payload.CheckInTime, payload.CheckOutTime)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	_, alternatives, err := session.SelectRoomType(payload.RoomTypeID)
	if err != nil {
		if errors.Is(err, services.ErrNoAvailability) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "error.noAvailability",
					"message": "no rooms of this type are available for the selected dates",
				},
				"alternatives": alternatives,
			})
			return
		}
		respondServiceError(c, err)
		return
	}

	// Reconcile toward the requested unit set; on edits the session is
	// prefilled with the booking's current rooms and a toggle would
	// deselect them.
	selected := make(map[string]bool)
	for _, unit := range session.SelectedUnits() {
		selected[unit.RoomNumber] = true
	}
	wanted := make(map[string]bool, len(payload.RoomNumbers))
	for _, label := range payload.RoomNumbers {
		wanted[label] = true
		if selected[label] {
			continue
		}
		if err := session.ToggleUnit(label); err != nil {
			respondServiceError(c, err)
			return
		}
	}
	for label := range selected {
		if !wanted[label] {
			if err := session.ToggleUnit(label); err != nil {
				respondServiceError(c, err)
				return
			}
		}
	}

	session.SetGuest(payload.GuestName, payload.GuestEmail, payload.GuestPhone, payload.GuestCount)
	// nil means "field absent": an edit without the key keeps the stored list.
	if payload.AccompanyingGuests != nil {
		if err := session.SetAccompanyingGuests(payload.AccompanyingGuests); err != nil {
			respondServiceError(c, err)
			return
		}
	}
	if payload.Source != "" {
		session.SetSource(payload.Source, payload.SourceName)
	}
	session.SetStatus(payload.Status, payload.PaymentStatus, payload.PaymentAmount)
	session.SetSpecialRequests(payload.SpecialRequests)

	if payload.DiscountPercent > 0 {
		if err := session.QuickDiscount(payload.DiscountPercent); err != nil {
			respondServiceError(c, err)
			return
		}
	} else if payload.CustomPrice != nil {
		session.SetOverride(*payload.CustomPrice)
	}

	if err := session.ChooseAddOns(payload.AddOns); err != nil {
		respondServiceError(c, err)
		return
	}

	booking, err := session.Save()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(okStatus, gin.H{
		"success":  true,
		"data":     booking,
		"warnings": warnings,
	})
}

// CheckConflict is the read-only pre-check invoked on every date or unit
// change in the editor.
func (ctrl *BookingController) CheckConflict(c *gin.Context) {
	var payload ConflictCheckPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	checkIn, err := utils.ParseDate(payload.CheckIn)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", "checkIn must be YYYY-MM-DD")
		return
	}
	checkOut, err := utils.ParseDate(payload.CheckOut)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", "checkOut must be YYYY-MM-DD")
		return
	}

	result, err := ctrl.Conflicts.CheckConflict(services.ConflictQuery{
		RoomTypeID:       payload.RoomTypeID,
		UnitLabel:        payload.UnitLabel,
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		CheckInTime:      payload.CheckInTime,
		CheckOutTime:     payload.CheckOutTime,
		ExcludeBookingID: payload.ExcludeBookingID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}

// Quote prices a selection without touching any booking.
func (ctrl *BookingController) Quote(c *gin.Context) {
	var payload QuotePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	checkIn, err := utils.ParseDate(payload.CheckIn)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", "checkIn must be YYYY-MM-DD")
		return
	}
	checkOut, err := utils.ParseDate(payload.CheckOut)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", "checkOut must be YYYY-MM-DD")
		return
	}
	window := services.StayWindow{CheckIn: checkIn, CheckOut: checkOut}
	if !window.Valid() {
		utils.JSONFieldErrors(c, http.StatusBadRequest, services.ValidationErrors{
			{Field: "checkOut", Message: services.ErrInvalidStayRange.Error()},
		})
		return
	}

	roomType, err := ctrl.Repo.FindRoomType(payload.RoomTypeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	units := make([]services.SelectedUnit, 0, len(payload.RoomNumbers))
	for _, label := range payload.RoomNumbers {
		units = append(units, services.SelectedUnit{
			RoomTypeID:  roomType.ID,
			RoomNumber:  label,
			NightlyRate: roomType.NormalPrice,
		})
	}

	override := services.CustomPriceOverride{}
	if payload.CustomPrice != nil {
		override = *payload.CustomPrice
	}
	if payload.DiscountPercent > 0 {
		override = services.ApplyQuickDiscount(override, roomType.NormalPrice, payload.DiscountPercent)
	}

	selections, err := ctrl.resolveAddOns(roomType.ID, payload.AddOns)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	guestCount := payload.GuestCount
	if guestCount <= 0 {
		guestCount = 1
	}

	quote, err := services.ComputeTotal(services.PriceInput{
		Units:      units,
		Nights:     window.Nights(),
		GuestCount: guestCount,
		Override:   &override,
		AddOns:     selections,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, quote)
}

func (ctrl *BookingController) resolveAddOns(roomTypeID uint, choices []services.AddOnChoice) ([]services.AddOnSelection, error) {
	if len(choices) == 0 {
		return nil, nil
	}
	active, err := ctrl.Repo.FindActiveAddOns(&roomTypeID)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.AddOn, len(active))
	for _, a := range active {
		byID[a.ID] = a
	}
	selections := make([]services.AddOnSelection, 0, len(choices))
	for _, choice := range choices {
		addOn, ok := byID[choice.AddOnID]
		if !ok {
			return nil, services.ValidationError{Field: "addOns", Message: "unknown or inactive add-on"}
		}
		selections = append(selections, services.AddOnSelection{AddOn: addOn, Quantity: choice.Quantity})
	}
	return selections, nil
}

// UpdateStatus changes the lifecycle status; cancelled/rejected is the
// logical delete that frees the booking's units.
func (ctrl *BookingController) UpdateStatus(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	var payload StatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	if !models.IsValidStatus(payload.Status) {
		utils.JSONFieldErrors(c, http.StatusBadRequest, services.ValidationErrors{
			{Field: "status", Message: "unknown booking status"},
		})
		return
	}
	if err := ctrl.Repo.UpdateBookingStatus(id, payload.Status); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": id, "status": payload.Status})
}

// DeleteBooking hard-deletes a booking (staff action).
func (ctrl *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	if err := ctrl.Repo.DeleteBooking(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": id, "deleted": true})
}

func bookingIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", "booking id must be numeric")
		return 0, false
	}
	return uint(id), true
}
