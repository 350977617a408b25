package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lodging-backend/services"
	"lodging-backend/utils"
)

type AvailabilityController struct {
	Availability *services.AvailabilityService
	Conflicts    *services.ConflictService
}

func NewAvailabilityController(availability *services.AvailabilityService, conflicts *services.ConflictService) *AvailabilityController {
	return &AvailabilityController{Availability: availability, Conflicts: conflicts}
}

// GetAvailability returns the per-type unit partition for a date range.
// Called eagerly by date pickers; partial input returns every unit as
// available rather than an error.
//
// GET /api/availability?check_in=2026-09-01&check_out=2026-09-04&exclude_booking_id=12
func (ctrl *AvailabilityController) GetAvailability(c *gin.Context) {
	checkIn, err := utils.ParseDate(c.Query("check_in"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", "check_in must be YYYY-MM-DD")
		return
	}
	checkOut, err := utils.ParseDate(c.Query("check_out"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", "check_out must be YYYY-MM-DD")
		return
	}
	excludeID := parseUintQuery(c, "exclude_booking_id")

	availability, err := ctrl.Availability.GetRoomTypeAvailability(checkIn, checkOut, excludeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, availability)
}

// GetRoomTypeAvailability is the single-type variant used before a
// room-type switch.
//
// GET /api/room-types/:id/availability?check_in=...&check_out=...
func (ctrl *AvailabilityController) GetRoomTypeAvailability(c *gin.Context) {
	roomTypeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", "room type id must be numeric")
		return
	}
	checkIn, err := utils.ParseDate(c.Query("check_in"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", "check_in must be YYYY-MM-DD")
		return
	}
	checkOut, err := utils.ParseDate(c.Query("check_out"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", "check_out must be YYYY-MM-DD")
		return
	}
	excludeID := parseUintQuery(c, "exclude_booking_id")

	availability, err := ctrl.Availability.CheckRoomTypeAvailability(uint(roomTypeID), checkIn, checkOut, excludeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, availability)
}

func parseUintQuery(c *gin.Context, key string) uint {
	raw := c.Query(key)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}
