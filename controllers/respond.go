package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lodging-backend/services"
	"lodging-backend/utils"
)

// respondServiceError maps engine errors onto HTTP responses. Validation
// problems come back field-attributable; a data-access failure is reported
// as its own failure and never downgraded to an empty success.
func respondServiceError(c *gin.Context, err error) {
	if fields, ok := services.AsValidationErrors(err); ok {
		utils.JSONFieldErrors(c, http.StatusBadRequest, fields)
		return
	}

	switch {
	case errors.Is(err, services.ErrConflictDetected):
		utils.JSONError(c, http.StatusConflict, "error.conflictDetected", err.Error())
	case errors.Is(err, services.ErrNoAvailability):
		utils.JSONError(c, http.StatusConflict, "error.noAvailability", err.Error())
	case errors.Is(err, services.ErrBookingNotFound):
		utils.JSONError(c, http.StatusNotFound, "error.bookingNotFound", err.Error())
	case errors.Is(err, services.ErrRoomTypeNotFound):
		utils.JSONError(c, http.StatusNotFound, "error.roomTypeNotFound", err.Error())
	case errors.Is(err, services.ErrSessionSaved):
		utils.JSONError(c, http.StatusConflict, "error.alreadySaved", err.Error())
	case errors.Is(err, services.ErrDataAccess):
		utils.JSONError(c, http.StatusBadGateway, "error.dataAccess", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
	}
}
