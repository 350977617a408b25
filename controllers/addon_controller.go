package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"lodging-backend/models"
	"lodging-backend/repository"
	"lodging-backend/utils"
)

type AddOnPayload struct {
	Name        string `json:"name" binding:"required"`
	Price       int64  `json:"price" binding:"required"`
	PricingMode string `json:"pricingMode" binding:"required"`
	MaxQuantity int    `json:"maxQuantity"`
	RoomTypeID  *uint  `json:"roomTypeId"`
	Active      *bool  `json:"active"`
}

type AddOnController struct {
	Repo *repository.GormRepository
}

func NewAddOnController(repo *repository.GormRepository) *AddOnController {
	return &AddOnController{Repo: repo}
}

// GetAddOns lists add-ons. ?active=true narrows to active ones,
// ?room_type_id= narrows to those applicable to a room type.
func (ctrl *AddOnController) GetAddOns(c *gin.Context) {
	if c.Query("active") == "true" {
		var scope *uint
		if id := parseUintQuery(c, "room_type_id"); id != 0 {
			scope = &id
		}
		addOns, err := ctrl.Repo.FindActiveAddOns(scope)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		utils.JSONSuccess(c, http.StatusOK, addOns)
		return
	}

	addOns, err := ctrl.Repo.FindAllAddOns()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, addOns)
}

func (ctrl *AddOnController) CreateAddOn(c *gin.Context) {
	var payload AddOnPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	if !models.IsValidAddOnMode(payload.PricingMode) {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "unknown add-on pricing mode")
		return
	}
	addOn := models.AddOn{
		Name:        payload.Name,
		Price:       payload.Price,
		PricingMode: payload.PricingMode,
		MaxQuantity: payload.MaxQuantity,
		RoomTypeID:  payload.RoomTypeID,
		Active:      true,
	}
	if payload.Active != nil {
		addOn.Active = *payload.Active
	}
	if err := ctrl.Repo.CreateAddOn(&addOn); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, addOn)
}

func (ctrl *AddOnController) UpdateAddOn(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var payload AddOnPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	if !models.IsValidAddOnMode(payload.PricingMode) {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "unknown add-on pricing mode")
		return
	}
	addOn := models.AddOn{
		ID:          id,
		Name:        payload.Name,
		Price:       payload.Price,
		PricingMode: payload.PricingMode,
		MaxQuantity: payload.MaxQuantity,
		RoomTypeID:  payload.RoomTypeID,
		Active:      true,
	}
	if payload.Active != nil {
		addOn.Active = *payload.Active
	}
	if err := ctrl.Repo.UpdateAddOn(&addOn); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "error.addOnNotFound", "add-on not found")
			return
		}
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, addOn)
}

func (ctrl *AddOnController) DeleteAddOn(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := ctrl.Repo.DeleteAddOn(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "error.addOnNotFound", "add-on not found")
			return
		}
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": id, "deleted": true})
}
