package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lodging-backend/models"
	"lodging-backend/repository"
	"lodging-backend/utils"
)

type RoomTypePayload struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	NormalPrice int64    `json:"normalPrice" binding:"required"`
	MaxGuests   int      `json:"maxGuests"`
	Priority    int      `json:"priority"`
	RoomNumbers []string `json:"roomNumbers" binding:"required"`
}

type RoomTypeController struct {
	Repo *repository.GormRepository
}

func NewRoomTypeController(repo *repository.GormRepository) *RoomTypeController {
	return &RoomTypeController{Repo: repo}
}

func (ctrl *RoomTypeController) GetRoomTypes(c *gin.Context) {
	roomTypes, err := ctrl.Repo.FindAllRoomTypes()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, roomTypes)
}

func (ctrl *RoomTypeController) GetRoomType(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	rt, err := ctrl.Repo.FindRoomType(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rt)
}

func (ctrl *RoomTypeController) CreateRoomType(c *gin.Context) {
	var payload RoomTypePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	rt := models.RoomType{
		Name:        payload.Name,
		Description: payload.Description,
		NormalPrice: payload.NormalPrice,
		MaxGuests:   payload.MaxGuests,
		Priority:    payload.Priority,
	}
	if err := rt.SetUnitLabels(payload.RoomNumbers); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	if err := ctrl.Repo.CreateRoomType(&rt); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, rt)
}

func (ctrl *RoomTypeController) UpdateRoomType(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var payload RoomTypePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	rt := models.RoomType{
		ID:          id,
		Name:        payload.Name,
		Description: payload.Description,
		NormalPrice: payload.NormalPrice,
		MaxGuests:   payload.MaxGuests,
		Priority:    payload.Priority,
	}
	if err := rt.SetUnitLabels(payload.RoomNumbers); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	if err := ctrl.Repo.UpdateRoomType(&rt); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rt)
}

func (ctrl *RoomTypeController) DeleteRoomType(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := ctrl.Repo.DeleteRoomType(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": id, "deleted": true})
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", "id must be numeric")
		return 0, false
	}
	return uint(id), true
}
