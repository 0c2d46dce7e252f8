package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rental_backend/internal/models"
	"rental_backend/internal/services"
	"rental_backend/pkg/utils"
)

// RoomHandler holds the room service.
type RoomHandler struct {
	roomService services.RoomService
}

// NewRoomHandler creates a new RoomHandler.
func NewRoomHandler(rs services.RoomService) *RoomHandler {
	return &RoomHandler{roomService: rs}
}

// CreateRoom handles the creation of a new room together with its price row.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req services.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateRoom: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	room, err := h.roomService.CreateRoom(req)
	if err != nil {
		utils.LogError(err, "CreateRoom: Error from roomService.CreateRoom")
		if errors.Is(err, services.ErrRoomValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create room.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (h *RoomHandler) getRooms(c *gin.Context, withPrice bool) {
	params := parseListParams(c)

	rooms, totalCount, err := h.roomService.GetRooms(params.Page, params.Limit, params.Search, params.All, withPrice)
	if err != nil {
		utils.LogError(err, "GetRooms: Error from roomService.GetRooms")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch rooms.", "Internal error"))
		return
	}
	if rooms == nil {
		rooms = []models.Room{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data": rooms,
		"meta": params.listMeta(totalCount, len(rooms)),
	})
}

// GetRooms handles fetching rooms with pagination and search.
func (h *RoomHandler) GetRooms(c *gin.Context) {
	h.getRooms(c, false)
}

// GetRoomsWithPrice handles fetching rooms joined with their hourly price.
func (h *RoomHandler) GetRoomsWithPrice(c *gin.Context) {
	h.getRooms(c, true)
}

// GetRoomByID handles fetching a single room by ID.
func (h *RoomHandler) GetRoomByID(c *gin.Context) {
	idStr := c.Param("id")
	roomID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid room ID format.", err.Error()))
		return
	}

	room, err := h.roomService.GetRoomByID(roomID)
	if err != nil {
		utils.LogError(err, "GetRoomByID: Error from roomService.GetRoomByID for ID "+idStr)
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Room not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch room.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, room)
}

// UpdateRoom handles updating a room and upserting its price row.
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	idStr := c.Param("id")
	roomID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid room ID format.", err.Error()))
		return
	}

	var req services.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateRoom: Failed to bind JSON for ID "+idStr)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	room, err := h.roomService.UpdateRoom(roomID, req)
	if err != nil {
		utils.LogError(err, "UpdateRoom: Error from roomService.UpdateRoom for ID "+idStr)
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Room not found to update.", err.Error()))
		} else if errors.Is(err, services.ErrRoomValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update room.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, room)
}

// DeleteRoom handles deleting a room and everything that depends on it.
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	idStr := c.Param("id")
	roomID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid room ID format.", err.Error()))
		return
	}

	err = h.roomService.DeleteRoom(roomID)
	if err != nil {
		utils.LogError(err, "DeleteRoom: Error from roomService.DeleteRoom for ID "+idStr)
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Room not found to delete.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete room.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Room deleted successfully"})
}
