package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rental_backend/internal/middleware"
	"rental_backend/internal/models"
	"rental_backend/internal/services"
	"rental_backend/pkg/utils"
)

// ReservationHandler holds the reservation service.
type ReservationHandler struct {
	reservationService services.ReservationService
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(rs services.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: rs}
}

// currentUserID reads the authenticated user id from the gin context, nil
// when the request carries no valid token.
func currentUserID(c *gin.Context) *int64 {
	value, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return nil
	}
	userID, ok := value.(int64)
	if !ok {
		return nil
	}
	return &userID
}

func respondReservationError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrReservationNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Reservation not found.", err.Error()))
	case errors.Is(err, services.ErrRoomNotAvailable):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Room sudah dibooking pada jam tersebut.", err.Error()))
	case errors.Is(err, services.ErrRoomForReservationRequired):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "room_id atau nama_room wajib diisi dan valid", err.Error()))
	case errors.Is(err, services.ErrRoomForReservationNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Ruangan tidak ditemukan", err.Error()))
	case errors.Is(err, services.ErrCustomerForReservationInvalid):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Customer tidak ditemukan", err.Error()))
	case errors.Is(err, services.ErrReservationTimeFormat):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Format date/time tidak valid (YYYY-MM-DD & HH:mm)", err.Error()))
	case errors.Is(err, services.ErrReservationValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to "+action+".", "Internal error"))
	}
}

// CreateReservation handles booking a room.
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req services.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateReservation: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "date dan time wajib diisi (YYYY-MM-DD & HH:mm)", err.Error()))
		return
	}

	reservation, err := h.reservationService.CreateReservation(req, currentUserID(c))
	if err != nil {
		utils.LogError(err, "CreateReservation: Error from reservationService.CreateReservation")
		respondReservationError(c, err, "create reservation")
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

// GetReservations serves both list modes: ?date= returns the day's timeline
// as a bare array; otherwise the paginated history, newest first.
func (h *ReservationHandler) GetReservations(c *gin.Context) {
	if date := c.Query("date"); date != "" {
		reservations, err := h.reservationService.GetReservationsByDate(date)
		if err != nil {
			utils.LogError(err, "GetReservations: Error fetching timeline for date "+date)
			respondReservationError(c, err, "fetch reservations")
			return
		}
		c.JSON(http.StatusOK, reservations)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	filters := models.ReservationFilters{
		Page:     page,
		PageSize: limit,
		Unpaid:   c.Query("unpaid") == "true",
	}

	reservations, totalCount, err := h.reservationService.GetReservations(filters)
	if err != nil {
		utils.LogError(err, "GetReservations: Error from reservationService.GetReservations")
		respondReservationError(c, err, "fetch reservations")
		return
	}
	if reservations == nil {
		reservations = []services.ReservationResponse{}
	}

	meta := models.NewListMeta(filters.Page, filters.PageSize, totalCount)
	c.JSON(http.StatusOK, gin.H{
		"data":       reservations,
		"pagination": meta,
		"meta":       meta,
	})
}

// GetReservationByID handles fetching a single reservation.
func (h *ReservationHandler) GetReservationByID(c *gin.Context) {
	idStr := c.Param("id")
	reservationID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid reservation ID format.", err.Error()))
		return
	}

	reservation, err := h.reservationService.GetReservationByID(reservationID)
	if err != nil {
		utils.LogError(err, "GetReservationByID: Error from reservationService for ID "+idStr)
		respondReservationError(c, err, "fetch reservation")
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// GetReservationWithOrders handles fetching a reservation with its food orders.
func (h *ReservationHandler) GetReservationWithOrders(c *gin.Context) {
	idStr := c.Param("id")
	reservationID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid reservation ID format.", err.Error()))
		return
	}

	reservation, err := h.reservationService.GetReservationWithOrders(reservationID)
	if err != nil {
		utils.LogError(err, "GetReservationWithOrders: Error from reservationService for ID "+idStr)
		respondReservationError(c, err, "fetch reservation with orders")
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// UpdateReservation handles rebooking a reservation.
func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	idStr := c.Param("id")
	reservationID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid reservation ID format.", err.Error()))
		return
	}

	var req services.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateReservation: Failed to bind JSON for ID "+idStr)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "date dan time wajib diisi (YYYY-MM-DD & HH:mm)", err.Error()))
		return
	}

	reservation, err := h.reservationService.UpdateReservation(reservationID, req, currentUserID(c))
	if err != nil {
		utils.LogError(err, "UpdateReservation: Error from reservationService for ID "+idStr)
		respondReservationError(c, err, "update reservation")
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// DeleteReservation handles deleting a reservation and its food orders.
func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	idStr := c.Param("id")
	reservationID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid reservation ID format.", err.Error()))
		return
	}

	err = h.reservationService.DeleteReservation(reservationID)
	if err != nil {
		utils.LogError(err, "DeleteReservation: Error from reservationService for ID "+idStr)
		respondReservationError(c, err, "delete reservation")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation deleted"})
}

// PayReservation settles a reservation. A fresh payment answers 201, a top-up
// of a partial payment answers 200.
func (h *ReservationHandler) PayReservation(c *gin.Context) {
	idStr := c.Param("id")
	reservationID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid reservation ID format.", err.Error()))
		return
	}

	result, err := h.reservationService.PayReservation(reservationID)
	if err != nil {
		utils.LogError(err, "PayReservation: Error from reservationService for ID "+idStr)
		if errors.Is(err, services.ErrReservationAlreadyPaid) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Reservasi ini sudah lunas!", err.Error()))
			return
		}
		respondReservationError(c, err, "process payment")
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"message": "Payment Dibayar Lunas",
		"data":    result,
	})
}
