package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rental_backend/internal/services"
	"rental_backend/pkg/utils"
)

// FoodHandler holds the food catalog and food order services.
type FoodHandler struct {
	foodService      services.FoodService
	orderFoodService services.OrderFoodService
}

// NewFoodHandler creates a new FoodHandler.
func NewFoodHandler(fs services.FoodService, ofs services.OrderFoodService) *FoodHandler {
	return &FoodHandler{foodService: fs, orderFoodService: ofs}
}

// CreateFood handles adding an item to the food catalog.
func (h *FoodHandler) CreateFood(c *gin.Context) {
	var req services.FoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateFood: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	food, err := h.foodService.CreateFood(req)
	if err != nil {
		utils.LogError(err, "CreateFood: Error from foodService.CreateFood")
		if errors.Is(err, services.ErrFoodValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create food.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, food)
}

// GetFoods handles listing the food catalog.
func (h *FoodHandler) GetFoods(c *gin.Context) {
	foods, err := h.foodService.GetFoods()
	if err != nil {
		utils.LogError(err, "GetFoods: Error from foodService.GetFoods")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch foods.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, foods)
}

// GetFoodByID handles fetching a single food item by ID.
func (h *FoodHandler) GetFoodByID(c *gin.Context) {
	idStr := c.Param("id")
	foodID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid food ID format.", err.Error()))
		return
	}

	food, err := h.foodService.GetFoodByID(foodID)
	if err != nil {
		utils.LogError(err, "GetFoodByID: Error from foodService.GetFoodByID for ID "+idStr)
		if errors.Is(err, services.ErrFoodNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Food not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch food.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, food)
}

// UpdateFood handles updating a food catalog item.
func (h *FoodHandler) UpdateFood(c *gin.Context) {
	idStr := c.Param("id")
	foodID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid food ID format.", err.Error()))
		return
	}

	var req services.FoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateFood: Failed to bind JSON for ID "+idStr)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	food, err := h.foodService.UpdateFood(foodID, req)
	if err != nil {
		utils.LogError(err, "UpdateFood: Error from foodService.UpdateFood for ID "+idStr)
		if errors.Is(err, services.ErrFoodNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Food not found to update.", err.Error()))
		} else if errors.Is(err, services.ErrFoodValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update food.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, food)
}

// DeleteFood handles deleting a food catalog item.
func (h *FoodHandler) DeleteFood(c *gin.Context) {
	idStr := c.Param("id")
	foodID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid food ID format.", err.Error()))
		return
	}

	err = h.foodService.DeleteFood(foodID)
	if err != nil {
		utils.LogError(err, "DeleteFood: Error from foodService.DeleteFood for ID "+idStr)
		if errors.Is(err, services.ErrFoodNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Food not found to delete.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete food.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Food deleted successfully"})
}

// CreateOrderFood attaches food orders to a reservation and bumps its total.
func (h *FoodHandler) CreateOrderFood(c *gin.Context) {
	var req services.CreateOrderFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateOrderFood: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "reservation_id dan items wajib diisi", err.Error()))
		return
	}

	result, err := h.orderFoodService.CreateOrderFood(req)
	if err != nil {
		utils.LogError(err, "CreateOrderFood: Error from orderFoodService.CreateOrderFood")
		if errors.Is(err, services.ErrOrderFoodReservation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Reservation not found.", err.Error()))
		} else if errors.Is(err, services.ErrOrderFoodValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create order food.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":    "Order food berhasil dibuat",
		"count":      result.Count,
		"added_cost": result.AddedCost,
	})
}

// GetOrderFoodByReservation lists a reservation's food orders.
func (h *FoodHandler) GetOrderFoodByReservation(c *gin.Context) {
	idStr := c.Param("reservationId")
	reservationID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid reservation ID format.", err.Error()))
		return
	}

	orders, err := h.orderFoodService.GetOrderFoodByReservation(reservationID)
	if err != nil {
		utils.LogError(err, "GetOrderFoodByReservation: Error from orderFoodService for ID "+idStr)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch order food.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, orders)
}
