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

// UnitHandler holds the unit service.
type UnitHandler struct {
	unitService services.UnitService
}

// NewUnitHandler creates a new UnitHandler.
func NewUnitHandler(us services.UnitService) *UnitHandler {
	return &UnitHandler{unitService: us}
}

// CreateUnit handles the creation of a new unit.
func (h *UnitHandler) CreateUnit(c *gin.Context) {
	var req services.CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateUnit: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	unit, err := h.unitService.CreateUnit(req)
	if err != nil {
		utils.LogError(err, "CreateUnit: Error from unitService.CreateUnit")
		if errors.Is(err, services.ErrRoomForUnitNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Room for unit not found.", err.Error()))
		} else if errors.Is(err, services.ErrUnitValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create unit.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, unit)
}

// GetUnits handles fetching units with pagination and search.
func (h *UnitHandler) GetUnits(c *gin.Context) {
	params := parseListParams(c)

	units, totalCount, err := h.unitService.GetUnits(params.Page, params.Limit, params.Search, params.All)
	if err != nil {
		utils.LogError(err, "GetUnits: Error from unitService.GetUnits")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch units.", "Internal error"))
		return
	}
	if units == nil {
		units = []models.Unit{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data": units,
		"meta": params.listMeta(totalCount, len(units)),
	})
}

// GetUnitByID handles fetching a single unit by ID.
func (h *UnitHandler) GetUnitByID(c *gin.Context) {
	idStr := c.Param("id")
	unitID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid unit ID format.", err.Error()))
		return
	}

	unit, err := h.unitService.GetUnitByID(unitID)
	if err != nil {
		utils.LogError(err, "GetUnitByID: Error from unitService.GetUnitByID for ID "+idStr)
		if errors.Is(err, services.ErrUnitNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Unit not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch unit.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, unit)
}

// UpdateUnit handles updating a unit.
func (h *UnitHandler) UpdateUnit(c *gin.Context) {
	idStr := c.Param("id")
	unitID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid unit ID format.", err.Error()))
		return
	}

	var req services.UpdateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateUnit: Failed to bind JSON for ID "+idStr)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	unit, err := h.unitService.UpdateUnit(unitID, req)
	if err != nil {
		utils.LogError(err, "UpdateUnit: Error from unitService.UpdateUnit for ID "+idStr)
		if errors.Is(err, services.ErrUnitNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Unit not found to update.", err.Error()))
		} else if errors.Is(err, services.ErrRoomForUnitNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Room for unit not found.", err.Error()))
		} else if errors.Is(err, services.ErrUnitValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update unit.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, unit)
}

// DeleteUnit handles deleting a unit.
func (h *UnitHandler) DeleteUnit(c *gin.Context) {
	idStr := c.Param("id")
	unitID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid unit ID format.", err.Error()))
		return
	}

	err = h.unitService.DeleteUnit(unitID)
	if err != nil {
		utils.LogError(err, "DeleteUnit: Error from unitService.DeleteUnit for ID "+idStr)
		if errors.Is(err, services.ErrUnitNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Unit not found to delete.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete unit.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Unit deleted successfully"})
}

// GetUnitGames handles listing the games installed on a unit.
func (h *UnitHandler) GetUnitGames(c *gin.Context) {
	idStr := c.Param("id")
	unitID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid unit ID format.", err.Error()))
		return
	}

	installs, err := h.unitService.GetUnitGames(unitID)
	if err != nil {
		utils.LogError(err, "GetUnitGames: Error from unitService.GetUnitGames for ID "+idStr)
		if errors.Is(err, services.ErrUnitNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Unit not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch unit games.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, installs)
}

// InstallGame handles installing a game on a unit.
func (h *UnitHandler) InstallGame(c *gin.Context) {
	var req services.InstallGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "InstallGame: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	install, err := h.unitService.InstallGame(req)
	if err != nil {
		utils.LogError(err, "InstallGame: Error from unitService.InstallGame")
		if errors.Is(err, services.ErrUnitNotFound) || errors.Is(err, services.ErrGameForUnitNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Unit or game not found.", err.Error()))
		} else if errors.Is(err, services.ErrGameAlreadyInstalled) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Game sudah terinstall di unit ini.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to install game.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, install)
}

// UninstallGame handles removing a game install by its install ID.
func (h *UnitHandler) UninstallGame(c *gin.Context) {
	idStr := c.Param("id")
	installID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid install ID format.", err.Error()))
		return
	}

	err = h.unitService.UninstallGame(installID)
	if err != nil {
		utils.LogError(err, "UninstallGame: Error from unitService.UninstallGame for ID "+idStr)
		if errors.Is(err, services.ErrInstallNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Game install not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to uninstall game.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Game uninstalled successfully"})
}
