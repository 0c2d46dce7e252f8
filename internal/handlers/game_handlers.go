package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rental_backend/internal/services"
	"rental_backend/pkg/utils"
)

// GameHandler holds the game catalog service.
type GameHandler struct {
	gameService services.GameService
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(gs services.GameService) *GameHandler {
	return &GameHandler{gameService: gs}
}

// CreateGame handles adding a game to the catalog.
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req services.GameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateGame: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	game, err := h.gameService.CreateGame(req)
	if err != nil {
		utils.LogError(err, "CreateGame: Error from gameService.CreateGame")
		if errors.Is(err, services.ErrGameValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create game.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, game)
}

// GetGames handles listing the game catalog.
func (h *GameHandler) GetGames(c *gin.Context) {
	games, err := h.gameService.GetGames()
	if err != nil {
		utils.LogError(err, "GetGames: Error from gameService.GetGames")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch games.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, games)
}

// GetGameByID handles fetching a single game by ID.
func (h *GameHandler) GetGameByID(c *gin.Context) {
	idStr := c.Param("id")
	gameID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid game ID format.", err.Error()))
		return
	}

	game, err := h.gameService.GetGameByID(gameID)
	if err != nil {
		utils.LogError(err, "GetGameByID: Error from gameService.GetGameByID for ID "+idStr)
		if errors.Is(err, services.ErrGameNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Game not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch game.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, game)
}

// UpdateGame handles renaming a catalog game.
func (h *GameHandler) UpdateGame(c *gin.Context) {
	idStr := c.Param("id")
	gameID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid game ID format.", err.Error()))
		return
	}

	var req services.GameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateGame: Failed to bind JSON for ID "+idStr)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	game, err := h.gameService.UpdateGame(gameID, req)
	if err != nil {
		utils.LogError(err, "UpdateGame: Error from gameService.UpdateGame for ID "+idStr)
		if errors.Is(err, services.ErrGameNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Game not found to update.", err.Error()))
		} else if errors.Is(err, services.ErrGameValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update game.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, game)
}

// DeleteGame handles deleting a catalog game.
func (h *GameHandler) DeleteGame(c *gin.Context) {
	idStr := c.Param("id")
	gameID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid game ID format.", err.Error()))
		return
	}

	err = h.gameService.DeleteGame(gameID)
	if err != nil {
		utils.LogError(err, "DeleteGame: Error from gameService.DeleteGame for ID "+idStr)
		if errors.Is(err, services.ErrGameNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Game not found to delete.", err.Error()))
		} else if errors.Is(err, services.ErrGameInstalled) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Game masih terinstall di unit.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete game.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Game deleted successfully"})
}
