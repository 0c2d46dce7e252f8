package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rental_backend/internal/middleware"
	"rental_backend/internal/services"
	"rental_backend/pkg/utils"
)

// AuthHandler holds the auth service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// setTokenCookies stores both tokens as httpOnly cookies scoped to the site.
func setTokenCookies(c *gin.Context, tokens services.TokenPair) {
	c.SetCookie(utils.AccessTokenCookie, tokens.AccessToken, int(utils.AccessTokenTTL.Seconds()), "/", "", false, true)
	c.SetCookie(utils.RefreshTokenCookie, tokens.RefreshToken, int(utils.RefreshTokenTTL.Seconds()), "/", "", false, true)
}

func clearTokenCookies(c *gin.Context) {
	c.SetCookie(utils.AccessTokenCookie, "", -1, "/", "", false, true)
	c.SetCookie(utils.RefreshTokenCookie, "", -1, "/", "", false, true)
}

// Login authenticates by username or email and sets the token cookies.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "Login: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	result, err := h.authService.Login(req)
	if err != nil {
		utils.LogError(err, "Login: Error from authService.Login")
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnprocessableEntity, utils.ErrCodeUnprocessable, "Invalid credentials", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to log in.", "Internal error"))
		}
		return
	}

	setTokenCookies(c, result.Tokens)
	c.JSON(http.StatusOK, gin.H{
		"user":          result.User,
		"access_token":  result.Tokens.AccessToken,
		"refresh_token": result.Tokens.RefreshToken,
	})
}

// Refresh rotates both tokens from the refresh cookie or bearer header.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, _ := c.Cookie(utils.RefreshTokenCookie)
	if refreshToken == "" {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			refreshToken = body.RefreshToken
		}
	}
	if refreshToken == "" {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Refresh token required.", "missing refresh token"))
		return
	}

	result, err := h.authService.Refresh(refreshToken)
	if err != nil {
		utils.LogError(err, "Refresh: Error from authService.Refresh")
		if errors.Is(err, services.ErrInvalidToken) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid or expired refresh token.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to refresh tokens.", "Internal error"))
		}
		return
	}

	setTokenCookies(c, result.Tokens)
	c.JSON(http.StatusOK, gin.H{
		"user":          result.User,
		"access_token":  result.Tokens.AccessToken,
		"refresh_token": result.Tokens.RefreshToken,
	})
}

// Logout clears both token cookies.
func (h *AuthHandler) Logout(c *gin.Context) {
	clearTokenCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Profile returns the authenticated user's row.
func (h *AuthHandler) Profile(c *gin.Context) {
	value, exists := c.Get(middleware.ContextUserIDKey)
	userID, ok := value.(int64)
	if !exists || !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authentication required.", "missing user id in context"))
		return
	}

	user, err := h.authService.GetProfile(userID)
	if err != nil {
		utils.LogError(err, "Profile: Error from authService.GetProfile")
		if errors.Is(err, services.ErrUserNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "User not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch profile.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, user)
}
