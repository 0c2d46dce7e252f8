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

// MembershipHandler holds the membership service.
type MembershipHandler struct {
	membershipService services.MembershipService
}

// NewMembershipHandler creates a new MembershipHandler.
func NewMembershipHandler(ms services.MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipService: ms}
}

// CreateMembership handles the creation of a new membership tier.
func (h *MembershipHandler) CreateMembership(c *gin.Context) {
	var req services.CreateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateMembership: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	membership, err := h.membershipService.CreateMembership(req)
	if err != nil {
		utils.LogError(err, "CreateMembership: Error from membershipService.CreateMembership")
		if errors.Is(err, services.ErrMembershipValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create membership.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, membership)
}

// GetMemberships handles fetching membership tiers with pagination and search.
func (h *MembershipHandler) GetMemberships(c *gin.Context) {
	params := parseListParams(c)

	memberships, totalCount, err := h.membershipService.GetMemberships(params.Page, params.Limit, params.Search, params.All)
	if err != nil {
		utils.LogError(err, "GetMemberships: Error from membershipService.GetMemberships")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch memberships.", "Internal error"))
		return
	}
	if memberships == nil {
		memberships = []models.Membership{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data": memberships,
		"meta": params.listMeta(totalCount, len(memberships)),
	})
}

// GetMembershipByID handles fetching a single membership tier by ID.
func (h *MembershipHandler) GetMembershipByID(c *gin.Context) {
	idStr := c.Param("id")
	membershipID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid membership ID format.", err.Error()))
		return
	}

	membership, err := h.membershipService.GetMembershipByID(membershipID)
	if err != nil {
		utils.LogError(err, "GetMembershipByID: Error from membershipService.GetMembershipByID for ID "+idStr)
		if errors.Is(err, services.ErrMembershipNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Membership not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch membership.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, membership)
}

// UpdateMembership handles updating a membership tier.
func (h *MembershipHandler) UpdateMembership(c *gin.Context) {
	idStr := c.Param("id")
	membershipID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid membership ID format.", err.Error()))
		return
	}

	var req services.UpdateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateMembership: Failed to bind JSON for ID "+idStr)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	membership, err := h.membershipService.UpdateMembership(membershipID, req)
	if err != nil {
		utils.LogError(err, "UpdateMembership: Error from membershipService.UpdateMembership for ID "+idStr)
		if errors.Is(err, services.ErrMembershipNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Membership not found to update.", err.Error()))
		} else if errors.Is(err, services.ErrMembershipValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update membership.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, membership)
}

// DeleteMembership handles deleting a membership tier.
func (h *MembershipHandler) DeleteMembership(c *gin.Context) {
	idStr := c.Param("id")
	membershipID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid membership ID format.", err.Error()))
		return
	}

	err = h.membershipService.DeleteMembership(membershipID)
	if err != nil {
		utils.LogError(err, "DeleteMembership: Error from membershipService.DeleteMembership for ID "+idStr)
		if errors.Is(err, services.ErrMembershipNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Membership not found to delete.", err.Error()))
		} else if errors.Is(err, services.ErrMembershipInUse) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Membership masih digunakan oleh customer.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete membership.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Membership deleted successfully"})
}
