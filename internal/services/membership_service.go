package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"rental_backend/internal/models"
	"rental_backend/internal/repositories"
	"rental_backend/pkg/utils"
)

var (
	ErrMembershipNotFound   = errors.New("membership not found")
	ErrMembershipValidation = errors.New("membership data validation error")
	ErrMembershipInUse      = errors.New("membership is still referenced by customers")
)

type CreateMembershipRequest struct {
	NamaTier     string   `json:"nama_tier" binding:"required"`
	DiskonPersen *float64 `json:"diskon_persen"`
	PoinBonus    *int     `json:"poin_bonus"`
}

type UpdateMembershipRequest struct {
	NamaTier     *string  `json:"nama_tier"`
	DiskonPersen *float64 `json:"diskon_persen"`
	PoinBonus    *int     `json:"poin_bonus"`
}

type MembershipService interface {
	CreateMembership(req CreateMembershipRequest) (*models.Membership, error)
	GetMembershipByID(membershipID int64) (*models.Membership, error)
	GetMemberships(page, pageSize int, search string, all bool) ([]models.Membership, int, error)
	UpdateMembership(membershipID int64, req UpdateMembershipRequest) (*models.Membership, error)
	DeleteMembership(membershipID int64) error
}

type membershipService struct {
	membershipRepo repositories.MembershipRepository
	db             *sql.DB
}

// NewMembershipService creates a new instance of MembershipService.
func NewMembershipService(mr repositories.MembershipRepository, db *sql.DB) MembershipService {
	return &membershipService{membershipRepo: mr, db: db}
}

func (s *membershipService) CreateMembership(req CreateMembershipRequest) (*models.Membership, error) {
	if strings.TrimSpace(req.NamaTier) == "" {
		return nil, fmt.Errorf("%w: nama_tier is required", ErrMembershipValidation)
	}
	if req.DiskonPersen != nil && (*req.DiskonPersen < 0 || *req.DiskonPersen > 100) {
		return nil, fmt.Errorf("%w: diskon_persen must be between 0 and 100", ErrMembershipValidation)
	}

	membership := &models.Membership{
		NamaTier:     strings.TrimSpace(req.NamaTier),
		DiskonPersen: req.DiskonPersen,
		PoinBonus:    req.PoinBonus,
	}
	if _, err := s.membershipRepo.CreateMembership(s.db, membership); err != nil {
		return nil, fmt.Errorf("failed to create membership in repository: %w", err)
	}
	return membership, nil
}

func (s *membershipService) GetMembershipByID(membershipID int64) (*models.Membership, error) {
	membership, err := s.membershipRepo.GetMembershipByID(membershipID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, fmt.Errorf("failed to get membership by ID: %w", err)
	}
	return membership, nil
}

func (s *membershipService) GetMemberships(page, pageSize int, search string, all bool) ([]models.Membership, int, error) {
	if all {
		page, pageSize = 0, 0
	} else {
		page, pageSize = clampPage(page, pageSize)
	}

	memberships, totalCount, err := s.membershipRepo.GetMemberships(page, pageSize, utils.NormalizeSearch(search))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get memberships: %w", err)
	}
	return memberships, totalCount, nil
}

func (s *membershipService) UpdateMembership(membershipID int64, req UpdateMembershipRequest) (*models.Membership, error) {
	membership, err := s.membershipRepo.GetMembershipByID(membershipID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, fmt.Errorf("failed to find membership for update: %w", err)
	}

	if req.NamaTier != nil {
		if strings.TrimSpace(*req.NamaTier) == "" {
			return nil, fmt.Errorf("%w: nama_tier must not be empty", ErrMembershipValidation)
		}
		membership.NamaTier = strings.TrimSpace(*req.NamaTier)
	}
	if req.DiskonPersen != nil {
		if *req.DiskonPersen < 0 || *req.DiskonPersen > 100 {
			return nil, fmt.Errorf("%w: diskon_persen must be between 0 and 100", ErrMembershipValidation)
		}
		membership.DiskonPersen = req.DiskonPersen
	}
	if req.PoinBonus != nil {
		membership.PoinBonus = req.PoinBonus
	}

	if err = s.membershipRepo.UpdateMembership(s.db, membership); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, fmt.Errorf("failed to update membership in repository: %w", err)
	}
	return membership, nil
}

func (s *membershipService) DeleteMembership(membershipID int64) error {
	err := s.membershipRepo.DeleteMembership(s.db, membershipID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMembershipNotFound
		}
		if errors.Is(err, repositories.ErrForeignKey) {
			return ErrMembershipInUse
		}
		return fmt.Errorf("failed to delete membership: %w", err)
	}
	return nil
}
