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

// --- Custom Service Errors for Customer ---
var (
	ErrCustomerNotFound            = errors.New("customer not found")
	ErrCustomerValidation          = errors.New("customer data validation error")
	ErrMembershipForCustomerAbsent = errors.New("membership_id tidak ditemukan")
)

// --- Customer DTOs ---
type CreateCustomerRequest struct {
	Nama         string  `json:"nama" binding:"required"`
	NoHP         *string `json:"no_hp"`
	MembershipID int64   `json:"membership_id" binding:"required"`
}

type UpdateCustomerRequest struct {
	Nama         *string `json:"nama"`
	NoHP         *string `json:"no_hp"`
	MembershipID *int64  `json:"membership_id"`
}

// --- CustomerService Interface ---
type CustomerService interface {
	CreateCustomer(req CreateCustomerRequest) (*models.Customer, error)
	GetCustomerByID(customerID int64) (*models.Customer, error)
	GetCustomers(page, pageSize int, search string, all bool) ([]models.Customer, int, error)
	UpdateCustomer(customerID int64, req UpdateCustomerRequest) (*models.Customer, error)
	DeleteCustomer(customerID int64) error
}

// --- customerService Implementation ---
type customerService struct {
	customerRepo   repositories.CustomerRepository
	membershipRepo repositories.MembershipRepository
	db             *sql.DB
}

// NewCustomerService creates a new instance of CustomerService.
func NewCustomerService(
	cr repositories.CustomerRepository,
	mr repositories.MembershipRepository,
	db *sql.DB,
) CustomerService {
	return &customerService{customerRepo: cr, membershipRepo: mr, db: db}
}

func (s *customerService) validateMembership(membershipID int64) error {
	_, err := s.membershipRepo.GetMembershipByID(membershipID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: ID %d", ErrMembershipForCustomerAbsent, membershipID)
		}
		return fmt.Errorf("failed to validate membership for customer: %w", err)
	}
	return nil
}

func (s *customerService) CreateCustomer(req CreateCustomerRequest) (*models.Customer, error) {
	if strings.TrimSpace(req.Nama) == "" {
		return nil, fmt.Errorf("%w: nama is required", ErrCustomerValidation)
	}
	if err := s.validateMembership(req.MembershipID); err != nil {
		return nil, err
	}

	customer := &models.Customer{
		Nama:         strings.TrimSpace(req.Nama),
		NoHP:         req.NoHP,
		MembershipID: &req.MembershipID,
	}
	if _, err := s.customerRepo.CreateCustomer(s.db, customer); err != nil {
		if errors.Is(err, repositories.ErrForeignKey) {
			return nil, fmt.Errorf("%w: ID %d", ErrMembershipForCustomerAbsent, req.MembershipID)
		}
		return nil, fmt.Errorf("failed to create customer in repository: %w", err)
	}
	return s.customerRepo.GetCustomerByID(customer.ID)
}

func (s *customerService) GetCustomerByID(customerID int64) (*models.Customer, error) {
	customer, err := s.customerRepo.GetCustomerByID(customerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer by ID: %w", err)
	}
	return customer, nil
}

func (s *customerService) GetCustomers(page, pageSize int, search string, all bool) ([]models.Customer, int, error) {
	if all {
		page, pageSize = 0, 0
	} else {
		page, pageSize = clampPage(page, pageSize)
	}

	customers, totalCount, err := s.customerRepo.GetCustomers(page, pageSize, utils.NormalizeSearch(search))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get customers: %w", err)
	}
	return customers, totalCount, nil
}

func (s *customerService) UpdateCustomer(customerID int64, req UpdateCustomerRequest) (*models.Customer, error) {
	customer, err := s.customerRepo.GetCustomerByID(customerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to find customer for update: %w", err)
	}

	if req.Nama != nil {
		if strings.TrimSpace(*req.Nama) == "" {
			return nil, fmt.Errorf("%w: nama must not be empty", ErrCustomerValidation)
		}
		customer.Nama = strings.TrimSpace(*req.Nama)
	}
	if req.NoHP != nil {
		customer.NoHP = req.NoHP
	}
	if req.MembershipID != nil {
		if err = s.validateMembership(*req.MembershipID); err != nil {
			return nil, err
		}
		customer.MembershipID = req.MembershipID
	}

	if err = s.customerRepo.UpdateCustomer(s.db, customer); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		if errors.Is(err, repositories.ErrForeignKey) {
			return nil, fmt.Errorf("%w: ID %d", ErrMembershipForCustomerAbsent, *req.MembershipID)
		}
		return nil, fmt.Errorf("failed to update customer in repository: %w", err)
	}
	return s.customerRepo.GetCustomerByID(customerID)
}

func (s *customerService) DeleteCustomer(customerID int64) error {
	err := s.customerRepo.DeleteCustomer(s.db, customerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

// clampPage normalizes list paging: page starts at 1, page size stays in [1, 100].
func clampPage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
