package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"rental_backend/internal/models"
	"rental_backend/internal/repositories"
)

var (
	ErrFoodNotFound   = errors.New("food not found")
	ErrFoodValidation = errors.New("food data validation error")
)

type FoodRequest struct {
	NamaMakanan string  `json:"nama_makanan" binding:"required"`
	Harga       float64 `json:"harga"`
}

type FoodService interface {
	CreateFood(req FoodRequest) (*models.FoodList, error)
	GetFoodByID(foodID int64) (*models.FoodList, error)
	GetFoods() ([]models.FoodList, error)
	UpdateFood(foodID int64, req FoodRequest) (*models.FoodList, error)
	DeleteFood(foodID int64) error
}

type foodService struct {
	foodRepo repositories.FoodRepository
	db       *sql.DB
}

// NewFoodService creates a new instance of FoodService.
func NewFoodService(fr repositories.FoodRepository, db *sql.DB) FoodService {
	return &foodService{foodRepo: fr, db: db}
}

func (s *foodService) validate(req FoodRequest) error {
	if strings.TrimSpace(req.NamaMakanan) == "" {
		return fmt.Errorf("%w: nama_makanan is required", ErrFoodValidation)
	}
	if req.Harga < 0 {
		return fmt.Errorf("%w: harga must not be negative", ErrFoodValidation)
	}
	return nil
}

func (s *foodService) CreateFood(req FoodRequest) (*models.FoodList, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	food := &models.FoodList{NamaMakanan: strings.TrimSpace(req.NamaMakanan), Harga: req.Harga}
	if _, err := s.foodRepo.CreateFood(s.db, food); err != nil {
		return nil, fmt.Errorf("failed to create food in repository: %w", err)
	}
	return food, nil
}

func (s *foodService) GetFoodByID(foodID int64) (*models.FoodList, error) {
	food, err := s.foodRepo.GetFoodByID(foodID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, fmt.Errorf("failed to get food by ID: %w", err)
	}
	return food, nil
}

func (s *foodService) GetFoods() ([]models.FoodList, error) {
	foods, err := s.foodRepo.GetFoods()
	if err != nil {
		return nil, fmt.Errorf("failed to get foods: %w", err)
	}
	return foods, nil
}

func (s *foodService) UpdateFood(foodID int64, req FoodRequest) (*models.FoodList, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	food, err := s.foodRepo.GetFoodByID(foodID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, fmt.Errorf("failed to find food for update: %w", err)
	}

	food.NamaMakanan = strings.TrimSpace(req.NamaMakanan)
	food.Harga = req.Harga
	if err = s.foodRepo.UpdateFood(s.db, food); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, fmt.Errorf("failed to update food in repository: %w", err)
	}
	return food, nil
}

func (s *foodService) DeleteFood(foodID int64) error {
	err := s.foodRepo.DeleteFood(s.db, foodID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrFoodNotFound
		}
		return fmt.Errorf("failed to delete food: %w", err)
	}
	return nil
}
