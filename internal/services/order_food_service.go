package services

import (
	"database/sql"
	"errors"
	"fmt"

	"rental_backend/internal/models"
	"rental_backend/internal/repositories"
)

// --- Custom Service Errors for Food Orders ---
var (
	ErrOrderFoodValidation  = errors.New("order food data validation error")
	ErrOrderFoodReservation = errors.New("reservation for food order not found")
)

// --- Food Order DTOs ---

type OrderFoodItemRequest struct {
	FoodID int64 `json:"food_id" binding:"required"`
	Jumlah int   `json:"jumlah"`
}

type CreateOrderFoodRequest struct {
	ReservationID int64                  `json:"reservation_id" binding:"required"`
	Items         []OrderFoodItemRequest `json:"items" binding:"required"`
}

type CreateOrderFoodResult struct {
	Count     int     `json:"count"`
	AddedCost float64 `json:"added_cost"`
}

// --- OrderFoodService Interface ---
type OrderFoodService interface {
	CreateOrderFood(req CreateOrderFoodRequest) (*CreateOrderFoodResult, error)
	GetOrderFoodByReservation(reservationID int64) ([]models.OrderFood, error)
}

// --- orderFoodService Implementation ---
type orderFoodService struct {
	foodRepo        repositories.FoodRepository
	reservationRepo repositories.ReservationRepository
	db              *sql.DB
}

// NewOrderFoodService creates a new instance of OrderFoodService.
func NewOrderFoodService(
	fr repositories.FoodRepository,
	rr repositories.ReservationRepository,
	db *sql.DB,
) OrderFoodService {
	return &orderFoodService{foodRepo: fr, reservationRepo: rr, db: db}
}

// CreateOrderFood attaches food orders to a reservation. Items whose food id
// does not resolve in the catalog are skipped. The order rows and the matching
// increase of the reservation total commit in one transaction.
func (s *orderFoodService) CreateOrderFood(req CreateOrderFoodRequest) (*CreateOrderFoodResult, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: items must not be empty", ErrOrderFoodValidation)
	}

	if _, err := s.reservationRepo.GetReservationByID(req.ReservationID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrOrderFoodReservation, req.ReservationID)
		}
		return nil, fmt.Errorf("failed to validate reservation for food order: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction for food order: %w", err)
	}
	defer tx.Rollback()

	inserted := 0
	addedCost := 0.0
	for _, item := range req.Items {
		jumlah := item.Jumlah
		if jumlah <= 0 {
			jumlah = 1
		}

		food, foodErr := s.foodRepo.GetFoodByID(item.FoodID)
		if foodErr != nil {
			if errors.Is(foodErr, repositories.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to resolve food ID %d: %w", item.FoodID, foodErr)
		}

		order := &models.OrderFood{
			ReservationID: req.ReservationID,
			FoodID:        item.FoodID,
			Jumlah:        jumlah,
		}
		if _, orderErr := s.foodRepo.CreateOrderFood(tx, order); orderErr != nil {
			return nil, fmt.Errorf("failed to create food order row: %w", orderErr)
		}
		inserted++
		addedCost += food.Harga * float64(jumlah)
	}

	if addedCost > 0 {
		if err = s.reservationRepo.IncrementTotal(tx, req.ReservationID, addedCost); err != nil {
			return nil, fmt.Errorf("failed to add food cost to reservation total: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit food order: %w", err)
	}
	return &CreateOrderFoodResult{Count: inserted, AddedCost: addedCost}, nil
}

func (s *orderFoodService) GetOrderFoodByReservation(reservationID int64) ([]models.OrderFood, error) {
	orders, err := s.foodRepo.GetOrderFoodByReservation(reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get food orders for reservation: %w", err)
	}
	return orders, nil
}
