package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"rental_backend/internal/models"
)

// FoodRepository defines the interface for the food catalog and food orders.
type FoodRepository interface {
	CreateFood(executor SQLExecutor, food *models.FoodList) (int64, error)
	GetFoodByID(id int64) (*models.FoodList, error)
	GetFoods() ([]models.FoodList, error)
	UpdateFood(executor SQLExecutor, food *models.FoodList) error
	DeleteFood(executor SQLExecutor, id int64) error

	CreateOrderFood(executor SQLExecutor, order *models.OrderFood) (int64, error)
	GetOrderFoodByReservation(reservationID int64) ([]models.OrderFood, error)
	DeleteOrderFoodByRoom(executor SQLExecutor, roomID int64) error
}

type foodRepository struct {
	db *sql.DB
}

// NewFoodRepository creates a new instance of FoodRepository.
func NewFoodRepository(db *sql.DB) FoodRepository {
	return &foodRepository{db: db}
}

func (r *foodRepository) CreateFood(executor SQLExecutor, food *models.FoodList) (int64, error) {
	query := `INSERT INTO food_list (nama_makanan, harga) VALUES ($1, $2) RETURNING id_food`
	err := executor.QueryRow(query, food.NamaMakanan, food.Harga).Scan(&food.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating food: %v", ErrDatabaseError, err)
	}
	return food.ID, nil
}

func (r *foodRepository) GetFoodByID(id int64) (*models.FoodList, error) {
	var food models.FoodList
	err := r.db.QueryRow(`SELECT id_food, nama_makanan, harga FROM food_list WHERE id_food = $1`, id).
		Scan(&food.ID, &food.NamaMakanan, &food.Harga)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting food by ID %d: %v", ErrDatabaseError, id, err)
	}
	return &food, nil
}

func (r *foodRepository) GetFoods() ([]models.FoodList, error) {
	rows, err := r.db.Query(`SELECT id_food, nama_makanan, harga FROM food_list ORDER BY id_food ASC`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying foods: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	foods := []models.FoodList{}
	for rows.Next() {
		var food models.FoodList
		if err := rows.Scan(&food.ID, &food.NamaMakanan, &food.Harga); err != nil {
			return nil, fmt.Errorf("%w: scanning food: %v", ErrDatabaseError, err)
		}
		foods = append(foods, food)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating food rows: %v", ErrDatabaseError, err)
	}
	return foods, nil
}

func (r *foodRepository) UpdateFood(executor SQLExecutor, food *models.FoodList) error {
	result, err := executor.Exec(`UPDATE food_list SET nama_makanan = $1, harga = $2 WHERE id_food = $3`,
		food.NamaMakanan, food.Harga, food.ID)
	if err != nil {
		return fmt.Errorf("%w: updating food ID %d: %v", ErrDatabaseError, food.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for food ID %d: %v", ErrDatabaseError, food.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *foodRepository) DeleteFood(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM food_list WHERE id_food = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting food ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for deleting food ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *foodRepository) CreateOrderFood(executor SQLExecutor, order *models.OrderFood) (int64, error) {
	query := `INSERT INTO order_food (reservation_id, food_id, jumlah)
	          VALUES ($1, $2, $3)
	          RETURNING id_order`
	err := executor.QueryRow(query, order.ReservationID, order.FoodID, order.Jumlah).Scan(&order.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating order_food: %v", ErrDatabaseError, err)
	}
	return order.ID, nil
}

func (r *foodRepository) GetOrderFoodByReservation(reservationID int64) ([]models.OrderFood, error) {
	query := `SELECT o.id_order, o.reservation_id, o.food_id, o.jumlah,
	                 f.id_food, f.nama_makanan, f.harga
	          FROM order_food o
	          JOIN food_list f ON o.food_id = f.id_food
	          WHERE o.reservation_id = $1
	          ORDER BY o.id_order ASC`

	rows, err := r.db.Query(query, reservationID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying order_food for reservation ID %d: %v", ErrDatabaseError, reservationID, err)
	}
	defer rows.Close()

	orders := []models.OrderFood{}
	for rows.Next() {
		var order models.OrderFood
		var food models.FoodList
		if err := rows.Scan(
			&order.ID, &order.ReservationID, &order.FoodID, &order.Jumlah,
			&food.ID, &food.NamaMakanan, &food.Harga,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning order_food: %v", ErrDatabaseError, err)
		}
		order.Food = &food
		orders = append(orders, order)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order_food rows: %v", ErrDatabaseError, err)
	}
	return orders, nil
}

// DeleteOrderFoodByRoom removes the food orders of every reservation in a
// room. Part of the room cascade delete.
func (r *foodRepository) DeleteOrderFoodByRoom(executor SQLExecutor, roomID int64) error {
	query := `DELETE FROM order_food
	          WHERE reservation_id IN (SELECT id_reservation FROM reservation WHERE id_room = $1)`
	if _, err := executor.Exec(query, roomID); err != nil {
		return fmt.Errorf("%w: deleting order_food for room ID %d: %v", ErrDatabaseError, roomID, err)
	}
	return nil
}
