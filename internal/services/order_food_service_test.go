package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental_backend/internal/repositories"
)

func newOrderFoodService(db *sql.DB) OrderFoodService {
	return NewOrderFoodService(
		repositories.NewFoodRepository(db),
		repositories.NewReservationRepository(db),
		db,
	)
}

func expectReservationExists(mock sqlmock.Sqlmock, id int64, totalHarga float64) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`WHERE rv\.id_reservation = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(reservationTestColumns).AddRow(
			id, nil, int64(2), start, start.Add(2*time.Hour),
			2, "2026-09-01", totalHarga, nil, nil,
			nil, "Room VIP 1",
			nil, nil, nil, nil,
		))
}

func TestCreateOrderFood(t *testing.T) {
	t.Run("adds the food cost to the reservation total", func(t *testing.T) {
		db, mock := newServiceMockDB(t)
		service := newOrderFoodService(db)

		expectReservationExists(mock, 10, 100000)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id_food, nama_makanan, harga FROM food_list WHERE id_food = \$1`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"id_food", "nama_makanan", "harga"}).
				AddRow(int64(3), "Nasi Goreng", 15000.0))
		mock.ExpectQuery(`INSERT INTO order_food`).
			WithArgs(int64(10), int64(3), 2).
			WillReturnRows(sqlmock.NewRows([]string{"id_order"}).AddRow(int64(1)))
		mock.ExpectExec(`UPDATE reservation SET total_harga = total_harga \+ \$1`).
			WithArgs(30000.0, int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		result, err := service.CreateOrderFood(CreateOrderFoodRequest{
			ReservationID: 10,
			Items:         []OrderFoodItemRequest{{FoodID: 3, Jumlah: 2}},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Count)
		assert.Equal(t, 30000.0, result.AddedCost)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("skips items whose food id does not resolve", func(t *testing.T) {
		db, mock := newServiceMockDB(t)
		service := newOrderFoodService(db)

		expectReservationExists(mock, 10, 100000)

		mock.ExpectBegin()
		mock.ExpectQuery(`FROM food_list WHERE id_food = \$1`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"id_food", "nama_makanan", "harga"}).
				AddRow(int64(3), "Nasi Goreng", 15000.0))
		mock.ExpectQuery(`INSERT INTO order_food`).
			WithArgs(int64(10), int64(3), 1).
			WillReturnRows(sqlmock.NewRows([]string{"id_order"}).AddRow(int64(1)))
		mock.ExpectQuery(`FROM food_list WHERE id_food = \$1`).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectExec(`UPDATE reservation SET total_harga = total_harga \+ \$1`).
			WithArgs(15000.0, int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		result, err := service.CreateOrderFood(CreateOrderFoodRequest{
			ReservationID: 10,
			Items: []OrderFoodItemRequest{
				{FoodID: 3},
				{FoodID: 99},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Count)
		assert.Equal(t, 15000.0, result.AddedCost)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects an empty item list", func(t *testing.T) {
		db, _ := newServiceMockDB(t)
		service := newOrderFoodService(db)

		_, err := service.CreateOrderFood(CreateOrderFoodRequest{ReservationID: 10})
		assert.ErrorIs(t, err, ErrOrderFoodValidation)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		db, mock := newServiceMockDB(t)
		service := newOrderFoodService(db)

		mock.ExpectQuery(`WHERE rv\.id_reservation = \$1`).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		_, err := service.CreateOrderFood(CreateOrderFoodRequest{
			ReservationID: 99,
			Items:         []OrderFoodItemRequest{{FoodID: 3}},
		})
		assert.ErrorIs(t, err, ErrOrderFoodReservation)
	})
}
