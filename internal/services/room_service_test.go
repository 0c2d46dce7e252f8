package services

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental_backend/internal/repositories"
)

func newRoomService(db *sql.DB) RoomService {
	return NewRoomService(
		repositories.NewRoomRepository(db),
		repositories.NewUnitRepository(db),
		repositories.NewReservationRepository(db),
		repositories.NewFoodRepository(db),
		db,
	)
}

func TestCreateRoom(t *testing.T) {
	t.Run("creates room and price in one transaction", func(t *testing.T) {
		db, mock := newServiceMockDB(t)
		service := newRoomService(db)

		harga := 50000.0
		kapasitas := 4

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO room`).
			WithArgs("Room VIP 1", "vip", kapasitas).
			WillReturnRows(sqlmock.NewRows([]string{"id_room"}).AddRow(int64(2)))
		mock.ExpectExec(`UPDATE price_list SET harga_per_jam = \$1 WHERE id_room = \$2`).
			WithArgs(harga, int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`INSERT INTO price_list \(id_room, harga_per_jam\) VALUES \(\$1, \$2\)`).
			WithArgs(int64(2), harga).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()
		expectRoomByID(mock, 2, "Room VIP 1")

		room, err := service.CreateRoom(CreateRoomRequest{
			NamaRoom:    "Room VIP 1",
			TipeRoom:    "vip",
			Kapasitas:   &kapasitas,
			HargaPerJam: &harga,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), room.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects an unknown room type", func(t *testing.T) {
		db, _ := newServiceMockDB(t)
		service := newRoomService(db)

		_, err := service.CreateRoom(CreateRoomRequest{NamaRoom: "Room X", TipeRoom: "suite"})
		assert.ErrorIs(t, err, ErrRoomValidation)
	})
}

// Deleting a room must remove its dependents in order inside one transaction:
// prices, food orders, reservations, game installs, units, then the room.
func TestDeleteRoom_CascadeOrder(t *testing.T) {
	db, mock := newServiceMockDB(t)
	service := newRoomService(db)

	roomID := int64(2)
	expectRoomByID(mock, roomID, "Room VIP 1")

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM price_list WHERE id_room = \$1`).
		WithArgs(roomID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM order_food WHERE reservation_id IN \(SELECT id_reservation FROM reservation WHERE id_room = \$1\)`).
		WithArgs(roomID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM reservation WHERE id_room = \$1`).
		WithArgs(roomID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM unit_game WHERE id_unit IN \(SELECT id_unit FROM unit WHERE id_room = \$1\)`).
		WithArgs(roomID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM unit WHERE id_room = \$1`).
		WithArgs(roomID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM room WHERE id_room = \$1`).
		WithArgs(roomID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, service.DeleteRoom(roomID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRoom_NotFound(t *testing.T) {
	db, mock := newServiceMockDB(t)
	service := newRoomService(db)

	mock.ExpectQuery(`WHERE r\.id_room = \$1`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	assert.ErrorIs(t, service.DeleteRoom(99), ErrRoomNotFound)
}
