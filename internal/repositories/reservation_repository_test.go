package repositories

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental_backend/internal/models"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var reservationColumns = []string{
	"id_reservation", "customer_id", "id_room", "waktu_mulai", "waktu_selesai",
	"durasi", "tanggal_reservasi", "total_harga", "payment_id", "handled_by",
	"nama", "nama_room",
	"id_payment", "total_bayar", "tanggal_bayar", "payment_method",
}

func TestCountOverlapping(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReservationRepository(db)

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	t.Run("overlap found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM reservation WHERE id_room = \$1 AND waktu_mulai < \$3 AND waktu_selesai > \$2`).
			WithArgs(int64(2), start, end).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		count, err := repo.CountOverlapping(2, start, end, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("adjacent bookings do not conflict", func(t *testing.T) {
		// The back-to-back booking [12:00, 14:00) after [10:00, 12:00) yields
		// zero rows under the half-open predicate.
		nextStart := end
		nextEnd := end.Add(2 * time.Hour)
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM reservation`).
			WithArgs(int64(2), nextStart, nextEnd).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		count, err := repo.CountOverlapping(2, nextStart, nextEnd, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("excludes the reservation being updated", func(t *testing.T) {
		excludeID := int64(7)
		mock.ExpectQuery(`AND id_reservation != \$4`).
			WithArgs(int64(2), start, end, excludeID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		count, err := repo.CountOverlapping(2, start, end, &excludeID)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetReservationByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReservationRepository(db)

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	t.Run("joins customer, room, and payment", func(t *testing.T) {
		rows := sqlmock.NewRows(reservationColumns).AddRow(
			int64(10), int64(5), int64(2), start, end,
			2, "2026-09-01", 100000.0, int64(7), nil,
			"Budi", "Room VIP 1",
			int64(7), 100000.0, "2026-09-01", "CASH",
		)
		mock.ExpectQuery(`WHERE rv\.id_reservation = \$1`).
			WithArgs(int64(10)).
			WillReturnRows(rows)

		reservation, err := repo.GetReservationByID(10)
		require.NoError(t, err)
		assert.Equal(t, int64(10), reservation.ID)
		require.NotNil(t, reservation.CustomerName)
		assert.Equal(t, "Budi", *reservation.CustomerName)
		require.NotNil(t, reservation.NamaRoom)
		assert.Equal(t, "Room VIP 1", *reservation.NamaRoom)
		require.NotNil(t, reservation.Payment)
		assert.Equal(t, 100000.0, reservation.Payment.TotalBayar)
	})

	t.Run("guest booking without payment", func(t *testing.T) {
		rows := sqlmock.NewRows(reservationColumns).AddRow(
			int64(11), nil, int64(2), start, end,
			2, "2026-09-01", 100000.0, nil, nil,
			nil, "Room VIP 1",
			nil, nil, nil, nil,
		)
		mock.ExpectQuery(`WHERE rv\.id_reservation = \$1`).
			WithArgs(int64(11)).
			WillReturnRows(rows)

		reservation, err := repo.GetReservationByID(11)
		require.NoError(t, err)
		assert.Nil(t, reservation.CustomerID)
		assert.Nil(t, reservation.CustomerName)
		assert.Nil(t, reservation.Payment)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`WHERE rv\.id_reservation = \$1`).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetReservationByID(99)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetReservations_UnpaidFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReservationRepository(db)

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	columns := append(append([]string{}, reservationColumns...), "total_count")
	rows := sqlmock.NewRows(columns).AddRow(
		int64(12), nil, int64(2), start, start.Add(time.Hour),
		1, "2026-09-01", 50000.0, nil, nil,
		nil, "Room Reguler 1",
		nil, nil, nil, nil,
		4,
	)

	mock.ExpectQuery(`WHERE \(p\.id_payment IS NULL OR p\.total_bayar < rv\.total_harga\) ORDER BY rv\.id_reservation DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(10, 0).
		WillReturnRows(rows)

	reservations, totalCount, err := repo.GetReservations(models.ReservationFilters{Unpaid: true, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, reservations, 1)
	assert.Equal(t, 4, totalCount)
}

func TestIncrementTotal(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReservationRepository(db)

	t.Run("adds the delta", func(t *testing.T) {
		mock.ExpectExec(`UPDATE reservation SET total_harga = total_harga \+ \$1 WHERE id_reservation = \$2`).
			WithArgs(30000.0, int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.IncrementTotal(db, 10, 30000))
	})

	t.Run("missing reservation", func(t *testing.T) {
		mock.ExpectExec(`UPDATE reservation SET total_harga`).
			WithArgs(30000.0, int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.IncrementTotal(db, 99, 30000), ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReservation_RemovesOrdersFirst(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReservationRepository(db)

	mock.ExpectExec(`DELETE FROM order_food WHERE reservation_id = \$1`).
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM reservation WHERE id_reservation = \$1`).
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteReservation(db, 10))
	assert.NoError(t, mock.ExpectationsWereMet())
}
