package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental_backend/internal/models"
	"rental_backend/internal/repositories"
)

func newServiceMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newReservationService(db *sql.DB) ReservationService {
	return NewReservationService(
		repositories.NewReservationRepository(db),
		repositories.NewCustomerRepository(db),
		repositories.NewRoomRepository(db),
		repositories.NewPaymentRepository(db),
		repositories.NewFoodRepository(db),
		db,
	)
}

var reservationTestColumns = []string{
	"id_reservation", "customer_id", "id_room", "waktu_mulai", "waktu_selesai",
	"durasi", "tanggal_reservasi", "total_harga", "payment_id", "handled_by",
	"nama", "nama_room",
	"id_payment", "total_bayar", "tanggal_bayar", "payment_method",
}

var customerTestColumns = []string{
	"id_customer", "nama", "no_hp", "membership_id",
	"m_id_membership", "nama_tier", "diskon_persen", "poin_bonus",
}

var roomTestColumns = []string{"id_room", "nama_room", "tipe_room", "kapasitas", "harga_per_jam"}

// futureBookingInput returns a date/time pair two days out, plus the window
// the service will derive from it.
func futureBookingInput(t *testing.T, durationHours int) (string, string, time.Time, time.Time) {
	t.Helper()
	date := time.Now().AddDate(0, 0, 2).Format(reservationInputDate)
	start, err := time.ParseInLocation(reservationInputDate+" "+reservationInputTime, date+" 10:00", time.Local)
	require.NoError(t, err)
	return date, "10:00", start, start.Add(time.Duration(durationHours) * time.Hour)
}

func expectCustomerByID(mock sqlmock.Sqlmock, id int64, nama string) {
	mock.ExpectQuery(`WHERE c\.id_customer = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(customerTestColumns).
			AddRow(id, nama, nil, nil, nil, nil, nil, nil))
}

func expectRoomByID(mock sqlmock.Sqlmock, id int64, namaRoom string) {
	mock.ExpectQuery(`WHERE r\.id_room = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(roomTestColumns).
			AddRow(id, namaRoom, "vip", 4, 50000.0))
}

func TestCreateReservation(t *testing.T) {
	date, clock, start, end := futureBookingInput(t, 2)
	customerID := int64(5)
	roomID := int64(2)
	duration := 2

	t.Run("prices duration times the room rate", func(t *testing.T) {
		db, mock := newServiceMockDB(t)
		service := newReservationService(db)

		expectCustomerByID(mock, customerID, "Budi")
		expectRoomByID(mock, roomID, "Room VIP 1")
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM reservation`).
			WithArgs(roomID, start, end).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT harga_per_jam FROM price_list WHERE id_room = \$1`).
			WithArgs(roomID).
			WillReturnRows(sqlmock.NewRows([]string{"harga_per_jam"}).AddRow(50000.0))
		mock.ExpectQuery(`INSERT INTO reservation`).
			WithArgs(customerID, roomID, start, end, duration, date, 100000.0, nil).
			WillReturnRows(sqlmock.NewRows([]string{"id_reservation"}).AddRow(int64(10)))
		mock.ExpectQuery(`WHERE rv\.id_reservation = \$1`).
			WithArgs(int64(10)).
			WillReturnRows(sqlmock.NewRows(reservationTestColumns).AddRow(
				int64(10), customerID, roomID, start, end,
				duration, date, 100000.0, nil, nil,
				"Budi", "Room VIP 1",
				nil, nil, nil, nil,
			))

		resp, err := service.CreateReservation(ReservationRequest{
			CustomerID: &customerID,
			RoomID:     &roomID,
			Date:       date,
			Time:       clock,
			Duration:   &duration,
		}, nil)
		require.NoError(t, err)

		assert.Equal(t, 100000.0, resp.TotalHarga)
		assert.Equal(t, models.PaymentStatusUnpaid, resp.PaymentStatus)
		assert.Equal(t, start.Format(reservationTimeLayout), resp.WaktuMulai)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects an overlapping window", func(t *testing.T) {
		db, mock := newServiceMockDB(t)
		service := newReservationService(db)

		expectRoomByID(mock, roomID, "Room VIP 1")
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM reservation`).
			WithArgs(roomID, start, end).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		_, err := service.CreateReservation(ReservationRequest{
			RoomID:   &roomID,
			Date:     date,
			Time:     clock,
			Duration: &duration,
		}, nil)
		assert.ErrorIs(t, err, ErrRoomNotAvailable)
	})

	t.Run("requires a room", func(t *testing.T) {
		db, _ := newServiceMockDB(t)
		service := newReservationService(db)

		_, err := service.CreateReservation(ReservationRequest{Date: date, Time: clock}, nil)
		assert.ErrorIs(t, err, ErrRoomForReservationRequired)
	})

	t.Run("rejects a malformed time", func(t *testing.T) {
		db, mock := newServiceMockDB(t)
		service := newReservationService(db)

		expectRoomByID(mock, roomID, "Room VIP 1")

		_, err := service.CreateReservation(ReservationRequest{
			RoomID: &roomID,
			Date:   date,
			Time:   "25:99",
		}, nil)
		assert.ErrorIs(t, err, ErrReservationTimeFormat)
	})

	t.Run("unknown customer id", func(t *testing.T) {
		db, mock := newServiceMockDB(t)
		service := newReservationService(db)

		unknown := int64(404)
		mock.ExpectQuery(`WHERE c\.id_customer = \$1`).
			WithArgs(unknown).
			WillReturnError(sql.ErrNoRows)

		_, err := service.CreateReservation(ReservationRequest{
			CustomerID: &unknown,
			RoomID:     &roomID,
			Date:       date,
			Time:       clock,
		}, nil)
		assert.ErrorIs(t, err, ErrCustomerForReservationInvalid)
	})
}

func TestCreateReservation_FallsBackToDefaultRate(t *testing.T) {
	date, clock, start, end := futureBookingInput(t, 1)
	roomID := int64(3)

	db, mock := newServiceMockDB(t)
	service := newReservationService(db)

	expectRoomByID(mock, roomID, "Room Reguler 1")
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM reservation`).
		WithArgs(roomID, start, end).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT harga_per_jam FROM price_list`).
		WithArgs(roomID).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`INSERT INTO reservation`).
		WithArgs(nil, roomID, start, end, 1, date, defaultHourlyRate, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id_reservation"}).AddRow(int64(11)))
	mock.ExpectQuery(`WHERE rv\.id_reservation = \$1`).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(reservationTestColumns).AddRow(
			int64(11), nil, roomID, start, end,
			1, date, defaultHourlyRate, nil, nil,
			nil, "Room Reguler 1",
			nil, nil, nil, nil,
		))

	resp, err := service.CreateReservation(ReservationRequest{RoomID: &roomID, Date: date, Time: clock}, nil)
	require.NoError(t, err)
	assert.Equal(t, defaultHourlyRate, resp.TotalHarga)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParseReservationTimes(t *testing.T) {
	t.Run("rejects a start in the past", func(t *testing.T) {
		yesterday := time.Now().AddDate(0, 0, -1)
		_, _, err := parseReservationTimes(yesterday.Format(reservationInputDate), "10:00", 1, false)
		assert.ErrorIs(t, err, ErrReservationValidation)
	})

	t.Run("allow_past admits a backdated entry", func(t *testing.T) {
		yesterday := time.Now().AddDate(0, 0, -1)
		start, end, err := parseReservationTimes(yesterday.Format(reservationInputDate), "10:00", 3, true)
		require.NoError(t, err)
		assert.Equal(t, 3*time.Hour, end.Sub(start))
	})

	t.Run("malformed input", func(t *testing.T) {
		_, _, err := parseReservationTimes("01-09-2026", "10:00", 1, false)
		assert.ErrorIs(t, err, ErrReservationTimeFormat)
	})

	// The wall-clock input and the past guard must share a time frame: entering
	// the current local time on a server behind UTC may not be rejected.
	t.Run("current wall-clock passes in a non-UTC zone", func(t *testing.T) {
		restore := time.Local
		time.Local = time.FixedZone("UTC-5", -5*60*60)
		defer func() { time.Local = restore }()

		now := time.Now()
		start, _, err := parseReservationTimes(now.Format(reservationInputDate), now.Format(reservationInputTime), 1, false)
		require.NoError(t, err)
		assert.Equal(t, time.Local, start.Location())
	})
}

func TestPayReservation(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	today := time.Now().Format(reservationInputDate)

	reservationRow := func(totalHarga float64, paymentID *int64, totalBayar interface{}) *sqlmock.Rows {
		var pid interface{}
		if paymentID != nil {
			pid = *paymentID
		}
		return sqlmock.NewRows(reservationTestColumns).AddRow(
			int64(10), int64(5), int64(2), start, end,
			2, "2026-09-01", totalHarga, pid, nil,
			"Budi", "Room VIP 1",
			pid, totalBayar, nil, "CASH",
		)
	}

	t.Run("creates a cash payment for an unpaid reservation", func(t *testing.T) {
		db, mock := newServiceMockDB(t)
		service := newReservationService(db)

		mock.ExpectQuery(`WHERE rv\.id_reservation = \$1`).
			WithArgs(int64(10)).
			WillReturnRows(reservationRow(100000, nil, nil))

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO payment`).
			WithArgs(100000.0, today, "CASH").
			WillReturnRows(sqlmock.NewRows([]string{"id_payment"}).AddRow(int64(7)))
		mock.ExpectExec(`UPDATE reservation SET payment_id = \$1 WHERE id_reservation = \$2`).
			WithArgs(int64(7), int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		paymentID := int64(7)
		mock.ExpectQuery(`WHERE rv\.id_reservation = \$1`).
			WithArgs(int64(10)).
			WillReturnRows(reservationRow(100000, &paymentID, 100000.0))

		result, err := service.PayReservation(10)
		require.NoError(t, err)
		assert.True(t, result.Created)
		assert.Equal(t, 100000.0, result.Payment.TotalBayar)
		assert.Equal(t, models.PaymentStatusPaid, result.Reservation.PaymentStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("tops up a partial payment to the running total", func(t *testing.T) {
		db, mock := newServiceMockDB(t)
		service := newReservationService(db)

		paymentID := int64(7)
		// Paid 100000 of 130000 after a food order raised the total.
		mock.ExpectQuery(`WHERE rv\.id_reservation = \$1`).
			WithArgs(int64(10)).
			WillReturnRows(reservationRow(130000, &paymentID, 100000.0))

		mock.ExpectExec(`UPDATE payment SET total_bayar = \$1, tanggal_bayar = \$2 WHERE id_payment = \$3`).
			WithArgs(130000.0, today, paymentID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		mock.ExpectQuery(`WHERE rv\.id_reservation = \$1`).
			WithArgs(int64(10)).
			WillReturnRows(reservationRow(130000, &paymentID, 130000.0))

		result, err := service.PayReservation(10)
		require.NoError(t, err)
		assert.False(t, result.Created)
		assert.Equal(t, models.PaymentStatusPaid, result.Reservation.PaymentStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("tops up a zero-amount payment instead of creating a second one", func(t *testing.T) {
		db, mock := newServiceMockDB(t)
		service := newReservationService(db)

		paymentID := int64(7)
		mock.ExpectQuery(`WHERE rv\.id_reservation = \$1`).
			WithArgs(int64(10)).
			WillReturnRows(reservationRow(100000, &paymentID, 0.0))

		mock.ExpectExec(`UPDATE payment SET total_bayar = \$1, tanggal_bayar = \$2 WHERE id_payment = \$3`).
			WithArgs(100000.0, today, paymentID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		mock.ExpectQuery(`WHERE rv\.id_reservation = \$1`).
			WithArgs(int64(10)).
			WillReturnRows(reservationRow(100000, &paymentID, 100000.0))

		result, err := service.PayReservation(10)
		require.NoError(t, err)
		assert.False(t, result.Created)
		assert.Equal(t, models.PaymentStatusPaid, result.Reservation.PaymentStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects a reservation that is already settled", func(t *testing.T) {
		db, mock := newServiceMockDB(t)
		service := newReservationService(db)

		paymentID := int64(7)
		mock.ExpectQuery(`WHERE rv\.id_reservation = \$1`).
			WithArgs(int64(10)).
			WillReturnRows(reservationRow(100000, &paymentID, 100000.0))

		_, err := service.PayReservation(10)
		assert.ErrorIs(t, err, ErrReservationAlreadyPaid)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		db, mock := newServiceMockDB(t)
		service := newReservationService(db)

		mock.ExpectQuery(`WHERE rv\.id_reservation = \$1`).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		_, err := service.PayReservation(99)
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}
