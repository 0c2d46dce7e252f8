package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"rental_backend/internal/models"
)

// ReservationRepository defines the interface for reservation persistence.
// Reads join the customer name, room name, and linked payment so that the
// derived payment status can be computed without extra round trips.
type ReservationRepository interface {
	CreateReservation(executor SQLExecutor, reservation *models.Reservation) (int64, error)
	GetReservationByID(id int64) (*models.Reservation, error)
	GetReservationsByDate(date string) ([]models.Reservation, error)
	GetReservations(filters models.ReservationFilters) ([]models.Reservation, int, error)
	UpdateReservation(executor SQLExecutor, reservation *models.Reservation) error
	DeleteReservation(executor SQLExecutor, id int64) error
	DeleteReservationsByRoom(executor SQLExecutor, roomID int64) error
	CountOverlapping(roomID int64, start, end time.Time, excludeReservationID *int64) (int, error)
	LinkPayment(executor SQLExecutor, reservationID, paymentID int64) error
	IncrementTotal(executor SQLExecutor, reservationID int64, delta float64) error
}

type reservationRepository struct {
	db *sql.DB
}

// NewReservationRepository creates a new instance of ReservationRepository.
func NewReservationRepository(db *sql.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

const selectReservationFields = `
	rv.id_reservation, rv.customer_id, rv.id_room, rv.waktu_mulai, rv.waktu_selesai,
	rv.durasi, rv.tanggal_reservasi, rv.total_harga, rv.payment_id, rv.handled_by,
	c.nama, rm.nama_room,
	p.id_payment, p.total_bayar, p.tanggal_bayar, p.payment_method
`

const reservationJoins = `
	FROM reservation rv
	LEFT JOIN customer c ON rv.customer_id = c.id_customer
	JOIN room rm ON rv.id_room = rm.id_room
	LEFT JOIN payment p ON rv.payment_id = p.id_payment
`

// scanReservationRow scans a reservation with its joined customer, room, and
// payment details.
func scanReservationRow(row scanner, isList bool) (*models.Reservation, int, error) {
	var reservation models.Reservation
	var customerName, namaRoom sql.NullString
	var paymentID sql.NullInt64
	var totalBayar sql.NullFloat64
	var tanggalBayar, paymentMethod sql.NullString
	var totalCount int

	scanDest := []interface{}{
		&reservation.ID, &reservation.CustomerID, &reservation.RoomID,
		&reservation.WaktuMulai, &reservation.WaktuSelesai,
		&reservation.Durasi, &reservation.TanggalReservasi, &reservation.TotalHarga,
		&reservation.PaymentID, &reservation.HandledBy,
		&customerName, &namaRoom,
		&paymentID, &totalBayar, &tanggalBayar, &paymentMethod,
	}
	if isList {
		scanDest = append(scanDest, &totalCount)
	}

	if err := row.Scan(scanDest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("%w: scanning reservation: %v", ErrDatabaseError, err)
	}

	if customerName.Valid {
		reservation.CustomerName = &customerName.String
	}
	if namaRoom.Valid {
		reservation.NamaRoom = &namaRoom.String
	}
	if paymentID.Valid {
		reservation.Payment = &models.Payment{
			ID:            paymentID.Int64,
			TotalBayar:    totalBayar.Float64,
			TanggalBayar:  tanggalBayar.String,
			PaymentMethod: paymentMethod.String,
		}
	}
	return &reservation, totalCount, nil
}

func (r *reservationRepository) CreateReservation(executor SQLExecutor, reservation *models.Reservation) (int64, error) {
	query := `INSERT INTO reservation
	            (customer_id, id_room, waktu_mulai, waktu_selesai, durasi, tanggal_reservasi, total_harga, handled_by)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id_reservation`

	err := executor.QueryRow(query,
		reservation.CustomerID, reservation.RoomID, reservation.WaktuMulai, reservation.WaktuSelesai,
		reservation.Durasi, reservation.TanggalReservasi, reservation.TotalHarga, reservation.HandledBy,
	).Scan(&reservation.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating reservation: %v", ErrDatabaseError, err)
	}
	return reservation.ID, nil
}

func (r *reservationRepository) GetReservationByID(id int64) (*models.Reservation, error) {
	query := "SELECT " + selectReservationFields + reservationJoins + " WHERE rv.id_reservation = $1"
	reservation, _, err := scanReservationRow(r.db.QueryRow(query, id), false)
	return reservation, err
}

// GetReservationsByDate lists a day's reservations for the timeline view,
// ordered by start time then id.
func (r *reservationRepository) GetReservationsByDate(date string) ([]models.Reservation, error) {
	query := "SELECT " + selectReservationFields + reservationJoins +
		" WHERE rv.tanggal_reservasi = $1 ORDER BY rv.waktu_mulai ASC, rv.id_reservation ASC"

	rows, err := r.db.Query(query, date)
	if err != nil {
		return nil, fmt.Errorf("%w: querying reservations for date %s: %v", ErrDatabaseError, date, err)
	}
	defer rows.Close()

	reservations := []models.Reservation{}
	for rows.Next() {
		reservation, _, scanErr := scanReservationRow(rows, false)
		if scanErr != nil {
			return nil, scanErr
		}
		reservations = append(reservations, *reservation)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating reservation rows: %v", ErrDatabaseError, err)
	}
	return reservations, nil
}

// GetReservations lists reservations for the history view, newest first.
// Unpaid filters to reservations whose payment is absent or short of the total.
func (r *reservationRepository) GetReservations(filters models.ReservationFilters) ([]models.Reservation, int, error) {
	reservations := []models.Reservation{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectReservationFields + ", COUNT(*) OVER() AS total_count " + reservationJoins)

	if filters.Unpaid {
		queryBuilder.WriteString(" WHERE (p.id_payment IS NULL OR p.total_bayar < rv.total_harga)")
	}
	queryBuilder.WriteString(" ORDER BY rv.id_reservation DESC")

	var args []interface{}
	argCount := 1
	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, filters.PageSize)
		argCount++
		if filters.Page > 0 {
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, (filters.Page-1)*filters.PageSize)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying reservations: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		reservation, scannedTotal, scanErr := scanReservationRow(rows, true)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		reservations = append(reservations, *reservation)
		totalCount = scannedTotal
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating reservation rows: %v", ErrDatabaseError, err)
	}
	return reservations, totalCount, nil
}

func (r *reservationRepository) UpdateReservation(executor SQLExecutor, reservation *models.Reservation) error {
	query := `UPDATE reservation SET
	            customer_id = $1, id_room = $2, waktu_mulai = $3, waktu_selesai = $4,
	            durasi = $5, tanggal_reservasi = $6, total_harga = $7, handled_by = $8
	          WHERE id_reservation = $9`

	result, err := executor.Exec(query,
		reservation.CustomerID, reservation.RoomID, reservation.WaktuMulai, reservation.WaktuSelesai,
		reservation.Durasi, reservation.TanggalReservasi, reservation.TotalHarga, reservation.HandledBy, reservation.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating reservation ID %d: %v", ErrDatabaseError, reservation.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for reservation ID %d: %v", ErrDatabaseError, reservation.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *reservationRepository) DeleteReservation(executor SQLExecutor, id int64) error {
	if _, err := executor.Exec(`DELETE FROM order_food WHERE reservation_id = $1`, id); err != nil {
		return fmt.Errorf("%w: deleting order_food for reservation ID %d: %v", ErrDatabaseError, id, err)
	}
	result, err := executor.Exec(`DELETE FROM reservation WHERE id_reservation = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting reservation ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for deleting reservation ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *reservationRepository) DeleteReservationsByRoom(executor SQLExecutor, roomID int64) error {
	if _, err := executor.Exec(`DELETE FROM reservation WHERE id_room = $1`, roomID); err != nil {
		return fmt.Errorf("%w: deleting reservations for room ID %d: %v", ErrDatabaseError, roomID, err)
	}
	return nil
}

// CountOverlapping reports how many reservations on the room intersect the
// half-open window [start, end). Touching endpoints do not conflict.
func (r *reservationRepository) CountOverlapping(roomID int64, start, end time.Time, excludeReservationID *int64) (int, error) {
	query := `SELECT COUNT(*) FROM reservation
	          WHERE id_room = $1
	          AND waktu_mulai < $3 AND waktu_selesai > $2`
	args := []interface{}{roomID, start, end}

	if excludeReservationID != nil {
		query += " AND id_reservation != $4"
		args = append(args, *excludeReservationID)
	}

	var count int
	if err := r.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: checking room availability: %v", ErrDatabaseError, err)
	}
	return count, nil
}

func (r *reservationRepository) LinkPayment(executor SQLExecutor, reservationID, paymentID int64) error {
	result, err := executor.Exec(`UPDATE reservation SET payment_id = $1 WHERE id_reservation = $2`, paymentID, reservationID)
	if err != nil {
		return fmt.Errorf("%w: linking payment %d to reservation ID %d: %v", ErrDatabaseError, paymentID, reservationID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for linking payment to reservation ID %d: %v", ErrDatabaseError, reservationID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementTotal adds delta to the reservation's running total. The total is
// maintained incrementally, never recomputed from scratch.
func (r *reservationRepository) IncrementTotal(executor SQLExecutor, reservationID int64, delta float64) error {
	result, err := executor.Exec(`UPDATE reservation SET total_harga = total_harga + $1 WHERE id_reservation = $2`, delta, reservationID)
	if err != nil {
		return fmt.Errorf("%w: incrementing total for reservation ID %d: %v", ErrDatabaseError, reservationID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for incrementing total of reservation ID %d: %v", ErrDatabaseError, reservationID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
