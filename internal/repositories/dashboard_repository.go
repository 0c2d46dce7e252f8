package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rental_backend/internal/models"
)

// DashboardRepository defines read-only rollup queries for the dashboard.
type DashboardRepository interface {
	TotalPaidRevenue() (float64, error)
	CountActiveReservations(now time.Time) (int, error)
	CountPendingReservations() (int, error)
	GetActiveReservations(now time.Time) ([]models.Reservation, error)
	GetPaidReservations(limit int) ([]models.Reservation, error)
	RevenueByDay(startDate string) (map[string]float64, error)
}

type dashboardRepository struct {
	db *sql.DB
}

// NewDashboardRepository creates a new instance of DashboardRepository.
func NewDashboardRepository(db *sql.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// TotalPaidRevenue sums totals over fully paid reservations only.
func (r *dashboardRepository) TotalPaidRevenue() (float64, error) {
	query := `SELECT COALESCE(SUM(rv.total_harga), 0)
	          FROM reservation rv
	          JOIN payment p ON rv.payment_id = p.id_payment
	          WHERE p.total_bayar >= rv.total_harga`

	var total float64
	if err := r.db.QueryRow(query).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: summing paid revenue: %v", ErrDatabaseError, err)
	}
	return total, nil
}

func (r *dashboardRepository) CountActiveReservations(now time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM reservation
	          WHERE waktu_mulai <= $1 AND waktu_selesai >= $1`

	var count int
	if err := r.db.QueryRow(query, now).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting active reservations: %v", ErrDatabaseError, err)
	}
	return count, nil
}

// CountPendingReservations counts reservations without a payment or with a
// payment short of the total.
func (r *dashboardRepository) CountPendingReservations() (int, error) {
	query := `SELECT COUNT(*)
	          FROM reservation rv
	          LEFT JOIN payment p ON rv.payment_id = p.id_payment
	          WHERE p.id_payment IS NULL OR p.total_bayar < rv.total_harga`

	var count int
	if err := r.db.QueryRow(query).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting pending reservations: %v", ErrDatabaseError, err)
	}
	return count, nil
}

func (r *dashboardRepository) GetActiveReservations(now time.Time) ([]models.Reservation, error) {
	query := "SELECT " + selectReservationFields + reservationJoins +
		" WHERE rv.waktu_mulai <= $1 AND rv.waktu_selesai >= $1 ORDER BY rv.waktu_mulai ASC"

	return r.queryReservations(query, now)
}

// GetPaidReservations lists the newest fully paid reservations, up to limit.
func (r *dashboardRepository) GetPaidReservations(limit int) ([]models.Reservation, error) {
	query := "SELECT " + selectReservationFields + reservationJoins +
		" WHERE p.id_payment IS NOT NULL AND p.total_bayar >= rv.total_harga" +
		" ORDER BY rv.id_reservation DESC LIMIT $1"

	return r.queryReservations(query, limit)
}

func (r *dashboardRepository) queryReservations(query string, args ...interface{}) ([]models.Reservation, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying dashboard reservations: %v", ErrDatabaseError, err)
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
		return nil, fmt.Errorf("%w: iterating dashboard reservation rows: %v", ErrDatabaseError, err)
	}
	return reservations, nil
}

// RevenueByDay returns payment sums keyed by YYYY-MM-DD since startDate.
// Days without payments are absent from the map.
func (r *dashboardRepository) RevenueByDay(startDate string) (map[string]float64, error) {
	query := `SELECT tanggal_bayar::date::text AS day, SUM(total_bayar)
	          FROM payment
	          WHERE tanggal_bayar::date >= $1::date
	          GROUP BY day
	          ORDER BY day ASC`

	rows, err := r.db.Query(query, startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: querying revenue by day: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	totals := map[string]float64{}
	for rows.Next() {
		var day string
		var total float64
		if scanErr := rows.Scan(&day, &total); scanErr != nil {
			if errors.Is(scanErr, sql.ErrNoRows) {
				break
			}
			return nil, fmt.Errorf("%w: scanning revenue row: %v", ErrDatabaseError, scanErr)
		}
		totals[day] = total
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating revenue rows: %v", ErrDatabaseError, err)
	}
	return totals, nil
}
