package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental_backend/internal/models"
	"rental_backend/internal/repositories"
)

// stubDashboardRepo serves fixed rollup values.
type stubDashboardRepo struct {
	revenue float64
	active  int
	pending int
	byDay   map[string]float64
}

func (s *stubDashboardRepo) TotalPaidRevenue() (float64, error) { return s.revenue, nil }
func (s *stubDashboardRepo) CountActiveReservations(time.Time) (int, error) {
	return s.active, nil
}
func (s *stubDashboardRepo) CountPendingReservations() (int, error) { return s.pending, nil }
func (s *stubDashboardRepo) GetActiveReservations(time.Time) ([]models.Reservation, error) {
	return nil, nil
}
func (s *stubDashboardRepo) GetPaidReservations(int) ([]models.Reservation, error) {
	return nil, nil
}
func (s *stubDashboardRepo) RevenueByDay(string) (map[string]float64, error) {
	return s.byDay, nil
}

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "Rp 0"},
		{7000, "Rp 7.000"},
		{100000, "Rp 100.000"},
		{1250000, "Rp 1.250.000"},
		{999, "Rp 999"},
		{-50000, "Rp -50.000"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, formatRupiah(tc.amount))
	}
}

func TestGetStats(t *testing.T) {
	db, mock := newServiceMockDB(t)

	service := NewDashboardService(
		&stubDashboardRepo{revenue: 1250000, active: 3, pending: 2},
		repositories.NewReservationRepository(db),
		repositories.NewCustomerRepository(db),
		repositories.NewRoomRepository(db),
		repositories.NewFoodRepository(db),
	)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM room`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(8))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM customer`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	stats, err := service.GetStats()
	require.NoError(t, err)
	assert.Equal(t, "Rp 1.250.000", stats.Revenue)
	assert.Equal(t, "3 / 8", stats.ActiveRooms)
	assert.Equal(t, "42", stats.Members)
	assert.Equal(t, "2", stats.Issues)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRevenueTrend_ZeroFillsMissingDays(t *testing.T) {
	db, _ := newServiceMockDB(t)

	today := time.Now().Format(reservationInputDate)
	yesterday := time.Now().AddDate(0, 0, -1).Format(reservationInputDate)

	service := NewDashboardService(
		&stubDashboardRepo{byDay: map[string]float64{yesterday: 150000}},
		repositories.NewReservationRepository(db),
		repositories.NewCustomerRepository(db),
		repositories.NewRoomRepository(db),
		repositories.NewFoodRepository(db),
	)

	series, err := service.GetRevenueTrend(3)
	require.NoError(t, err)
	require.Len(t, series, 3)

	assert.Equal(t, 0.0, series[0].Total)
	assert.Equal(t, yesterday, series[1].Date)
	assert.Equal(t, 150000.0, series[1].Total)
	assert.Equal(t, today, series[2].Date)
	assert.Equal(t, 0.0, series[2].Total)
}

func TestGetRecentActivity_StatusFromPaymentState(t *testing.T) {
	db, mock := newServiceMockDB(t)

	service := NewDashboardService(
		&stubDashboardRepo{},
		repositories.NewReservationRepository(db),
		repositories.NewCustomerRepository(db),
		repositories.NewRoomRepository(db),
		repositories.NewFoodRepository(db),
	)

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	columns := append(append([]string{}, reservationTestColumns...), "total_count")
	rows := sqlmock.NewRows(columns).
		AddRow(int64(12), nil, int64(2), start, start.Add(time.Hour),
			1, "2026-09-01", 50000.0, int64(7), nil,
			"Budi", "Room VIP 1",
			int64(7), 50000.0, "2026-09-01", "CASH",
			2).
		AddRow(int64(11), nil, int64(2), start, start.Add(time.Hour),
			1, "2026-09-01", 50000.0, nil, nil,
			nil, "Room VIP 1",
			nil, nil, nil, nil,
			2)
	mock.ExpectQuery(`ORDER BY rv\.id_reservation DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(3, 0).
		WillReturnRows(rows)

	entries, err := service.GetRecentActivity()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Finished", entries[0].Status)
	assert.Equal(t, "Budi", entries[0].User)
	assert.Equal(t, "Rp 50.000", entries[0].Amount)

	assert.Equal(t, "Booked", entries[1].Status)
	assert.Equal(t, "Unknown", entries[1].User)
}
