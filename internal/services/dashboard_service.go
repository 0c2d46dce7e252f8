package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"rental_backend/internal/models"
	"rental_backend/internal/repositories"
)

// --- Dashboard DTOs ---

type DashboardStats struct {
	Revenue     string `json:"revenue"`
	ActiveRooms string `json:"activeRooms"`
	Members     string `json:"members"`
	Issues      string `json:"issues"`
}

type RecentActivityEntry struct {
	ID     int64  `json:"id"`
	User   string `json:"user"`
	Room   string `json:"room"`
	Time   string `json:"time"`
	Status string `json:"status"`
	Amount string `json:"amount"`
}

type ActiveRoomEntry struct {
	ID       int64  `json:"id"`
	Room     string `json:"room"`
	Customer string `json:"customer"`
	Start    string `json:"start"`
	End      string `json:"end"`
}

type RevenueFoodLine struct {
	Name     string  `json:"name"`
	Qty      int     `json:"qty"`
	Price    float64 `json:"price"`
	Subtotal float64 `json:"subtotal"`
}

type RevenueDetailRow struct {
	ID        int64             `json:"id"`
	Customer  string            `json:"customer"`
	Room      string            `json:"room"`
	Date      string            `json:"date"`
	Amount    float64           `json:"amount"`
	Method    string            `json:"method"`
	FoodTotal float64           `json:"foodTotal"`
	RoomTotal float64           `json:"roomTotal"`
	Foods     []RevenueFoodLine `json:"foods"`
}

type RevenueDetail struct {
	Rows         []RevenueDetailRow `json:"rows"`
	ShownTotal   float64            `json:"shownTotal"`
	TotalRevenue float64            `json:"totalRevenue"`
}

type RevenueTrendPoint struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// --- DashboardService Interface ---
type DashboardService interface {
	GetStats() (*DashboardStats, error)
	GetRecentActivity() ([]RecentActivityEntry, error)
	GetActiveRooms() ([]ActiveRoomEntry, error)
	GetRevenueDetail(limit int) (*RevenueDetail, error)
	GetRevenueTrend(days int) ([]RevenueTrendPoint, error)
}

// --- dashboardService Implementation ---
type dashboardService struct {
	dashboardRepo   repositories.DashboardRepository
	reservationRepo repositories.ReservationRepository
	customerRepo    repositories.CustomerRepository
	roomRepo        repositories.RoomRepository
	foodRepo        repositories.FoodRepository
}

// NewDashboardService creates a new instance of DashboardService.
func NewDashboardService(
	dr repositories.DashboardRepository,
	rr repositories.ReservationRepository,
	cr repositories.CustomerRepository,
	rmr repositories.RoomRepository,
	fr repositories.FoodRepository,
) DashboardService {
	return &dashboardService{
		dashboardRepo:   dr,
		reservationRepo: rr,
		customerRepo:    cr,
		roomRepo:        rmr,
		foodRepo:        fr,
	}
}

// formatRupiah renders an amount with dot thousand separators, id-ID style.
func formatRupiah(amount float64) string {
	digits := strconv.FormatInt(int64(math.Round(amount)), 10)
	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}

	if negative {
		return "Rp -" + b.String()
	}
	return "Rp " + b.String()
}

func (s *dashboardService) GetStats() (*DashboardStats, error) {
	revenue, err := s.dashboardRepo.TotalPaidRevenue()
	if err != nil {
		return nil, fmt.Errorf("failed to get total revenue: %w", err)
	}
	active, err := s.dashboardRepo.CountActiveReservations(time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to count active reservations: %w", err)
	}
	totalRooms, err := s.roomRepo.CountRooms()
	if err != nil {
		return nil, fmt.Errorf("failed to count rooms: %w", err)
	}
	members, err := s.customerRepo.CountCustomers()
	if err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}
	pending, err := s.dashboardRepo.CountPendingReservations()
	if err != nil {
		return nil, fmt.Errorf("failed to count pending reservations: %w", err)
	}

	return &DashboardStats{
		Revenue:     formatRupiah(revenue),
		ActiveRooms: fmt.Sprintf("%d / %d", active, totalRooms),
		Members:     strconv.Itoa(members),
		Issues:      strconv.Itoa(pending),
	}, nil
}

func stringOr(value *string, fallback string) string {
	if value != nil && *value != "" {
		return *value
	}
	return fallback
}

func (s *dashboardService) GetRecentActivity() ([]RecentActivityEntry, error) {
	recent, _, err := s.reservationRepo.GetReservations(models.ReservationFilters{Page: 1, PageSize: 3})
	if err != nil {
		return nil, fmt.Errorf("failed to get recent reservations: %w", err)
	}

	entries := make([]RecentActivityEntry, 0, len(recent))
	for i := range recent {
		reservation := &recent[i]
		status := "Booked"
		if models.DerivePaymentStatus(reservation.TotalHarga, reservation.Payment) == models.PaymentStatusPaid {
			status = "Finished"
		}
		entries = append(entries, RecentActivityEntry{
			ID:     reservation.ID,
			User:   stringOr(reservation.CustomerName, "Unknown"),
			Room:   stringOr(reservation.NamaRoom, "-"),
			Time:   reservation.WaktuMulai.Format(reservationTimeLayout) + " - " + reservation.WaktuSelesai.Format(reservationTimeLayout),
			Status: status,
			Amount: formatRupiah(reservation.TotalHarga),
		})
	}
	return entries, nil
}

func (s *dashboardService) GetActiveRooms() ([]ActiveRoomEntry, error) {
	active, err := s.dashboardRepo.GetActiveReservations(time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to get active reservations: %w", err)
	}

	entries := make([]ActiveRoomEntry, 0, len(active))
	for i := range active {
		reservation := &active[i]
		entries = append(entries, ActiveRoomEntry{
			ID:       reservation.ID,
			Room:     stringOr(reservation.NamaRoom, "-"),
			Customer: stringOr(reservation.CustomerName, "Unknown"),
			Start:    reservation.WaktuMulai.Format(reservationTimeLayout),
			End:      reservation.WaktuSelesai.Format(reservationTimeLayout),
		})
	}
	return entries, nil
}

// GetRevenueDetail breaks the newest fully paid reservations into their food
// and room components. Limit is clamped to [1, 50], default 10.
func (s *dashboardService) GetRevenueDetail(limit int) (*RevenueDetail, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	paid, err := s.dashboardRepo.GetPaidReservations(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get paid reservations: %w", err)
	}

	rows := make([]RevenueDetailRow, 0, len(paid))
	shownTotal := 0.0
	for i := range paid {
		reservation := &paid[i]

		orders, ordersErr := s.foodRepo.GetOrderFoodByReservation(reservation.ID)
		if ordersErr != nil {
			return nil, fmt.Errorf("failed to get food orders for revenue detail: %w", ordersErr)
		}

		foods := make([]RevenueFoodLine, 0, len(orders))
		foodTotal := 0.0
		for _, order := range orders {
			line := RevenueFoodLine{Name: "-", Qty: order.Jumlah}
			if order.Food != nil {
				line.Name = order.Food.NamaMakanan
				line.Price = order.Food.Harga
			}
			line.Subtotal = line.Price * float64(line.Qty)
			foodTotal += line.Subtotal
			foods = append(foods, line)
		}

		method := "-"
		if reservation.Payment != nil {
			method = reservation.Payment.PaymentMethod
		}
		rows = append(rows, RevenueDetailRow{
			ID:        reservation.ID,
			Customer:  stringOr(reservation.CustomerName, "Unknown"),
			Room:      stringOr(reservation.NamaRoom, "-"),
			Date:      reservation.TanggalReservasi,
			Amount:    reservation.TotalHarga,
			Method:    method,
			FoodTotal: foodTotal,
			RoomTotal: math.Max(0, reservation.TotalHarga-foodTotal),
			Foods:     foods,
		})
		shownTotal += reservation.TotalHarga
	}

	totalRevenue, err := s.dashboardRepo.TotalPaidRevenue()
	if err != nil {
		return nil, fmt.Errorf("failed to get total revenue: %w", err)
	}
	return &RevenueDetail{Rows: rows, ShownTotal: shownTotal, TotalRevenue: totalRevenue}, nil
}

// GetRevenueTrend returns a zero-filled per-day payment series for the last
// N days. Days is clamped to [1, 30], default 7.
func (s *dashboardService) GetRevenueTrend(days int) ([]RevenueTrendPoint, error) {
	if days <= 0 {
		days = 7
	}
	if days > 30 {
		days = 30
	}

	start := time.Now().AddDate(0, 0, -(days - 1))
	totals, err := s.dashboardRepo.RevenueByDay(start.Format(reservationInputDate))
	if err != nil {
		return nil, fmt.Errorf("failed to get revenue by day: %w", err)
	}

	series := make([]RevenueTrendPoint, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i).Format(reservationInputDate)
		series = append(series, RevenueTrendPoint{Date: day, Total: totals[day]})
	}
	return series, nil
}
