package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"rental_backend/internal/models"
	"rental_backend/internal/repositories"
	"rental_backend/pkg/utils"
)

// --- Custom Service Errors for Reservation ---
var (
	ErrReservationNotFound           = errors.New("reservation not found")
	ErrReservationValidation         = errors.New("reservation data validation error")
	ErrReservationTimeFormat         = errors.New("invalid date/time format (expected YYYY-MM-DD and HH:mm)")
	ErrRoomNotAvailable              = errors.New("room is not available for the requested time")
	ErrRoomForReservationRequired    = errors.New("room_id or nama_room is required")
	ErrRoomForReservationNotFound    = errors.New("room not found")
	ErrCustomerForReservationInvalid = errors.New("customer specified for reservation not found")
	ErrReservationAlreadyPaid        = errors.New("reservation is already fully paid")
)

const (
	reservationTimeLayout = "2006-01-02 15:04:05"
	reservationInputDate  = "2006-01-02"
	reservationInputTime  = "15:04"

	defaultHourlyRate  = 7000.0
	pastStartGrace     = 5 * time.Minute
	defaultPaymentMode = "CASH"
)

// --- Reservation DTOs ---

type ReservationRequest struct {
	CustomerID   *int64  `json:"customer_id"`
	CustomerName *string `json:"customer_name"`
	RoomID       *int64  `json:"room_id"`
	NamaRoom     *string `json:"nama_room"`
	Date         string  `json:"date" binding:"required"`
	Time         string  `json:"time" binding:"required"`
	Duration     *int    `json:"duration"`
	AllowPast    bool    `json:"allow_past"`
}

// ReservationResponse is the wire shape for a reservation. payment_status is
// derived from the linked payment, never stored.
type ReservationResponse struct {
	ID               int64   `json:"id_reservation"`
	CustomerID       *int64  `json:"customer_id"`
	RoomID           int64   `json:"id_room"`
	CustomerName     *string `json:"customer_name"`
	NamaRoom         *string `json:"nama_room"`
	WaktuMulai       string  `json:"waktu_mulai"`
	WaktuSelesai     string  `json:"waktu_selesai"`
	Durasi           int     `json:"durasi"`
	TanggalReservasi string  `json:"tanggal_reservasi"`
	TotalHarga       float64 `json:"total_harga"`
	PaymentStatus    string  `json:"payment_status"`
	PaymentMethod    *string `json:"payment_method"`
}

type ReservationWithOrdersResponse struct {
	ReservationResponse
	Orders []models.OrderFood `json:"orders"`
}

type PayReservationResult struct {
	Payment     *models.Payment      `json:"payment"`
	Reservation *ReservationResponse `json:"reservation"`
	// Created distinguishes a fresh full payment from a top-up of a partial one.
	Created bool `json:"-"`
}

// ShapeReservation converts a reservation row into its wire shape.
func ShapeReservation(reservation *models.Reservation) *ReservationResponse {
	resp := &ReservationResponse{
		ID:               reservation.ID,
		CustomerID:       reservation.CustomerID,
		RoomID:           reservation.RoomID,
		CustomerName:     reservation.CustomerName,
		NamaRoom:         reservation.NamaRoom,
		WaktuMulai:       reservation.WaktuMulai.Format(reservationTimeLayout),
		WaktuSelesai:     reservation.WaktuSelesai.Format(reservationTimeLayout),
		Durasi:           reservation.Durasi,
		TanggalReservasi: reservation.TanggalReservasi,
		TotalHarga:       reservation.TotalHarga,
		PaymentStatus:    models.DerivePaymentStatus(reservation.TotalHarga, reservation.Payment),
	}
	if reservation.Payment != nil {
		resp.PaymentMethod = &reservation.Payment.PaymentMethod
	}
	return resp
}

// --- ReservationService Interface ---
type ReservationService interface {
	CreateReservation(req ReservationRequest, handledBy *int64) (*ReservationResponse, error)
	GetReservationByID(reservationID int64) (*ReservationResponse, error)
	GetReservationWithOrders(reservationID int64) (*ReservationWithOrdersResponse, error)
	GetReservationsByDate(date string) ([]ReservationResponse, error)
	GetReservations(filters models.ReservationFilters) ([]ReservationResponse, int, error)
	UpdateReservation(reservationID int64, req ReservationRequest, handledBy *int64) (*ReservationResponse, error)
	DeleteReservation(reservationID int64) error
	PayReservation(reservationID int64) (*PayReservationResult, error)
}

// --- reservationService Implementation ---
type reservationService struct {
	reservationRepo repositories.ReservationRepository
	customerRepo    repositories.CustomerRepository
	roomRepo        repositories.RoomRepository
	paymentRepo     repositories.PaymentRepository
	foodRepo        repositories.FoodRepository
	db              *sql.DB
}

// NewReservationService creates a new instance of ReservationService.
func NewReservationService(
	rr repositories.ReservationRepository,
	cr repositories.CustomerRepository,
	rmr repositories.RoomRepository,
	pr repositories.PaymentRepository,
	fr repositories.FoodRepository,
	db *sql.DB,
) ReservationService {
	return &reservationService{
		reservationRepo: rr,
		customerRepo:    cr,
		roomRepo:        rmr,
		paymentRepo:     pr,
		foodRepo:        fr,
		db:              db,
	}
}

// resolveCustomer resolves the booking customer: an explicit id wins, then a
// name is matched exactly or a bare customer row is created for it. Neither
// given means a guest booking (nil).
func (s *reservationService) resolveCustomer(customerID *int64, customerName *string) (*int64, error) {
	if customerID != nil {
		_, err := s.customerRepo.GetCustomerByID(*customerID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: ID %d", ErrCustomerForReservationInvalid, *customerID)
			}
			return nil, fmt.Errorf("failed to validate customer for reservation: %w", err)
		}
		return customerID, nil
	}

	if customerName != nil && strings.TrimSpace(*customerName) != "" {
		name := strings.TrimSpace(*customerName)
		customer, err := s.customerRepo.FindCustomerByName(name)
		if err == nil {
			return &customer.ID, nil
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up customer by name: %w", err)
		}
		newCustomer := &models.Customer{Nama: name}
		id, createErr := s.customerRepo.CreateCustomer(s.db, newCustomer)
		if createErr != nil {
			return nil, fmt.Errorf("failed to create customer for reservation: %w", createErr)
		}
		return &id, nil
	}

	return nil, nil
}

// resolveRoom resolves the target room from an explicit id or an exact name.
func (s *reservationService) resolveRoom(roomID *int64, namaRoom *string) (int64, error) {
	if roomID != nil {
		_, err := s.roomRepo.GetRoomByID(*roomID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return 0, fmt.Errorf("%w: ID %d", ErrRoomForReservationNotFound, *roomID)
			}
			return 0, fmt.Errorf("failed to validate room for reservation: %w", err)
		}
		return *roomID, nil
	}

	if namaRoom != nil && strings.TrimSpace(*namaRoom) != "" {
		room, err := s.roomRepo.FindRoomByName(strings.TrimSpace(*namaRoom))
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return 0, fmt.Errorf("%w: %q", ErrRoomForReservationNotFound, strings.TrimSpace(*namaRoom))
			}
			return 0, fmt.Errorf("failed to look up room by name: %w", err)
		}
		return room.ID, nil
	}

	return 0, ErrRoomForReservationRequired
}

// pricePerHour returns the room's configured hourly rate, falling back to the
// DEFAULT_HOURLY_RATE env when no price row exists.
func (s *reservationService) pricePerHour(roomID int64) (float64, error) {
	price, err := s.roomRepo.GetPricePerHour(roomID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return utils.GetenvFloat("DEFAULT_HOURLY_RATE", defaultHourlyRate), nil
		}
		return 0, fmt.Errorf("failed to get room price: %w", err)
	}
	return price, nil
}

// parseReservationTimes builds the booking window from the date/time/duration
// triple. The wall-clock input is interpreted in server-local time so the past
// guard compares like with like. New bookings more than five minutes in the
// past are rejected unless the caller explicitly allows past entries.
func parseReservationTimes(dateStr, timeStr string, duration int, allowPast bool) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(reservationInputDate+" "+reservationInputTime, dateStr+" "+timeStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, ErrReservationTimeFormat
	}
	end := start.Add(time.Duration(duration) * time.Hour)

	if !allowPast && start.Before(time.Now().Add(-pastStartGrace)) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: reservation start time cannot be in the past", ErrReservationValidation)
	}
	return start, end, nil
}

// prepareReservation runs the shared create/update pipeline: resolve the
// customer and room, build the time window, price it, and check for overlap.
func (s *reservationService) prepareReservation(req ReservationRequest, excludeReservationID *int64) (*models.Reservation, error) {
	duration := 1
	if req.Duration != nil {
		duration = *req.Duration
	}
	if duration < 1 {
		return nil, fmt.Errorf("%w: duration must be at least 1 hour", ErrReservationValidation)
	}

	customerID, err := s.resolveCustomer(req.CustomerID, req.CustomerName)
	if err != nil {
		return nil, err
	}
	roomID, err := s.resolveRoom(req.RoomID, req.NamaRoom)
	if err != nil {
		return nil, err
	}

	start, end, err := parseReservationTimes(req.Date, req.Time, duration, req.AllowPast)
	if err != nil {
		return nil, err
	}

	overlapping, err := s.reservationRepo.CountOverlapping(roomID, start, end, excludeReservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to check room availability: %w", err)
	}
	if overlapping > 0 {
		return nil, ErrRoomNotAvailable
	}

	rate, err := s.pricePerHour(roomID)
	if err != nil {
		return nil, err
	}

	return &models.Reservation{
		CustomerID:       customerID,
		RoomID:           roomID,
		WaktuMulai:       start,
		WaktuSelesai:     end,
		Durasi:           duration,
		TanggalReservasi: req.Date,
		TotalHarga:       float64(duration) * rate,
	}, nil
}

func (s *reservationService) CreateReservation(req ReservationRequest, handledBy *int64) (*ReservationResponse, error) {
	reservation, err := s.prepareReservation(req, nil)
	if err != nil {
		return nil, err
	}
	reservation.HandledBy = handledBy

	if _, err = s.reservationRepo.CreateReservation(s.db, reservation); err != nil {
		return nil, fmt.Errorf("failed to create reservation in repository: %w", err)
	}
	return s.GetReservationByID(reservation.ID)
}

func (s *reservationService) GetReservationByID(reservationID int64) (*ReservationResponse, error) {
	reservation, err := s.reservationRepo.GetReservationByID(reservationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to get reservation by ID: %w", err)
	}
	return ShapeReservation(reservation), nil
}

func (s *reservationService) GetReservationWithOrders(reservationID int64) (*ReservationWithOrdersResponse, error) {
	shaped, err := s.GetReservationByID(reservationID)
	if err != nil {
		return nil, err
	}
	orders, err := s.foodRepo.GetOrderFoodByReservation(reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders for reservation: %w", err)
	}
	return &ReservationWithOrdersResponse{ReservationResponse: *shaped, Orders: orders}, nil
}

func (s *reservationService) GetReservationsByDate(date string) ([]ReservationResponse, error) {
	if _, err := time.Parse(reservationInputDate, date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrReservationValidation)
	}
	reservations, err := s.reservationRepo.GetReservationsByDate(date)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservations for date: %w", err)
	}
	shaped := make([]ReservationResponse, 0, len(reservations))
	for i := range reservations {
		shaped = append(shaped, *ShapeReservation(&reservations[i]))
	}
	return shaped, nil
}

func (s *reservationService) GetReservations(filters models.ReservationFilters) ([]ReservationResponse, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 10
	}

	reservations, totalCount, err := s.reservationRepo.GetReservations(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get reservations: %w", err)
	}
	shaped := make([]ReservationResponse, 0, len(reservations))
	for i := range reservations {
		shaped = append(shaped, *ShapeReservation(&reservations[i]))
	}
	return shaped, totalCount, nil
}

func (s *reservationService) UpdateReservation(reservationID int64, req ReservationRequest, handledBy *int64) (*ReservationResponse, error) {
	existing, err := s.reservationRepo.GetReservationByID(reservationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to find reservation for update: %w", err)
	}

	reservation, err := s.prepareReservation(req, &reservationID)
	if err != nil {
		return nil, err
	}
	reservation.ID = reservationID
	reservation.HandledBy = existing.HandledBy
	if handledBy != nil {
		reservation.HandledBy = handledBy
	}

	if err = s.reservationRepo.UpdateReservation(s.db, reservation); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to update reservation in repository: %w", err)
	}
	return s.GetReservationByID(reservationID)
}

func (s *reservationService) DeleteReservation(reservationID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for reservation deletion: %w", err)
	}
	defer tx.Rollback()

	if err = s.reservationRepo.DeleteReservation(tx, reservationID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrReservationNotFound
		}
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reservation deletion: %w", err)
	}
	return nil
}

// PayReservation settles a reservation in cash. Without a payment it creates
// one for the full total; a short payment is topped up to the total; a fully
// paid reservation is rejected.
func (s *reservationService) PayReservation(reservationID int64) (*PayReservationResult, error) {
	reservation, err := s.reservationRepo.GetReservationByID(reservationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to find reservation for payment: %w", err)
	}

	today := time.Now().Format(reservationInputDate)

	switch {
	case models.DerivePaymentStatus(reservation.TotalHarga, reservation.Payment) == models.PaymentStatusPaid:
		return nil, ErrReservationAlreadyPaid

	// Any existing payment row is topped up in place, even a zero-amount one,
	// so a reservation never ends up with two linked payments.
	case reservation.Payment != nil:
		if err = s.paymentRepo.UpdatePaymentAmount(s.db, reservation.Payment.ID, reservation.TotalHarga, today); err != nil {
			return nil, fmt.Errorf("failed to top up payment: %w", err)
		}
		updated, getErr := s.reservationRepo.GetReservationByID(reservationID)
		if getErr != nil {
			return nil, fmt.Errorf("failed to reload reservation after payment: %w", getErr)
		}
		return &PayReservationResult{Payment: updated.Payment, Reservation: ShapeReservation(updated), Created: false}, nil

	default:
		tx, txErr := s.db.Begin()
		if txErr != nil {
			return nil, fmt.Errorf("failed to begin transaction for payment: %w", txErr)
		}
		defer tx.Rollback()

		payment := &models.Payment{
			TotalBayar:    reservation.TotalHarga,
			TanggalBayar:  today,
			PaymentMethod: defaultPaymentMode,
		}
		if _, err = s.paymentRepo.CreatePayment(tx, payment); err != nil {
			return nil, fmt.Errorf("failed to create payment: %w", err)
		}
		if err = s.reservationRepo.LinkPayment(tx, reservationID, payment.ID); err != nil {
			return nil, fmt.Errorf("failed to link payment to reservation: %w", err)
		}
		if err = tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit payment: %w", err)
		}

		updated, getErr := s.reservationRepo.GetReservationByID(reservationID)
		if getErr != nil {
			return nil, fmt.Errorf("failed to reload reservation after payment: %w", getErr)
		}
		return &PayReservationResult{Payment: payment, Reservation: ShapeReservation(updated), Created: true}, nil
	}
}
