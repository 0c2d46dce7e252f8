package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"rental_backend/internal/models"
	"rental_backend/internal/repositories"
	"rental_backend/pkg/utils"
)

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomValidation = errors.New("room data validation error")
)

type CreateRoomRequest struct {
	NamaRoom    string   `json:"nama_room" binding:"required"`
	TipeRoom    string   `json:"tipe_room" binding:"required"`
	Kapasitas   *int     `json:"kapasitas"`
	HargaPerJam *float64 `json:"harga_per_jam"`
}

type UpdateRoomRequest struct {
	NamaRoom    *string  `json:"nama_room"`
	TipeRoom    *string  `json:"tipe_room"`
	Kapasitas   *int     `json:"kapasitas"`
	HargaPerJam *float64 `json:"harga_per_jam"`
}

type RoomService interface {
	CreateRoom(req CreateRoomRequest) (*models.Room, error)
	GetRoomByID(roomID int64) (*models.Room, error)
	GetRooms(page, pageSize int, search string, all, withPrice bool) ([]models.Room, int, error)
	UpdateRoom(roomID int64, req UpdateRoomRequest) (*models.Room, error)
	DeleteRoom(roomID int64) error
}

type roomService struct {
	roomRepo        repositories.RoomRepository
	unitRepo        repositories.UnitRepository
	reservationRepo repositories.ReservationRepository
	foodRepo        repositories.FoodRepository
	db              *sql.DB
}

// NewRoomService creates a new instance of RoomService.
func NewRoomService(
	rr repositories.RoomRepository,
	ur repositories.UnitRepository,
	resr repositories.ReservationRepository,
	fr repositories.FoodRepository,
	db *sql.DB,
) RoomService {
	return &roomService{
		roomRepo:        rr,
		unitRepo:        ur,
		reservationRepo: resr,
		foodRepo:        fr,
		db:              db,
	}
}

// CreateRoom creates the room and its price row in one transaction.
func (s *roomService) CreateRoom(req CreateRoomRequest) (*models.Room, error) {
	if strings.TrimSpace(req.NamaRoom) == "" {
		return nil, fmt.Errorf("%w: nama_room is required", ErrRoomValidation)
	}
	if !models.IsValidRoomType(req.TipeRoom) {
		return nil, fmt.Errorf("%w: tipe_room must be %q or %q", ErrRoomValidation, models.RoomTypeVIP, models.RoomTypeReguler)
	}
	if req.HargaPerJam != nil && *req.HargaPerJam < 0 {
		return nil, fmt.Errorf("%w: harga_per_jam must not be negative", ErrRoomValidation)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction for room creation: %w", err)
	}
	defer tx.Rollback()

	room := &models.Room{
		NamaRoom:  strings.TrimSpace(req.NamaRoom),
		TipeRoom:  req.TipeRoom,
		Kapasitas: req.Kapasitas,
	}
	if _, err = s.roomRepo.CreateRoom(tx, room); err != nil {
		return nil, fmt.Errorf("failed to create room in repository: %w", err)
	}
	if req.HargaPerJam != nil {
		if err = s.roomRepo.UpsertRoomPrice(tx, room.ID, *req.HargaPerJam); err != nil {
			return nil, fmt.Errorf("failed to set room price: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit room creation: %w", err)
	}
	return s.roomRepo.GetRoomByID(room.ID)
}

func (s *roomService) GetRoomByID(roomID int64) (*models.Room, error) {
	room, err := s.roomRepo.GetRoomByID(roomID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room by ID: %w", err)
	}
	return room, nil
}

func (s *roomService) GetRooms(page, pageSize int, search string, all, withPrice bool) ([]models.Room, int, error) {
	if all {
		page, pageSize = 0, 0
	} else {
		page, pageSize = clampPage(page, pageSize)
	}

	rooms, totalCount, err := s.roomRepo.GetRooms(page, pageSize, utils.NormalizeSearch(search), withPrice)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get rooms: %w", err)
	}
	return rooms, totalCount, nil
}

func (s *roomService) UpdateRoom(roomID int64, req UpdateRoomRequest) (*models.Room, error) {
	room, err := s.roomRepo.GetRoomByID(roomID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to find room for update: %w", err)
	}

	if req.NamaRoom != nil {
		if strings.TrimSpace(*req.NamaRoom) == "" {
			return nil, fmt.Errorf("%w: nama_room must not be empty", ErrRoomValidation)
		}
		room.NamaRoom = strings.TrimSpace(*req.NamaRoom)
	}
	if req.TipeRoom != nil {
		if !models.IsValidRoomType(*req.TipeRoom) {
			return nil, fmt.Errorf("%w: tipe_room must be %q or %q", ErrRoomValidation, models.RoomTypeVIP, models.RoomTypeReguler)
		}
		room.TipeRoom = *req.TipeRoom
	}
	if req.Kapasitas != nil {
		room.Kapasitas = req.Kapasitas
	}
	if req.HargaPerJam != nil && *req.HargaPerJam < 0 {
		return nil, fmt.Errorf("%w: harga_per_jam must not be negative", ErrRoomValidation)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction for room update: %w", err)
	}
	defer tx.Rollback()

	if err = s.roomRepo.UpdateRoom(tx, room); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to update room in repository: %w", err)
	}
	if req.HargaPerJam != nil {
		if err = s.roomRepo.UpsertRoomPrice(tx, roomID, *req.HargaPerJam); err != nil {
			return nil, fmt.Errorf("failed to update room price: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit room update: %w", err)
	}
	return s.roomRepo.GetRoomByID(roomID)
}

// DeleteRoom removes the room and everything hanging off it in dependency
// order: price rows, food orders of its reservations, reservations, game
// installs on its units, units, then the room itself. One transaction, so a
// failure anywhere leaves the room intact.
func (s *roomService) DeleteRoom(roomID int64) error {
	if _, err := s.roomRepo.GetRoomByID(roomID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrRoomNotFound
		}
		return fmt.Errorf("failed to find room for deletion: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for room deletion: %w", err)
	}
	defer tx.Rollback()

	if err = s.roomRepo.DeletePriceByRoom(tx, roomID); err != nil {
		return fmt.Errorf("failed to delete room prices: %w", err)
	}
	if err = s.foodRepo.DeleteOrderFoodByRoom(tx, roomID); err != nil {
		return fmt.Errorf("failed to delete food orders for room: %w", err)
	}
	if err = s.reservationRepo.DeleteReservationsByRoom(tx, roomID); err != nil {
		return fmt.Errorf("failed to delete reservations for room: %w", err)
	}
	if err = s.unitRepo.DeleteInstallsByRoom(tx, roomID); err != nil {
		return fmt.Errorf("failed to delete game installs for room: %w", err)
	}
	if err = s.unitRepo.DeleteUnitsByRoom(tx, roomID); err != nil {
		return fmt.Errorf("failed to delete units for room: %w", err)
	}
	if err = s.roomRepo.DeleteRoom(tx, roomID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrRoomNotFound
		}
		return fmt.Errorf("failed to delete room: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit room deletion: %w", err)
	}
	return nil
}
