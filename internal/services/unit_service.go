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
	ErrUnitNotFound         = errors.New("unit not found")
	ErrUnitValidation       = errors.New("unit data validation error")
	ErrRoomForUnitNotFound  = errors.New("room specified for unit not found")
	ErrGameForUnitNotFound  = errors.New("game specified for install not found")
	ErrGameAlreadyInstalled = errors.New("game is already installed on this unit")
	ErrInstallNotFound      = errors.New("game install not found")
)

type CreateUnitRequest struct {
	NamaUnit  string  `json:"nama_unit" binding:"required"`
	RoomID    int64   `json:"id_room" binding:"required"`
	Deskripsi *string `json:"deskripsi"`
}

type UpdateUnitRequest struct {
	NamaUnit  *string `json:"nama_unit"`
	RoomID    *int64  `json:"id_room"`
	Deskripsi *string `json:"deskripsi"`
}

type InstallGameRequest struct {
	UnitID int64 `json:"id_unit" binding:"required"`
	GameID int64 `json:"id_game" binding:"required"`
}

type UnitService interface {
	CreateUnit(req CreateUnitRequest) (*models.Unit, error)
	GetUnitByID(unitID int64) (*models.Unit, error)
	GetUnits(page, pageSize int, search string, all bool) ([]models.Unit, int, error)
	UpdateUnit(unitID int64, req UpdateUnitRequest) (*models.Unit, error)
	DeleteUnit(unitID int64) error

	GetUnitGames(unitID int64) ([]models.UnitGame, error)
	InstallGame(req InstallGameRequest) (*models.UnitGame, error)
	UninstallGame(installID int64) error
}

type unitService struct {
	unitRepo repositories.UnitRepository
	roomRepo repositories.RoomRepository
	gameRepo repositories.GameRepository
	db       *sql.DB
}

// NewUnitService creates a new instance of UnitService.
func NewUnitService(
	ur repositories.UnitRepository,
	rr repositories.RoomRepository,
	gr repositories.GameRepository,
	db *sql.DB,
) UnitService {
	return &unitService{unitRepo: ur, roomRepo: rr, gameRepo: gr, db: db}
}

func (s *unitService) validateRoom(roomID int64) error {
	_, err := s.roomRepo.GetRoomByID(roomID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: ID %d", ErrRoomForUnitNotFound, roomID)
		}
		return fmt.Errorf("failed to validate room for unit: %w", err)
	}
	return nil
}

func (s *unitService) CreateUnit(req CreateUnitRequest) (*models.Unit, error) {
	if strings.TrimSpace(req.NamaUnit) == "" {
		return nil, fmt.Errorf("%w: nama_unit is required", ErrUnitValidation)
	}
	if err := s.validateRoom(req.RoomID); err != nil {
		return nil, err
	}

	unit := &models.Unit{
		NamaUnit:  strings.TrimSpace(req.NamaUnit),
		RoomID:    req.RoomID,
		Deskripsi: req.Deskripsi,
	}
	if _, err := s.unitRepo.CreateUnit(s.db, unit); err != nil {
		return nil, fmt.Errorf("failed to create unit in repository: %w", err)
	}
	return s.unitRepo.GetUnitByID(unit.ID)
}

func (s *unitService) GetUnitByID(unitID int64) (*models.Unit, error) {
	unit, err := s.unitRepo.GetUnitByID(unitID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, fmt.Errorf("failed to get unit by ID: %w", err)
	}
	return unit, nil
}

func (s *unitService) GetUnits(page, pageSize int, search string, all bool) ([]models.Unit, int, error) {
	if all {
		page, pageSize = 0, 0
	} else {
		page, pageSize = clampPage(page, pageSize)
	}

	units, totalCount, err := s.unitRepo.GetUnits(page, pageSize, utils.NormalizeSearch(search))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get units: %w", err)
	}
	return units, totalCount, nil
}

func (s *unitService) UpdateUnit(unitID int64, req UpdateUnitRequest) (*models.Unit, error) {
	unit, err := s.unitRepo.GetUnitByID(unitID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, fmt.Errorf("failed to find unit for update: %w", err)
	}

	if req.NamaUnit != nil {
		if strings.TrimSpace(*req.NamaUnit) == "" {
			return nil, fmt.Errorf("%w: nama_unit must not be empty", ErrUnitValidation)
		}
		unit.NamaUnit = strings.TrimSpace(*req.NamaUnit)
	}
	if req.RoomID != nil {
		if err = s.validateRoom(*req.RoomID); err != nil {
			return nil, err
		}
		unit.RoomID = *req.RoomID
	}
	if req.Deskripsi != nil {
		unit.Deskripsi = req.Deskripsi
	}

	if err = s.unitRepo.UpdateUnit(s.db, unit); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, fmt.Errorf("failed to update unit in repository: %w", err)
	}
	return s.unitRepo.GetUnitByID(unitID)
}

func (s *unitService) DeleteUnit(unitID int64) error {
	err := s.unitRepo.DeleteUnit(s.db, unitID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUnitNotFound
		}
		return fmt.Errorf("failed to delete unit: %w", err)
	}
	return nil
}

func (s *unitService) GetUnitGames(unitID int64) ([]models.UnitGame, error) {
	if _, err := s.unitRepo.GetUnitByID(unitID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, fmt.Errorf("failed to find unit for game list: %w", err)
	}
	installs, err := s.unitRepo.GetUnitGames(unitID)
	if err != nil {
		return nil, fmt.Errorf("failed to get unit games: %w", err)
	}
	return installs, nil
}

// InstallGame installs a game on a unit. The same game cannot be installed
// twice on one unit.
func (s *unitService) InstallGame(req InstallGameRequest) (*models.UnitGame, error) {
	if _, err := s.unitRepo.GetUnitByID(req.UnitID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrUnitNotFound, req.UnitID)
		}
		return nil, fmt.Errorf("failed to validate unit for install: %w", err)
	}
	if _, err := s.gameRepo.GetGameByID(req.GameID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrGameForUnitNotFound, req.GameID)
		}
		return nil, fmt.Errorf("failed to validate game for install: %w", err)
	}

	_, err := s.unitRepo.FindInstall(req.UnitID, req.GameID)
	if err == nil {
		return nil, ErrGameAlreadyInstalled
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing install: %w", err)
	}

	install := &models.UnitGame{UnitID: req.UnitID, GameID: req.GameID}
	if _, err = s.unitRepo.CreateInstall(s.db, install); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrGameAlreadyInstalled
		}
		return nil, fmt.Errorf("failed to create install: %w", err)
	}
	return install, nil
}

func (s *unitService) UninstallGame(installID int64) error {
	err := s.unitRepo.DeleteInstall(s.db, installID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrInstallNotFound
		}
		return fmt.Errorf("failed to delete install: %w", err)
	}
	return nil
}
