package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"rental_backend/internal/models"
	"rental_backend/internal/repositories"
)

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrGameValidation = errors.New("game data validation error")
	ErrGameInstalled  = errors.New("game is still installed on units")
)

type GameRequest struct {
	NamaGame string `json:"nama_game" binding:"required"`
}

type GameService interface {
	CreateGame(req GameRequest) (*models.GameList, error)
	GetGameByID(gameID int64) (*models.GameList, error)
	GetGames() ([]models.GameList, error)
	UpdateGame(gameID int64, req GameRequest) (*models.GameList, error)
	DeleteGame(gameID int64) error
}

type gameService struct {
	gameRepo repositories.GameRepository
	db       *sql.DB
}

// NewGameService creates a new instance of GameService.
func NewGameService(gr repositories.GameRepository, db *sql.DB) GameService {
	return &gameService{gameRepo: gr, db: db}
}

func (s *gameService) CreateGame(req GameRequest) (*models.GameList, error) {
	if strings.TrimSpace(req.NamaGame) == "" {
		return nil, fmt.Errorf("%w: nama_game is required", ErrGameValidation)
	}
	game := &models.GameList{NamaGame: strings.TrimSpace(req.NamaGame)}
	if _, err := s.gameRepo.CreateGame(s.db, game); err != nil {
		return nil, fmt.Errorf("failed to create game in repository: %w", err)
	}
	return game, nil
}

func (s *gameService) GetGameByID(gameID int64) (*models.GameList, error) {
	game, err := s.gameRepo.GetGameByID(gameID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}
	return game, nil
}

func (s *gameService) GetGames() ([]models.GameList, error) {
	games, err := s.gameRepo.GetGames()
	if err != nil {
		return nil, fmt.Errorf("failed to get games: %w", err)
	}
	return games, nil
}

func (s *gameService) UpdateGame(gameID int64, req GameRequest) (*models.GameList, error) {
	if strings.TrimSpace(req.NamaGame) == "" {
		return nil, fmt.Errorf("%w: nama_game is required", ErrGameValidation)
	}
	game, err := s.gameRepo.GetGameByID(gameID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to find game for update: %w", err)
	}

	game.NamaGame = strings.TrimSpace(req.NamaGame)
	if err = s.gameRepo.UpdateGame(s.db, game); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to update game in repository: %w", err)
	}
	return game, nil
}

func (s *gameService) DeleteGame(gameID int64) error {
	err := s.gameRepo.DeleteGame(s.db, gameID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrGameNotFound
		}
		if errors.Is(err, repositories.ErrForeignKey) {
			return ErrGameInstalled
		}
		return fmt.Errorf("failed to delete game: %w", err)
	}
	return nil
}
