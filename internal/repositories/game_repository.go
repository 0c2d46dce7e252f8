package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"rental_backend/internal/models"

	"github.com/lib/pq"
)

// GameRepository defines the interface for the game catalog.
type GameRepository interface {
	CreateGame(executor SQLExecutor, game *models.GameList) (int64, error)
	GetGameByID(id int64) (*models.GameList, error)
	GetGames() ([]models.GameList, error)
	UpdateGame(executor SQLExecutor, game *models.GameList) error
	DeleteGame(executor SQLExecutor, id int64) error
}

type gameRepository struct {
	db *sql.DB
}

// NewGameRepository creates a new instance of GameRepository.
func NewGameRepository(db *sql.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) CreateGame(executor SQLExecutor, game *models.GameList) (int64, error) {
	query := `INSERT INTO game_list (nama_game) VALUES ($1) RETURNING id_game`
	err := executor.QueryRow(query, game.NamaGame).Scan(&game.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating game: %v", ErrDatabaseError, err)
	}
	return game.ID, nil
}

func (r *gameRepository) GetGameByID(id int64) (*models.GameList, error) {
	var game models.GameList
	err := r.db.QueryRow(`SELECT id_game, nama_game FROM game_list WHERE id_game = $1`, id).
		Scan(&game.ID, &game.NamaGame)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting game by ID %d: %v", ErrDatabaseError, id, err)
	}
	return &game, nil
}

func (r *gameRepository) GetGames() ([]models.GameList, error) {
	rows, err := r.db.Query(`SELECT id_game, nama_game FROM game_list ORDER BY id_game ASC`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying games: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	games := []models.GameList{}
	for rows.Next() {
		var game models.GameList
		if err := rows.Scan(&game.ID, &game.NamaGame); err != nil {
			return nil, fmt.Errorf("%w: scanning game: %v", ErrDatabaseError, err)
		}
		games = append(games, game)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating game rows: %v", ErrDatabaseError, err)
	}
	return games, nil
}

func (r *gameRepository) UpdateGame(executor SQLExecutor, game *models.GameList) error {
	result, err := executor.Exec(`UPDATE game_list SET nama_game = $1 WHERE id_game = $2`, game.NamaGame, game.ID)
	if err != nil {
		return fmt.Errorf("%w: updating game ID %d: %v", ErrDatabaseError, game.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for game ID %d: %v", ErrDatabaseError, game.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gameRepository) DeleteGame(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM game_list WHERE id_game = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return fmt.Errorf("%w: game ID %d is installed on units (constraint: %s)", ErrForeignKey, id, pqErr.Constraint)
		}
		return fmt.Errorf("%w: deleting game ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for deleting game ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
