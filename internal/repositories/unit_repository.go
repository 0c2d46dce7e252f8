package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"rental_backend/internal/models"
)

// UnitRepository defines the interface for unit and game-install operations.
type UnitRepository interface {
	CreateUnit(executor SQLExecutor, unit *models.Unit) (int64, error)
	GetUnitByID(id int64) (*models.Unit, error)
	GetUnits(page, pageSize int, search string) ([]models.Unit, int, error)
	UpdateUnit(executor SQLExecutor, unit *models.Unit) error
	DeleteUnit(executor SQLExecutor, id int64) error
	DeleteUnitsByRoom(executor SQLExecutor, roomID int64) error

	GetUnitGames(unitID int64) ([]models.UnitGame, error)
	FindInstall(unitID, gameID int64) (*models.UnitGame, error)
	CreateInstall(executor SQLExecutor, install *models.UnitGame) (int64, error)
	DeleteInstall(executor SQLExecutor, installID int64) error
	DeleteInstallsByRoom(executor SQLExecutor, roomID int64) error
}

type unitRepository struct {
	db *sql.DB
}

// NewUnitRepository creates a new instance of UnitRepository.
func NewUnitRepository(db *sql.DB) UnitRepository {
	return &unitRepository{db: db}
}

func (r *unitRepository) CreateUnit(executor SQLExecutor, unit *models.Unit) (int64, error) {
	query := `INSERT INTO unit (nama_unit, id_room, deskripsi)
	          VALUES ($1, $2, $3)
	          RETURNING id_unit`

	err := executor.QueryRow(query, unit.NamaUnit, unit.RoomID, unit.Deskripsi).Scan(&unit.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating unit: %v", ErrDatabaseError, err)
	}
	return unit.ID, nil
}

func (r *unitRepository) GetUnitByID(id int64) (*models.Unit, error) {
	query := `SELECT u.id_unit, u.nama_unit, u.id_room, u.deskripsi,
	                 r.id_room, r.nama_room, r.tipe_room, r.kapasitas
	          FROM unit u
	          JOIN room r ON u.id_room = r.id_room
	          WHERE u.id_unit = $1`

	var unit models.Unit
	var room models.Room
	var kapasitas sql.NullInt32
	err := r.db.QueryRow(query, id).Scan(
		&unit.ID, &unit.NamaUnit, &unit.RoomID, &unit.Deskripsi,
		&room.ID, &room.NamaRoom, &room.TipeRoom, &kapasitas,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting unit by ID %d: %v", ErrDatabaseError, id, err)
	}
	if kapasitas.Valid {
		capacity := int(kapasitas.Int32)
		room.Kapasitas = &capacity
	}
	unit.Room = &room
	return &unit, nil
}

// GetUnits lists units with their room and installed-games count. Search
// matches on unit name, description, or room name.
func (r *unitRepository) GetUnits(page, pageSize int, search string) ([]models.Unit, int, error) {
	units := []models.Unit{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT u.id_unit, u.nama_unit, u.id_room, u.deskripsi,
	        r.id_room, r.nama_room, r.tipe_room, r.kapasitas,
	        (SELECT COUNT(*) FROM unit_game ug WHERE ug.id_unit = u.id_unit) AS installed_games,
	        COUNT(*) OVER() AS total_count
	 FROM unit u
	 JOIN room r ON u.id_room = r.id_room`)

	var args []interface{}
	argCount := 1

	if search != "" {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE (u.nama_unit ILIKE $%d OR u.deskripsi ILIKE $%d OR r.nama_room ILIKE $%d)", argCount, argCount, argCount))
		args = append(args, "%"+search+"%")
		argCount++
	}
	queryBuilder.WriteString(" ORDER BY u.id_unit ASC")

	if pageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, pageSize)
		argCount++
		if page > 0 {
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, (page-1)*pageSize)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying units: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var unit models.Unit
		var room models.Room
		var kapasitas sql.NullInt32
		var installed int
		if err := rows.Scan(
			&unit.ID, &unit.NamaUnit, &unit.RoomID, &unit.Deskripsi,
			&room.ID, &room.NamaRoom, &room.TipeRoom, &kapasitas,
			&installed, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning unit: %v", ErrDatabaseError, err)
		}
		if kapasitas.Valid {
			capacity := int(kapasitas.Int32)
			room.Kapasitas = &capacity
		}
		unit.Room = &room
		unit.InstalledGames = &installed
		units = append(units, unit)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating unit rows: %v", ErrDatabaseError, err)
	}
	return units, totalCount, nil
}

func (r *unitRepository) UpdateUnit(executor SQLExecutor, unit *models.Unit) error {
	query := `UPDATE unit SET nama_unit = $1, id_room = $2, deskripsi = $3 WHERE id_unit = $4`

	result, err := executor.Exec(query, unit.NamaUnit, unit.RoomID, unit.Deskripsi, unit.ID)
	if err != nil {
		return fmt.Errorf("%w: updating unit ID %d: %v", ErrDatabaseError, unit.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for unit ID %d: %v", ErrDatabaseError, unit.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *unitRepository) DeleteUnit(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM unit WHERE id_unit = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting unit ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for deleting unit ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *unitRepository) DeleteUnitsByRoom(executor SQLExecutor, roomID int64) error {
	if _, err := executor.Exec(`DELETE FROM unit WHERE id_room = $1`, roomID); err != nil {
		return fmt.Errorf("%w: deleting units for room ID %d: %v", ErrDatabaseError, roomID, err)
	}
	return nil
}

func (r *unitRepository) GetUnitGames(unitID int64) ([]models.UnitGame, error) {
	query := `SELECT ug.id_install, ug.id_unit, ug.id_game, g.id_game, g.nama_game
	          FROM unit_game ug
	          JOIN game_list g ON ug.id_game = g.id_game
	          WHERE ug.id_unit = $1
	          ORDER BY ug.id_install ASC`

	rows, err := r.db.Query(query, unitID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying unit games for unit ID %d: %v", ErrDatabaseError, unitID, err)
	}
	defer rows.Close()

	installs := []models.UnitGame{}
	for rows.Next() {
		var install models.UnitGame
		var game models.GameList
		if err := rows.Scan(&install.ID, &install.UnitID, &install.GameID, &game.ID, &game.NamaGame); err != nil {
			return nil, fmt.Errorf("%w: scanning unit game: %v", ErrDatabaseError, err)
		}
		install.Game = &game
		installs = append(installs, install)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating unit game rows: %v", ErrDatabaseError, err)
	}
	return installs, nil
}

func (r *unitRepository) FindInstall(unitID, gameID int64) (*models.UnitGame, error) {
	var install models.UnitGame
	query := `SELECT id_install, id_unit, id_game FROM unit_game WHERE id_unit = $1 AND id_game = $2`
	err := r.db.QueryRow(query, unitID, gameID).Scan(&install.ID, &install.UnitID, &install.GameID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding install for unit %d game %d: %v", ErrDatabaseError, unitID, gameID, err)
	}
	return &install, nil
}

func (r *unitRepository) CreateInstall(executor SQLExecutor, install *models.UnitGame) (int64, error) {
	query := `INSERT INTO unit_game (id_unit, id_game) VALUES ($1, $2) RETURNING id_install`
	err := executor.QueryRow(query, install.UnitID, install.GameID).Scan(&install.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: installing game %d on unit %d: %v", ErrDatabaseError, install.GameID, install.UnitID, err)
	}
	return install.ID, nil
}

func (r *unitRepository) DeleteInstall(executor SQLExecutor, installID int64) error {
	result, err := executor.Exec(`DELETE FROM unit_game WHERE id_install = $1`, installID)
	if err != nil {
		return fmt.Errorf("%w: deleting install ID %d: %v", ErrDatabaseError, installID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for deleting install ID %d: %v", ErrDatabaseError, installID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *unitRepository) DeleteInstallsByRoom(executor SQLExecutor, roomID int64) error {
	query := `DELETE FROM unit_game WHERE id_unit IN (SELECT id_unit FROM unit WHERE id_room = $1)`
	if _, err := executor.Exec(query, roomID); err != nil {
		return fmt.Errorf("%w: deleting installs for room ID %d: %v", ErrDatabaseError, roomID, err)
	}
	return nil
}
