package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"rental_backend/internal/models"
)

// RoomRepository defines the interface for room and price-list operations.
// Each room owns at most one price_list row.
type RoomRepository interface {
	CreateRoom(executor SQLExecutor, room *models.Room) (int64, error)
	GetRoomByID(id int64) (*models.Room, error)
	FindRoomByName(namaRoom string) (*models.Room, error)
	GetRooms(page, pageSize int, search string, withPrice bool) ([]models.Room, int, error)
	UpdateRoom(executor SQLExecutor, room *models.Room) error
	DeleteRoom(executor SQLExecutor, id int64) error
	CountRooms() (int, error)

	GetPricePerHour(roomID int64) (float64, error)
	UpsertRoomPrice(executor SQLExecutor, roomID int64, hargaPerJam float64) error
	DeletePriceByRoom(executor SQLExecutor, roomID int64) error
}

type roomRepository struct {
	db *sql.DB
}

// NewRoomRepository creates a new instance of RoomRepository.
func NewRoomRepository(db *sql.DB) RoomRepository {
	return &roomRepository{db: db}
}

func scanRoom(row scanner, withPrice, isList bool) (*models.Room, int, error) {
	var room models.Room
	var kapasitas sql.NullInt32
	var harga sql.NullFloat64
	var totalCount int

	scanDest := []interface{}{&room.ID, &room.NamaRoom, &room.TipeRoom, &kapasitas}
	if withPrice {
		scanDest = append(scanDest, &harga)
	}
	if isList {
		scanDest = append(scanDest, &totalCount)
	}
	if err := row.Scan(scanDest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("%w: scanning room: %v", ErrDatabaseError, err)
	}
	if kapasitas.Valid {
		capacity := int(kapasitas.Int32)
		room.Kapasitas = &capacity
	}
	if harga.Valid {
		room.HargaPerJam = &harga.Float64
	}
	return &room, totalCount, nil
}

func (r *roomRepository) CreateRoom(executor SQLExecutor, room *models.Room) (int64, error) {
	query := `INSERT INTO room (nama_room, tipe_room, kapasitas)
	          VALUES ($1, $2, $3)
	          RETURNING id_room`

	err := executor.QueryRow(query, room.NamaRoom, room.TipeRoom, room.Kapasitas).Scan(&room.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating room: %v", ErrDatabaseError, err)
	}
	return room.ID, nil
}

func (r *roomRepository) GetRoomByID(id int64) (*models.Room, error) {
	query := `SELECT r.id_room, r.nama_room, r.tipe_room, r.kapasitas, p.harga_per_jam
	          FROM room r
	          LEFT JOIN price_list p ON p.id_room = r.id_room
	          WHERE r.id_room = $1`
	room, _, err := scanRoom(r.db.QueryRow(query, id), true, false)
	return room, err
}

// FindRoomByName returns the first room with an exact name match.
func (r *roomRepository) FindRoomByName(namaRoom string) (*models.Room, error) {
	query := `SELECT id_room, nama_room, tipe_room, kapasitas
	          FROM room WHERE nama_room = $1 ORDER BY id_room ASC LIMIT 1`
	room, _, err := scanRoom(r.db.QueryRow(query, namaRoom), false, false)
	return room, err
}

func (r *roomRepository) GetRooms(page, pageSize int, search string, withPrice bool) ([]models.Room, int, error) {
	rooms := []models.Room{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT r.id_room, r.nama_room, r.tipe_room, r.kapasitas")
	if withPrice {
		queryBuilder.WriteString(", p.harga_per_jam")
	}
	queryBuilder.WriteString(", COUNT(*) OVER() AS total_count FROM room r")
	if withPrice {
		queryBuilder.WriteString(" LEFT JOIN price_list p ON p.id_room = r.id_room")
	}

	var args []interface{}
	argCount := 1

	if search != "" {
		// A search term naming a room type matches on tipe_room too.
		normalized := strings.ToLower(strings.TrimSpace(search))
		if models.IsValidRoomType(normalized) {
			queryBuilder.WriteString(fmt.Sprintf(" WHERE (r.nama_room ILIKE $%d OR r.tipe_room = $%d)", argCount, argCount+1))
			args = append(args, "%"+search+"%", normalized)
			argCount += 2
		} else {
			queryBuilder.WriteString(fmt.Sprintf(" WHERE r.nama_room ILIKE $%d", argCount))
			args = append(args, "%"+search+"%")
			argCount++
		}
	}
	queryBuilder.WriteString(" ORDER BY r.id_room ASC")

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
		return nil, 0, fmt.Errorf("%w: querying rooms: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		room, scannedTotal, scanErr := scanRoom(rows, withPrice, true)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		rooms = append(rooms, *room)
		totalCount = scannedTotal
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating room rows: %v", ErrDatabaseError, err)
	}
	return rooms, totalCount, nil
}

func (r *roomRepository) UpdateRoom(executor SQLExecutor, room *models.Room) error {
	query := `UPDATE room SET nama_room = $1, tipe_room = $2, kapasitas = $3 WHERE id_room = $4`

	result, err := executor.Exec(query, room.NamaRoom, room.TipeRoom, room.Kapasitas, room.ID)
	if err != nil {
		return fmt.Errorf("%w: updating room ID %d: %v", ErrDatabaseError, room.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for room ID %d: %v", ErrDatabaseError, room.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *roomRepository) DeleteRoom(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM room WHERE id_room = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting room ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for deleting room ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *roomRepository) CountRooms() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM room`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting rooms: %v", ErrDatabaseError, err)
	}
	return count, nil
}

// GetPricePerHour looks up the room's active price row. Callers fall back to
// the configured default rate on ErrNotFound.
func (r *roomRepository) GetPricePerHour(roomID int64) (float64, error) {
	var harga float64
	err := r.db.QueryRow(`SELECT harga_per_jam FROM price_list WHERE id_room = $1`, roomID).Scan(&harga)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("%w: getting price for room ID %d: %v", ErrDatabaseError, roomID, err)
	}
	return harga, nil
}

// UpsertRoomPrice updates the room's price row, inserting it when absent.
func (r *roomRepository) UpsertRoomPrice(executor SQLExecutor, roomID int64, hargaPerJam float64) error {
	result, err := executor.Exec(`UPDATE price_list SET harga_per_jam = $1 WHERE id_room = $2`, hargaPerJam, roomID)
	if err != nil {
		return fmt.Errorf("%w: updating price for room ID %d: %v", ErrDatabaseError, roomID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for price of room ID %d: %v", ErrDatabaseError, roomID, err)
	}
	if rowsAffected > 0 {
		return nil
	}
	_, err = executor.Exec(`INSERT INTO price_list (id_room, harga_per_jam) VALUES ($1, $2)`, roomID, hargaPerJam)
	if err != nil {
		return fmt.Errorf("%w: inserting price for room ID %d: %v", ErrDatabaseError, roomID, err)
	}
	return nil
}

func (r *roomRepository) DeletePriceByRoom(executor SQLExecutor, roomID int64) error {
	if _, err := executor.Exec(`DELETE FROM price_list WHERE id_room = $1`, roomID); err != nil {
		return fmt.Errorf("%w: deleting price rows for room ID %d: %v", ErrDatabaseError, roomID, err)
	}
	return nil
}
