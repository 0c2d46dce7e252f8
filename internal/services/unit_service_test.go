package services

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental_backend/internal/repositories"
)

func newUnitService(db *sql.DB) UnitService {
	return NewUnitService(
		repositories.NewUnitRepository(db),
		repositories.NewRoomRepository(db),
		repositories.NewGameRepository(db),
		db,
	)
}

var unitTestColumns = []string{
	"id_unit", "nama_unit", "id_room", "deskripsi",
	"r_id_room", "nama_room", "tipe_room", "kapasitas",
}

func expectUnitByID(mock sqlmock.Sqlmock, id int64) {
	mock.ExpectQuery(`WHERE u\.id_unit = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(unitTestColumns).
			AddRow(id, "PS5-01", int64(2), nil, int64(2), "Room VIP 1", "vip", 4))
}

func expectGameByID(mock sqlmock.Sqlmock, id int64, nama string) {
	mock.ExpectQuery(`SELECT id_game, nama_game FROM game_list WHERE id_game = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id_game", "nama_game"}).AddRow(id, nama))
}

func TestInstallGame(t *testing.T) {
	t.Run("installs a game on a unit", func(t *testing.T) {
		db, mock := newServiceMockDB(t)
		service := newUnitService(db)

		expectUnitByID(mock, 1)
		expectGameByID(mock, 3, "FIFA 25")
		mock.ExpectQuery(`FROM unit_game WHERE id_unit = \$1 AND id_game = \$2`).
			WithArgs(int64(1), int64(3)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(`INSERT INTO unit_game`).
			WithArgs(int64(1), int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"id_install"}).AddRow(int64(9)))

		install, err := service.InstallGame(InstallGameRequest{UnitID: 1, GameID: 3})
		require.NoError(t, err)
		assert.Equal(t, int64(9), install.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects a duplicate install", func(t *testing.T) {
		db, mock := newServiceMockDB(t)
		service := newUnitService(db)

		expectUnitByID(mock, 1)
		expectGameByID(mock, 3, "FIFA 25")
		mock.ExpectQuery(`FROM unit_game WHERE id_unit = \$1 AND id_game = \$2`).
			WithArgs(int64(1), int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"id_install", "id_unit", "id_game"}).
				AddRow(int64(9), int64(1), int64(3)))

		_, err := service.InstallGame(InstallGameRequest{UnitID: 1, GameID: 3})
		assert.ErrorIs(t, err, ErrGameAlreadyInstalled)
	})

	t.Run("unknown unit", func(t *testing.T) {
		db, mock := newServiceMockDB(t)
		service := newUnitService(db)

		mock.ExpectQuery(`WHERE u\.id_unit = \$1`).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		_, err := service.InstallGame(InstallGameRequest{UnitID: 99, GameID: 3})
		assert.ErrorIs(t, err, ErrUnitNotFound)
	})

	t.Run("unknown game", func(t *testing.T) {
		db, mock := newServiceMockDB(t)
		service := newUnitService(db)

		expectUnitByID(mock, 1)
		mock.ExpectQuery(`FROM game_list WHERE id_game = \$1`).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		_, err := service.InstallGame(InstallGameRequest{UnitID: 1, GameID: 99})
		assert.ErrorIs(t, err, ErrGameForUnitNotFound)
	})
}
