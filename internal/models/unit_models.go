package models

// Unit is a physical station (e.g. a console) located inside a room.
type Unit struct {
	ID        int64   `json:"id_unit" db:"id_unit"`
	NamaUnit  string  `json:"nama_unit" db:"nama_unit" binding:"required"`
	RoomID    int64   `json:"id_room" db:"id_room" binding:"required"`
	Deskripsi *string `json:"deskripsi,omitempty" db:"deskripsi"`

	Room           *Room `json:"room,omitempty"`
	InstalledGames *int  `json:"installed_games,omitempty"`
}

// GameList is a catalog entry for an installable game.
type GameList struct {
	ID       int64  `json:"id_game" db:"id_game"`
	NamaGame string `json:"nama_game" db:"nama_game" binding:"required"`
}

// UnitGame maps a catalog game onto a unit it is installed on.
type UnitGame struct {
	ID     int64 `json:"id_install" db:"id_install"`
	UnitID int64 `json:"id_unit" db:"id_unit" binding:"required"`
	GameID int64 `json:"id_game" db:"id_game" binding:"required"`

	Game *GameList `json:"game,omitempty"`
}
