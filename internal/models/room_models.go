package models

// Room types recognized by the rental business.
const (
	RoomTypeVIP     = "vip"
	RoomTypeReguler = "reguler"
)

// IsValidRoomType checks if the provided string is a known room type.
func IsValidRoomType(tipe string) bool {
	return tipe == RoomTypeVIP || tipe == RoomTypeReguler
}

// Room represents a rentable room.
type Room struct {
	ID        int64   `json:"id_room" db:"id_room"`
	NamaRoom  string  `json:"nama_room" db:"nama_room" binding:"required"`
	TipeRoom  string  `json:"tipe_room" db:"tipe_room" binding:"required"`
	Kapasitas *int    `json:"kapasitas,omitempty" db:"kapasitas"`

	// HargaPerJam is populated from the room's price_list row on with-price reads.
	HargaPerJam *float64 `json:"harga_per_jam,omitempty"`
}

// PriceList holds a room's current hourly rate. Each room has at most one row.
type PriceList struct {
	ID          int64   `json:"id_price_list" db:"id_price_list"`
	RoomID      int64   `json:"id_room" db:"id_room"`
	HargaPerJam float64 `json:"harga_per_jam" db:"harga_per_jam"`
}
