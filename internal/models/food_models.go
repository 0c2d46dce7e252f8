package models

// FoodList is a food catalog entry.
type FoodList struct {
	ID          int64   `json:"id_food" db:"id_food"`
	NamaMakanan string  `json:"nama_makanan" db:"nama_makanan" binding:"required"`
	Harga       float64 `json:"harga" db:"harga"`
}

// OrderFood links a food item to the reservation that ordered it.
type OrderFood struct {
	ID            int64 `json:"id_order" db:"id_order"`
	ReservationID int64 `json:"reservation_id" db:"reservation_id"`
	FoodID        int64 `json:"food_id" db:"food_id"`
	Jumlah        int   `json:"jumlah" db:"jumlah"`

	Food *FoodList `json:"food,omitempty"`
}
