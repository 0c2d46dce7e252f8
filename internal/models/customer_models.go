package models

// Membership represents a loyalty tier customers can subscribe to.
type Membership struct {
	ID            int64    `json:"id_membership" db:"id_membership"`
	NamaTier      string   `json:"nama_tier" db:"nama_tier" binding:"required"`
	DiskonPersen  *float64 `json:"diskon_persen,omitempty" db:"diskon_persen"`
	PoinBonus     *int     `json:"poin_bonus,omitempty" db:"poin_bonus"`
}

// Customer represents a guest of the rental business.
// MembershipID is nullable; walk-in customers created during booking carry
// only a name.
type Customer struct {
	ID           int64       `json:"id_customer" db:"id_customer"`
	Nama         string      `json:"nama" db:"nama" binding:"required"`
	NoHP         *string     `json:"no_hp,omitempty" db:"no_hp"`
	MembershipID *int64      `json:"membership_id" db:"membership_id"`
	Membership   *Membership `json:"membership,omitempty"`
}
