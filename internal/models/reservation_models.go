package models

import "time"

// Payment statuses derived from the Reservation/Payment pair. The status is
// never stored; it is recomputed on every read so that total changes after
// food orders are reflected immediately.
const (
	PaymentStatusUnpaid        = "unpaid"
	PaymentStatusPartiallyPaid = "partially_paid"
	PaymentStatusPaid          = "paid"
)

// DerivePaymentStatus computes the tri-state payment status for a reservation
// total and its (possibly absent) payment record.
func DerivePaymentStatus(totalHarga float64, payment *Payment) string {
	if payment == nil || payment.TotalBayar <= 0 {
		return PaymentStatusUnpaid
	}
	if payment.TotalBayar < totalHarga {
		return PaymentStatusPartiallyPaid
	}
	return PaymentStatusPaid
}

// Payment records a (full or partial) payment for a reservation.
type Payment struct {
	ID            int64   `json:"id_payment" db:"id_payment"`
	TotalBayar    float64 `json:"total_bayar" db:"total_bayar"`
	TanggalBayar  string  `json:"tanggal_bayar" db:"tanggal_bayar"`
	PaymentMethod string  `json:"payment_method" db:"payment_method"`
}

// Reservation is a booking of one room over a time interval. CustomerID is
// nullable (walk-in guests); HandledBy references the staff user that recorded
// the booking.
type Reservation struct {
	ID               int64     `json:"id_reservation" db:"id_reservation"`
	CustomerID       *int64    `json:"customer_id" db:"customer_id"`
	RoomID           int64     `json:"id_room" db:"id_room"`
	WaktuMulai       time.Time `json:"waktu_mulai" db:"waktu_mulai"`
	WaktuSelesai     time.Time `json:"waktu_selesai" db:"waktu_selesai"`
	Durasi           int       `json:"durasi" db:"durasi"`
	TanggalReservasi string    `json:"tanggal_reservasi" db:"tanggal_reservasi"`
	TotalHarga       float64   `json:"total_harga" db:"total_harga"`
	PaymentID        *int64    `json:"payment_id,omitempty" db:"payment_id"`
	HandledBy        *int64    `json:"handled_by,omitempty" db:"handled_by"`

	CustomerName *string  `json:"customer_name,omitempty"`
	NamaRoom     *string  `json:"nama_room,omitempty"`
	Payment      *Payment `json:"payment,omitempty"`
}

// ReservationFilters defines the available filters for querying reservations.
type ReservationFilters struct {
	Date     *string
	Unpaid   bool
	Page     int
	PageSize int
}
