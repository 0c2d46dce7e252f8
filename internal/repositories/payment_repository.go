package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"rental_backend/internal/models"
)

// PaymentRepository defines the interface for payment persistence.
type PaymentRepository interface {
	CreatePayment(executor SQLExecutor, payment *models.Payment) (int64, error)
	GetPaymentByID(id int64) (*models.Payment, error)
	UpdatePaymentAmount(executor SQLExecutor, id int64, totalBayar float64, tanggalBayar string) error
}

type paymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository creates a new instance of PaymentRepository.
func NewPaymentRepository(db *sql.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) CreatePayment(executor SQLExecutor, payment *models.Payment) (int64, error) {
	query := `INSERT INTO payment (total_bayar, tanggal_bayar, payment_method)
	          VALUES ($1, $2, $3)
	          RETURNING id_payment`

	err := executor.QueryRow(query, payment.TotalBayar, payment.TanggalBayar, payment.PaymentMethod).Scan(&payment.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating payment: %v", ErrDatabaseError, err)
	}
	return payment.ID, nil
}

func (r *paymentRepository) GetPaymentByID(id int64) (*models.Payment, error) {
	query := `SELECT id_payment, total_bayar, tanggal_bayar, payment_method
	          FROM payment WHERE id_payment = $1`

	var payment models.Payment
	err := r.db.QueryRow(query, id).Scan(&payment.ID, &payment.TotalBayar, &payment.TanggalBayar, &payment.PaymentMethod)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: fetching payment ID %d: %v", ErrDatabaseError, id, err)
	}
	return &payment, nil
}

func (r *paymentRepository) UpdatePaymentAmount(executor SQLExecutor, id int64, totalBayar float64, tanggalBayar string) error {
	query := `UPDATE payment SET total_bayar = $1, tanggal_bayar = $2 WHERE id_payment = $3`

	result, err := executor.Exec(query, totalBayar, tanggalBayar, id)
	if err != nil {
		return fmt.Errorf("%w: updating payment ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for payment ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
