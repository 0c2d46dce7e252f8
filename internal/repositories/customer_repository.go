package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"rental_backend/internal/models"

	"github.com/lib/pq"
)

// CustomerRepository defines the interface for customer-related database operations.
type CustomerRepository interface {
	CreateCustomer(executor SQLExecutor, customer *models.Customer) (int64, error)
	GetCustomerByID(id int64) (*models.Customer, error)
	FindCustomerByName(nama string) (*models.Customer, error)
	GetCustomers(page, pageSize int, search string) ([]models.Customer, int, error)
	UpdateCustomer(executor SQLExecutor, customer *models.Customer) error
	DeleteCustomer(executor SQLExecutor, id int64) error
	CountCustomers() (int, error)
}

type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository creates a new instance of CustomerRepository.
func NewCustomerRepository(db *sql.DB) CustomerRepository {
	return &customerRepository{db: db}
}

const selectCustomerFields = `
	c.id_customer, c.nama, c.no_hp, c.membership_id,
	m.id_membership, m.nama_tier, m.diskon_persen, m.poin_bonus
`

const customerJoins = `
	FROM customer c
	LEFT JOIN membership m ON c.membership_id = m.id_membership
`

// scanCustomerRow scans a customer row with its joined membership.
func scanCustomerRow(row scanner, isList bool) (*models.Customer, int, error) {
	var customer models.Customer
	var membershipID sql.NullInt64
	var namaTier sql.NullString
	var diskonPersen sql.NullFloat64
	var poinBonus sql.NullInt32
	var totalCount int

	scanDest := []interface{}{
		&customer.ID, &customer.Nama, &customer.NoHP, &customer.MembershipID,
		&membershipID, &namaTier, &diskonPersen, &poinBonus,
	}
	if isList {
		scanDest = append(scanDest, &totalCount)
	}

	if err := row.Scan(scanDest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("%w: scanning customer: %v", ErrDatabaseError, err)
	}

	if membershipID.Valid {
		membership := models.Membership{
			ID:       membershipID.Int64,
			NamaTier: namaTier.String,
		}
		if diskonPersen.Valid {
			membership.DiskonPersen = &diskonPersen.Float64
		}
		if poinBonus.Valid {
			bonus := int(poinBonus.Int32)
			membership.PoinBonus = &bonus
		}
		customer.Membership = &membership
	}
	return &customer, totalCount, nil
}

func (r *customerRepository) CreateCustomer(executor SQLExecutor, customer *models.Customer) (int64, error) {
	query := `INSERT INTO customer (nama, no_hp, membership_id)
	          VALUES ($1, $2, $3)
	          RETURNING id_customer`

	err := executor.QueryRow(query, customer.Nama, customer.NoHP, customer.MembershipID).Scan(&customer.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return 0, fmt.Errorf("%w: membership_id %v (constraint: %s)", ErrForeignKey, customer.MembershipID, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating customer: %v", ErrDatabaseError, err)
	}
	return customer.ID, nil
}

func (r *customerRepository) GetCustomerByID(id int64) (*models.Customer, error) {
	query := "SELECT " + selectCustomerFields + customerJoins + " WHERE c.id_customer = $1"
	customer, _, err := scanCustomerRow(r.db.QueryRow(query, id), false)
	return customer, err
}

// FindCustomerByName returns the first customer with an exact name match.
// Name is not unique; the lowest id wins.
func (r *customerRepository) FindCustomerByName(nama string) (*models.Customer, error) {
	query := "SELECT " + selectCustomerFields + customerJoins +
		" WHERE c.nama = $1 ORDER BY c.id_customer ASC LIMIT 1"
	customer, _, err := scanCustomerRow(r.db.QueryRow(query, nama), false)
	return customer, err
}

func (r *customerRepository) GetCustomers(page, pageSize int, search string) ([]models.Customer, int, error) {
	customers := []models.Customer{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectCustomerFields + ", COUNT(*) OVER() AS total_count " + customerJoins)

	var args []interface{}
	argCount := 1

	if search != "" {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE (c.nama ILIKE $%d OR c.no_hp ILIKE $%d)", argCount, argCount))
		args = append(args, "%"+search+"%")
		argCount++
	}
	queryBuilder.WriteString(" ORDER BY c.id_customer ASC")

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
		return nil, 0, fmt.Errorf("%w: querying customers: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		customer, scannedTotal, scanErr := scanCustomerRow(rows, true)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		customers = append(customers, *customer)
		totalCount = scannedTotal
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating customer rows: %v", ErrDatabaseError, err)
	}
	return customers, totalCount, nil
}

func (r *customerRepository) UpdateCustomer(executor SQLExecutor, customer *models.Customer) error {
	query := `UPDATE customer SET nama = $1, no_hp = $2, membership_id = $3 WHERE id_customer = $4`

	result, err := executor.Exec(query, customer.Nama, customer.NoHP, customer.MembershipID, customer.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return fmt.Errorf("%w: membership_id %v (constraint: %s)", ErrForeignKey, customer.MembershipID, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating customer ID %d: %v", ErrDatabaseError, customer.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for customer ID %d: %v", ErrDatabaseError, customer.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *customerRepository) DeleteCustomer(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM customer WHERE id_customer = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return fmt.Errorf("%w: customer ID %d is referenced by other records (constraint: %s)", ErrForeignKey, id, pqErr.Constraint)
		}
		return fmt.Errorf("%w: deleting customer ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for deleting customer ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *customerRepository) CountCustomers() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM customer`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting customers: %v", ErrDatabaseError, err)
	}
	return count, nil
}
