package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"rental_backend/internal/models"

	"github.com/lib/pq"
)

// MembershipRepository defines the interface for membership tier operations.
type MembershipRepository interface {
	CreateMembership(executor SQLExecutor, membership *models.Membership) (int64, error)
	GetMembershipByID(id int64) (*models.Membership, error)
	GetMemberships(page, pageSize int, search string) ([]models.Membership, int, error)
	UpdateMembership(executor SQLExecutor, membership *models.Membership) error
	DeleteMembership(executor SQLExecutor, id int64) error
}

type membershipRepository struct {
	db *sql.DB
}

// NewMembershipRepository creates a new instance of MembershipRepository.
func NewMembershipRepository(db *sql.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func scanMembership(row scanner, isList bool) (*models.Membership, int, error) {
	var membership models.Membership
	var diskonPersen sql.NullFloat64
	var poinBonus sql.NullInt32
	var totalCount int

	scanDest := []interface{}{&membership.ID, &membership.NamaTier, &diskonPersen, &poinBonus}
	if isList {
		scanDest = append(scanDest, &totalCount)
	}
	if err := row.Scan(scanDest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("%w: scanning membership: %v", ErrDatabaseError, err)
	}
	if diskonPersen.Valid {
		membership.DiskonPersen = &diskonPersen.Float64
	}
	if poinBonus.Valid {
		bonus := int(poinBonus.Int32)
		membership.PoinBonus = &bonus
	}
	return &membership, totalCount, nil
}

func (r *membershipRepository) CreateMembership(executor SQLExecutor, membership *models.Membership) (int64, error) {
	query := `INSERT INTO membership (nama_tier, diskon_persen, poin_bonus)
	          VALUES ($1, $2, $3)
	          RETURNING id_membership`

	err := executor.QueryRow(query, membership.NamaTier, membership.DiskonPersen, membership.PoinBonus).Scan(&membership.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating membership: %v", ErrDatabaseError, err)
	}
	return membership.ID, nil
}

func (r *membershipRepository) GetMembershipByID(id int64) (*models.Membership, error) {
	query := `SELECT id_membership, nama_tier, diskon_persen, poin_bonus FROM membership WHERE id_membership = $1`
	membership, _, err := scanMembership(r.db.QueryRow(query, id), false)
	return membership, err
}

func (r *membershipRepository) GetMemberships(page, pageSize int, search string) ([]models.Membership, int, error) {
	memberships := []models.Membership{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id_membership, nama_tier, diskon_persen, poin_bonus, COUNT(*) OVER() AS total_count FROM membership`)

	var args []interface{}
	argCount := 1

	if search != "" {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE nama_tier ILIKE $%d", argCount))
		args = append(args, "%"+search+"%")
		argCount++
	}
	queryBuilder.WriteString(" ORDER BY id_membership ASC")

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
		return nil, 0, fmt.Errorf("%w: querying memberships: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		membership, scannedTotal, scanErr := scanMembership(rows, true)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		memberships = append(memberships, *membership)
		totalCount = scannedTotal
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating membership rows: %v", ErrDatabaseError, err)
	}
	return memberships, totalCount, nil
}

func (r *membershipRepository) UpdateMembership(executor SQLExecutor, membership *models.Membership) error {
	query := `UPDATE membership SET nama_tier = $1, diskon_persen = $2, poin_bonus = $3 WHERE id_membership = $4`

	result, err := executor.Exec(query, membership.NamaTier, membership.DiskonPersen, membership.PoinBonus, membership.ID)
	if err != nil {
		return fmt.Errorf("%w: updating membership ID %d: %v", ErrDatabaseError, membership.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for membership ID %d: %v", ErrDatabaseError, membership.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMembership removes a tier. Tiers referenced by customers are protected
// by the foreign key and surface as ErrForeignKey.
func (r *membershipRepository) DeleteMembership(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM membership WHERE id_membership = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return fmt.Errorf("%w: membership ID %d is referenced by customers (constraint: %s)", ErrForeignKey, id, pqErr.Constraint)
		}
		return fmt.Errorf("%w: deleting membership ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for deleting membership ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
