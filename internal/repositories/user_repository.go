package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"rental_backend/internal/models"
)

// UserRepository defines the interface for staff account persistence.
type UserRepository interface {
	CreateUser(executor SQLExecutor, user *models.User) (int64, error)
	GetUserByID(id int64) (*models.User, error)
	FindUserByUsernameOrEmail(login string) (*models.User, error)
	GetUsers() ([]models.User, error)
	UpdateUser(executor SQLExecutor, user *models.User) error
	DeleteUser(executor SQLExecutor, id int64) error
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const selectUserFields = `id_user, username, email, password_hash, role`

func scanUserRow(row scanner) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning user: %v", ErrDatabaseError, err)
	}
	return &user, nil
}

func (r *userRepository) CreateUser(executor SQLExecutor, user *models.User) (int64, error) {
	query := `INSERT INTO users (username, email, password_hash, role)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id_user`

	err := executor.QueryRow(query, user.Username, user.Email, user.PasswordHash, user.Role).Scan(&user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: username or email already taken", ErrDuplicateKey)
		}
		return 0, fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	return user.ID, nil
}

func (r *userRepository) GetUserByID(id int64) (*models.User, error) {
	query := "SELECT " + selectUserFields + " FROM users WHERE id_user = $1"
	return scanUserRow(r.db.QueryRow(query, id))
}

// FindUserByUsernameOrEmail looks up a user by either login identifier.
func (r *userRepository) FindUserByUsernameOrEmail(login string) (*models.User, error) {
	query := "SELECT " + selectUserFields + " FROM users WHERE username = $1 OR email = $1 LIMIT 1"
	return scanUserRow(r.db.QueryRow(query, login))
}

func (r *userRepository) GetUsers() ([]models.User, error) {
	query := "SELECT " + selectUserFields + " FROM users ORDER BY id_user ASC"

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying users: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, scanErr := scanUserRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		users = append(users, *user)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating user rows: %v", ErrDatabaseError, err)
	}
	return users, nil
}

func (r *userRepository) UpdateUser(executor SQLExecutor, user *models.User) error {
	query := `UPDATE users SET username = $1, email = $2, password_hash = $3, role = $4
	          WHERE id_user = $5`

	result, err := executor.Exec(query, user.Username, user.Email, user.PasswordHash, user.Role, user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: username or email already taken", ErrDuplicateKey)
		}
		return fmt.Errorf("%w: updating user ID %d: %v", ErrDatabaseError, user.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for user ID %d: %v", ErrDatabaseError, user.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) DeleteUser(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM users WHERE id_user = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting user ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for deleting user ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
