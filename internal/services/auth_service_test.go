package services

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"rental_backend/internal/repositories"
	"rental_backend/pkg/utils"
)

var userTestColumns = []string{"id_user", "username", "email", "password_hash", "role"}

func newAuthService(db *sql.DB) AuthService {
	return NewAuthService(repositories.NewUserRepository(db))
}

func expectUserLookup(t *testing.T, mock sqlmock.Sqlmock, login, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(`FROM users WHERE username = \$1 OR email = \$1 LIMIT 1`).
		WithArgs(login).
		WillReturnRows(sqlmock.NewRows(userTestColumns).
			AddRow(int64(1), "admin", "admin@example.com", string(hash), "owner"))
}

func TestLogin(t *testing.T) {
	t.Run("by username", func(t *testing.T) {
		db, mock := newServiceMockDB(t)
		service := newAuthService(db)

		expectUserLookup(t, mock, "admin", "rahasia123")

		result, err := service.Login(LoginRequest{Username: "admin", Password: "rahasia123"})
		require.NoError(t, err)
		assert.Equal(t, "admin", result.User.Username)
		assert.NotEmpty(t, result.Tokens.AccessToken)
		assert.NotEmpty(t, result.Tokens.RefreshToken)
	})

	t.Run("by email", func(t *testing.T) {
		db, mock := newServiceMockDB(t)
		service := newAuthService(db)

		expectUserLookup(t, mock, "admin@example.com", "rahasia123")

		result, err := service.Login(LoginRequest{Email: "admin@example.com", Password: "rahasia123"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.User.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		db, mock := newServiceMockDB(t)
		service := newAuthService(db)

		expectUserLookup(t, mock, "admin", "rahasia123")

		_, err := service.Login(LoginRequest{Username: "admin", Password: "salah"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown login", func(t *testing.T) {
		db, mock := newServiceMockDB(t)
		service := newAuthService(db)

		mock.ExpectQuery(`FROM users WHERE username = \$1 OR email = \$1 LIMIT 1`).
			WithArgs("nobody").
			WillReturnError(sql.ErrNoRows)

		_, err := service.Login(LoginRequest{Username: "nobody", Password: "apa saja"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("blank credentials", func(t *testing.T) {
		db, _ := newServiceMockDB(t)
		service := newAuthService(db)

		_, err := service.Login(LoginRequest{Password: "x"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRefresh(t *testing.T) {
	t.Run("rotates both tokens", func(t *testing.T) {
		db, mock := newServiceMockDB(t)
		service := newAuthService(db)

		refresh, err := utils.GenerateRefreshToken(1, "admin", "owner")
		require.NoError(t, err)

		mock.ExpectQuery(`FROM users WHERE id_user = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(userTestColumns).
				AddRow(int64(1), "admin", "admin@example.com", "hash", "owner"))

		result, err := service.Refresh(refresh)
		require.NoError(t, err)
		assert.NotEmpty(t, result.Tokens.AccessToken)
		assert.NotEmpty(t, result.Tokens.RefreshToken)
	})

	t.Run("rejects an access token", func(t *testing.T) {
		db, _ := newServiceMockDB(t)
		service := newAuthService(db)

		access, err := utils.GenerateAccessToken(1, "admin", "owner")
		require.NoError(t, err)

		_, err = service.Refresh(access)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		db, _ := newServiceMockDB(t)
		service := newAuthService(db)

		_, err := service.Refresh("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
