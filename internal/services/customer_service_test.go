package services

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental_backend/internal/repositories"
)

func newCustomerService(db *sql.DB) CustomerService {
	return NewCustomerService(
		repositories.NewCustomerRepository(db),
		repositories.NewMembershipRepository(db),
		db,
	)
}

func TestCreateCustomer(t *testing.T) {
	t.Run("rejects an unknown membership", func(t *testing.T) {
		db, mock := newServiceMockDB(t)
		service := newCustomerService(db)

		mock.ExpectQuery(`FROM membership WHERE id_membership = \$1`).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		_, err := service.CreateCustomer(CreateCustomerRequest{Nama: "Budi", MembershipID: 99})
		assert.ErrorIs(t, err, ErrMembershipForCustomerAbsent)
	})

	t.Run("creates with a valid membership", func(t *testing.T) {
		db, mock := newServiceMockDB(t)
		service := newCustomerService(db)

		mock.ExpectQuery(`FROM membership WHERE id_membership = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id_membership", "nama_tier", "diskon_persen", "poin_bonus"}).
				AddRow(int64(1), "Gold", 10.0, 100))
		mock.ExpectQuery(`INSERT INTO customer`).
			WithArgs("Budi", nil, int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id_customer"}).AddRow(int64(5)))
		mock.ExpectQuery(`WHERE c\.id_customer = \$1`).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows(customerTestColumns).
				AddRow(int64(5), "Budi", nil, int64(1), int64(1), "Gold", 10.0, 100))

		customer, err := service.CreateCustomer(CreateCustomerRequest{Nama: "Budi", MembershipID: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(5), customer.ID)
		require.NotNil(t, customer.Membership)
		assert.Equal(t, "Gold", customer.Membership.NamaTier)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects a blank name", func(t *testing.T) {
		db, _ := newServiceMockDB(t)
		service := newCustomerService(db)

		_, err := service.CreateCustomer(CreateCustomerRequest{Nama: "   ", MembershipID: 1})
		assert.ErrorIs(t, err, ErrCustomerValidation)
	})
}

func TestGetCustomers_AllModeSkipsPaging(t *testing.T) {
	db, mock := newServiceMockDB(t)
	service := newCustomerService(db)

	// all=true drops LIMIT/OFFSET entirely.
	mock.ExpectQuery(`ORDER BY c\.id_customer ASC$`).
		WillReturnRows(sqlmock.NewRows(append(append([]string{}, customerTestColumns...), "total_count")).
			AddRow(int64(5), "Budi", nil, nil, nil, nil, nil, nil, 1))

	customers, totalCount, err := service.GetCustomers(3, 50, "", true)
	require.NoError(t, err)
	assert.Len(t, customers, 1)
	assert.Equal(t, 1, totalCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name         string
		page, size   int
		wantPage     int
		wantPageSize int
	}{
		{"defaults", 0, 0, 1, 10},
		{"negative page", -3, 20, 1, 20},
		{"size capped at 100", 2, 500, 2, 100},
		{"valid passthrough", 4, 25, 4, 25},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			page, pageSize := clampPage(tc.page, tc.size)
			assert.Equal(t, tc.wantPage, page)
			assert.Equal(t, tc.wantPageSize, pageSize)
		})
	}
}
