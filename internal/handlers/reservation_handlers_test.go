package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental_backend/internal/repositories"
	"rental_backend/internal/services"
)

func newReservationTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	service := services.NewReservationService(
		repositories.NewReservationRepository(db),
		repositories.NewCustomerRepository(db),
		repositories.NewRoomRepository(db),
		repositories.NewPaymentRepository(db),
		repositories.NewFoodRepository(db),
		db,
	)
	handler := NewReservationHandler(service)

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/reservations", handler.GetReservations)
	return engine, mock
}

var reservationHandlerTestColumns = []string{
	"id_reservation", "customer_id", "id_room", "waktu_mulai", "waktu_selesai",
	"durasi", "tanggal_reservasi", "total_harga", "payment_id", "handled_by",
	"nama", "nama_room",
	"id_payment", "total_bayar", "tanggal_bayar", "payment_method",
	"total_count",
}

// History mode carries the paging block under both keys the frontends read.
func TestGetReservations_HistoryResponseShape(t *testing.T) {
	engine, mock := newReservationTestRouter(t)

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`ORDER BY rv\.id_reservation DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(reservationHandlerTestColumns).AddRow(
			int64(12), nil, int64(2), start, start.Add(time.Hour),
			1, "2026-09-01", 50000.0, nil, nil,
			nil, "Room VIP 1",
			nil, nil, nil, nil,
			11,
		))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reservations", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data       []json.RawMessage `json:"data"`
		Pagination map[string]any    `json:"pagination"`
		Meta       map[string]any    `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Len(t, body.Data, 1)
	require.NotNil(t, body.Pagination)
	require.NotNil(t, body.Meta)
	assert.Equal(t, body.Pagination, body.Meta)
	assert.Equal(t, float64(11), body.Meta["total"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetReservations_TimelineReturnsBareArray(t *testing.T) {
	engine, mock := newReservationTestRouter(t)

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	columns := reservationHandlerTestColumns[:len(reservationHandlerTestColumns)-1]
	mock.ExpectQuery(`WHERE rv\.tanggal_reservasi = \$1 ORDER BY rv\.waktu_mulai ASC`).
		WithArgs("2026-09-01").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			int64(12), nil, int64(2), start, start.Add(time.Hour),
			1, "2026-09-01", 50000.0, nil, nil,
			nil, "Room VIP 1",
			nil, nil, nil, nil,
		))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reservations?date=2026-09-01", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "Room VIP 1", body[0]["nama_room"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
