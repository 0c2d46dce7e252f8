package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerivePaymentStatus(t *testing.T) {
	tests := []struct {
		name       string
		totalHarga float64
		payment    *Payment
		want       string
	}{
		{"no payment", 100000, nil, PaymentStatusUnpaid},
		{"zero payment amount", 100000, &Payment{TotalBayar: 0}, PaymentStatusUnpaid},
		{"short payment", 130000, &Payment{TotalBayar: 100000}, PaymentStatusPartiallyPaid},
		{"exact payment", 100000, &Payment{TotalBayar: 100000}, PaymentStatusPaid},
		{"overpayment", 100000, &Payment{TotalBayar: 150000}, PaymentStatusPaid},
		{"free reservation with payment row", 0, &Payment{TotalBayar: 0}, PaymentStatusUnpaid},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DerivePaymentStatus(tc.totalHarga, tc.payment))
		})
	}
}

// A food order raises total_harga after the payment was made; since the status
// is recomputed on every read, a fully paid reservation must fall back to
// partially paid.
func TestDerivePaymentStatus_TotalRaisedAfterPayment(t *testing.T) {
	payment := &Payment{TotalBayar: 100000}

	assert.Equal(t, PaymentStatusPaid, DerivePaymentStatus(100000, payment))
	assert.Equal(t, PaymentStatusPartiallyPaid, DerivePaymentStatus(130000, payment))
}
