package models

import "testing"

func TestFeeStatusFor(t *testing.T) {
	cases := []struct {
		paid, owed int64
		want       string
	}{
		{0, 10000, FeeStatusUnpaid},
		{1, 10000, FeeStatusPartial},
		{9999, 10000, FeeStatusPartial},
		{10000, 10000, FeeStatusPaid},
	}
	for _, tc := range cases {
		if got := FeeStatusFor(tc.paid, tc.owed); got != tc.want {
			t.Errorf("FeeStatusFor(%d, %d): got %q, want %q", tc.paid, tc.owed, got, tc.want)
		}
	}
}

func TestPaymentOpen(t *testing.T) {
	open := Payment{AmountRemaining: 15000}
	if !open.Open() {
		t.Error("payment with remaining balance must be open")
	}
	settled := Payment{AmountRemaining: 0, Status: PaymentStatusPaid}
	if settled.Open() {
		t.Error("fully settled payment must not be open")
	}
}
