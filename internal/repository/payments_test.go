package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/mukizafabrice/Unguka-sub001/internal/apperrors"
	"github.com/mukizafabrice/Unguka-sub001/internal/models"
)

var paymentTestColumns = []string{
	"id", "member_id", "cooperative_id", "amount_due", "amount_paid",
	"amount_remaining", "status", "created_at", "updated_at",
}

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func addOpenPaymentRow(rows *sqlmock.Rows, id string, due, paid int64) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id, "m1", "c1", due, paid, due-paid, models.PaymentStatusPartial, now, now)
}

func TestFindOpenPaymentSingle(t *testing.T) {
	repo, mock := newMockRepo(t)
	rows := sqlmock.NewRows(paymentTestColumns)
	addOpenPaymentRow(rows, "pay-1", 35000, 20000)
	mock.ExpectQuery("FROM payments").WithArgs("m1", "c1").WillReturnRows(rows)

	p, err := repo.FindOpenPayment(context.Background(), "m1", "c1", false)
	if err != nil {
		t.Fatalf("FindOpenPayment: %v", err)
	}
	if p == nil || p.ID != "pay-1" || p.AmountRemaining != 15000 {
		t.Errorf("payment: got %+v, want pay-1 with 15000 remaining", p)
	}
}

func TestFindOpenPaymentNone(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("FROM payments").WithArgs("m1", "c1").
		WillReturnRows(sqlmock.NewRows(paymentTestColumns))

	p, err := repo.FindOpenPayment(context.Background(), "m1", "c1", false)
	if err != nil {
		t.Fatalf("FindOpenPayment: %v", err)
	}
	if p != nil {
		t.Errorf("expected nil for no open payment, got %+v", p)
	}
}

// TestFindOpenPaymentDuplicateIsInvariantViolation drives the resolver
// through the state the schema's partial unique index forbids: two open
// payments for the same member and cooperative.
func TestFindOpenPaymentDuplicateIsInvariantViolation(t *testing.T) {
	repo, mock := newMockRepo(t)
	rows := sqlmock.NewRows(paymentTestColumns)
	addOpenPaymentRow(rows, "pay-1", 35000, 20000)
	addOpenPaymentRow(rows, "pay-2", 10000, 2000)
	mock.ExpectQuery("FROM payments").WithArgs("m1", "c1").WillReturnRows(rows)

	p, err := repo.FindOpenPayment(context.Background(), "m1", "c1", false)
	if !apperrors.IsInvariant(err) {
		t.Fatalf("expected InvariantViolation, got %v", err)
	}
	if p != nil {
		t.Errorf("expected no payment alongside the violation, got %+v", p)
	}
}

// TestFindOpenPaymentLocksRow checks the lock flag reads the row FOR UPDATE
// so a concurrent settlement blocks on it.
func TestFindOpenPaymentLocksRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	rows := sqlmock.NewRows(paymentTestColumns)
	addOpenPaymentRow(rows, "pay-1", 35000, 20000)
	mock.ExpectQuery("FOR UPDATE").WithArgs("m1", "c1").WillReturnRows(rows)

	if _, err := repo.FindOpenPayment(context.Background(), "m1", "c1", true); err != nil {
		t.Fatalf("FindOpenPayment: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

// TestCreatePaymentUniqueViolationIsConcurrencyConflict covers two
// concurrent first settlements racing past the in-transaction check: the
// loser's insert trips the open-payment unique index and must surface as a
// retryable conflict, not a raw database error.
func TestCreatePaymentUniqueViolationIsConcurrencyConflict(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("INSERT INTO payments").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "payments_one_open_per_member_idx"})

	p := &models.Payment{
		MemberID:        "m1",
		CooperativeID:   "c1",
		AmountDue:       35000,
		AmountPaid:      20000,
		AmountRemaining: 15000,
		Status:          models.PaymentStatusPartial,
	}
	if err := repo.CreatePayment(context.Background(), p); !errors.Is(err, apperrors.ErrConcurrencyConflict) {
		t.Fatalf("expected ErrConcurrencyConflict, got %v", err)
	}
}
