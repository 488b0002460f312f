package services

import (
	"bytes"
	"testing"
	"time"

	"marketplace/internal/domain"
	"marketplace/internal/notify"
	"marketplace/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

var payoutCols = []string{
	"id", "booking_id", "host_id", "host_name", "host_email", "trip_title",
	"user_id", "user_name", "user_email", "trip_start_date", "trip_end_date", "total_amount",
	"first_payment_amount", "first_payment_percent", "first_payment_due", "first_payment_status",
	"second_payment_amount", "second_payment_percent", "second_payment_due", "second_payment_status",
	"created_at", "updated_at",
}

func payoutFixture(firstStatus, secondStatus string) *sqlmock.Rows {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(payoutCols).AddRow(
		"po-1", "bk-1", 7, "Ravi", "ravi@example.com", "Goa Getaway",
		3, "Asha", "asha@example.com", now, now.Add(96*time.Hour), 10000,
		5000, 50, now, firstStatus,
		5000, 50, now.Add(120*time.Hour), secondStatus,
		now, now,
	)
}

func TestMarkInstallmentPaidNotifiesHost(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE payouts SET first_payment_status").
		WithArgs(string(domain.InstallmentPaid), "po-1", string(domain.InstallmentPending)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT(.|\n)+FROM payouts WHERE id=").
		WithArgs("po-1").
		WillReturnRows(payoutFixture("PAID", "PENDING"))

	rec := &recorder{}
	svc := PayoutService{
		PayoutRepo: repositories.PayoutRepository{DB: db},
		Notifier:   rec,
	}

	p, err := svc.MarkInstallmentPaid("po-1", "first")
	if err != nil {
		t.Fatalf("mark paid error: %v", err)
	}
	if p.FirstPaymentStatus != domain.InstallmentPaid {
		t.Fatalf("first installment = %s, want PAID", p.FirstPaymentStatus)
	}
	if len(rec.events) != 1 || rec.events[0].Type != notify.EventInstallmentPaid {
		t.Fatalf("expected installment notification, got %+v", rec.events)
	}
	if rec.events[0].Email != "ravi@example.com" {
		t.Fatalf("notification should go to the host, got %q", rec.events[0].Email)
	}
}

func TestMarkInstallmentPaidConflictSendsNothing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE payouts SET second_payment_status").
		WithArgs(string(domain.InstallmentPaid), "po-1", string(domain.InstallmentPending)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT(.|\n)+FROM payouts WHERE id=").
		WithArgs("po-1").
		WillReturnRows(payoutFixture("PAID", "PAID"))

	rec := &recorder{}
	svc := PayoutService{
		PayoutRepo: repositories.PayoutRepository{DB: db},
		Notifier:   rec,
	}

	if _, err := svc.MarkInstallmentPaid("po-1", "second"); !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(rec.events) != 0 {
		t.Fatalf("conflict must not notify, got %+v", rec.events)
	}
}

func TestGeneratePayoutStatementPDF(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT(.|\n)+FROM payouts WHERE id=").
		WithArgs("po-1").
		WillReturnRows(payoutFixture("PENDING", "PENDING"))

	svc := DocsService{PayoutRepo: repositories.PayoutRepository{DB: db}}
	data, filename, err := svc.GeneratePayoutStatement("po-1")
	if err != nil {
		t.Fatalf("statement error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if filename == "" {
		t.Fatalf("missing filename")
	}
}
