package services

import (
	"testing"
	"time"

	"marketplace/internal/domain"
	"marketplace/internal/notify"
	"marketplace/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

// recorder captures best-effort notifications without sending anything.
type recorder struct {
	events []notify.Event
}

func (r *recorder) Send(_ string, ev notify.Event) {
	r.events = append(r.events, ev)
}

func TestConfirmCancellationAppliesQuoteAndNotifies(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	start := now.Add(10 * 24 * time.Hour) // 50% tier

	expectGetBooking(mock, "bk-1", bookingRow("bk-1", start, 10000, 10000, "CONFIRMED", "FULLY_PAID"))
	mock.ExpectExec("UPDATE bookings").
		WithArgs(string(domain.BookingCancelled), string(domain.PaymentCancelled), int64(5000), "bk-1", string(domain.PaymentFullyPaid)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := &recorder{}
	svc := RefundService{
		BookingRepo: repositories.BookingRepository{DB: db},
		Notifier:    rec,
		Now:         func() time.Time { return now },
	}

	quote, err := svc.ConfirmCancellation("bk-1")
	if err != nil {
		t.Fatalf("confirm error: %v", err)
	}
	if quote.RefundPercentage != 50 || quote.RefundAmount != 5000 {
		t.Fatalf("quote = %+v, want 50%% of 10000", quote)
	}
	if len(rec.events) != 1 || rec.events[0].Type != notify.EventBookingCancelled {
		t.Fatalf("expected one cancellation notification, got %+v", rec.events)
	}
	if rec.events[0].Email != "asha@example.com" {
		t.Fatalf("notification should go to the team lead, got %q", rec.events[0].Email)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestConfirmCancellationBlockedInsideCutoff(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	start := now.Add(3 * 24 * time.Hour) // inside the 4-day cutoff

	expectGetBooking(mock, "bk-1", bookingRow("bk-1", start, 10000, 10000, "CONFIRMED", "FULLY_PAID"))

	svc := RefundService{
		BookingRepo: repositories.BookingRepository{DB: db},
		Now:         func() time.Time { return now },
	}

	quote, err := svc.ConfirmCancellation("bk-1")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error inside cutoff, got %v", err)
	}
	if quote.Allowed {
		t.Fatalf("quote should not be allowed: %+v", quote)
	}
}

func TestConfirmCancellationBlockedWhenNotFullyPaid(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	start := now.Add(60 * 24 * time.Hour) // far out, still blocked

	expectGetBooking(mock, "bk-1", bookingRow("bk-1", start, 10000, 0, "PENDING", "PENDING"))

	svc := RefundService{
		BookingRepo: repositories.BookingRepository{DB: db},
		Now:         func() time.Time { return now },
	}

	if _, err := svc.ConfirmCancellation("bk-1"); !domain.IsValidation(err) {
		t.Fatalf("PENDING booking must never be cancellable via refund path, got %v", err)
	}
}

func TestMarkRefundedClosesOutCancelledBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Date(2026, 4, 20, 9, 0, 0, 0, time.UTC)
	expectGetBooking(mock, "bk-1", bookingRow("bk-1", now.Add(24*time.Hour), 10000, 10000, "CANCELLED", "CANCELLED"))
	mock.ExpectExec("UPDATE bookings").
		WithArgs(string(domain.BookingRefunded), string(domain.PaymentRefunded), "bk-1", string(domain.PaymentCancelled)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := &recorder{}
	svc := RefundService{
		BookingRepo: repositories.BookingRepository{DB: db},
		Notifier:    rec,
		Now:         func() time.Time { return now },
	}

	if err := svc.MarkRefunded("bk-1"); err != nil {
		t.Fatalf("mark refunded error: %v", err)
	}
	if len(rec.events) != 1 || rec.events[0].Type != notify.EventRefundDisbursed {
		t.Fatalf("expected refund notification, got %+v", rec.events)
	}
}

func TestMarkRefundedTwiceConflicts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Date(2026, 4, 20, 9, 0, 0, 0, time.UTC)
	expectGetBooking(mock, "bk-1", bookingRow("bk-1", now, 10000, 10000, "REFUNDED", "REFUNDED"))
	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM bookings").
		WithArgs("bk-1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	svc := RefundService{
		BookingRepo: repositories.BookingRepository{DB: db},
		Now:         func() time.Time { return now },
	}

	if err := svc.MarkRefunded("bk-1"); !domain.IsConflict(err) {
		t.Fatalf("expected conflict on repeated mark-refunded, got %v", err)
	}
}
