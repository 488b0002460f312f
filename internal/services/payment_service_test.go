package services

import (
	"testing"
	"time"

	"marketplace/internal/domain"
	"marketplace/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

var bookingCols = []string{
	"id", "user_id", "travel_plan_id", "start_date", "end_date", "participants",
	"price_per_person", "total_price", "special_requirements",
	"status", "payment_status",
	"amount_paid", "remaining_amount", "refund_amount",
	"payment_deadline", "created_at", "updated_at",
}

var guestCols = []string{"id", "booking_id", "first_name", "last_name", "email", "phone", "is_team_lead"}

func bookingRow(id string, start time.Time, total, paid int64, status, paymentStatus string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(bookingCols).AddRow(
		id, 3, 5, start, start.Add(72*time.Hour), 2,
		total/2, total, "",
		status, paymentStatus,
		paid, total-paid, 0,
		nil, now, now,
	)
}

func expectGetBooking(mock sqlmock.Sqlmock, id string, rows *sqlmock.Rows) {
	mock.ExpectQuery("SELECT(.|\n)+FROM bookings WHERE id=").
		WithArgs(id).
		WillReturnRows(rows)
	mock.ExpectQuery("SELECT(.|\n)+FROM guests WHERE booking_id=").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(guestCols).
			AddRow(1, id, "Asha", "Verma", "asha@example.com", "9812345678", true))
}

func TestWebhookFullPaymentSettlesBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	start := time.Now().Add(30 * 24 * time.Hour)
	expectGetBooking(mock, "bk-1", bookingRow("bk-1", start, 10000, 0, "PENDING", "PENDING"))
	mock.ExpectExec("UPDATE bookings").
		WithArgs(int64(10000), int64(10000), string(domain.PaymentFullyPaid), "bk-1",
			string(domain.PaymentPending), string(domain.PaymentPartiallyPaid), string(domain.PaymentOverdue)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := PaymentService{BookingRepo: repositories.BookingRepository{DB: db}}
	err = svc.HandleWebhook(WebhookEvent{BookingID: "bk-1", AmountPaid: 10000, Timestamp: time.Now()})
	if err != nil {
		t.Fatalf("webhook error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestWebhookPartialPaymentStaysPartial(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	start := time.Now().Add(30 * 24 * time.Hour)
	expectGetBooking(mock, "bk-1", bookingRow("bk-1", start, 10000, 0, "PENDING", "PENDING"))
	mock.ExpectExec("UPDATE bookings").
		WithArgs(int64(4000), int64(4000), string(domain.PaymentPartiallyPaid), "bk-1",
			string(domain.PaymentPending), string(domain.PaymentPartiallyPaid), string(domain.PaymentOverdue)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := PaymentService{BookingRepo: repositories.BookingRepository{DB: db}}
	if err := svc.HandleWebhook(WebhookEvent{BookingID: "bk-1", AmountPaid: 4000}); err != nil {
		t.Fatalf("webhook error: %v", err)
	}
}

func TestWebhookSecondPartialPaymentAccumulates(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	start := time.Now().Add(30 * 24 * time.Hour)
	expectGetBooking(mock, "bk-1", bookingRow("bk-1", start, 10000, 4000, "PENDING", "PARTIALLY_PAID"))
	mock.ExpectExec("UPDATE bookings").
		WithArgs(int64(6000), int64(6000), string(domain.PaymentPartiallyPaid), "bk-1",
			string(domain.PaymentPending), string(domain.PaymentPartiallyPaid), string(domain.PaymentOverdue)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := PaymentService{BookingRepo: repositories.BookingRepository{DB: db}}
	if err := svc.HandleWebhook(WebhookEvent{BookingID: "bk-1", AmountPaid: 6000}); err != nil {
		t.Fatalf("second partial payment rejected: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestWebhookPartialThenFullSettles(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	start := time.Now().Add(30 * 24 * time.Hour)
	expectGetBooking(mock, "bk-1", bookingRow("bk-1", start, 10000, 6000, "PENDING", "PARTIALLY_PAID"))
	mock.ExpectExec("UPDATE bookings").
		WithArgs(int64(10000), int64(10000), string(domain.PaymentFullyPaid), "bk-1",
			string(domain.PaymentPending), string(domain.PaymentPartiallyPaid), string(domain.PaymentOverdue)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := PaymentService{BookingRepo: repositories.BookingRepository{DB: db}}
	if err := svc.HandleWebhook(WebhookEvent{BookingID: "bk-1", AmountPaid: 10000}); err != nil {
		t.Fatalf("settling payment rejected: %v", err)
	}
}

func TestWebhookRejectsRegressedAmount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	start := time.Now().Add(30 * 24 * time.Hour)
	expectGetBooking(mock, "bk-1", bookingRow("bk-1", start, 10000, 4000, "PENDING", "PARTIALLY_PAID"))

	svc := PaymentService{BookingRepo: repositories.BookingRepository{DB: db}}
	err = svc.HandleWebhook(WebhookEvent{BookingID: "bk-1", AmountPaid: 3000})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict for regressed amount, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestWebhookRejectsSettledBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	start := time.Now().Add(30 * 24 * time.Hour)
	expectGetBooking(mock, "bk-1", bookingRow("bk-1", start, 10000, 10000, "REFUNDED", "REFUNDED"))

	svc := PaymentService{BookingRepo: repositories.BookingRepository{DB: db}}
	err = svc.HandleWebhook(WebhookEvent{BookingID: "bk-1", AmountPaid: 10000})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict for refunded booking, got %v", err)
	}
}

func TestWebhookRejectsOverpayment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	start := time.Now().Add(30 * 24 * time.Hour)
	expectGetBooking(mock, "bk-1", bookingRow("bk-1", start, 10000, 0, "PENDING", "PENDING"))

	svc := PaymentService{BookingRepo: repositories.BookingRepository{DB: db}}
	err = svc.HandleWebhook(WebhookEvent{BookingID: "bk-1", AmountPaid: 10001})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for overpayment, got %v", err)
	}
}

func TestWebhookRejectsEmptyEvent(t *testing.T) {
	svc := PaymentService{}
	if err := svc.HandleWebhook(WebhookEvent{}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := svc.HandleWebhook(WebhookEvent{BookingID: "bk-1", AmountPaid: -5}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for negative amount, got %v", err)
	}
}
