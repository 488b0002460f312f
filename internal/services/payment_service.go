package services

import (
	"fmt"
	"time"

	"marketplace/internal/domain"
	"marketplace/internal/repositories"
	"marketplace/internal/utils"
)

// PaymentService consumes gateway webhook events and moves the payment
// lifecycle forward. It never moves a settled booking backwards: the
// transition table decides the target status and the repository guards
// the write on the current one.
type PaymentService struct {
	BookingRepo repositories.BookingRepository
	RequestID   string
	Now         func() time.Time
}

func (s PaymentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

// WebhookEvent is the payment gateway's confirmation payload.
type WebhookEvent struct {
	BookingID  string       `json:"bookingId" binding:"required"`
	AmountPaid domain.Money `json:"amountPaid" binding:"required"`
	Timestamp  time.Time    `json:"timestamp"`
}

// HandleWebhook applies a payment confirmation. The cumulative amount
// decides the target status: equal to the total price means FULLY_PAID,
// anything less PARTIALLY_PAID.
func (s PaymentService) HandleWebhook(ev WebhookEvent) error {
	if ev.BookingID == "" {
		return domain.ValidationError{Field: "bookingId", Msg: "missing booking id"}
	}
	if ev.AmountPaid <= 0 {
		return domain.ValidationError{Field: "amountPaid", Msg: "must be positive"}
	}

	b, err := s.BookingRepo.GetByID(ev.BookingID)
	if err != nil {
		return err
	}
	if ev.AmountPaid > b.TotalPrice {
		return domain.ValidationError{
			Field: "amountPaid",
			Msg:   fmt.Sprintf("exceeds total price (%d > %d)", ev.AmountPaid, b.TotalPrice),
		}
	}
	if ev.AmountPaid < b.AmountPaid {
		// a replayed older webhook must not shrink the balance
		return domain.ConflictError{
			Resource: "booking",
			Msg:      fmt.Sprintf("amount paid would regress (%d < %d)", ev.AmountPaid, b.AmountPaid),
		}
	}

	target := domain.PaymentPartiallyPaid
	if ev.AmountPaid == b.TotalPrice {
		target = domain.PaymentFullyPaid
	}

	// partial payments accumulate, so staying PARTIALLY_PAID with a
	// higher cumulative amount is legal and bypasses the transition table
	current := domain.EvaluatePaymentStatus(b.PaymentStatus, b.PaymentDeadline, s.now())
	if target != current {
		if _, err := current.Transition(target); err != nil {
			return err
		}
	}

	// the repo re-checks the stored status inside the UPDATE, so a
	// concurrent settlement cannot slip between the read and the write
	if err := s.BookingRepo.ApplyPayment(ev.BookingID, ev.AmountPaid, target,
		[]domain.PaymentStatus{domain.PaymentPending, domain.PaymentPartiallyPaid, domain.PaymentOverdue}); err != nil {
		return err
	}

	utils.LogEvent(s.RequestID, "payment", "webhook",
		fmt.Sprintf("booking_id=%s amount=%d status=%s", ev.BookingID, ev.AmountPaid, target))
	return nil
}

// SweepOverdue persists OVERDUE for every booking whose deadline passed.
// Safe to run repeatedly; returns how many rows moved this pass.
func (s PaymentService) SweepOverdue() (int64, error) {
	n, err := s.BookingRepo.SweepOverdue(s.now())
	if err != nil {
		return 0, err
	}
	utils.LogEvent(s.RequestID, "payment", "sweep_overdue", fmt.Sprintf("flipped=%d", n))
	return n, nil
}
