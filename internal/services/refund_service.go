package services

import (
	"fmt"
	"time"

	"marketplace/internal/domain"
	"marketplace/internal/domain/models"
	"marketplace/internal/notify"
	"marketplace/internal/repositories"
	"marketplace/internal/utils"
)

// RefundService runs the two-step cancellation flow: the traveler
// confirms a quoted cancellation (CANCELLED, refund owed), then an admin
// marks the refund disbursed (REFUNDED). Keeping the steps separate
// keeps "refund owed" distinct from "refund paid out".
type RefundService struct {
	BookingRepo repositories.BookingRepository
	Notifier    notify.Notifier
	RequestID   string
	Now         func() time.Time
}

func (s RefundService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

func (s RefundService) notifier() notify.Notifier {
	if s.Notifier != nil {
		return s.Notifier
	}
	return notify.Nop{}
}

// QuoteRefund classifies a cancellation request without writing anything.
func (s RefundService) QuoteRefund(bookingID string) (domain.RefundQuote, error) {
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return domain.RefundQuote{}, err
	}
	status := domain.EvaluatePaymentStatus(b.PaymentStatus, b.PaymentDeadline, s.now())
	return domain.ComputeRefund(status, b.TotalPrice, b.AmountPaid, b.StartDate, s.now()), nil
}

// ConfirmCancellation re-quotes at confirmation time and applies the
// cancellation. The quote is recomputed here because the tier can drop
// between quote and confirm; the stored state is what the write is
// guarded on.
func (s RefundService) ConfirmCancellation(bookingID string) (domain.RefundQuote, error) {
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return domain.RefundQuote{}, err
	}

	status := domain.EvaluatePaymentStatus(b.PaymentStatus, b.PaymentDeadline, s.now())
	quote := domain.ComputeRefund(status, b.TotalPrice, b.AmountPaid, b.StartDate, s.now())
	if !quote.Allowed {
		return quote, domain.ValidationError{
			Field: "booking",
			Msg:   fmt.Sprintf("cancellation not allowed (%d day(s) to trip, status %s)", quote.DaysUntilTrip, status),
		}
	}

	if err := s.BookingRepo.ConfirmCancellation(bookingID, quote.RefundAmount); err != nil {
		return domain.RefundQuote{}, err
	}

	utils.LogEvent(s.RequestID, "refund", "confirm_cancellation",
		fmt.Sprintf("booking_id=%s refund=%d pct=%d", bookingID, quote.RefundAmount, quote.RefundPercentage))

	// best effort; the cancellation stands even if the email never leaves
	s.notifyLead(b, notify.Event{
		Type:    notify.EventBookingCancelled,
		Subject: "Your booking was cancelled",
		Body: fmt.Sprintf("Booking %s is cancelled. A refund of %s (%d%%) will be processed.",
			bookingID, utils.FormatINR(quote.RefundAmount), quote.RefundPercentage),
	})

	return quote, nil
}

// MarkRefunded records that the refund for a cancelled booking has been
// disbursed. Single conditioned write: dashboards never observe a
// half-moved CANCELLED/REFUNDED pair.
func (s RefundService) MarkRefunded(bookingID string) error {
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return err
	}

	if err := s.BookingRepo.MarkRefunded(bookingID); err != nil {
		return err
	}

	utils.LogEvent(s.RequestID, "refund", "mark_refunded", "booking_id="+bookingID)

	s.notifyLead(b, notify.Event{
		Type:    notify.EventRefundDisbursed,
		Subject: "Your refund has been processed",
		Body:    fmt.Sprintf("The refund of %s for booking %s has been disbursed.", utils.FormatINR(b.RefundAmount), bookingID),
	})
	return nil
}

func (s RefundService) notifyLead(b models.Booking, ev notify.Event) {
	for _, g := range b.Guests {
		if g.IsTeamLead {
			ev.Email = g.Email
			break
		}
	}
	s.notifier().Send(s.RequestID, ev)
}
