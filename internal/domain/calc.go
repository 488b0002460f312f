package domain

import "time"

// EvaluatePaymentStatus recomputes the effective payment status at read
// time. A deadline that passed while the booking was still PENDING or
// PARTIALLY_PAID makes it OVERDUE; every other status is authoritative
// as stored. Idempotent, so read sites and the sweep can both apply it.
func EvaluatePaymentStatus(stored PaymentStatus, deadline *time.Time, now time.Time) PaymentStatus {
	if deadline == nil {
		return stored
	}
	switch stored {
	case PaymentPending, PaymentPartiallyPaid:
		if deadline.Before(now) {
			return PaymentOverdue
		}
	}
	return stored
}

// RefundQuote is the outcome of a cancellation request before anything
// is written.
type RefundQuote struct {
	Allowed          bool  `json:"allowed"`
	RefundPercentage int   `json:"refundPercentage"`
	RefundAmount     Money `json:"refundAmount"`
	DaysUntilTrip    int   `json:"daysUntilTrip"`
}

// DaysUntilTrip is ceil((start - now) / 24h). A trip starting in any
// fraction of a day counts as one full day out.
func DaysUntilTrip(start, now time.Time) int {
	diff := start.Sub(now)
	if diff <= 0 {
		return 0
	}
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// refundPercentFor maps days-until-trip to the refund tier. Below four
// days cancellation via the refund path is blocked entirely.
func refundPercentFor(days int) int {
	switch {
	case days >= 30:
		return 100
	case days >= 14:
		return 80
	case days >= 7:
		return 50
	case days >= 4:
		return 20
	default:
		return 0
	}
}

// ComputeRefund classifies a cancellation request. Only FULLY_PAID
// bookings qualify; the amount is floor(paid * percent / 100) where paid
// falls back to the total price when no payment amount was recorded.
// Never errors for well-formed input.
func ComputeRefund(paymentStatus PaymentStatus, totalPrice, amountPaid Money, startDate, now time.Time) RefundQuote {
	days := DaysUntilTrip(startDate, now)
	quote := RefundQuote{DaysUntilTrip: days}

	if paymentStatus != PaymentFullyPaid {
		return quote
	}

	pct := refundPercentFor(days)
	if pct == 0 {
		return quote
	}

	paid := amountPaid
	if paid == 0 {
		paid = totalPrice
	}

	quote.Allowed = true
	quote.RefundPercentage = pct
	quote.RefundAmount = paid * Money(pct) / 100
	return quote
}

// BookingView is the slice of booking state the aggregator needs.
type BookingView struct {
	StartDate       time.Time
	PaymentStatus   PaymentStatus
	PaymentDeadline *time.Time
}

// BookingCounts summarizes a collection of bookings for the dashboards.
// UPCOMING and PAST are derived buckets, not statuses, so they overlap
// neither ALL nor the per-status counts in any surprising way: the
// per-status counts always sum to ALL.
type BookingCounts struct {
	ByStatus map[PaymentStatus]int `json:"byStatus"`
	All      int                   `json:"all"`
	Upcoming int                   `json:"upcoming"`
	Past     int                   `json:"past"`
}

// AggregateBookings counts bookings per effective payment status plus
// derived UPCOMING/PAST buckets. An empty input yields all-zero counts.
func AggregateBookings(bookings []BookingView, now time.Time) BookingCounts {
	counts := BookingCounts{ByStatus: make(map[PaymentStatus]int, len(AllPaymentStatuses))}
	for _, s := range AllPaymentStatuses {
		counts.ByStatus[s] = 0
	}

	for _, b := range bookings {
		status := EvaluatePaymentStatus(b.PaymentStatus, b.PaymentDeadline, now)
		counts.ByStatus[status]++
		counts.All++

		switch {
		case b.StartDate.After(now) && (status == PaymentFullyPaid || status == PaymentPartiallyPaid):
			counts.Upcoming++
		case !b.StartDate.After(now) || status == PaymentCancelled || status == PaymentRefunded:
			counts.Past++
		}
	}
	return counts
}

// SplitPayout divides a payout total into two installments whose
// percents sum to 100 and whose amounts sum exactly to the total. Any
// rounding remainder lands in the second installment.
func SplitPayout(total Money, firstPercent int) (first, second Money, err error) {
	if total <= 0 {
		return 0, 0, ValidationError{Field: "totalAmount", Msg: "must be positive"}
	}
	if firstPercent < 0 || firstPercent > 100 {
		return 0, 0, ValidationError{Field: "firstPaymentPercent", Msg: "must be between 0 and 100"}
	}
	first = total * Money(firstPercent) / 100
	second = total - first
	return first, second, nil
}
