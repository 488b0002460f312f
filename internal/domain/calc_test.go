package domain

import (
	"testing"
	"time"
)

func TestRefundTierBoundaries(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		days    int
		allowed bool
		pct     int
	}{
		{31, true, 100},
		{30, true, 100},
		{29, true, 80},
		{14, true, 80},
		{13, true, 50},
		{7, true, 50},
		{6, true, 20},
		{4, true, 20},
		{3, false, 0},
		{1, false, 0},
		{0, false, 0},
	}

	for _, c := range cases {
		start := now.Add(time.Duration(c.days) * 24 * time.Hour)
		q := ComputeRefund(PaymentFullyPaid, 1000, 1000, start, now)
		if q.Allowed != c.allowed {
			t.Fatalf("days=%d allowed=%v, want %v", c.days, q.Allowed, c.allowed)
		}
		if q.RefundPercentage != c.pct {
			t.Fatalf("days=%d pct=%d, want %d", c.days, q.RefundPercentage, c.pct)
		}
	}
}

func TestRefundAmountFloorsFromAmountPaid(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	start := now.Add(29 * 24 * time.Hour)

	q := ComputeRefund(PaymentFullyPaid, 1000, 1000, start, now)
	if q.RefundAmount != 800 {
		t.Fatalf("refund amount = %d, want 800", q.RefundAmount)
	}

	// odd amount floors, never rounds up
	q = ComputeRefund(PaymentFullyPaid, 999, 999, start, now)
	if q.RefundAmount != 799 {
		t.Fatalf("refund amount = %d, want 799", q.RefundAmount)
	}
}

func TestRefundFallsBackToTotalWhenNoAmountPaid(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	start := now.Add(40 * 24 * time.Hour)

	q := ComputeRefund(PaymentFullyPaid, 5000, 0, start, now)
	if !q.Allowed || q.RefundAmount != 5000 {
		t.Fatalf("quote = %+v, want allowed full 5000", q)
	}
}

func TestRefundBlockedUnlessFullyPaid(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	start := now.Add(60 * 24 * time.Hour)

	for _, status := range []PaymentStatus{PaymentPending, PaymentPartiallyPaid, PaymentOverdue, PaymentCancelled, PaymentRefunded} {
		q := ComputeRefund(status, 10000, 10000, start, now)
		if q.Allowed {
			t.Fatalf("status %s should never be cancellable via refund path", status)
		}
		if q.RefundAmount != 0 {
			t.Fatalf("status %s produced refund amount %d", status, q.RefundAmount)
		}
	}
}

func TestRefundEndToEndScenario(t *testing.T) {
	// totalPrice 10000, trip in 10 days, fully paid
	now := time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)
	start := now.Add(10 * 24 * time.Hour)

	q := ComputeRefund(PaymentFullyPaid, 10000, 10000, start, now)
	if !q.Allowed {
		t.Fatalf("expected cancellation allowed")
	}
	if q.RefundPercentage != 50 {
		t.Fatalf("pct = %d, want 50", q.RefundPercentage)
	}
	if q.RefundAmount != 5000 {
		t.Fatalf("amount = %d, want 5000", q.RefundAmount)
	}
}

func TestDaysUntilTripCeils(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if d := DaysUntilTrip(now.Add(24*time.Hour), now); d != 1 {
		t.Fatalf("exactly one day = %d, want 1", d)
	}
	if d := DaysUntilTrip(now.Add(25*time.Hour), now); d != 2 {
		t.Fatalf("25h = %d, want 2", d)
	}
	if d := DaysUntilTrip(now.Add(time.Minute), now); d != 1 {
		t.Fatalf("1min = %d, want 1", d)
	}
	if d := DaysUntilTrip(now.Add(-time.Hour), now); d != 0 {
		t.Fatalf("past = %d, want 0", d)
	}
}

func TestEvaluatePaymentStatusOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	if s := EvaluatePaymentStatus(PaymentPending, &past, now); s != PaymentOverdue {
		t.Fatalf("pending past deadline = %s, want OVERDUE", s)
	}
	if s := EvaluatePaymentStatus(PaymentPartiallyPaid, &past, now); s != PaymentOverdue {
		t.Fatalf("partially paid past deadline = %s, want OVERDUE", s)
	}
	if s := EvaluatePaymentStatus(PaymentFullyPaid, &past, now); s != PaymentFullyPaid {
		t.Fatalf("fully paid must not become overdue, got %s", s)
	}
	if s := EvaluatePaymentStatus(PaymentPending, &future, now); s != PaymentPending {
		t.Fatalf("deadline in future flipped status to %s", s)
	}
	if s := EvaluatePaymentStatus(PaymentPending, nil, now); s != PaymentPending {
		t.Fatalf("nil deadline flipped status to %s", s)
	}
}

func TestAggregateBookingsTotals(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	future := now.Add(10 * 24 * time.Hour)
	past := now.Add(-10 * 24 * time.Hour)

	bookings := []BookingView{
		{StartDate: future, PaymentStatus: PaymentFullyPaid},
		{StartDate: future, PaymentStatus: PaymentPartiallyPaid},
		{StartDate: future, PaymentStatus: PaymentPending},
		{StartDate: past, PaymentStatus: PaymentFullyPaid},
		{StartDate: past, PaymentStatus: PaymentCancelled},
		{StartDate: future, PaymentStatus: PaymentRefunded},
	}

	counts := AggregateBookings(bookings, now)

	sum := 0
	for _, s := range AllPaymentStatuses {
		sum += counts.ByStatus[s]
	}
	if sum != counts.All || counts.All != len(bookings) {
		t.Fatalf("sum=%d all=%d len=%d, want all equal", sum, counts.All, len(bookings))
	}
	if counts.Upcoming != 2 {
		t.Fatalf("upcoming = %d, want 2", counts.Upcoming)
	}
	if counts.Past != 4 {
		t.Fatalf("past = %d, want 4", counts.Past)
	}
}

func TestAggregateBookingsEmpty(t *testing.T) {
	counts := AggregateBookings(nil, time.Now())
	if counts.All != 0 || counts.Upcoming != 0 || counts.Past != 0 {
		t.Fatalf("empty input produced non-zero counts: %+v", counts)
	}
	for _, s := range AllPaymentStatuses {
		if counts.ByStatus[s] != 0 {
			t.Fatalf("status %s count = %d, want 0", s, counts.ByStatus[s])
		}
	}
}

func TestAggregateAppliesOverdueOnRead(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	deadline := now.Add(-time.Hour)

	counts := AggregateBookings([]BookingView{
		{StartDate: now.Add(48 * time.Hour), PaymentStatus: PaymentPending, PaymentDeadline: &deadline},
	}, now)

	if counts.ByStatus[PaymentOverdue] != 1 || counts.ByStatus[PaymentPending] != 0 {
		t.Fatalf("overdue not recomputed on read: %+v", counts.ByStatus)
	}
}

func TestSplitPayoutConservesMoney(t *testing.T) {
	cases := []struct {
		total Money
		pct   int
	}{
		{10000, 50},
		{9999, 50},
		{10001, 33},
		{1, 50},
		{777777, 70},
	}

	for _, c := range cases {
		first, second, err := SplitPayout(c.total, c.pct)
		if err != nil {
			t.Fatalf("split(%d,%d) error: %v", c.total, c.pct, err)
		}
		if first+second != c.total {
			t.Fatalf("split(%d,%d) = %d+%d, does not conserve total", c.total, c.pct, first, second)
		}
	}

	if _, _, err := SplitPayout(0, 50); !IsValidation(err) {
		t.Fatalf("zero total should fail validation, got %v", err)
	}
	if _, _, err := SplitPayout(100, 120); !IsValidation(err) {
		t.Fatalf("percent over 100 should fail validation, got %v", err)
	}
}
