package domain

import "testing"

func TestPaymentTransitionsRejectIllegalMoves(t *testing.T) {
	illegal := []struct {
		from, to PaymentStatus
	}{
		{PaymentRefunded, PaymentPending},
		{PaymentRefunded, PaymentFullyPaid},
		{PaymentCancelled, PaymentPending},
		{PaymentCancelled, PaymentFullyPaid},
		{PaymentFullyPaid, PaymentPending},
		{PaymentFullyPaid, PaymentPartiallyPaid},
	}
	for _, c := range illegal {
		if c.from.CanTransition(c.to) {
			t.Fatalf("%s -> %s should be illegal", c.from, c.to)
		}
		if _, err := c.from.Transition(c.to); !IsConflict(err) {
			t.Fatalf("%s -> %s should return conflict, got %v", c.from, c.to, err)
		}
	}
}

func TestPaymentTransitionsAllowLifecycle(t *testing.T) {
	legal := []struct {
		from, to PaymentStatus
	}{
		{PaymentPending, PaymentPartiallyPaid},
		{PaymentPartiallyPaid, PaymentFullyPaid},
		{PaymentPending, PaymentFullyPaid},
		{PaymentPending, PaymentOverdue},
		{PaymentOverdue, PaymentFullyPaid},
		{PaymentFullyPaid, PaymentCancelled},
		{PaymentCancelled, PaymentRefunded},
	}
	for _, c := range legal {
		got, err := c.from.Transition(c.to)
		if err != nil {
			t.Fatalf("%s -> %s should be legal: %v", c.from, c.to, err)
		}
		if got != c.to {
			t.Fatalf("transition returned %s, want %s", got, c.to)
		}
	}
}

func TestInstallmentPaidIsTerminal(t *testing.T) {
	if InstallmentPaid.CanTransition(InstallmentPending) {
		t.Fatalf("PAID installment must never revert")
	}
	if InstallmentPaid.CanTransition(InstallmentPaid) {
		t.Fatalf("PAID installment must not re-enter PAID")
	}
	if !InstallmentPending.CanTransition(InstallmentPaid) {
		t.Fatalf("PENDING installment should be payable")
	}
}

func TestParsePaymentStatus(t *testing.T) {
	if s, ok := ParsePaymentStatus(" fully_paid "); !ok || s != PaymentFullyPaid {
		t.Fatalf("parse fully_paid = %s %v", s, ok)
	}
	if _, ok := ParsePaymentStatus("paid-ish"); ok {
		t.Fatalf("unknown status should not parse")
	}
}

func TestDisplayCoversEveryPaymentStatus(t *testing.T) {
	for _, s := range AllPaymentStatuses {
		d := s.Display()
		if d.Label == "" || d.Icon == "" || d.ColorClass == "" {
			t.Fatalf("status %s missing display metadata: %+v", s, d)
		}
	}
}
