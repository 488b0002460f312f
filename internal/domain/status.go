package domain

import "strings"

// PaymentStatus is the financial settlement state of a booking,
// independent of its confirmation/cancellation status.
type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "PENDING"
	PaymentPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	PaymentFullyPaid     PaymentStatus = "FULLY_PAID"
	PaymentOverdue       PaymentStatus = "OVERDUE"
	PaymentCancelled     PaymentStatus = "CANCELLED"
	PaymentRefunded      PaymentStatus = "REFUNDED"
)

// AllPaymentStatuses keeps a stable order for dashboard counts.
var AllPaymentStatuses = []PaymentStatus{
	PaymentPending,
	PaymentPartiallyPaid,
	PaymentFullyPaid,
	PaymentOverdue,
	PaymentCancelled,
	PaymentRefunded,
}

// BookingStatus is the confirmation lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingRefunded  BookingStatus = "REFUNDED"
)

// InstallmentStatus is the state of one scheduled payout installment.
type InstallmentStatus string

const (
	InstallmentPending   InstallmentStatus = "PENDING"
	InstallmentPaid      InstallmentStatus = "PAID"
	InstallmentCancelled InstallmentStatus = "CANCELLED"
	InstallmentFailed    InstallmentStatus = "FAILED"
)

// PlanStatus is the publication state of a travel plan.
type PlanStatus string

const (
	PlanDraft    PlanStatus = "DRAFT"
	PlanInactive PlanStatus = "INACTIVE"
	PlanActive   PlanStatus = "ACTIVE"
)

// Role is the single role a user carries.
type Role string

const (
	RoleUser    Role = "USER"
	RoleHost    Role = "HOST"
	RoleAdmin   Role = "ADMIN"
	RoleSupport Role = "SUPPORT"
)

// ApplicationStatus tracks a host application through review.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationApproved ApplicationStatus = "APPROVED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// paymentTransitions lists the allowed next states per payment status.
// Terminal states (REFUNDED) have no entries, so e.g. REFUNDED -> PENDING
// is rejected by construction.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:       {PaymentPartiallyPaid, PaymentFullyPaid, PaymentOverdue, PaymentCancelled},
	PaymentPartiallyPaid: {PaymentFullyPaid, PaymentOverdue, PaymentCancelled},
	PaymentFullyPaid:     {PaymentCancelled},
	PaymentOverdue:       {PaymentPartiallyPaid, PaymentFullyPaid, PaymentCancelled},
	PaymentCancelled:     {PaymentRefunded},
	PaymentRefunded:      {},
}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCancelled},
	BookingCancelled: {BookingRefunded},
	BookingRefunded:  {},
}

var installmentTransitions = map[InstallmentStatus][]InstallmentStatus{
	InstallmentPending:   {InstallmentPaid, InstallmentCancelled, InstallmentFailed},
	InstallmentFailed:    {InstallmentPaid, InstallmentCancelled},
	InstallmentPaid:      {},
	InstallmentCancelled: {},
}

// CanTransition reports whether a payment status move is legal.
func (s PaymentStatus) CanTransition(to PaymentStatus) bool {
	for _, next := range paymentTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition returns the target status or a ConflictError when illegal.
func (s PaymentStatus) Transition(to PaymentStatus) (PaymentStatus, error) {
	if !s.CanTransition(to) {
		return s, ConflictError{Resource: "payment status", Msg: string(s) + " cannot move to " + string(to)}
	}
	return to, nil
}

func (s BookingStatus) CanTransition(to BookingStatus) bool {
	for _, next := range bookingTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func (s InstallmentStatus) CanTransition(to InstallmentStatus) bool {
	for _, next := range installmentTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// ParsePaymentStatus normalizes raw input into a known payment status.
func ParsePaymentStatus(raw string) (PaymentStatus, bool) {
	v := PaymentStatus(strings.ToUpper(strings.TrimSpace(raw)))
	for _, s := range AllPaymentStatuses {
		if s == v {
			return s, true
		}
	}
	return "", false
}

func ParseRole(raw string) (Role, bool) {
	v := Role(strings.ToUpper(strings.TrimSpace(raw)))
	switch v {
	case RoleUser, RoleHost, RoleAdmin, RoleSupport:
		return v, true
	}
	return "", false
}

// StatusDisplay is the one canonical presentation tuple per status.
// Admin, host and traveler views all read from here so the rendering
// stays consistent.
type StatusDisplay struct {
	Label      string `json:"label"`
	Icon       string `json:"icon"`
	ColorClass string `json:"colorClass"`
}

var paymentDisplay = map[PaymentStatus]StatusDisplay{
	PaymentPending:       {Label: "Payment Pending", Icon: "clock", ColorClass: "text-yellow-600"},
	PaymentPartiallyPaid: {Label: "Partially Paid", Icon: "circle-half", ColorClass: "text-blue-600"},
	PaymentFullyPaid:     {Label: "Fully Paid", Icon: "check-circle", ColorClass: "text-green-600"},
	PaymentOverdue:       {Label: "Overdue", Icon: "alert-triangle", ColorClass: "text-red-600"},
	PaymentCancelled:     {Label: "Cancelled", Icon: "x-circle", ColorClass: "text-gray-500"},
	PaymentRefunded:      {Label: "Refunded", Icon: "rotate-ccw", ColorClass: "text-purple-600"},
}

// Display returns the presentation tuple for a payment status. Unknown
// statuses fall back to a neutral tuple rather than erroring.
func (s PaymentStatus) Display() StatusDisplay {
	if d, ok := paymentDisplay[s]; ok {
		return d
	}
	return StatusDisplay{Label: string(s), Icon: "help-circle", ColorClass: "text-gray-400"}
}
