package models

import (
	"time"

	"marketplace/internal/domain"
)

// Booking is one reservation of a travel plan by a user, carrying both
// the confirmation lifecycle and the payment lifecycle.
type Booking struct {
	ID                  string               `json:"id"`
	UserID              domain.ID            `json:"userId"`
	TravelPlanID        domain.ID            `json:"travelPlanId"`
	StartDate           time.Time            `json:"startDate"`
	EndDate             time.Time            `json:"endDate"`
	Participants        int                  `json:"participants"`
	PricePerPerson      domain.Money         `json:"pricePerPerson"`
	TotalPrice          domain.Money         `json:"totalPrice"`
	SpecialRequirements string               `json:"specialRequirements,omitempty"`
	Status              domain.BookingStatus `json:"status"`
	PaymentStatus       domain.PaymentStatus `json:"paymentStatus"`
	AmountPaid          domain.Money         `json:"amountPaid"`
	RemainingAmount     domain.Money         `json:"remainingAmount"`
	RefundAmount        domain.Money         `json:"refundAmount"`
	PaymentDeadline     *time.Time           `json:"paymentDeadline,omitempty"`
	CreatedAt           time.Time            `json:"createdAt"`
	UpdatedAt           time.Time            `json:"updatedAt"`

	Guests []Guest `json:"guests,omitempty"`
}

// BookingUpdate supports PATCH-style updates via key presence.
type BookingUpdate struct {
	SpecialRequirements *string
	PaymentDeadline     *time.Time
}
