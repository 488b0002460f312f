package models

import (
	"time"

	"marketplace/internal/domain"
)

// Payout is money owed to a host for one fully paid booking, split into
// two scheduled installments. Host/user/trip columns are denormalized so
// the admin payout table renders without joins.
type Payout struct {
	ID            string       `json:"id"`
	BookingID     string       `json:"bookingId"`
	HostID        domain.ID    `json:"hostId"`
	HostName      string       `json:"hostName"`
	HostEmail     string       `json:"hostEmail"`
	TripTitle     string       `json:"tripTitle"`
	UserID        domain.ID    `json:"userId"`
	UserName      string       `json:"userName"`
	UserEmail     string       `json:"userEmail"`
	TripStartDate time.Time    `json:"tripStartDate"`
	TripEndDate   time.Time    `json:"tripEndDate"`
	TotalAmount   domain.Money `json:"totalAmount"`

	FirstPaymentAmount  domain.Money             `json:"firstPaymentAmount"`
	FirstPaymentPercent int                      `json:"firstPaymentPercent"`
	FirstPaymentDue     time.Time                `json:"firstPaymentDue"`
	FirstPaymentStatus  domain.InstallmentStatus `json:"firstPaymentStatus"`

	SecondPaymentAmount  domain.Money             `json:"secondPaymentAmount"`
	SecondPaymentPercent int                      `json:"secondPaymentPercent"`
	SecondPaymentDue     time.Time                `json:"secondPaymentDue"`
	SecondPaymentStatus  domain.InstallmentStatus `json:"secondPaymentStatus"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
