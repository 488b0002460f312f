package models

import "marketplace/internal/domain"

// Guest is one traveler on a booking. Exactly one guest per booking is
// the team lead (primary contact).
type Guest struct {
	ID         domain.ID `json:"id"`
	BookingID  string    `json:"bookingId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	IsTeamLead bool      `json:"isTeamLead"`
}
