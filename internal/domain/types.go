package domain

// ID is used for numeric identities (users, plans, guests).
type ID int64

// Money is an amount in whole rupees. All arithmetic stays in integers
// so the two payout installments always sum exactly to the total.
type Money int64

// RequestContext carries authenticated user info extracted from the JWT.
type RequestContext struct {
	UserID ID   `json:"userId"`
	Role   Role `json:"role"`
}
