package models

import (
	"time"

	"marketplace/internal/domain"
)

// User is any account on the platform; Role decides which surface
// (traveler, host, admin, support) it can reach.
type User struct {
	ID        domain.ID   `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	Role      domain.Role `json:"role"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

// HostApplication is a USER asking to become a HOST. Approval flips the
// role and removes the application from the pending queue.
type HostApplication struct {
	ID         domain.ID                `json:"id"`
	UserID     domain.ID                `json:"userId"`
	About      string                   `json:"about"`
	Experience string                   `json:"experience"`
	Status     domain.ApplicationStatus `json:"status"`
	DecidedBy  domain.ID                `json:"decidedBy,omitempty"`
	DecidedAt  *time.Time               `json:"decidedAt,omitempty"`
	CreatedAt  time.Time                `json:"createdAt"`
}
