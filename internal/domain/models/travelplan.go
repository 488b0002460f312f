package models

import (
	"time"

	"marketplace/internal/domain"
)

// DayPlan is one day of the itinerary, stored as JSON on the plan row.
type DayPlan struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Activities    []string `json:"activities"`
	Meals         string   `json:"meals,omitempty"`
	Accommodation string   `json:"accommodation,omitempty"`
	Image         string   `json:"image,omitempty"`
}

// TravelPlan is a host-owned listing. It only becomes ACTIVE through
// admin approval; after that the host may toggle ACTIVE/INACTIVE.
type TravelPlan struct {
	ID              domain.ID         `json:"id"`
	HostID          domain.ID         `json:"hostId"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Country         string            `json:"country"`
	State           string            `json:"state"`
	City            string            `json:"city"`
	NoOfDays        int               `json:"noOfDays"`
	Price           domain.Money      `json:"price"`
	MaxParticipants int               `json:"maxParticipants"`
	Status          domain.PlanStatus `json:"status"`
	AdminApproved   bool              `json:"adminApproved"`
	DayWiseData     []DayPlan         `json:"dayWiseData,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}
