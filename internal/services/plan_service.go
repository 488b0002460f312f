package services

import (
	"fmt"
	"strings"

	"marketplace/internal/domain"
	"marketplace/internal/domain/models"
	"marketplace/internal/repositories"
	"marketplace/internal/utils"
)

// PlanService owns travel-plan lifecycle: hosts draft and edit, admins
// approve, and only approved plans can be toggled active by their host.
type PlanService struct {
	PlanRepo  repositories.TravelPlanRepository
	RequestID string
}

// PlanInput is the host-editable slice of a travel plan.
type PlanInput struct {
	Title           string           `json:"title" binding:"required"`
	Description     string           `json:"description"`
	Country         string           `json:"country" binding:"required"`
	State           string           `json:"state"`
	City            string           `json:"city" binding:"required"`
	NoOfDays        int              `json:"noOfDays" binding:"required,min=1"`
	Price           domain.Money     `json:"price" binding:"required,min=1"`
	MaxParticipants int              `json:"maxParticipants" binding:"required,min=1"`
	DayWiseData     []models.DayPlan `json:"dayWiseData"`
	Draft           bool             `json:"draft"`
}

func (in PlanInput) validate() error {
	if len(in.DayWiseData) > 0 && len(in.DayWiseData) != in.NoOfDays {
		return domain.ValidationError{
			Field: "dayWiseData",
			Msg:   fmt.Sprintf("itinerary has %d day(s), plan says %d", len(in.DayWiseData), in.NoOfDays),
		}
	}
	return nil
}

// CreatePlan stores a new plan as DRAFT or INACTIVE. It never creates an
// ACTIVE plan; that gate belongs to the admin.
func (s PlanService) CreatePlan(hostID domain.ID, in PlanInput) (models.TravelPlan, error) {
	if err := in.validate(); err != nil {
		return models.TravelPlan{}, err
	}

	status := domain.PlanInactive
	if in.Draft {
		status = domain.PlanDraft
	}

	p := models.TravelPlan{
		HostID:          hostID,
		Title:           utils.NormalizeSpace(in.Title),
		Description:     strings.TrimSpace(in.Description),
		Country:         utils.NormalizeSpace(in.Country),
		State:           utils.NormalizeSpace(in.State),
		City:            utils.NormalizeSpace(in.City),
		NoOfDays:        in.NoOfDays,
		Price:           in.Price,
		MaxParticipants: in.MaxParticipants,
		Status:          status,
		DayWiseData:     in.DayWiseData,
	}

	id, err := s.PlanRepo.Create(p)
	if err != nil {
		return models.TravelPlan{}, err
	}
	utils.LogEvent(s.RequestID, "plan", "create", fmt.Sprintf("plan_id=%d host_id=%d", id, hostID))
	return s.PlanRepo.GetByID(id)
}

// UpdatePlan rewrites host-editable fields; ownership is enforced by the
// repository's host-scoped WHERE clause.
func (s PlanService) UpdatePlan(hostID, planID domain.ID, in PlanInput) (models.TravelPlan, error) {
	if err := in.validate(); err != nil {
		return models.TravelPlan{}, err
	}

	p := models.TravelPlan{
		ID:              planID,
		HostID:          hostID,
		Title:           utils.NormalizeSpace(in.Title),
		Description:     strings.TrimSpace(in.Description),
		Country:         utils.NormalizeSpace(in.Country),
		State:           utils.NormalizeSpace(in.State),
		City:            utils.NormalizeSpace(in.City),
		NoOfDays:        in.NoOfDays,
		Price:           in.Price,
		MaxParticipants: in.MaxParticipants,
		DayWiseData:     in.DayWiseData,
	}
	if err := s.PlanRepo.Update(p); err != nil {
		return models.TravelPlan{}, err
	}
	return s.PlanRepo.GetByID(planID)
}

// ApprovePlan is the admin gate that first activates a plan.
func (s PlanService) ApprovePlan(planID domain.ID) (models.TravelPlan, error) {
	if err := s.PlanRepo.Approve(planID); err != nil {
		return models.TravelPlan{}, err
	}
	utils.LogEvent(s.RequestID, "plan", "approve", fmt.Sprintf("plan_id=%d", planID))
	return s.PlanRepo.GetByID(planID)
}

// TogglePlan lets a host flip an already-approved plan between ACTIVE
// and INACTIVE. Unapproved plans cannot be activated this way.
func (s PlanService) TogglePlan(hostID, planID domain.ID) (models.TravelPlan, error) {
	p, err := s.PlanRepo.GetByID(planID)
	if err != nil {
		return models.TravelPlan{}, err
	}
	if p.HostID != hostID {
		return models.TravelPlan{}, domain.NotFoundError{Resource: "travel plan"}
	}
	if !p.AdminApproved {
		return models.TravelPlan{}, domain.ConflictError{Resource: "travel plan", Msg: "plan awaits admin approval"}
	}

	from, to := domain.PlanActive, domain.PlanInactive
	if p.Status == domain.PlanInactive {
		from, to = domain.PlanInactive, domain.PlanActive
	}
	if err := s.PlanRepo.SetStatus(planID, from, to); err != nil {
		return models.TravelPlan{}, err
	}
	utils.LogEvent(s.RequestID, "plan", "toggle", fmt.Sprintf("plan_id=%d status=%s", planID, to))
	return s.PlanRepo.GetByID(planID)
}

func (s PlanService) GetPlan(id domain.ID) (models.TravelPlan, error) {
	return s.PlanRepo.GetByID(id)
}

func (s PlanService) ListActive() ([]models.TravelPlan, error) {
	return s.PlanRepo.ListActive()
}

func (s PlanService) ListForHost(hostID domain.ID) ([]models.TravelPlan, error) {
	return s.PlanRepo.ListByHost(hostID)
}

func (s PlanService) ListAll() ([]models.TravelPlan, error) {
	return s.PlanRepo.ListAll()
}
