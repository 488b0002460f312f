package services

import (
	"fmt"
	"time"

	"marketplace/internal/domain"
	"marketplace/internal/domain/models"
	"marketplace/internal/repositories"
	"marketplace/internal/utils"
	"marketplace/internal/validation"

	"github.com/google/uuid"
)

// BookingService owns booking creation and reads. Every read applies the
// payment-status evaluator so a passed deadline surfaces as OVERDUE even
// before the sweep persists it.
type BookingService struct {
	BookingRepo repositories.BookingRepository
	PlanRepo    repositories.TravelPlanRepository
	Guests      *validation.GuestValidator
	RequestID   string
	Now         func() time.Time
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

func (s BookingService) guests() *validation.GuestValidator {
	if s.Guests != nil {
		return s.Guests
	}
	return validation.NewGuestValidator()
}

// CreateBookingInput is the checkout payload.
type CreateBookingInput struct {
	UserID              domain.ID
	TravelPlanID        domain.ID
	StartDate           time.Time
	Participants        int
	SpecialRequirements string
	PaymentDeadline     *time.Time
	Guests              []validation.GuestInput
}

// CreateBooking validates the guest list, prices the booking from its
// plan and persists booking + guests in one transaction. Validation
// failures reject before any record is created.
func (s BookingService) CreateBooking(in CreateBookingInput) (models.Booking, error) {
	if err := s.guests().ValidateGuestList(in.Guests, in.Participants); err != nil {
		return models.Booking{}, err
	}

	plan, err := s.PlanRepo.GetByID(in.TravelPlanID)
	if err != nil {
		return models.Booking{}, err
	}
	if plan.Status != domain.PlanActive {
		return models.Booking{}, domain.ConflictError{Resource: "travel plan", Msg: "plan is not open for booking"}
	}
	if in.Participants > plan.MaxParticipants {
		return models.Booking{}, domain.ValidationError{
			Field: "participants",
			Msg:   fmt.Sprintf("exceeds plan capacity (%d)", plan.MaxParticipants),
		}
	}
	if !in.StartDate.After(s.now()) {
		return models.Booking{}, domain.ValidationError{Field: "startDate", Msg: "must be in the future"}
	}

	total := plan.Price * domain.Money(in.Participants)
	b := models.Booking{
		ID:                  uuid.NewString(),
		UserID:              in.UserID,
		TravelPlanID:        in.TravelPlanID,
		StartDate:           in.StartDate,
		EndDate:             in.StartDate.Add(time.Duration(plan.NoOfDays) * 24 * time.Hour),
		Participants:        in.Participants,
		PricePerPerson:      plan.Price,
		TotalPrice:          total,
		SpecialRequirements: utils.NormalizeSpace(in.SpecialRequirements),
		Status:              domain.BookingPending,
		PaymentStatus:       domain.PaymentPending,
		RemainingAmount:     total,
		PaymentDeadline:     in.PaymentDeadline,
	}

	if err := s.BookingRepo.Create(b, validation.ToModels(b.ID, in.Guests)); err != nil {
		return models.Booking{}, err
	}

	utils.LogEvent(s.RequestID, "booking", "create", "booking_id="+b.ID)
	return s.GetBooking(b.ID)
}

// GetBooking loads a booking with its effective payment status.
func (s BookingService) GetBooking(id string) (models.Booking, error) {
	b, err := s.BookingRepo.GetByID(id)
	if err != nil {
		return models.Booking{}, err
	}
	b.PaymentStatus = domain.EvaluatePaymentStatus(b.PaymentStatus, b.PaymentDeadline, s.now())
	return b, nil
}

func (s BookingService) ListForUser(userID domain.ID) ([]models.Booking, error) {
	return s.evaluate(s.BookingRepo.ListByUser(userID))
}

func (s BookingService) ListForHost(hostID domain.ID) ([]models.Booking, error) {
	return s.evaluate(s.BookingRepo.ListByHost(hostID))
}

func (s BookingService) ListAll() ([]models.Booking, error) {
	return s.evaluate(s.BookingRepo.ListAll())
}

func (s BookingService) evaluate(bookings []models.Booking, err error) ([]models.Booking, error) {
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range bookings {
		bookings[i].PaymentStatus = domain.EvaluatePaymentStatus(bookings[i].PaymentStatus, bookings[i].PaymentDeadline, now)
	}
	return bookings, nil
}
