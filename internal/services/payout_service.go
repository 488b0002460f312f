package services

import (
	"fmt"
	"time"

	"marketplace/internal/domain"
	"marketplace/internal/domain/models"
	"marketplace/internal/notify"
	"marketplace/internal/repositories"
	"marketplace/internal/utils"

	"github.com/google/uuid"
)

// PayoutService tracks the two scheduled installments owed to a host per
// fully paid booking. Payout creation is a manual admin action; there is
// no automatic pathway.
type PayoutService struct {
	PayoutRepo  repositories.PayoutRepository
	BookingRepo repositories.BookingRepository
	PlanRepo    repositories.TravelPlanRepository
	UserRepo    repositories.UserRepository
	Notifier    notify.Notifier
	RequestID   string
}

func (s PayoutService) notifier() notify.Notifier {
	if s.Notifier != nil {
		return s.Notifier
	}
	return notify.Nop{}
}

// BookingsNeedingPayout lists fully paid bookings without a payout record.
func (s PayoutService) BookingsNeedingPayout() ([]models.Booking, error) {
	return s.BookingRepo.ListNeedingPayout()
}

// CreatePayoutInput selects a booking from the needing-payout view and
// fixes the installment schedule.
type CreatePayoutInput struct {
	BookingID    string
	FirstPercent int
	FirstDue     time.Time
	SecondDue    time.Time
}

// CreatePayout builds the payout for one fully paid booking. The split
// is integer-exact: the installment amounts always sum to the total.
func (s PayoutService) CreatePayout(in CreatePayoutInput) (models.Payout, error) {
	b, err := s.BookingRepo.GetByID(in.BookingID)
	if err != nil {
		return models.Payout{}, err
	}
	if b.PaymentStatus != domain.PaymentFullyPaid {
		return models.Payout{}, domain.ConflictError{Resource: "booking", Msg: "only fully paid bookings qualify for payout"}
	}

	exists, err := s.PayoutRepo.ExistsForBooking(in.BookingID)
	if err != nil {
		return models.Payout{}, err
	}
	if exists {
		return models.Payout{}, domain.ConflictError{Resource: "payout", Msg: "booking already has a payout"}
	}

	first, second, err := domain.SplitPayout(b.TotalPrice, in.FirstPercent)
	if err != nil {
		return models.Payout{}, err
	}

	plan, err := s.PlanRepo.GetByID(b.TravelPlanID)
	if err != nil {
		return models.Payout{}, err
	}
	host, err := s.UserRepo.GetByID(plan.HostID)
	if err != nil {
		return models.Payout{}, err
	}
	traveler, err := s.UserRepo.GetByID(b.UserID)
	if err != nil {
		return models.Payout{}, err
	}

	p := models.Payout{
		ID:            uuid.NewString(),
		BookingID:     b.ID,
		HostID:        host.ID,
		HostName:      host.Name,
		HostEmail:     host.Email,
		TripTitle:     plan.Title,
		UserID:        traveler.ID,
		UserName:      traveler.Name,
		UserEmail:     traveler.Email,
		TripStartDate: b.StartDate,
		TripEndDate:   b.EndDate,
		TotalAmount:   b.TotalPrice,

		FirstPaymentAmount:  first,
		FirstPaymentPercent: in.FirstPercent,
		FirstPaymentDue:     in.FirstDue,
		FirstPaymentStatus:  domain.InstallmentPending,

		SecondPaymentAmount:  second,
		SecondPaymentPercent: 100 - in.FirstPercent,
		SecondPaymentDue:     in.SecondDue,
		SecondPaymentStatus:  domain.InstallmentPending,
	}

	if err := s.PayoutRepo.Create(p); err != nil {
		return models.Payout{}, err
	}

	utils.LogEvent(s.RequestID, "payout", "create",
		fmt.Sprintf("payout_id=%s booking_id=%s total=%d", p.ID, b.ID, p.TotalAmount))
	return s.PayoutRepo.GetByID(p.ID)
}

// MarkInstallmentPaid flips one installment to PAID. Repeating the call
// fails with a conflict and the installment stays PAID.
func (s PayoutService) MarkInstallmentPaid(payoutID, which string) (models.Payout, error) {
	p, err := s.PayoutRepo.MarkInstallmentPaid(payoutID, which)
	if err != nil {
		return models.Payout{}, err
	}

	utils.LogEvent(s.RequestID, "payout", "mark_paid",
		fmt.Sprintf("payout_id=%s installment=%s", payoutID, which))

	amount := p.FirstPaymentAmount
	if which == "second" {
		amount = p.SecondPaymentAmount
	}
	s.notifier().Send(s.RequestID, notify.Event{
		Type:    notify.EventInstallmentPaid,
		Email:   p.HostEmail,
		Subject: "Payout installment released",
		Body: fmt.Sprintf("The %s installment of %s for %q has been paid out.",
			which, utils.FormatINR(amount), p.TripTitle),
	})
	return p, nil
}

func (s PayoutService) GetPayout(id string) (models.Payout, error) {
	return s.PayoutRepo.GetByID(id)
}

func (s PayoutService) ListPayouts() ([]models.Payout, error) {
	return s.PayoutRepo.List()
}
