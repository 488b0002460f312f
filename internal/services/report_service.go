package services

import (
	"time"

	"marketplace/internal/domain"
	"marketplace/internal/domain/models"
	"marketplace/internal/repositories"
	"marketplace/internal/utils"
)

// ReportService builds the dashboard summaries. Counts are aggregated
// over effective statuses, so an expired deadline shows as OVERDUE even
// before the sweep has persisted it.
type ReportService struct {
	BookingRepo repositories.BookingRepository
	PayoutRepo  repositories.PayoutRepository
	Now         func() time.Time
}

func (s ReportService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

// Summary is one dashboard payload: booking counts plus payout totals.
// StoredByStatus is the SQL-side count over persisted statuses; it lags
// Bookings.ByStatus only for bookings whose deadline passed since the
// last sweep.
type Summary struct {
	Bookings       domain.BookingCounts         `json:"bookings"`
	StoredByStatus map[domain.PaymentStatus]int `json:"storedByStatus,omitempty"`
	PayoutsPending int                          `json:"payoutsPending"`
	PayoutsOwed    domain.Money                 `json:"payoutsOwed"`
}

// AdminSummary aggregates over every booking on the platform.
func (s ReportService) AdminSummary() (Summary, error) {
	bookings, err := s.BookingRepo.ListAll()
	if err != nil {
		return Summary{}, err
	}
	stored, err := s.BookingRepo.CountByPaymentStatus()
	if err != nil {
		return Summary{}, err
	}
	sum := Summary{Bookings: s.aggregate(bookings), StoredByStatus: stored}

	payouts, err := s.PayoutRepo.List()
	if err != nil {
		return Summary{}, err
	}
	for _, p := range payouts {
		if p.FirstPaymentStatus == domain.InstallmentPending {
			sum.PayoutsPending++
			sum.PayoutsOwed += p.FirstPaymentAmount
		}
		if p.SecondPaymentStatus == domain.InstallmentPending {
			sum.PayoutsPending++
			sum.PayoutsOwed += p.SecondPaymentAmount
		}
	}
	return sum, nil
}

// HostSummary aggregates over one host's bookings.
func (s ReportService) HostSummary(hostID domain.ID) (Summary, error) {
	bookings, err := s.BookingRepo.ListByHost(hostID)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Bookings: s.aggregate(bookings)}, nil
}

func (s ReportService) aggregate(bookings []models.Booking) domain.BookingCounts {
	views := make([]domain.BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, domain.BookingView{
			StartDate:       b.StartDate,
			PaymentStatus:   b.PaymentStatus,
			PaymentDeadline: b.PaymentDeadline,
		})
	}
	return domain.AggregateBookings(views, s.now())
}
