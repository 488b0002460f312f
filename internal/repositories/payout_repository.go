package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "marketplace/internal/config"
	"marketplace/internal/domain"
	"marketplace/internal/domain/models"
)

type PayoutRepository struct {
	DB *sql.DB
}

func (r PayoutRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const payoutColumns = `
	id, booking_id, host_id, host_name, host_email, trip_title,
	user_id, user_name, user_email, trip_start_date, trip_end_date, total_amount,
	first_payment_amount, first_payment_percent, first_payment_due, first_payment_status,
	second_payment_amount, second_payment_percent, second_payment_due, second_payment_status,
	created_at, updated_at`

func scanPayout(row interface{ Scan(...any) error }) (models.Payout, error) {
	var p models.Payout
	err := row.Scan(
		&p.ID, &p.BookingID, &p.HostID, &p.HostName, &p.HostEmail, &p.TripTitle,
		&p.UserID, &p.UserName, &p.UserEmail, &p.TripStartDate, &p.TripEndDate, &p.TotalAmount,
		&p.FirstPaymentAmount, &p.FirstPaymentPercent, &p.FirstPaymentDue, &p.FirstPaymentStatus,
		&p.SecondPaymentAmount, &p.SecondPaymentPercent, &p.SecondPaymentDue, &p.SecondPaymentStatus,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r PayoutRepository) Create(p models.Payout) error {
	if p.ID == "" {
		return domain.ValidationError{Field: "id", Msg: "missing payout id"}
	}
	_, err := r.db().Exec(`
		INSERT INTO payouts
			(id, booking_id, host_id, host_name, host_email, trip_title,
			 user_id, user_name, user_email, trip_start_date, trip_end_date, total_amount,
			 first_payment_amount, first_payment_percent, first_payment_due, first_payment_status,
			 second_payment_amount, second_payment_percent, second_payment_due, second_payment_status,
			 created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,NOW(),NOW())`,
		p.ID, p.BookingID, p.HostID, p.HostName, p.HostEmail, p.TripTitle,
		p.UserID, p.UserName, p.UserEmail, p.TripStartDate, p.TripEndDate, p.TotalAmount,
		p.FirstPaymentAmount, p.FirstPaymentPercent, p.FirstPaymentDue, p.FirstPaymentStatus,
		p.SecondPaymentAmount, p.SecondPaymentPercent, p.SecondPaymentDue, p.SecondPaymentStatus,
	)
	if err != nil {
		return domain.InternalError{Msg: "insert payout", Err: err}
	}
	return nil
}

func (r PayoutRepository) GetByID(id string) (models.Payout, error) {
	if strings.TrimSpace(id) == "" {
		return models.Payout{}, domain.ValidationError{Field: "id", Msg: "missing payout id"}
	}
	p, err := scanPayout(r.db().QueryRow(`SELECT `+payoutColumns+` FROM payouts WHERE id=? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Payout{}, domain.NotFoundError{Resource: "payout"}
		}
		return models.Payout{}, domain.InternalError{Msg: "query payout", Err: err}
	}
	return p, nil
}

func (r PayoutRepository) List() ([]models.Payout, error) {
	rows, err := r.db().Query(`SELECT ` + payoutColumns + ` FROM payouts ORDER BY created_at DESC`)
	if err != nil {
		return nil, domain.InternalError{Msg: "query payouts", Err: err}
	}
	defer rows.Close()

	var out []models.Payout
	for rows.Next() {
		p, err := scanPayout(rows)
		if err != nil {
			return nil, domain.InternalError{Msg: "scan payout", Err: err}
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PayoutRepository) ExistsForBooking(bookingID string) (bool, error) {
	var one int
	err := r.db().QueryRow(`SELECT 1 FROM payouts WHERE booking_id=? LIMIT 1`, bookingID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, domain.InternalError{Msg: "check payout", Err: err}
	}
	return true, nil
}

// MarkInstallmentPaid flips one installment PENDING -> PAID. The UPDATE
// is conditioned on the prior status, so when two admins race only the
// first succeeds; the second gets a ConflictError and nothing is
// double-credited.
func (r PayoutRepository) MarkInstallmentPaid(id, which string) (models.Payout, error) {
	var col string
	switch which {
	case "first":
		col = "first_payment_status"
	case "second":
		col = "second_payment_status"
	default:
		return models.Payout{}, domain.ValidationError{Field: "which", Msg: "must be first or second"}
	}

	res, err := r.db().Exec(
		`UPDATE payouts SET `+col+`=?, updated_at=NOW() WHERE id=? AND `+col+`=?`,
		domain.InstallmentPaid, id, domain.InstallmentPending)
	if err != nil {
		return models.Payout{}, domain.InternalError{Msg: "mark installment paid", Err: err}
	}

	n, err := res.RowsAffected()
	if err != nil {
		return models.Payout{}, domain.InternalError{Msg: "rows affected", Err: err}
	}
	if n == 0 {
		p, err := r.GetByID(id)
		if err != nil {
			return models.Payout{}, err
		}
		current := p.FirstPaymentStatus
		if which == "second" {
			current = p.SecondPaymentStatus
		}
		return models.Payout{}, domain.ConflictError{
			Resource: "payout installment",
			Msg:      which + " installment is " + string(current) + ", not PENDING",
		}
	}

	return r.GetByID(id)
}
