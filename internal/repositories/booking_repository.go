package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	intconfig "marketplace/internal/config"
	"marketplace/internal/domain"
	"marketplace/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `
	id, user_id, travel_plan_id, start_date, end_date, participants,
	price_per_person, total_price, COALESCE(special_requirements,''),
	status, payment_status,
	COALESCE(amount_paid,0), COALESCE(remaining_amount,0), COALESCE(refund_amount,0),
	payment_deadline, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var b models.Booking
	var deadline sql.NullTime
	if err := row.Scan(
		&b.ID, &b.UserID, &b.TravelPlanID, &b.StartDate, &b.EndDate, &b.Participants,
		&b.PricePerPerson, &b.TotalPrice, &b.SpecialRequirements,
		&b.Status, &b.PaymentStatus,
		&b.AmountPaid, &b.RemainingAmount, &b.RefundAmount,
		&deadline, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return models.Booking{}, err
	}
	if deadline.Valid {
		t := deadline.Time
		b.PaymentDeadline = &t
	}
	return b, nil
}

// Create inserts the booking and its guest list in one transaction.
// Nothing is written when any insert fails.
func (r BookingRepository) Create(b models.Booking, guests []models.Guest) error {
	if b.ID == "" {
		return domain.ValidationError{Field: "id", Msg: "missing booking id"}
	}
	if len(guests) != b.Participants {
		return domain.ValidationError{Field: "guests", Msg: "guest count must equal participants"}
	}

	tx, err := r.db().Begin()
	if err != nil {
		return domain.InternalError{Msg: "begin booking tx", Err: err}
	}
	defer tx.Rollback()

	var deadline any
	if b.PaymentDeadline != nil {
		deadline = *b.PaymentDeadline
	}

	if _, err := tx.Exec(`
		INSERT INTO bookings
			(id, user_id, travel_plan_id, start_date, end_date, participants,
			 price_per_person, total_price, special_requirements,
			 status, payment_status, amount_paid, remaining_amount, refund_amount,
			 payment_deadline, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,NOW(),NOW())`,
		b.ID, b.UserID, b.TravelPlanID, b.StartDate, b.EndDate, b.Participants,
		b.PricePerPerson, b.TotalPrice, b.SpecialRequirements,
		b.Status, b.PaymentStatus, b.AmountPaid, b.RemainingAmount, b.RefundAmount,
		deadline,
	); err != nil {
		return domain.InternalError{Msg: "insert booking", Err: err}
	}

	for _, g := range guests {
		if _, err := tx.Exec(`
			INSERT INTO guests (booking_id, first_name, last_name, email, phone, is_team_lead)
			VALUES (?,?,?,?,?,?)`,
			b.ID, g.FirstName, g.LastName, g.Email, g.Phone, g.IsTeamLead,
		); err != nil {
			return domain.InternalError{Msg: "insert guest", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.InternalError{Msg: "commit booking tx", Err: err}
	}
	return nil
}

func (r BookingRepository) GetByID(id string) (models.Booking, error) {
	if strings.TrimSpace(id) == "" {
		return models.Booking{}, domain.ValidationError{Field: "id", Msg: "missing booking id"}
	}

	b, err := scanBooking(r.db().QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id=? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking"}
		}
		return models.Booking{}, domain.InternalError{Msg: "query booking", Err: err}
	}

	guests, err := r.ListGuests(id)
	if err != nil {
		return models.Booking{}, err
	}
	b.Guests = guests
	return b, nil
}

func (r BookingRepository) ListGuests(bookingID string) ([]models.Guest, error) {
	rows, err := r.db().Query(`
		SELECT id, booking_id, first_name, last_name, email, phone, is_team_lead
		FROM guests WHERE booking_id=? ORDER BY id`, bookingID)
	if err != nil {
		return nil, domain.InternalError{Msg: "query guests", Err: err}
	}
	defer rows.Close()

	var out []models.Guest
	for rows.Next() {
		var g models.Guest
		if err := rows.Scan(&g.ID, &g.BookingID, &g.FirstName, &g.LastName, &g.Email, &g.Phone, &g.IsTeamLead); err != nil {
			return nil, domain.InternalError{Msg: "scan guest", Err: err}
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r BookingRepository) listWhere(where string, args ...any) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings`
	if where != "" {
		query += ` WHERE ` + where
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Msg: "query bookings", Err: err}
	}
	defer rows.Close()

	var out []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, domain.InternalError{Msg: "scan booking", Err: err}
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r BookingRepository) ListAll() ([]models.Booking, error) {
	return r.listWhere("")
}

func (r BookingRepository) ListByUser(userID domain.ID) ([]models.Booking, error) {
	return r.listWhere("user_id=?", userID)
}

// ListByHost returns bookings against any of the host's travel plans.
func (r BookingRepository) ListByHost(hostID domain.ID) ([]models.Booking, error) {
	return r.listWhere("travel_plan_id IN (SELECT id FROM travel_plans WHERE host_id=?)", hostID)
}

// ApplyPayment records a gateway payment. The UPDATE is conditioned on
// the current payment status so a stale or replayed webhook cannot move
// a settled booking backwards.
func (r BookingRepository) ApplyPayment(id string, amountPaid domain.Money, newStatus domain.PaymentStatus, from []domain.PaymentStatus) error {
	if len(from) == 0 {
		return domain.ValidationError{Field: "from", Msg: "missing allowed source statuses"}
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(from)), ",")
	args := []any{amountPaid, amountPaid, newStatus, id}
	for _, s := range from {
		args = append(args, s)
	}

	res, err := r.db().Exec(`
		UPDATE bookings
		SET amount_paid=?, remaining_amount=total_price-?, payment_status=?, updated_at=NOW()
		WHERE id=? AND payment_status IN (`+placeholders+`)`, args...)
	if err != nil {
		return domain.InternalError{Msg: "apply payment", Err: err}
	}
	return r.requireRowMoved(res, id, "payment already settled or booking cancelled")
}

// ConfirmCancellation flips the booking to CANCELLED on both axes and
// records the refund owed. Conditioned on FULLY_PAID, which is the only
// state the refund path accepts.
func (r BookingRepository) ConfirmCancellation(id string, refund domain.Money) error {
	res, err := r.db().Exec(`
		UPDATE bookings
		SET status=?, payment_status=?, refund_amount=?, updated_at=NOW()
		WHERE id=? AND payment_status=?`,
		domain.BookingCancelled, domain.PaymentCancelled, refund, id, domain.PaymentFullyPaid)
	if err != nil {
		return domain.InternalError{Msg: "confirm cancellation", Err: err}
	}
	return r.requireRowMoved(res, id, "booking is not fully paid")
}

// MarkRefunded closes out a cancelled booking once the refund has been
// disbursed. The single conditioned UPDATE makes the CANCELLED -1 /
// REFUNDED +1 move atomic for every reader.
func (r BookingRepository) MarkRefunded(id string) error {
	res, err := r.db().Exec(`
		UPDATE bookings
		SET status=?, payment_status=?, updated_at=NOW()
		WHERE id=? AND payment_status=?`,
		domain.BookingRefunded, domain.PaymentRefunded, id, domain.PaymentCancelled)
	if err != nil {
		return domain.InternalError{Msg: "mark refunded", Err: err}
	}
	return r.requireRowMoved(res, id, "booking is not awaiting refund")
}

// SweepOverdue persists OVERDUE for every booking whose deadline passed
// while still PENDING or PARTIALLY_PAID. Idempotent; re-running moves
// nothing new.
func (r BookingRepository) SweepOverdue(now time.Time) (int64, error) {
	res, err := r.db().Exec(`
		UPDATE bookings
		SET payment_status=?, updated_at=NOW()
		WHERE payment_deadline IS NOT NULL AND payment_deadline < ?
		  AND payment_status IN (?,?)`,
		domain.PaymentOverdue, now, domain.PaymentPending, domain.PaymentPartiallyPaid)
	if err != nil {
		return 0, domain.InternalError{Msg: "sweep overdue", Err: err}
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// CountByPaymentStatus aggregates on the SQL side for the dashboards.
func (r BookingRepository) CountByPaymentStatus() (map[domain.PaymentStatus]int, error) {
	rows, err := r.db().Query(`SELECT payment_status, COUNT(*) FROM bookings GROUP BY payment_status`)
	if err != nil {
		return nil, domain.InternalError{Msg: "count bookings", Err: err}
	}
	defer rows.Close()

	counts := make(map[domain.PaymentStatus]int, len(domain.AllPaymentStatuses))
	for _, s := range domain.AllPaymentStatuses {
		counts[s] = 0
	}
	for rows.Next() {
		var raw string
		var n int
		if err := rows.Scan(&raw, &n); err != nil {
			return nil, domain.InternalError{Msg: "scan count", Err: err}
		}
		if s, ok := domain.ParsePaymentStatus(raw); ok {
			counts[s] = n
		}
	}
	return counts, rows.Err()
}

// ListNeedingPayout is the derived view fully-paid minus already-paid-out:
// fully paid bookings with no payout record yet.
func (r BookingRepository) ListNeedingPayout() ([]models.Booking, error) {
	return r.listWhere(
		"payment_status=? AND id NOT IN (SELECT booking_id FROM payouts)",
		domain.PaymentFullyPaid)
}

// requireRowMoved distinguishes "guard lost the race" from "no such
// booking" when a conditioned UPDATE touched nothing.
func (r BookingRepository) requireRowMoved(res sql.Result, id, conflictMsg string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return domain.InternalError{Msg: "rows affected", Err: err}
	}
	if n > 0 {
		return nil
	}

	var exists int
	err = r.db().QueryRow(`SELECT 1 FROM bookings WHERE id=? LIMIT 1`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return domain.InternalError{Msg: "check booking", Err: err}
	}
	return domain.ConflictError{Resource: "booking", Msg: fmt.Sprintf("%s (id=%s)", conflictMsg, id)}
}
