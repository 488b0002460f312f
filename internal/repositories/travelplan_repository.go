package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"

	intconfig "marketplace/internal/config"
	"marketplace/internal/domain"
	"marketplace/internal/domain/models"
)

type TravelPlanRepository struct {
	DB *sql.DB
}

func (r TravelPlanRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const planColumns = `
	id, host_id, title, COALESCE(description,''), country, COALESCE(state,''), city,
	no_of_days, price, max_participants, status, admin_approved,
	COALESCE(day_wise_data,'[]'), created_at, updated_at`

func scanPlan(row interface{ Scan(...any) error }) (models.TravelPlan, error) {
	var p models.TravelPlan
	var dayWise []byte
	if err := row.Scan(
		&p.ID, &p.HostID, &p.Title, &p.Description, &p.Country, &p.State, &p.City,
		&p.NoOfDays, &p.Price, &p.MaxParticipants, &p.Status, &p.AdminApproved,
		&dayWise, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return models.TravelPlan{}, err
	}
	if len(dayWise) > 0 {
		_ = json.Unmarshal(dayWise, &p.DayWiseData)
	}
	return p, nil
}

func (r TravelPlanRepository) Create(p models.TravelPlan) (domain.ID, error) {
	dayWise, err := json.Marshal(p.DayWiseData)
	if err != nil {
		return 0, domain.ValidationError{Field: "dayWiseData", Msg: "not serializable", Err: err}
	}

	res, err := r.db().Exec(`
		INSERT INTO travel_plans
			(host_id, title, description, country, state, city,
			 no_of_days, price, max_participants, status, admin_approved, day_wise_data,
			 created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,NOW(),NOW())`,
		p.HostID, p.Title, p.Description, p.Country, p.State, p.City,
		p.NoOfDays, p.Price, p.MaxParticipants, p.Status, p.AdminApproved, dayWise,
	)
	if err != nil {
		return 0, domain.InternalError{Msg: "insert travel plan", Err: err}
	}
	id, _ := res.LastInsertId()
	return domain.ID(id), nil
}

func (r TravelPlanRepository) GetByID(id domain.ID) (models.TravelPlan, error) {
	if id <= 0 {
		return models.TravelPlan{}, domain.ValidationError{Field: "id", Msg: "invalid plan id"}
	}
	p, err := scanPlan(r.db().QueryRow(`SELECT `+planColumns+` FROM travel_plans WHERE id=? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TravelPlan{}, domain.NotFoundError{Resource: "travel plan"}
		}
		return models.TravelPlan{}, domain.InternalError{Msg: "query travel plan", Err: err}
	}
	return p, nil
}

func (r TravelPlanRepository) listWhere(where string, args ...any) ([]models.TravelPlan, error) {
	query := `SELECT ` + planColumns + ` FROM travel_plans`
	if where != "" {
		query += ` WHERE ` + where
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Msg: "query travel plans", Err: err}
	}
	defer rows.Close()

	var out []models.TravelPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, domain.InternalError{Msg: "scan travel plan", Err: err}
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r TravelPlanRepository) ListByHost(hostID domain.ID) ([]models.TravelPlan, error) {
	return r.listWhere("host_id=?", hostID)
}

func (r TravelPlanRepository) ListActive() ([]models.TravelPlan, error) {
	return r.listWhere("status=?", domain.PlanActive)
}

func (r TravelPlanRepository) ListAll() ([]models.TravelPlan, error) {
	return r.listWhere("")
}

// Update rewrites the host-editable fields. Status and approval are
// managed through SetStatus/Approve only.
func (r TravelPlanRepository) Update(p models.TravelPlan) error {
	dayWise, err := json.Marshal(p.DayWiseData)
	if err != nil {
		return domain.ValidationError{Field: "dayWiseData", Msg: "not serializable", Err: err}
	}

	res, err := r.db().Exec(`
		UPDATE travel_plans
		SET title=?, description=?, country=?, state=?, city=?,
		    no_of_days=?, price=?, max_participants=?, day_wise_data=?, updated_at=NOW()
		WHERE id=? AND host_id=?`,
		p.Title, p.Description, p.Country, p.State, p.City,
		p.NoOfDays, p.Price, p.MaxParticipants, dayWise,
		p.ID, p.HostID,
	)
	if err != nil {
		return domain.InternalError{Msg: "update travel plan", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "travel plan"}
	}
	return nil
}

// SetStatus moves a plan between statuses, conditioned on the current
// one so concurrent toggles cannot skip the approval gate.
func (r TravelPlanRepository) SetStatus(id domain.ID, from, to domain.PlanStatus) error {
	res, err := r.db().Exec(`
		UPDATE travel_plans SET status=?, updated_at=NOW() WHERE id=? AND status=?`,
		to, id, from)
	if err != nil {
		return domain.InternalError{Msg: "set plan status", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ConflictError{Resource: "travel plan", Msg: "status is no longer " + string(from)}
	}
	return nil
}

// Approve marks the plan admin-approved and activates it in one write.
func (r TravelPlanRepository) Approve(id domain.ID) error {
	res, err := r.db().Exec(`
		UPDATE travel_plans SET admin_approved=1, status=?, updated_at=NOW()
		WHERE id=? AND admin_approved=0`,
		domain.PlanActive, id)
	if err != nil {
		return domain.InternalError{Msg: "approve travel plan", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int
		err := r.db().QueryRow(`SELECT 1 FROM travel_plans WHERE id=? LIMIT 1`, id).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "travel plan"}
		}
		if err != nil {
			return domain.InternalError{Msg: "check travel plan", Err: err}
		}
		return domain.ConflictError{Resource: "travel plan", Msg: "already approved"}
	}
	return nil
}
