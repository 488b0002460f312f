package repositories

import (
	"database/sql"
	"errors"

	intconfig "marketplace/internal/config"
	"marketplace/internal/domain"
	"marketplace/internal/domain/models"
)

type HostApplicationRepository struct {
	DB *sql.DB
}

func (r HostApplicationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r HostApplicationRepository) Create(userID domain.ID, about, experience string) (domain.ID, error) {
	var pending int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM host_applications WHERE user_id=? AND status=?`,
		userID, domain.ApplicationPending).Scan(&pending)
	if err != nil {
		return 0, domain.InternalError{Msg: "check application", Err: err}
	}
	if pending > 0 {
		return 0, domain.ConflictError{Resource: "host application", Msg: "application already pending"}
	}

	res, err := r.db().Exec(`
		INSERT INTO host_applications (user_id, about, experience, status, created_at)
		VALUES (?,?,?,?,NOW())`,
		userID, about, experience, domain.ApplicationPending)
	if err != nil {
		return 0, domain.InternalError{Msg: "insert application", Err: err}
	}
	id, _ := res.LastInsertId()
	return domain.ID(id), nil
}

func (r HostApplicationRepository) GetByID(id domain.ID) (models.HostApplication, error) {
	var a models.HostApplication
	var decidedBy sql.NullInt64
	var decidedAt sql.NullTime
	err := r.db().QueryRow(`
		SELECT id, user_id, COALESCE(about,''), COALESCE(experience,''), status, decided_by, decided_at, created_at
		FROM host_applications WHERE id=? LIMIT 1`, id).
		Scan(&a.ID, &a.UserID, &a.About, &a.Experience, &a.Status, &decidedBy, &decidedAt, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.HostApplication{}, domain.NotFoundError{Resource: "host application"}
	}
	if err != nil {
		return models.HostApplication{}, domain.InternalError{Msg: "query application", Err: err}
	}
	if decidedBy.Valid {
		a.DecidedBy = domain.ID(decidedBy.Int64)
	}
	if decidedAt.Valid {
		t := decidedAt.Time
		a.DecidedAt = &t
	}
	return a, nil
}

// ListPending is the admin review queue.
func (r HostApplicationRepository) ListPending() ([]models.HostApplication, error) {
	rows, err := r.db().Query(`
		SELECT id, user_id, COALESCE(about,''), COALESCE(experience,''), status, created_at
		FROM host_applications WHERE status=? ORDER BY created_at`, domain.ApplicationPending)
	if err != nil {
		return nil, domain.InternalError{Msg: "query applications", Err: err}
	}
	defer rows.Close()

	var out []models.HostApplication
	for rows.Next() {
		var a models.HostApplication
		if err := rows.Scan(&a.ID, &a.UserID, &a.About, &a.Experience, &a.Status, &a.CreatedAt); err != nil {
			return nil, domain.InternalError{Msg: "scan application", Err: err}
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Approve decides the application and promotes the applicant USER->HOST
// in one transaction. Both updates are status-conditioned, so approving
// an already-decided application fails cleanly and changes nothing.
func (r HostApplicationRepository) Approve(id, adminID domain.ID) (models.HostApplication, error) {
	app, err := r.GetByID(id)
	if err != nil {
		return models.HostApplication{}, err
	}

	tx, err := r.db().Begin()
	if err != nil {
		return models.HostApplication{}, domain.InternalError{Msg: "begin approve tx", Err: err}
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE host_applications SET status=?, decided_by=?, decided_at=NOW()
		WHERE id=? AND status=?`,
		domain.ApplicationApproved, adminID, id, domain.ApplicationPending)
	if err != nil {
		return models.HostApplication{}, domain.InternalError{Msg: "approve application", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.HostApplication{}, domain.ConflictError{Resource: "host application", Msg: "already decided"}
	}

	res, err = tx.Exec(`
		UPDATE users SET role=?, updated_at=NOW() WHERE id=? AND role=?`,
		domain.RoleHost, app.UserID, domain.RoleUser)
	if err != nil {
		return models.HostApplication{}, domain.InternalError{Msg: "promote user", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.HostApplication{}, domain.ConflictError{Resource: "user", Msg: "applicant is no longer a USER"}
	}

	if err := tx.Commit(); err != nil {
		return models.HostApplication{}, domain.InternalError{Msg: "commit approve tx", Err: err}
	}
	return r.GetByID(id)
}

// Reject decides the application without touching the user row.
func (r HostApplicationRepository) Reject(id, adminID domain.ID) error {
	res, err := r.db().Exec(`
		UPDATE host_applications SET status=?, decided_by=?, decided_at=NOW()
		WHERE id=? AND status=?`,
		domain.ApplicationRejected, adminID, id, domain.ApplicationPending)
	if err != nil {
		return domain.InternalError{Msg: "reject application", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int
		err := r.db().QueryRow(`SELECT 1 FROM host_applications WHERE id=? LIMIT 1`, id).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "host application"}
		}
		if err != nil {
			return domain.InternalError{Msg: "check application", Err: err}
		}
		return domain.ConflictError{Resource: "host application", Msg: "already decided"}
	}
	return nil
}
