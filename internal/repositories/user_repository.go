package repositories

import (
	"database/sql"
	"errors"

	intconfig "marketplace/internal/config"
	"marketplace/internal/domain"
	"marketplace/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r UserRepository) GetByID(id domain.ID) (models.User, error) {
	var u models.User
	err := r.db().QueryRow(`
		SELECT id, name, email, COALESCE(phone,''), role, status, created_at
		FROM users WHERE id=? LIMIT 1`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.Status, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "query user", Err: err}
	}
	return u, nil
}

// GetByEmail also returns the password hash for login verification.
func (r UserRepository) GetByEmail(email string) (models.User, string, error) {
	var u models.User
	var hash string
	err := r.db().QueryRow(`
		SELECT id, name, email, COALESCE(phone,''), password_hash, role, status, created_at
		FROM users WHERE email=? LIMIT 1`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &hash, &u.Role, &u.Status, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, "", domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return models.User{}, "", domain.InternalError{Msg: "query user", Err: err}
	}
	return u, hash, nil
}

func (r UserRepository) Create(name, email, phone, passwordHash string) (domain.ID, error) {
	var exists int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM users WHERE email=?`, email).Scan(&exists)
	if err != nil {
		return 0, domain.InternalError{Msg: "check user", Err: err}
	}
	if exists > 0 {
		return 0, domain.ConflictError{Resource: "user", Msg: "email already registered"}
	}

	res, err := r.db().Exec(`
		INSERT INTO users (name, email, phone, password_hash, role, status, created_at, updated_at)
		VALUES (?,?,?,?,?,'active',NOW(),NOW())`,
		name, email, phone, passwordHash, domain.RoleUser)
	if err != nil {
		return 0, domain.InternalError{Msg: "insert user", Err: err}
	}
	id, _ := res.LastInsertId()
	return domain.ID(id), nil
}
