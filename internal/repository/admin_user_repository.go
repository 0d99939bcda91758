package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/bali-villa-booking/internal/model"
	"github.com/iliyamo/bali-villa-booking/internal/utils"
)

// AdminUserRepo manages dashboard accounts.
type AdminUserRepo struct{ DB *sql.DB }

func NewAdminUserRepo(db *sql.DB) *AdminUserRepo { return &AdminUserRepo{DB: db} }

// Create hashes password and inserts the admin, returning its ID.
func (r *AdminUserRepo) Create(ctx context.Context, email, password, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO admin_users (email, password_hash, role) VALUES (?,?,?)",
		email, hash, role)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// EnsureAdmin creates the bootstrap account unless the email already exists.
func (r *AdminUserRepo) EnsureAdmin(ctx context.Context, email, password string, cost int) (bool, error) {
	_, err := r.Create(ctx, email, password, model.RoleAdmin, cost)
	if errors.Is(err, ErrEmailExists) {
		return false, nil
	}
	return err == nil, err
}

const adminColumns = "id,email,password_hash,role,is_active,created_at,updated_at"

func scanAdmin(row *sql.Row) (model.AdminUser, error) {
	var u model.AdminUser
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	return u, err
}

// GetByEmail fetches an admin by normalized email.
func (r *AdminUserRepo) GetByEmail(ctx context.Context, email string) (model.AdminUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanAdmin(r.DB.QueryRowContext(ctx,
		"SELECT "+adminColumns+" FROM admin_users WHERE email=? LIMIT 1", email))
}

// GetByID fetches an admin by id.
func (r *AdminUserRepo) GetByID(ctx context.Context, id uint64) (model.AdminUser, error) {
	return scanAdmin(r.DB.QueryRowContext(ctx,
		"SELECT "+adminColumns+" FROM admin_users WHERE id=? LIMIT 1", id))
}
