package repository

import (
	"context"
	"database/sql"
	"strings"
)

// SubscriberRepo stores newsletter sign-ups.
type SubscriberRepo struct{ db *sql.DB }

func NewSubscriberRepo(db *sql.DB) *SubscriberRepo { return &SubscriberRepo{db: db} }

// Subscribe records email and reports whether it was new.  Subscribing
// twice is not an error.
func (r *SubscriberRepo) Subscribe(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.db.ExecContext(ctx, `INSERT IGNORE INTO subscribers (email) VALUES (?)`, email)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
