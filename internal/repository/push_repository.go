package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/iliyamo/bali-villa-booking/internal/model"
)

// PushSubscriptionRepo stores admin browser push endpoints.
type PushSubscriptionRepo struct{ db *sql.DB }

func NewPushSubscriptionRepo(db *sql.DB) *PushSubscriptionRepo {
	return &PushSubscriptionRepo{db: db}
}

// Upsert inserts the subscription or refreshes keys and user agent of an
// existing endpoint.
func (r *PushSubscriptionRepo) Upsert(ctx context.Context, s model.PushSubscription) error {
	keys, err := json.Marshal(s.Keys)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, "INSERT INTO admin_push_subscriptions (endpoint, `keys`, user_agent) VALUES (?,?,?) "+
		"ON DUPLICATE KEY UPDATE `keys` = VALUES(`keys`), user_agent = VALUES(user_agent), updated_at = UTC_TIMESTAMP()",
		s.Endpoint, keys, s.UserAgent)
	return err
}

// List returns every stored subscription.  Rows with unreadable keys are
// skipped.
func (r *PushSubscriptionRepo) List(ctx context.Context) ([]model.PushSubscription, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT endpoint, `keys`, COALESCE(user_agent,''), updated_at FROM admin_push_subscriptions")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.PushSubscription{}
	for rows.Next() {
		var (
			s   model.PushSubscription
			raw []byte
		)
		if err := rows.Scan(&s.Endpoint, &raw, &s.UserAgent, &s.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &s.Keys); err != nil {
			continue
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete removes an endpoint.  Unknown endpoints are ignored.
func (r *PushSubscriptionRepo) Delete(ctx context.Context, endpoint string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM admin_push_subscriptions WHERE endpoint = ?", endpoint)
	return err
}
