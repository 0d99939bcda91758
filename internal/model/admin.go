package model

import "time"

// AdminUser is a dashboard operator (admin_users).  Only the ADMIN role
// exists today; the column is kept so tokens carry an explicit role claim.
type AdminUser struct {
	ID           uint64    // admin_users.id
	Email        string    // admin_users.email (lower-cased)
	PasswordHash string    // admin_users.password_hash (bcrypt)
	Role         string    // admin_users.role
	IsActive     bool      // admin_users.is_active
	CreatedAt    time.Time // admin_users.created_at
	UpdatedAt    time.Time // admin_users.updated_at
}

// RoleAdmin is the role claim required by the dashboard routes.
const RoleAdmin = "ADMIN"

// PushKeys holds the browser-generated encryption keys of a subscription.
type PushKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

// PushSubscription is a browser push endpoint registered by an admin
// (admin_push_subscriptions).  Endpoint is the primary key.
type PushSubscription struct {
	Endpoint  string    `json:"endpoint"`
	Keys      PushKeys  `json:"keys"`
	UserAgent string    `json:"user_agent,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
