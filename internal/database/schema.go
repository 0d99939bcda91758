package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema lists the tables the service reads and writes.  Booking dates are
// kept as ISO-8601 strings; availability code parses them row by row so a
// single malformed value cannot break a villa's calendar.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS villas (
		id                    VARCHAR(64)  NOT NULL PRIMARY KEY,
		name                  VARCHAR(255) NOT NULL,
		description           TEXT         NULL,
		price_per_night       BIGINT       NOT NULL DEFAULT 0,
		bedrooms              INT          NOT NULL DEFAULT 0,
		guests                INT          NOT NULL DEFAULT 0,
		image_url             VARCHAR(1024) NULL,
		images                JSON         NULL,
		features              JSON         NULL,
		land_area             DOUBLE       NULL,
		building_area         DOUBLE       NULL,
		levels                INT          NULL,
		bathrooms             INT          NULL,
		pantry                INT          NULL,
		pool_area             INT          NULL,
		latitude              DECIMAL(10,7) NULL,
		longitude             DECIMAL(10,7) NULL,
		amenities_detail      JSON         NULL,
		house_rules           JSON         NULL,
		proximity_list        JSON         NULL,
		sleeping_arrangements JSON         NULL,
		created_at            DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id              CHAR(36)     NOT NULL PRIMARY KEY,
		villa_id        VARCHAR(64)  NOT NULL,
		start_date      VARCHAR(40)  NOT NULL,
		end_date        VARCHAR(40)  NOT NULL,
		total_price     BIGINT       NOT NULL,
		status          VARCHAR(16)  NOT NULL DEFAULT 'pending',
		guest_name      VARCHAR(255) NOT NULL,
		guest_email     VARCHAR(255) NOT NULL,
		guest_whatsapp  VARCHAR(64)  NOT NULL,
		special_request TEXT         NULL,
		created_at      DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_bookings_villa_status (villa_id, status)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS journal_posts (
		id           VARCHAR(64)  NOT NULL PRIMARY KEY,
		title        VARCHAR(255) NOT NULL,
		excerpt      TEXT         NULL,
		content      MEDIUMTEXT   NULL,
		category     VARCHAR(64)  NULL,
		image_url    VARCHAR(1024) NULL,
		published_at DATETIME     NULL,
		slug         VARCHAR(255) NOT NULL UNIQUE,
		author       VARCHAR(255) NULL,
		created_at   DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS experiences (
		id          VARCHAR(64)  NOT NULL PRIMARY KEY,
		title       VARCHAR(255) NOT NULL,
		description TEXT         NULL,
		category    VARCHAR(64)  NULL,
		image_url   VARCHAR(1024) NULL,
		cta_label   VARCHAR(64)  NULL,
		created_at  DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id          VARCHAR(64)  NOT NULL PRIMARY KEY,
		guest_name  VARCHAR(255) NOT NULL,
		quote       TEXT         NOT NULL,
		source      VARCHAR(64)  NULL,
		image_url   VARCHAR(1024) NULL,
		is_featured TINYINT(1)   NOT NULL DEFAULT 0
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS subscribers (
		email      VARCHAR(255) NOT NULL PRIMARY KEY,
		created_at DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS admin_push_subscriptions (
		endpoint   VARCHAR(768) NOT NULL PRIMARY KEY,
		` + "`keys`" + ` JSON NOT NULL,
		user_agent VARCHAR(512) NULL,
		updated_at DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS admin_users (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		email         VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		role          VARCHAR(32)  NOT NULL DEFAULT 'ADMIN',
		is_active     TINYINT(1)   NOT NULL DEFAULT 1,
		created_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS admin_refresh_tokens (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		user_id    BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64)     NOT NULL UNIQUE,
		expires_at DATETIME     NOT NULL,
		revoked_at DATETIME     NULL,
		created_at DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_refresh_user (user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates any missing table.  Existing tables are left alone.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
