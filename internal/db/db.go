package db

import (
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"autohub/internal/config"
)

// Connect opens the shared Postgres pool used by every repository.
func Connect(cfg config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	return db, nil
}

// RunMigrations creates the schema if it does not exist yet.
func RunMigrations(db *sqlx.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            BIGSERIAL PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role          TEXT NOT NULL DEFAULT 'user',
			display_name  TEXT NOT NULL DEFAULT '',
			bio           TEXT NOT NULL DEFAULT '',
			location      TEXT NOT NULL DEFAULT '',
			profile_image TEXT NOT NULL DEFAULT '',
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS listings (
			id          BIGSERIAL PRIMARY KEY,
			owner_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price       NUMERIC(12,2) NOT NULL DEFAULT 0,
			category    TEXT NOT NULL DEFAULT '',
			condition   TEXT NOT NULL DEFAULT '',
			make        TEXT NOT NULL DEFAULT '',
			model       TEXT NOT NULL DEFAULT '',
			year        INT NOT NULL DEFAULT 0,
			mileage     INT NOT NULL DEFAULT 0,
			location    TEXT NOT NULL DEFAULT '',
			images      TEXT[] NOT NULL DEFAULT '{}',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		// The unique pair constraint backs up the service-level duplicate
		// check; two interleaved follow calls cannot both insert.
		`CREATE TABLE IF NOT EXISTS follows (
			follower_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			followee_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (follower_id, followee_id)
		)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id           BIGSERIAL PRIMARY KEY,
			recipient_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			type         TEXT NOT NULL,
			message      TEXT NOT NULL DEFAULT '',
			link         TEXT NOT NULL DEFAULT '',
			is_read      BOOLEAN NOT NULL DEFAULT FALSE,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id          BIGSERIAL PRIMARY KEY,
			owner_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			date        TEXT NOT NULL DEFAULT '',
			time        TEXT NOT NULL DEFAULT '',
			location    TEXT NOT NULL DEFAULT '',
			image_url   TEXT NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS posts (
			id         BIGSERIAL PRIMARY KEY,
			owner_id   BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			content    TEXT NOT NULL,
			image_url  TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS post_likes (
			post_id    BIGINT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
			user_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (post_id, user_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_listings_created_at ON listings (created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_recipient ON notifications (recipient_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_follows_followee ON follows (followee_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
