package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Tables are created in dependency order; every statement is idempotent.
var schemas = map[string][]string{
	"mysql": {
		`CREATE TABLE IF NOT EXISTS venues (
			id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			name          VARCHAR(255) NOT NULL,
			city          VARCHAR(120) NOT NULL DEFAULT '',
			state         VARCHAR(120) NOT NULL DEFAULT '',
			address       VARCHAR(120) NOT NULL DEFAULT '',
			phone         VARCHAR(120) NOT NULL DEFAULT '',
			image_link    VARCHAR(500) NOT NULL DEFAULT '',
			facebook_link VARCHAR(120) NOT NULL DEFAULT '',
			genres        VARCHAR(255) NOT NULL DEFAULT ''
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS artists (
			id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			name          VARCHAR(255) NOT NULL,
			city          VARCHAR(120) NOT NULL DEFAULT '',
			state         VARCHAR(120) NOT NULL DEFAULT '',
			phone         VARCHAR(120) NOT NULL DEFAULT '',
			image_link    VARCHAR(500) NOT NULL DEFAULT '',
			facebook_link VARCHAR(120) NOT NULL DEFAULT '',
			genres        VARCHAR(255) NOT NULL DEFAULT ''
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS shows (
			id        BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			artist_id BIGINT UNSIGNED NOT NULL,
			venue_id  BIGINT UNSIGNED NOT NULL,
			show_time DATETIME NOT NULL,
			CONSTRAINT fk_shows_artist FOREIGN KEY (artist_id) REFERENCES artists(id),
			CONSTRAINT fk_shows_venue  FOREIGN KEY (venue_id)  REFERENCES venues(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS categories (
			id   BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			type VARCHAR(120) NOT NULL
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS questions (
			id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			question    TEXT NOT NULL,
			answer      TEXT NOT NULL,
			category_id BIGINT UNSIGNED NOT NULL,
			difficulty  INT NOT NULL,
			CONSTRAINT fk_questions_category FOREIGN KEY (category_id) REFERENCES categories(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS drinks (
			id     BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			title  VARCHAR(80) NOT NULL,
			recipe TEXT NOT NULL,
			UNIQUE KEY uq_drinks_title (title)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	},
	"postgres": {
		`CREATE TABLE IF NOT EXISTS venues (
			id            BIGSERIAL PRIMARY KEY,
			name          VARCHAR(255) NOT NULL,
			city          VARCHAR(120) NOT NULL DEFAULT '',
			state         VARCHAR(120) NOT NULL DEFAULT '',
			address       VARCHAR(120) NOT NULL DEFAULT '',
			phone         VARCHAR(120) NOT NULL DEFAULT '',
			image_link    VARCHAR(500) NOT NULL DEFAULT '',
			facebook_link VARCHAR(120) NOT NULL DEFAULT '',
			genres        VARCHAR(255) NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS artists (
			id            BIGSERIAL PRIMARY KEY,
			name          VARCHAR(255) NOT NULL,
			city          VARCHAR(120) NOT NULL DEFAULT '',
			state         VARCHAR(120) NOT NULL DEFAULT '',
			phone         VARCHAR(120) NOT NULL DEFAULT '',
			image_link    VARCHAR(500) NOT NULL DEFAULT '',
			facebook_link VARCHAR(120) NOT NULL DEFAULT '',
			genres        VARCHAR(255) NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS shows (
			id        BIGSERIAL PRIMARY KEY,
			artist_id BIGINT NOT NULL REFERENCES artists(id),
			venue_id  BIGINT NOT NULL REFERENCES venues(id),
			show_time TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id   BIGSERIAL PRIMARY KEY,
			type VARCHAR(120) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS questions (
			id          BIGSERIAL PRIMARY KEY,
			question    TEXT NOT NULL,
			answer      TEXT NOT NULL,
			category_id BIGINT NOT NULL REFERENCES categories(id),
			difficulty  INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS drinks (
			id     BIGSERIAL PRIMARY KEY,
			title  VARCHAR(80) NOT NULL UNIQUE,
			recipe TEXT NOT NULL
		)`,
	},
	"sqlite": {
		`CREATE TABLE IF NOT EXISTS venues (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			name          TEXT NOT NULL,
			city          TEXT NOT NULL DEFAULT '',
			state         TEXT NOT NULL DEFAULT '',
			address       TEXT NOT NULL DEFAULT '',
			phone         TEXT NOT NULL DEFAULT '',
			image_link    TEXT NOT NULL DEFAULT '',
			facebook_link TEXT NOT NULL DEFAULT '',
			genres        TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS artists (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			name          TEXT NOT NULL,
			city          TEXT NOT NULL DEFAULT '',
			state         TEXT NOT NULL DEFAULT '',
			phone         TEXT NOT NULL DEFAULT '',
			image_link    TEXT NOT NULL DEFAULT '',
			facebook_link TEXT NOT NULL DEFAULT '',
			genres        TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS shows (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			artist_id INTEGER NOT NULL REFERENCES artists(id),
			venue_id  INTEGER NOT NULL REFERENCES venues(id),
			show_time DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id   INTEGER PRIMARY KEY AUTOINCREMENT,
			type TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS questions (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			question    TEXT NOT NULL,
			answer      TEXT NOT NULL,
			category_id INTEGER NOT NULL REFERENCES categories(id),
			difficulty  INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS drinks (
			id     INTEGER PRIMARY KEY AUTOINCREMENT,
			title  TEXT NOT NULL UNIQUE,
			recipe TEXT NOT NULL
		)`,
	},
}

// DefaultCategories are the trivia categories inserted by Seed.
var DefaultCategories = []string{"Science", "Art", "Geography", "History", "Entertainment", "Sports"}

// Migrate creates every table for the pool's dialect.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	stmts, ok := schemas[db.DriverName()]
	if !ok {
		return fmt.Errorf("no schema for driver %q", db.DriverName())
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Seed inserts DefaultCategories when the categories table is empty.  It
// returns the number of rows inserted.
func Seed(ctx context.Context, db *sqlx.DB) (int, error) {
	var n int
	if err := db.GetContext(ctx, &n, `SELECT COUNT(*) FROM categories`); err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()
	q := tx.Rebind(`INSERT INTO categories (type) VALUES (?)`)
	for _, c := range DefaultCategories {
		if _, err := tx.ExecContext(ctx, q, c); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(DefaultCategories), nil
}
