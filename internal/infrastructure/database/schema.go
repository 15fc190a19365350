package database

import (
	"context"
	"fmt"
)

// The schema is small enough to apply idempotently at startup.
const schema = `
CREATE TABLE IF NOT EXISTS articles (
	slug              TEXT PRIMARY KEY,
	title             TEXT NOT NULL,
	author            TEXT NOT NULL,
	created_by        TEXT NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL,
	date_display      TEXT NOT NULL,
	text_html         TEXT NOT NULL,
	short_text_html   TEXT NOT NULL,
	mini_text         TEXT NOT NULL DEFAULT '',
	category          TEXT NOT NULL,
	image_820         TEXT NOT NULL,
	image_440         TEXT NOT NULL,
	image_288         TEXT NOT NULL,
	image_50          TEXT NOT NULL,
	image_desc        TEXT NOT NULL,
	video_path        TEXT,
	audio_path        TEXT,
	has_video         BOOLEAN NOT NULL DEFAULT FALSE,
	has_audio         BOOLEAN NOT NULL DEFAULT FALSE,
	related_slugs     TEXT[] NOT NULL DEFAULT '{}',
	is_main           BOOLEAN NOT NULL DEFAULT FALSE,
	is_exclusive      BOOLEAN NOT NULL DEFAULT FALSE,
	views             BIGINT NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_articles_category_created ON articles (category, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_articles_created_by ON articles (created_by, created_at DESC);

CREATE TABLE IF NOT EXISTS article_validity (
	slug  TEXT PRIMARY KEY,
	valid BOOLEAN NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	username             TEXT PRIMARY KEY,
	author_name          TEXT NOT NULL,
	password_hash        TEXT NOT NULL DEFAULT '',
	role                 TEXT NOT NULL DEFAULT 'editor',
	must_change_password BOOLEAN NOT NULL DEFAULT FALSE
);
`

// EnsureSchema creates the tables on first start.
func (db *PostgresDB) EnsureSchema(ctx context.Context) error {
	if _, err := db.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
