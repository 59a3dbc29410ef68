package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upInit, downInit)
}

func upInit(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE posts (
		id         VARCHAR PRIMARY KEY,
		name       VARCHAR NOT NULL,
		username   VARCHAR NOT NULL,
		avatar     VARCHAR NOT NULL DEFAULT '',
		content    TEXT    NOT NULL,
		time_label VARCHAR NOT NULL DEFAULT '',
		replies    INTEGER NOT NULL DEFAULT 0,
		reposts    INTEGER NOT NULL DEFAULT 0,
		likes      INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`)
	if err != nil {
		return err
	}
	return nil
}

func downInit(tx *sql.Tx) error {
	_, err := tx.Exec(`
	DROP TABLE posts;
	`)
	if err != nil {
		return err
	}
	return nil
}
