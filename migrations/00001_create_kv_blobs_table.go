package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateKVBlobsTable, downCreateKVBlobsTable)
}

func upCreateKVBlobsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE kv_blobs (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateKVBlobsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS kv_blobs;`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
