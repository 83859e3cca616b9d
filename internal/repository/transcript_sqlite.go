package repository

import (
	"context"
	"database/sql"
	"errors"

	"outdoor-chat/internal/domain"
)

// SQLiteTranscriptRepository es el backend para desarrollo local sin servicios externos.
type SQLiteTranscriptRepository struct {
	db *sql.DB
}

func NewSQLiteTranscriptRepository(db *sql.DB) *SQLiteTranscriptRepository {
	return &SQLiteTranscriptRepository{db: db}
}

func (r *SQLiteTranscriptRepository) EnsureSchema(ctx context.Context) error {
	const query = `
		CREATE TABLE IF NOT EXISTS chat_transcripts (
			id         TEXT PRIMARY KEY,
			history    TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return storeErr("create chat_transcripts", err)
	}
	return nil
}

func (r *SQLiteTranscriptRepository) Load(ctx context.Context, conversationID string) (domain.Transcript, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, `SELECT history FROM chat_transcripts WHERE id = ?`, conversationID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Transcript{}, nil
	}
	if err != nil {
		return nil, storeErr("select transcript", err)
	}
	t, err := decodeTranscript([]byte(raw))
	if err != nil {
		return nil, storeErr("decode transcript", err)
	}
	return t, nil
}

func (r *SQLiteTranscriptRepository) Save(ctx context.Context, conversationID string, transcript domain.Transcript) error {
	raw, err := encodeTranscript(transcript)
	if err != nil {
		return storeErr("encode transcript", err)
	}
	const query = `
		INSERT INTO chat_transcripts (id, history, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET history = excluded.history, updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, conversationID, string(raw)); err != nil {
		return storeErr("upsert transcript", err)
	}
	return nil
}
