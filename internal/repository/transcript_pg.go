package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"outdoor-chat/internal/domain"
)

type pgxExecQuerier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PgTranscriptRepository struct {
	pool pgxExecQuerier
}

func NewPgTranscriptRepository(pool *pgxpool.Pool) *PgTranscriptRepository {
	return &PgTranscriptRepository{pool: pool}
}

// EnsureSchema crea la tabla de transcripts si no existe.
func (r *PgTranscriptRepository) EnsureSchema(ctx context.Context) error {
	const query = `
		CREATE TABLE IF NOT EXISTS chat_transcripts (
			id         TEXT PRIMARY KEY,
			history    JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := r.pool.Exec(ctx, query); err != nil {
		return storeErr("create chat_transcripts", err)
	}
	return nil
}

func (r *PgTranscriptRepository) Load(ctx context.Context, conversationID string) (domain.Transcript, error) {
	const query = `
		SELECT history
		FROM chat_transcripts
		WHERE id = $1
	`
	var raw []byte
	err := r.pool.QueryRow(ctx, query, conversationID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Transcript{}, nil
	}
	if err != nil {
		return nil, storeErr("select transcript", err)
	}
	t, err := decodeTranscript(raw)
	if err != nil {
		return nil, storeErr("decode transcript", err)
	}
	return t, nil
}

func (r *PgTranscriptRepository) Save(ctx context.Context, conversationID string, transcript domain.Transcript) error {
	raw, err := encodeTranscript(transcript)
	if err != nil {
		return storeErr("encode transcript", err)
	}
	const query = `
		INSERT INTO chat_transcripts (id, history, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (id) DO UPDATE
		SET history = EXCLUDED.history, updated_at = EXCLUDED.updated_at
	`
	if _, err := r.pool.Exec(ctx, query, conversationID, string(raw)); err != nil {
		return storeErr("upsert transcript", err)
	}
	return nil
}
