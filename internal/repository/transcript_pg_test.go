package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"outdoor-chat/internal/domain"
)

type fakeRow struct {
	raw []byte
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*[]byte)) = r.raw
	return nil
}

type mockPgx struct {
	row      fakeRow
	execErr  error
	lastSQL  string
	lastArgs []any
}

func (m *mockPgx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	m.lastSQL = sql
	m.lastArgs = args
	return pgconn.CommandTag{}, m.execErr
}

func (m *mockPgx) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	m.lastSQL = sql
	m.lastArgs = args
	return m.row
}

func TestPgTranscriptRepositoryLoad(t *testing.T) {
	db := &mockPgx{row: fakeRow{err: pgx.ErrNoRows}}
	repo := &PgTranscriptRepository{pool: db}

	got, err := repo.Load(context.Background(), "c1")
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty transcript for missing row, got %+v, %v", got, err)
	}
	if len(db.lastArgs) != 1 || db.lastArgs[0] != "c1" {
		t.Fatalf("unexpected args %+v", db.lastArgs)
	}

	db.row = fakeRow{raw: []byte(`[{"role":"user","content":"a"}]`)}
	got, err = repo.Load(context.Background(), "c1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 1 || got[0] != domain.UserMessage("a") {
		t.Fatalf("unexpected transcript %+v", got)
	}

	db.row = fakeRow{err: errors.New("conn closed")}
	if _, err := repo.Load(context.Background(), "c1"); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestPgTranscriptRepositorySave(t *testing.T) {
	db := &mockPgx{}
	repo := &PgTranscriptRepository{pool: db}

	if err := repo.Save(context.Background(), "c1", domain.Transcript{domain.UserMessage("a"), domain.AssistantMessage("b")}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(db.lastSQL, "ON CONFLICT (id) DO UPDATE") {
		t.Fatalf("expected upsert, got %s", db.lastSQL)
	}
	if db.lastArgs[0] != "c1" || db.lastArgs[1] != `[{"role":"user","content":"a"},{"role":"assistant","content":"b"}]` {
		t.Fatalf("unexpected args %+v", db.lastArgs)
	}

	db.execErr = errors.New("timeout")
	if err := repo.Save(context.Background(), "c1", nil); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if err := repo.EnsureSchema(context.Background()); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable from EnsureSchema, got %v", err)
	}
}
