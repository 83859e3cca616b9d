package repository

import (
	"context"
	"sync"

	"outdoor-chat/internal/domain"
)

type memoryTranscriptRepository struct {
	mu    sync.Mutex
	items map[string]domain.Transcript
}

// NewMemoryTranscriptRepository guarda transcripts en memoria del proceso. Se pierden al reiniciar.
func NewMemoryTranscriptRepository() TranscriptRepository {
	return &memoryTranscriptRepository{
		items: make(map[string]domain.Transcript),
	}
}

func (s *memoryTranscriptRepository) Load(_ context.Context, conversationID string) (domain.Transcript, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.items[conversationID]
	if !ok {
		return domain.Transcript{}, nil
	}
	return t.Clone(), nil
}

func (s *memoryTranscriptRepository) Save(_ context.Context, conversationID string, transcript domain.Transcript) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[conversationID] = transcript.Clone()
	return nil
}
