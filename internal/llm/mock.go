package llm

import (
	"context"
	"sync"
)

// MockClient permite tests sin llamar a un LLM real. Registra cada lista de mensajes recibida.
type MockClient struct {
	Response any
	Err      error

	mu    sync.Mutex
	calls [][]Message
}

func (m *MockClient) Generate(_ context.Context, messages []Message) (Completion, error) {
	m.mu.Lock()
	cp := make([]Message, len(messages))
	copy(cp, messages)
	m.calls = append(m.calls, cp)
	m.mu.Unlock()

	if m.Err != nil {
		return Completion{}, m.Err
	}
	return Completion{Response: m.Response}, nil
}

// Calls devuelve las invocaciones registradas.
func (m *MockClient) Calls() [][]Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
