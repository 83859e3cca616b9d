package chatclient

import (
	"context"
	"errors"
	"strings"
	"sync"

	"outdoor-chat/internal/domain"
)

// FailureMessage es la burbuja que ve el usuario cuando el turno no llega a buen puerto.
const FailureMessage = "Sorry, something went wrong while contacting the AI. Please try again."

var (
	ErrEmptyInput  = errors.New("empty input")
	ErrBusy        = errors.New("a message is already being sent")
	ErrUnavailable = errors.New("assistant unavailable")
)

type State int

const (
	Idle State = iota
	Sending
)

func (s State) String() string {
	if s == Sending {
		return "sending"
	}
	return "idle"
}

// Outgoing es lo que se transmite al servidor en un turno.
type Outgoing struct {
	ChatID      string `json:"chatId,omitempty"`
	UserMessage string `json:"userMessage"`
}

// Response es la respuesta exitosa del servidor.
type Response struct {
	ChatID  string            `json:"chatId"`
	Reply   string            `json:"reply"`
	History domain.Transcript `json:"history"`
}

// Transport envia un turno y devuelve la respuesta o un error unico de indisponibilidad.
type Transport interface {
	Send(ctx context.Context, out Outgoing) (Response, error)
}

type Option func(*Session)

// WithServerReconciliation hace que cada respuesta exitosa reemplace la vista local con el history
// devuelto por el servidor.
func WithServerReconciliation() Option {
	return func(s *Session) {
		s.reconcile = true
	}
}

// WithConversationID arranca la sesion sobre una conversacion existente.
func WithConversationID(id string) Option {
	return func(s *Session) {
		s.conversationID = id
	}
}

// Session es la vista local de una conversacion. confirmed refleja lo ultimo que se sabe del servidor;
// pending contiene el turno optimista en vuelo.
type Session struct {
	mu             sync.Mutex
	conversationID string
	confirmed      domain.Transcript
	pending        domain.Transcript
	input          string
	state          State
	reconcile      bool
}

func NewSession(opts ...Option) *Session {
	s := &Session{confirmed: domain.Transcript{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit valida el texto, lo agrega de forma optimista y pasa a Sending.
func (s *Session) Submit(text string) (Outgoing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Sending {
		return Outgoing{}, ErrBusy
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Outgoing{}, ErrEmptyInput
	}

	s.pending = s.pending.Append(domain.UserMessage(trimmed))
	s.input = ""
	s.state = Sending

	return Outgoing{ChatID: s.conversationID, UserMessage: trimmed}, nil
}

// Complete aplica una respuesta exitosa y vuelve a Idle.
func (s *Session) Complete(resp Response) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Sending {
		return
	}
	if resp.ChatID != "" && resp.ChatID != s.conversationID {
		s.conversationID = resp.ChatID
	}
	if s.reconcile && len(resp.History) > 0 {
		s.confirmed = resp.History.Clone()
	} else {
		s.confirmed = s.confirmed.Append(s.pending...).Append(domain.AssistantMessage(resp.Reply))
	}
	s.pending = nil
	s.state = Idle
}

// Fail confirma el turno del usuario, agrega una unica burbuja de error y vuelve a Idle.
func (s *Session) Fail(_ error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Sending {
		return
	}
	s.confirmed = s.confirmed.Append(s.pending...).Append(domain.AssistantMessage(FailureMessage))
	s.pending = nil
	s.state = Idle
}

// Send ejecuta un turno completo de forma sincronica.
func (s *Session) Send(ctx context.Context, transport Transport, text string) (Response, error) {
	out, err := s.Submit(text)
	if err != nil {
		return Response{}, err
	}
	resp, err := transport.Send(ctx, out)
	if err != nil {
		s.Fail(err)
		return Response{}, err
	}
	s.Complete(resp)
	return resp, nil
}

// Messages devuelve confirmed + pending, lo que la UI debe mostrar.
func (s *Session) Messages() domain.Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.confirmed.Append(s.pending...)
}

func (s *Session) ConversationID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversationID
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Busy() bool {
	return s.State() == Sending
}

// SetInput actualiza el buffer de entrada. Se ignora mientras hay un envio en curso.
func (s *Session) SetInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Sending {
		return
	}
	s.input = text
}

func (s *Session) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}
