package domain

import (
	"errors"
	"strings"
)

// Role identifica al autor de un turno.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	// RoleSystem solo existe en la entrada al modelo; nunca se persiste.
	RoleSystem Role = "system"
)

var ErrEmptyText = errors.New("text is empty")

// Message es un turno inmutable de la conversacion.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// Transcript es la secuencia cronologica de turnos de una conversacion (el mas antiguo primero).
type Transcript []Message

// Append devuelve un transcript nuevo con los mensajes agregados al final.
// Nunca escribe sobre el arreglo del receptor, asi que otras copias no observan el cambio.
func (t Transcript) Append(msgs ...Message) Transcript {
	out := make(Transcript, 0, len(t)+len(msgs))
	out = append(out, t...)
	return append(out, msgs...)
}

// Last devuelve el ultimo turno, si existe.
func (t Transcript) Last() (Message, bool) {
	if len(t) == 0 {
		return Message{}, false
	}
	return t[len(t)-1], true
}

// Clone copia el transcript.
func (t Transcript) Clone() Transcript {
	if t == nil {
		return Transcript{}
	}
	out := make(Transcript, len(t))
	copy(out, t)
	return out
}

// NonEmptyText es texto de usuario ya validado. Conserva el valor original sin recortar.
type NonEmptyText struct {
	value string
}

// ParseNonEmptyText valida que el texto tenga contenido despues de quitar espacios.
func ParseNonEmptyText(raw string) (NonEmptyText, error) {
	if strings.TrimSpace(raw) == "" {
		return NonEmptyText{}, ErrEmptyText
	}
	return NonEmptyText{value: raw}, nil
}

func (t NonEmptyText) String() string {
	return t.value
}
