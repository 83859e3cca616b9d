package domain

// ConversationRef distingue una conversacion nueva de una existente.
// El identificador es opaco: no se valida formato ni pertenencia.
type ConversationRef struct {
	id string
}

// NewConversation representa el primer contacto; el servidor asigna el identificador.
func NewConversation() ConversationRef {
	return ConversationRef{}
}

// ExistingConversation referencia una conversacion por su identificador, tal cual.
func ExistingConversation(id string) ConversationRef {
	return ConversationRef{id: id}
}

// ConversationRefFrom interpreta el campo opcional del request: vacio equivale a conversacion nueva.
func ConversationRefFrom(raw string) ConversationRef {
	if raw == "" {
		return NewConversation()
	}
	return ExistingConversation(raw)
}

func (r ConversationRef) IsNew() bool {
	return r.id == ""
}

// ID devuelve el identificador; vacio para conversaciones nuevas.
func (r ConversationRef) ID() string {
	return r.id
}

// Resolve devuelve el identificador existente o uno generado con newID.
func (r ConversationRef) Resolve(newID func() string) string {
	if r.IsNew() {
		return newID()
	}
	return r.id
}
