package service

import (
	"outdoor-chat/internal/domain"
	"outdoor-chat/internal/llm"
)

// AssembleMessages arma la entrada exacta del modelo: la instruccion de persona como mensaje de sistema
// seguida del transcript en orden cronologico. No tiene efectos secundarios y no modifica el transcript.
func AssembleMessages(instruction string, transcript domain.Transcript) []llm.Message {
	out := make([]llm.Message, 0, len(transcript)+1)
	out = append(out, llm.Message{Role: string(domain.RoleSystem), Content: instruction})
	for _, m := range transcript {
		out = append(out, llm.Message{Role: string(m.Role), Content: m.Content})
	}
	return out
}
