package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"outdoor-chat/internal/domain"
)

// ErrStoreUnavailable envuelve cualquier fallo del almacenamiento subyacente.
var ErrStoreUnavailable = errors.New("transcript store unavailable")

// TranscriptRepository mapea un identificador de conversacion a su transcript serializado.
// Load no falla por un identificador desconocido: devuelve un transcript vacio.
// Save sobrescribe el valor completo; un lector nunca ve una escritura parcial.
type TranscriptRepository interface {
	Load(ctx context.Context, conversationID string) (domain.Transcript, error)
	Save(ctx context.Context, conversationID string, transcript domain.Transcript) error
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}

// encodeTranscript produce el formato persistido: un arreglo JSON de {role, content}.
func encodeTranscript(t domain.Transcript) ([]byte, error) {
	if t == nil {
		t = domain.Transcript{}
	}
	return json.Marshal(t)
}

func decodeTranscript(raw []byte) (domain.Transcript, error) {
	if len(raw) == 0 {
		return domain.Transcript{}, nil
	}
	var t domain.Transcript
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, err
	}
	if t == nil {
		t = domain.Transcript{}
	}
	return t, nil
}
