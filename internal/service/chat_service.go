package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"outdoor-chat/internal/domain"
	"outdoor-chat/internal/llm"
	"outdoor-chat/internal/metrics"
	"outdoor-chat/internal/repository"
)

var (
	ErrInvalidInput    = errors.New("missing userMessage")
	ErrMissingBindings = errors.New("chat bindings not configured")
	ErrModelInvocation = errors.New("model invocation failed")
)

// TurnRequest es un turno entrante. ChatID vacio significa conversacion nueva.
type TurnRequest struct {
	ChatID      string
	UserMessage string
}

// TurnResult devuelve el identificador resuelto, la respuesta y el transcript completo actualizado.
type TurnResult struct {
	ChatID  string
	Reply   string
	History domain.Transcript
}

// ChatService coordina un turno: carga el transcript, agrega el mensaje del usuario, invoca al LLM,
// agrega la respuesta y persiste una sola vez al final.
//
// No hay bloqueo por conversacion: dos turnos concurrentes sobre el mismo id leen el mismo estado
// y gana el ultimo Save.
type ChatService struct {
	llmClient   llm.LLMClient
	transcripts repository.TranscriptRepository
	instruction string
	newID       func() string
	logger      *zap.Logger
}

func NewChatService(llmClient llm.LLMClient, transcripts repository.TranscriptRepository, instruction string, logger *zap.Logger) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{
		llmClient:   llmClient,
		transcripts: transcripts,
		instruction: instruction,
		newID:       uuid.NewString,
		logger:      logger,
	}
}

// HandleTurn procesa un turno completo. Si falla la carga, el modelo o el guardado, el transcript
// persistido queda exactamente como estaba: nunca termina en un mensaje de usuario sin respuesta.
func (s *ChatService) HandleTurn(ctx context.Context, req TurnRequest) (TurnResult, error) {
	if s == nil || s.llmClient == nil || s.transcripts == nil {
		metrics.TurnsTotal.WithLabelValues("missing_bindings").Inc()
		return TurnResult{}, ErrMissingBindings
	}

	text, err := domain.ParseNonEmptyText(req.UserMessage)
	if err != nil {
		metrics.TurnsTotal.WithLabelValues("invalid_input").Inc()
		return TurnResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	ref := domain.ConversationRefFrom(req.ChatID)
	chatID := ref.Resolve(s.newID)
	start := time.Now()

	history, err := s.load(ctx, chatID)
	if err != nil {
		metrics.TurnsTotal.WithLabelValues("store_error").Inc()
		return TurnResult{}, fmt.Errorf("load transcript: %w", err)
	}

	history = history.Append(domain.UserMessage(text.String()))

	reply, err := s.generate(ctx, chatID, AssembleMessages(s.instruction, history))
	if err != nil {
		metrics.TurnsTotal.WithLabelValues("model_error").Inc()
		return TurnResult{}, err
	}

	history = history.Append(domain.AssistantMessage(reply))

	if err := s.save(ctx, chatID, history); err != nil {
		metrics.TurnsTotal.WithLabelValues("store_error").Inc()
		return TurnResult{}, fmt.Errorf("save transcript: %w", err)
	}

	metrics.TurnsTotal.WithLabelValues("ok").Inc()
	s.logger.Info("chat turn",
		zap.String("chat_id", chatID),
		zap.Bool("new_conversation", ref.IsNew()),
		zap.Int("history_len", len(history)),
		zap.Duration("latency", time.Since(start)),
	)

	return TurnResult{
		ChatID:  chatID,
		Reply:   reply,
		History: history,
	}, nil
}

func (s *ChatService) load(ctx context.Context, chatID string) (domain.Transcript, error) {
	start := time.Now()
	defer func() {
		metrics.StoreLatency.WithLabelValues("load").Observe(time.Since(start).Seconds())
	}()
	history, err := s.transcripts.Load(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if history == nil {
		history = domain.Transcript{}
	}
	return history, nil
}

func (s *ChatService) save(ctx context.Context, chatID string, history domain.Transcript) error {
	start := time.Now()
	defer func() {
		metrics.StoreLatency.WithLabelValues("save").Observe(time.Since(start).Seconds())
	}()
	return s.transcripts.Save(ctx, chatID, history)
}

// generate invoca al modelo. Una respuesta que no es texto se degrada a string vacio en lugar de
// abortar el turno; solo un error del proveedor lo aborta.
func (s *ChatService) generate(ctx context.Context, chatID string, messages []llm.Message) (string, error) {
	start := time.Now()
	completion, err := s.llmClient.Generate(ctx, messages)
	metrics.ModelLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		s.logger.Warn("llm generate failed", zap.String("chat_id", chatID), zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrModelInvocation, err)
	}

	reply, ok := completion.Response.(string)
	if !ok {
		metrics.EmptyReplies.Inc()
		s.logger.Warn("llm reply is not text, storing empty reply",
			zap.String("chat_id", chatID),
			zap.String("type", fmt.Sprintf("%T", completion.Response)),
		)
		return "", nil
	}
	return reply, nil
}
