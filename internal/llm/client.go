package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Message es la entrada al modelo; Role admite ademas "system".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completion expone el campo de respuesta tal como lo devolvio el proveedor.
// Normalmente es un string; cualquier otro tipo lo decide quien consume.
type Completion struct {
	Response any
}

// LLMClient define la interfaz para generar respuestas con un LLM a partir de una lista ordenada de mensajes.
type LLMClient interface {
	Generate(ctx context.Context, messages []Message) (Completion, error)
}

// HTTPClient implementa LLMClient usando la API de OpenAI-compatible.
type HTTPClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPClient construye un cliente HTTP apuntando a la API de chat completions.
func NewHTTPClient(baseURL, apiKey, model string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *HTTPClient) Generate(ctx context.Context, messages []Message) (Completion, error) {
	reqBody := chatRequest{
		Model:    c.model,
		Messages: messages,
	}

	var cr chatResponse
	if err := postJSON(ctx, c.client, c.baseURL+"/chat/completions", c.apiKey, reqBody, &cr, c.logger); err != nil {
		return Completion{}, err
	}

	if cr.Error != nil {
		return Completion{}, fmt.Errorf("llm api error: %s", cr.Error.Message)
	}

	// Sin choices no es un fallo: la respuesta simplemente no trae texto.
	if len(cr.Choices) == 0 {
		c.logger.Warn("llm response without choices", zap.String("model", c.model))
		return Completion{}, nil
	}

	return Completion{Response: cr.Choices[0].Message.Content}, nil
}

// postJSON serializa el body, hace el POST y decodifica la respuesta en out.
func postJSON(ctx context.Context, client *http.Client, url, apiKey string, body, out any, logger *zap.Logger) error {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		logger.Warn("llm error status", zap.Int("status", resp.StatusCode), zap.ByteString("body", respBody))
		return fmt.Errorf("llm http error: status=%d", resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content any    `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}
