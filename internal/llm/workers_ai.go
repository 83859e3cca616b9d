package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultWorkersAIBaseURL = "https://api.cloudflare.com/client/v4"

// WorkersAIClient invoca modelos de Cloudflare Workers AI via REST.
// La respuesta del endpoint "ai/run" trae el texto en result.response.
type WorkersAIClient struct {
	baseURL   string
	accountID string
	apiToken  string
	model     string
	client    *http.Client
	logger    *zap.Logger
}

func NewWorkersAIClient(baseURL, accountID, apiToken, model string, timeout time.Duration, logger *zap.Logger) (*WorkersAIClient, error) {
	if strings.TrimSpace(accountID) == "" {
		return nil, fmt.Errorf("workers ai account id is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("workers ai model is required")
	}
	if baseURL == "" {
		baseURL = defaultWorkersAIBaseURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkersAIClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		accountID: accountID,
		apiToken:  apiToken,
		model:     strings.TrimLeft(model, "/"),
		client:    &http.Client{Timeout: timeout},
		logger:    logger,
	}, nil
}

func (c *WorkersAIClient) Generate(ctx context.Context, messages []Message) (Completion, error) {
	url := fmt.Sprintf("%s/accounts/%s/ai/run/%s", c.baseURL, c.accountID, c.model)

	var wr workersAIResponse
	if err := postJSON(ctx, c.client, url, c.apiToken, workersAIRequest{Messages: messages}, &wr, c.logger); err != nil {
		return Completion{}, err
	}

	if !wr.Success && len(wr.Errors) > 0 {
		return Completion{}, fmt.Errorf("workers ai error: %s", wr.Errors[0].Message)
	}
	if wr.Result == nil {
		return Completion{}, nil
	}
	return Completion{Response: wr.Result["response"]}, nil
}

type workersAIRequest struct {
	Messages []Message `json:"messages"`
}

type workersAIResponse struct {
	Result  map[string]any `json:"result"`
	Success bool           `json:"success"`
	Errors  []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}
