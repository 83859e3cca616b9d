package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ArkConfig describe las credenciales y el modelo de Volcengine Ark.
type ArkConfig struct {
	APIKey    string
	AccessKey string
	SecretKey string
	Model     string
	BaseURL   string
	Region    string
}

// Enabled indica si hay credenciales y modelo suficientes.
func (c ArkConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// EinoClient adapta cualquier modelo de eino a LLMClient.
type EinoClient struct {
	chatModel model.BaseChatModel
}

func NewEinoClient(chatModel model.BaseChatModel) *EinoClient {
	return &EinoClient{chatModel: chatModel}
}

// NewArkClient crea el modelo de Ark y lo envuelve en un EinoClient.
func NewArkClient(ctx context.Context, cfg ArkConfig) (*EinoClient, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("ark credentials or model missing")
	}
	chatModel, err := ark.NewChatModel(ctx, &ark.ChatModelConfig{
		BaseURL:   cfg.BaseURL,
		Region:    cfg.Region,
		APIKey:    cfg.APIKey,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Model:     cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("create ark chat model: %w", err)
	}
	return NewEinoClient(chatModel), nil
}

func (c *EinoClient) Generate(ctx context.Context, messages []Message) (Completion, error) {
	out, err := c.chatModel.Generate(ctx, toSchemaMessages(messages))
	if err != nil {
		return Completion{}, fmt.Errorf("eino generate: %w", err)
	}
	if out == nil {
		return Completion{}, nil
	}
	return Completion{Response: out.Content}, nil
}

func toSchemaMessages(messages []Message) []*schema.Message {
	out := make([]*schema.Message, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case "system":
			out = append(out, schema.SystemMessage(m.Content))
		case "assistant":
			out = append(out, schema.AssistantMessage(m.Content, nil))
		default:
			out = append(out, schema.UserMessage(m.Content))
		}
	}
	return out
}
