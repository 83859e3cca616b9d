package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

const (
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreMemory   = "memory"

	ProviderOpenAI    = "openai"
	ProviderWorkersAI = "workers-ai"
	ProviderArk       = "ark"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	ExposeStack bool   `env:"EXPOSE_STACK" envDefault:"false"`
	PersonaFile string `env:"PERSONA_FILE"`

	StoreBackend  string `env:"STORE_BACKEND" envDefault:"redis"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	DatabaseURL   string `env:"DATABASE_URL"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"chat.db"`

	LLMProvider string        `env:"LLM_PROVIDER" envDefault:"openai"`
	LLMAPIKey   string        `env:"LLM_API_KEY"`
	LLMBaseURL  string        `env:"LLM_BASE_URL"`
	LLMModel    string        `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	LLMTimeout  time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`

	CloudflareAccountID string `env:"CF_ACCOUNT_ID"`

	ArkAPIKey    string `env:"ARK_API_KEY"`
	ArkAccessKey string `env:"ARK_ACCESS_KEY"`
	ArkSecretKey string `env:"ARK_SECRET_KEY"`
	ArkBaseURL   string `env:"ARK_BASE_URL" envDefault:"https://ark.cn-beijing.volces.com/api/v3"`
	ArkRegion    string `env:"ARK_REGION" envDefault:"cn-beijing"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate revisa solo valores enumerados; la falta de credenciales se reporta por request.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreRedis, StorePostgres, StoreSQLite, StoreMemory:
	default:
		return fmt.Errorf("invalid STORE_BACKEND %q", c.StoreBackend)
	}
	switch c.LLMProvider {
	case ProviderOpenAI, ProviderWorkersAI, ProviderArk:
	default:
		return fmt.Errorf("invalid LLM_PROVIDER %q", c.LLMProvider)
	}
	return nil
}

// ClientConfig es la configuración de los clientes de terminal.
type ClientConfig struct {
	APIURL  string        `env:"CHAT_API_URL" envDefault:"http://localhost:8080/api/chat"`
	ChatID  string        `env:"CHAT_ID"`
	Timeout time.Duration `env:"CHAT_TIMEOUT" envDefault:"90s"`
}

func LoadClientConfig() (*ClientConfig, error) {
	var cfg ClientConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
