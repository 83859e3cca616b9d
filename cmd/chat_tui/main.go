package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"outdoor-chat/internal/chatclient"
	"outdoor-chat/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadClientConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// stdout pertenece a la TUI.
	logger := zap.NewNop()

	transport := chatclient.NewHTTPTransport(cfg.APIURL, cfg.Timeout, logger)
	session := chatclient.NewSession(chatclient.WithConversationID(cfg.ChatID))

	p := tea.NewProgram(newModel(context.Background(), session, transport), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
