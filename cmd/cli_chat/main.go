package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"outdoor-chat/internal/chatclient"
	"outdoor-chat/internal/config"
)

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadClientConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	transport := chatclient.NewHTTPTransport(cfg.APIURL, cfg.Timeout, logger)
	session := chatclient.NewSession(chatclient.WithConversationID(cfg.ChatID))

	fmt.Println("===== Outdoor Chat =====")
	fmt.Printf("Servidor: %s\n", cfg.APIURL)
	fmt.Println("Escribe 'exit' para salir.")

	for {
		fmt.Print("Tu: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}
		text := strings.TrimSpace(line)
		if isExitCommand(text) {
			fmt.Println("Hasta luego.")
			return
		}

		resp, err := session.Send(ctx, transport, text)
		switch {
		case errors.Is(err, chatclient.ErrEmptyInput):
			continue
		case err != nil:
			logger.Warn("chat turn failed", zap.Error(err))
			fmt.Printf("Bot: %s\n", chatclient.FailureMessage)
		default:
			fmt.Printf("Bot: %s\n", resp.Reply)
		}
	}
}

func isExitCommand(text string) bool {
	switch strings.ToLower(text) {
	case "exit", "quit", "salir":
		return true
	}
	return false
}
