package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HTTPTransport envia turnos a POST /api/chat.
type HTTPTransport struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

func NewHTTPTransport(url string, timeout time.Duration, logger *zap.Logger) *HTTPTransport {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPTransport{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Send devuelve ErrUnavailable envolviendo la causa ante cualquier fallo de red o status no 2xx.
func (t *HTTPTransport) Send(ctx context.Context, out Outgoing) (Response, error) {
	payload, err := json.Marshal(out)
	if err != nil {
		return Response{}, fmt.Errorf("%w: marshal request: %w", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(payload))
	if err != nil {
		return Response{}, fmt.Errorf("%w: build request: %w", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.Warn("chat request failed", zap.String("url", t.url), zap.Error(err))
		return Response{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		t.logger.Warn("chat request rejected",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return Response{}, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, bytes.TrimSpace(body))
	}

	var r Response
	if err := json.Unmarshal(body, &r); err != nil {
		return Response{}, fmt.Errorf("%w: decode response: %w", ErrUnavailable, err)
	}

	t.logger.Debug("chat turn completed",
		zap.String("chat_id", r.ChatID),
		zap.Duration("latency", time.Since(start)),
	)
	return r, nil
}
