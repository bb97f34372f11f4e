package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/foodbao/admin-api/internal/core/domain"
)

const whatsappTimeout = 15 * time.Second

// WhatsAppConfig holds the messaging-gateway settings. The gateway is a
// simple GET-style HTTP API taking phone, text, and an API key.
type WhatsAppConfig struct {
	BaseURL string
	APIKey  string
}

// WhatsAppSender delivers messages through the configured gateway.
type WhatsAppSender struct {
	cfg  WhatsAppConfig
	http *http.Client
	log  zerolog.Logger
}

func NewWhatsAppSender(cfg WhatsAppConfig, log zerolog.Logger) *WhatsAppSender {
	return &WhatsAppSender{cfg: cfg, http: &http.Client{Timeout: whatsappTimeout}, log: log}
}

func (s *WhatsAppSender) SendWhatsApp(ctx context.Context, phone, message string) error {
	if s.cfg.BaseURL == "" {
		return fmt.Errorf("whatsapp: gateway not configured")
	}

	q := url.Values{}
	q.Set("phone", phone)
	q.Set("text", message)
	if s.cfg.APIKey != "" {
		q.Set("apikey", s.cfg.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("whatsapp: build request: %w", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return &domain.UpstreamError{StatusCode: 0, Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.UpstreamError{StatusCode: resp.StatusCode, Message: "gateway rejected message"}
	}

	s.log.Info().Str("phone", phone).Msg("whatsapp message sent")
	return nil
}
