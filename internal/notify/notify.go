package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/simskyeconomy/simsky-core/internal/config"
)

// Message is the submit contract of the notification sink. Delivery is
// best-effort; callers log and drop any error.
type Message struct {
	RecipientEmail string `json:"recipient_email"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// WebhookSender posts messages to an outbound delivery webhook.
type WebhookSender struct {
	url    string
	client *http.Client
	log    *zap.Logger
}

func NewWebhookSender(config *config.NotifyConfig, log *zap.Logger) *WebhookSender {
	return &WebhookSender{
		url:    config.WebhookURL,
		client: &http.Client{Timeout: config.Timeout},
		log:    log,
	}
}

func (s *WebhookSender) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("notification webhook returned status %d", resp.StatusCode)
	}

	s.log.Debug("notification delivered",
		zap.String("recipient", msg.RecipientEmail),
		zap.String("subject", msg.Subject))
	return nil
}
