package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/carebook/pkg/metrics"
)

// Sender is the SMS transport. Exactly one attempt per call, no retries.
type Sender interface {
	Send(ctx context.Context, to string, body string) error
	ProviderID() string
}

// Message is the record returned for a confirmed send.
type Message struct {
	ID       string    `json:"id"`
	To       string    `json:"to"`
	Body     string    `json:"body"`
	Provider string    `json:"provider"`
	SentAt   time.Time `json:"sentAt"`
}

// Service wraps a Sender with the best-effort contract: callers get a
// message record or nil, never an error. A nil result means "notification
// not confirmed" and there is no further recourse.
type Service struct {
	sender  Sender
	log     *zap.Logger
	metrics *metrics.Collector
}

func NewService(sender Sender, m *metrics.Collector, log *zap.Logger) *Service {
	return &Service{sender: sender, log: log, metrics: m}
}

func (s *Service) SendText(ctx context.Context, to, body string) *Message {
	if err := s.sender.Send(ctx, to, body); err != nil {
		s.log.Error("sms send failed",
			zap.Error(err),
			zap.String("provider", s.sender.ProviderID()),
			zap.String("to", to),
		)
		if s.metrics != nil {
			s.metrics.NotificationFailuresTotal.Inc()
		}
		return nil
	}

	if s.metrics != nil {
		s.metrics.NotificationsSentTotal.Inc()
	}
	return &Message{
		ID:       uuid.NewString(),
		To:       to,
		Body:     body,
		Provider: s.sender.ProviderID(),
		SentAt:   time.Now().UTC(),
	}
}

// WebhookSender posts {to, body} to an SMS gateway webhook.
type WebhookSender struct {
	url   string
	token string
	http  *http.Client
}

func NewWebhookSender(url string, token string) *WebhookSender {
	return &WebhookSender{
		url:   strings.TrimSpace(url),
		token: strings.TrimSpace(token),
		http: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (s *WebhookSender) ProviderID() string {
	return "sms-webhook"
}

func (s *WebhookSender) Send(ctx context.Context, to string, body string) error {
	if s.url == "" {
		return errors.New("sms webhook url not configured")
	}
	payload := map[string]string{
		"to":   to,
		"body": body,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.New("sms webhook returned non-2xx")
	}
	return nil
}

// NoopSender is used when no SMS gateway is configured.
type NoopSender struct{}

func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

func (s *NoopSender) ProviderID() string {
	return "sms-noop"
}

func (s *NoopSender) Send(_ context.Context, _ string, _ string) error {
	return nil
}
