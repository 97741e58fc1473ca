package notification

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

// DefaultResendEndpoint is the Resend send-email API
const DefaultResendEndpoint = "https://api.resend.com/emails"

// Sender delivers rendered emails
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// ResendSender posts emails to the Resend REST API
type ResendSender struct {
	apiKey   string
	from     string
	endpoint string
	client   *http.Client
	renderer *Renderer
	logger   *zap.Logger
}

// ResendOption configures a ResendSender
type ResendOption func(*ResendSender)

// WithEndpoint overrides the API URL
func WithEndpoint(endpoint string) ResendOption {
	return func(s *ResendSender) {
		s.endpoint = endpoint
	}
}

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(client *http.Client) ResendOption {
	return func(s *ResendSender) {
		s.client = client
	}
}

// NewResendSender creates a sender for the API key and from address
func NewResendSender(apiKey, from string, renderer *Renderer, logger *zap.Logger, opts ...ResendOption) *ResendSender {
	s := &ResendSender{
		apiKey:   apiKey,
		from:     from,
		endpoint: DefaultResendEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
		renderer: renderer,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Send renders the message and posts it
func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	subject, html, err := s.renderer.Render(msg)
	if err != nil {
		return err
	}

	body, err := json.Marshal(resendRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("encode email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build resend request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	var out resendResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("resend returned %d: %s", resp.StatusCode, out.Message)
	}

	s.logger.Info("Email sent",
		zap.String("template", msg.Template),
		zap.String("email_id", out.ID),
	)
	return nil
}

// LogSender renders emails and logs them instead of delivering.
// It stands in for Resend when no API key is configured.
type LogSender struct {
	renderer *Renderer
	logger   *zap.Logger
}

// NewLogSender creates a LogSender
func NewLogSender(renderer *Renderer, logger *zap.Logger) *LogSender {
	return &LogSender{renderer: renderer, logger: logger}
}

// Send renders the message so template errors still surface, then logs it
func (s *LogSender) Send(ctx context.Context, msg Message) error {
	subject, html, err := s.renderer.Render(msg)
	if err != nil {
		return err
	}
	s.logger.Info("Email not delivered (no provider configured)",
		zap.String("to", msg.To),
		zap.String("template", msg.Template),
		zap.String("subject", subject),
		zap.Int("html_bytes", len(html)),
	)
	return nil
}

var (
	_ Sender = (*ResendSender)(nil)
	_ Sender = (*LogSender)(nil)
)
