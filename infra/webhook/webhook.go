// Package webhook posts engine notifications to a configured HTTP endpoint.
// Delivery is best effort: a failed post is logged and forgotten so a dead
// receiver never blocks observation assembly.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rbrederode/odt/infra/logger"
)

// Payload is the JSON document posted to the webhook endpoint.
type Payload struct {
	Event     string `json:"event"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
	Origin    string `json:"origin"`
}

// Config holds the webhook endpoint settings.
type Config struct {
	Enabled bool   `koanf:"enabled" json:"enabled"`
	URL     string `koanf:"url" json:"url"`
	Origin  string `koanf:"origin" json:"origin"`
	Timeout int    `koanf:"timeout_seconds" json:"timeout_seconds"`
}

// SetDefaults fills unset fields with sensible values.
func (c *Config) SetDefaults() {
	if c.Origin == "" {
		c.Origin = "odt-engine"
	}
	if c.Timeout <= 0 {
		c.Timeout = 10
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Enabled && c.URL == "" {
		return fmt.Errorf("webhook: enabled without a url")
	}
	return nil
}

// Client posts payloads to a single webhook endpoint.
type Client struct {
	client *http.Client
	log    logger.Logger
	url    string
	origin string
	clock  func() time.Time
}

// New creates a webhook client for the given configuration.
func New(cfg Config) *Client {
	cfg.SetDefaults()
	return &Client{
		client: &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second},
		log:    logger.New("webhook"),
		url:    cfg.URL,
		origin: cfg.Origin,
		clock:  time.Now,
	}
}

// Notify posts an event to the endpoint. Failures are logged, never returned;
// callers fire and forget.
func (c *Client) Notify(ctx context.Context, event, message string) {
	if c.url == "" {
		return
	}
	p := Payload{
		Event:     event,
		Timestamp: c.clock().UTC().Format(time.RFC3339),
		Message:   message,
		Origin:    c.origin,
	}
	body, err := json.Marshal(p)
	if err != nil {
		c.log.Errorf("webhook marshal: %v", err)
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		c.log.Errorf("webhook request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warnf("webhook post failed: %v", err)
		return
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 300 {
		c.log.Warnf("webhook post returned %d", resp.StatusCode)
	}
}
