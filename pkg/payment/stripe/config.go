package stripe

import (
	"errors"
	"strings"
)

const defaultBaseURL = "https://api.stripe.com"

// Config holds the Stripe API client configuration
type Config struct {
	SecretKey     string
	WebhookSecret string
	BaseURL       string
	SuccessURL    string
	CancelURL     string
}

// Validate checks that required configuration is present
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("secret key is required")
	}
	if !strings.HasPrefix(c.SecretKey, "sk_") && !strings.HasPrefix(c.SecretKey, "rk_") {
		return errors.New("secret key must be a server-side key")
	}
	if c.SuccessURL == "" {
		return errors.New("success URL is required")
	}
	if c.CancelURL == "" {
		return errors.New("cancel URL is required")
	}
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	return nil
}
