// Package webhook handles webhook configuration and HTTP dispatch of
// confirmed bookings.
package webhook

import (
	"os"

	"github.com/marcus/bookmodal/internal/config"
)

const (
	envURL    = "BOOKMODAL_WEBHOOK_URL"
	envSecret = "BOOKMODAL_WEBHOOK_SECRET"
)

// GetURL returns the webhook URL for the project.
// Priority: BOOKMODAL_WEBHOOK_URL env > project-local config.
func GetURL(baseDir string) string {
	if v := os.Getenv(envURL); v != "" {
		return v
	}
	cfg, err := config.Load(baseDir)
	if err == nil && cfg.Webhook != nil {
		return cfg.Webhook.URL
	}
	return ""
}

// GetSecret returns the webhook HMAC secret.
// Priority: BOOKMODAL_WEBHOOK_SECRET env > project-local config.
func GetSecret(baseDir string) string {
	if v := os.Getenv(envSecret); v != "" {
		return v
	}
	cfg, err := config.Load(baseDir)
	if err == nil && cfg.Webhook != nil {
		return cfg.Webhook.Secret
	}
	return ""
}

// IsEnabled returns true if a webhook URL is configured.
func IsEnabled(baseDir string) bool {
	return GetURL(baseDir) != ""
}

// Source reports where the effective URL comes from: "env", "project", or
// "" when no webhook is configured.
func Source(baseDir string) string {
	if os.Getenv(envURL) != "" {
		return "env"
	}
	if GetURL(baseDir) != "" {
		return "project"
	}
	return ""
}
