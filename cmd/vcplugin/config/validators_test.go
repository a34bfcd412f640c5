package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeBulletinURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://www.openoffice.org/security/bulletin.html", "https://www.openoffice.org/security/bulletin.html"},
		{"http://example.com/bulletin.html", "http://example.com/bulletin.html"},
		{"example.com/bulletin.html", "https://example.com/bulletin.html"},
		{"  https://example.com  ", "https://example.com"},
		{"", ""},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, sanitizeBulletinURL(test.input))
	}
}

func validConfig() RuntimeConfig {
	return RuntimeConfig{
		Product:         "OpenOffice",
		BulletinURL:     "https://www.openoffice.org/security/bulletin.html",
		UserAgent:       "Mozilla/5.0 (compatible; OpenOffice-VC-Plugin/1.0)",
		DataDir:         "data",
		ContentDir:      "Content",
		MaxAttempts:     3,
		RequestTimeout:  15 * time.Second,
		RetryDelay:      2 * time.Second,
		PolitenessDelay: 500 * time.Millisecond,
	}
}

func TestValidateConfig(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validateConfig(validConfig()))
	})

	t.Run("empty product", func(t *testing.T) {
		cfg := validConfig()
		cfg.Product = ""
		assert.Error(t, validateConfig(cfg))
	})

	t.Run("relative bulletin url", func(t *testing.T) {
		cfg := validConfig()
		cfg.BulletinURL = "/security/bulletin.html"
		assert.Error(t, validateConfig(cfg))
	})

	t.Run("zero attempts", func(t *testing.T) {
		cfg := validConfig()
		cfg.MaxAttempts = 0
		assert.Error(t, validateConfig(cfg))
	})

	t.Run("negative delay", func(t *testing.T) {
		cfg := validConfig()
		cfg.RetryDelay = -time.Second
		assert.Error(t, validateConfig(cfg))
	})

	t.Run("empty directories", func(t *testing.T) {
		cfg := validConfig()
		cfg.DataDir = ""
		assert.Error(t, validateConfig(cfg))
	})
}
