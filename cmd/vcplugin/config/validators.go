package config

import (
	"fmt"
	"net/url"
	"strings"
)

func sanitizeBulletinURL(bulletinURL string) string {
	bulletinURL = strings.TrimSpace(bulletinURL)

	// check if the url has a protocol
	if bulletinURL != "" && !strings.HasPrefix(bulletinURL, "http://") && !strings.HasPrefix(bulletinURL, "https://") {
		bulletinURL = "https://" + bulletinURL
	}

	return bulletinURL
}

func validateConfig(cfg RuntimeConfig) error {
	if cfg.Product == "" {
		return fmt.Errorf("product must not be empty")
	}

	u, err := url.Parse(cfg.BulletinURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("bulletinURL %q is not a valid absolute url", cfg.BulletinURL)
	}

	if cfg.MaxAttempts < 1 {
		return fmt.Errorf("maxAttempts must be at least 1, got %d", cfg.MaxAttempts)
	}

	if cfg.RequestTimeout < 0 || cfg.RetryDelay < 0 || cfg.PolitenessDelay < 0 {
		return fmt.Errorf("timeouts and delays must not be negative")
	}

	if cfg.DataDir == "" || cfg.ContentDir == "" {
		return fmt.Errorf("dataDir and contentDir must not be empty")
	}

	return nil
}
