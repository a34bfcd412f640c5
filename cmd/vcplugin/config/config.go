package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// RuntimeConfig is the single immutable configuration value of a run. It is
// parsed once from flags, environment (prefix VCPLUGIN_) and an optional
// config file, then passed into each component at construction - there is
// no other process-wide state.
type RuntimeConfig struct {
	Product     string `json:"product" mapstructure:"product"`
	BulletinURL string `json:"bulletinURL" mapstructure:"bulletinURL"`
	UserAgent   string `json:"userAgent" mapstructure:"userAgent"`

	DataDir    string `json:"dataDir" mapstructure:"dataDir"`
	ContentDir string `json:"contentDir" mapstructure:"contentDir"`

	MaxAttempts     int           `json:"maxAttempts" mapstructure:"maxAttempts"`
	RequestTimeout  time.Duration `json:"requestTimeout" mapstructure:"requestTimeout"`
	RetryDelay      time.Duration `json:"retryDelay" mapstructure:"retryDelay"`
	PolitenessDelay time.Duration `json:"politenessDelay" mapstructure:"politenessDelay"`
}

// ParseConfig unmarshals and sanity-checks the viper state the root command
// has bound flags and environment variables into.
func ParseConfig() (RuntimeConfig, error) {
	var cfg RuntimeConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return RuntimeConfig{}, errors.Wrap(err, "could not parse configuration")
	}

	cfg.BulletinURL = sanitizeBulletinURL(cfg.BulletinURL)

	if err := validateConfig(cfg); err != nil {
		return RuntimeConfig{}, err
	}
	return cfg, nil
}
