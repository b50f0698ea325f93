package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix for CLI and server settings
const envPrefix = "FINPLAN"

// Default settings
const (
	DefaultCurrency = "INR"
	DefaultAddr     = ":8080"
	DefaultModel    = "gemini-2.5-flash"
	DefaultLogLevel = "info"
)

// Settings are process-level options, separate from the household profile
type Settings struct {
	Currency string `mapstructure:"currency"`
	Addr     string `mapstructure:"addr"`
	Model    string `mapstructure:"model"`
	LogLevel string `mapstructure:"log_level"`
	APIKey   string `mapstructure:"api_key"`
}

// NewViper builds a viper instance with the FINPLAN_ env prefix and defaults
// applied, ready for flag binding.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("currency", DefaultCurrency)
	v.SetDefault("addr", DefaultAddr)
	v.SetDefault("model", DefaultModel)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("api_key", "")
	// The Gemini key is commonly exported without our prefix
	_ = v.BindEnv("api_key", envPrefix+"_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY")
	return v
}

// LoadEnvFiles loads .env style files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadEnvFiles(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}
	return nil
}

// LoadSettings unmarshals and validates the settings held by v
func LoadSettings(v *viper.Viper) (*Settings, error) {
	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	s.Currency = strings.ToUpper(strings.TrimSpace(s.Currency))
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}
	return s, nil
}

// Validate checks the currency code and log level
func (s *Settings) Validate() error {
	if money.GetCurrency(s.Currency) == nil {
		return fmt.Errorf("unknown currency code %q", s.Currency)
	}
	if _, err := logrus.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if s.Addr == "" {
		return fmt.Errorf("listen address is required")
	}
	return nil
}

// Level returns the parsed log level, defaulting to info
func (s *Settings) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(s.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
