package types

import "time"

// HTTPConfig holds shared HTTP settings used by adapters that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "credit-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// NewsConfig holds settings for the news search adapter.
type NewsConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the news search API root (default "https://newsapi.org").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey authenticates against the news search API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxArticles is the maximum number of article texts handed to the
	// classifier (default 5).
	MaxArticles int `json:"max_articles" yaml:"max_articles"`
}

// ClassifierConfig holds settings for the sentiment inference adapter.
type ClassifierConfig struct {
	HTTPConfig `yaml:",inline"`

	// Endpoint is the full URL of the inference endpoint.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// APIKey is sent as a bearer token when set.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts on HTTP 429 (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ServerConfig holds settings for the HTTP transport.
type ServerConfig struct {
	// Addr is the listen address (default ":8000").
	Addr string `json:"addr" yaml:"addr"`

	// RequestTimeout bounds the handling time of a single request (default 60s).
	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level"`

	// Pretty enables human-readable console output instead of JSON lines.
	Pretty bool `json:"pretty" yaml:"pretty"`
}

// Config groups all configuration sections.
type Config struct {
	Log        LogConfig        `json:"log" yaml:"log"`
	Server     ServerConfig     `json:"server" yaml:"server"`
	News       NewsConfig       `json:"news" yaml:"news"`
	Classifier ClassifierConfig `json:"classifier" yaml:"classifier"`
}
