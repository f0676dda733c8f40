package main

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/credit-engine/internal/news"
	"github.com/pdiddy/credit-engine/internal/secrets"
	"github.com/pdiddy/credit-engine/internal/sentiment"
	"github.com/pdiddy/credit-engine/internal/server"
	"github.com/pdiddy/credit-engine/pkg/types"
)

const (
	defaultNewsTimeout       = 10 * time.Second
	defaultClassifierTimeout = 30 * time.Second
	defaultMaxRetries        = 3
)

func userAgent() string {
	return fmt.Sprintf("credit-engine/%s", version)
}

// setDefaults registers the default value of every config key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	v.SetDefault("server.addr", server.DefaultAddr)
	v.SetDefault("server.request_timeout", server.DefaultRequestTimeout)

	v.SetDefault("news.base_url", news.DefaultBaseURL)
	v.SetDefault("news.api_key", "")
	v.SetDefault("news.max_articles", news.DefaultMaxArticles)
	v.SetDefault("news.timeout", defaultNewsTimeout)

	v.SetDefault("classifier.endpoint", sentiment.DefaultEndpoint)
	v.SetDefault("classifier.api_key", "")
	v.SetDefault("classifier.timeout", defaultClassifierTimeout)
	v.SetDefault("classifier.max_retries", defaultMaxRetries)
}

// configFrom reads the typed configuration out of v. API keys that are not
// configured fall back to the secrets store.
func configFrom(v *viper.Viper, store secrets.Store) types.Config {
	ua := userAgent()
	return types.Config{
		Log: types.LogConfig{
			Level:  v.GetString("log.level"),
			Pretty: v.GetBool("log.pretty"),
		},
		Server: types.ServerConfig{
			Addr:           v.GetString("server.addr"),
			RequestTimeout: v.GetDuration("server.request_timeout"),
		},
		News: types.NewsConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("news.timeout"),
				UserAgent: ua,
			},
			BaseURL:     v.GetString("news.base_url"),
			APIKey:      store.Resolve(v.GetString("news.api_key"), secrets.NewsAPIKey),
			MaxArticles: v.GetInt("news.max_articles"),
		},
		Classifier: types.ClassifierConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("classifier.timeout"),
				UserAgent: ua,
			},
			Endpoint:   v.GetString("classifier.endpoint"),
			APIKey:     store.Resolve(v.GetString("classifier.api_key"), secrets.ClassifierKey),
			MaxRetries: v.GetInt("classifier.max_retries"),
		},
	}
}
