package shared

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"place_sentiment/internal/sentiment"
)

var ErrMissingAPIKey = errors.New("PLACES_API_KEY is not set")

type Config struct {
	AppEnv        string
	LogLevel      string
	HTTPAddr      string
	MetricsAddr   string
	PlacesBase    string
	PlacesKey     string
	Language      string
	Timeout       time.Duration
	MaxReviews    int
	Policy        sentiment.Policy
	ErrorsAsEmpty bool
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	GuardTTL      time.Duration
	RateLimitRPS  float64
	RateBurst     int
	TrustProxy    bool
	BatchWorkers  int
}

// Load builds the Config from defaults, an optional .env file in the working
// directory, and the process environment (highest precedence). A missing
// API key is a startup error.
func Load() (Config, error) {
	return LoadFrom(viper.New(), ".env")
}

// LoadFrom is Load with an explicit viper instance and env file path, so
// callers can bind flags first.
func LoadFrom(v *viper.Viper, envFile string) (Config, error) {
	v.SetDefault("APP_ENV", "prod")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("METRICS_ADDR", "")
	v.SetDefault("PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place")
	v.SetDefault("PLACES_LANGUAGE", "pt-BR")
	v.SetDefault("UPSTREAM_TIMEOUT_SECONDS", 10)
	v.SetDefault("MAX_REVIEWS", 8)
	v.SetDefault("SENTIMENT_POLICY", string(sentiment.DefaultPolicy))
	v.SetDefault("UPSTREAM_ERRORS_AS_EMPTY", false)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("GUARD_TTL_SECONDS", 30)
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("TRUST_PROXY", false)
	v.SetDefault("BATCH_WORKERS", 4)

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			// SetConfigFile bypasses the search, so a missing file is a plain fs error
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				log.Warn().Err(err).Str("file", envFile).Msg("failed to read env file")
			}
		}
	}
	v.AutomaticEnv()
	_ = v.BindEnv("legacy_api_key", "api_key")

	key := v.GetString("PLACES_API_KEY")
	if key == "" {
		// older dotenv files name the credential api_key
		key = v.GetString("api_key")
	}
	if key == "" {
		key = v.GetString("legacy_api_key")
	}
	if key == "" {
		return Config{}, ErrMissingAPIKey
	}

	policy, err := sentiment.ParsePolicy(v.GetString("SENTIMENT_POLICY"))
	if err != nil {
		return Config{}, fmt.Errorf("SENTIMENT_POLICY: %w", err)
	}

	c := Config{
		AppEnv:        v.GetString("APP_ENV"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		HTTPAddr:      v.GetString("HTTP_ADDR"),
		MetricsAddr:   v.GetString("METRICS_ADDR"),
		PlacesBase:    v.GetString("PLACES_BASE_URL"),
		PlacesKey:     key,
		Language:      v.GetString("PLACES_LANGUAGE"),
		Timeout:       time.Duration(v.GetInt("UPSTREAM_TIMEOUT_SECONDS")) * time.Second,
		MaxReviews:    v.GetInt("MAX_REVIEWS"),
		Policy:        policy,
		ErrorsAsEmpty: v.GetBool("UPSTREAM_ERRORS_AS_EMPTY"),
		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisDB:       v.GetInt("REDIS_DB"),
		RedisPass:     v.GetString("REDIS_PASSWORD"),
		GuardTTL:      time.Duration(v.GetInt("GUARD_TTL_SECONDS")) * time.Second,
		RateLimitRPS:  v.GetFloat64("RATE_LIMIT_RPS"),
		RateBurst:     v.GetInt("RATE_LIMIT_BURST"),
		TrustProxy:    v.GetBool("TRUST_PROXY"),
		BatchWorkers:  v.GetInt("BATCH_WORKERS"),
	}
	if c.MaxReviews < 0 {
		return Config{}, fmt.Errorf("MAX_REVIEWS must be >= 0, got %d", c.MaxReviews)
	}
	if c.Timeout <= 0 {
		log.Warn().Msg("UPSTREAM_TIMEOUT_SECONDS <= 0, using 10s")
		c.Timeout = 10 * time.Second
	}
	if c.GuardTTL <= 0 {
		log.Warn().Msg("GUARD_TTL_SECONDS <= 0, using 30s")
		c.GuardTTL = 30 * time.Second
	}
	if c.BatchWorkers <= 0 {
		c.BatchWorkers = 1
	}
	return c, nil
}
