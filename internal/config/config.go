package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration of the application.
// Values are read from app.env in the given path and can be overridden by environment variables.
type Config struct {
	DBSource           string   `mapstructure:"DB_SOURCE"`
	ServerAddress      string   `mapstructure:"SERVER_ADDRESS"`
	RedisURL           string   `mapstructure:"REDIS_URL"`
	LogLevel           string   `mapstructure:"LOG_LEVEL"`
	LogPretty          bool     `mapstructure:"LOG_PRETTY"`
	GinMode            string   `mapstructure:"GIN_MODE"`
	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	TrustedProxies     []string `mapstructure:"TRUSTED_PROXIES"`

	GeocoderProviderURL  string        `mapstructure:"GEOCODER_PROVIDER_URL"`
	GeocoderUserAgent    string        `mapstructure:"GEOCODER_USER_AGENT"`
	GeocoderCountryCodes string        `mapstructure:"GEOCODER_COUNTRY_CODES"`
	GeocoderTimeout      time.Duration `mapstructure:"GEOCODER_TIMEOUT"`
	GeocoderUseGazetteer bool          `mapstructure:"GEOCODER_USE_GAZETTEER"`
	GeocodeCacheTTL      time.Duration `mapstructure:"GEOCODE_CACHE_TTL"`
	GeocodeMissCacheTTL  time.Duration `mapstructure:"GEOCODE_MISS_CACHE_TTL"`

	RateLimitEnabled  bool          `mapstructure:"RATE_LIMIT_ENABLED"`
	RateLimitRequests int           `mapstructure:"RATE_LIMIT_REQUESTS"`
	RateLimitWindow   time.Duration `mapstructure:"RATE_LIMIT_WINDOW"`

	SearchBoundingBoxPrefilter bool `mapstructure:"SEARCH_BOUNDING_BOX_PREFILTER"`
	SearchReportRankedTotal    bool `mapstructure:"SEARCH_REPORT_RANKED_TOTAL"`
	SearchMaskContactDetails   bool `mapstructure:"SEARCH_MASK_CONTACT_DETAILS"`
}

var defaults = map[string]any{
	"DB_SOURCE":                     "",
	"SERVER_ADDRESS":                "0.0.0.0:8080",
	"REDIS_URL":                     "",
	"LOG_LEVEL":                     "info",
	"LOG_PRETTY":                    false,
	"GIN_MODE":                      "release",
	"CORS_ALLOWED_ORIGINS":          []string{"http://localhost:3000"},
	"TRUSTED_PROXIES":               []string{},
	"GEOCODER_PROVIDER_URL":         "",
	"GEOCODER_USER_AGENT":           "contractor-directory-api/1.0",
	"GEOCODER_COUNTRY_CODES":        "au",
	"GEOCODER_TIMEOUT":              5 * time.Second,
	"GEOCODER_USE_GAZETTEER":        true,
	"GEOCODE_CACHE_TTL":             24 * time.Hour,
	"GEOCODE_MISS_CACHE_TTL":        10 * time.Minute,
	"RATE_LIMIT_ENABLED":            true,
	"RATE_LIMIT_REQUESTS":           60,
	"RATE_LIMIT_WINDOW":             time.Minute,
	"SEARCH_BOUNDING_BOX_PREFILTER": false,
	"SEARCH_REPORT_RANKED_TOTAL":    true,
	"SEARCH_MASK_CONTACT_DETAILS":   false,
}

// LoadConfig reads configuration from file or environment variables.
// A missing app.env is not an error; a missing DB_SOURCE is.
func LoadConfig(path string) (config Config, err error) {
	if err = loadDotEnv(".env"); err != nil {
		return config, err
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("config: read config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err = config.validate(); err != nil {
		return config, err
	}
	return config, nil
}

// loadDotEnv seeds the process environment from filename for local runs. A missing file is skipped.
func loadDotEnv(filename string) error {
	if err := godotenv.Load(filename); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: load %s: %w", filename, err)
	}
	return nil
}

func (c Config) validate() error {
	if c.DBSource == "" {
		return fmt.Errorf("config: DB_SOURCE is required")
	}
	if c.RateLimitEnabled && (c.RateLimitRequests < 1 || c.RateLimitWindow <= 0) {
		return fmt.Errorf("config: RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive, got %d and %s",
			c.RateLimitRequests, c.RateLimitWindow)
	}
	if c.RateLimitEnabled && c.RedisURL == "" {
		return fmt.Errorf("config: REDIS_URL is required when RATE_LIMIT_ENABLED is set")
	}
	return nil
}
