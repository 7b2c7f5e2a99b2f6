package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv string
	Port   string

	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
	CORSAllowedOrigins []string
	RateLimitPerMin    int

	MaxUploadMB       int
	PreviewRows       int
	BarTopCategories  int
	NumericImputation string
	TextLengthMin     int
	TimeSeriesMax     int

	SuggestProvider string
	SuggestTimeout  time.Duration
	GeminiAPIKey    string
	GeminiModel     string
	GeminiBaseURL   string
	OpenAIAPIKey    string
	OpenAIModel     string
	OpenAIBaseURL   string

	UploadArchiveDir string
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		RateLimitPerMin:    getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		MaxUploadMB:        getEnvInt("MAX_UPLOAD_MB", 16),
		PreviewRows:        getEnvInt("PREVIEW_ROWS", 10),
		BarTopCategories:   getEnvInt("BAR_TOP_CATEGORIES", 20),
		NumericImputation:  getEnv("NUMERIC_IMPUTATION", "median"),
		TextLengthMin:      getEnvInt("TEXT_LENGTH_MIN", 10),
		TimeSeriesMax:      getEnvInt("TIMESERIES_MAX_SERIES", 3),
		SuggestProvider:    getEnv("SUGGEST_PROVIDER", "gemini"),
		SuggestTimeout:     time.Second * time.Duration(getEnvInt("SUGGEST_TIMEOUT_SECONDS", 15)),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiBaseURL:      getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:        getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:      getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		UploadArchiveDir:   os.Getenv("UPLOAD_ARCHIVE_DIR"),
	}

	switch cfg.NumericImputation {
	case "median", "mean":
	default:
		return nil, fmt.Errorf("NUMERIC_IMPUTATION must be median or mean, got %q", cfg.NumericImputation)
	}

	switch cfg.SuggestProvider {
	case "gemini", "openai", "off":
	default:
		return nil, fmt.Errorf("SUGGEST_PROVIDER must be gemini, openai or off, got %q", cfg.SuggestProvider)
	}

	if cfg.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", cfg.MaxUploadMB)
	}

	if cfg.PreviewRows < 0 {
		return nil, fmt.Errorf("PREVIEW_ROWS must not be negative, got %d", cfg.PreviewRows)
	}

	return cfg, nil
}

// MaxUploadBytes returns the request body limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
