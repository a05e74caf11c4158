package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Reference store backends
const (
	StorePostgREST = "postgrest"
	StorePostgres  = "postgres"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"8000"`
	Environment string `envconfig:"ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL"`
	CORSOrigins string `envconfig:"CORS_ORIGINS" default:"*"`

	// Provider
	FaceProvider     string        `envconfig:"FACE_PROVIDER" default:"insightface"`
	InsightFaceURL   string        `envconfig:"INSIGHTFACE_URL" default:"http://localhost:8001"`
	DeepFaceURL      string        `envconfig:"DEEPFACE_URL" default:"http://localhost:5005"`
	DeepFaceModel    string        `envconfig:"DEEPFACE_MODEL" default:"ArcFace"`
	DeepFaceDetector string        `envconfig:"DEEPFACE_DETECTOR" default:"retinaface"`
	ProviderTimeout  time.Duration `envconfig:"PROVIDER_TIMEOUT" default:"30s"`

	// Reference store
	ReferenceStore   string        `envconfig:"REFERENCE_STORE" default:"postgrest"`
	SupabaseURL      string        `envconfig:"SUPABASE_URL"`
	SupabaseKey      string        `envconfig:"SUPABASE_KEY"`
	ReferenceTable   string        `envconfig:"REFERENCE_TABLE" default:"missing_persons"`
	ReferenceTimeout time.Duration `envconfig:"REFERENCE_TIMEOUT" default:"30s"`
	DatabaseURL      string        `envconfig:"DATABASE_URL"`

	// Matching
	MatchThreshold float64 `envconfig:"MATCH_THRESHOLD" default:"0.35"`
	EmbeddingDim   int     `envconfig:"EMBEDDING_DIM" default:"512"`

	// Uploads
	MaxUploadBytes int `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"`
	MaxImageSide   int `envconfig:"MAX_IMAGE_SIDE" default:"1920"`

	// Rate limiting (0 disables)
	RateLimitMax    int           `envconfig:"RATE_LIMIT_MAX" default:"60"`
	RateLimitWindow time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (*Config, error) {
	_ = LoadDotEnv()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// LoadDotEnv applies ./.env without overriding variables already set
func LoadDotEnv() error {
	return godotenv.Load()
}

// Validate checks the settings that depend on each other
func (c *Config) Validate() error {
	switch c.ReferenceStore {
	case StorePostgREST:
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			return errors.New("SUPABASE_URL and SUPABASE_KEY are required for the postgrest reference store")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres reference store")
		}
	default:
		return fmt.Errorf("unknown reference store: %s (supported: %s, %s)", c.ReferenceStore, StorePostgREST, StorePostgres)
	}

	if c.MatchThreshold <= 0 || c.MatchThreshold > 2 {
		return fmt.Errorf("MATCH_THRESHOLD must be in (0, 2], got %v", c.MatchThreshold)
	}
	if c.EmbeddingDim <= 0 {
		return fmt.Errorf("EMBEDDING_DIM must be positive, got %d", c.EmbeddingDim)
	}
	if c.MaxImageSide <= 0 {
		return fmt.Errorf("MAX_IMAGE_SIDE must be positive, got %d", c.MaxImageSide)
	}
	if c.LogLevel != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
			return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", c.LogLevel)
		}
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
