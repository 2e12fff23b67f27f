package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	aws_pkg "github.com/saikrishna7004/campus-360-backend/pkg/aws"
)

// appSecretsName is the Secrets Manager entry holding MONGO_URL and JWT_SECRET.
const appSecretsName = "campus360/APP_SECRETS"

// Event backends for order events.
const (
	EventsNone  = "none"
	EventsKafka = "kafka"
	EventsSNS   = "sns"
)

// Config holds all configuration for the campus backend.
type Config struct {
	Port     string
	Env      string
	MongoURL string
	MongoDB  string

	JWTSecret      string
	TokenTTL       time.Duration
	RequestTimeout time.Duration

	LenientTransitions bool
	EnforceTotal       bool
	AnalyticsLocation  *time.Location

	AllowedOrigins     []string
	RateLimitPerMinute int
	RateLimitBurst     int

	EventsBackend    string
	KafkaBrokers     []string
	KafkaOrderTopic  string
	OrderSNSTopicARN string

	UploadsBucket        string
	UploadsPublicBaseURL string
	PresignExpiry        time.Duration

	CloudWatchEnabled   bool
	CloudWatchNamespace string
	CloudWatchLogGroup  string
	UseSecrets          bool
}

// LoadConfig reads configuration from environment variables with optional
// Secrets Manager override.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		Env:                  getEnv("ENV", "development"),
		MongoURL:             os.Getenv("MONGO_URL"),
		MongoDB:              getEnv("MONGO_DB", "campus360"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		AllowedOrigins:       splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		EventsBackend:        strings.ToLower(getEnv("EVENTS_BACKEND", EventsNone)),
		KafkaBrokers:         splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaOrderTopic:      getEnv("KAFKA_ORDER_TOPIC", "order-events"),
		OrderSNSTopicARN:     os.Getenv("ORDER_SNS_TOPIC_ARN"),
		UploadsBucket:        os.Getenv("UPLOADS_BUCKET"),
		UploadsPublicBaseURL: os.Getenv("UPLOADS_PUBLIC_BASE_URL"),
		CloudWatchEnabled:    os.Getenv("CLOUDWATCH_ENABLED") == "true",
		CloudWatchNamespace:  getEnv("CLOUDWATCH_NAMESPACE", "Campus360"),
		CloudWatchLogGroup:   getEnv("CLOUDWATCH_LOG_GROUP", "/campus360/backend"),
		UseSecrets:           os.Getenv("AWS_USE_SECRETS") == "true",
	}

	var err error
	if cfg.TokenTTL, err = durationEnv("TOKEN_TTL", 240*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = durationEnv("REQUEST_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.LenientTransitions, err = boolEnv("ORDER_LENIENT_TRANSITIONS", false); err != nil {
		return nil, err
	}
	if cfg.EnforceTotal, err = boolEnv("ORDER_ENFORCE_TOTAL", false); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerMinute, err = intEnv("RATE_LIMIT_PER_MINUTE", 100); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = intEnv("RATE_LIMIT_BURST", 50); err != nil {
		return nil, err
	}
	expirySeconds, err := intEnv("PRESIGN_EXPIRY_SECONDS", 900)
	if err != nil {
		return nil, err
	}
	cfg.PresignExpiry = time.Duration(expirySeconds) * time.Second

	tz := getEnv("ANALYTICS_TIMEZONE", "UTC")
	if cfg.AnalyticsLocation, err = time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("invalid ANALYTICS_TIMEZONE %q: %w", tz, err)
	}

	// Override credentials from Secrets Manager when running on AWS
	if cfg.UseSecrets {
		if awsCfg, err := aws_pkg.LoadAWSConfig(context.Background()); err == nil {
			sm := aws_pkg.NewSecretsClient(awsCfg)
			if m, err := sm.GetSecretMap(context.Background(), appSecretsName); err == nil {
				applySecretOverrides(cfg, m)
			}
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applySecretOverrides replaces env values with non-empty secret values.
func applySecretOverrides(cfg *Config, secrets map[string]string) {
	if v := secrets["MONGO_URL"]; v != "" {
		cfg.MongoURL = v
	}
	if v := secrets["JWT_SECRET"]; v != "" {
		cfg.JWTSecret = v
	}
}

func (c *Config) validate() error {
	if c.MongoURL == "" {
		return fmt.Errorf("MONGO_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.EventsBackend {
	case EventsNone:
	case EventsKafka:
		if len(c.KafkaBrokers) == 0 {
			return fmt.Errorf("KAFKA_BROKERS is required when EVENTS_BACKEND=kafka")
		}
	case EventsSNS:
		if c.OrderSNSTopicARN == "" {
			return fmt.Errorf("ORDER_SNS_TOPIC_ARN is required when EVENTS_BACKEND=sns")
		}
	default:
		return fmt.Errorf("unknown EVENTS_BACKEND %q", c.EventsBackend)
	}
	return nil
}

// EventTopic is the Kafka topic or SNS topic ARN order events go to.
func (c *Config) EventTopic() string {
	switch c.EventsBackend {
	case EventsKafka:
		return c.KafkaOrderTopic
	case EventsSNS:
		return c.OrderSNSTopicARN
	}
	return ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
