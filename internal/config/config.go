package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"course-service/internal/kv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	StoreDriver string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	RedisURL string
	NatsURL  string

	OtelEndpoint string

	SuggestDelay time.Duration
	SuggestSeed  int64

	WizardIdleTTL       time.Duration
	WizardSweepInterval time.Duration

	AttachmentMaxBytes int64
	DefaultCoursePrice float64
	BodyLimitBytes     int

	RateLimitMax        int
	RateLimitExpiration time.Duration

	S3Endpoint     string
	AWSRegion      string
	S3BucketName   string
	AWSAccessKey   string
	AWSSecretKey   string
	S3UsePathStyle bool
}

// Load reads .env.dev when present and then the process environment.
func Load() *Config {
	if err := godotenv.Load(".env.dev"); err != nil {
		log.Println("No .env.dev file found, reading from environment variables")
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() *Config {
	return &Config{
		Port:        getEnv("APP_PORT", "8003"),
		StoreDriver: getEnv("STORE_DRIVER", kv.DriverMemory),

		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "courses"),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
		NatsURL:  os.Getenv("NATS_URL"),

		OtelEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),

		SuggestDelay: time.Duration(getEnvInt("SUGGEST_DELAY_MS", 1500)) * time.Millisecond,
		SuggestSeed:  int64(getEnvInt("SUGGEST_SEED", 0)),

		WizardIdleTTL:       time.Duration(getEnvInt("WIZARD_IDLE_TTL_MINUTES", 120)) * time.Minute,
		WizardSweepInterval: time.Duration(getEnvInt("WIZARD_SWEEP_INTERVAL_SECONDS", 300)) * time.Second,

		AttachmentMaxBytes: int64(getEnvInt("ATTACHMENT_MAX_BYTES", 5*1024*1024)),
		DefaultCoursePrice: getEnvFloat("DEFAULT_COURSE_PRICE", 49.99),
		BodyLimitBytes:     getEnvInt("BODY_LIMIT_BYTES", 32*1024*1024),

		RateLimitMax:        getEnvInt("RATE_LIMIT_MAX", 100),
		RateLimitExpiration: time.Duration(getEnvInt("RATE_LIMIT_EXPIRATION", 60)) * time.Second,

		S3Endpoint:     os.Getenv("S3_ENDPOINT"),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		S3BucketName:   os.Getenv("S3_BUCKET_NAME"),
		AWSAccessKey:   os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretKey:   os.Getenv("AWS_SECRET_ACCESS_KEY"),
		S3UsePathStyle: os.Getenv("S3_USE_PATH_STYLE") == "true",
	}
}

func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// S3Enabled reports whether video upload URLs can be issued.
func (c *Config) S3Enabled() bool {
	return c.S3BucketName != ""
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid integer for %s (%q), using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Invalid number for %s (%q), using default %v", key, value, defaultValue)
		return defaultValue
	}
	return f
}
