package config_test

import (
	"testing"
	"time"

	"course-service/internal/config"

	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "STORE_DRIVER", "NATS_URL", "SUGGEST_DELAY_MS", "DEFAULT_COURSE_PRICE", "S3_BUCKET_NAME", "WIZARD_IDLE_TTL_MINUTES"} {
		t.Setenv(key, "")
	}

	cfg := config.FromEnv()
	require.Equal(t, "8003", cfg.Port)
	require.Equal(t, "memory", cfg.StoreDriver)
	require.Empty(t, cfg.NatsURL)
	require.Equal(t, 1500*time.Millisecond, cfg.SuggestDelay)
	require.Equal(t, 49.99, cfg.DefaultCoursePrice)
	require.Equal(t, int64(5*1024*1024), cfg.AttachmentMaxBytes)
	require.Equal(t, 2*time.Hour, cfg.WizardIdleTTL)
	require.False(t, cfg.S3Enabled())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_PASSWORD", "p")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_NAME", "c")
	t.Setenv("RATE_LIMIT_EXPIRATION", "30")
	t.Setenv("SUGGEST_DELAY_MS", "not-a-number")

	cfg := config.FromEnv()
	require.Equal(t, "postgres", cfg.StoreDriver)
	require.Equal(t, "postgres://u:p@db:5433/c?sslmode=disable", cfg.DatabaseURL())
	require.Equal(t, 30*time.Second, cfg.RateLimitExpiration)
	require.Equal(t, 1500*time.Millisecond, cfg.SuggestDelay)
}
