package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvVars = []string{
	"API_PORT", "MEDIA_PORT", "MEDIA_BASE_URL", "ENVIRONMENT",
	"MYSQL_HOST", "MYSQL_PORT", "MYSQL_USERNAME", "MYSQL_PASSWORD", "MYSQL_DATABASE",
	"MYSQL_MAX_OPEN_CONNS", "MYSQL_MAX_IDLE_CONNS",
	"MONGO_HOST", "MONGO_PORT", "MONGO_USERNAME", "MONGO_PASSWORD", "MONGO_DATABASE",
	"UPLOAD_MAX_IMAGES", "UPLOAD_MIN_VIDEO_BYTES", "UPLOAD_MAX_VIDEO_BYTES",
	"UPLOAD_MAX_VIDEO_SECONDS", "UPLOAD_IMAGE_TARGET_BYTES", "UPLOAD_IMAGE_MAX_EDGE",
	"UPLOAD_MAX_ATTEMPTS",
}

func clearTestEnvVars() {
	for _, key := range configEnvVars {
		os.Unsetenv(key)
	}
}

func TestLoadConfig_DefaultBehavior(t *testing.T) {
	clearTestEnvVars()
	defer clearTestEnvVars()

	cfg := LoadConfig()
	require.NotNil(t, cfg)

	// database defaults
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "3306", cfg.Database.Port)
	assert.Equal(t, "guestbook", cfg.Database.Username)
	assert.Equal(t, "guestbook", cfg.Database.DatabaseName)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)

	// mongo defaults
	assert.Equal(t, "localhost", cfg.MongoDB.Host)
	assert.Equal(t, "27017", cfg.MongoDB.Port)
	assert.Equal(t, "guestbook", cfg.MongoDB.Database)

	// server defaults
	assert.Equal(t, "7001", cfg.Server.APIPort)
	assert.Equal(t, "8080", cfg.Server.MediaPort)
	assert.Equal(t, "development", cfg.Server.Environment)

	// upload limits
	assert.Equal(t, 10, cfg.Upload.MaxImages)
	assert.Equal(t, int64(100<<10), cfg.Upload.MinVideoBytes)
	assert.Equal(t, int64(50<<20), cfg.Upload.MaxVideoBytes)
	assert.Equal(t, 60, cfg.Upload.MaxVideoSeconds)
	assert.Equal(t, 2048, cfg.Upload.ImageMaxEdge)
	assert.Equal(t, 3, cfg.Upload.MaxAttempts)

	// MEDIA_BASE_URL is derived from the media port
	assert.NotEmpty(t, cfg.Server.MediaBaseURL)
	assert.Contains(t, cfg.Server.MediaBaseURL, "/media")
}

func TestLoadConfig_WithEnvironmentOverrides(t *testing.T) {
	clearTestEnvVars()
	defer clearTestEnvVars()

	overrides := map[string]string{
		"API_PORT":                 "9001",
		"MYSQL_HOST":               "test-db-host",
		"MYSQL_PORT":               "3307",
		"MYSQL_USERNAME":           "test-user",
		"MYSQL_PASSWORD":           "test-pass",
		"MYSQL_DATABASE":           "test-db",
		"MONGO_HOST":               "test-mongo",
		"MONGO_PORT":               "27018",
		"MEDIA_BASE_URL":           "https://cdn.example.com/media",
		"UPLOAD_MAX_IMAGES":        "5",
		"UPLOAD_MAX_VIDEO_SECONDS": "30",
	}
	for k, v := range overrides {
		os.Setenv(k, v)
	}

	cfg := LoadConfig()

	assert.Equal(t, "9001", cfg.Server.APIPort)
	assert.Equal(t, "test-db-host", cfg.Database.Host)
	assert.Equal(t, "3307", cfg.Database.Port)
	assert.Equal(t, "test-user", cfg.Database.Username)
	assert.Equal(t, "test-pass", cfg.Database.Password)
	assert.Equal(t, "test-db", cfg.Database.DatabaseName)
	assert.Equal(t, "test-mongo", cfg.MongoDB.Host)
	assert.Equal(t, "27018", cfg.MongoDB.Port)
	assert.Equal(t, "https://cdn.example.com/media", cfg.Server.MediaBaseURL)
	assert.Equal(t, 5, cfg.Upload.MaxImages)
	assert.Equal(t, 30, cfg.Upload.MaxVideoSeconds)
}

func TestLoadConfig_InvalidNumbersFallBack(t *testing.T) {
	clearTestEnvVars()
	defer clearTestEnvVars()

	os.Setenv("UPLOAD_MAX_IMAGES", "not-a-number")
	os.Setenv("MYSQL_MAX_OPEN_CONNS", "")

	cfg := LoadConfig()
	assert.Equal(t, 10, cfg.Upload.MaxImages)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
}

func TestDSN(t *testing.T) {
	clearTestEnvVars()
	defer clearTestEnvVars()

	cfg := LoadConfig()
	dsn := cfg.DSN()
	assert.Contains(t, dsn, "tcp(localhost:3306)")
	assert.Contains(t, dsn, "guestbook")
	assert.Contains(t, dsn, "parseTime=True")
}

func TestMongoURI(t *testing.T) {
	clearTestEnvVars()
	defer clearTestEnvVars()

	cfg := LoadConfig()
	uri := cfg.MongoURI()
	assert.Contains(t, uri, "mongodb://")
	assert.Contains(t, uri, "localhost:27017")

	cfg.MongoDB.Username = ""
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI())
}
