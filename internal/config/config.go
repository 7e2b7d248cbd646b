package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig

	// Record store (MySQL) configuration
	Database DatabaseConfig

	// Object store (MongoDB GridFS) configuration
	MongoDB MongoConfig

	// Guest submission limits
	Upload UploadConfig
}

// ServerConfig holds the listen ports for both binaries plus the public
// base URL uploaded media resolves to.
type ServerConfig struct {
	APIPort      string
	MediaPort    string
	MediaBaseURL string
	Environment  string // development, staging, production
}

type DatabaseConfig struct {
	Host         string
	Port         string
	Username     string
	Password     string
	DatabaseName string
	MaxOpenConns int
	MaxIdleConns int
}

type MongoConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

// UploadConfig bounds what a single guest submission may contain.
type UploadConfig struct {
	MaxImages        int   // staged images per submission
	MinVideoBytes    int64 // anything smaller is a misfired camera capture
	MaxVideoBytes    int64
	MaxVideoSeconds  int
	ImageTargetBytes int64 // compression target
	ImageMaxEdge     int   // longest edge after compression
	MaxAttempts      int   // upload attempts before giving up
}

func LoadConfig() *Config {
	// .env is optional, real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using system env variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			APIPort:     getEnv("API_PORT", "7001"),
			MediaPort:   getEnv("MEDIA_PORT", "8080"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:         getEnv("MYSQL_HOST", "localhost"),
			Port:         getEnv("MYSQL_PORT", "3306"),
			Username:     getEnv("MYSQL_USERNAME", "guestbook"),
			Password:     getEnv("MYSQL_PASSWORD", "guestbook123"),
			DatabaseName: getEnv("MYSQL_DATABASE", "guestbook"),
			MaxOpenConns: getEnvInt("MYSQL_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvInt("MYSQL_MAX_IDLE_CONNS", 5),
		},
		MongoDB: MongoConfig{
			Host:     getEnv("MONGO_HOST", "localhost"),
			Port:     getEnv("MONGO_PORT", "27017"),
			Username: getEnv("MONGO_USERNAME", "admin"),
			Password: getEnv("MONGO_PASSWORD", "admin123"),
			Database: getEnv("MONGO_DATABASE", "guestbook"),
		},
		Upload: UploadConfig{
			MaxImages:        getEnvInt("UPLOAD_MAX_IMAGES", 10),
			MinVideoBytes:    getEnvInt64("UPLOAD_MIN_VIDEO_BYTES", 100<<10),
			MaxVideoBytes:    getEnvInt64("UPLOAD_MAX_VIDEO_BYTES", 50<<20),
			MaxVideoSeconds:  getEnvInt("UPLOAD_MAX_VIDEO_SECONDS", 60),
			ImageTargetBytes: getEnvInt64("UPLOAD_IMAGE_TARGET_BYTES", 1258291), // ~1.2 MB
			ImageMaxEdge:     getEnvInt("UPLOAD_IMAGE_MAX_EDGE", 2048),
			MaxAttempts:      getEnvInt("UPLOAD_MAX_ATTEMPTS", 3),
		},
	}

	// media URL defaults to the local media server unless overridden
	cfg.Server.MediaBaseURL = getEnv("MEDIA_BASE_URL",
		fmt.Sprintf("http://localhost:%s/media", cfg.Server.MediaPort))

	return cfg
}

// DSN builds the MySQL connection string from the database section.
func (cfg *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DatabaseName,
	)
}

// MongoURI builds the MongoDB connection string for the object store.
func (cfg *Config) MongoURI() string {
	if cfg.MongoDB.Username == "" {
		return fmt.Sprintf("mongodb://%s:%s", cfg.MongoDB.Host, cfg.MongoDB.Port)
	}
	return fmt.Sprintf("mongodb://%s:%s@%s:%s",
		cfg.MongoDB.Username,
		cfg.MongoDB.Password,
		cfg.MongoDB.Host,
		cfg.MongoDB.Port,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("invalid value for %s, using default %d", key, fallback)
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
		log.Printf("invalid value for %s, using default %d", key, fallback)
	}
	return fallback
}
