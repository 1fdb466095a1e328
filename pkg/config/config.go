package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"

	defaultJWTSecret = "supersecretjwtkey"
)

// Config holds every setting the server and the admin CLI read from the environment
type Config struct {
	Port                    string        `validate:"required,numeric"`
	Env                     string        `validate:"required,oneof=development production test"`
	PostgresConnStr         string        `validate:"required"`
	MongoURI                string        `validate:"required"`
	MongoDatabase           string        `validate:"required"`
	FirebaseCredentialsPath string        `validate:"required"`
	FirebaseStorageBucket   string        `validate:"required"`
	JWTSecret               string        `validate:"required,min=16"`
	SessionTTL              time.Duration `validate:"required"`
	UploadMaxBytes          int64         `validate:"required,min=1"`
	CORSAllowedOrigins      []string
	ImageRemotePatterns     []string
	Logger                  LoggerSettings
}

// Load reads the configuration, loading a .env file first when one exists
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", EnvDevelopment),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "promptsave"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		FirebaseStorageBucket:   getEnv("FIREBASE_STORAGE_BUCKET", ""),
		JWTSecret:               getEnv("JWT_SECRET", defaultJWTSecret),
		SessionTTL:              time.Duration(getEnvInt("SESSION_TTL_HOURS", 72)) * time.Hour,
		UploadMaxBytes:          int64(getEnvInt("UPLOAD_MAX_BYTES", 50<<20)),
		CORSAllowedOrigins:      getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		ImageRemotePatterns: getEnvList("IMAGE_REMOTE_PATTERNS", []string{
			"storage.googleapis.com/",
			"firebasestorage.googleapis.com/v0/b/",
			"*.googleusercontent.com/",
		}),
		Logger: LoggerSettings{
			LogLevel:   getEnv("LOG_LEVEL", LogLevelInfo),
			LogType:    getEnv("LOG_TYPE", LogTypeConsole),
			FilePath:   getEnv("LOG_FILE_PATH", ""),
			MaxSize:    getEnvInt("LOG_MAX_SIZE_MB", 10),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
			MaxAge:     getEnvInt("LOG_MAX_AGE_DAYS", 28),
		},
	}
}

// Validate checks required settings and the nested logger settings
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validation failed for Config: %w", err)
	}

	if c.Env == EnvProduction && c.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}

	return c.Logger.Validate()
}

// IsProduction reports whether the server runs with ENV=production
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Ignoring invalid integer %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
