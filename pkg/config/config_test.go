package config

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:                    "8080",
		Env:                     EnvDevelopment,
		PostgresConnStr:         "sqlite::memory:",
		MongoURI:                "mongodb://localhost:27017",
		MongoDatabase:           "promptsave",
		FirebaseCredentialsPath: "./firebase_credentials.json",
		FirebaseStorageBucket:   "promptsave.appspot.com",
		JWTSecret:               "a-sufficiently-long-secret",
		SessionTTL:              time.Hour,
		UploadMaxBytes:          1 << 20,
		Logger: LoggerSettings{
			LogLevel: LogLevelInfo,
			LogType:  LogTypeConsole,
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"non numeric port", func(c *Config) { c.Port = "http" }, true},
		{"unknown env", func(c *Config) { c.Env = "staging" }, true},
		{"missing mongo uri", func(c *Config) { c.MongoURI = "" }, true},
		{"short secret", func(c *Config) { c.JWTSecret = "short" }, true},
		{"default secret in production", func(c *Config) {
			c.Env = EnvProduction
			c.JWTSecret = defaultJWTSecret
		}, true},
		{"default secret in development", func(c *Config) { c.JWTSecret = defaultJWTSecret }, false},
		{"invalid logger", func(c *Config) { c.Logger.LogType = "syslog" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "MONGO_DATABASE", "SESSION_TTL_HOURS", "UPLOAD_MAX_BYTES", "CORS_ALLOWED_ORIGINS", "IMAGE_REMOTE_PATTERNS", "LOG_LEVEL", "LOG_TYPE"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "promptsave", cfg.MongoDatabase)
	assert.Equal(t, 72*time.Hour, cfg.SessionTTL)
	assert.Equal(t, int64(50<<20), cfg.UploadMaxBytes)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Contains(t, cfg.ImageRemotePatterns, "storage.googleapis.com/")
	assert.Equal(t, LogTypeConsole, cfg.Logger.LogType)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", EnvProduction)
	t.Setenv("SESSION_TTL_HOURS", "12")
	t.Setenv("UPLOAD_MAX_BYTES", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, int64(50<<20), cfg.UploadMaxBytes)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestOpenRelational_SQLite(t *testing.T) {
	db, err := OpenRelational("sqlite::memory:", false)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", db.Dialector.Name())

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func TestInitDB_RequiresConnectionStrings(t *testing.T) {
	cfg := validConfig()
	cfg.PostgresConnStr = ""
	log := &recordingLogger{}
	_, err := InitDB(cfg, log)
	assert.Error(t, err)

	cfg = validConfig()
	cfg.MongoURI = ""
	_, err = InitDB(cfg, log)
	assert.Error(t, err)
	assert.Empty(t, log.lines)
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Info(args ...interface{})  { l.lines = append(l.lines, "INFO "+fmt.Sprint(args...)) }
func (l *recordingLogger) Error(args ...interface{}) { l.lines = append(l.lines, "ERROR "+fmt.Sprint(args...)) }

func TestCloseDB_LogsThroughLogger(t *testing.T) {
	relational, err := OpenRelational("sqlite::memory:", false)
	require.NoError(t, err)

	log := &recordingLogger{}
	db := &DB{Postgres: relational}
	db.CloseDB(log)

	assert.Equal(t, []string{"INFO Relational connection closed."}, log.lines)

	sqlDB, err := relational.DB()
	require.NoError(t, err)
	assert.Error(t, sqlDB.Ping())
}
