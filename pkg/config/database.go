package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// sqliteScheme marks a relational DSN that should be opened with SQLite instead of PostgreSQL
const sqliteScheme = "sqlite:"

// StatusLogger receives connection lifecycle messages. Every logger.Logger satisfies it.
type StatusLogger interface {
	Info(args ...interface{})
	Error(args ...interface{})
}

// DB holds the database connections
type DB struct {
	Postgres *gorm.DB
	Mongo    *mongo.Client
}

// InitDB initializes and returns the database connections
func InitDB(cfg *Config, log StatusLogger) (*DB, error) {
	if cfg.PostgresConnStr == "" {
		return nil, fmt.Errorf("POSTGRES_CONN_STR environment variable not set")
	}
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI environment variable not set")
	}

	postgresDB, err := OpenRelational(cfg.PostgresConnStr, !cfg.IsProduction())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to relational database: %w", err)
	}
	log.Info("Successfully connected to ", postgresDB.Dialector.Name(), "!")

	mongoClient, err := initMongo(cfg.MongoURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	log.Info("Successfully connected to MongoDB!")

	return &DB{
		Postgres: postgresDB,
		Mongo:    mongoClient,
	}, nil
}

// OpenRelational opens the relational store through GORM.
// A DSN starting with "sqlite:" opens SQLite (":memory:" included), anything else is handed to PostgreSQL.
func OpenRelational(dsn string, verbose bool) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}
	if verbose {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Warn)
	}

	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, sqliteScheme) {
		dialector = sqlite.Open(strings.TrimPrefix(dsn, sqliteScheme))
	} else {
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

// initMongo initializes the MongoDB connection
func initMongo(uri string) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(uri)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	// Ping the primary to verify connection
	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return client, nil
}

// CloseDB closes the database connections
func (db *DB) CloseDB(log StatusLogger) {
	if db.Postgres != nil {
		sqlDB, err := db.Postgres.DB()
		if err != nil {
			log.Error("Error getting SQL DB from GORM: ", err)
		} else if err := sqlDB.Close(); err != nil {
			log.Error("Error closing relational connection: ", err)
		} else {
			log.Info("Relational connection closed.")
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			log.Error("Error closing MongoDB connection: ", err)
		} else {
			log.Info("MongoDB connection closed.")
		}
	}
}
