package config

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB holds the database connections. Mongo is nil when MONGO_URI is unset.
type DB struct {
	Postgres *gorm.DB
	Mongo    *mongo.Client

	logger *zap.Logger
}

// InitDB opens PostgreSQL, which is required, and MongoDB when configured.
func InitDB(ctx context.Context, cfg *Config, logger *zap.Logger) (*DB, error) {
	if cfg.PostgresConnStr == "" {
		return nil, errors.New("POSTGRES_CONN_STR environment variable not set")
	}

	postgresDB, err := initPostgres(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to PostgreSQL")
	}
	logger.Info("connected to PostgreSQL")

	db := &DB{Postgres: postgresDB, logger: logger}
	if cfg.MongoURI == "" {
		logger.Warn("MONGO_URI not set, comment audit trail disabled")
		return db, nil
	}

	mongoClient, err := initMongo(ctx, cfg.MongoURI)
	if err != nil {
		db.CloseDB()
		return nil, errors.Wrap(err, "failed to connect to MongoDB")
	}
	logger.Info("connected to MongoDB", zap.String("database", cfg.MongoDatabase))
	db.Mongo = mongoClient
	return db, nil
}

func initPostgres(cfg *Config) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.Env == "development" {
		level = gormlogger.Info
	}
	db, err := gorm.Open(postgres.Open(cfg.PostgresConnStr), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(level),
	})
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

func initMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// CloseDB closes the database connections
func (db *DB) CloseDB() {
	if db.Postgres != nil {
		sqlDB, err := db.Postgres.DB()
		if err != nil {
			db.logger.Error("failed to get sql.DB from gorm", zap.Error(err))
		} else if err := sqlDB.Close(); err != nil {
			db.logger.Error("failed to close PostgreSQL connection", zap.Error(err))
		} else {
			db.logger.Info("PostgreSQL connection closed")
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			db.logger.Error("failed to close MongoDB connection", zap.Error(err))
		} else {
			db.logger.Info("MongoDB connection closed")
		}
	}
}
