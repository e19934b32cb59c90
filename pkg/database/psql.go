package database

import (
	"context"
	"fmt"
	"time"

	"video_access_service/pkg/logger"

	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDatabaseConnection create a new postgreSQL pool, retried RetryCount times
func NewDatabaseConnection(d Connection) (*pgxpool.Pool, error) {
	dbConfig, err := pgxpool.ParseConfig(d.ConnectStr)
	if err != nil {
		return nil, fmt.Errorf("parse postgreSQL connect string: %w", err)
	}

	var pool *pgxpool.Pool
	for i := 1; i <= attempts(d.RetryCount); i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		pool, err = pgxpool.ConnectConfig(ctx, dbConfig)
		if err == nil {
			err = pool.Ping(ctx)
		}
		cancel()
		if err == nil {
			logger.Log.Info("postgreSQL pool connected", zap.Int("attempt", i))
			return pool, nil
		}
		if pool != nil {
			pool.Close()
		}
		logger.Log.Warn(
			"Failed to connect to postgreSQL database, retrying...",
			zap.Int("attempt", i),
			zap.String("host", dbConfig.ConnConfig.Host),
			zap.Error(err),
		)
		if i < attempts(d.RetryCount) {
			retryPause(d.RetryInterval)
		}
	}

	return nil, err
}

// NewPGConnection create a gorm handle over postgreSQL, retried RetryCount times
func NewPGConnection(d Connection) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}

	for i := 1; i <= attempts(d.RetryCount); i++ {
		db, err = gorm.Open(postgres.Open(d.ConnectStr), gormCfg)
		if err == nil {
			err = pingGorm(db)
		}
		if err == nil {
			logger.Log.Info("gorm postgreSQL connected", zap.Int("attempt", i))
			return db, nil
		}
		logger.Log.Warn(
			"Failed to open gorm postgreSQL connection, retrying...",
			zap.Int("attempt", i),
			zap.Error(err),
		)
		if i < attempts(d.RetryCount) {
			retryPause(d.RetryInterval)
		}
	}

	return nil, err
}

func pingGorm(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func attempts(retryCount int) int {
	if retryCount < 1 {
		return 1
	}
	return retryCount
}
