package db

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"social-service/configs"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Store struct{ Base *gorm.DB }

func Open(cfg *configs.Config) *Store {
	base, err := openRetry(postgres.Open(cfg.DSN()), 8, time.Second, func(sqlDB *sql.DB) error {
		return pingWithTimeout(sqlDB, 2*time.Second)
	})
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	sqlDB, _ := base.DB()
	sqlDB.SetMaxOpenConns(40)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return &Store{Base: base}
}

// openRetry keeps dialing with backoff until both the open and the ping
// succeed. A connection that opens but never answers a ping is a failure,
// not a usable handle.
func openRetry(dial gorm.Dialector, attempts int, sleep time.Duration, ping func(*sql.DB) error) (*gorm.DB, error) {
	var err error
	for i := 0; i < attempts; i++ {
		var base *gorm.DB
		base, err = gorm.Open(dial, &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Warn),
			TranslateError: true,
		})
		if err == nil {
			var sqlDB *sql.DB
			if sqlDB, err = base.DB(); err == nil {
				if err = ping(sqlDB); err == nil {
					return base, nil
				}
			}
		}
		time.Sleep(sleep)
		if sleep < 8*time.Second {
			sleep *= 2
		}
	}
	return nil, err
}

func pingWithTimeout(sqlDB *sql.DB, timeout time.Duration) error {
	done := make(chan error, 1)
	go func() { done <- sqlDB.Ping() }()
	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		return fmt.Errorf("db ping timeout after %s", timeout)
	}
}
