package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"usuarios/internal/model"
)

// Options tunes the connection pool and startup checks.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	PingTimeout     time.Duration
	Logger          *slog.Logger
}

// NewMySQL returns a connected GORM DB instance. The pool is verified with a
// ping so that an unreachable database fails at startup rather than on the
// first request.
func NewMySQL(dsn string, opts Options) (*gorm.DB, error) {
	return Open(mysql.Open(dsn), opts)
}

// Open is NewMySQL for an already constructed dialector.
func Open(dialector gorm.Dialector, opts Options) (*gorm.DB, error) {
	cfg := &gorm.Config{
		// Maps MySQL 1062 to gorm.ErrDuplicatedKey.
		TranslateError: true,
		Logger:         logger.Discard,
	}
	if opts.Logger != nil {
		cfg.Logger = logger.NewSlogLogger(opts.Logger, logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		})
	}

	gdb, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	ctx := context.Background()
	if opts.PingTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.PingTimeout)
		defer cancel()
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return gdb, nil
}

// Migrate creates or updates the usuarios table, including the unique index on mail.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(&model.User{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Close closes the underlying pool.
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
