package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type LogLevel int

const (
	LogLevelSilent LogLevel = iota + 1
	LogLevelError
	LogLevelWarn
	LogLevelInfo
)

// ParseLogLevel maps a config string onto a LogLevel, defaulting to warn.
func ParseLogLevel(level string) LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return LogLevelSilent
	case "error":
		return LogLevelError
	case "info":
		return LogLevelInfo
	default:
		return LogLevelWarn
	}
}

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

type DatabaseManager struct {
	DB       *gorm.DB
	Driver   string
	LogLevel LogLevel
}

// New opens the pool for driver ("mysql" or "sqlite").
// For mysql the dsn must include parseTime=true.
func New(driver, dsn string, maxConnection int, level LogLevel) (*DatabaseManager, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverMySQL:
		dialector = mysql.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(gormLogLevel(level)),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to open pool: %w", err)
	}

	if driver == DriverSQLite {
		// a single connection keeps in-memory databases shared and serializes writers
		maxConnection = 1
	}
	sqlDB.SetMaxOpenConns(maxConnection)
	sqlDB.SetMaxIdleConns(maxConnection)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping pool: %w", err)
	}

	return &DatabaseManager{DB: db, Driver: driver, LogLevel: level}, nil
}

func gormLogLevel(level LogLevel) logger.LogLevel {
	switch level {
	case LogLevelError:
		return logger.Error
	case LogLevelWarn:
		return logger.Warn
	case LogLevelInfo:
		return logger.Info
	case LogLevelSilent:
		return logger.Silent
	default:
		return logger.Warn
	}
}

// Close closes the global pool
func (dm *DatabaseManager) Close() error {
	sqlDB, err := dm.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Exec runs fn against a session bound to ctx.
func (dm *DatabaseManager) Exec(ctx context.Context, fn func(db *gorm.DB) error) error {
	return fn(dm.DB.WithContext(ctx))
}

// Transaction runs fn inside a database transaction bound to ctx.
func (dm *DatabaseManager) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return dm.DB.WithContext(ctx).Transaction(fn)
}

// IsDuplicateKey reports a unique index violation from either driver.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry")
}

// mysqlDeadlock is ER_LOCK_DEADLOCK.
const mysqlDeadlock = 1213

// IsDeadlock reports a transaction the server rolled back to break a lock
// cycle. Such a transaction is safe to run again.
func IsDeadlock(err error) bool {
	if err == nil {
		return false
	}
	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDeadlock
	}
	return strings.Contains(err.Error(), "Deadlock found")
}

// TransactionRetry runs fn like Transaction and runs it once more when the
// first attempt was rolled back by a deadlock.
func (dm *DatabaseManager) TransactionRetry(ctx context.Context, fn func(tx *gorm.DB) error) error {
	err := dm.Transaction(ctx, fn)
	if IsDeadlock(err) {
		err = dm.Transaction(ctx, fn)
	}
	return err
}
