package storage

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"vendors-backend/internal/config"
	env_utils "vendors-backend/internal/util/env"
	files_utils "vendors-backend/internal/util/files"
	"vendors-backend/internal/util/logger"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gorm_logger "gorm.io/gorm/logger"
)

var (
	db     *gorm.DB
	dbOnce sync.Once
)

func GetDb() *gorm.DB {
	dbOnce.Do(loadDb)
	return db
}

func loadDb() {
	log := logger.GetLogger()
	env := config.GetEnv()

	connection, err := Open(env.DatabaseDriver, env.DatabaseDsn, env.DbMaxOpenConns)
	if err != nil {
		log.Error("Failed to connect to database", "driver", env.DatabaseDriver, "error", err)
		os.Exit(1)
	}

	// test binaries get a fresh database and no separate migration step
	if env.IsTesting {
		if err := Migrate(connection); err != nil {
			log.Error("Failed to migrate test database", "error", err)
			os.Exit(1)
		}
	}

	db = connection
}

func Open(
	driver env_utils.DatabaseDriver,
	dsn string,
	maxOpenConns int,
) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch driver {
	case env_utils.DatabaseDriverPostgres:
		dialector = postgres.Open(dsn)
	case env_utils.DatabaseDriverSqlite:
		if err := files_utils.EnsureParentDirectory(dsn); err != nil {
			return nil, err
		}

		dialector = sqlite.Open(dsn + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	connection, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gorm_logger.Default.LogMode(gorm_logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}

	if driver == env_utils.DatabaseDriverSqlite {
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(maxOpenConns)
		sqlDB.SetMaxIdleConns(maxOpenConns / 2)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return connection, nil
}

func Ping(ctx context.Context) error {
	sqlDB, err := GetDb().DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

// LockForUpdate adds a row lock to the query on databases that support
// SELECT ... FOR UPDATE. sqlite already serializes writers.
func LockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	return tx
}
