package postgres

import (
	"github.com/LavaJover/restaurant-orders/internal/config"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func InitDB(cfg *config.OrderConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.OrderDB.Dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql.DB from gorm.DB")
	}
	sqlDB.SetMaxOpenConns(cfg.OrderDB.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.OrderDB.MaxIdleConns)

	if err := sqlDB.Ping(); err != nil {
		return nil, errors.Wrap(err, "ping database")
	}
	return db, nil
}

// NewReportingDB wraps the gorm connection pool for hand-written read queries.
func NewReportingDB(db *gorm.DB) (*sqlx.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql.DB from gorm.DB")
	}
	return sqlx.NewDb(sqlDB, "postgres"), nil
}
