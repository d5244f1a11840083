package db

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"gorm.io/gorm"

	"warehouse/loadmap/internal/config"
)

// OpenSQLX returns the raw query handle used for summary listing. Postgres
// gets its own lib/pq pool; SQLite shares GORM's single connection.
func OpenSQLX(cfg config.DatabaseConfig, orm *gorm.DB) (*sqlx.DB, error) {
	if cfg.Driver == config.DriverPostgres {
		return connectPostgres(cfg.PostgresDSN())
	}
	return WrapORM(orm, "sqlite3")
}

// WrapORM exposes GORM's pool through sqlx. driverName selects the bind
// style for Rebind.
func WrapORM(orm *gorm.DB, driverName string) (*sqlx.DB, error) {
	sqlDB, err := orm.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlx.NewDb(sqlDB, driverName), nil
}

func connectPostgres(dsn string) (*sqlx.DB, error) {
	var (
		conn *sqlx.DB
		err  error
	)
	for i := 0; i < 10; i++ {
		conn, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			return conn, nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return nil, fmt.Errorf("failed to connect to postgres (sqlx): %w", err)
}
