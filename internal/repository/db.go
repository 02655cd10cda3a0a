package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// DB is a connection pool bound to the dialect it was opened with.
type DB struct {
	*sql.DB
	dialect Dialect
}

// Open creates a connection pool for the named driver and checks it is reachable.
func Open(ctx context.Context, driver, dsn string) (*DB, error) {
	dialect, err := LookupDialect(driver)
	if err != nil {
		return nil, err
	}

	dsn, err = dialect.normalizeDSN(dsn)
	if err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open(dialect.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", dialect.Name, err)
	}

	if dialect == DialectSQLite {
		// In-memory databases live and die with their connection.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging %s database: %w", dialect.Name, err)
	}

	if dialect == DialectSQLite {
		if _, err := sqlDB.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("enabling sqlite foreign keys: %w", err)
		}
	}

	return &DB{DB: sqlDB, dialect: dialect}, nil
}

// Dialect returns the dialect the pool was opened with.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// now returns the timestamp stored for writes, at a precision every dialect keeps.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
