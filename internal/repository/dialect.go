package repository

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Dialect describes how to talk to one of the supported SQL databases.
type Dialect struct {
	// Name is the value accepted in configuration and the migrations directory.
	Name string
	// Driver is the database/sql driver name.
	Driver string
	// Goose is the goose dialect used for migrations.
	Goose string

	numbered bool
	// lower is the SQL function that lowercases text with Unicode rules.
	lower string
	// likeCollation, when set, makes LIKE compare the lowered text exactly.
	likeCollation string
}

var (
	// MySQL's default collations also ignore accents; utf8mb4_bin keeps "cafe" from matching "café".
	DialectMySQL    = Dialect{Name: "mysql", Driver: "mysql", Goose: "mysql", lower: "LOWER", likeCollation: "utf8mb4_bin"}
	DialectPostgres = Dialect{Name: "postgres", Driver: "pgx", Goose: "postgres", numbered: true, lower: "LOWER"}
	// SQLite's built-in LOWER only folds ASCII.
	DialectSQLite   = Dialect{Name: "sqlite", Driver: "sqlite", Goose: "sqlite3", lower: sqliteLowerFunc}
)

const sqliteLowerFunc = "unicode_lower"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(sqliteLowerFunc, 1, sqliteLower)
}

// sqliteLower lowercases its argument the same way strings.ToLower does.
func sqliteLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// ErrUnknownDialect is returned for an unsupported DATABASE_DRIVER value.
var ErrUnknownDialect = errors.New("unknown database driver")

// LookupDialect resolves a configured driver name.
func LookupDialect(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "mysql":
		return DialectMySQL, nil
	case "postgres", "postgresql", "pgx":
		return DialectPostgres, nil
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	}
	return Dialect{}, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
}

// Rebind rewrites ? placeholders into the dialect's bind syntax.
// Queries in this package never contain a literal question mark.
func (d Dialect) Rebind(query string) string {
	if !d.numbered {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// likeFold returns a case-insensitive LIKE condition on column with one bind
// parameter. The parameter must already be lowercased with strings.ToLower and
// escaped with escapeLike.
func (d Dialect) likeFold(column string) string {
	expr := d.lower + "(" + column + ")"
	if d.likeCollation != "" {
		expr += " COLLATE " + d.likeCollation
	}
	return expr + " LIKE ? ESCAPE '!'"
}

// normalizeDSN forces the connection options the repositories rely on.
func (d Dialect) normalizeDSN(dsn string) (string, error) {
	if d.Name != DialectMySQL.Name {
		return dsn, nil
	}

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parsing mysql dsn: %w", err)
	}
	// DATETIME columns scan into time.Time; RowsAffected counts matched rows.
	cfg.ParseTime = true
	cfg.ClientFoundRows = true
	return cfg.FormatDSN(), nil
}

// isForeignKeyViolation reports whether err is a foreign-key failure on any supported driver.
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1452
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY
	}

	return false
}

// isUniqueViolation reports whether err is a unique-constraint failure on any supported driver.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}

	return false
}
