package database

import (
	"context"
	"database/sql/driver"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"modernc.org/sqlite"

	"github.com/iliyamo/stagebook/internal/config"
)

// SQLiteLower is a Unicode-aware LOWER for SQLite, whose built-in one only
// folds ASCII.  It lowers text the way strings.ToLower does.
const SQLiteLower = "unicode_lower"

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know about.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)

	if err := sqlite.RegisterDeterministicScalarFunction(SQLiteLower, 1, unicodeLower); err != nil {
		panic(fmt.Sprintf("register %s: %v", SQLiteLower, err))
	}
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// Open connects to the configured database and verifies the connection.
func Open(cfg config.Config) (*sqlx.DB, error) {
	dsn := cfg.DBDSN
	if dsn == "" {
		dsn = BuildDSN(cfg)
	}
	return OpenDSN(cfg.DBDriver, dsn)
}

// BuildDSN assembles a driver specific DSN from the individual DB_* settings.
func BuildDSN(cfg config.Config) string {
	switch cfg.DBDriver {
	case "mysql":
		auth := cfg.DBUser
		if cfg.DBPass != "" {
			auth = fmt.Sprintf("%s:%s", cfg.DBUser, cfg.DBPass)
		}
		// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
		// clientFoundRows=true -> UPDATE reports matched rows, not changed rows
		return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true",
			auth, cfg.DBHost, cfg.DBPort, cfg.DBName)
	case "postgres":
		u := url.URL{
			Scheme:   "postgres",
			Host:     cfg.DBHost + ":" + cfg.DBPort,
			Path:     "/" + cfg.DBName,
			RawQuery: "sslmode=disable",
		}
		if cfg.DBPass != "" {
			u.User = url.UserPassword(cfg.DBUser, cfg.DBPass)
		} else {
			u.User = url.User(cfg.DBUser)
		}
		return u.String()
	default:
		return SQLiteDSN(cfg.DBName)
	}
}

// SQLiteDSN returns a modernc DSN for the given file (or ":memory:") with
// foreign keys enforced.
func SQLiteDSN(name string) string {
	if name == ":memory:" {
		return "file::memory:?_pragma=foreign_keys(1)&_time_format=sqlite"
	}
	return "file:" + name + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
}

// OpenDSN opens a pool for driver/dsn, applies pool settings and pings it.
func OpenDSN(driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if driver == "sqlite" {
		// One connection: SQLite serialises writers anyway, and an in-memory
		// database only lives as long as its connection.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
