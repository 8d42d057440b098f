package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	_defaultTimeout = 3 * time.Second

	DefaultURL      = "postgres://localhost:5432/todoit?sslmode=disable"
	DefaultUser     = "postgres"
	DefaultPassword = "postgres"
)

type Dialect struct {
	Name        string
	DriverName  string
	Placeholder squirrel.PlaceholderFormat
	// Returning is set when INSERT ... RETURNING yields generated keys.
	Returning bool
	// CaseInsensitiveLike is the operator used for name search.
	CaseInsensitiveLike func(column, pattern string) squirrel.Sqlizer
}

var (
	Postgres = Dialect{
		Name:        "postgres",
		DriverName:  "pgx",
		Placeholder: squirrel.Dollar,
		Returning:   true,
		CaseInsensitiveLike: func(column, pattern string) squirrel.Sqlizer {
			return squirrel.ILike{column: pattern}
		},
	}

	MySQL = Dialect{
		Name:        "mysql",
		DriverName:  "mysql",
		Placeholder: squirrel.Question,
		Returning:   false,
		// default collations compare case-insensitively
		CaseInsensitiveLike: func(column, pattern string) squirrel.Sqlizer {
			return squirrel.Like{column: pattern}
		},
	}
)

// Config holds what is needed to reach the backing store.
// URL selects the dialect by scheme: postgres, postgresql or mysql.
type Config struct {
	URL      string
	User     string
	Password string
}

func DefaultConfig() Config {
	return Config{
		URL:      DefaultURL,
		User:     DefaultUser,
		Password: DefaultPassword,
	}
}

// DataSource resolves the dialect and driver specific DSN.
func (cfg Config) DataSource() (Dialect, string, error) {
	u, err := url.Parse(strings.TrimSpace(cfg.URL))
	if err != nil {
		return Dialect{}, "", fmt.Errorf("database: parse url: %w", err)
	}
	if u.Host == "" {
		return Dialect{}, "", fmt.Errorf("database: missing host in url %q", cfg.URL)
	}

	switch u.Scheme {
	case "postgres", "postgresql":
		if cfg.User != "" {
			u.User = url.UserPassword(cfg.User, cfg.Password)
		}
		return Postgres, u.String(), nil

	case "mysql":
		mcfg := mysql.NewConfig()
		mcfg.User = cfg.User
		mcfg.Passwd = cfg.Password
		mcfg.Net = "tcp"
		mcfg.Addr = u.Host
		mcfg.DBName = strings.TrimPrefix(u.Path, "/")
		mcfg.ParseTime = true
		// report matched rather than changed rows so no-op updates are not "not found"
		mcfg.ClientFoundRows = true
		mcfg.Loc = time.UTC
		return MySQL, mcfg.FormatDSN(), nil

	default:
		return Dialect{}, "", fmt.Errorf("database: unsupported scheme %q", u.Scheme)
	}
}

// DB hands out one connection per operation. Idle connections are not kept,
// so every Acquire dials the store and every Close releases it.
type DB struct {
	*sqlx.DB
	Dialect Dialect
	Builder squirrel.StatementBuilderType
}

func New(ctx context.Context, logger *slog.Logger, cfg Config) (*DB, error) {
	dialect, dsn, err := cfg.DataSource()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, _defaultTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, dialect.DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}

	db.SetMaxIdleConns(0)

	logger.Info("database ready", "dialect", dialect.Name, "user", cfg.User)

	return wrap(db, dialect), nil
}

// NewFromSQL wraps an already opened handle, e.g. one owned by a test.
func NewFromSQL(db *sql.DB, dialect Dialect) *DB {
	return wrap(sqlx.NewDb(db, dialect.DriverName), dialect)
}

func wrap(db *sqlx.DB, dialect Dialect) *DB {
	return &DB{
		DB:      db,
		Dialect: dialect,
		Builder: squirrel.StatementBuilder.PlaceholderFormat(dialect.Placeholder),
	}
}

// Acquire returns a dedicated connection. The caller must Close it.
func (db *DB) Acquire(ctx context.Context) (*sqlx.Conn, error) {
	return db.Connx(ctx)
}
