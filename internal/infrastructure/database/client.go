package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"net/url"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/tursodatabase/go-libsql"
)

// Supported drivers, as registered with database/sql.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "pgx"
	DriverLibSQL   = "libsql"
)

var sqlOpen = sql.Open

// Client is the process-wide data-access handle. It is opened once at start
// and closed at shutdown; repositories receive it explicitly.
type Client struct {
	*sql.DB
	Driver string
}

// Options configures the database client behavior.
type Options struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Ping            bool
}

// New opens a client and, when opts.Ping is set, verifies the connection.
func New(opts Options) (*Client, error) {
	switch opts.Driver {
	case DriverMySQL, DriverPostgres, DriverLibSQL:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}

	db, err := sqlOpen(opts.Driver, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", opts.Driver, err)
	}

	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	db.SetMaxIdleConns(opts.MaxIdleConns)
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	if opts.Ping {
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ping %s: %w", opts.Driver, err)
		}
	}

	return &Client{DB: db, Driver: opts.Driver}, nil
}

// WithConn checks a connection out of the pool, pings it, and hands it to fn.
// A connection that fails the liveness check is discarded and the error is
// returned; there is no retry.
func (c *Client) WithConn(ctx context.Context, fn func(ctx context.Context, conn *sql.Conn) error) error {
	conn, err := c.Conn(ctx)
	if err != nil {
		return fmt.Errorf("checkout connection: %w", err)
	}
	defer conn.Close()

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Raw(func(any) error { return driver.ErrBadConn })
		return fmt.Errorf("connection liveness check: %w", err)
	}

	return fn(ctx, conn)
}

// MySQLDSN assembles a go-sql-driver/mysql DSN. host may omit the port.
func MySQLDSN(user, password, host, name string) string {
	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = password
	cfg.Net = "tcp"
	cfg.Addr = host
	cfg.DBName = name
	cfg.ParseTime = true
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

// PostgresDSN assembles a postgres:// URL for pgx.
func PostgresDSN(user, password, host, name string) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(user, password),
		Host:   host,
		Path:   "/" + name,
	}
	return u.String()
}

// LibSQLDSN sets the authToken query parameter on a Turso URL, keeping any
// existing parameters. Without a token the URL is returned unchanged.
func LibSQLDSN(databaseURL, authToken string) string {
	if authToken == "" {
		return databaseURL
	}
	u, err := url.Parse(databaseURL)
	if err != nil {
		return databaseURL
	}
	q := u.Query()
	q.Set("authToken", authToken)
	u.RawQuery = q.Encode()
	return u.String()
}
