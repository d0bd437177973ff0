package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/emiliopalmerini/herdstats/internal/adapters/otel"
	"github.com/emiliopalmerini/herdstats/internal/domain"
	"github.com/emiliopalmerini/herdstats/internal/infrastructure/database"
	"github.com/emiliopalmerini/herdstats/internal/util"
)

// Server holds HTTP server configuration.
type Server struct {
	Addr            string        `yaml:"addr" envconfig:"HERDSTATS_ADDR"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"HERDSTATS_SHUTDOWN_TIMEOUT"`
}

// Database holds connection settings. URL, when set, overrides the DSN
// assembled from the individual fields. The libsql driver without a URL
// uses a local file under the XDG data directory.
type Database struct {
	Driver          string        `yaml:"driver" envconfig:"DB_DRIVER"`
	User            string        `yaml:"user" envconfig:"DB_USER"`
	Pass            string        `yaml:"pass" envconfig:"DB_PASS"`
	Host            string        `yaml:"host" envconfig:"DB_HOST"`
	Name            string        `yaml:"name" envconfig:"DB_NAME"`
	URL             string        `yaml:"url" envconfig:"DB_URL"`
	AuthToken       string        `yaml:"auth_token" envconfig:"DB_AUTH_TOKEN"`
	MaxOpenConns    int           `yaml:"max_open_conns" envconfig:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"max_idle_conns" envconfig:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" envconfig:"DB_CONN_MAX_LIFETIME"`
}

// Log holds logger configuration.
type Log struct {
	Level  string `yaml:"level" envconfig:"LOG_LEVEL"`
	Format string `yaml:"format" envconfig:"LOG_FORMAT"`
}

// Report holds report service configuration.
type Report struct {
	UnknownBreedID int `yaml:"unknown_breed_id" envconfig:"UNKNOWN_BREED_ID"`
}

// Config is the full application configuration.
type Config struct {
	Server   Server      `yaml:"server"`
	Database Database    `yaml:"database"`
	Log      Log         `yaml:"log"`
	Report   Report      `yaml:"report"`
	Otel     otel.Config `yaml:"otel"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Server: Server{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Database: Database{
			Driver:          database.DriverMySQL,
			Host:            "localhost",
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Log: Log{
			Level:  "info",
			Format: "json",
		},
		Report: Report{
			UnknownBreedID: domain.DefaultUnknownBreedID,
		},
	}
}

// Load builds the configuration in layers: defaults, a .env file in the
// working directory if present, the YAML file at path if non-empty, then
// environment variables.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	for _, section := range []any{&cfg.Server, &cfg.Database, &cfg.Log, &cfg.Report, &cfg.Otel} {
		if err := envconfig.Process("", section); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

// DSN returns the data source name for the configured driver.
func (d Database) DSN() (string, error) {
	switch d.Driver {
	case database.DriverMySQL:
		if d.URL != "" {
			return d.URL, nil
		}
		return database.MySQLDSN(d.User, d.Pass, d.Host, d.Name), nil
	case database.DriverPostgres, "postgres":
		if d.URL != "" {
			return d.URL, nil
		}
		return database.PostgresDSN(d.User, d.Pass, d.Host, d.Name), nil
	case database.DriverLibSQL:
		url := d.URL
		if url == "" {
			var err error
			if url, err = util.DefaultLibSQLURL(); err != nil {
				return "", err
			}
		}
		return database.LibSQLDSN(url, d.AuthToken), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", d.Driver)
	}
}

// DriverName maps the configured driver to the database/sql driver name.
func (d Database) DriverName() string {
	if d.Driver == "postgres" {
		return database.DriverPostgres
	}
	return d.Driver
}

// Options converts the settings into database client options.
func (d Database) Options() (database.Options, error) {
	dsn, err := d.DSN()
	if err != nil {
		return database.Options{}, err
	}
	return database.Options{
		Driver:          d.DriverName(),
		DSN:             dsn,
		MaxOpenConns:    d.MaxOpenConns,
		MaxIdleConns:    d.MaxIdleConns,
		ConnMaxLifetime: d.ConnMaxLifetime,
	}, nil
}

// Masked returns a copy with secrets replaced, suitable for printing.
func (c Config) Masked() Config {
	if c.Database.Pass != "" {
		c.Database.Pass = mask
	}
	if c.Database.AuthToken != "" {
		c.Database.AuthToken = mask
	}
	c.Database.URL = maskURL(c.Database.Driver, c.Database.URL)
	return c
}

// maskURL hides the password and auth token carried by a connection URL.
// MySQL DSNs are not URLs and go through the driver's own parser.
func maskURL(driver, raw string) string {
	if raw == "" {
		return raw
	}
	if driver == database.DriverMySQL {
		cfg, err := mysql.ParseDSN(raw)
		if err != nil {
			return mask
		}
		if cfg.Passwd != "" {
			cfg.Passwd = mask
		}
		return cfg.FormatDSN()
	}

	u, err := url.Parse(raw)
	if err != nil {
		return mask
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), mask)
	}
	if q := u.Query(); q.Has("authToken") {
		q.Set("authToken", mask)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

const mask = "********"
