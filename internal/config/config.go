package config

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/spf13/afero"

	"github.com/hashicorp-forge/hermes-oai/pkg/database"
)

const (
	// DefaultAddress is the HTTP listen address used when none is set.
	DefaultAddress = "127.0.0.1:8000"

	// DefaultPageSize is the number of sets listed when a request does not
	// specify a length.
	DefaultPageSize = 100

	// DefaultMaxPageSize caps the number of sets listed per request.
	DefaultMaxPageSize = 1000

	// DefaultSQLitePath is the database file used by the zero-config mode.
	DefaultSQLitePath = "hermes-oai.db"
)

// Config is the configuration for hermes-oai.
type Config struct {
	// LogLevel is the minimum log level (trace, debug, info, warn, error).
	LogLevel string `hcl:"log_level,optional"`

	// Server configures the HTTP server.
	Server *Server `hcl:"server,block"`

	// Database configures the backing database.
	Database *Database `hcl:"database,block"`

	// Sets configures set listing.
	Sets *Sets `hcl:"sets,block"`
}

// Server configures the HTTP server.
type Server struct {
	// Address is the listen address (e.g., "0.0.0.0:8000").
	Address string `hcl:"address,optional"`

	// ShutdownTimeout is how long to wait for in-flight requests on shutdown
	// (e.g., "10s").
	ShutdownTimeout string `hcl:"shutdown_timeout,optional"`
}

// Database configures the backing database.
type Database struct {
	// Driver is "postgres" or "sqlite".
	Driver string `hcl:"driver,optional"`

	Host     string `hcl:"host,optional"`
	Port     int    `hcl:"port,optional"`
	User     string `hcl:"user,optional"`
	Password string `hcl:"password,optional"`
	DBName   string `hcl:"dbname,optional"`
	SSLMode  string `hcl:"sslmode,optional"`

	// Path is the SQLite database file.
	Path string `hcl:"path,optional"`

	MaxIdleConns int `hcl:"max_idle_conns,optional"`
	MaxOpenConns int `hcl:"max_open_conns,optional"`

	// ConnectTimeout bounds how long startup retries the initial
	// connection (e.g., "30s").
	ConnectTimeout string `hcl:"connect_timeout,optional"`

	// SlowQueryThreshold logs queries slower than this as warnings
	// (e.g., "200ms").
	SlowQueryThreshold string `hcl:"slow_query_threshold,optional"`
}

// Sets configures set listing.
type Sets struct {
	// DefaultPageSize is used when a request does not specify a length.
	DefaultPageSize int `hcl:"default_page_size,optional"`

	// MaxPageSize caps the length of a single request.
	MaxPageSize int `hcl:"max_page_size,optional"`
}

// Default returns the zero-config configuration: an embedded SQLite database
// and a local listener.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadFile loads and validates an HCL configuration file from fs.
func LoadFile(fs afero.Fs, path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("configuration file path is required")
	}

	src, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("error reading configuration file: %w", err)
	}

	cfg := &Config{}
	if err := hclsimple.Decode(path, src, nil, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Address == "" {
		c.Server.Address = DefaultAddress
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = "10s"
	}

	if c.Database == nil {
		c.Database = &Database{}
	}
	if c.Database.Driver == "" {
		if c.Database.Host == "" {
			c.Database.Driver = database.DriverSQLite
		} else {
			c.Database.Driver = database.DriverPostgres
		}
	}
	switch c.Database.Driver {
	case database.DriverSQLite:
		if c.Database.Path == "" {
			c.Database.Path = DefaultSQLitePath
		}
	case database.DriverPostgres:
		if c.Database.Port == 0 {
			c.Database.Port = 5432
		}
		if c.Database.SSLMode == "" {
			c.Database.SSLMode = "disable"
		}
	}
	if c.Database.ConnectTimeout == "" {
		c.Database.ConnectTimeout = "30s"
	}

	if c.Sets == nil {
		c.Sets = &Sets{}
	}
	if c.Sets.DefaultPageSize == 0 {
		c.Sets.DefaultPageSize = DefaultPageSize
	}
	if c.Sets.MaxPageSize == 0 {
		c.Sets.MaxPageSize = DefaultMaxPageSize
	}
}

// Validate checks the configuration, returning every problem found.
func (c *Config) Validate() error {
	var result *multierror.Error

	if err := validation.Validate(c.LogLevel,
		validation.In("trace", "debug", "info", "warn", "error"),
	); err != nil {
		result = multierror.Append(result, fmt.Errorf("log_level: %w", err))
	}

	if c.Server != nil {
		if err := validation.ValidateStruct(c.Server,
			validation.Field(&c.Server.Address, validation.Required),
			validation.Field(&c.Server.ShutdownTimeout, validation.By(isDuration)),
		); err != nil {
			result = multierror.Append(result, fmt.Errorf("server: %w", err))
		}
	}

	if c.Database != nil {
		db := c.Database
		if err := validation.ValidateStruct(db,
			validation.Field(&db.Driver, validation.Required,
				validation.In(database.DriverPostgres, database.DriverSQLite)),
			validation.Field(&db.Host,
				validation.When(db.Driver == database.DriverPostgres, validation.Required)),
			validation.Field(&db.DBName,
				validation.When(db.Driver == database.DriverPostgres, validation.Required)),
			validation.Field(&db.Port, validation.Min(0), validation.Max(65535)),
			validation.Field(&db.Path,
				validation.When(db.Driver == database.DriverSQLite, validation.Required)),
			validation.Field(&db.MaxIdleConns, validation.Min(0)),
			validation.Field(&db.MaxOpenConns, validation.Min(0)),
			validation.Field(&db.ConnectTimeout, validation.By(isDuration)),
			validation.Field(&db.SlowQueryThreshold, validation.By(isDuration)),
		); err != nil {
			result = multierror.Append(result, fmt.Errorf("database: %w", err))
		}
	}

	if c.Sets != nil {
		if err := validation.ValidateStruct(c.Sets,
			validation.Field(&c.Sets.DefaultPageSize, validation.Min(1)),
			validation.Field(&c.Sets.MaxPageSize, validation.Min(1)),
		); err != nil {
			result = multierror.Append(result, fmt.Errorf("sets: %w", err))
		}
		if c.Sets.DefaultPageSize > c.Sets.MaxPageSize {
			result = multierror.Append(result, fmt.Errorf(
				"sets: default_page_size (%d) exceeds max_page_size (%d)",
				c.Sets.DefaultPageSize, c.Sets.MaxPageSize))
		}
	}

	return result.ErrorOrNil()
}

// ToDatabaseConfig converts the database block into a database.Config.
func (d *Database) ToDatabaseConfig() database.Config {
	slow, _ := parseDuration(d.SlowQueryThreshold)
	return database.Config{
		Driver:             d.Driver,
		Host:               d.Host,
		Port:               d.Port,
		User:               d.User,
		Password:           d.Password,
		DBName:             d.DBName,
		SSLMode:            d.SSLMode,
		Path:               d.Path,
		MaxIdleConns:       d.MaxIdleConns,
		MaxOpenConns:       d.MaxOpenConns,
		SlowQueryThreshold: slow,
	}
}

// ConnectTimeoutDuration returns the parsed connect timeout.
func (d *Database) ConnectTimeoutDuration() time.Duration {
	timeout, _ := parseDuration(d.ConnectTimeout)
	return timeout
}

// ShutdownTimeoutDuration returns the parsed shutdown timeout.
func (s *Server) ShutdownTimeoutDuration() time.Duration {
	timeout, _ := parseDuration(s.ShutdownTimeout)
	return timeout
}

// parseDuration parses an optional duration; empty strings are zero.
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

func isDuration(value interface{}) error {
	s, _ := value.(string)
	if _, err := parseDuration(s); err != nil {
		return fmt.Errorf("must be a duration such as \"30s\"")
	}
	return nil
}
