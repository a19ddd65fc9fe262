package config

import (
	"context"
	"log/slog"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/salesday/pkg/domain/model"
	"github.com/secmon-lab/salesday/pkg/repository"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Database holds the connection parameters of the sales database.
// Values come from flags or env first, then the YAML file, then defaults.
type Database struct {
	ConfigFile string
	Driver     string
	DSN        string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	Table      string
	Column     string
}

// DatabaseFile is the layout of the --db-config YAML file
type DatabaseFile struct {
	Database struct {
		Driver   string `yaml:"driver"`
		DSN      string `yaml:"dsn"`
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslmode"`
		Table    string `yaml:"table"`
		Column   string `yaml:"column"`
	} `yaml:"database"`
}

// Flags returns CLI flags for Database configuration
func (d *Database) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "db-config",
			Usage:       "YAML file with a 'database' section",
			Category:    "Database",
			Sources:     cli.EnvVars("SALESDAY_DB_CONFIG"),
			Destination: &d.ConfigFile,
		},
		&cli.StringFlag{
			Name:        "db-driver",
			Usage:       "Database driver (postgres, mysql, sqlite) [default: postgres]",
			Category:    "Database",
			Sources:     cli.EnvVars("SALESDAY_DB_DRIVER"),
			Destination: &d.Driver,
		},
		&cli.StringFlag{
			Name:        "db-dsn",
			Usage:       "Driver specific data source name, overrides the individual connection flags",
			Category:    "Database",
			Sources:     cli.EnvVars("SALESDAY_DB_DSN"),
			Destination: &d.DSN,
		},
		&cli.StringFlag{
			Name:        "db-host",
			Usage:       "Database host [default: localhost]",
			Category:    "Database",
			Sources:     cli.EnvVars("SALESDAY_DB_HOST"),
			Destination: &d.Host,
		},
		&cli.StringFlag{
			Name:        "db-port",
			Usage:       "Database port [default: 5432 for postgres, 3306 for mysql]",
			Category:    "Database",
			Sources:     cli.EnvVars("SALESDAY_DB_PORT"),
			Destination: &d.Port,
		},
		&cli.StringFlag{
			Name:        "db-user",
			Usage:       "Database user",
			Category:    "Database",
			Sources:     cli.EnvVars("SALESDAY_DB_USER"),
			Destination: &d.User,
		},
		&cli.StringFlag{
			Name:        "db-password",
			Usage:       "Database password",
			Category:    "Database",
			Sources:     cli.EnvVars("SALESDAY_DB_PASSWORD"),
			Destination: &d.Password,
		},
		&cli.StringFlag{
			Name:        "db-name",
			Usage:       "Database name, or file path for sqlite",
			Category:    "Database",
			Sources:     cli.EnvVars("SALESDAY_DB_NAME"),
			Destination: &d.Name,
		},
		&cli.StringFlag{
			Name:        "db-sslmode",
			Usage:       "PostgreSQL sslmode [default: disable]",
			Category:    "Database",
			Sources:     cli.EnvVars("SALESDAY_DB_SSLMODE"),
			Destination: &d.SSLMode,
		},
		&cli.StringFlag{
			Name:        "orders-table",
			Usage:       "Orders table, optionally schema qualified [default: " + repository.DefaultTable + "]",
			Category:    "Database",
			Sources:     cli.EnvVars("SALESDAY_ORDERS_TABLE"),
			Destination: &d.Table,
		},
		&cli.StringFlag{
			Name:        "date-column",
			Usage:       "Order date column [default: " + repository.DefaultColumn + "]",
			Category:    "Database",
			Sources:     cli.EnvVars("SALESDAY_DATE_COLUMN"),
			Destination: &d.Column,
		},
	}
}

// LoadFile fills fields still empty with the values of the YAML file, if one is configured
func (d *Database) LoadFile() error {
	if d.ConfigFile == "" {
		return nil
	}

	data, err := os.ReadFile(d.ConfigFile)
	if err != nil {
		return goerr.Wrap(err, "failed to read database config file",
			goerr.V("path", d.ConfigFile),
			goerr.T(model.ErrTagConfig))
	}

	var file DatabaseFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return goerr.Wrap(err, "failed to parse database config file",
			goerr.V("path", d.ConfigFile),
			goerr.T(model.ErrTagConfig))
	}

	f := file.Database
	for _, pair := range []struct {
		dst *string
		src string
	}{
		{&d.Driver, f.Driver},
		{&d.DSN, f.DSN},
		{&d.Host, f.Host},
		{&d.Port, f.Port},
		{&d.User, f.User},
		{&d.Password, f.Password},
		{&d.Name, f.Name},
		{&d.SSLMode, f.SSLMode},
		{&d.Table, f.Table},
		{&d.Column, f.Column},
	} {
		if *pair.dst == "" {
			*pair.dst = pair.src
		}
	}
	return nil
}

func (d *Database) applyDefaults() {
	if d.Driver == "" {
		d.Driver = repository.DriverPostgres
	}
	if d.Host == "" {
		d.Host = "localhost"
	}
	if d.Port == "" {
		switch d.Driver {
		case repository.DriverPostgres:
			d.Port = "5432"
		case repository.DriverMySQL:
			d.Port = "3306"
		}
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.Table == "" {
		d.Table = repository.DefaultTable
	}
	if d.Column == "" {
		d.Column = repository.DefaultColumn
	}
}

// BuildDSN returns the data source name for the configured driver
func (d *Database) BuildDSN() (string, error) {
	if d.DSN != "" {
		return d.DSN, nil
	}
	if d.Name == "" {
		return "", goerr.New("database name is required when no DSN is given",
			goerr.V("driver", d.Driver),
			goerr.T(model.ErrTagConfig))
	}

	switch d.Driver {
	case repository.DriverPostgres:
		u := &url.URL{
			Scheme:   "postgres",
			Host:     net.JoinHostPort(d.Host, d.Port),
			Path:     "/" + d.Name,
			RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
		}
		if d.User != "" {
			u.User = url.UserPassword(d.User, d.Password)
		}
		return u.String(), nil

	case repository.DriverMySQL:
		cfg := mysql.NewConfig()
		cfg.User = d.User
		cfg.Passwd = d.Password
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(d.Host, d.Port)
		cfg.DBName = d.Name
		cfg.ParseTime = true
		cfg.Loc = time.UTC
		cfg.Params = map[string]string{"charset": "utf8mb4"}
		return cfg.FormatDSN(), nil

	case repository.DriverSQLite:
		return d.Name, nil

	default:
		return "", goerr.New("unsupported database driver",
			goerr.V("driver", d.Driver),
			goerr.T(model.ErrTagConfig))
	}
}

// Resolve merges file and defaults into a repository configuration
func (d *Database) Resolve() (repository.SQLConfig, error) {
	if err := d.LoadFile(); err != nil {
		return repository.SQLConfig{}, err
	}
	d.applyDefaults()

	dsn, err := d.BuildDSN()
	if err != nil {
		return repository.SQLConfig{}, err
	}

	return repository.SQLConfig{
		Driver: d.Driver,
		DSN:    dsn,
		Table:  d.Table,
		Column: d.Column,
	}, nil
}

// Configure opens the sales database
func (d *Database) Configure(ctx context.Context) (*repository.SQL, error) {
	cfg, err := d.Resolve()
	if err != nil {
		return nil, err
	}

	ctxlog.From(ctx).Debug("Connecting to database", "database", d)

	repo, err := repository.NewSQL(ctx, cfg)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to init database",
			goerr.V("driver", d.Driver),
			goerr.V("host", d.Host),
			goerr.V("name", d.Name))
	}
	return repo, nil
}

// LogValue returns structured log value
func (d Database) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("driver", d.Driver),
		slog.String("host", d.Host),
		slog.String("port", d.Port),
		slog.String("user", d.User),
		slog.String("name", d.Name),
		slog.String("table", d.Table),
		slog.String("column", d.Column),
		slog.Bool("has_dsn", d.DSN != ""),
		slog.Bool("has_password", d.Password != ""),
		slog.String("config_file", d.ConfigFile),
	)
}
