package repository

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/salesday/pkg/domain/interfaces"
	"github.com/secmon-lab/salesday/pkg/domain/model"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	// pure Go SQLite driver registered as "sqlite"
	_ "modernc.org/sqlite"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

const (
	// DefaultTable and DefaultColumn match the AdventureWorks sample database
	DefaultTable  = "sales.salesorderheader"
	DefaultColumn = "orderdate"

	insertBatchSize = 500
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// ValidIdentifier reports whether name is a plain, optionally schema-qualified, SQL identifier
func ValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// SQLConfig holds the parameters of a relational order store
type SQLConfig struct {
	Driver string
	DSN    string
	Table  string
	Column string
}

// SQL implements OrderRepository over a relational database
type SQL struct {
	db     *gorm.DB
	driver string
	table  string
	column string
}

var (
	_ interfaces.OrderRepository = (*SQL)(nil)
	_ interfaces.OrderSeeder     = (*SQL)(nil)
)

func dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case DriverPostgres:
		return postgres.Open(dsn), nil
	case DriverMySQL:
		return mysql.Open(dsn), nil
	case DriverSQLite:
		return &sqlite.Dialector{DriverName: "sqlite", DSN: sqliteDSN(dsn)}, nil
	default:
		return nil, goerr.New("unsupported database driver",
			goerr.V("driver", driver),
			goerr.T(model.ErrTagConfig))
	}
}

// sqliteDSN makes the driver store time values in a layout SQLite's date
// functions understand. An explicit _time_format in dsn is kept.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_time_format=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_time_format=sqlite"
}

// NewSQL opens the database and verifies it is reachable
func NewSQL(ctx context.Context, cfg SQLConfig) (*SQL, error) {
	table := cfg.Table
	if table == "" {
		table = DefaultTable
	}
	column := cfg.Column
	if column == "" {
		column = DefaultColumn
	}
	if !ValidIdentifier(table) {
		return nil, goerr.New("invalid table name", goerr.V("table", table), goerr.T(model.ErrTagConfig))
	}
	if !ValidIdentifier(column) || strings.Contains(column, ".") {
		return nil, goerr.New("invalid column name", goerr.V("column", column), goerr.T(model.ErrTagConfig))
	}

	d, err := dialector(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to connect to database",
			goerr.V("driver", cfg.Driver),
			goerr.T(model.ErrTagConnection))
	}

	ctxlog.From(ctx).Debug("database connected",
		"driver", cfg.Driver,
		"table", table,
		"column", column,
	)

	return &SQL{
		db:     db,
		driver: cfg.Driver,
		table:  table,
		column: column,
	}, nil
}

func (r *SQL) dateExpr() string {
	return fmt.Sprintf("DATE(%s)", r.column)
}

// DailyOrderCounts counts orders per calendar day with a single grouped query
func (r *SQL) DailyOrderCounts(ctx context.Context) ([]model.OrderDayCount, error) {
	expr := r.dateExpr()
	rows, err := r.db.WithContext(ctx).
		Table(r.table).
		Select(expr + " AS order_date, COUNT(*) AS order_count").
		Group(expr).
		Order(expr).
		Rows()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query daily order counts",
			goerr.V("table", r.table),
			goerr.V("column", r.column),
			goerr.T(model.ErrTagQuery))
	}
	defer rows.Close()

	var result []model.OrderDayCount
	for rows.Next() {
		var day model.OrderDayCount
		if err := rows.Scan(&day.Date, &day.Count); err != nil {
			return nil, goerr.Wrap(err, "failed to scan daily order count",
				goerr.V("table", r.table),
				goerr.T(model.ErrTagQuery))
		}
		result = append(result, day)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to read daily order counts",
			goerr.V("table", r.table),
			goerr.T(model.ErrTagQuery))
	}

	return result, nil
}

// EnsureSchema creates the orders table when it does not exist
func (r *SQL) EnsureSchema(ctx context.Context) error {
	db := r.db.WithContext(ctx)

	if r.driver == DriverPostgres {
		if schema, _, ok := strings.Cut(r.table, "."); ok {
			if err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)).Error; err != nil {
				return goerr.Wrap(err, "failed to create schema", goerr.V("schema", schema))
			}
		}
	}

	if db.Migrator().HasTable(r.table) {
		return nil
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s TIMESTAMP NOT NULL)", r.table, r.column)
	if err := db.Exec(ddl).Error; err != nil {
		return goerr.Wrap(err, "failed to create orders table", goerr.V("table", r.table))
	}
	return nil
}

// InsertOrders stores one order row per timestamp
func (r *SQL) InsertOrders(ctx context.Context, placedAt []time.Time) error {
	db := r.db.WithContext(ctx)

	for start := 0; start < len(placedAt); start += insertBatchSize {
		end := min(start+insertBatchSize, len(placedAt))
		batch := make([]map[string]any, 0, end-start)
		for _, t := range placedAt[start:end] {
			batch = append(batch, map[string]any{r.column: t.UTC()})
		}
		if err := db.Table(r.table).Create(batch).Error; err != nil {
			return goerr.Wrap(err, "failed to insert orders",
				goerr.V("table", r.table),
				goerr.V("offset", start))
		}
	}
	return nil
}

// Close releases the database connection
func (r *SQL) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return goerr.Wrap(err, "failed to get database handle")
	}
	if err := sqlDB.Close(); err != nil {
		return goerr.Wrap(err, "failed to close database")
	}
	return nil
}
