package repository

import (
	"context"
	"database/sql"
	"fmt"
)

var SQLiteDSN = sqliteDSN

// DropTable removes the configured orders table. Test use only.
func (r *SQL) DropTable(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", r.table)).Error
}

// StoredDates returns DATE() of every stored row as the database evaluates it
func (r *SQL) StoredDates(ctx context.Context) ([]sql.NullString, error) {
	rows, err := r.db.WithContext(ctx).Table(r.table).Select(fmt.Sprintf("DATE(%s)", r.column)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []sql.NullString
	for rows.Next() {
		var d sql.NullString
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}
